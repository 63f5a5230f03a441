package tui

import (
	"io"
	"os"

	"chatwidget/internal/model"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Palette is one colour scheme for the widget.
type Palette struct {
	Background  lipgloss.Color
	Foreground  lipgloss.Color
	Primary     lipgloss.Color
	Accent      lipgloss.Color
	Muted       lipgloss.Color
	Border      lipgloss.Color
	UserBubble  lipgloss.Color
	Warning     lipgloss.Color
	Destructive lipgloss.Color
	Link        lipgloss.Color
}

var (
	lightPalette = Palette{
		Background:  lipgloss.Color("#f4f5f6"),
		Foreground:  lipgloss.Color("#101F38"),
		Primary:     lipgloss.Color("#2563eb"),
		Accent:      lipgloss.Color("#8BC34A"),
		Muted:       lipgloss.Color("#6b7280"),
		Border:      lipgloss.Color("#dce0e5"),
		UserBubble:  lipgloss.Color("#1d4ed8"),
		Warning:     lipgloss.Color("#d97706"),
		Destructive: lipgloss.Color("#e53935"),
		Link:        lipgloss.Color("#0369a1"),
	}

	darkPalette = Palette{
		Background:  lipgloss.Color("#141d2b"),
		Foreground:  lipgloss.Color("#f2f2f2"),
		Primary:     lipgloss.Color("#60a5fa"),
		Accent:      lipgloss.Color("#8BC34A"),
		Muted:       lipgloss.Color("#9ca3af"),
		Border:      lipgloss.Color("#2a3850"),
		UserBubble:  lipgloss.Color("#93c5fd"),
		Warning:     lipgloss.Color("#FFC107"),
		Destructive: lipgloss.Color("#f87171"),
		Link:        lipgloss.Color("#38bdf8"),
	}
)

func PaletteFor(theme model.Theme) Palette {
	if theme.IsDark() {
		return darkPalette
	}
	return lightPalette
}

type Styles struct {
	Theme   model.Theme
	Palette Palette

	Header      lipgloss.Style
	Log         lipgloss.Style
	UserLabel   lipgloss.Style
	UserText    lipgloss.Style
	AILabel     lipgloss.Style
	AIText      lipgloss.Style
	Link        lipgloss.Style
	Banner      lipgloss.Style
	BannerFade  lipgloss.Style
	Counter     lipgloss.Style
	CounterWarn lipgloss.Style
	CounterOver lipgloss.Style
	Hint        lipgloss.Style
	Spinner     lipgloss.Style
}

func NewStyles(theme model.Theme) Styles {
	p := PaletteFor(theme)

	return Styles{
		Theme:   theme,
		Palette: p,

		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary).
			Padding(0, 1),
		Log: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(0, 1),
		UserLabel:   lipgloss.NewStyle().Bold(true).Foreground(p.UserBubble),
		UserText:    lipgloss.NewStyle().Foreground(p.Foreground),
		AILabel:     lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		AIText:      lipgloss.NewStyle().Foreground(p.Foreground),
		Link:        lipgloss.NewStyle().Underline(true).Foreground(p.Link),
		Banner:      lipgloss.NewStyle().Bold(true).Foreground(p.Destructive).Padding(0, 1),
		BannerFade:  lipgloss.NewStyle().Faint(true).Foreground(p.Destructive).Padding(0, 1),
		Counter:     lipgloss.NewStyle().Foreground(p.Muted),
		CounterWarn: lipgloss.NewStyle().Bold(true).Foreground(p.Warning),
		CounterOver: lipgloss.NewStyle().Bold(true).Foreground(p.Destructive),
		Hint:        lipgloss.NewStyle().Foreground(p.Muted),
		Spinner:     lipgloss.NewStyle().Foreground(p.Accent),
	}
}

// DetectSystemDark asks the terminal for its background colour. It must run
// before the program takes over the terminal.
func DetectSystemDark() bool {
	return lipgloss.HasDarkBackground()
}

// backgroundQuery re-asks the terminal for its background colour. It runs
// through tea.Exec so the program has released the terminal while the reply
// is read. A fresh renderer is used because lipgloss caches the answer.
type backgroundQuery struct {
	out  io.Writer
	dark bool
}

func (q *backgroundQuery) SetStdin(io.Reader) {}
func (q *backgroundQuery) SetStderr(io.Writer) {}

func (q *backgroundQuery) SetStdout(w io.Writer) {
	q.out = w
}

func (q *backgroundQuery) Run() error {
	out := q.out
	if out == nil {
		out = os.Stdout
	}
	q.dark = lipgloss.NewRenderer(out).HasDarkBackground()
	return nil
}

type systemThemeMsg struct {
	dark bool
}

func querySystemTheme() tea.Cmd {
	q := &backgroundQuery{}
	return tea.Exec(q, func(err error) tea.Msg {
		if err != nil {
			return nil
		}
		return systemThemeMsg{dark: q.dark}
	})
}

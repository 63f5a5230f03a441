// Package tui is the terminal front end of the chat widget. All widget
// transitions happen inside Update, so the Bubble Tea loop is the single
// event-dispatch boundary; the network call runs as a tea.Cmd.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"chatwidget/internal/format"
	"chatwidget/internal/model"
	"chatwidget/internal/service"
	"chatwidget/internal/widget"
	"chatwidget/pkg/logger"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type greetingMsg struct{}

type replyMsg struct {
	ticket widget.Ticket
	reply  string
	err    error
}

type bannerTickMsg struct {
	generation uint64
}

type keyMap struct {
	Send        key.Binding
	ToggleTheme key.Binding
	Dismiss     key.Binding
	Quit        key.Binding
}

var keys = keyMap{
	Send:        key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
	ToggleTheme: key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "theme")),
	Dismiss:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "dismiss error")),
	Quit:        key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
}

type Options struct {
	GreetingDelay time.Duration
	// FollowSystemTheme re-reads the terminal background whenever the
	// window regains focus.
	FollowSystemTheme bool
}

type Model struct {
	ctx     context.Context
	widget  *widget.Widget
	svc     service.ChatService
	opts    Options
	styles  Styles
	pending *widget.Ticket
	status  string

	input    textarea.Model
	viewport viewport.Model
	spinner  spinner.Model

	width  int
	height int
}

func New(ctx context.Context, w *widget.Widget, svc service.ChatService, opts Options) Model {
	ta := textarea.New()
	ta.Placeholder = "Ask about products, prices, or shopping advice..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetHeight(3)
	ta.SetWidth(60)
	ta.KeyMap.InsertNewline.SetKeys("alt+enter")
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		ctx:      ctx,
		widget:   w,
		svc:      svc,
		opts:     opts,
		input:    ta,
		viewport: viewport.New(60, 12),
		spinner:  sp,
	}
	m.applyTheme(w.Theme())
	m.refreshLog()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, tea.Tick(m.opts.GreetingDelay, func(time.Time) tea.Msg {
		return greetingMsg{}
	}))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.FocusMsg:
		if !m.opts.FollowSystemTheme {
			return m, nil
		}
		return m, querySystemTheme()

	case systemThemeMsg:
		m.applyTheme(m.widget.SystemThemeChanged(msg.dark))
		m.refreshLog()
		return m, nil

	case greetingMsg:
		if _, ok := m.widget.AddGreeting(); ok {
			m.refreshLog()
		}
		return m, nil

	case replyMsg:
		return m.handleReply(msg)

	case bannerTickMsg:
		// Ticks for a replaced banner leave the current one alone.
		m.widget.ExpireBanner(msg.generation)
		return m, nil

	case spinner.TickMsg:
		if m.widget.State() != model.Sending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Send):
			return m.submit()
		case key.Matches(msg, keys.ToggleTheme):
			theme, err := m.widget.ToggleTheme()
			if err != nil {
				m.status = "Theme not saved: " + err.Error()
			} else {
				m.status = ""
			}
			m.applyTheme(theme)
			m.refreshLog()
			return m, nil
		case key.Matches(msg, keys.Dismiss):
			m.widget.DismissError()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.widget.OnInputChanged(m.input.Value())
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	if !m.widget.Input().CanSend() {
		return m, nil
	}

	ticket, err := m.widget.Submit()
	if err != nil {
		logger.Debugf("Submit ignored: %v", err)
		return m, nil
	}

	m.pending = &ticket
	m.input.Reset()
	m.refreshLog()

	return m, tea.Batch(m.spinner.Tick, m.send(ticket))
}

func (m Model) send(ticket widget.Ticket) tea.Cmd {
	ctx, svc := m.ctx, m.svc
	return func() tea.Msg {
		reply, err := svc.SendQuery(ctx, ticket.Query)
		return replyMsg{ticket: ticket, reply: reply, err: err}
	}
}

func (m Model) handleReply(msg replyMsg) (tea.Model, tea.Cmd) {
	out, err := m.widget.Resolve(msg.ticket, msg.reply, msg.err)
	if err != nil {
		logger.Warnf("Dropping reply for ticket %d: %v", msg.ticket.ID, err)
		return m, nil
	}
	m.pending = nil
	m.refreshLog()

	if out.Banner == nil {
		return m, nil
	}

	logger.Warnf("Chat request failed: %v", out.Err)
	b := *out.Banner
	return m, tea.Batch(
		tickAt(b.VisibleUntil, b.Generation),
		tickAt(b.HiddenAt, b.Generation),
	)
}

func tickAt(at time.Time, generation uint64) tea.Cmd {
	return tea.Tick(time.Until(at), func(time.Time) tea.Msg {
		return bannerTickMsg{generation: generation}
	})
}

func (m *Model) applyTheme(theme model.Theme) {
	m.styles = NewStyles(theme)
	m.spinner.Style = m.styles.Spinner
}

func (m *Model) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	m.width, m.height = width, height

	inner := max(width-4, 10)
	m.input.SetWidth(inner)
	m.viewport.Width = inner
	// header, banner, input (3 + border), counter line
	m.viewport.Height = max(height-10, 3)
	m.refreshLog()
}

func (m *Model) refreshLog() {
	var b strings.Builder
	wrap := lipgloss.NewStyle().Width(max(m.viewport.Width, 10))

	for i, msg := range m.widget.Messages() {
		if i > 0 {
			b.WriteString("\n\n")
		}
		if msg.IsUser() {
			b.WriteString(m.styles.UserLabel.Render("You: "))
			b.WriteString(wrap.Render(m.styles.UserText.Render(msg.Text)))
			continue
		}
		b.WriteString(m.styles.AILabel.Render("AI: "))
		b.WriteString(wrap.Render(m.styles.AIText.Render(format.FormatTerminal(msg.Text, m.styles.Link))))
	}

	m.viewport.SetContent(b.String())
	m.viewport.GotoBottom()
}

func (m Model) View() string {
	var sections []string

	themeLabel := fmt.Sprintf("[%s]", m.styles.Theme)
	sections = append(sections, m.styles.Header.Render("Shopping Assistant "+themeLabel))
	sections = append(sections, m.styles.Log.Render(m.viewport.View()))

	if banner, phase := m.widget.Banner(); phase != widget.BannerHidden {
		style := m.styles.Banner
		if phase == widget.BannerFading {
			style = m.styles.BannerFade
		}
		sections = append(sections, style.Render(banner.Message))
	}

	sections = append(sections, m.input.View())
	sections = append(sections, m.footer())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) footer() string {
	in := m.widget.Input()

	counter := m.styles.Counter
	switch {
	case in.IsOverLimit():
		counter = m.styles.CounterOver
	case in.NearLimit():
		counter = m.styles.CounterWarn
	}
	parts := []string{counter.Render(fmt.Sprintf("%d/%d", in.Length, in.MaxChars))}

	if m.widget.State() == model.Sending {
		parts = append(parts, m.spinner.View()+" sending")
	} else if !in.CanSend() {
		parts = append(parts, m.styles.Hint.Render("send disabled"))
	}

	if m.status != "" {
		parts = append(parts, m.styles.CounterWarn.Render(m.status))
	}

	parts = append(parts, m.styles.Hint.Render("enter send • alt+enter newline • ctrl+t theme • ctrl+c quit"))
	return strings.Join(parts, "  ")
}

// Widget exposes the underlying state, mainly for tests.
func (m Model) Widget() *widget.Widget {
	return m.widget
}

// Package widget holds the chat widget's state: the input buffer, the message
// log, the send state machine, the error banner and the theme. It does no
// rendering; front ends drive it through Submit and Resolve and redraw from
// its accessors.
package widget

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"chatwidget/internal/config"
	"chatwidget/internal/model"
	"chatwidget/internal/service"
	"chatwidget/internal/storage"
	"chatwidget/pkg/logger"
)

var (
	ErrBusy        = errors.New("a request is already in flight")
	ErrEmptyInput  = errors.New("input is empty")
	ErrOverLimit   = errors.New("input exceeds the character limit")
	ErrStaleTicket = errors.New("ticket does not match the in-flight request")

	errAborted = errors.New("request aborted")
)

type Settings struct {
	MaxChars     int
	ErrorDisplay time.Duration
	ErrorFade    time.Duration
	Greeting     string
}

func DefaultSettings() Settings {
	return Settings{
		MaxChars:     DefaultMaxChars,
		ErrorDisplay: 5 * time.Second,
		ErrorFade:    300 * time.Millisecond,
		Greeting:     config.DefaultGreeting,
	}
}

func SettingsFromConfig(cfg config.WidgetConfig) Settings {
	s := DefaultSettings()
	if cfg.MaxChars > 0 {
		s.MaxChars = cfg.MaxChars
	}
	if cfg.ErrorDisplay > 0 {
		s.ErrorDisplay = cfg.ErrorDisplay
	}
	if cfg.ErrorFade > 0 {
		s.ErrorFade = cfg.ErrorFade
	}
	s.Greeting = cfg.Greeting
	return s
}

// Ticket identifies one submitted query. It must be handed back to Resolve
// exactly once.
type Ticket struct {
	ID      uint64
	Query   string
	Message model.Message
}

// Outcome is what Resolve changed: either a reply was appended or the banner
// was replaced.
type Outcome struct {
	Reply  *model.Message
	Banner *Banner
	Err    error
}

type Option func(*Widget)

func WithClock(now func() time.Time) Option {
	return func(w *Widget) { w.now = now }
}

// WithTransitionHook registers fn to run after every send state change.
func WithTransitionHook(fn func(from, to model.SendState)) Option {
	return func(w *Widget) { w.hooks = append(w.hooks, fn) }
}

func WithSystemDark(dark bool) Option {
	return func(w *Widget) { w.systemDark = dark }
}

type Widget struct {
	mu       sync.Mutex
	settings Settings
	now      func() time.Time
	hooks    []func(from, to model.SendState)

	input    InputState
	state    model.SendState
	seq      uint64
	inFlight uint64
	messages []model.Message
	greeted  bool

	banner     Banner
	bannerSeq  uint64
	systemDark bool
	theme      *ThemeState
}

func New(settings Settings, store storage.Store, opts ...Option) *Widget {
	if settings.MaxChars <= 0 {
		settings.MaxChars = DefaultMaxChars
	}

	w := &Widget{
		settings: settings,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}

	w.input = newInputState("", settings.MaxChars)
	w.theme = NewThemeState(store, w.systemDark)
	return w
}

func (w *Widget) Settings() Settings {
	return w.settings
}

// OnInputChanged replaces the input buffer with what the user typed.
func (w *Widget) OnInputChanged(text string) InputState {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.input = newInputState(text, w.settings.MaxChars)
	return w.input
}

func (w *Widget) Input() InputState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.input
}

func (w *Widget) State() model.SendState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Messages returns a copy of the conversation log in insertion order.
func (w *Widget) Messages() []model.Message {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make([]model.Message, len(w.messages))
	copy(out, w.messages)
	return out
}

// AddGreeting appends the configured greeting once per widget.
func (w *Widget) AddGreeting() (model.Message, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.greeted || w.settings.Greeting == "" {
		return model.Message{}, false
	}
	w.greeted = true

	msg := model.NewMessage(model.AuthorAssistant, w.settings.Greeting, w.now())
	w.messages = append(w.messages, msg)
	return msg, true
}

// Submit starts a request for the current input. On success the user's
// message is already in the log, the input is cleared and the widget is
// Sending until the returned ticket is resolved. When Submit fails nothing
// changes.
func (w *Widget) Submit() (Ticket, error) {
	w.mu.Lock()

	if w.state == model.Sending {
		w.mu.Unlock()
		return Ticket{}, ErrBusy
	}

	query := strings.TrimSpace(w.input.Buffer)
	if query == "" {
		w.mu.Unlock()
		return Ticket{}, ErrEmptyInput
	}
	if w.input.IsOverLimit() {
		w.mu.Unlock()
		return Ticket{}, ErrOverLimit
	}

	msg := model.NewMessage(model.AuthorUser, query, w.now())
	w.messages = append(w.messages, msg)
	w.input = newInputState("", w.settings.MaxChars)

	w.seq++
	w.inFlight = w.seq
	w.state = model.Sending
	ticket := Ticket{ID: w.seq, Query: query, Message: msg}
	w.mu.Unlock()

	w.notify(model.Idle, model.Sending)
	return ticket, nil
}

// Resolve completes the request identified by t. An empty reply without an
// error is treated as a failure. The widget is Idle afterwards.
func (w *Widget) Resolve(t Ticket, reply string, err error) (Outcome, error) {
	w.mu.Lock()

	if w.state != model.Sending || t.ID == 0 || t.ID != w.inFlight {
		w.mu.Unlock()
		return Outcome{}, ErrStaleTicket
	}

	if err == nil && reply == "" {
		err = service.ErrEmptyReply
	}

	var out Outcome
	if err != nil {
		b := w.showErrorLocked(BannerText(err))
		out = Outcome{Banner: &b, Err: err}
	} else {
		msg := model.NewMessage(model.AuthorAssistant, reply, w.now())
		w.messages = append(w.messages, msg)
		out = Outcome{Reply: &msg}
	}

	w.inFlight = 0
	w.state = model.Idle
	w.mu.Unlock()

	w.notify(model.Sending, model.Idle)
	return out, nil
}

// Send runs one full cycle against svc: Submit, SendQuery, Resolve. The
// widget returns to Idle even if svc panics.
func (w *Widget) Send(ctx context.Context, svc service.ChatService) (Outcome, error) {
	ticket, err := w.Submit()
	if err != nil {
		return Outcome{}, err
	}

	resolved := false
	defer func() {
		if !resolved {
			w.Resolve(ticket, "", errAborted)
		}
	}()

	reply, callErr := svc.SendQuery(ctx, ticket.Query)
	resolved = true
	if callErr != nil {
		logger.WithField("query_len", len(ticket.Query)).Warnf("Chat query failed: %v", callErr)
	}
	return w.Resolve(ticket, reply, callErr)
}

// ShowError replaces the banner with message.
func (w *Widget) ShowError(message string) Banner {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.showErrorLocked(message)
}

func (w *Widget) showErrorLocked(message string) Banner {
	now := w.now()
	w.bannerSeq++
	w.banner = Banner{
		Message:      message,
		ShownAt:      now,
		VisibleUntil: now.Add(w.settings.ErrorDisplay),
		HiddenAt:     now.Add(w.settings.ErrorDisplay + w.settings.ErrorFade),
		Generation:   w.bannerSeq,
	}
	return w.banner
}

// Banner returns the current banner and its phase without changing state. A
// hidden banner is returned as the zero value.
func (w *Widget) Banner() (Banner, BannerPhase) {
	w.mu.Lock()
	defer w.mu.Unlock()

	phase := w.banner.PhaseAt(w.now())
	if phase == BannerHidden {
		return Banner{}, BannerHidden
	}
	return w.banner, phase
}

// ExpireBanner drops the banner of the given generation once it has fully
// faded. It reports whether the banner was removed.
func (w *Widget) ExpireBanner(generation uint64) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.banner.Generation != generation || w.banner.Message == "" {
		return false
	}
	if w.banner.PhaseAt(w.now()) != BannerHidden {
		return false
	}
	w.banner = Banner{}
	return true
}

func (w *Widget) DismissError() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.banner = Banner{}
}

func (w *Widget) Theme() model.Theme {
	return w.theme.Current()
}

// ToggleTheme flips and persists the theme. It never touches the log or the
// send state.
func (w *Widget) ToggleTheme() (model.Theme, error) {
	return w.theme.Toggle()
}

func (w *Widget) SystemThemeChanged(dark bool) model.Theme {
	return w.theme.SystemChanged(dark)
}

func (w *Widget) ThemeState() *ThemeState {
	return w.theme
}

func (w *Widget) notify(from, to model.SendState) {
	for _, fn := range w.hooks {
		fn(from, to)
	}
}

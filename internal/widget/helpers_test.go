package widget

import (
	"context"
	"errors"
	"sync"
	"time"

	"chatwidget/internal/model"
	"chatwidget/internal/storage"
)

type serviceFunc func(ctx context.Context, query string) (string, error)

func (f serviceFunc) SendQuery(ctx context.Context, query string) (string, error) {
	return f(ctx, query)
}

func replyWith(reply string, err error) serviceFunc {
	return func(context.Context, string) (string, error) { return reply, err }
}

type transition struct {
	from, to model.SendState
}

type recorder struct {
	mu          sync.Mutex
	transitions []transition
}

func (r *recorder) hook(from, to model.SendState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transitions = append(r.transitions, transition{from, to})
}

func (r *recorder) all() []transition {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]transition(nil), r.transitions...)
}

var roundTrip = []transition{{model.Idle, model.Sending}, {model.Sending, model.Idle}}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type failingStore struct {
	*storage.MemoryStorage
}

var errDiskFull = errors.New("disk full")

func (failingStore) Set(string, string) error { return errDiskFull }

func newTestWidget(opts ...Option) (*Widget, *recorder, *storage.MemoryStorage) {
	rec := &recorder{}
	store := storage.NewMemoryStorage()
	opts = append([]Option{WithTransitionHook(rec.hook)}, opts...)
	return New(DefaultSettings(), store, opts...), rec, store
}

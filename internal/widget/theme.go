package widget

import (
	"errors"
	"sync"

	"chatwidget/internal/model"
	"chatwidget/internal/storage"
	"chatwidget/pkg/logger"
)

// ThemeState resolves the active theme from the stored preference, falling
// back to the live system preference when nothing is stored.
type ThemeState struct {
	mu         sync.RWMutex
	store      storage.Store
	stored     model.Theme
	hasStored  bool
	systemDark bool
}

func NewThemeState(store storage.Store, systemDark bool) *ThemeState {
	t := &ThemeState{store: store, systemDark: systemDark}

	value, err := store.Get(model.ThemeKey)
	switch {
	case err == nil:
		if theme, ok := model.ParseTheme(value); ok {
			t.stored = theme
			t.hasStored = true
		} else {
			logger.Warnf("Ignoring unknown stored theme %q", value)
		}
	case !errors.Is(err, storage.ErrKeyNotFound):
		logger.Warnf("Failed to read theme preference: %v", err)
	}

	return t
}

func (t *ThemeState) Current() model.Theme {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.currentLocked()
}

func (t *ThemeState) currentLocked() model.Theme {
	if t.hasStored {
		return t.stored
	}
	if t.systemDark {
		return model.ThemeDark
	}
	return model.ThemeLight
}

// FollowsSystem reports whether no explicit preference is stored.
func (t *ThemeState) FollowsSystem() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return !t.hasStored
}

// Toggle flips the active theme and persists it. The new theme takes effect
// even when persisting fails; the error is returned for reporting.
func (t *ThemeState) Toggle() (model.Theme, error) {
	t.mu.Lock()
	next := t.currentLocked().Toggle()
	t.stored = next
	t.hasStored = true
	t.mu.Unlock()

	if err := t.store.Set(model.ThemeKey, string(next)); err != nil {
		logger.Warnf("Failed to persist theme %s: %v", next, err)
		return next, err
	}
	return next, nil
}

func (t *ThemeState) Set(theme model.Theme) error {
	t.mu.Lock()
	t.stored = theme
	t.hasStored = true
	t.mu.Unlock()

	return t.store.Set(model.ThemeKey, string(theme))
}

// FollowSystem forgets the stored preference.
func (t *ThemeState) FollowSystem() error {
	t.mu.Lock()
	t.stored = ""
	t.hasStored = false
	t.mu.Unlock()

	return t.store.Delete(model.ThemeKey)
}

// SystemChanged records a new system preference and returns the active theme.
func (t *ThemeState) SystemChanged(dark bool) model.Theme {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.systemDark = dark
	return t.currentLocked()
}

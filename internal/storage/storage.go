package storage

import (
	"errors"
	"log/slog"

	"github.com/chris-regnier/habitctl/internal/habit"
)

// Sentinel errors for storage operations.
var (
	ErrNotFound = errors.New("no saved habits")
	ErrCorrupt  = errors.New("saved habits are unreadable")
	ErrStorage  = errors.New("storage error")
)

// Storage persists the whole tracker state. Save always overwrites what
// was stored before; there is no partial update.
type Storage interface {
	Load() (habit.Tracker, error)
	Save(t habit.Tracker) error
	Close() error
}

// LoadOrEmpty loads the saved tracker, falling back to the empty state on any
// failure. The failure is logged, never returned.
func LoadOrEmpty(s Storage, log *slog.Logger) habit.Tracker {
	t, err := s.Load()
	switch {
	case err == nil:
		if t.Habits == nil {
			t.Habits = []habit.Habit{}
		}
		return t
	case errors.Is(err, ErrNotFound):
		log.Debug("no saved habits, starting empty")
	default:
		log.Warn("could not load saved habits, starting empty", "err", err)
	}
	return habit.Empty()
}

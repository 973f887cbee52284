// Package tracker runs the update loop: every event is reduced into the
// in-memory state and then written through to storage before the next
// event is handled.
package tracker

import (
	"log/slog"

	"github.com/chris-regnier/habitctl/internal/habit"
	"github.com/chris-regnier/habitctl/internal/storage"
)

// Session owns the tracker state for the life of the process. It is not
// safe for concurrent use.
type Session struct {
	store storage.Storage
	state habit.Tracker
	log   *slog.Logger
}

// Open loads the saved state, or starts empty if there is none.
func Open(store storage.Storage, log *slog.Logger) *Session {
	return &Session{
		store: store,
		state: storage.LoadOrEmpty(store, log),
		log:   log,
	}
}

// State returns the current tracker.
func (s *Session) State() habit.Tracker {
	return s.state
}

// Dispatch applies ev and saves the result. A save error is logged and
// returned; the new state is kept in memory either way.
func (s *Session) Dispatch(ev habit.Event) error {
	s.state = habit.Reduce(s.state, ev)
	if err := s.store.Save(s.state); err != nil {
		s.log.Error("failed to save habits", "err", err)
		return err
	}
	return nil
}

// Close releases the underlying storage.
func (s *Session) Close() error {
	return s.store.Close()
}

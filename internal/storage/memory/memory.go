// Package memory keeps the tracker in process memory only. Nothing survives
// a restart.
package memory

import (
	"slices"

	"github.com/chris-regnier/habitctl/internal/habit"
	"github.com/chris-regnier/habitctl/internal/storage"
)

type Store struct {
	saved *habit.Tracker
}

func New() *Store {
	return &Store{}
}

func (s *Store) Load() (habit.Tracker, error) {
	if s.saved == nil {
		return habit.Tracker{}, storage.ErrNotFound
	}
	t := *s.saved
	t.Habits = slices.Clone(t.Habits)
	return t, nil
}

func (s *Store) Save(t habit.Tracker) error {
	t.Habits = slices.Clone(t.Habits)
	s.saved = &t
	return nil
}

func (s *Store) Close() error {
	return nil
}

var _ storage.Storage = (*Store)(nil)

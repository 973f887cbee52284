package habit

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Days is the size of the completion window tracked for every habit.
const Days = 20

// ErrDayCount is returned when decoding a habit whose completion record
// does not hold exactly Days flags.
var ErrDayCount = errors.New("completion record must hold exactly 20 days")

// Habit is a named activity with a fixed completion record, indexed by day.
type Habit struct {
	Name      string     `json:"name"`
	Completed [Days]bool `json:"completed"`
}

// New returns a habit with every day unchecked.
func New(name string) Habit {
	return Habit{Name: name}
}

// Count returns the number of completed days.
func (h Habit) Count() int {
	n := 0
	for _, done := range h.Completed {
		if done {
			n++
		}
	}
	return n
}

// UnmarshalJSON rejects completion records of the wrong length instead of
// silently truncating or zero-filling them.
func (h *Habit) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name      string `json:"name"`
		Completed []bool `json:"completed"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw.Completed) != Days {
		return fmt.Errorf("%w: habit %q has %d", ErrDayCount, raw.Name, len(raw.Completed))
	}
	h.Name = raw.Name
	copy(h.Completed[:], raw.Completed)
	return nil
}

// Tracker is the complete application state.
type Tracker struct {
	Habits       []Habit `json:"habits"`
	NewHabitName string  `json:"new_habit_name"`
}

// Empty returns the state used when nothing has been persisted yet.
func Empty() Tracker {
	return Tracker{Habits: []Habit{}}
}

// MarshalJSON encodes a nil habit list as [] so the file always holds an array.
func (t Tracker) MarshalJSON() ([]byte, error) {
	type plain Tracker
	if t.Habits == nil {
		t.Habits = []Habit{}
	}
	return json.Marshal(plain(t))
}

// Equal reports whether two trackers hold the same habits, in the same
// order, and the same staging buffer. Nil and empty habit lists are equal.
func (t Tracker) Equal(o Tracker) bool {
	if t.NewHabitName != o.NewHabitName || len(t.Habits) != len(o.Habits) {
		return false
	}
	for i := range t.Habits {
		if t.Habits[i] != o.Habits[i] {
			return false
		}
	}
	return true
}

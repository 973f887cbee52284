package habit

// Event is an input to Reduce.
type Event interface {
	event()
}

// UpdateNewHabitName replaces the staging buffer.
type UpdateNewHabitName struct {
	Name string
}

// AddHabit creates a habit from the staging buffer (the button action).
type AddHabit struct{}

// SubmitHabit creates a habit from the staging buffer (enter in the input).
type SubmitHabit struct{}

// ToggleHabit flips one day of one habit.
type ToggleHabit struct {
	Habit int
	Day   int
}

func (UpdateNewHabitName) event() {}
func (AddHabit) event()           {}
func (SubmitHabit) event()        {}
func (ToggleHabit) event()        {}

// Reduce returns the state that follows t after ev. It never modifies t:
// when the habit list changes the result gets its own copy.
func Reduce(t Tracker, ev Event) Tracker {
	switch ev := ev.(type) {
	case UpdateNewHabitName:
		t.NewHabitName = ev.Name
	case AddHabit, SubmitHabit:
		if t.NewHabitName == "" {
			return t
		}
		habits := make([]Habit, len(t.Habits), len(t.Habits)+1)
		copy(habits, t.Habits)
		t.Habits = append(habits, New(t.NewHabitName))
		t.NewHabitName = ""
	case ToggleHabit:
		if ev.Habit < 0 || ev.Habit >= len(t.Habits) {
			return t
		}
		// Day is bounded by the caller; an out-of-range day is ignored
		// rather than panicking on the array index.
		if ev.Day < 0 || ev.Day >= Days {
			return t
		}
		habits := make([]Habit, len(t.Habits))
		copy(habits, t.Habits)
		habits[ev.Habit].Completed[ev.Day] = !habits[ev.Habit].Completed[ev.Day]
		t.Habits = habits
	}
	return t
}

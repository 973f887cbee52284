package habit

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestSubmitAppendsHabit(t *testing.T) {
	for _, ev := range []Event{AddHabit{}, SubmitHabit{}} {
		start := Tracker{Habits: []Habit{New("Read")}, NewHabitName: "Exercise"}
		got := Reduce(start, ev)

		if len(got.Habits) != 2 {
			t.Fatalf("%T: expected 2 habits, got %d", ev, len(got.Habits))
		}
		last := got.Habits[1]
		if last.Name != "Exercise" {
			t.Errorf("%T: expected appended habit 'Exercise', got %q", ev, last.Name)
		}
		if last.Count() != 0 {
			t.Errorf("%T: expected new habit with no completed days, got %d", ev, last.Count())
		}
		if got.NewHabitName != "" {
			t.Errorf("%T: expected staging buffer cleared, got %q", ev, got.NewHabitName)
		}
		if len(start.Habits) != 1 {
			t.Errorf("%T: input state was modified", ev)
		}
	}
}

func TestSubmitEmptyNameIsNoop(t *testing.T) {
	start := Tracker{Habits: []Habit{New("Read")}}
	for _, ev := range []Event{AddHabit{}, SubmitHabit{}} {
		got := Reduce(start, ev)
		if !got.Equal(start) {
			t.Errorf("%T: expected unchanged state, got %+v", ev, got)
		}
	}
}

func TestSubmitWhitespaceNameIsKept(t *testing.T) {
	got := Reduce(Tracker{NewHabitName: " "}, SubmitHabit{})
	if len(got.Habits) != 1 || got.Habits[0].Name != " " {
		t.Errorf("expected habit named by a single space, got %+v", got.Habits)
	}
}

func TestDuplicateNamesAllowed(t *testing.T) {
	s := Empty()
	for range 2 {
		s = Reduce(s, UpdateNewHabitName{Name: "Walk"})
		s = Reduce(s, AddHabit{})
	}
	if len(s.Habits) != 2 {
		t.Fatalf("expected 2 habits, got %d", len(s.Habits))
	}
}

func TestUpdateNewHabitName(t *testing.T) {
	got := Reduce(Empty(), UpdateNewHabitName{Name: "Stretch"})
	if got.NewHabitName != "Stretch" {
		t.Errorf("expected staging buffer 'Stretch', got %q", got.NewHabitName)
	}
	got = Reduce(got, UpdateNewHabitName{Name: ""})
	if got.NewHabitName != "" {
		t.Errorf("expected cleared staging buffer, got %q", got.NewHabitName)
	}
}

func TestToggleIsInvolution(t *testing.T) {
	start := Tracker{Habits: []Habit{New("Read"), New("Run")}}
	for h := range start.Habits {
		for d := range Days {
			once := Reduce(start, ToggleHabit{Habit: h, Day: d})
			if once.Habits[h].Completed[d] == start.Habits[h].Completed[d] {
				t.Fatalf("toggle (%d,%d) did not flip", h, d)
			}
			twice := Reduce(once, ToggleHabit{Habit: h, Day: d})
			if !twice.Equal(start) {
				t.Fatalf("toggle (%d,%d) twice did not restore state", h, d)
			}
		}
	}
}

func TestToggleDoesNotModifyInput(t *testing.T) {
	start := Tracker{Habits: []Habit{New("Read")}}
	_ = Reduce(start, ToggleHabit{Habit: 0, Day: 5})
	if start.Habits[0].Completed[5] {
		t.Error("input state was modified by toggle")
	}
}

func TestToggleOutOfRange(t *testing.T) {
	start := Tracker{Habits: []Habit{New("Read")}, NewHabitName: "x"}
	tests := []struct {
		name string
		ev   ToggleHabit
	}{
		{"habit past end", ToggleHabit{Habit: 1, Day: 0}},
		{"habit far past end", ToggleHabit{Habit: 99, Day: 3}},
		{"negative habit", ToggleHabit{Habit: -1, Day: 3}},
		{"day past window", ToggleHabit{Habit: 0, Day: Days}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reduce(start, tt.ev)
			if !got.Equal(start) {
				t.Errorf("expected unchanged state, got %+v", got)
			}
		})
	}

	if got := Reduce(Empty(), ToggleHabit{Habit: 0, Day: 0}); len(got.Habits) != 0 {
		t.Errorf("toggle on empty tracker created habits: %+v", got.Habits)
	}
}

func TestScenarioExercise(t *testing.T) {
	s := Empty()
	s = Reduce(s, UpdateNewHabitName{Name: "Exercise"})
	s = Reduce(s, SubmitHabit{})

	want := Tracker{Habits: []Habit{{Name: "Exercise"}}}
	if !s.Equal(want) {
		t.Fatalf("expected %+v, got %+v", want, s)
	}

	s = Reduce(s, ToggleHabit{Habit: 0, Day: 3})
	if !s.Habits[0].Completed[3] {
		t.Fatal("expected day 3 completed after first toggle")
	}
	s = Reduce(s, ToggleHabit{Habit: 0, Day: 3})
	if s.Habits[0].Completed[3] {
		t.Fatal("expected day 3 cleared after second toggle")
	}
}

func TestTrackerJSON(t *testing.T) {
	s := Tracker{Habits: []Habit{New("Read")}, NewHabitName: "pending"}
	s.Habits[0].Completed[0] = true
	s.Habits[0].Completed[19] = true

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	out := string(data)
	for _, want := range []string{`"habits":[`, `"name":"Read"`, `"completed":[true,false`, `"new_habit_name":"pending"`} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %s in %s", want, out)
		}
	}

	var back Tracker
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(s) {
		t.Errorf("round trip mismatch: %+v vs %+v", back, s)
	}
}

func TestEmptyTrackerEncodesArray(t *testing.T) {
	data, err := json.Marshal(Tracker{})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"habits":[],"new_habit_name":""}` {
		t.Errorf("unexpected encoding: %s", data)
	}
}

func TestUnmarshalRejectsWrongDayCount(t *testing.T) {
	for _, in := range []string{
		`{"habits":[{"name":"a","completed":[true,false]}],"new_habit_name":""}`,
		`{"habits":[{"name":"a","completed":[]}],"new_habit_name":""}`,
		`{"habits":[{"name":"a"}],"new_habit_name":""}`,
	} {
		var s Tracker
		err := json.Unmarshal([]byte(in), &s)
		if !errors.Is(err, ErrDayCount) {
			t.Errorf("expected ErrDayCount for %s, got %v", in, err)
		}
	}
}

package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/chris-regnier/habitctl/internal/habit"
)

// FormatHabitAdded formats a creation confirmation message.
func FormatHabitAdded(w io.Writer, index int, h habit.Habit) {
	fmt.Fprintf(w, "Added habit %d: %s\n", index, h.Name)
}

// FormatToggled formats a toggle confirmation message.
func FormatToggled(w io.Writer, h habit.Habit, day int) {
	state := "not done"
	if h.Completed[day] {
		state = "done"
	}
	fmt.Fprintf(w, "%s: day %d %s (%d/%d)\n", h.Name, day, state, h.Count(), habit.Days)
}

// FormatTracker writes a plain-text grid, one line per habit, prefixed by
// its index for use with the toggle command.
func FormatTracker(w io.Writer, t habit.Tracker) {
	if len(t.Habits) == 0 {
		fmt.Fprintln(w, "No habits yet.")
		return
	}
	nw := nameWidth(t.Habits)
	iw := len(fmt.Sprint(len(t.Habits) - 1))
	fmt.Fprintf(w, "%s %s\n", strings.Repeat(" ", iw+1), dayHeader(nw))
	for i, h := range t.Habits {
		var cells strings.Builder
		for _, done := range h.Completed {
			if done {
				cells.WriteString("[x]")
			} else {
				cells.WriteString("[ ]")
			}
		}
		fmt.Fprintf(w, "%*d  %s %s  %2d/%d\n", iw, i, padName(h.Name, nw), cells.String(), h.Count(), habit.Days)
	}
}

// FormatJSON writes any value as JSON to the writer.
func FormatJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// HabitSummary is a JSON representation for list output.
type HabitSummary struct {
	Index     int    `json:"index"`
	Name      string `json:"name"`
	Completed []int  `json:"completed_days"`
	Count     int    `json:"count"`
}

// ToSummaries converts habits to summary format for JSON list output.
func ToSummaries(t habit.Tracker) []HabitSummary {
	summaries := make([]HabitSummary, len(t.Habits))
	for i, h := range t.Habits {
		days := []int{}
		for d, done := range h.Completed {
			if done {
				days = append(days, d)
			}
		}
		summaries[i] = HabitSummary{Index: i, Name: h.Name, Completed: days, Count: len(days)}
	}
	return summaries
}

// Report builds a Markdown summary of the tracker, one table row per habit.
func Report(t habit.Tracker) string {
	var b strings.Builder
	b.WriteString("# Habit Tracker\n\n")
	if len(t.Habits) == 0 {
		b.WriteString("No habits yet.\n")
		return b.String()
	}

	total := 0
	for _, h := range t.Habits {
		total += h.Count()
	}
	fmt.Fprintf(&b, "%d habits, %d of %d days completed.\n\n", len(t.Habits), total, len(t.Habits)*habit.Days)

	b.WriteString("| # | Habit | Done | Days |\n|--:|---|--:|---|\n")
	for i, h := range t.Habits {
		var days []string
		for d, done := range h.Completed {
			if done {
				days = append(days, fmt.Sprint(d))
			}
		}
		list := strings.Join(days, ", ")
		if list == "" {
			list = "-"
		}
		fmt.Fprintf(&b, "| %d | %s | %d/%d | %s |\n", i, strings.ReplaceAll(h.Name, "|", `\|`), h.Count(), habit.Days, list)
	}
	return b.String()
}

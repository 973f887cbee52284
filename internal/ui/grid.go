package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/chris-regnier/habitctl/internal/habit"
)

// Focus identifies the control that receives key input.
type Focus int

const (
	FocusGrid Focus = iota
	FocusInput
	FocusButton
)

const (
	title        = "Habit Tracker"
	addLabel     = "Add Habit"
	minNameWidth = 5
	maxNameWidth = 24
)

// GridView is the presentation state drawn alongside the tracker. None of
// it is persisted.
type GridView struct {
	Row    int    // cursor habit
	Col    int    // cursor day
	Focus  Focus  // focused control
	Input  string // rendered text entry for the staging buffer
	Notice string // one-line status, e.g. a failed save
}

// RenderTracker draws the whole screen body from the tracker: title, one
// row of day toggles per habit, the new-habit entry and the add button.
// It is rebuilt from scratch on every call.
func RenderTracker(t habit.Tracker, v GridView, theme Theme) string {
	var sections []string
	sections = append(sections, theme.HeaderStyle().Render(title), "")

	if len(t.Habits) == 0 {
		sections = append(sections, theme.HelpStyle().Render("No habits yet. Type a name below and press enter."))
	} else {
		nw := nameWidth(t.Habits)
		sections = append(sections, theme.HelpStyle().Render(dayHeader(nw)))
		for i, h := range t.Habits {
			sections = append(sections, renderHabitRow(i, h, nw, v, theme))
		}
	}
	sections = append(sections, "", v.Input)

	button := theme.ButtonStyle().Render(addLabel)
	if v.Focus == FocusButton {
		button = theme.FocusedButtonStyle().Render(addLabel)
	}
	sections = append(sections, "", button)

	if v.Notice != "" {
		sections = append(sections, "", theme.DangerStyle().Render(v.Notice))
	}
	return strings.Join(sections, "\n")
}

func renderHabitRow(i int, h habit.Habit, nw int, v GridView, theme Theme) string {
	var b strings.Builder
	b.WriteString(theme.ViewPaneStyle().Render(padName(h.Name, nw)))
	b.WriteString(" ")
	for d, done := range h.Completed {
		cell, style := "[ ]", theme.UncheckedStyle()
		if done {
			cell, style = "[x]", theme.CheckedStyle()
		}
		if v.Focus == FocusGrid && v.Row == i && v.Col == d {
			style = theme.CursorStyle()
		}
		b.WriteString(style.Render(cell))
	}
	b.WriteString(theme.HelpStyle().Render(fmt.Sprintf("  %2d/%d", h.Count(), habit.Days)))
	return b.String()
}

// dayHeader labels each cell with its day index, 0 through Days-1, the same
// numbering the toggle command takes. Labels are right-aligned inside the
// three-column cell so they sit over its middle.
func dayHeader(nw int) string {
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", nw+1))
	for d := range habit.Days {
		fmt.Fprintf(&b, "%2d ", d)
	}
	return strings.TrimRight(b.String(), " ")
}

func nameWidth(habits []habit.Habit) int {
	w := minNameWidth
	for _, h := range habits {
		w = max(w, lipgloss.Width(h.Name))
	}
	return min(w, maxNameWidth)
}

// padName fits name into exactly w terminal cells.
func padName(name string, w int) string {
	name = lipgloss.NewStyle().MaxWidth(w).Render(name)
	return name + strings.Repeat(" ", max(w-lipgloss.Width(name), 0))
}

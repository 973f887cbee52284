package cmd

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/chris-regnier/habitctl/internal/habit"
	"github.com/chris-regnier/habitctl/internal/ui"
	"github.com/spf13/cobra"
)

// Argument errors for the toggle command.
var (
	ErrHabitIndex = errors.New("no habit at that index")
	ErrDayIndex   = fmt.Errorf("day must be between 0 and %d", habit.Days-1)
)

var toggleCmd = &cobra.Command{
	Use:   "toggle <habit-index> <day>",
	Short: "Mark or unmark a day for a habit",
	Long:  "Flip one day of one habit. Habit indexes are shown by 'habitctl list'; days run from 0 to 19.",
	Example: `  habitctl toggle 0 3
  habitctl toggle 2 19 --json`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid habit index %q: %w", args[0], err)
		}
		day, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid day %q: %w", args[1], err)
		}
		return toggleRun(cmd.OutOrStdout(), index, day)
	},
}

// toggleRun validates both indexes before dispatching; the reducer would
// silently ignore an unknown habit, which is unhelpful on the command line.
func toggleRun(w io.Writer, index, day int) error {
	habits := session.State().Habits
	if index < 0 || index >= len(habits) {
		return fmt.Errorf("%w: %d (have %d)", ErrHabitIndex, index, len(habits))
	}
	if day < 0 || day >= habit.Days {
		return fmt.Errorf("%w: got %d", ErrDayIndex, day)
	}

	if err := session.Dispatch(habit.ToggleHabit{Habit: index, Day: day}); err != nil {
		return fmt.Errorf("saving habits: %w", err)
	}

	if jsonOutput {
		return ui.FormatJSON(w, ui.ToSummaries(session.State())[index])
	}
	ui.FormatToggled(w, session.State().Habits[index], day)
	return nil
}

func init() {
	rootCmd.AddCommand(toggleCmd)
}

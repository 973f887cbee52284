package cmd

import (
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/chris-regnier/habitctl/internal/habit"
	"github.com/chris-regnier/habitctl/internal/ui"
	"github.com/spf13/cobra"
)

// Name errors for the add command.
var (
	ErrEmptyName   = errors.New("habit name must not be empty")
	ErrInvalidName = errors.New("habit name must be valid UTF-8")
)

var addCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a habit",
	Long:  "Add a habit with all 20 days unchecked. Names need not be unique.",
	Example: `  habitctl add Exercise
  habitctl add "Read 10 pages"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return addRun(cmd.OutOrStdout(), args[0])
	},
}

// addRun stages name and submits it, the same two events the TUI sends.
func addRun(w io.Writer, name string) error {
	if name == "" {
		return ErrEmptyName
	}
	// Every backend stores text; invalid bytes would come back as U+FFFD.
	if !utf8.ValidString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if err := session.Dispatch(habit.UpdateNewHabitName{Name: name}); err != nil {
		return fmt.Errorf("saving habits: %w", err)
	}
	if err := session.Dispatch(habit.SubmitHabit{}); err != nil {
		return fmt.Errorf("saving habits: %w", err)
	}

	habits := session.State().Habits
	index := len(habits) - 1
	if jsonOutput {
		return ui.FormatJSON(w, ui.ToSummaries(session.State())[index])
	}
	ui.FormatHabitAdded(w, index, habits[index])
	return nil
}

func init() {
	rootCmd.AddCommand(addCmd)
}

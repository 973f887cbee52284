package cmd

import (
	"bytes"
	"io"

	"github.com/chris-regnier/habitctl/internal/ui"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List habits and their completed days",
	Long:  "Print every habit with its index and 20-day completion grid, in the order habits were added.",
	Example: `  habitctl list
  habitctl list --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return listRun(cmd.OutOrStdout())
	},
}

func listRun(w io.Writer) error {
	state := session.State()
	if jsonOutput {
		return ui.FormatJSON(w, ui.ToSummaries(state))
	}

	var buf bytes.Buffer
	ui.FormatTracker(&buf, state)
	return ui.OutputOrPage(w, buf.String(), appConfig.MaxWidth, ui.ResolveTheme(appConfig.Theme))
}

func init() {
	rootCmd.AddCommand(listCmd)
}

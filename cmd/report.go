package cmd

import (
	"io"
	"os"

	"github.com/chris-regnier/habitctl/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var reportWidth int

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show a formatted summary of all habits",
	Long:  "Render a Markdown summary of completion counts per habit. Use --raw for the Markdown source.",
	Example: `  habitctl report
  habitctl report --raw > habits.md`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, _ := cmd.Flags().GetBool("raw")
		return reportRun(cmd.OutOrStdout(), raw, term.IsTerminal(int(os.Stdout.Fd())))
	},
}

func reportRun(w io.Writer, raw, tty bool) error {
	md := ui.Report(session.State())
	if raw {
		_, err := io.WriteString(w, md)
		return err
	}

	theme := ui.ResolveTheme(appConfig.Theme)
	style := theme.MarkdownStyle
	if !tty {
		style = "notty"
	}
	rendered := ui.RenderMarkdownWithStyle(md, reportWidth, style)
	return ui.OutputOrPage(w, rendered+"\n", appConfig.MaxWidth, theme)
}

func init() {
	reportCmd.Flags().Bool("raw", false, "print the Markdown source instead of rendering it")
	reportCmd.Flags().IntVar(&reportWidth, "width", 80, "word-wrap width for the rendered report")
	rootCmd.AddCommand(reportCmd)
}

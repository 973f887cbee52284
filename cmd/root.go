package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/chris-regnier/habitctl/internal/config"
	"github.com/chris-regnier/habitctl/internal/logger"
	"github.com/chris-regnier/habitctl/internal/storage"
	"github.com/chris-regnier/habitctl/internal/storage/bolt"
	"github.com/chris-regnier/habitctl/internal/storage/jsonfile"
	"github.com/chris-regnier/habitctl/internal/storage/markdown"
	"github.com/chris-regnier/habitctl/internal/storage/memory"
	"github.com/chris-regnier/habitctl/internal/storage/sqlite"
	"github.com/chris-regnier/habitctl/internal/tracker"
	"github.com/chris-regnier/habitctl/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	cfgFile        string
	jsonOutput     bool
	storageBackend string
	dataDir        string
	logLevel       string
	appConfig      *config.Config
	session        *tracker.Session
)

var rootCmd = &cobra.Command{
	Use:   "habitctl",
	Short: "Track daily habits over a 20-day window",
	Long: `habitctl tracks which of the last 20 days you completed each habit on.
Run it in a terminal for the interactive grid, or use the subcommands from scripts.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		appConfig = cfg

		// Flags override config and environment
		if storageBackend != "" {
			appConfig.Storage = storageBackend
		}
		if dataDir != "" {
			appConfig.DataDir = dataDir
		}
		if logLevel != "" {
			appConfig.LogLevel = logLevel
		}

		if err := logger.Setup(appConfig.LogLevel, appConfig.LogFormat); err != nil {
			return err
		}

		store, err := openStorage(appConfig.Storage, appConfig.DataDir)
		if err != nil {
			return err
		}
		logger.Debug("opened storage", "backend", appConfig.Storage, "data_dir", appConfig.DataDir)
		session = tracker.Open(store, logger.With("storage", appConfig.Storage))
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if session == nil {
			return nil
		}
		return session.Close()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			// Non-TTY: print the grid instead of starting the TUI
			ui.FormatTracker(cmd.OutOrStdout(), session.State())
			return nil
		}
		// The save-failure notice replaces log lines while the alt screen is up.
		restore := logger.Redirect(io.Discard)
		defer restore()
		return ui.RunTUI(session, ui.TUIConfig{
			MaxWidth: appConfig.MaxWidth,
			Theme:    ui.ResolveTheme(appConfig.Theme),
		})
	},
}

// openStorage initializes the named storage backend rooted at dir.
func openStorage(backend, dir string) (storage.Storage, error) {
	var (
		s   storage.Storage
		err error
	)
	switch backend {
	case "json":
		s, err = jsonfile.New(dir)
	case "markdown":
		s, err = markdown.New(dir)
	case "sqlite":
		s, err = sqlite.New(dir)
	case "bolt":
		s, err = bolt.New(dir)
	case "memory":
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", backend)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s storage: %w", backend, err)
	}
	return s, nil
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().StringVar(&storageBackend, "storage", "", "storage backend (json|markdown|sqlite|bolt|memory)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "directory holding the habit data file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug|info|warn|error)")

	// Silence Cobra's built-in error and usage printing so we control stderr output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

package cmd

import (
	"testing"

	"github.com/chris-regnier/habitctl/internal/config"
	"github.com/chris-regnier/habitctl/internal/logger"
	"github.com/chris-regnier/habitctl/internal/storage"
	"github.com/chris-regnier/habitctl/internal/storage/jsonfile"
	"github.com/chris-regnier/habitctl/internal/tracker"
)

func setupTestStore(t *testing.T) storage.Storage {
	t.Helper()
	dir := t.TempDir()
	s, err := jsonfile.New(dir)
	if err != nil {
		t.Fatalf("creating test storage: %v", err)
	}
	return s
}

func setupTestEnv(t *testing.T) {
	t.Helper()
	session = tracker.Open(setupTestStore(t), logger.Get())
	t.Cleanup(func() { session.Close() })
	appConfig = &config.Config{}
	jsonOutput = false
}

// resetFlags clears flag-bound globals left over from an earlier Execute.
func resetFlags(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", "")
	cfgFile, storageBackend, dataDir, logLevel = "", "", "", ""
	jsonOutput = false
	session = nil
}

package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/chris-regnier/habitctl/internal/habit"
	"github.com/chris-regnier/habitctl/internal/storage"
)

// FileName is the data file kept in the data directory.
const FileName = "habit_data.json"

// Store implements storage.Storage as a single JSON file.
type Store struct {
	path string
}

// New creates a JSON file store in dataDir. The file itself is created on
// the first Save.
func New(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: creating data directory: %v", storage.ErrStorage, err)
	}
	return &Store{path: filepath.Join(dataDir, FileName)}, nil
}

// Path returns the data file location.
func (s *Store) Path() string {
	return s.path
}

// Close is a no-op for the JSON backend.
func (s *Store) Close() error {
	return nil
}

// Load reads and decodes the data file.
func (s *Store) Load() (habit.Tracker, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return habit.Tracker{}, storage.ErrNotFound
		}
		return habit.Tracker{}, fmt.Errorf("%w: reading %s: %v", storage.ErrStorage, s.path, err)
	}

	var t habit.Tracker
	if err := json.Unmarshal(data, &t); err != nil {
		return habit.Tracker{}, fmt.Errorf("%w: %s: %v", storage.ErrCorrupt, s.path, err)
	}
	return t, nil
}

// Save overwrites the data file with the encoded tracker.
func (s *Store) Save(t habit.Tracker) error {
	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("%w: encoding habits: %v", storage.ErrStorage, err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("%w: writing %s: %v", storage.ErrStorage, s.path, err)
	}
	return nil
}

var _ storage.Storage = (*Store)(nil)

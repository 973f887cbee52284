package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chris-regnier/habitctl/internal/habit"
	"github.com/chris-regnier/habitctl/internal/storage"
	_ "github.com/tursodatabase/go-libsql"
)

// FileName is the database file kept in the data directory.
const FileName = "habitctl.db"

// Store implements storage.Storage using SQLite via Turso/libSQL.
type Store struct {
	db *sql.DB
}

// New creates a new SQLite storage backend.
func New(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: creating data directory: %v", storage.ErrStorage, err)
	}

	dbPath := filepath.Join(dataDir, FileName)
	db, err := sql.Open("libsql", "file:"+dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: opening database: %v", storage.ErrStorage, err)
	}

	// The pragma answers with the resulting mode, so it must be read as a row.
	var mode string
	if err := db.QueryRow("PRAGMA journal_mode=WAL").Scan(&mode); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: enabling WAL mode: %v", storage.ErrStorage, err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// habits.position keeps insertion order; names are not unique.
// staging holds at most one row (id = 1); its presence marks that the
// tracker has been saved at least once.
func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS habits (
			position  INTEGER PRIMARY KEY,
			name      TEXT NOT NULL,
			completed TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS staging (
			id             INTEGER PRIMARY KEY CHECK(id = 1),
			new_habit_name TEXT NOT NULL
		);
	`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("%w: creating schema: %v", storage.ErrStorage, err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Load reads the tracker from the database.
func (s *Store) Load() (habit.Tracker, error) {
	var t habit.Tracker
	err := s.db.QueryRow("SELECT new_habit_name FROM staging WHERE id = 1").Scan(&t.NewHabitName)
	if err != nil {
		if err == sql.ErrNoRows {
			return habit.Tracker{}, storage.ErrNotFound
		}
		return habit.Tracker{}, fmt.Errorf("%w: querying staging: %v", storage.ErrStorage, err)
	}

	rows, err := s.db.Query("SELECT name, completed FROM habits ORDER BY position")
	if err != nil {
		return habit.Tracker{}, fmt.Errorf("%w: querying habits: %v", storage.ErrStorage, err)
	}
	defer rows.Close()

	t.Habits = []habit.Habit{}
	for rows.Next() {
		var name, completed string
		if err := rows.Scan(&name, &completed); err != nil {
			return habit.Tracker{}, fmt.Errorf("%w: scanning habit: %v", storage.ErrStorage, err)
		}
		var flags []bool
		if err := json.Unmarshal([]byte(completed), &flags); err != nil {
			return habit.Tracker{}, fmt.Errorf("%w: habit %q: %v", storage.ErrCorrupt, name, err)
		}
		if len(flags) != habit.Days {
			return habit.Tracker{}, fmt.Errorf("%w: %w: habit %q has %d", storage.ErrCorrupt, habit.ErrDayCount, name, len(flags))
		}
		h := habit.New(name)
		copy(h.Completed[:], flags)
		t.Habits = append(t.Habits, h)
	}
	if err := rows.Err(); err != nil {
		return habit.Tracker{}, fmt.Errorf("%w: iterating habits: %v", storage.ErrStorage, err)
	}
	return t, nil
}

// Save replaces the stored tracker in a single transaction.
func (s *Store) Save(t habit.Tracker) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: beginning transaction: %v", storage.ErrStorage, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM habits"); err != nil {
		return fmt.Errorf("%w: clearing habits: %v", storage.ErrStorage, err)
	}
	for i, h := range t.Habits {
		completed, err := json.Marshal(h.Completed)
		if err != nil {
			return fmt.Errorf("%w: encoding habit %q: %v", storage.ErrStorage, h.Name, err)
		}
		if _, err := tx.Exec(
			"INSERT INTO habits (position, name, completed) VALUES (?, ?, ?)",
			i, h.Name, string(completed),
		); err != nil {
			return fmt.Errorf("%w: inserting habit: %v", storage.ErrStorage, err)
		}
	}
	if _, err := tx.Exec(
		"INSERT INTO staging (id, new_habit_name) VALUES (1, ?) ON CONFLICT(id) DO UPDATE SET new_habit_name = excluded.new_habit_name",
		t.NewHabitName,
	); err != nil {
		return fmt.Errorf("%w: saving staging buffer: %v", storage.ErrStorage, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing: %v", storage.ErrStorage, err)
	}
	return nil
}

var _ storage.Storage = (*Store)(nil)

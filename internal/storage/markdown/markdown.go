package markdown

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/adrg/frontmatter"
	"github.com/chris-regnier/habitctl/internal/habit"
	"github.com/chris-regnier/habitctl/internal/storage"
	"go.yaml.in/yaml/v4"
)

// FileName is the data file kept in the data directory.
const FileName = "habit_data.md"

// Store implements storage.Storage as a Markdown file: the tracker lives in
// YAML front-matter and the body is a table for reading the file by hand.
// The body is regenerated on every save and ignored on load.
type Store struct {
	path string
}

// New creates a new Markdown file storage backend.
func New(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: creating data directory: %v", storage.ErrStorage, err)
	}
	return &Store{path: filepath.Join(dataDir, FileName)}, nil
}

// Close is a no-op for the Markdown backend.
func (s *Store) Close() error {
	return nil
}

// quoted is a name written as a double-quoted scalar. Line breaks are
// escaped, so no name can put a "---" line inside the front-matter, and
// values like "~" or "yes" stay strings.
type quoted string

func (q quoted) MarshalYAML() (any, error) {
	return &yaml.Node{
		Kind:  yaml.ScalarNode,
		Style: yaml.DoubleQuotedStyle,
		Tag:   "!!str",
		Value: string(q),
	}, nil
}

type fmHabit struct {
	Name      quoted `yaml:"name"`
	Completed []bool `yaml:"completed,flow"`
}

type frontMatter struct {
	Habits       *[]fmHabit `yaml:"habits"`
	NewHabitName quoted     `yaml:"new_habit_name"`
}

func (s *Store) marshal(t habit.Tracker) ([]byte, error) {
	habits := make([]fmHabit, len(t.Habits))
	for i, h := range t.Habits {
		habits[i] = fmHabit{Name: quoted(h.Name), Completed: h.Completed[:]}
	}
	fm, err := yaml.Marshal(frontMatter{Habits: &habits, NewHabitName: quoted(t.NewHabitName)})
	if err != nil {
		return nil, fmt.Errorf("%w: encoding front-matter: %v", storage.ErrStorage, err)
	}

	var b bytes.Buffer
	b.WriteString("---\n")
	b.Write(fm)
	b.WriteString("---\n\n")
	b.WriteString(Table(t))
	return b.Bytes(), nil
}

func (s *Store) unmarshal(data []byte) (habit.Tracker, error) {
	var fm frontMatter
	if _, err := frontmatter.Parse(bytes.NewReader(data), &fm); err != nil {
		return habit.Tracker{}, fmt.Errorf("%w: parsing front-matter: %v", storage.ErrCorrupt, err)
	}
	if fm.Habits == nil {
		return habit.Tracker{}, fmt.Errorf("%w: front-matter has no habits list", storage.ErrCorrupt)
	}

	t := habit.Tracker{Habits: make([]habit.Habit, len(*fm.Habits)), NewHabitName: string(fm.NewHabitName)}
	for i, h := range *fm.Habits {
		if len(h.Completed) != habit.Days {
			return habit.Tracker{}, fmt.Errorf("%w: %w: habit %q has %d", storage.ErrCorrupt, habit.ErrDayCount, h.Name, len(h.Completed))
		}
		t.Habits[i].Name = string(h.Name)
		copy(t.Habits[i].Completed[:], h.Completed)
	}
	return t, nil
}

// Table renders the tracker as a Markdown table, one row per habit.
func Table(t habit.Tracker) string {
	var b strings.Builder
	b.WriteString("| Habit |")
	for d := range habit.Days {
		fmt.Fprintf(&b, " %d |", d)
	}
	b.WriteString(" Done |\n|---|")
	for range habit.Days {
		b.WriteString(":-:|")
	}
	b.WriteString("--:|\n")
	for _, h := range t.Habits {
		fmt.Fprintf(&b, "| %s |", escapeCell(h.Name))
		for _, done := range h.Completed {
			if done {
				b.WriteString(" x |")
			} else {
				b.WriteString("   |")
			}
		}
		fmt.Fprintf(&b, " %d/%d |\n", h.Count(), habit.Days)
	}
	return b.String()
}

var cellEscaper = strings.NewReplacer("|", `\|`, "\r\n", " ", "\n", " ", "\r", " ")

// escapeCell keeps a name inside one table cell.
func escapeCell(s string) string {
	return cellEscaper.Replace(s)
}

// Load reads the data file and decodes its front-matter.
func (s *Store) Load() (habit.Tracker, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return habit.Tracker{}, storage.ErrNotFound
		}
		return habit.Tracker{}, fmt.Errorf("%w: reading %s: %v", storage.ErrStorage, s.path, err)
	}
	return s.unmarshal(data)
}

// Save replaces the data file.
func (s *Store) Save(t habit.Tracker) error {
	data, err := s.marshal(t)
	if err != nil {
		return err
	}
	return s.atomicWrite(data)
}

// atomicWrite writes data to a temp file then renames it over the data file.
func (s *Store) atomicWrite(data []byte) error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: creating temp file: %v", storage.ErrStorage, err)
	}
	tmpName := tmp.Name()

	if err := syscall.Flock(int(tmp.Fd()), syscall.LOCK_EX); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: acquiring lock: %v", storage.ErrStorage, err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: writing temp file: %v", storage.ErrStorage, err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: closing temp file: %v", storage.ErrStorage, err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: renaming file: %v", storage.ErrStorage, err)
	}

	return nil
}

var _ storage.Storage = (*Store)(nil)

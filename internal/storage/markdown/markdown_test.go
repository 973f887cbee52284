package markdown

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chris-regnier/habitctl/internal/habit"
	"github.com/chris-regnier/habitctl/internal/storage"
)

func TestSaveWritesFrontMatterAndTable(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	if err != nil {
		t.Fatal(err)
	}

	h := habit.New("Exercise")
	h.Completed[3] = true
	if err := s.Save(habit.Tracker{Habits: []habit.Habit{h}, NewHabitName: "Read"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	if !strings.HasPrefix(out, "---\n") {
		t.Errorf("expected front-matter delimiter, got %q", out[:10])
	}
	for _, want := range []string{`new_habit_name: "Read"`, `name: "Exercise"`, "| Habit | 0 | 1 |", " 19 | Done |", "| Exercise |", " 1/20 |"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in file:\n%s", want, out)
		}
	}
}

func TestTableEscapesPipes(t *testing.T) {
	out := Table(habit.Tracker{Habits: []habit.Habit{habit.New("a | b")}})
	if !strings.Contains(out, `| a \| b |`) {
		t.Errorf("expected escaped pipe, got:\n%s", out)
	}
	if lines := strings.Count(out, "\n"); lines != 3 {
		t.Errorf("expected header, separator and one row, got %d lines", lines)
	}
}

func TestSaveKeepsDelimiterLinesOutOfNames(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	if err != nil {
		t.Fatal(err)
	}
	name := "x\n---\nfoo: bar"
	want := habit.Tracker{Habits: []habit.Habit{habit.New(name)}, NewHabitName: name}
	if err := s.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		t.Fatal(err)
	}
	delimiters := 0
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == "---" {
			delimiters++
		}
	}
	if delimiters != 2 {
		t.Errorf("expected only the 2 front-matter delimiters, got %d:\n%s", delimiters, data)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !got.Equal(want) {
		t.Errorf("round trip mismatch:\n got  %+v\n want %+v", got, want)
	}
}

func TestTableKeepsMultilineNameOnOneRow(t *testing.T) {
	out := Table(habit.Tracker{Habits: []habit.Habit{habit.New("a\nb")}})
	if !strings.Contains(out, "| a b |") {
		t.Errorf("expected newline folded to a space, got:\n%s", out)
	}
	if lines := strings.Count(out, "\n"); lines != 3 {
		t.Errorf("expected header, separator and one row, got %d lines", lines)
	}
}

func TestLoadCorrupt(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"no front-matter", "# Habits\n\nnothing here\n"},
		{"bad yaml", "---\nhabits: [unclosed\n---\n"},
		{"short completed", "---\nhabits:\n  - name: a\n    completed: [true, false]\nnew_habit_name: \"\"\n---\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			s, err := New(dir)
			if err != nil {
				t.Fatal(err)
			}
			if err := os.WriteFile(filepath.Join(dir, FileName), []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			_, err = s.Load()
			if !errors.Is(err, storage.ErrCorrupt) {
				t.Errorf("expected ErrCorrupt, got %v", err)
			}
		})
	}
}

func TestLoadIgnoresEditedBody(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	if err != nil {
		t.Fatal(err)
	}
	want := habit.Tracker{Habits: []habit.Habit{habit.New("Walk")}}
	if err := s.Save(want); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(dir, FileName)
	data, _ := os.ReadFile(path)
	data = append(data, []byte("\nnotes added by hand\n")...)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !got.Equal(want) {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

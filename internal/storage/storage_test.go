package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pfrederiksen/exam-calendar/internal/exam"
)

func testCatalog() *exam.Catalog {
	slot := exam.TimeRange{Start: exam.NewClock(8, 0), End: exam.NewClock(11, 0)}
	catalog := exam.NewCatalog()
	catalog.Add("Spring 2024 Exam Calendar", exam.Calendar{
		exam.Named("ST 311"): {Date: exam.Date{Year: 2024, Month: time.May, Day: 1}, Slot: slot},
	})
	catalog.Add("Fall 2023 Exam Calendar", exam.Calendar{
		exam.Recurring(exam.NewWeekdaySet(exam.Monday, exam.Wednesday, exam.Friday), exam.NewClock(9, 0)): {
			Date: exam.Date{Year: 2023, Month: time.December, Day: 11},
			Slot: slot,
		},
		exam.Span(exam.NewClock(18, 0), exam.NewClock(23, 59)): {
			Date: exam.Date{Year: 2023, Month: time.December, Day: 12},
			Slot: slot,
		},
	})
	return catalog
}

func TestSaveLoadCatalog(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	want := testCatalog()
	if err := store.SaveCatalog(want); err != nil {
		t.Fatalf("SaveCatalog() error: %v", err)
	}

	got, err := store.LoadCatalog()
	if err != nil {
		t.Fatalf("LoadCatalog() error: %v", err)
	}
	if !got.Equal(want) {
		t.Errorf("LoadCatalog() = %v, want %v", got.Semesters(), want.Semesters())
	}
}

func TestLoadCatalog_Missing(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	if _, err := store.LoadCatalog(); !errors.Is(err, ErrNoSnapshot) {
		t.Errorf("LoadCatalog() error = %v, want ErrNoSnapshot", err)
	}
}

func TestLoadFile_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), SnapshotFile)
	if err := os.WriteFile(path, []byte(`{"Fall 2023 Exam Calendar": `), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFile(path)
	if err == nil || !strings.Contains(err.Error(), "parsing snapshot") {
		t.Errorf("LoadFile() error = %v, want parsing error", err)
	}
}

func TestSaveFile_ReplacesExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, SnapshotFile)
	if err := os.WriteFile(path, []byte("old contents"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := SaveFile(path, testCatalog()); err != nil {
		t.Fatalf("SaveFile() error: %v", err)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if loaded.Len() != 2 {
		t.Errorf("loaded %d semesters, want 2", loaded.Len())
	}

	// No temporary files are left next to the snapshot.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("data directory holds %v, want only %s", names, SnapshotFile)
	}
}

func TestSaveFile_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", SnapshotFile)

	if err := SaveFile(path, testCatalog()); err == nil {
		t.Fatal("SaveFile() expected error for missing directory")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("snapshot should not exist after a failed save, stat error = %v", err)
	}
}

func TestNew_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	store, err := New(dir)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("data directory not created: %v", err)
	}
	if store.SnapshotPath() != filepath.Join(dir, SnapshotFile) {
		t.Errorf("SnapshotPath() = %q", store.SnapshotPath())
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	got, err := ExpandHome("~/.local/share/exam-calendar")
	if err != nil {
		t.Fatalf("ExpandHome() error: %v", err)
	}
	if want := filepath.Join(home, ".local/share/exam-calendar"); got != want {
		t.Errorf("ExpandHome() = %q, want %q", got, want)
	}

	if got, _ := ExpandHome("/var/lib/exams"); got != "/var/lib/exams" {
		t.Errorf("ExpandHome() changed an absolute path: %q", got)
	}
}

package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pfrederiksen/exam-calendar/internal/exam"
)

// SnapshotFile is the name of the catalog snapshot inside the data directory
const SnapshotFile = "exams.json"

// ErrNoSnapshot is returned when no snapshot has been saved yet
var ErrNoSnapshot = errors.New("no saved exam catalog")

// Storage handles persistence of catalog snapshots
type Storage struct {
	dataDir string
}

// New creates a Storage rooted at dataDir, creating the directory if needed.
// A leading "~/" is expanded to the home directory.
func New(dataDir string) (*Storage, error) {
	dataDir, err := ExpandHome(dataDir)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Storage{
		dataDir: dataDir,
	}, nil
}

// ExpandHome replaces a leading "~/" with the user's home directory
func ExpandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, path[2:]), nil
}

// SnapshotPath returns the path of the catalog snapshot
func (s *Storage) SnapshotPath() string {
	return filepath.Join(s.dataDir, SnapshotFile)
}

// LoadCatalog reads the saved catalog
func (s *Storage) LoadCatalog() (*exam.Catalog, error) {
	return LoadFile(s.SnapshotPath())
}

// SaveCatalog writes the catalog snapshot
func (s *Storage) SaveCatalog(catalog *exam.Catalog) error {
	return SaveFile(s.SnapshotPath(), catalog)
}

// LoadFile reads a catalog snapshot from path
func LoadFile(path string) (*exam.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoSnapshot, path)
		}
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	catalog := exam.NewCatalog()
	if err := json.Unmarshal(data, catalog); err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w", err)
	}
	return catalog, nil
}

// SaveFile writes catalog to path. The data goes to a temporary file in the
// same directory first and is renamed into place, so a failed save never
// leaves a truncated snapshot behind.
func SaveFile(path string, catalog *exam.Catalog) error {
	data, err := json.Marshal(catalog)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".exams-*.json")
	if err != nil {
		return fmt.Errorf("creating snapshot: %w", err)
	}
	defer os.Remove(tmp.Name()) // nolint:errcheck

	if err := tmp.Chmod(0644); err != nil {
		tmp.Close() // nolint:errcheck
		return fmt.Errorf("creating snapshot: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close() // nolint:errcheck
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing snapshot: %w", err)
	}
	return nil
}

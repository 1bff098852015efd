// Package storage persists the notebook as a JSON blob under the data
// directory, with timestamped backups alongside it.
package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"scribble/internal/domain"
	"scribble/internal/ports"
)

const notebookFile = "notebook.json"

// Store implements ports.NotebookStore on the local filesystem.
type Store struct {
	dataDir      string
	notebookPath string
}

var _ ports.NotebookStore = (*Store)(nil)

// NewStore creates the data directory if needed and returns a store rooted
// in it.
func NewStore(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &Store{
		dataDir:      dataDir,
		notebookPath: filepath.Join(dataDir, notebookFile),
	}, nil
}

// Load reads the persisted notebook. A missing file is not an error: it
// returns an empty notebook so the app can start fresh.
func (s *Store) Load() (*domain.Notebook, error) {
	data, err := os.ReadFile(s.notebookPath)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.NewNotebook(), nil
		}
		return nil, fmt.Errorf("failed to read notebook: %w", err)
	}

	nb := domain.NewNotebook()
	if err := json.Unmarshal(data, nb); err != nil {
		return nil, fmt.Errorf("failed to parse notebook: %w", err)
	}
	return nb, nil
}

// Save serializes the whole notebook. The write goes to a temp file first
// and is renamed into place, so a crash mid-write never truncates the
// previous copy.
func (s *Store) Save(nb *domain.Notebook) error {
	data, err := json.MarshalIndent(nb, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize notebook: %w", err)
	}

	tmp := s.notebookPath + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write notebook: %w", err)
	}
	if err := os.Rename(tmp, s.notebookPath); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace notebook: %w", err)
	}
	return nil
}

// Backup copies the current persisted file into a timestamped archive and
// returns the backup path. Backing up before anything was ever saved is an
// error.
func (s *Store) Backup() (string, error) {
	backupDir := filepath.Join(s.dataDir, "backups")
	if err := os.MkdirAll(backupDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	stamp := time.Now().UTC().Format("20060102_150405")
	backupPath := filepath.Join(backupDir, fmt.Sprintf("notebook_backup_%s.json", stamp))

	if err := copyFile(s.notebookPath, backupPath); err != nil {
		return "", fmt.Errorf("backup failed: %w", err)
	}
	return backupPath, nil
}

// ListBackups returns existing backup paths, most recent first.
func (s *Store) ListBackups() ([]string, error) {
	backupDir := filepath.Join(s.dataDir, "backups")
	entries, err := os.ReadDir(backupDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var backups []string
	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() && strings.HasPrefix(name, "notebook_backup_") && strings.HasSuffix(name, ".json") {
			backups = append(backups, filepath.Join(backupDir, name))
		}
	}
	// Filenames embed the timestamp, so lexical order is chronological.
	sort.Sort(sort.Reverse(sort.StringSlice(backups)))
	return backups, nil
}

// Restore replaces the persisted notebook with the given backup.
func (s *Store) Restore(backupPath string) error {
	if err := copyFile(backupPath, s.notebookPath); err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}

package protocol

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// SequenceStore persists the last issued sequence number across restarts.
type SequenceStore interface {
	// Load reads the persisted value. A missing store yields 0 with no error.
	Load() (int, error)
	// Save durably records the value before the identifier is handed out.
	Save(value int) error
}

// FileSequenceStore keeps the counter as decimal ASCII in a single text file.
// Save writes to a temp file in the same directory and renames it over the
// target, so a crash mid-write never leaves a truncated counter behind. A
// crash between issuance and Save can still replay sequence numbers on
// restart; the service runs as a single writer and accepts that window.
type FileSequenceStore struct {
	path string
}

func NewFileSequenceStore(path string) *FileSequenceStore {
	return &FileSequenceStore{path: path}
}

func (s *FileSequenceStore) Load() (int, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("read sequence file %s: %w", s.path, err)
	}

	value, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || value < 0 {
		return 0, fmt.Errorf("invalid sequence file contents %q", strings.TrimSpace(string(data)))
	}
	return value, nil
}

func (s *FileSequenceStore) Save(value int) error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp sequence file: %w", err)
	}

	if _, err := tmp.WriteString(strconv.Itoa(value)); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write temp sequence file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("sync temp sequence file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp sequence file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace sequence file: %w", err)
	}
	return nil
}

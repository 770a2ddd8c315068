package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/Tiliavir/daily-proof/internal/model"
)

// DefaultDataFile is the file name of the tracker document inside the data
// directory.
const DefaultDataFile = "tracker_data.json"

// ErrCorrupt marks a data file that exists but does not hold a JSON object.
var ErrCorrupt = errors.New("corrupt tracker document")

// Store loads and saves the whole tracker document.
//
// Load always returns a usable document. When the backing data cannot be
// read or parsed the document is empty and the error says why, so callers
// can log the degradation without failing the request.
type Store interface {
	Load() (model.Document, error)
	Save(doc model.Document) error
}

// FileStore keeps the document in a single indented JSON file.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore returns a store backed by the file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the document. A corrupt file is moved aside to <path>.corrupt
// (or .corrupt.N when that exists) so the next save starts from a clean file
// without losing the old bytes.
func (s *FileStore) Load() (model.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensure(); err != nil {
		return model.Document{}, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return model.Document{}, fmt.Errorf("storage error reading %s: %w", s.path, err)
	}

	doc, err := Decode(data)
	if err != nil {
		backupPath := nextBackupPath(s.path)
		if renameErr := os.Rename(s.path, backupPath); renameErr != nil {
			return model.Document{}, fmt.Errorf("%s: %w", s.path, err)
		}
		return model.Document{}, fmt.Errorf("%s (backed up to %s): %w", s.path, backupPath, err)
	}
	return doc, nil
}

// nextBackupPath returns <path>.corrupt, or <path>.corrupt.N for the first
// N not yet taken, so earlier backups are never overwritten.
func nextBackupPath(path string) string {
	backup := path + ".corrupt"
	for n := 1; ; n++ {
		if _, err := os.Stat(backup); err != nil {
			return backup
		}
		backup = fmt.Sprintf("%s.corrupt.%d", path, n)
	}
}

// Save atomically replaces the file with the indented document.
func (s *FileStore) Save(doc model.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("storage error creating directories: %w", err)
	}

	data, err := Encode(doc)
	if err != nil {
		return err
	}

	// Atomic write: write to temp file then rename.
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("storage error writing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("storage error renaming temp file: %w", err)
	}
	return nil
}

// ensure creates the data directory and an empty document if needed.
func (s *FileStore) ensure() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("storage error creating directories: %w", err)
	}
	_, err := os.Stat(s.path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("storage error checking %s: %w", s.path, err)
	}
	if err := os.WriteFile(s.path, []byte("{}\n"), 0o644); err != nil {
		return fmt.Errorf("storage error creating %s: %w", s.path, err)
	}
	return nil
}

// Decode parses a tracker document. Anything other than a top-level JSON
// object is reported as ErrCorrupt.
func Decode(data []byte) (model.Document, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("%w: top-level value is not an object", ErrCorrupt)
	}
	var doc model.Document
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if doc == nil {
		doc = model.Document{}
	}
	return doc, nil
}

// Encode renders the document as indented JSON with a trailing newline.
func Encode(doc model.Document) ([]byte, error) {
	if doc == nil {
		doc = model.Document{}
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("storage error marshalling JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// MemoryStore keeps the document in memory. It is used by tests and by
// callers that want to aggregate over a document without touching disk.
type MemoryStore struct {
	mu    sync.Mutex
	doc   model.Document
	saves int
}

// NewMemoryStore returns a store seeded with a copy of doc.
func NewMemoryStore(doc model.Document) *MemoryStore {
	if doc == nil {
		doc = model.Document{}
	}
	return &MemoryStore{doc: doc.Clone()}
}

// Load returns a copy of the stored document.
func (m *MemoryStore) Load() (model.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.doc.Clone(), nil
}

// Save replaces the stored document with a copy of doc.
func (m *MemoryStore) Save(doc model.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.doc = doc.Clone()
	m.saves++
	return nil
}

// Saves returns how many times Save has been called.
func (m *MemoryStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

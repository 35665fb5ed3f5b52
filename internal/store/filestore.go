package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dtaplin21/panelgrid/internal/model"
)

// Persistence is the read/write contract for layout documents. The store
// performs whole-document read-modify-write against it; last writer wins.
type Persistence interface {
	// Load returns the layout for a project. The boolean reports whether a
	// document exists; a missing document is not an error.
	Load(projectID string) (model.Layout, bool, error)
	// Save writes the full layout document back.
	Save(l model.Layout) error
}

// FileStore persists one JSON document per project under a data directory.
// It provides no cross-process safety; the owning Store serializes access
// within the process.
type FileStore struct {
	dir string
}

// NewFileStore creates the data directory if needed and returns a file store
// rooted there.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create layout dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// DefaultLayoutDir returns the default directory for layout documents.
func DefaultLayoutDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "panelgrid", "layouts"), nil
}

func (f *FileStore) path(projectID string) string {
	// Project ids become file names; keep path separators out.
	safe := strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(projectID)
	return filepath.Join(f.dir, safe+".json")
}

// Load reads a project's layout document. A missing file reports absence,
// not an error.
func (f *FileStore) Load(projectID string) (model.Layout, bool, error) {
	data, err := os.ReadFile(f.path(projectID))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.Layout{}, false, nil
		}
		return model.Layout{}, false, fmt.Errorf("read layout %s: %w", projectID, err)
	}

	var l model.Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return model.Layout{}, false, fmt.Errorf("decode layout %s: %w", projectID, err)
	}
	return l, true, nil
}

// Save writes the full layout document, pretty-printed for diffability.
func (f *FileStore) Save(l model.Layout) error {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(f.path(l.ProjectID), data, 0644); err != nil {
		return fmt.Errorf("write layout %s: %w", l.ProjectID, err)
	}
	return nil
}

// MemoryStore is an in-memory Persistence used by tests and ephemeral runs.
type MemoryStore struct {
	layouts map[string]model.Layout
}

// NewMemoryStore returns an empty in-memory persistence.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{layouts: make(map[string]model.Layout)}
}

func (m *MemoryStore) Load(projectID string) (model.Layout, bool, error) {
	l, ok := m.layouts[projectID]
	return l, ok, nil
}

func (m *MemoryStore) Save(l model.Layout) error {
	m.layouts[l.ProjectID] = l
	return nil
}

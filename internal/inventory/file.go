package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/fridgely/fridgely/internal/models"
)

// Compile-time interface check.
var _ Store = (*FileStore)(nil)

// FileStore persists all fridges in a single JSON document of the form
// {"fridge-id": {"item": quantity}}. The document is read fully on every
// access and rewritten fully on every Put.
type FileStore struct {
	path string

	// Serializes read-modify-write cycles within this process.
	mu sync.Mutex
}

// NewFileStore creates a store backed by the JSON file at path. The file is
// created on the first Put.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Get returns the items of one fridge.
func (s *FileStore) Get(ctx context.Context, fridgeID string) (models.Items, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	return doc[fridgeID].Clone(), nil
}

// Put replaces the items of one fridge and rewrites the document.
func (s *FileStore) Put(ctx context.Context, fridgeID string, items models.Items) error {
	if err := checkFridgeID(fridgeID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}
	doc[fridgeID] = items.Clone()

	if err := s.write(doc); err != nil {
		return err
	}

	slog.Debug("fridge file written", "path", s.path, "fridge", fridgeID, "items", len(items))
	return nil
}

// List returns the fridge ids in sorted order.
func (s *FileStore) List(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(doc))
	for id := range doc {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// read loads the whole document. A missing or empty file is an empty store.
func (s *FileStore) read() (map[string]models.Items, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return make(map[string]models.Items), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading fridge file: %w", err)
	}

	doc := make(map[string]models.Items)
	if len(data) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing fridge file %s: %w", s.path, err)
	}
	return doc, nil
}

// write replaces the document atomically via a temp file in the same
// directory.
func (s *FileStore) write(doc map[string]models.Items) error {
	dir := filepath.Dir(s.path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("creating fridge directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding fridges: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".fridges-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replacing fridge file: %w", err)
	}
	return nil
}

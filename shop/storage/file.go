// Package storage provides catalog persistence backends: a single JSON
// document on disk (default) and a PostgreSQL table. Both implement
// catalog.Store with full-document load/replace semantics, which keeps the
// format simple and recoverable.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/m3rciful/shopbot/core/logger"
	"github.com/m3rciful/shopbot/shop/catalog"
	"log/slog"
)

// FileStore persists the catalog as one JSON document.
type FileStore struct {
	path string
}

// NewFileStore returns a store backed by the document at path.
// The file is created on first save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the whole catalog document. A missing file yields an empty
// catalog; a corrupt one is an error so a bad document is never silently
// overwritten on the next save.
func (s *FileStore) Load() (catalog.Catalog, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Store.Info("catalog document missing, starting empty",
				slog.String("event", "load"),
				slog.String("backend", "file"),
				slog.String("path", s.path),
			)
			return make(catalog.Catalog), nil
		}
		return nil, fmt.Errorf("storage: read %s: %w", s.path, err)
	}

	var cat catalog.Catalog
	if err := json.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("storage: parse %s: %w", s.path, err)
	}
	if cat == nil {
		cat = make(catalog.Catalog)
	}
	return cat, nil
}

// Save rewrites the full catalog document. The write goes through a temp
// file and rename so a crash mid-write never leaves a truncated document.
func (s *FileStore) Save(cat catalog.Catalog) error {
	data, err := json.MarshalIndent(cat, "", "  ")
	if err != nil {
		return fmt.Errorf("storage: encode catalog: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".products-*.json")
	if err != nil {
		return fmt.Errorf("storage: temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("storage: write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("storage: close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("storage: replace %s: %w", s.path, err)
	}
	return nil
}

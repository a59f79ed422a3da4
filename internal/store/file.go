package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/notes-bin/wallpapersky/internal/model"

	"github.com/google/uuid"
)

// FileStore keeps the document as a pretty-printed JSON file.
type FileStore struct {
	path string
}

func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	return &FileStore{path: path}, nil
}

func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Load(ctx context.Context) (*model.Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			slog.Warn("Failed to read store, using empty document", "path", s.path, "error", err)
		}
		return model.EmptyDocument(), nil
	}

	var doc model.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		slog.Warn("Failed to parse store, using empty document", "path", s.path, "error", err)
		return model.EmptyDocument(), nil
	}
	return doc.Normalize(), nil
}

// Save writes the document next to the target and renames it into place,
// so readers never see a half-written file.
func (s *FileStore) Save(ctx context.Context, doc *model.Document) error {
	data, err := json.MarshalIndent(doc.Clone().Normalize(), "", "  ")
	if err != nil {
		return fmt.Errorf("encode store: %w", err)
	}

	tmp := filepath.Join(filepath.Dir(s.path), fmt.Sprintf(".%s.%s.tmp", filepath.Base(s.path), uuid.NewString()))
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		slog.Error("Failed to write store", "path", tmp, "error", err)
		return fmt.Errorf("write store: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		slog.Error("Failed to replace store", "path", s.path, "error", err)
		return fmt.Errorf("replace store: %w", err)
	}
	return nil
}

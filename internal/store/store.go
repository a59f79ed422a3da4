// Package store persists the wallpaper document. Every implementation
// reads and writes the whole document at once.
package store

import (
	"context"

	"github.com/notes-bin/wallpapersky/internal/model"
)

// Store loads and saves the full wallpaper document.
//
// Load never fails because the data is missing or unreadable: in that case
// it returns model.EmptyDocument(). Save replaces the stored document.
type Store interface {
	Load(ctx context.Context) (*model.Document, error)
	Save(ctx context.Context, doc *model.Document) error
}

// Package wallpaper implements listing, creating and deleting wallpaper
// records on top of a store.Store, keeping records and image files in step.
package wallpaper

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sync"
	"time"

	"github.com/notes-bin/wallpapersky/internal/model"
	"github.com/notes-bin/wallpapersky/internal/store"
)

var ErrNotFound = errors.New("wallpaper not found")

// ImageRemover deletes the stored image backing a record.
type ImageRemover interface {
	DeleteFile(filename string) error
}

type CreateInput struct {
	Title       string
	Category    string
	Description string
	Filename    string
}

type Service struct {
	store  store.Store
	images ImageRemover
	now    func() time.Time
	ids    *IDGenerator

	// 串行化 load → 修改 → save，避免并发请求互相覆盖
	mu sync.Mutex
}

func NewService(st store.Store, images ImageRemover) *Service {
	return &Service{
		store:  st,
		images: images,
		now:    time.Now,
		ids:    NewIDGenerator(time.Now),
	}
}

func (s *Service) List(ctx context.Context) ([]model.Wallpaper, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load wallpapers: %w", err)
	}
	return doc.Normalize().Wallpapers, nil
}

func (s *Service) Count(ctx context.Context) (int, error) {
	list, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	return len(list), nil
}

// Create appends a new record for an image that is already stored.
func (s *Service) Create(ctx context.Context, in CreateInput) (model.Wallpaper, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.store.Load(ctx)
	if err != nil {
		return model.Wallpaper{}, fmt.Errorf("load wallpapers: %w", err)
	}

	for _, existing := range doc.Wallpapers {
		s.ids.Observe(existing.ID)
	}

	now := s.now()
	wp := model.Wallpaper{
		ID:          s.ids.Next(),
		Title:       in.Title,
		Category:    in.Category,
		Description: in.Description,
		Downloads:   0,
		Likes:       0,
		Date:        now.UTC().Format(model.DateLayout),
		Resolutions: append([]string(nil), model.Resolutions...),
		Filename:    in.Filename,
	}

	doc.Normalize()
	doc.Wallpapers = append(doc.Wallpapers, wp)
	if err := s.store.Save(ctx, doc); err != nil {
		return model.Wallpaper{}, fmt.Errorf("save wallpapers: %w", err)
	}
	slog.Info("Wallpaper created", "id", wp.ID, "filename", wp.Filename)
	return wp, nil
}

// Delete removes the record and its image file. A file that is already
// gone does not block removal of the record.
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load wallpapers: %w", err)
	}

	index := -1
	for i, wp := range doc.Wallpapers {
		if wp.ID == id {
			index = i
			break
		}
	}
	if index == -1 {
		return ErrNotFound
	}

	filename := doc.Wallpapers[index].Filename
	if err := s.images.DeleteFile(filename); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("delete image %s: %w", filename, err)
		}
		slog.Warn("Image file already missing", "id", id, "filename", filename)
	}

	doc.Wallpapers = append(doc.Wallpapers[:index], doc.Wallpapers[index+1:]...)
	if err := s.store.Save(ctx, doc); err != nil {
		return fmt.Errorf("save wallpapers: %w", err)
	}
	slog.Info("Wallpaper deleted", "id", id, "filename", filename)
	return nil
}

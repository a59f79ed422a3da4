package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/notes-bin/wallpapersky/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDoc() *model.Document {
	return &model.Document{Wallpapers: []model.Wallpaper{
		{ID: 1, Title: "Dawn", Category: "nature", Date: "2026-01-02", Resolutions: model.Resolutions, Filename: "1.png"},
		{ID: 2, Title: "Dusk", Category: "city", Description: "lights", Date: "2026-01-03", Resolutions: model.Resolutions, Filename: "2.jpg"},
	}}
}

func TestFileStore_LoadMissingReturnsEmpty(t *testing.T) {
	s, err := NewFileStore(filepath.Join(t.TempDir(), "db.json"))
	require.NoError(t, err)

	doc, err := s.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, doc.Wallpapers)
	assert.Empty(t, doc.Wallpapers)
}

func TestFileStore_LoadCorruptReturnsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	s, err := NewFileStore(path)
	require.NoError(t, err)

	doc, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, doc.Wallpapers)
}

func TestFileStore_LoadNullListReturnsEmptySlice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"wallpapers": null}`), 0644))

	s, err := NewFileStore(path)
	require.NoError(t, err)

	doc, err := s.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, doc.Wallpapers)
}

func TestFileStore_SaveThenLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data", "db.json")
	s, err := NewFileStore(path)
	require.NoError(t, err)

	want := sampleDoc()
	require.NoError(t, s.Save(context.Background(), want))

	got, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must not be left behind")
}

func TestFileStore_SaveIsIndented(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	s, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Save(context.Background(), model.EmptyDocument()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"wallpapers\": []\n}", string(data))

	require.NoError(t, s.Save(context.Background(), sampleDoc()))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "{\n  \"wallpapers\": [\n    {\n      \"id\": 1,"))

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "wallpapers")
}

func TestMemoryStore_IsolatesCopies(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	doc := sampleDoc()
	require.NoError(t, s.Save(ctx, doc))
	doc.Wallpapers[0].Title = "changed"

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Dawn", loaded.Wallpapers[0].Title)

	loaded.Wallpapers = loaded.Wallpapers[:0]
	again, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, again.Wallpapers, 2)
}

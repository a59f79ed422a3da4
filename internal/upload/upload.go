// Package upload receives the image part of a multipart request, checks
// that it is an image and stores it before any record is written.
package upload

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
)

var (
	ErrNotImage    = errors.New("only image files are allowed")
	ErrMissingFile = errors.New("image file is required")
	ErrInvalidForm = errors.New("invalid multipart form")
)

const DefaultMaxSize = 10 << 20

// FileStorer persists the raw bytes and returns the stored file name.
type FileStorer interface {
	Store(r io.Reader, originalName string) (string, error)
}

type Receiver struct {
	storer  FileStorer
	field   string
	maxSize int64
}

func NewReceiver(storer FileStorer, field string, maxSize int64) *Receiver {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &Receiver{storer: storer, field: field, maxSize: maxSize}
}

// Receive parses the form, validates the declared MIME type of the file
// field and stores it. Form values stay available through r.FormValue.
func (rc *Receiver) Receive(w http.ResponseWriter, r *http.Request) (string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, rc.maxSize)
	if err := r.ParseMultipartForm(rc.maxSize); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidForm, err)
	}

	file, header, err := r.FormFile(rc.field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", ErrMissingFile
		}
		return "", fmt.Errorf("%w: %v", ErrInvalidForm, err)
	}
	defer file.Close()

	mimeType := header.Header.Get("Content-Type")
	if !IsImageMIME(mimeType) {
		slog.Warn("Rejected upload", "filename", header.Filename, "mime", mimeType)
		return "", ErrNotImage
	}

	filename, err := rc.storer.Store(file, header.Filename)
	if err != nil {
		return "", fmt.Errorf("store upload: %w", err)
	}
	slog.Info("Stored upload", "filename", filename, "size", header.Size)
	return filename, nil
}

func IsImageMIME(mime string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(mime)), "image/")
}

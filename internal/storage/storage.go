package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"
)

// MaxExtLen bounds the extension carried over from the uploaded file name.
const MaxExtLen = 16

var ErrBadExtension = errors.New("file extension too long")

type Storage struct {
	uploadDir string
	now       func() time.Time

	mu       sync.Mutex
	lastName int64
}

func NewStorage(uploadDir string) (*Storage, error) {
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return nil, err
	}
	return &Storage{uploadDir: uploadDir, now: time.Now}, nil
}

func (s *Storage) Dir() string {
	return s.uploadDir
}

// Store 将上传内容保存为 <毫秒时间戳><原扩展名>，返回文件名
func (s *Storage) Store(r io.Reader, originalName string) (string, error) {
	ext := filepath.Ext(originalName)
	if len(ext) > MaxExtLen {
		return "", fmt.Errorf("%w: %d bytes", ErrBadExtension, len(ext))
	}

	tmp, err := os.CreateTemp(s.uploadDir, ".upload-*")
	if err != nil {
		slog.Error("Failed to create temp file", "dir", s.uploadDir, "error", err)
		return "", err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		slog.Error("Failed to save file", "path", tmp.Name(), "error", err)
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}

	filename, err := s.nextName(ext)
	if err != nil {
		slog.Error("Failed to pick file name", "error", err)
		return "", err
	}
	if err := os.Rename(tmp.Name(), s.GetFilePath(filename)); err != nil {
		slog.Error("Failed to move file into place", "filename", filename, "error", err)
		return "", err
	}
	return filename, nil
}

// nextName 同一毫秒内或文件已存在时顺延时间戳
func (s *Storage) nextName(ext string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ms := s.now().UnixMilli()
	if ms <= s.lastName {
		ms = s.lastName + 1
	}
	for {
		name := strconv.FormatInt(ms, 10) + ext
		_, err := os.Stat(s.GetFilePath(name))
		switch {
		case errors.Is(err, fs.ErrNotExist):
			s.lastName = ms
			return name, nil
		case err != nil:
			return "", fmt.Errorf("check %s: %w", name, err)
		}
		ms++
	}
}

func (s *Storage) DeleteFile(filename string) error {
	if base := filepath.Base(filename); base == "." || base == ".." || base == string(filepath.Separator) {
		return &fs.PathError{Op: "remove", Path: filename, Err: fs.ErrNotExist}
	}
	return os.Remove(s.GetFilePath(filename))
}

func (s *Storage) GetFilePath(filename string) string {
	return filepath.Join(s.uploadDir, filepath.Base(filename))
}

// Usage 统计目录内图片文件的总字节数，忽略临时文件
func (s *Storage) Usage() (int64, error) {
	entries, err := os.ReadDir(s.uploadDir)
	if err != nil {
		return 0, fmt.Errorf("read upload dir: %w", err)
	}
	var total int64
	for _, e := range entries {
		if e.IsDir() || e.Name()[0] == '.' {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		total += info.Size()
	}
	return total, nil
}

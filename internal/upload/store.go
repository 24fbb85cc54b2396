// Package upload stores image files attached to diaries.
package upload

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// DefaultMaxSize is the largest accepted file in bytes.
const DefaultMaxSize int64 = 5 * 1024 * 1024

var (
	// ErrNotFound is returned when a stored file does not exist.
	ErrNotFound = errors.New("file not found")
	// ErrInvalidFile is returned when an upload is rejected.
	ErrInvalidFile = errors.New("invalid file")
)

var contentTypes = map[string]string{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
}

// sniffLen is how many leading bytes are used to detect the content type.
const sniffLen = 3072

// Store keeps uploaded files in a single flat directory.
type Store struct {
	dir     string
	maxSize int64
}

// NewStore creates a Store writing to dir. A non-positive maxSize means DefaultMaxSize.
func NewStore(dir string, maxSize int64) *Store {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &Store{dir: dir, maxSize: maxSize}
}

// Dir returns the storage directory.
func (s *Store) Dir() string {
	return s.dir
}

// Save validates and stores the content of r, uploaded as originalName with
// the declared size, and returns the generated file name.
func (s *Store) Save(originalName string, size int64, r io.Reader) (string, error) {
	if size == 0 {
		return "", fmt.Errorf("%w: file is empty", ErrInvalidFile)
	}
	if size > s.maxSize {
		return "", fmt.Errorf("%w: file is larger than %d bytes", ErrInvalidFile, s.maxSize)
	}
	ext := Extension(originalName)
	if _, ok := contentTypes[ext]; !ok {
		return "", fmt.Errorf("%w: unsupported file type, only JPG, PNG and GIF are allowed", ErrInvalidFile)
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read upload: %w", err)
	}
	head = head[:n]
	if n == 0 {
		return "", fmt.Errorf("%w: file is empty", ErrInvalidFile)
	}
	if mt := mimetype.Detect(head); !strings.HasPrefix(mt.String(), "image/") {
		return "", fmt.Errorf("%w: content is %s, not an image", ErrInvalidFile, mt.String())
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload directory: %w", err)
	}
	filename := uuid.NewString() + "." + ext
	path := filepath.Join(s.dir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	written, err := io.Copy(f, io.LimitReader(io.MultiReader(bytes.NewReader(head), r), s.maxSize+1))
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err == nil && written > s.maxSize {
		err = fmt.Errorf("%w: file is larger than %d bytes", ErrInvalidFile, s.maxSize)
	}
	if err != nil {
		_ = os.Remove(path)
		if errors.Is(err, ErrInvalidFile) {
			return "", err
		}
		return "", fmt.Errorf("write file: %w", err)
	}

	log.Debug().Str("file", filename).Int64("bytes", written).Msg("stored upload")
	return filename, nil
}

// Open returns the path and content type of a stored file.
func (s *Store) Open(filename string) (string, string, error) {
	if !validName(filename) {
		return "", "", fmt.Errorf("%w: bad file name %q", ErrInvalidFile, filename)
	}
	path := filepath.Join(s.dir, filename)
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", "", ErrNotFound
	}
	if err != nil {
		return "", "", fmt.Errorf("stat file: %w", err)
	}
	if info.IsDir() {
		return "", "", ErrNotFound
	}
	return path, ContentType(filename), nil
}

// Delete removes a stored file and reports whether it was removed.
func (s *Store) Delete(filename string) bool {
	if !validName(filename) {
		return false
	}
	if err := os.Remove(filepath.Join(s.dir, filename)); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Error().Err(err).Str("file", filename).Msg("failed to delete upload")
		}
		return false
	}
	return true
}

// Extension returns the lowercased extension of name without the dot.
func Extension(name string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}

// ContentType maps a file name to its image content type, or
// application/octet-stream for anything else.
func ContentType(filename string) string {
	if ct, ok := contentTypes[Extension(filename)]; ok {
		return ct
	}
	return "application/octet-stream"
}

func validName(filename string) bool {
	if filename == "" || filename == "." || strings.Contains(filename, "..") {
		return false
	}
	return !strings.ContainsAny(filename, `/\`)
}

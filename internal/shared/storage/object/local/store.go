package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"docintake-backend/internal/shared/storage/object"
)

// Store implements BlobStore on the local filesystem. It doubles as the
// landing zone for every upload: multipart bodies are written here first,
// even when an S3 mirror is configured.
type Store struct {
	baseDir string
}

// New creates a local store rooted at baseDir.
func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// Save writes the reader to disk and returns the absolute file path.
func (s *Store) Save(ctx context.Context, storedName string, r io.Reader) (string, int64, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}
	if strings.Contains(storedName, "..") || strings.ContainsAny(storedName, `/\`) {
		return "", 0, fmt.Errorf("invalid stored name")
	}

	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return "", 0, fmt.Errorf("mkdir: %w", err)
	}

	fullPath := filepath.Join(s.baseDir, storedName)
	f, err := os.OpenFile(fullPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return "", 0, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	size, err := io.Copy(f, r)
	if err != nil {
		return "", 0, fmt.Errorf("write body: %w", err)
	}

	absPath, err := filepath.Abs(fullPath)
	if err != nil {
		return "", 0, fmt.Errorf("resolve path: %w", err)
	}
	return absPath, size, nil
}

// Open opens a stored file. The location must resolve inside the base dir.
func (s *Store) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	absBase, err := filepath.Abs(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("resolve base dir: %w", err)
	}
	rel, err := filepath.Rel(absBase, location)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil, fmt.Errorf("invalid location")
	}

	f, err := os.Open(location)
	if err != nil {
		return nil, err
	}
	return f, nil
}

var _ object.BlobStore = (*Store)(nil)

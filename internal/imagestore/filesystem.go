package imagestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"digital-stamp-go/internal/store"

	"go.uber.org/zap"
)

// Compile-time check: *FileStore must satisfy store.ImageStore.
var _ store.ImageStore = (*FileStore)(nil)

// FileStore keeps one PNG per stamp in a directory. The reference is the
// file path.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("image directory cannot be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("unable to create image directory %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) Put(_ context.Context, id string, data []byte) (string, error) {
	path := filepath.Join(s.dir, id+".png")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write stamp image: %w", err)
	}
	zap.L().Debug("Stored stamp image", zap.String("path", path), zap.Int("bytes", len(data)))
	return path, nil
}

func (s *FileStore) Get(_ context.Context, ref string) ([]byte, error) {
	path, err := s.path(ref)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", store.ErrImageNotFound, ref)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read stamp image: %w", err)
	}
	return data, nil
}

func (s *FileStore) Delete(_ context.Context, ref string) error {
	path, err := s.path(ref)
	if err != nil {
		return err
	}
	err = os.Remove(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", store.ErrImageNotFound, ref)
	}
	if err != nil {
		return fmt.Errorf("failed to delete stamp image: %w", err)
	}
	return nil
}

// path resolves ref and refuses anything outside the image directory.
func (s *FileStore) path(ref string) (string, error) {
	path := filepath.Clean(ref)
	rel, err := filepath.Rel(filepath.Clean(s.dir), path)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("image reference %q is outside %s", ref, s.dir)
	}
	return path, nil
}

// Package jsonfile persists the session document as one JSON file.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"digital-stamp-go/internal/models"
	"digital-stamp-go/internal/store"

	"go.uber.org/zap"
)

// Compile-time check: *Service must satisfy store.StateStore.
var _ store.StateStore = (*Service)(nil)

type Service struct {
	path string
}

func NewService(path string) (*Service, error) {
	if path == "" {
		return nil, fmt.Errorf("state file path cannot be empty")
	}
	zap.L().Info("Using JSON state file", zap.String("file", path))
	return &Service{path: path}, nil
}

func (s *Service) Path() string {
	return s.path
}

// Load reads the document. A missing or corrupt file yields the empty state
// and a *models.StorageWarning.
func (s *Service) Load(_ context.Context) (models.State, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return models.EmptyState(), &models.StorageWarning{Op: "load", Path: s.path, Err: fmt.Errorf("no saved state: %w", err)}
	}
	if err != nil {
		return models.EmptyState(), &models.StorageWarning{Op: "load", Path: s.path, Err: err}
	}

	var state models.State
	if err := json.Unmarshal(data, &state); err != nil {
		return models.EmptyState(), &models.StorageWarning{Op: "parse", Path: s.path, Err: err}
	}

	state = state.Normalize()
	zap.L().Debug("Loaded state",
		zap.String("file", s.path),
		zap.Int("stamps", len(state.Stamps)),
		zap.Int("mail_history", len(state.MailHistory)),
		zap.Int("orders", len(state.Orders)))
	return state, nil
}

// Save writes the whole document to a temp file next to the target and
// renames it into place, so a crash never leaves a truncated file.
func (s *Service) Save(_ context.Context, state models.State) error {
	data, err := json.MarshalIndent(state.Normalize(), "", "  ")
	if err != nil {
		return &models.StorageWarning{Op: "encode", Path: s.path, Err: err}
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &models.StorageWarning{Op: "save", Path: s.path, Err: err}
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return &models.StorageWarning{Op: "save", Path: s.path, Err: err}
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op once renamed

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return &models.StorageWarning{Op: "save", Path: s.path, Err: err}
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return &models.StorageWarning{Op: "save", Path: s.path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &models.StorageWarning{Op: "save", Path: s.path, Err: err}
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return &models.StorageWarning{Op: "save", Path: s.path, Err: err}
	}

	zap.L().Debug("Saved state", zap.String("file", s.path))
	return nil
}

func (s *Service) Close() {}

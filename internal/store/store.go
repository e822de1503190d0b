package store

import (
	"context"
	"errors"

	"digital-stamp-go/internal/models"
)

// ErrImageNotFound is returned by ImageStore backends when nothing is stored
// under a reference. Callers deleting a stamp treat it as success.
var ErrImageNotFound = errors.New("stamp image not found")

// StateStore is the persistence gateway for the whole session document.
// Every backend (JSON file, SQLite, ...) must satisfy it.
//
// Load never fails hard: on a missing or unreadable backing store it returns
// models.EmptyState() together with a *models.StorageWarning. Save failures
// are reported as *models.StorageWarning as well.
type StateStore interface {
	Load(ctx context.Context) (models.State, error)
	Save(ctx context.Context, state models.State) error

	// --- Lifecycle ---
	Close()
}

// ImageStore holds rendered stamp rasters.
type ImageStore interface {
	// Put stores data for a stamp id and returns the reference to keep on the
	// stamp record.
	Put(ctx context.Context, id string, data []byte) (string, error)

	// Get returns the bytes behind a reference, or ErrImageNotFound.
	Get(ctx context.Context, ref string) ([]byte, error)

	// Delete removes the bytes behind a reference. Missing data yields
	// ErrImageNotFound.
	Delete(ctx context.Context, ref string) error
}

package datastore

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/docqa/internal/config"
)

// Backend stores opaque dataset encodings.
type Backend interface {
	// Read returns the persisted bytes of dataset, or common.ErrorNotFound
	// when nothing was ever written.
	Read(ctx context.Context, dataset string) ([]byte, error)
	// Write replaces the persisted bytes of dataset. Readers observe either
	// the previous or the new content, never a mix. An error wrapping
	// ErrUnsynced means the new content is in place.
	Write(ctx context.Context, dataset string, data []byte) error
	Close() error
}

// NewBackend builds the backend selected by cfg.StorageBackend.
func NewBackend(ctx context.Context, cfg *config.Config) (Backend, error) {
	switch cfg.StorageBackend {
	case config.BackendFile, "":
		return NewFileBackend(cfg.DataDir)
	case config.BackendPostgres:
		return NewPostgresBackend(ctx, cfg.DatabaseDSN)
	case config.BackendS3:
		return NewS3Backend(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

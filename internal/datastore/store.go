package datastore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/docqa/internal/common"
	"github.com/dmitrijs2005/docqa/internal/logging"
	"github.com/dmitrijs2005/docqa/internal/metrics"
)

// Store encodes datasets as JSON and moves them through a Backend.
type Store struct {
	backend Backend
	logger  logging.Logger
	metrics *metrics.Metrics
}

// NewStore wraps backend. m may be nil.
func NewStore(backend Backend, logger logging.Logger, m *metrics.Metrics) *Store {
	return &Store{backend: backend, logger: logger, metrics: m}
}

// Load decodes dataset into v. When nothing is persisted v is left as is,
// so callers pass the empty collection of the right shape.
func (s *Store) Load(ctx context.Context, dataset string, v any) (err error) {
	start := time.Now()
	defer func() { s.metrics.RecordDatasetOperation(dataset, "load", err, time.Since(start)) }()

	data, err := s.backend.Read(ctx, dataset)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil
		}
		return fmt.Errorf("load %s: %w: %w", dataset, common.ErrIO, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("load %s: %w: %w", dataset, common.ErrCorruptData, err)
	}

	s.metrics.RecordDatasetSize(dataset, len(data))
	return nil
}

// Save replaces the persisted dataset with the encoding of v.
func (s *Store) Save(ctx context.Context, dataset string, v any) (err error) {
	start := time.Now()
	defer func() { s.metrics.RecordDatasetOperation(dataset, "save", err, time.Since(start)) }()

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w: %w", dataset, common.ErrIO, err)
	}

	if err := s.backend.Write(ctx, dataset, buf.Bytes()); err != nil {
		if errors.Is(err, ErrUnsynced) {
			s.logger.Warn(ctx, "dataset saved without directory sync", "dataset", dataset, "error", err)
			s.metrics.RecordDatasetSize(dataset, buf.Len())
			return nil
		}
		s.logger.Error(ctx, "dataset save failed", "dataset", dataset, "error", err)
		return fmt.Errorf("save %s: %w: %w", dataset, common.ErrIO, err)
	}

	s.metrics.RecordDatasetSize(dataset, buf.Len())
	s.logger.Debug(ctx, "dataset saved", "dataset", dataset, "bytes", buf.Len())
	return nil
}

// Close releases the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

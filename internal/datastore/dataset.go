package datastore

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/dmitrijs2005/docqa/internal/common"
)

// normalizer is implemented by collections that fix up decoded data and
// reject records they cannot repair.
type normalizer interface {
	Normalize() error
}

// Dataset is a typed handle on one persisted collection. It owns the lock
// that serializes the collection's writers and publishes an immutable
// snapshot for readers.
type Dataset[T any] struct {
	store *Store
	name  string
	empty func() T

	mu   sync.Mutex
	snap atomic.Pointer[T]
}

// NewDataset returns a handle on name. empty builds the collection used when
// nothing is persisted yet.
func NewDataset[T any](store *Store, name string, empty func() T) *Dataset[T] {
	return &Dataset[T]{store: store, name: name, empty: empty}
}

// Open loads the initial snapshot.
func (d *Dataset[T]) Open(ctx context.Context) error {
	v, err := d.load(ctx)
	if err != nil {
		return err
	}
	d.snap.Store(&v)
	return nil
}

// Snapshot returns the last committed collection. It never blocks on
// writers. The result is shared and must not be modified.
func (d *Dataset[T]) Snapshot() T {
	if p := d.snap.Load(); p != nil {
		return *p
	}
	return d.empty()
}

// Update runs fn on a fresh copy of the collection under the dataset lock and
// saves the result. The snapshot changes only if both fn and the save succeed.
// Errors from fn are returned unchanged.
func (d *Dataset[T]) Update(ctx context.Context, fn func(*T) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	v, err := d.load(ctx)
	if err != nil {
		return err
	}

	if err := fn(&v); err != nil {
		return err
	}

	if err := d.store.Save(ctx, d.name, v); err != nil {
		return err
	}

	d.snap.Store(&v)
	return nil
}

func (d *Dataset[T]) load(ctx context.Context) (T, error) {
	v := d.empty()
	if err := d.store.Load(ctx, d.name, &v); err != nil {
		return v, err
	}

	if n, ok := any(&v).(normalizer); ok {
		if err := n.Normalize(); err != nil {
			return v, fmt.Errorf("load %s: %w: %w", d.name, common.ErrCorruptData, err)
		}
	}

	return v, nil
}

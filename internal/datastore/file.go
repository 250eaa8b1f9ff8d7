package datastore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/docqa/internal/common"
	"github.com/dmitrijs2005/docqa/internal/filex"
)

// Test seams for simulating crashes and I/O failures.
var (
	writeTemp  = func(f *os.File, data []byte) (int, error) { return f.Write(data) }
	syncFile   = func(f *os.File) error { return f.Sync() }
	renameFile = os.Rename
	syncDir    = filex.SyncDir
)

// ErrUnsynced reports a write whose new content is already in place but whose
// directory entry could not be fsynced. Readers see the new content.
var ErrUnsynced = errors.New("written but not synced")

// FileBackend keeps each dataset in <dir>/<dataset>.json.
//
// Writes go to a temp file in the same directory, which is fsynced and then
// renamed over the target; the directory is fsynced afterwards so the rename
// itself survives a crash. A temp file left behind by a crash is never read.
type FileBackend struct {
	dir string
}

// NewFileBackend creates dir if needed.
func NewFileBackend(dir string) (*FileBackend, error) {
	abs, err := filex.EnsureDir(dir)
	if err != nil {
		return nil, err
	}
	return &FileBackend{dir: abs}, nil
}

// Path returns the file holding dataset.
func (b *FileBackend) Path(dataset string) string {
	return filepath.Join(b.dir, dataset+".json")
}

func (b *FileBackend) Read(_ context.Context, dataset string) ([]byte, error) {
	data, err := os.ReadFile(b.Path(dataset))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, common.ErrorNotFound
		}
		return nil, err
	}
	return data, nil
}

func (b *FileBackend) Write(ctx context.Context, dataset string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(b.dir, "."+dataset+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err := writeTemp(tmp, data); err != nil {
		return fmt.Errorf("write temp: %w", err)
	}
	if err := syncFile(tmp); err != nil {
		return fmt.Errorf("fsync temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp: %w", err)
	}
	if err := renameFile(tmp.Name(), b.Path(dataset)); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	committed = true

	if err := syncDir(b.dir); err != nil {
		return fmt.Errorf("%w: %w", ErrUnsynced, err)
	}
	return nil
}

func (b *FileBackend) Close() error {
	return nil
}

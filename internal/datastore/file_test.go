package datastore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/docqa/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFileBackend(t *testing.T) (*FileBackend, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "data")
	b, err := NewFileBackend(dir)
	require.NoError(t, err)
	return b, dir
}

func tempFiles(t *testing.T, dir string) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, ".*.tmp"))
	require.NoError(t, err)
	return matches
}

func TestFileBackend_ReadMissing(t *testing.T) {
	b, _ := newFileBackend(t)

	_, err := b.Read(context.Background(), "users")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestFileBackend_WriteRead(t *testing.T) {
	b, dir := newFileBackend(t)
	ctx := context.Background()

	require.NoError(t, b.Write(ctx, "users", []byte(`{"a":1}`)))
	require.NoError(t, b.Write(ctx, "users", []byte(`{"a":2}`)))

	got, err := b.Read(ctx, "users")
	require.NoError(t, err)
	assert.Equal(t, `{"a":2}`, string(got))
	assert.Equal(t, filepath.Join(dir, "users.json"), b.Path("users"))
	assert.Empty(t, tempFiles(t, dir))
}

func TestFileBackend_FailedWriteKeepsPrevious(t *testing.T) {
	cases := []struct {
		name  string
		setup func()
	}{
		{
			name: "partial write",
			setup: func() {
				writeTemp = func(f *os.File, data []byte) (int, error) {
					n, _ := f.Write(data[:len(data)/2])
					return n, errors.New("disk full")
				}
			},
		},
		{
			name: "fsync",
			setup: func() {
				syncFile = func(*os.File) error { return errors.New("io error") }
			},
		},
		{
			name: "rename",
			setup: func() {
				renameFile = func(string, string) error { return errors.New("cross-device") }
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			origWrite, origSync, origRename := writeTemp, syncFile, renameFile
			t.Cleanup(func() {
				writeTemp, syncFile, renameFile = origWrite, origSync, origRename
			})

			b, dir := newFileBackend(t)
			ctx := context.Background()
			require.NoError(t, b.Write(ctx, "chat_history", []byte(`["old"]`)))

			tc.setup()
			err := b.Write(ctx, "chat_history", []byte(`["old","new"]`))
			require.Error(t, err)

			got, err := b.Read(ctx, "chat_history")
			require.NoError(t, err)
			assert.Equal(t, `["old"]`, string(got))
			assert.Empty(t, tempFiles(t, dir))
		})
	}
}

func TestFileBackend_DirSyncFailureAfterRename(t *testing.T) {
	orig := syncDir
	t.Cleanup(func() { syncDir = orig })

	b, dir := newFileBackend(t)
	ctx := context.Background()
	require.NoError(t, b.Write(ctx, "users", []byte(`{"old":1}`)))

	syncDir = func(string) error { return errors.New("input/output error") }
	err := b.Write(ctx, "users", []byte(`{"new":1}`))
	require.ErrorIs(t, err, ErrUnsynced)

	got, err := b.Read(ctx, "users")
	require.NoError(t, err)
	assert.Equal(t, `{"new":1}`, string(got))
	assert.Empty(t, tempFiles(t, dir))
}

func TestFileBackend_IgnoresLeftoverTempFile(t *testing.T) {
	b, dir := newFileBackend(t)
	ctx := context.Background()

	require.NoError(t, b.Write(ctx, "documents", []byte(`{}`)))
	// what a crash between write and rename leaves behind
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".documents.123.tmp"), []byte(`{"u1":{"a.pdf":`), 0o600))

	got, err := b.Read(ctx, "documents")
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(got))
}

func TestFileBackend_CanceledContext(t *testing.T) {
	b, _ := newFileBackend(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := b.Write(ctx, "users", []byte(`{}`))
	require.ErrorIs(t, err, context.Canceled)

	_, err = b.Read(context.Background(), "users")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

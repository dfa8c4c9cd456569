package blobstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore(t *testing.T) {
	ctx := context.Background()

	t.Run("PutGet", func(t *testing.T) {
		s := NewLocalStore(t.TempDir())
		require.NoError(t, s.Put(ctx, "blob.bin", []byte("payload")))

		data, err := s.Get(ctx, "blob.bin")
		require.NoError(t, err)
		assert.Equal(t, []byte("payload"), data)
	})

	t.Run("PutCreatesParentDirectories", func(t *testing.T) {
		root := t.TempDir()
		s := NewLocalStore(root)
		require.NoError(t, s.Put(ctx, "nested/deeper/blob.bin", []byte("x")))

		_, err := os.Stat(filepath.Join(root, "nested", "deeper", "blob.bin"))
		assert.NoError(t, err)
	})

	t.Run("PutOverwrites", func(t *testing.T) {
		s := NewLocalStore(t.TempDir())
		require.NoError(t, s.Put(ctx, "blob.bin", []byte("old")))
		require.NoError(t, s.Put(ctx, "blob.bin", []byte("new")))

		data, err := s.Get(ctx, "blob.bin")
		require.NoError(t, err)
		assert.Equal(t, []byte("new"), data)
	})

	t.Run("PutLeavesNoTempFiles", func(t *testing.T) {
		root := t.TempDir()
		s := NewLocalStore(root)
		require.NoError(t, s.Put(ctx, "blob.bin", []byte("x")))

		entries, err := os.ReadDir(root)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "blob.bin", entries[0].Name())
	})

	t.Run("GetMissing", func(t *testing.T) {
		s := NewLocalStore(t.TempDir())
		_, err := s.Get(ctx, "missing.bin")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("DeleteMissingIsNoError", func(t *testing.T) {
		s := NewLocalStore(t.TempDir())
		assert.NoError(t, s.Delete(ctx, "missing.bin"))
	})

	t.Run("Delete", func(t *testing.T) {
		s := NewLocalStore(t.TempDir())
		require.NoError(t, s.Put(ctx, "blob.bin", []byte("x")))
		require.NoError(t, s.Delete(ctx, "blob.bin"))

		_, err := s.Get(ctx, "blob.bin")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("List", func(t *testing.T) {
		s := NewLocalStore(t.TempDir())
		require.NoError(t, s.Put(ctx, "snapshots/a.bin", []byte("a")))
		require.NoError(t, s.Put(ctx, "snapshots/b.bin", []byte("b")))
		require.NoError(t, s.Put(ctx, "other.bin", []byte("c")))

		names, err := s.List(ctx, "snapshots/")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"snapshots/a.bin", "snapshots/b.bin"}, names)

		names, err = s.List(ctx, "")
		require.NoError(t, err)
		assert.Len(t, names, 3)
	})

	t.Run("ListMissingRoot", func(t *testing.T) {
		s := NewLocalStore(filepath.Join(t.TempDir(), "does-not-exist"))
		names, err := s.List(ctx, "")
		require.NoError(t, err)
		assert.Empty(t, names)
	})
}

package blobstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("PutGet", func(t *testing.T) {
		s := NewMemoryStore()
		require.NoError(t, s.Put(ctx, "blob", []byte("payload")))

		data, err := s.Get(ctx, "blob")
		require.NoError(t, err)
		assert.Equal(t, []byte("payload"), data)
	})

	t.Run("CopiesOnPut", func(t *testing.T) {
		s := NewMemoryStore()
		data := []byte("payload")
		require.NoError(t, s.Put(ctx, "blob", data))
		data[0] = 'X'

		got, err := s.Get(ctx, "blob")
		require.NoError(t, err)
		assert.Equal(t, []byte("payload"), got)
	})

	t.Run("CopiesOnGet", func(t *testing.T) {
		s := NewMemoryStore()
		require.NoError(t, s.Put(ctx, "blob", []byte("payload")))

		first, err := s.Get(ctx, "blob")
		require.NoError(t, err)
		first[0] = 'X'

		second, err := s.Get(ctx, "blob")
		require.NoError(t, err)
		assert.Equal(t, []byte("payload"), second)
	})

	t.Run("GetMissing", func(t *testing.T) {
		s := NewMemoryStore()
		_, err := s.Get(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		s := NewMemoryStore()
		require.NoError(t, s.Put(ctx, "blob", []byte("x")))
		require.NoError(t, s.Delete(ctx, "blob"))
		require.NoError(t, s.Delete(ctx, "blob"))

		_, err := s.Get(ctx, "blob")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("List", func(t *testing.T) {
		s := NewMemoryStore()
		require.NoError(t, s.Put(ctx, "a/1", []byte("x")))
		require.NoError(t, s.Put(ctx, "a/2", []byte("x")))
		require.NoError(t, s.Put(ctx, "b/1", []byte("x")))

		names, err := s.List(ctx, "a/")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"a/1", "a/2"}, names)
	})
}

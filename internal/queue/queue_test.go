package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopK(t *testing.T) {
	t.Run("UnderCapacity", func(t *testing.T) {
		q := NewTopK(5)
		q.Consider(Item{ID: "a", Score: 0.1})
		q.Consider(Item{ID: "b", Score: 0.9})
		q.Consider(Item{ID: "c", Score: 0.5})

		out := q.Results()
		require.Len(t, out, 3)
		assert.Equal(t, "b", out[0].ID)
		assert.Equal(t, "c", out[1].ID)
		assert.Equal(t, "a", out[2].ID)
	})

	t.Run("BoundedReplacement", func(t *testing.T) {
		q := NewTopK(2)
		q.Consider(Item{ID: "a", Score: 0.1})
		q.Consider(Item{ID: "b", Score: 0.2})
		q.Consider(Item{ID: "c", Score: 0.3}) // evicts a
		q.Consider(Item{ID: "d", Score: 0.05})

		out := q.Results()
		require.Len(t, out, 2)
		assert.Equal(t, "c", out[0].ID)
		assert.Equal(t, "b", out[1].ID)
	})

	t.Run("TieBreakAscendingID", func(t *testing.T) {
		q := NewTopK(2)
		q.Consider(Item{ID: "z", Score: 0.5})
		q.Consider(Item{ID: "m", Score: 0.5})
		q.Consider(Item{ID: "a", Score: 0.5})

		out := q.Results()
		require.Len(t, out, 2)
		assert.Equal(t, "a", out[0].ID)
		assert.Equal(t, "m", out[1].ID)
	})

	t.Run("EqualScoreDoesNotEvictLowerID", func(t *testing.T) {
		q := NewTopK(1)
		q.Consider(Item{ID: "a", Score: 0.5})
		q.Consider(Item{ID: "b", Score: 0.5})

		out := q.Results()
		require.Len(t, out, 1)
		assert.Equal(t, "a", out[0].ID)
	})

	t.Run("ZeroCapacity", func(t *testing.T) {
		q := NewTopK(0)
		q.Consider(Item{ID: "a", Score: 0.5})
		assert.Empty(t, q.Results())
	})

	t.Run("NegativeScores", func(t *testing.T) {
		q := NewTopK(3)
		q.Consider(Item{ID: "a", Score: -0.9})
		q.Consider(Item{ID: "b", Score: -0.1})
		q.Consider(Item{ID: "c", Score: -0.5})

		out := q.Results()
		require.Len(t, out, 3)
		assert.Equal(t, []string{"b", "c", "a"}, []string{out[0].ID, out[1].ID, out[2].ID})
	})
}

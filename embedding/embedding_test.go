package embedding

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	t.Run("UnitLength", func(t *testing.T) {
		v := Normalize([]float32{3, 4})
		assert.InDelta(t, 0.6, v[0], 1e-6)
		assert.InDelta(t, 0.8, v[1], 1e-6)
		assert.InDelta(t, 1.0, Norm(v), 1e-6)
	})

	t.Run("Idempotent", func(t *testing.T) {
		v := []float32{1.5, -2.5, 0.5}
		once := Normalize(v)
		twice := Normalize(once)
		for i := range once {
			assert.InDelta(t, once[i], twice[i], 1e-6)
		}
	})

	t.Run("ZeroVectorUnchanged", func(t *testing.T) {
		zero := []float32{0, 0, 0}
		assert.Equal(t, zero, Normalize(zero))
	})

	t.Run("DoesNotMutateInput", func(t *testing.T) {
		v := []float32{2, 0}
		_ = Normalize(v)
		assert.Equal(t, []float32{2, 0}, v)
	})
}

func TestCosineSimilarity(t *testing.T) {
	t.Run("SelfSimilarity", func(t *testing.T) {
		v := []float32{0.3, -1.2, 4.5}
		sim, err := CosineSimilarity(v, v)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, sim, 1e-6)
	})

	t.Run("Orthogonal", func(t *testing.T) {
		sim, err := CosineSimilarity([]float32{1, 0}, []float32{0, 1})
		require.NoError(t, err)
		assert.InDelta(t, 0.0, sim, 1e-6)
	})

	t.Run("Opposite", func(t *testing.T) {
		sim, err := CosineSimilarity([]float32{1, 1}, []float32{-1, -1})
		require.NoError(t, err)
		assert.InDelta(t, -1.0, sim, 1e-6)
	})

	t.Run("BoundedResult", func(t *testing.T) {
		// Scaled parallel vectors can overshoot 1.0 in float math.
		a := []float32{1e20, 1e20, 1e20}
		b := []float32{3e19, 3e19, 3e19}
		sim, err := CosineSimilarity(a, b)
		require.NoError(t, err)
		assert.LessOrEqual(t, sim, float32(1.0))
		assert.GreaterOrEqual(t, sim, float32(-1.0))
	})

	t.Run("ZeroVectorConvention", func(t *testing.T) {
		sim, err := CosineSimilarity([]float32{0, 0}, []float32{1, 2})
		require.NoError(t, err)
		assert.Equal(t, float32(0), sim)
	})

	t.Run("DimensionMismatch", func(t *testing.T) {
		_, err := CosineSimilarity([]float32{1, 2}, []float32{1, 2, 3})
		var dm *ErrDimensionMismatch
		require.ErrorAs(t, err, &dm)
		assert.Equal(t, 2, dm.Expected)
		assert.Equal(t, 3, dm.Actual)
	})
}

func TestEuclideanDistance(t *testing.T) {
	t.Run("KnownDistance", func(t *testing.T) {
		d, err := EuclideanDistance([]float32{0, 0}, []float32{3, 4})
		require.NoError(t, err)
		assert.InDelta(t, 5.0, d, 1e-6)
	})

	t.Run("SelfDistance", func(t *testing.T) {
		v := []float32{1.1, 2.2, 3.3}
		d, err := EuclideanDistance(v, v)
		require.NoError(t, err)
		assert.Equal(t, float32(0), d)
	})

	t.Run("DimensionMismatch", func(t *testing.T) {
		_, err := EuclideanDistance([]float32{1}, []float32{1, 2})
		var dm *ErrDimensionMismatch
		assert.ErrorAs(t, err, &dm)
	})
}

func TestHash(t *testing.T) {
	t.Run("Stable", func(t *testing.T) {
		v := []float32{0.1, 0.2, 0.3}
		h1, err := Hash(v, DefaultHashPrecision)
		require.NoError(t, err)
		h2, err := Hash(v, DefaultHashPrecision)
		require.NoError(t, err)
		assert.Equal(t, h1, h2)
		assert.Len(t, h1, 64) // hex SHA-256
	})

	t.Run("RoundingCollapsesCloseVectors", func(t *testing.T) {
		h1, err := Hash([]float32{0.1000001, 0.2}, 4)
		require.NoError(t, err)
		h2, err := Hash([]float32{0.1000002, 0.2}, 4)
		require.NoError(t, err)
		assert.Equal(t, h1, h2)
	})

	t.Run("DistinguishesAtPrecision", func(t *testing.T) {
		h1, err := Hash([]float32{0.12, 0.2}, 2)
		require.NoError(t, err)
		h2, err := Hash([]float32{0.13, 0.2}, 2)
		require.NoError(t, err)
		assert.NotEqual(t, h1, h2)
	})

	t.Run("NegativeZero", func(t *testing.T) {
		h1, err := Hash([]float32{float32(math.Copysign(0, -1))}, 6)
		require.NoError(t, err)
		h2, err := Hash([]float32{0}, 6)
		require.NoError(t, err)
		assert.Equal(t, h1, h2)
	})

	t.Run("InvalidComponent", func(t *testing.T) {
		_, err := Hash([]float32{1, float32(math.NaN())}, 6)
		var ic *ErrInvalidComponent
		require.ErrorAs(t, err, &ic)
		assert.Equal(t, 1, ic.Index)

		_, err = Hash([]float32{float32(math.Inf(1))}, 6)
		assert.ErrorAs(t, err, &ic)
	})
}

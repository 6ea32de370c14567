package index

import (
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/poiesic/versefinder/corpus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("empty matrix", func(t *testing.T) {
		_, err := New(nil)
		assert.ErrorIs(t, err, ErrEmptyIndex)
	})

	t.Run("ragged matrix", func(t *testing.T) {
		_, err := New([][]float32{{1, 0}, {1, 0, 0}})
		assert.ErrorIs(t, err, ErrBadDimension)
	})

	t.Run("valid matrix", func(t *testing.T) {
		ix, err := New([][]float32{{1, 0}, {0, 1}})
		require.NoError(t, err)
		assert.Equal(t, 2, ix.Len())
		assert.Equal(t, 2, ix.Dim())
	})
}

func TestTopN(t *testing.T) {
	// Unit vectors at known angles from the x axis.
	matrix := [][]float32{
		unit(0),   // ordinal 0: aligned with query
		unit(90),  // ordinal 1: orthogonal
		unit(180), // ordinal 2: opposite
		unit(30),  // ordinal 3: close
		unit(60),  // ordinal 4: further
	}
	ix, err := New(matrix)
	require.NoError(t, err)

	query := unit(0)

	t.Run("descending score order", func(t *testing.T) {
		results, err := ix.TopN(query, 3)
		require.NoError(t, err)
		require.Len(t, results, 3)
		assert.Equal(t, 0, results[0].Ordinal)
		assert.Equal(t, 3, results[1].Ordinal)
		assert.Equal(t, 4, results[2].Ordinal)
		assert.True(t, results[0].Score >= results[1].Score)
		assert.True(t, results[1].Score >= results[2].Score)
	})

	t.Run("n larger than rows clamps", func(t *testing.T) {
		results, err := ix.TopN(query, 100)
		require.NoError(t, err)
		assert.Len(t, results, 5)
	})

	t.Run("n below one clamps", func(t *testing.T) {
		results, err := ix.TopN(query, 0)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, 0, results[0].Ordinal)
	})

	t.Run("wrong query dimension", func(t *testing.T) {
		_, err := ix.TopN([]float32{1, 0, 0}, 3)
		assert.ErrorIs(t, err, ErrBadDimension)
	})
}

func TestTopNTieBreak(t *testing.T) {
	// Three identical rows tie exactly; lower ordinals must win.
	matrix := [][]float32{
		{0, 1},
		{1, 0},
		{1, 0},
		{1, 0},
	}
	ix, err := New(matrix)
	require.NoError(t, err)

	results, err := ix.TopN([]float32{1, 0}, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, 1, results[0].Ordinal)
	assert.Equal(t, 2, results[1].Ordinal)
}

func TestTopNMatchesFullSort(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	const rows, dim = 200, 8

	matrix := make([][]float32, rows)
	for i := range matrix {
		v := make([]float32, dim)
		for j := range v {
			v[j] = float32(rng.NormFloat64())
		}
		matrix[i] = corpus.Normalize(v)
	}

	ix, err := New(matrix)
	require.NoError(t, err)

	query := make([]float32, dim)
	for j := range query {
		query[j] = float32(rng.NormFloat64())
	}
	query = corpus.Normalize(query)

	// Reference ranking via a full sort of all scores.
	type scored struct {
		ordinal int
		score   float32
	}
	all := make([]scored, rows)
	for i, row := range matrix {
		all[i] = scored{ordinal: i, score: corpus.Dot(query, row)}
	}
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].score != all[j].score {
			return all[i].score > all[j].score
		}
		return all[i].ordinal < all[j].ordinal
	})

	for _, n := range []int{1, 5, 25, rows} {
		results, err := ix.TopN(query, n)
		require.NoError(t, err)
		require.Len(t, results, n)
		for i, candidate := range results {
			assert.Equal(t, all[i].ordinal, candidate.Ordinal, "n=%d rank=%d", n, i)
			assert.InDelta(t, float64(all[i].score), float64(candidate.Score), 1e-9)
		}
	}
}

func unit(degrees float64) []float32 {
	rad := degrees * math.Pi / 180
	return []float32{float32(math.Cos(rad)), float32(math.Sin(rad))}
}

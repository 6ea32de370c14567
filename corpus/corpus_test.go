package corpus

import (
	"context"
	"math"
	"testing"

	"github.com/poiesic/versefinder/core"
	badgerstore "github.com/poiesic/versefinder/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	t.Run("produces unit vector", func(t *testing.T) {
		v := Normalize([]float32{3, 4})
		assert.InDelta(t, 0.6, v[0], 1e-6)
		assert.InDelta(t, 0.8, v[1], 1e-6)
	})

	t.Run("unit vector unchanged", func(t *testing.T) {
		v := Normalize([]float32{0, 1, 0})
		assert.InDelta(t, 1.0, float64(v[1]), 1e-6)
	})

	t.Run("zero vector stays zero", func(t *testing.T) {
		v := Normalize([]float32{0, 0, 0})
		assert.Equal(t, []float32{0, 0, 0}, v)
	})

	t.Run("does not mutate input", func(t *testing.T) {
		in := []float32{2, 0}
		Normalize(in)
		assert.Equal(t, []float32{2, 0}, in)
	})
}

func TestDot(t *testing.T) {
	assert.InDelta(t, 1.0, float64(Dot([]float32{1, 0}, []float32{1, 0})), 1e-6)
	assert.InDelta(t, 0.0, float64(Dot([]float32{1, 0}, []float32{0, 1})), 1e-6)
	assert.InDelta(t, -1.0, float64(Dot([]float32{1, 0}, []float32{-1, 0})), 1e-6)
}

func TestLoad(t *testing.T) {
	ctx := context.Background()

	newRepoWith := func(t *testing.T, records ...*core.VerseRecord) *Corpus {
		t.Helper()
		repo, backend, err := badgerstore.NewMemoryRepository()
		require.NoError(t, err)
		t.Cleanup(func() {
			repo.Close()
			backend.Close()
		})
		if len(records) > 0 {
			require.NoError(t, repo.PutVerses(ctx, 0, records...))
		}
		c, err := Load(ctx, repo, nil)
		require.NoError(t, err)
		return c
	}

	t.Run("rows are normalized", func(t *testing.T) {
		c := newRepoWith(t,
			&core.VerseRecord{Book: "Genesis", Chapter: 1, Verse: 1, Text: "a", Vector: []float32{3, 4, 0}},
			&core.VerseRecord{Book: "Genesis", Chapter: 1, Verse: 2, Text: "b", Vector: []float32{0, 0, 5}},
		)
		require.Equal(t, 2, c.Len())
		assert.Equal(t, 3, c.Dim)

		for _, row := range c.Matrix {
			var sum float64
			for _, x := range row {
				sum += float64(x) * float64(x)
			}
			assert.InDelta(t, 1.0, math.Sqrt(sum), 1e-6)
		}
	})

	t.Run("empty store", func(t *testing.T) {
		repo, backend, err := badgerstore.NewMemoryRepository()
		require.NoError(t, err)
		defer func() {
			repo.Close()
			backend.Close()
		}()

		_, err = Load(ctx, repo, nil)
		assert.ErrorIs(t, err, ErrEmptyCorpus)
	})

	t.Run("dimension mismatch", func(t *testing.T) {
		repo, backend, err := badgerstore.NewMemoryRepository()
		require.NoError(t, err)
		defer func() {
			repo.Close()
			backend.Close()
		}()

		require.NoError(t, repo.PutVerses(ctx, 0,
			&core.VerseRecord{Book: "Genesis", Chapter: 1, Verse: 1, Text: "a", Vector: []float32{1, 0}},
			&core.VerseRecord{Book: "Genesis", Chapter: 1, Verse: 2, Text: "b", Vector: []float32{1, 0, 0}},
		))

		_, err = Load(ctx, repo, nil)
		assert.ErrorIs(t, err, ErrDimensionMismatch)
	})
}

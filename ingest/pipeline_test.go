package ingest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/poiesic/versefinder/ai/mock"
	"github.com/poiesic/versefinder/storage"
	badgerstore "github.com/poiesic/versefinder/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bible.csv")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestReadVerses(t *testing.T) {
	t.Run("standard columns", func(t *testing.T) {
		path := writeCSV(t, "book,chapter,verse,text\nGenesis,1,1,In the beginning\nGenesis,1,2,And the earth\n")
		records, err := ReadVerses(path)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "Genesis", records[0].Book)
		assert.Equal(t, 1, records[0].Chapter)
		assert.Equal(t, 2, records[1].Verse)
		assert.Equal(t, "In the beginning", records[0].Text)
		assert.Empty(t, records[0].Vector)
	})

	t.Run("column order is free", func(t *testing.T) {
		path := writeCSV(t, "text,verse,chapter,book\nhello world,3,2,Exodus\n")
		records, err := ReadVerses(path)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "Exodus", records[0].Book)
		assert.Equal(t, 2, records[0].Chapter)
		assert.Equal(t, 3, records[0].Verse)
	})

	t.Run("float chapter truncates", func(t *testing.T) {
		path := writeCSV(t, "book,chapter,verse,text\nGenesis,3.0,4.9,some text\n")
		records, err := ReadVerses(path)
		require.NoError(t, err)
		assert.Equal(t, 3, records[0].Chapter)
		assert.Equal(t, 4, records[0].Verse)
	})

	t.Run("unparseable numbers become zero", func(t *testing.T) {
		path := writeCSV(t, "book,chapter,verse,text\nGenesis,abc,,some text\n")
		records, err := ReadVerses(path)
		require.NoError(t, err)
		assert.Zero(t, records[0].Chapter)
		assert.Zero(t, records[0].Verse)
	})

	t.Run("missing column", func(t *testing.T) {
		path := writeCSV(t, "book,chapter,text\nGenesis,1,In the beginning\n")
		_, err := ReadVerses(path)
		assert.ErrorIs(t, err, ErrBadCSVHeader)
	})

	t.Run("no rows", func(t *testing.T) {
		path := writeCSV(t, "book,chapter,verse,text\n")
		_, err := ReadVerses(path)
		assert.ErrorIs(t, err, ErrEmptyCSV)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ReadVerses(filepath.Join(t.TempDir(), "nope.csv"))
		assert.Error(t, err)
	})
}

func TestNormalizeCSV(t *testing.T) {
	t.Run("synonym headers and numeric books", func(t *testing.T) {
		in := writeCSV(t, "book_id,ch,v,verse_text\n1,1.0,1,In the beginning\n19,23.0,1.0,The LORD is my shepherd\n99,1,1,Unknown\n")
		out := filepath.Join(t.TempDir(), "normalized.csv")

		rows, err := NormalizeCSV(in, out)
		require.NoError(t, err)
		assert.Equal(t, 3, rows)

		records, err := ReadVerses(out)
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, "Genesis", records[0].Book)
		assert.Equal(t, "Psalms", records[1].Book)
		assert.Equal(t, 23, records[1].Chapter)
		assert.Equal(t, "Book99", records[2].Book)
	})

	t.Run("named books pass through", func(t *testing.T) {
		in := writeCSV(t, "Book,Chapter,Verse,Text\nSong of Solomon,1,1,The song of songs\n")
		out := filepath.Join(t.TempDir(), "normalized.csv")

		_, err := NormalizeCSV(in, out)
		require.NoError(t, err)

		records, err := ReadVerses(out)
		require.NoError(t, err)
		assert.Equal(t, "Song of Solomon", records[0].Book)
	})

	t.Run("undetectable columns", func(t *testing.T) {
		in := writeCSV(t, "a,b,c\n1,2,3\n")
		out := filepath.Join(t.TempDir(), "normalized.csv")

		_, err := NormalizeCSV(in, out)
		assert.ErrorIs(t, err, ErrBadCSVHeader)
	})
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()

	t.Run("succeeds first try", func(t *testing.T) {
		calls := 0
		err := RetryWithBackoff(ctx, func() error {
			calls++
			return nil
		}, 3, time.Millisecond)
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("succeeds after failures", func(t *testing.T) {
		calls := 0
		err := RetryWithBackoff(ctx, func() error {
			calls++
			if calls < 3 {
				return errors.New("transient")
			}
			return nil
		}, 5, time.Millisecond)
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("exhausts attempts", func(t *testing.T) {
		boom := errors.New("boom")
		calls := 0
		err := RetryWithBackoff(ctx, func() error {
			calls++
			return boom
		}, 3, time.Millisecond)
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 3, calls)
	})

	t.Run("invalid attempts", func(t *testing.T) {
		err := RetryWithBackoff(ctx, func() error { return nil }, 0, time.Millisecond)
		assert.ErrorIs(t, err, ErrInvalidMaxAttempts)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		err := RetryWithBackoff(cancelled, func() error { return nil }, 3, time.Millisecond)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func buildCSV(t *testing.T, verses int) string {
	t.Helper()
	contents := "book,chapter,verse,text\n"
	for i := 0; i < verses; i++ {
		contents += fmt.Sprintf("Genesis,1,%d,verse text number %d\n", i+1, i+1)
	}
	return writeCSV(t, contents)
}

func newBuildPipeline(t *testing.T, opts ...Option) (*Pipeline, storage.VerseRepository) {
	t.Helper()
	repo, backend, err := badgerstore.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})

	opts = append([]Option{WithBatchSize(4), WithPoolSize(2)}, opts...)
	pipeline, err := NewPipeline(repo, mock.NewMockProvider(), "all-minilm", opts...)
	require.NoError(t, err)
	t.Cleanup(pipeline.Release)

	return pipeline, repo
}

func TestPipelineBuild(t *testing.T) {
	ctx := context.Background()

	t.Run("embeds and persists all verses", func(t *testing.T) {
		pipeline, repo := newBuildPipeline(t)
		path := buildCSV(t, 10)

		result, err := pipeline.Build(ctx, path, false)
		require.NoError(t, err)
		assert.Equal(t, 10, result.Verses)
		assert.Equal(t, 384, result.Dimension)
		assert.False(t, result.Skipped)

		count, err := repo.CountVerses(ctx)
		require.NoError(t, err)
		assert.Equal(t, 10, count)

		records, err := repo.GetAllVerses(ctx)
		require.NoError(t, err)
		for i, record := range records {
			assert.Equal(t, i+1, record.Verse)
			assert.Len(t, record.Vector, 384)
		}

		manifest, err := repo.GetManifest(ctx)
		require.NoError(t, err)
		assert.Equal(t, "all-minilm", manifest.Model)
		assert.Equal(t, 10, manifest.Verses)
	})

	t.Run("unchanged corpus skips rebuild", func(t *testing.T) {
		pipeline, _ := newBuildPipeline(t)
		path := buildCSV(t, 10)

		first, err := pipeline.Build(ctx, path, false)
		require.NoError(t, err)
		require.False(t, first.Skipped)

		second, err := pipeline.Build(ctx, path, false)
		require.NoError(t, err)
		assert.True(t, second.Skipped)
		assert.Equal(t, first.Verses, second.Verses)
	})

	t.Run("force rebuilds anyway", func(t *testing.T) {
		pipeline, _ := newBuildPipeline(t)
		path := buildCSV(t, 10)

		_, err := pipeline.Build(ctx, path, false)
		require.NoError(t, err)

		result, err := pipeline.Build(ctx, path, true)
		require.NoError(t, err)
		assert.False(t, result.Skipped)
	})

	t.Run("shrunken corpus truncates stale rows", func(t *testing.T) {
		pipeline, repo := newBuildPipeline(t)

		_, err := pipeline.Build(ctx, buildCSV(t, 10), false)
		require.NoError(t, err)

		_, err = pipeline.Build(ctx, buildCSV(t, 6), false)
		require.NoError(t, err)

		count, err := repo.CountVerses(ctx)
		require.NoError(t, err)
		assert.Equal(t, 6, count)
	})

	t.Run("embedding failure fails the build", func(t *testing.T) {
		repo, backend, err := badgerstore.NewMemoryRepository()
		require.NoError(t, err)
		t.Cleanup(func() {
			repo.Close()
			backend.Close()
		})

		embedder := mock.NewMockEmbedder()
		embedder.EmbedTextsFunc = func(_ context.Context, _ []string) ([][]float32, error) {
			return nil, errors.New("model offline")
		}
		provider := mock.NewMockProviderWithServices(embedder, nil)

		pipeline, err := NewPipeline(repo, provider, "all-minilm",
			WithBatchSize(4), WithRetry(2, time.Millisecond))
		require.NoError(t, err)
		t.Cleanup(pipeline.Release)

		_, err = pipeline.Build(ctx, buildCSV(t, 10), false)
		assert.Error(t, err)

		// No manifest means the store stays unbuilt.
		_, err = repo.GetManifest(ctx)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestNewPipelineValidation(t *testing.T) {
	repo, backend, err := badgerstore.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})

	t.Run("requires repository", func(t *testing.T) {
		_, err := NewPipeline(nil, mock.NewMockProvider(), "all-minilm")
		assert.ErrorIs(t, err, ErrRepositoryRequired)
	})

	t.Run("requires provider", func(t *testing.T) {
		_, err := NewPipeline(repo, nil, "all-minilm")
		assert.ErrorIs(t, err, ErrAIProviderRequired)
	})

	t.Run("requires model", func(t *testing.T) {
		_, err := NewPipeline(repo, mock.NewMockProvider(), "")
		assert.ErrorIs(t, err, ErrModelRequired)
	})

	t.Run("rejects bad batch size", func(t *testing.T) {
		_, err := NewPipeline(repo, mock.NewMockProvider(), "all-minilm", WithBatchSize(0))
		assert.ErrorIs(t, err, ErrInvalidBatchSize)
	})
}

package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/poiesic/versefinder/ai"
	"github.com/poiesic/versefinder/core"
	"github.com/poiesic/versefinder/corpus"
	"github.com/poiesic/versefinder/storage"
)

// batchProcessor embeds one contiguous slice of verses and writes the
// finished records at their ordinals.
type batchProcessor struct {
	repo           storage.VerseRepository
	embedder       ai.Embedder
	maxRetries     int
	retryBaseDelay time.Duration
}

func newBatchProcessor(repo storage.VerseRepository, embedder ai.Embedder, maxRetries int, retryBaseDelay time.Duration) *batchProcessor {
	return &batchProcessor{
		repo:           repo,
		embedder:       embedder,
		maxRetries:     maxRetries,
		retryBaseDelay: retryBaseDelay,
	}
}

// process embeds records and persists them starting at startOrdinal.
// Vectors are normalized before storage so search can rely on unit
// vectors.
func (bp *batchProcessor) process(ctx context.Context, startOrdinal int, records []*core.VerseRecord) error {
	if len(records) == 0 {
		return nil
	}

	texts := make([]string, len(records))
	for i, record := range records {
		texts[i] = record.Text
	}

	var embeddings [][]float32
	err := RetryWithBackoff(ctx, func() error {
		var err error
		embeddings, err = bp.embedder.EmbedTexts(ctx, texts)
		return err
	}, bp.maxRetries, bp.retryBaseDelay)
	if err != nil {
		return fmt.Errorf("generating embeddings after %d attempts: %w", bp.maxRetries, err)
	}

	if len(embeddings) != len(records) {
		return fmt.Errorf("embedding count mismatch: expected %d, got %d", len(records), len(embeddings))
	}

	for i := range records {
		records[i].Vector = corpus.Normalize(embeddings[i])
	}

	if err := bp.repo.PutVerses(ctx, startOrdinal, records...); err != nil {
		return fmt.Errorf("storing verses at ordinal %d: %w", startOrdinal, err)
	}
	return nil
}

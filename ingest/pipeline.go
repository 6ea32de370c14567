package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/versefinder/ai"
	"github.com/poiesic/versefinder/core"
	"github.com/poiesic/versefinder/storage"
)

const (
	defaultBatchSize      = 64
	defaultMaxRetries     = 3
	defaultRetryBaseDelay = time.Second
)

// Pipeline builds the embedded verse store from a corpus CSV. Batches
// of verses are embedded concurrently on a worker pool and written at
// their corpus ordinals, so a rebuild overwrites in place. The
// manifest is written last and acts as the commit marker: a store
// without a matching manifest is treated as unbuilt.
type Pipeline struct {
	repo           storage.VerseRepository
	embedder       ai.Embedder
	model          string
	pool           *ants.Pool
	batchSize      int
	maxRetries     int
	retryBaseDelay time.Duration
	processor      *batchProcessor
	progress       io.Writer
	logger         *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent embedding.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithBatchSize sets how many verses are embedded per request.
// Default is 64.
func WithBatchSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			return ErrInvalidBatchSize
		}
		p.batchSize = size
		return nil
	}
}

// WithRetry sets how embedding calls are retried.
// Default is 3 attempts with a one second base delay.
func WithRetry(maxAttempts int, baseDelay time.Duration) Option {
	return func(p *Pipeline) error {
		if maxAttempts < 1 {
			return ErrInvalidMaxAttempts
		}
		p.maxRetries = maxAttempts
		p.retryBaseDelay = baseDelay
		return nil
	}
}

// WithProgressWriter enables progress reporting to the given writer.
// Default is no progress output.
func WithProgressWriter(w io.Writer) Option {
	return func(p *Pipeline) error {
		p.progress = w
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a build pipeline. model names the embedding
// model and is recorded in the manifest for fingerprinting.
func NewPipeline(
	repo storage.VerseRepository,
	provider ai.AIProvider,
	model string,
	opts ...Option,
) (*Pipeline, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}
	if model == "" {
		return nil, ErrModelRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		repo:           repo,
		embedder:       provider.Embedder(),
		model:          model,
		pool:           pool,
		batchSize:      defaultBatchSize,
		maxRetries:     defaultMaxRetries,
		retryBaseDelay: defaultRetryBaseDelay,
		logger:         slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	p.processor = newBatchProcessor(repo, p.embedder, p.maxRetries, p.retryBaseDelay)
	p.logger = p.logger.With("component", "ingest")

	return p, nil
}

// BuildResult summarizes a Build run.
type BuildResult struct {
	Verses    int
	Dimension int
	Skipped   bool
	Duration  time.Duration
}

// Build embeds the corpus at csvPath into the verse store. When the
// store already carries a manifest with the same model and corpus
// fingerprint the build is skipped unless force is set.
func (p *Pipeline) Build(ctx context.Context, csvPath string, force bool) (*BuildResult, error) {
	start := time.Now()

	records, err := ReadVerses(csvPath)
	if err != nil {
		return nil, err
	}

	texts := make([]string, len(records))
	for i, record := range records {
		texts[i] = record.Text
	}
	fingerprint := core.FingerprintFromTexts(p.model, texts)

	if !force {
		manifest, err := p.repo.GetManifest(ctx)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("checking manifest: %w", err)
		}
		if manifest != nil && manifest.Fingerprint == fingerprint && manifest.Verses == len(records) {
			p.logger.Info("embeddings up to date, skipping build",
				"verses", manifest.Verses, "model", manifest.Model)
			return &BuildResult{
				Verses:    manifest.Verses,
				Dimension: manifest.Dim,
				Skipped:   true,
				Duration:  time.Since(start),
			}, nil
		}
	}

	p.logger.Info("building verse embeddings",
		"verses", len(records), "model", p.model, "batchSize", p.batchSize)

	tracker := NewProgressTracker(io.Discard, len(records), p.batchSize)
	if p.progress != nil {
		tracker = NewProgressTracker(p.progress, len(records), p.batchSize)
	}
	tracker.Start()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	for startOrdinal := 0; startOrdinal < len(records); startOrdinal += p.batchSize {
		end := startOrdinal + p.batchSize
		if end > len(records) {
			end = len(records)
		}
		batchStart, batch := startOrdinal, records[startOrdinal:end]

		wg.Add(1)
		submitErr := p.pool.Submit(func() {
			defer wg.Done()

			mu.Lock()
			failed := firstErr != nil
			mu.Unlock()
			if failed {
				return
			}

			if err := p.processor.process(ctx, batchStart, batch); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return
			}
			tracker.Increment(len(batch))
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			if firstErr == nil {
				firstErr = submitErr
			}
			mu.Unlock()
			break
		}
	}

	wg.Wait()
	tracker.Finish()

	if firstErr != nil {
		return nil, firstErr
	}

	// Drop stale rows past the new corpus length, then commit via the
	// manifest.
	if err := p.repo.TruncateVerses(ctx, len(records)); err != nil {
		return nil, fmt.Errorf("truncating stale verses: %w", err)
	}

	dim := len(records[0].Vector)
	manifest := &core.Manifest{
		Model:       p.model,
		Dim:         dim,
		Verses:      len(records),
		Fingerprint: fingerprint,
	}
	if err := p.repo.SetManifest(ctx, manifest); err != nil {
		return nil, fmt.Errorf("writing manifest: %w", err)
	}

	duration := time.Since(start)
	p.logger.Info("embedding build complete",
		"verses", len(records), "dimension", dim, "duration", duration)

	return &BuildResult{
		Verses:    len(records),
		Dimension: dim,
		Duration:  duration,
	}, nil
}

// Release releases the worker pool. The pipeline should not be used
// after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}

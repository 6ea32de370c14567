package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Reranker scores query/candidate pairs with a cross-encoder relevance model.
// Implementations must be thread-safe for concurrent use.
type Reranker interface {
	// Score rates each candidate text against the query, returning one raw
	// relevance score per candidate in the same order as the input.
	// Scores are unbounded and may be negative; higher means more relevant.
	// Returns an error if scoring fails. Failures are not retried.
	Score(ctx context.Context, query string, candidates []string) ([]float64, error)
}

// AIProvider aggregates AI services for convenient initialization and lifecycle management.
// A provider creates and manages the Embedder and the optional Reranker,
// ensuring they share configuration and resources appropriately.
type AIProvider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// Reranker returns the cross-encoder scoring service, or nil when no
	// rerank model is configured. A nil Reranker is a supported
	// configuration: ranking then falls back to similarity order.
	Reranker() Reranker

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}

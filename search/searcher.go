package search

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/poiesic/versefinder/ai"
	"github.com/poiesic/versefinder/core"
	"github.com/poiesic/versefinder/corpus"
	"github.com/poiesic/versefinder/index"
)

const (
	// MinQueryTokens is the minimum number of alphabetic tokens a query
	// must contain.
	MinQueryTokens = 10

	// MinResults and MaxResults bound the requested result count.
	MinResults = 3
	MaxResults = 10

	// MaxCandidates bounds the similarity-search pool passed to the
	// reranker.
	MaxCandidates = 100
)

// Searcher runs the retrieval-and-rerank pipeline: embed the query,
// pull top candidates by cosine similarity, optionally rescore them
// with a cross-encoder, and annotate the final picks with a rationale.
type Searcher struct {
	corpus   *corpus.Corpus
	index    *index.Index
	embedder ai.Embedder
	reranker ai.Reranker
	logger   *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSearcher creates a new searcher. The provider's reranker may be
// nil, in which case ranking falls back to raw similarity order.
func NewSearcher(
	c *corpus.Corpus,
	ix *index.Index,
	provider ai.AIProvider,
	opts ...Option,
) (*Searcher, error) {
	if c == nil {
		return nil, ErrCorpusRequired
	}
	if ix == nil {
		return nil, ErrIndexRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	s := &Searcher{
		corpus:   c,
		index:    ix,
		embedder: provider.Embedder(),
		reranker: provider.Reranker(),
		logger:   slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// RerankerAvailable reports whether a cross-encoder reranker is
// configured.
func (s *Searcher) RerankerAvailable() bool {
	return s.reranker != nil
}

// VerseCount returns the number of verses available for search.
func (s *Searcher) VerseCount() int {
	return s.corpus.Len()
}

// ValidateQuery checks that text carries enough alphabetic tokens to
// embed meaningfully. Returns ErrQueryTooShort otherwise.
func ValidateQuery(text string) error {
	if len(Tokenize(text)) < MinQueryTokens {
		return ErrQueryTooShort
	}
	return nil
}

// Recommend returns the best-matching verses for the query text.
// k is clamped to [MinResults, MaxResults] and candidates to
// [k, MaxCandidates].
func (s *Searcher) Recommend(ctx context.Context, text string, k, candidates int) ([]*core.RankedResult, error) {
	return s.RecommendWithMonitor(ctx, text, k, candidates, nil)
}

// RecommendWithMonitor runs Recommend with monitoring callbacks at
// each pipeline stage.
func (s *Searcher) RecommendWithMonitor(ctx context.Context, text string, k, candidates int, monitor SearchMonitor) ([]*core.RankedResult, error) {
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	if err := ValidateQuery(text); err != nil {
		return nil, err
	}

	k = clamp(k, MinResults, MaxResults)
	candidates = clamp(candidates, k, MaxCandidates)
	monitor.Start(text, k, candidates)

	// 1. Embed the query and normalize it so dot products against the
	// matrix are cosine similarities.
	embedding, err := s.embedder.EmbedText(ctx, text)
	if err != nil {
		s.logger.Error("error generating embedding for query", "err", err)
		return nil, fmt.Errorf("%w: %v", ErrEncodeFailed, err)
	}
	query := corpus.Normalize(embedding)
	monitor.AfterQueryEmbedding(len(query))

	// 2. Top candidates by cosine similarity.
	pool, err := s.index.TopN(query, candidates)
	if err != nil {
		s.logger.Error("error running similarity search", "err", err)
		return nil, fmt.Errorf("similarity search: %w", err)
	}
	monitor.AfterSimilaritySearch(pool)

	// 3. Rerank if a cross-encoder is configured, otherwise keep the
	// similarity order as-is.
	var selected []*core.RankedResult
	if s.reranker != nil {
		selected, err = s.rerank(ctx, text, pool, k, monitor)
		if err != nil {
			return nil, err
		}
	} else {
		monitor.RerankBypassed()
		if k > len(pool) {
			k = len(pool)
		}
		selected = make([]*core.RankedResult, k)
		for i, candidate := range pool[:k] {
			selected[i] = &core.RankedResult{
				Record: s.corpus.Records[candidate.Ordinal],
				Score:  float64(candidate.Score),
			}
		}
	}

	// 4. Annotate with a rationale.
	queryKeywords := Keywords(text, keywordsPerText)
	for _, result := range selected {
		result.Why = Explain(queryKeywords, result.Record.Text)
	}

	monitor.Finish(selected)
	return selected, nil
}

// rerank rescores the candidate pool with the cross-encoder, reorders
// by raw score, squashes scores into [0,1], and truncates to k.
func (s *Searcher) rerank(ctx context.Context, text string, pool []core.Candidate, k int, monitor SearchMonitor) ([]*core.RankedResult, error) {
	texts := make([]string, len(pool))
	for i, candidate := range pool {
		texts[i] = s.corpus.Records[candidate.Ordinal].Text
	}

	rawScores, err := s.reranker.Score(ctx, text, texts)
	if err != nil {
		s.logger.Error("error reranking candidates", "candidates", len(pool), "err", err)
		return nil, fmt.Errorf("%w: %v", ErrRerankFailed, err)
	}
	if len(rawScores) != len(pool) {
		return nil, fmt.Errorf("%w: got %d scores for %d candidates", ErrRerankFailed, len(rawScores), len(pool))
	}
	monitor.AfterRerank(rawScores)

	order := make([]int, len(pool))
	for i := range order {
		order[i] = i
	}
	// Stable: ties keep the similarity order from the index.
	sort.SliceStable(order, func(i, j int) bool {
		return rawScores[order[i]] > rawScores[order[j]]
	})

	if k > len(order) {
		k = len(order)
	}
	results := make([]*core.RankedResult, k)
	for rank, position := range order[:k] {
		results[rank] = &core.RankedResult{
			Record: s.corpus.Records[pool[position].Ordinal],
			Score:  NormalizeRerankScore(rawScores[position]),
		}
	}
	return results, nil
}

func clamp(v, low, high int) int {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}

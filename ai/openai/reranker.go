package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/poiesic/versefinder/ai"
)

const rerankTimeout = 30 * time.Second

// Reranker implements ai.Reranker against a Cohere/Jina-style /rerank
// endpoint as exposed by most local inference servers.
type Reranker struct {
	endpoint string
	model    string
	client   *http.Client
	logger   *slog.Logger
}

// newReranker is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newReranker(config *ai.Config) (*Reranker, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Reranker{
		endpoint: config.RerankHost + "/rerank",
		model:    config.RerankModel,
		client:   &http.Client{Timeout: rerankTimeout},
		logger:   slog.Default().With("component", "openai-reranker"),
	}, nil
}

// NewReranker creates a new cross-encoder reranker using the provided configuration.
//
// Returns ai.Reranker interface to enforce abstraction.
func NewReranker(config *ai.Config) (ai.Reranker, error) {
	return newReranker(config)
}

type rerankRequest struct {
	Model     string   `json:"model"`
	Query     string   `json:"query"`
	Documents []string `json:"documents"`
}

type rerankResponse struct {
	Results []struct {
		Index          int     `json:"index"`
		RelevanceScore float64 `json:"relevance_score"`
	} `json:"results"`
}

// Score rates each candidate text against the query with the cross-encoder.
// The returned scores are raw model outputs, order-aligned with candidates.
func (r *Reranker) Score(ctx context.Context, query string, candidates []string) ([]float64, error) {
	if len(candidates) == 0 {
		return []float64{}, nil
	}

	r.logger.Debug("scoring candidates", "count", len(candidates))

	body, err := json.Marshal(rerankRequest{
		Model:     r.model,
		Query:     query,
		Documents: candidates,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.Error("rerank request failed", "err", err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		r.logger.Error("rerank service returned error", "status", resp.StatusCode)
		return nil, fmt.Errorf("rerank service: status %d: %s", resp.StatusCode, payload)
	}

	var parsed rerankResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("rerank service: decoding response: %w", err)
	}

	if len(parsed.Results) != len(candidates) {
		return nil, fmt.Errorf("rerank service: score count mismatch: expected %d, got %d",
			len(candidates), len(parsed.Results))
	}

	// The service returns results sorted by relevance; restore input order
	// so callers get one score per candidate, order-preserving.
	scores := make([]float64, len(candidates))
	seen := make([]bool, len(candidates))
	for _, result := range parsed.Results {
		if result.Index < 0 || result.Index >= len(candidates) {
			return nil, fmt.Errorf("rerank service: result index %d out of range", result.Index)
		}
		if seen[result.Index] {
			return nil, fmt.Errorf("rerank service: duplicate result index %d", result.Index)
		}
		seen[result.Index] = true
		scores[result.Index] = result.RelevanceScore
	}

	return scores, nil
}

package mock

import (
	"context"
	"strings"
)

// MockReranker is a test double for ai.Reranker.
// It allows custom behavior injection via function fields.
type MockReranker struct {
	// ScoreFunc is called by Score if set.
	// If nil, uses default word-overlap scoring.
	ScoreFunc func(ctx context.Context, query string, candidates []string) ([]float64, error)

	callCount int
}

// NewMockReranker creates a mock reranker with default deterministic behavior.
// Note: Returns concrete type to allow test assertions and behavior injection.
func NewMockReranker() *MockReranker {
	return &MockReranker{}
}

// Score rates candidates with a crude word-overlap heuristic.
// Default behavior: the raw score is the count of query words appearing in
// the candidate, minus one, so scores can be negative like a real
// cross-encoder's logits.
func (m *MockReranker) Score(ctx context.Context, query string, candidates []string) ([]float64, error) {
	m.callCount++

	if m.ScoreFunc != nil {
		return m.ScoreFunc(ctx, query, candidates)
	}

	queryWords := strings.Fields(strings.ToLower(query))
	scores := make([]float64, len(candidates))
	for i, candidate := range candidates {
		lowered := strings.ToLower(candidate)
		var overlap int
		for _, word := range queryWords {
			if strings.Contains(lowered, word) {
				overlap++
			}
		}
		scores[i] = float64(overlap) - 1
	}
	return scores, nil
}

// CallCount returns the number of times Score was called.
func (m *MockReranker) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockReranker) Reset() {
	m.callCount = 0
	m.ScoreFunc = nil
}

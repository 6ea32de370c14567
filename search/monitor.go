package search

import "github.com/poiesic/versefinder/core"

// SearchMonitor provides hooks to observe the recommendation pipeline.
// Implement this interface to track intermediate steps during a search.
type SearchMonitor interface {
	Start(query string, k, candidates int)
	AfterQueryEmbedding(dimension int)
	AfterSimilaritySearch(candidates []core.Candidate)
	AfterRerank(rawScores []float64)
	RerankBypassed()
	Finish(results []*core.RankedResult)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string, _, _ int)                 {}
func (n *noopMonitor) AfterQueryEmbedding(_ int)                {}
func (n *noopMonitor) AfterSimilaritySearch(_ []core.Candidate) {}
func (n *noopMonitor) AfterRerank(_ []float64)                  {}
func (n *noopMonitor) RerankBypassed()                          {}
func (n *noopMonitor) Finish(_ []*core.RankedResult)            {}

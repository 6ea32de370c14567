package search

import "math"

// rerankCalibration scales raw cross-encoder logits before squashing.
// Tuned to the expected score range of the rerank model; changing it
// changes every returned score.
const rerankCalibration = 5.0

// NormalizeRerankScore maps a raw, unbounded rerank score into the
// open interval (0, 1) via (tanh(raw/5) + 1) / 2. The mapping is
// monotonically increasing, so it rescales without reordering.
func NormalizeRerankScore(raw float64) float64 {
	return (math.Tanh(raw/rerankCalibration) + 1) / 2
}

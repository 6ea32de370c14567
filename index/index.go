// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package index provides brute-force cosine similarity search over a
// matrix of unit-length embedding vectors. At Bible-corpus scale
// (~31k rows) a full scan with partial selection beats the constant
// factors of an approximate structure and stays exact.
package index

import (
	"container/heap"
	"fmt"

	"github.com/poiesic/versefinder/core"
	"github.com/poiesic/versefinder/corpus"
)

// Index holds a row-major matrix of unit vectors searchable by cosine
// similarity. The ordinal of a result is its row in the matrix.
type Index struct {
	matrix [][]float32
	dim    int
}

// New builds an Index over the given matrix. Every row must share the
// same non-zero dimension. The matrix is retained, not copied.
func New(matrix [][]float32) (*Index, error) {
	if len(matrix) == 0 {
		return nil, ErrEmptyIndex
	}
	dim := len(matrix[0])
	if dim == 0 {
		return nil, fmt.Errorf("%w: row 0 is empty", ErrBadDimension)
	}
	for i, row := range matrix {
		if len(row) != dim {
			return nil, fmt.Errorf("%w: row %d has dimension %d, expected %d",
				ErrBadDimension, i, len(row), dim)
		}
	}
	return &Index{matrix: matrix, dim: dim}, nil
}

// Len returns the number of rows in the index.
func (ix *Index) Len() int {
	return len(ix.matrix)
}

// Dim returns the vector dimension of the index.
func (ix *Index) Dim() int {
	return ix.dim
}

// TopN returns the n rows most similar to query, ordered by descending
// cosine score with ascending ordinal breaking ties. n is clamped to
// [1, Len]. The query must match the index dimension.
func (ix *Index) TopN(query []float32, n int) ([]core.Candidate, error) {
	if len(query) != ix.dim {
		return nil, fmt.Errorf("%w: query has dimension %d, expected %d",
			ErrBadDimension, len(query), ix.dim)
	}
	if n < 1 {
		n = 1
	}
	if n > len(ix.matrix) {
		n = len(ix.matrix)
	}

	// Keep the n best seen so far in a min-heap keyed by score, so the
	// scan stays O(rows log n) instead of sorting the whole corpus.
	h := make(candidateHeap, 0, n+1)
	for ordinal, row := range ix.matrix {
		score := corpus.Dot(query, row)
		if len(h) < n {
			heap.Push(&h, core.Candidate{Ordinal: ordinal, Score: score})
			continue
		}
		if worse(core.Candidate{Ordinal: ordinal, Score: score}, h[0]) {
			continue
		}
		h[0] = core.Candidate{Ordinal: ordinal, Score: score}
		heap.Fix(&h, 0)
	}

	// Drain from worst to best, filling the result back to front.
	results := make([]core.Candidate, len(h))
	for i := len(results) - 1; i >= 0; i-- {
		results[i] = heap.Pop(&h).(core.Candidate)
	}
	return results, nil
}

// worse reports whether a ranks below b: lower score, or equal score
// with higher ordinal.
func worse(a, b core.Candidate) bool {
	if a.Score != b.Score {
		return a.Score < b.Score
	}
	return a.Ordinal > b.Ordinal
}

type candidateHeap []core.Candidate

func (h candidateHeap) Len() int           { return len(h) }
func (h candidateHeap) Less(i, j int) bool { return worse(h[i], h[j]) }
func (h candidateHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *candidateHeap) Push(x any)        { *h = append(*h, x.(core.Candidate)) }

func (h *candidateHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

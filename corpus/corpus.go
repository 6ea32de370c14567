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

package corpus

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/versefinder/core"
	"github.com/poiesic/versefinder/storage"
)

// Corpus is the in-memory view of the verse store: the records in
// ordinal order plus a row-aligned matrix of unit-length embedding
// vectors. Row i of Matrix is the vector for Records[i].
type Corpus struct {
	Records []*core.VerseRecord
	Matrix  [][]float32
	Dim     int
}

// Len returns the number of verses in the corpus.
func (c *Corpus) Len() int {
	return len(c.Records)
}

// Load reads every verse from the repository and builds the aligned
// embedding matrix. Vectors are re-normalized on load so the matrix
// holds unit vectors regardless of what the store contains.
func Load(ctx context.Context, repo storage.VerseRepository, logger *slog.Logger) (*Corpus, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "corpus")

	records, err := repo.GetAllVerses(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading verses: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrEmptyCorpus
	}

	dim := len(records[0].Vector)
	if dim == 0 {
		return nil, fmt.Errorf("%w: ordinal 0", ErrMissingVector)
	}

	matrix := make([][]float32, len(records))
	for i, record := range records {
		if len(record.Vector) == 0 {
			return nil, fmt.Errorf("%w: ordinal %d", ErrMissingVector, i)
		}
		if len(record.Vector) != dim {
			return nil, fmt.Errorf("%w: ordinal %d has dimension %d, expected %d",
				ErrDimensionMismatch, i, len(record.Vector), dim)
		}
		matrix[i] = Normalize(record.Vector)
	}

	logger.Info("corpus loaded", "verses", len(records), "dimension", dim)

	return &Corpus{Records: records, Matrix: matrix, Dim: dim}, nil
}

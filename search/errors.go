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

package search

import "errors"

var (
	// ErrCorpusRequired is returned when a corpus is not provided.
	ErrCorpusRequired = errors.New("corpus required")

	// ErrIndexRequired is returned when a vector index is not provided.
	ErrIndexRequired = errors.New("vector index required")

	// ErrAIProviderRequired is returned when an AI provider is not provided.
	ErrAIProviderRequired = errors.New("AI provider required")

	// ErrQueryTooShort is returned when the query has fewer alphabetic
	// tokens than the minimum.
	ErrQueryTooShort = errors.New("please enter at least 10 words for better context")

	// ErrEncodeFailed is returned when the embedding service could not
	// encode the query.
	ErrEncodeFailed = errors.New("query encoding failed")

	// ErrRerankFailed is returned when the configured reranker could not
	// score the candidates.
	ErrRerankFailed = errors.New("reranking failed")
)

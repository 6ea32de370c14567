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


// Package ai provides abstractions for the pretrained models versefinder
// depends on.
//
// This package defines interfaces for AI operations: text embeddings and
// cross-encoder reranking. The retrieval core depends on these abstractions
// rather than on concrete model bindings, so backends can be swapped
// (local inference server, remote API, or test doubles) without touching
// the ranking logic.
//
// # Design Principles
//
// The package is designed around three key interfaces:
//
//   - Embedder: maps free text into the corpus embedding space
//   - Reranker: jointly scores (query, candidate) pairs for relevance
//   - AIProvider: aggregates AI services for convenient initialization
//
// The Reranker is an optional capability. AIProvider.Reranker returns nil
// when no rerank model is configured, and the search pipeline degrades to
// similarity-only ranking.
//
// # Implementation Packages
//
// The ai package includes two implementation sub-packages:
//
//   - ai/openai: production implementation using OpenAI-compatible APIs
//   - ai/mock: test doubles for unit testing without external dependencies
//
// Public constructors (openai.NewProvider, openai.NewEmbedder) return
// interface types to enforce abstraction. Mock constructors return concrete
// types so tests can inject behavior and assert on call counts.
//
// # Usage Example
//
//	config := ai.NewConfig(ai.WithRerankModel("bge-reranker-v2-m3"))
//	provider, err := openai.NewProvider(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	vector, err := provider.Embedder().EmbedText(ctx, "a verse about hope")
//	if rr := provider.Reranker(); rr != nil {
//	    scores, err := rr.Score(ctx, query, candidateTexts)
//	}
package ai

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

// Package search provides the verse recommendation pipeline.
//
// The Searcher type implements a multi-stage retrieval algorithm:
//   - Semantic retrieval over a cosine-similarity vector index
//   - Optional cross-encoder reranking with bounded score squashing
//   - Keyword-overlap rationales explaining each result
//
// When no reranker is configured the pipeline degrades to pure
// similarity ranking with the same response shape.
package search

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

import "errors"

var (
	// ErrEmptyCorpus indicates the verse store holds no records.
	ErrEmptyCorpus = errors.New("corpus is empty")

	// ErrMissingVector indicates a stored verse has no embedding.
	ErrMissingVector = errors.New("verse has no embedding vector")

	// ErrDimensionMismatch indicates stored vectors disagree on dimension.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
)

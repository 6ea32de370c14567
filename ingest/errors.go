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

package ingest

import "errors"

var (
	// ErrRepositoryRequired is returned when a verse repository is not provided.
	ErrRepositoryRequired = errors.New("verse repository required")

	// ErrAIProviderRequired is returned when an AI provider is not provided.
	ErrAIProviderRequired = errors.New("AI provider required")

	// ErrModelRequired is returned when no embedding model name is provided.
	ErrModelRequired = errors.New("embedding model name required")

	// ErrInvalidBatchSize is returned for non-positive batch sizes.
	ErrInvalidBatchSize = errors.New("batch size must be positive")

	// ErrInvalidMaxAttempts is returned for non-positive retry counts.
	ErrInvalidMaxAttempts = errors.New("max attempts must be positive")

	// ErrBadCSVHeader is returned when required columns cannot be found.
	ErrBadCSVHeader = errors.New("could not detect corpus CSV columns")

	// ErrEmptyCSV is returned when the corpus CSV has no data rows.
	ErrEmptyCSV = errors.New("corpus CSV has no rows")
)

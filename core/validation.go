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


package core

import "fmt"

// ValidateVerseRecord validates a VerseRecord according to domain rules.
//
// Validation rules:
//   - Book must not be empty
//   - Text must not be empty
//   - Chapter and Verse must not be negative (0 is valid: the normalizer
//     defaults unparseable numbers to 0)
//
// NOT validated (populated by the build pipeline):
//   - Vector (can be empty until the record is embedded)
func ValidateVerseRecord(record *VerseRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidVerseRecord)
	}

	if record.Book == "" {
		return fmt.Errorf("%w: %w", ErrInvalidVerseRecord, ErrEmptyBook)
	}

	if record.Text == "" {
		return fmt.Errorf("%w: %w", ErrInvalidVerseRecord, ErrEmptyText)
	}

	if record.Chapter < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidVerseRecord, ErrNegativeChapter)
	}

	if record.Verse < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidVerseRecord, ErrNegativeVerse)
	}

	return nil
}

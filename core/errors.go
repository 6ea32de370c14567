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

import "errors"

// Domain validation errors
var (
	// ErrInvalidVerseRecord indicates a VerseRecord failed validation.
	ErrInvalidVerseRecord = errors.New("invalid verse record")

	// ErrEmptyBook indicates the Book field is empty.
	ErrEmptyBook = errors.New("book cannot be empty")

	// ErrEmptyText indicates the Text field is empty.
	ErrEmptyText = errors.New("text cannot be empty")

	// ErrNegativeChapter indicates a negative chapter number.
	ErrNegativeChapter = errors.New("chapter cannot be negative")

	// ErrNegativeVerse indicates a negative verse number.
	ErrNegativeVerse = errors.New("verse cannot be negative")
)

package storage

import (
	"context"

	"github.com/poiesic/versefinder/core"
)

// VerseRepository provides operations for the persisted embedding store.
// Verses are addressed by their ordinal position in the corpus; ordinal
// keys make rebuilds idempotent, since a re-run overwrites rows in place
// instead of appending duplicates.
// Implementations must be thread-safe and support concurrent access.
type VerseRepository interface {
	// PutVerses writes records at consecutive ordinals starting at
	// startOrdinal, overwriting any existing rows at those positions.
	// Callers batch writes; a single call happens in one transaction.
	PutVerses(ctx context.Context, startOrdinal int, records ...*core.VerseRecord) error

	// GetVerse retrieves a single verse by ordinal.
	// Returns ErrNotFound if no verse exists at that position.
	GetVerse(ctx context.Context, ordinal int) (*core.VerseRecord, error)

	// GetAllVerses retrieves every verse in ascending ordinal order.
	GetAllVerses(ctx context.Context) ([]*core.VerseRecord, error)

	// CountVerses returns the number of stored verses.
	CountVerses(ctx context.Context) (int, error)

	// TruncateVerses removes every verse at ordinal >= from.
	// Used when a rebuild produces a smaller corpus than the previous one.
	TruncateVerses(ctx context.Context, from int) error

	// GetManifest retrieves the build manifest.
	// Returns ErrNotFound if the store has never completed a build.
	GetManifest(ctx context.Context) (*core.Manifest, error)

	// SetManifest writes the build manifest. The manifest is written last,
	// so its presence marks a completed, consistent build.
	SetManifest(ctx context.Context, manifest *core.Manifest) error

	// Close closes the storage backend and releases resources.
	Close() error
}

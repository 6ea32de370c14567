package badger

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/versefinder/core"
	"github.com/poiesic/versefinder/storage"
)

// VerseRepository implements storage.VerseRepository for BadgerDB.
type VerseRepository struct {
	backend *Backend
}

var _ storage.VerseRepository = (*VerseRepository)(nil)

// newVerseRepository is an internal constructor that returns the concrete type.
func newVerseRepository(backend *Backend) *VerseRepository {
	return &VerseRepository{backend: backend}
}

// NewVerseRepository creates a new VerseRepository on top of an open backend.
//
// Returns storage.VerseRepository interface to enforce abstraction.
func NewVerseRepository(backend *Backend) (storage.VerseRepository, error) {
	if backend == nil {
		return nil, errors.New("backend required")
	}
	return newVerseRepository(backend), nil
}

// Close releases repository resources. The backend is owned by the caller
// and stays open.
func (r *VerseRepository) Close() error {
	return nil
}

// PutVerses writes records at consecutive ordinals starting at startOrdinal.
// Existing rows at those positions are overwritten, which is what keeps a
// rebuild from duplicating the store.
func (r *VerseRepository) PutVerses(ctx context.Context, startOrdinal int, records ...*core.VerseRecord) error {
	if startOrdinal < 0 {
		return storage.ErrNegativeOrdinal
	}
	if len(records) == 0 {
		return nil
	}

	for _, record := range records {
		if err := core.ValidateVerseRecord(record); err != nil {
			return err
		}
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		for i, record := range records {
			key := makeVerseKey(startOrdinal + i)
			if err := tx.Set(key, storage.MarshalVerseRecord(record)); err != nil {
				return err
			}
		}
		return nil
	}, true)
}

// GetVerse retrieves a single verse by ordinal.
func (r *VerseRepository) GetVerse(ctx context.Context, ordinal int) (*core.VerseRecord, error) {
	if ordinal < 0 {
		return nil, storage.ErrNegativeOrdinal
	}

	var record *core.VerseRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeVerseKey(ordinal))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			record, err = storage.UnmarshalVerseRecord(val)
			return err
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return record, nil
}

// GetAllVerses retrieves every verse in ascending ordinal order.
// BigEndian ordinal keys make badger's lexicographic iteration order the
// corpus order, so no sort is needed here.
func (r *VerseRepository) GetAllVerses(ctx context.Context) ([]*core.VerseRecord, error) {
	var records []*core.VerseRecord

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(verseRecordPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		expected := 0
		for iter.Rewind(); iter.Valid(); iter.Next() {
			item := iter.Item()
			if got := verseKeyOrdinal(item.Key()); got != expected {
				return fmt.Errorf("embedding store has a gap: expected ordinal %d, found %d", expected, got)
			}
			expected++

			var record *core.VerseRecord
			err := item.Value(func(val []byte) error {
				var err error
				record, err = storage.UnmarshalVerseRecord(val)
				return err
			})
			if err != nil {
				return err
			}
			records = append(records, record)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return records, nil
}

// CountVerses returns the number of stored verses.
func (r *VerseRepository) CountVerses(ctx context.Context) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(verseRecordPrefix + ":")
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// TruncateVerses removes every verse at ordinal >= from.
func (r *VerseRepository) TruncateVerses(ctx context.Context, from int) error {
	if from < 0 {
		return storage.ErrNegativeOrdinal
	}

	// Collect keys first; deleting while iterating invalidates the iterator.
	var stale [][]byte
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Seek(makeVerseKey(from)); iter.ValidForPrefix([]byte(verseRecordPrefix + ":")); iter.Next() {
			stale = append(stale, iter.Item().KeyCopy(nil))
		}
		return nil
	}, false)
	if err != nil {
		return err
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, key := range stale {
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return nil
	}, true)
}

// GetManifest retrieves the build manifest.
func (r *VerseRepository) GetManifest(ctx context.Context) (*core.Manifest, error) {
	var manifest *core.Manifest
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeManifestKey())
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			manifest, err = storage.UnmarshalManifest(val)
			return err
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return manifest, nil
}

// SetManifest writes the build manifest.
func (r *VerseRepository) SetManifest(ctx context.Context, manifest *core.Manifest) error {
	if manifest == nil {
		return errors.New("manifest required")
	}
	return r.backend.WithTx(func(tx *badger.Txn) error {
		return tx.Set(makeManifestKey(), storage.MarshalManifest(manifest))
	}, true)
}

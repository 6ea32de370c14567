package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateVerseRecord(t *testing.T) {
	valid := func() *VerseRecord {
		return &VerseRecord{
			Book:    "Genesis",
			Chapter: 1,
			Verse:   1,
			Text:    "In the beginning God created the heaven and the earth.",
		}
	}

	t.Run("valid record", func(t *testing.T) {
		require.NoError(t, ValidateVerseRecord(valid()))
	})

	t.Run("zero chapter and verse are valid", func(t *testing.T) {
		record := valid()
		record.Chapter = 0
		record.Verse = 0
		require.NoError(t, ValidateVerseRecord(record))
	})

	t.Run("missing vector is valid", func(t *testing.T) {
		record := valid()
		record.Vector = nil
		require.NoError(t, ValidateVerseRecord(record))
	})

	t.Run("nil record", func(t *testing.T) {
		err := ValidateVerseRecord(nil)
		assert.ErrorIs(t, err, ErrInvalidVerseRecord)
	})

	t.Run("empty book", func(t *testing.T) {
		record := valid()
		record.Book = ""
		err := ValidateVerseRecord(record)
		assert.ErrorIs(t, err, ErrInvalidVerseRecord)
		assert.ErrorIs(t, err, ErrEmptyBook)
	})

	t.Run("empty text", func(t *testing.T) {
		record := valid()
		record.Text = ""
		err := ValidateVerseRecord(record)
		assert.ErrorIs(t, err, ErrEmptyText)
	})

	t.Run("negative chapter", func(t *testing.T) {
		record := valid()
		record.Chapter = -1
		err := ValidateVerseRecord(record)
		assert.ErrorIs(t, err, ErrNegativeChapter)
	})

	t.Run("negative verse", func(t *testing.T) {
		record := valid()
		record.Verse = -3
		err := ValidateVerseRecord(record)
		assert.ErrorIs(t, err, ErrNegativeVerse)
	})
}

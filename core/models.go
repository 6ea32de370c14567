package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"fmt"

	"github.com/go-crypt/x/blake2b"
)

// Fingerprint identifies a built corpus artifact. It is derived from the
// record store contents plus the embedding model identifier, so an unchanged
// source always produces the same fingerprint.
type Fingerprint uint64

// FingerprintFromTexts generates a deterministic fingerprint for a corpus
// build from the embedding model name and the verse texts in corpus order.
func FingerprintFromTexts(model string, texts []string) Fingerprint {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(model))
	h.Write([]byte{0})
	for _, text := range texts {
		h.Write([]byte(text))
		h.Write([]byte{0})
	}
	sum := h.Sum(nil)
	return Fingerprint(binary.LittleEndian.Uint64(sum))
}

// VerseRecord is a single verse of the corpus. Records are addressed by
// their ordinal position in the corpus; the ordinal is not stored on the
// record itself. The Vector field is populated by the build pipeline and
// holds the unit-normalized embedding of Text.
type VerseRecord struct {
	Book    string
	Chapter int
	Verse   int
	Text    string
	Vector  []float32
}

// Reference returns the conventional "Book Chapter:Verse" citation.
func (r *VerseRecord) Reference() string {
	return fmt.Sprintf("%s %d:%d", r.Book, r.Chapter, r.Verse)
}

// Manifest describes a built embedding store. It is written once per build
// and checked on subsequent builds to keep rebuilds idempotent.
type Manifest struct {
	Model       string
	Dim         int
	Verses      int
	Fingerprint Fingerprint
}

// Candidate is a retrieval hit scoped to a single request: the ordinal of a
// verse in the corpus and its cosine similarity to the query vector.
type Candidate struct {
	Ordinal int
	Score   float32
}

// RankedResult is a final recommendation returned to the caller.
type RankedResult struct {
	Record *VerseRecord
	Score  float64
	Why    string
}

package badger

import "encoding/binary"

// Key prefixes for different data types
const (
	verseRecordPrefix = "verrec"
	manifestKeyName   = "vermanifest"
)

// makeVerseKey generates a key for a verse record by ordinal.
// The ordinal is written in BigEndian order so lexicographic iteration
// visits verses in ascending corpus order.
func makeVerseKey(ordinal int) []byte {
	prefix := verseRecordPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	buf := make([]byte, prefixSize+8)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(ordinal))
	return buf
}

// verseKeyOrdinal extracts the ordinal back out of a verse key.
func verseKeyOrdinal(key []byte) int {
	return int(binary.BigEndian.Uint64(key[len(verseRecordPrefix)+1:]))
}

// makeManifestKey generates the key for the build manifest.
func makeManifestKey() []byte {
	return []byte(manifestKeyName)
}

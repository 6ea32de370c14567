// Package corpus loads the persisted verse store into the in-memory
// form search operates on: ordinal-ordered records alongside a
// row-aligned matrix of unit-length embedding vectors.
package corpus

// Package ingest builds the embedded verse store from Bible corpus
// CSV files. It covers raw-dump normalization, batched concurrent
// embedding with retry, and fingerprint-based change detection so
// unchanged corpora are not re-embedded.
package ingest

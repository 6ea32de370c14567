package server

import "errors"

// ErrSearcherRequired is returned when a searcher is not provided.
var ErrSearcherRequired = errors.New("searcher required")

// Package server exposes verse recommendation over a small JSON HTTP
// API: a metadata root, a health check, and the recommend endpoint.
package server

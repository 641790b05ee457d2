// Package flat provides a flat (exhaustive) in-memory vector index with
// SQLite persistence. Every query scans all entries, which is exact and
// fast enough for corpora up to the low hundreds of thousands of chunks.
package flat

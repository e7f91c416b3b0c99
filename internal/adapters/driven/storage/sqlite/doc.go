// Package sqlite provides SQLite-backed persistence for file records and
// integrations using modernc.org/sqlite (pure Go, no CGO).
//
// Embeddings are stored as little-endian float32 blobs; platform identity
// fields are stored as a JSON column. Schema changes ship as embedded,
// numbered .up.sql migrations applied in order at startup.
package sqlite

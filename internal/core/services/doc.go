// Package services implements the driving port interfaces.
// Services contain the core business logic: the content summarizer, the
// similarity engine, the reconciliation engine, the embedding pipeline and
// the sync/search orchestration around them.
//
// Summarization, similarity scoring, ranking and reconciliation are pure
// functions - safe for concurrent use with no shared state. The embedding
// pipeline is the only path that performs I/O, one independent outbound call
// per record.
package services

package domain

// Match pairs a file record with a computed similarity score.
// Ephemeral; produced only during a search or compare operation.
type Match struct {
	// Record is the candidate file record.
	Record FileRecord

	// Score is the cosine similarity against the query vector, in [-1, 1].
	// Callers treat values below their threshold as non-matches.
	Score float64
}

// SearchOptions configures a similarity search.
type SearchOptions struct {
	// Threshold is the minimum similarity score to include a candidate.
	Threshold float64

	// Limit is the maximum number of matches to return.
	// Zero or negative yields no results.
	Limit int
}

package services

import (
	"math"
	"sort"

	"github.com/filehub-labs/filehub/internal/core/domain"
)

// Candidate pairs an identifier with its stored vector for ranking.
type Candidate struct {
	// ID identifies the candidate record.
	ID string

	// Vector is the candidate's stored embedding. Nil or empty vectors
	// exclude the candidate from results.
	Vector []float32
}

// ScoredID is a ranked candidate.
type ScoredID struct {
	// ID identifies the candidate record.
	ID string

	// Score is the cosine similarity against the query vector.
	Score float64
}

// CosineSimilarity computes dot(a,b) / (||a|| * ||b||).
//
// Vectors of unequal length are a caller error and return
// domain.ErrDimensionMismatch, never a silent zero. If either norm is
// exactly zero the result is 0 rather than NaN.
func CosineSimilarity(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, domain.ErrDimensionMismatch
	}

	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}

	if normA == 0 || normB == 0 {
		return 0, nil
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}

// RankBySimilarity scores candidates against the query vector, keeps those
// at or above threshold and returns them ordered by descending score,
// truncated to limit.
//
// Candidates without a vector are skipped silently; a missing embedding
// excludes the candidate, it is not an error. A candidate whose vector
// length differs from the query's is likewise skipped, so one malformed
// vector never corrupts the ranking of the others. Ties keep input order.
// A limit of zero or less yields an empty result.
//
// Pure function: no side effects, no I/O.
func RankBySimilarity(query []float32, candidates []Candidate, threshold float64, limit int) []ScoredID {
	if limit <= 0 || len(query) == 0 {
		return []ScoredID{}
	}

	scored := make([]ScoredID, 0, len(candidates))
	for _, c := range candidates {
		if len(c.Vector) == 0 {
			continue
		}
		score, err := CosineSimilarity(query, c.Vector)
		if err != nil {
			continue
		}
		if score < threshold {
			continue
		}
		scored = append(scored, ScoredID{ID: c.ID, Score: score})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}

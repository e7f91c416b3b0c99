// Package fallback provides a deterministic, non-ML embedding service used
// when no real provider is configured or a provider call fails.
//
// The output is reproducible: the same text always yields a bit-identical
// vector, which keeps tests deterministic and degraded mode stable across
// restarts and re-indexing.
package fallback

import (
	"context"
	"math"
	"regexp"
	"strings"

	"github.com/filehub-labs/filehub/internal/core/ports/driven"
)

// Ensure Embedder implements the interface.
var _ driven.EmbeddingService = (*Embedder)(nil)

// Dimensions is the fixed output vector size.
const Dimensions = 128

// spreadWidth is how many neighbouring indices receive a decaying share of
// each token's contribution, on each side.
const spreadWidth = 3

var tokenSplit = regexp.MustCompile(`\W+`)

// Embedder is the deterministic fallback embedding service.
type Embedder struct{}

// New creates a fallback embedder.
func New() *Embedder {
	return &Embedder{}
}

// Embed produces a reproducible pseudo-embedding for the text.
// Total: never fails, never performs I/O.
//
// Each token contributes 0.1 + (i/n)*0.9 at index hash(token) mod 128, plus
// a decaying contribution of 0.03*(1-j/4) at the j-th neighbour on each side
// for j in 1..3, wrapping mod 128. The result is L2-normalised.
func (e *Embedder) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float64, Dimensions)

	tokens := tokenize(text)
	n := float64(len(tokens))
	for i, token := range tokens {
		seed := tokenHash(token) % Dimensions
		weight := 0.1 + (float64(i)/n)*0.9
		vec[seed] += weight

		for j := 1; j <= spreadWidth; j++ {
			spill := 0.03 * (1 - float64(j)/4)
			vec[(seed+j)%Dimensions] += spill
			vec[((seed-j)%Dimensions+Dimensions)%Dimensions] += spill
		}
	}

	var sum float64
	for _, v := range vec {
		sum += v * v
	}
	norm := math.Sqrt(sum)
	if norm == 0 {
		norm = 1
	}

	out := make([]float32, Dimensions)
	for i, v := range vec {
		out[i] = float32(v / norm)
	}
	return out, nil
}

// Dimensions returns the embedding vector size.
func (e *Embedder) Dimensions() int {
	return Dimensions
}

// ModelName returns the name of the embedding model being used.
func (e *Embedder) ModelName() string {
	return "fallback-hash-128"
}

// tokenize lower-cases the text and splits on non-word-character runs,
// discarding empty tokens.
func tokenize(text string) []string {
	parts := tokenSplit.Split(strings.ToLower(text), -1)
	tokens := parts[:0]
	for _, p := range parts {
		if p != "" {
			tokens = append(tokens, p)
		}
	}
	return tokens
}

// tokenHash is a 32-bit rolling hash: h = h*31 + code over the token's
// UTF-16 code units, wrapped to signed 32-bit, absolute value. The exact
// recurrence is pinned by tests - changing it changes every fallback vector.
func tokenHash(token string) int {
	var h int32
	for _, r := range token {
		if r > 0xFFFF {
			// Supplementary planes hash as their UTF-16 surrogate pair.
			r -= 0x10000
			h = h*31 + (0xD800 + (r >> 10))
			h = h*31 + (0xDC00 + (r & 0x3FF))
			continue
		}
		h = h*31 + r
	}
	if h == math.MinInt32 {
		return 0
	}
	if h < 0 {
		return int(-h)
	}
	return int(h)
}

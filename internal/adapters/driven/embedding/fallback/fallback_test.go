package fallback

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbedder_Embed_Deterministic(t *testing.T) {
	e := New()
	ctx := context.Background()

	a, err := e.Embed(ctx, "quarterly financial report for 2024")
	require.NoError(t, err)
	b, err := e.Embed(ctx, "quarterly financial report for 2024")
	require.NoError(t, err)

	// Bit-identical, not merely approximately equal.
	assert.Equal(t, a, b)
}

func TestEmbedder_Embed_Dimensions(t *testing.T) {
	e := New()

	vec, err := e.Embed(context.Background(), "hello world")
	require.NoError(t, err)
	assert.Len(t, vec, Dimensions)
	assert.Equal(t, Dimensions, e.Dimensions())
}

func TestEmbedder_Embed_UnitNorm(t *testing.T) {
	e := New()
	ctx := context.Background()

	texts := []string{
		"a",
		"hello world",
		"report.pdf - document file located at /docs/report.pdf from dropbox",
		"many many many repeated repeated tokens tokens tokens here",
	}
	for _, text := range texts {
		vec, err := e.Embed(ctx, text)
		require.NoError(t, err)

		var sum float64
		for _, v := range vec {
			sum += float64(v) * float64(v)
		}
		assert.InDelta(t, 1.0, math.Sqrt(sum), 1e-6, "norm for %q", text)
	}
}

func TestEmbedder_Embed_EmptyText(t *testing.T) {
	e := New()

	vec, err := e.Embed(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, vec, Dimensions)

	// No tokens means a zero vector; the zero norm divides by 1.
	for _, v := range vec {
		assert.Zero(t, v)
	}
}

func TestEmbedder_Embed_PunctuationOnly(t *testing.T) {
	e := New()

	vec, err := e.Embed(context.Background(), "?!... --- ///")
	require.NoError(t, err)
	for _, v := range vec {
		assert.Zero(t, v)
	}
}

func TestEmbedder_Embed_CaseInsensitive(t *testing.T) {
	e := New()
	ctx := context.Background()

	a, err := e.Embed(ctx, "Hello World")
	require.NoError(t, err)
	b, err := e.Embed(ctx, "hello world")
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestEmbedder_Embed_DifferentTextsDiffer(t *testing.T) {
	e := New()
	ctx := context.Background()

	a, err := e.Embed(ctx, "vacation photos from greece")
	require.NoError(t, err)
	b, err := e.Embed(ctx, "invoice for consulting services")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestTokenHash_Recurrence(t *testing.T) {
	// Pins the exact rolling hash: h = h*31 + code, signed 32-bit, abs.
	assert.Equal(t, int('a'), tokenHash("a"))
	assert.Equal(t, int('a')*31+int('b'), tokenHash("ab"))
	assert.Equal(t, (int('a')*31+int('b'))*31+int('c'), tokenHash("abc"))
}

func TestTokenHash_WrapsToAbsoluteValue(t *testing.T) {
	// Long tokens overflow int32; the result must stay non-negative.
	h := tokenHash("anextremelylongtokenthatcertainlyoverflowsthirtytwobits")
	assert.GreaterOrEqual(t, h, 0)
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"hello", "world"}, tokenize("Hello,   World!"))
	assert.Equal(t, []string{"a", "b", "c"}, tokenize("a-b-c"))
	assert.Empty(t, tokenize(""))
	assert.Empty(t, tokenize("?!"))
}

func TestEmbedder_ModelName(t *testing.T) {
	assert.Equal(t, "fallback-hash-128", New().ModelName())
}

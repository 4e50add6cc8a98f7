package encoder

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashEmbeddingDeterministic(t *testing.T) {
	a := HashEmbedding("indemnification clause", Dims)
	b := HashEmbedding("indemnification clause", Dims)
	assert.Equal(t, a, b)
	assert.Len(t, a, Dims)
}

func TestHashEmbeddingDiffersByInput(t *testing.T) {
	a := HashEmbedding("indemnification clause", Dims)
	b := HashEmbedding("limitation of liability clause", Dims)
	assert.NotEqual(t, a, b)
}

func TestNormalizeProducesUnitVector(t *testing.T) {
	v := []float32{3, 4}
	n := Normalize(v)
	var sumSq float64
	for _, x := range n {
		sumSq += float64(x) * float64(x)
	}
	assert.InDelta(t, 1.0, sumSq, 1e-6)
}

func TestNormalizeZeroVectorUnchanged(t *testing.T) {
	v := []float32{0, 0, 0}
	assert.Equal(t, v, Normalize(v))
}

func TestCosineIdenticalVectorsIsOne(t *testing.T) {
	v := Normalize(HashEmbedding("same text", 16))
	assert.InDelta(t, 1.0, Cosine(v, v), 1e-6)
}

func TestCosineOrthogonalIsNearZero(t *testing.T) {
	a := []float32{1, 0}
	b := []float32{0, 1}
	assert.InDelta(t, 0.0, Cosine(a, b), 1e-9)
}

func TestDeterministicEncodeBatchMatchesSequential(t *testing.T) {
	d := NewDeterministic()
	ctx := context.Background()

	batch, err := d.Encode(ctx, []string{"alpha", "beta"})
	require.NoError(t, err)
	require.Len(t, batch, 2)

	single0, err := d.Encode(ctx, []string{"alpha"})
	require.NoError(t, err)
	single1, err := d.Encode(ctx, []string{"beta"})
	require.NoError(t, err)

	assert.Equal(t, single0[0], batch[0])
	assert.Equal(t, single1[0], batch[1])
	assert.True(t, d.SupportsBatch())
}

type countingCounter struct{ n int }

func (c *countingCounter) Inc() { c.n++ }

func TestCachedEncoderCountsHitsAndMisses(t *testing.T) {
	hits := &countingCounter{}
	misses := &countingCounter{}
	c := NewCachedEncoder(NewDeterministic(), WithCacheMetrics(hits, misses))

	_, err := c.Encode(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, 0, hits.n)
	assert.Equal(t, 2, misses.n)

	_, err = c.Encode(context.Background(), []string{"a", "b", "c"})
	require.NoError(t, err)
	assert.Equal(t, 2, hits.n)
	assert.Equal(t, 3, misses.n)
}

// Package encoder defines the Encoder collaborator interface consumed by
// the chunker, classifier, rewrite engine, and case-law index, plus a
// deterministic fallback implementation and decorators (Redis cache,
// circuit breaker, pgvector persistence).
package encoder

import (
	"context"
	"errors"
	"hash/fnv"
	"math"
	"math/rand"
)

// Dims is the fixed embedding width used throughout the engine (prototype
// vectors, template vectors, case-law vectors, and the GAT's node features).
const Dims = 384

// ErrUnavailable is returned by CachedEncoder while its circuit breaker is
// open; once retries are exhausted it instead returns the inner encoder's
// error, wrapped. Callers treat any Encode error as an unavailable encoder
// and degrade gracefully rather than failing the analysis.
var ErrUnavailable = errors.New("encoder: unavailable")

// Encoder turns text into unit-normalized embedding vectors. Any
// implementation — a local model, an HTTP call to a hosted embedding
// service, or a test mock — satisfying this interface is acceptable;
// callers must not assume a particular provider.
type Encoder interface {
	Encode(ctx context.Context, texts []string) ([][]float32, error)
	// SupportsBatch reports whether Encode(texts) with len(texts) > 1 is
	// materially faster than len(texts) sequential single-text calls.
	// CachedEncoder uses this to decide whether to send its cache misses to
	// the inner encoder as one batched call or one call per text.
	SupportsBatch() bool
}

// EmbeddingCache persists embeddings for the engine's compile-time-fixed
// indexes (classifier prototypes, rewrite templates, case-law entries),
// keyed by a namespace ("prototype", "template", "caselaw") and an
// id within it, so a restarted process can skip re-embedding its static
// indexes against a remote Encoder. Satisfied by PGVectorCache; nil is a
// valid "no cache" value everywhere one is accepted.
type EmbeddingCache interface {
	Get(ctx context.Context, namespace, key string) ([]float32, bool, error)
	Put(ctx context.Context, namespace, key string, embedding []float32) error
}

// Normalize returns a unit-norm (L2) copy of v. A near-zero vector is
// returned unchanged to avoid division by zero.
func Normalize(v []float32) []float32 {
	var sumSq float64
	for _, x := range v {
		sumSq += float64(x) * float64(x)
	}
	norm := math.Sqrt(sumSq)
	if norm < 1e-12 {
		return v
	}
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(float64(x) / norm)
	}
	return out
}

// Cosine computes the cosine similarity of two equal-length vectors. When
// both inputs are already unit-normalized this is a plain dot product.
func Cosine(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// HashEmbedding deterministically derives a unit-norm pseudo-embedding from
// seed, used as the GAT's stand-in for a real text embedding
// and by the Deterministic fallback encoder below. Same seed always yields
// the same vector, which keeps Analyze reproducible (testable property 12).
func HashEmbedding(seed string, dims int) []float32 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(seed))
	r := rand.New(rand.NewSource(int64(h.Sum64())))
	v := make([]float32, dims)
	for i := range v {
		v[i] = float32(r.NormFloat64())
	}
	return Normalize(v)
}

// Deterministic is a pure, dependency-free Encoder built on HashEmbedding.
// It never fails and never calls out to any external system, which makes it
// the engine's zero-configuration default when no richer Encoder is
// injected into the Pipeline. Because it never returns an error, the
// encoder-unavailable degradation paths (paragraph chunking, "unknown"
// classification, type-matched case-law retrieval) are not taken with it.
type Deterministic struct{}

func NewDeterministic() *Deterministic { return &Deterministic{} }

func (d *Deterministic) Encode(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = HashEmbedding(t, Dims)
	}
	return out, nil
}

func (d *Deterministic) SupportsBatch() bool { return true }

package classify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semaj90/legalrisk/clause"
	"github.com/semaj90/legalrisk/encoder"
)

func newTestClassifier(t *testing.T) *Classifier {
	t.Helper()
	c, err := New(context.Background(), encoder.NewDeterministic(), nil)
	require.NoError(t, err)
	return c
}

func TestClassifyBatchEmptyClauseYieldsUnknown(t *testing.T) {
	c := newTestClassifier(t)
	out, err := c.ClassifyBatch(context.Background(), []clause.Clause{{ID: "1", Text: "   "}})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, clause.Unknown, out[0].Type)
	assert.Equal(t, 1.0, out[0].EntropyRatio)
}

func TestClassifyBatchTopKSumsToOne(t *testing.T) {
	c := newTestClassifier(t)
	out, err := c.ClassifyBatch(context.Background(), []clause.Clause{
		{ID: "1", Text: "Each party shall indemnify and hold harmless the other party from third-party claims."},
	})
	require.NoError(t, err)
	require.Len(t, out, 1)

	var sum float64
	for _, ts := range out[0].TopK {
		sum += ts.Probability
	}
	assert.InDelta(t, 1.0, sum, 0.01)
}

func TestClassifyBatchNeedsReviewOnLowMargin(t *testing.T) {
	c := newTestClassifier(t)
	out, err := c.ClassifyBatch(context.Background(), []clause.Clause{
		{ID: "1", Text: "ambiguous filler text that resembles nothing in particular whatsoever"},
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	if out[0].Margin < 0.08 || out[0].EntropyRatio > 0.75 {
		assert.True(t, out[0].NeedsReview)
	}
}

func TestClassifyBatchConfidenceWithinUnitRange(t *testing.T) {
	c := newTestClassifier(t)
	out, err := c.ClassifyBatch(context.Background(), []clause.Clause{
		{ID: "1", Text: "This agreement shall be governed by the laws of the State of New York."},
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.GreaterOrEqual(t, out[0].CalibratedConfidence, 0.0)
	assert.LessOrEqual(t, out[0].CalibratedConfidence, 1.0)
	assert.GreaterOrEqual(t, out[0].EntropyRatio, 0.0)
	assert.LessOrEqual(t, out[0].EntropyRatio, 1.0001)
}

func TestDetectLanguageFrench(t *testing.T) {
	assert.Equal(t, clause.LanguageFR, detectLanguage("Chaque partie doit indemniser l'autre partie pour les dommages."))
}

func TestDetectLanguageEnglish(t *testing.T) {
	assert.Equal(t, clause.LanguageEN, detectLanguage("Each party shall indemnify the other party for damages."))
}

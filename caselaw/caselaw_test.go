package caselaw

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semaj90/legalrisk/clause"
	"github.com/semaj90/legalrisk/encoder"
)

func TestNewFallsBackToDefaultCorpusWhenEmpty(t *testing.T) {
	idx, err := New(context.Background(), encoder.NewDeterministic(), nil, nil)
	require.NoError(t, err)
	require.NotEmpty(t, idx.cases)
}

func TestRetrieveSkipsLowRiskConfidentClauses(t *testing.T) {
	idx, err := New(context.Background(), encoder.NewDeterministic(), nil, nil)
	require.NoError(t, err)

	result := idx.Retrieve(context.Background(), []Clause{
		{Type: clause.PaymentTerms, Text: "payment terms", RiskWeight: 0.1, NeedsReview: false, CalibratedConfidence: 0.95},
	}, "", 3)
	assert.Empty(t, result.Citations)
}

func TestRetrieveQueriesHighRiskClauses(t *testing.T) {
	idx, err := New(context.Background(), encoder.NewDeterministic(), nil, nil)
	require.NoError(t, err)

	result := idx.Retrieve(context.Background(), []Clause{
		{Type: clause.Indemnification, Text: "each party indemnifies the other without limit", RiskWeight: 0.85, NeedsReview: true, CalibratedConfidence: 0.4},
	}, "", 3)
	assert.NotEmpty(t, result.Citations)
	assert.Contains(t, result.ClauseTypes, clause.Indemnification)
}

func TestRetrieveCapsAtTenCitations(t *testing.T) {
	idx, err := New(context.Background(), encoder.NewDeterministic(), nil, nil)
	require.NoError(t, err)

	var clauses []Clause
	for _, c := range defaultCorpus {
		clauses = append(clauses, Clause{Type: c.ClauseType, Text: c.Ruling, RiskWeight: 0.9, NeedsReview: true, CalibratedConfidence: 0.2})
	}
	result := idx.Retrieve(context.Background(), clauses, "", 10)
	assert.LessOrEqual(t, len(result.Citations), 10)
}

func TestQueryBoostsDeclaredJurisdiction(t *testing.T) {
	idx, err := New(context.Background(), encoder.NewDeterministic(), nil, nil)
	require.NoError(t, err)

	cl := Clause{Type: clause.Indemnification, Text: "indemnify without limit", RiskWeight: 0.9, NeedsReview: true}
	neutral := idx.query(context.Background(), cl, "", len(idx.cases))
	boosted := idx.query(context.Background(), cl, "New York", len(idx.cases))

	rank := func(cs []Citation, id string) int {
		for i, c := range cs {
			if c.Case.ID == id {
				return i
			}
		}
		return -1
	}
	relevance := func(cs []Citation, id string) float64 {
		for _, c := range cs {
			if c.Case.ID == id {
				return c.Relevance
			}
		}
		return 0
	}
	require.GreaterOrEqual(t, rank(neutral, "ind-002"), 0)
	assert.InDelta(t, relevance(neutral, "ind-002")+0.1, relevance(boosted, "ind-002"), 1e-9)
	assert.LessOrEqual(t, rank(boosted, "ind-002"), rank(neutral, "ind-002"))
}

func TestQueryBreaksNearTiesByRecency(t *testing.T) {
	corpus := []Case{
		{ID: "old", ClauseType: clause.Termination, Jurisdiction: "Delaware", Year: 2005,
			Ruling: "termination for convenience upheld", Principle: "notice required"},
		{ID: "new", ClauseType: clause.Termination, Jurisdiction: "Delaware", Year: 2022,
			Ruling: "termination for convenience upheld", Principle: "notice required"},
	}
	idx, err := New(context.Background(), encoder.NewDeterministic(), corpus, nil)
	require.NoError(t, err)

	// Identical search text means identical similarity; recency decides.
	out := idx.query(context.Background(), Clause{Type: clause.Termination, Text: "terminate upon notice", RiskWeight: 0.9}, "", 2)
	require.Len(t, out, 2)
	assert.Equal(t, "new", out[0].Case.ID)
}

func TestShouldQueryHeuristics(t *testing.T) {
	assert.True(t, shouldQuery(Clause{RiskWeight: 0.9}))
	assert.True(t, shouldQuery(Clause{NeedsReview: true}))
	assert.True(t, shouldQuery(Clause{CalibratedConfidence: 0.3}))
	assert.False(t, shouldQuery(Clause{RiskWeight: 0.1, NeedsReview: false, CalibratedConfidence: 0.9}))
}

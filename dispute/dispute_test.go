package dispute

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semaj90/legalrisk/clause"
	"github.com/semaj90/legalrisk/graph"
	"github.com/semaj90/legalrisk/power"
)

func TestPredictNoInputsYieldsNoHotspots(t *testing.T) {
	p := Predict(graph.Analysis{}, power.Analysis{}, nil)
	assert.Empty(t, p.Hotspots)
	assert.Equal(t, 0.0, p.OverallDisputeRisk)
}

func TestPredictDedupsByClauseType(t *testing.T) {
	ga := graph.Analysis{
		Conflicts: []graph.Edge{
			{Source: clause.Indemnification, Target: string(clause.LimitationOfLiability), Severity: 0.7, Description: "conflict A"},
			{Source: clause.Indemnification, Target: string(clause.Warranty), Severity: 0.6, Description: "conflict B"},
		},
	}
	p := Predict(ga, power.Analysis{}, nil)

	seen := map[clause.Type]bool{}
	for _, h := range p.Hotspots {
		require.False(t, seen[h.ClauseType], "hotspot clause types must be unique, found duplicate %s", h.ClauseType)
		seen[h.ClauseType] = true
	}
}

func TestPredictHotspotsSortedByProbabilityDescending(t *testing.T) {
	ga := graph.Analysis{
		Conflicts: []graph.Edge{
			{Source: clause.Indemnification, Target: string(clause.LimitationOfLiability), Severity: 0.9, Description: "high"},
		},
		MissingDependencies: []graph.Edge{
			{Source: clause.Termination, Target: "missing:payment_terms", Severity: 0.2, Description: "low"},
		},
	}
	p := Predict(ga, power.Analysis{}, nil)
	for i := 1; i < len(p.Hotspots); i++ {
		assert.GreaterOrEqual(t, p.Hotspots[i-1].Probability, p.Hotspots[i].Probability)
	}
}

func TestPredictPowerAsymmetryProducesHotspot(t *testing.T) {
	classified := []clause.Classified{
		{Clause: clause.Clause{ID: "c1"}, Type: clause.Termination},
	}
	pw := power.Analysis{PowerScore: 70, AsymmetricClauses: []string{"c1"}}
	p := Predict(graph.Analysis{}, pw, classified)
	require.NotEmpty(t, p.Hotspots)
	assert.Equal(t, clause.Termination, p.Hotspots[0].ClauseType)
	assert.Equal(t, CategoryPower, p.Hotspots[0].Category)
}

func TestPredictOverallRiskWithinRange(t *testing.T) {
	ga := graph.Analysis{
		Conflicts: []graph.Edge{
			{Source: clause.Indemnification, Target: string(clause.LimitationOfLiability), Severity: 0.8, Description: "x"},
		},
		StructuralRisk: 50,
	}
	p := Predict(ga, power.Analysis{}, nil)
	assert.GreaterOrEqual(t, p.OverallDisputeRisk, 0.0)
	assert.LessOrEqual(t, p.OverallDisputeRisk, 100.0)
}

package simulate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/semaj90/legalrisk/dispute"
	"github.com/semaj90/legalrisk/graph"
	"github.com/semaj90/legalrisk/power"
)

func TestSimulateIsDeterministicForFixedSeed(t *testing.T) {
	ga := graph.Analysis{StructuralRisk: 40}
	pw := power.Analysis{PowerScore: 30}
	dp := dispute.Prediction{OverallDisputeRisk: 50}

	a := Simulate(nil, ga, pw, dp, 40, 500, 42)
	b := Simulate(nil, ga, pw, dp, 40, 500, 42)
	assert.Equal(t, a, b)
}

func TestSimulateDifferentSeedsDiffer(t *testing.T) {
	ga := graph.Analysis{StructuralRisk: 40}
	pw := power.Analysis{PowerScore: 30}
	dp := dispute.Prediction{OverallDisputeRisk: 50}

	a := Simulate(nil, ga, pw, dp, 40, 500, 1)
	b := Simulate(nil, ga, pw, dp, 40, 500, 2)
	assert.NotEqual(t, a.Mean, b.Mean)
}

func TestSimulateHistogramSumsToN(t *testing.T) {
	ga := graph.Analysis{StructuralRisk: 60}
	pw := power.Analysis{PowerScore: 50}
	dp := dispute.Prediction{OverallDisputeRisk: 70}

	sim := Simulate(nil, ga, pw, dp, 60, 1000, 7)
	var total int
	for _, c := range sim.Histogram {
		total += c
	}
	assert.Equal(t, 1000, total)
}

func TestSimulateDefaultsTrialCountWhenNonPositive(t *testing.T) {
	sim := Simulate(nil, graph.Analysis{}, power.Analysis{}, dispute.Prediction{}, 0, 0, 1)
	assert.Equal(t, 1000, sim.N)
}

func TestSimulatePercentilesAreOrdered(t *testing.T) {
	ga := graph.Analysis{StructuralRisk: 55}
	pw := power.Analysis{PowerScore: 45}
	dp := dispute.Prediction{OverallDisputeRisk: 65}

	sim := Simulate(nil, ga, pw, dp, 55, 2000, 3)
	assert.LessOrEqual(t, sim.CI95Lower, sim.CI80Lower)
	assert.LessOrEqual(t, sim.CI80Lower, sim.Median)
	assert.LessOrEqual(t, sim.Median, sim.CI80Upper)
	assert.LessOrEqual(t, sim.CI80Upper, sim.CI95Upper)
	assert.LessOrEqual(t, sim.BestCase, sim.WorstCase)
}

func TestSimulateHigherStructuralRiskIncreasesMean(t *testing.T) {
	pw := power.Analysis{PowerScore: 30}
	dp := dispute.Prediction{OverallDisputeRisk: 30}

	low := Simulate(nil, graph.Analysis{StructuralRisk: 10}, pw, dp, 10, 2000, 99)
	high := Simulate(nil, graph.Analysis{StructuralRisk: 90}, pw, dp, 90, 2000, 99)
	assert.Less(t, low.Mean, high.Mean)
}

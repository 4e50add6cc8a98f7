package gat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semaj90/legalrisk/clause"
	"github.com/semaj90/legalrisk/graph"
)

func sampleGraph() graph.Graph {
	nodes := []clause.Classified{
		{Clause: clause.Clause{ID: "n1"}, Type: clause.Indemnification, RiskWeight: 0.8},
		{Clause: clause.Clause{ID: "n2"}, Type: clause.LimitationOfLiability, RiskWeight: 0.6},
		{Clause: clause.Clause{ID: "n3"}, Type: clause.Termination, RiskWeight: 0.4},
	}
	edges := []graph.Edge{
		{Source: clause.Indemnification, Target: string(clause.LimitationOfLiability), Kind: graph.Conflicts, Severity: 0.7},
	}
	return graph.Graph{Nodes: nodes, Edges: edges}
}

func TestForwardEmptyGraphYieldsZeroScores(t *testing.T) {
	n := New()
	scores := n.Forward(graph.Graph{})
	assert.Empty(t, scores.NodeResults)
	assert.Equal(t, 0.0, scores.GraphRisk)
}

func TestForwardIsDeterministic(t *testing.T) {
	n := New()
	g := sampleGraph()
	a := n.Forward(g)
	b := n.Forward(g)
	assert.Equal(t, a, b)
}

func TestForwardProducesOneResultPerNode(t *testing.T) {
	n := New()
	g := sampleGraph()
	scores := n.Forward(g)
	require.Len(t, scores.NodeResults, len(g.Nodes))
	for _, r := range scores.NodeResults {
		assert.GreaterOrEqual(t, r.Risk, 0.0)
		assert.LessOrEqual(t, r.Risk, 1.0)
	}
}

func TestForwardGraphRiskWithinRange(t *testing.T) {
	n := New()
	scores := n.Forward(sampleGraph())
	assert.GreaterOrEqual(t, scores.GraphRisk, 0.0)
	assert.LessOrEqual(t, scores.GraphRisk, 100.0)
}

func TestForwardTwoIndependentNetworksAgree(t *testing.T) {
	g := sampleGraph()
	a := New().Forward(g)
	b := New().Forward(g)
	assert.Equal(t, a, b, "fixed-seed Xavier init must produce identical networks")
}

package v12

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semaj90/legalrisk/clause"
	"github.com/semaj90/legalrisk/encoder"
	"github.com/semaj90/legalrisk/gat"
	"github.com/semaj90/legalrisk/graph"
	"github.com/semaj90/legalrisk/power"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := New(context.Background(), encoder.NewDeterministic(), nil, nil)
	require.NoError(t, err)
	return e
}

func sampleView() View {
	classified := []clause.Classified{
		{Clause: clause.Clause{ID: "c1", Text: "each party indemnifies the other without limit"}, Type: clause.Indemnification, CalibratedConfidence: 0.7},
	}
	g, ga := graph.Build(classified, "msa")
	pw := power.Analyze(classified, "")
	return View{
		Classified:    classified,
		Graph:         g,
		GraphAnalysis: ga,
		Power:         pw,
		ContractType:  "msa",
		FullText:      "each party indemnifies the other without limit",
		RiskScore:     60,
	}
}

func TestAnalyzeAllSubsystemsDisabledReturnsV11RiskOnly(t *testing.T) {
	e := newTestEngine(t)
	rep := e.Analyze(context.Background(), sampleView(), Options{})
	assert.Equal(t, 60.0, rep.FusedRisk)
	assert.Nil(t, rep.Symbolic)
	assert.Nil(t, rep.RAG)
	assert.Nil(t, rep.GNN)
	assert.Nil(t, rep.Debate)
}

func TestAnalyzeAllSubsystemsEnabledPopulatesEverything(t *testing.T) {
	e := newTestEngine(t)
	rep := e.Analyze(context.Background(), sampleView(), DefaultOptions())
	assert.NotNil(t, rep.Symbolic)
	assert.NotNil(t, rep.RAG)
	assert.NotNil(t, rep.GNN)
	assert.NotNil(t, rep.Debate)
	assert.GreaterOrEqual(t, rep.FusedRisk, 0.0)
	assert.LessOrEqual(t, rep.FusedRisk, 100.0)
	assert.GreaterOrEqual(t, rep.Confidence, 0.1)
	assert.LessOrEqual(t, rep.Confidence, 0.99)
}

func TestAnalyzeCancelledContextSkipsSubsystems(t *testing.T) {
	e := newTestEngine(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rep := e.Analyze(ctx, sampleView(), DefaultOptions())
	assert.Nil(t, rep.Symbolic)
	assert.Contains(t, rep.StageStatus, "cancelled")
}

func TestFuseAgreeingScoresYieldsHighConfidence(t *testing.T) {
	rep := Report{V11Risk: 50}
	fusedRisk, confidence := fuse(rep)
	assert.Equal(t, 50.0, fusedRisk)
	assert.Equal(t, 0.99, confidence)
}

func TestFuseDisagreeingScoresYieldsLowerConfidence(t *testing.T) {
	_, agreeingConf := fuse(Report{V11Risk: 50})
	disagreeing := Report{
		V11Risk: 50,
		GNN:     &gat.Scores{GraphRisk: 100},
	}
	_, disagreeingConf := fuse(disagreeing)
	assert.Less(t, disagreeingConf, agreeingConf)
}

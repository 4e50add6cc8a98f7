package debate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semaj90/legalrisk/clause"
	"github.com/semaj90/legalrisk/graph"
	"github.com/semaj90/legalrisk/power"
)

func TestDebateEmptyInputsYieldsAcceptableVerdict(t *testing.T) {
	tr := Debate(nil, graph.Analysis{}, power.Analysis{})
	assert.Empty(t, tr.ProsecutionArgs)
	assert.Equal(t, VerdictAcceptable, tr.Verdict)
}

func TestDebateProducesArgumentsForKnowledgeBaseTypes(t *testing.T) {
	classified := []clause.Classified{
		{Clause: clause.Clause{ID: "c1", Text: "each party indemnifies the other without limit"}, Type: clause.Indemnification, CalibratedConfidence: 0.8},
	}
	tr := Debate(classified, graph.Analysis{}, power.Analysis{})
	require.NotEmpty(t, tr.ProsecutionArgs)

	found := false
	for _, a := range tr.ProsecutionArgs {
		if a.ClauseType == clause.Indemnification {
			found = true
			assert.NotEmpty(t, a.Evidence)
		}
	}
	assert.True(t, found)
}

func TestDebateEveryProsecutionArgHasARuling(t *testing.T) {
	classified := []clause.Classified{
		{Clause: clause.Clause{ID: "c1", Text: "limitation of liability clause text"}, Type: clause.LimitationOfLiability, CalibratedConfidence: 0.7},
		{Clause: clause.Clause{ID: "c2", Text: "non-compete clause text"}, Type: clause.NonCompete, CalibratedConfidence: 0.6},
	}
	tr := Debate(classified, graph.Analysis{}, power.Analysis{})
	assert.Equal(t, len(tr.ProsecutionArgs), len(tr.Rulings))
}

func TestKnowledgeBaseCoversEveryRiskBearingType(t *testing.T) {
	for _, ct := range []clause.Type{
		clause.Indemnification, clause.LimitationOfLiability, clause.NonCompete, clause.Termination,
		clause.DataProtection, clause.DisputeResolution, clause.IntellectualProperty, clause.Warranty,
		clause.Assignment, clause.ForceMajeure, clause.PaymentTerms, clause.AuditRights,
		clause.Confidentiality, clause.GoverningLaw,
	} {
		kb, ok := knowledgeBase[ct]
		require.True(t, ok, "knowledgeBase missing entry for %s", ct)
		assert.NotEmpty(t, kb.Risks)
		assert.NotEmpty(t, kb.Precedents)
		assert.NotEmpty(t, kb.Defenses)
	}
}

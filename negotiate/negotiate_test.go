package negotiate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semaj90/legalrisk/clause"
)

func TestAnalyzeClauseUncappedLiabilityMustHave(t *testing.T) {
	n := New()
	out := n.AnalyzeClause("The parties' liability under this agreement shall be unlimited.", clause.LimitationOfLiability, "US", "technology")
	require.NotEmpty(t, out)
	assert.Equal(t, MitigationCapLiability, out[0].Mitigation)
	assert.Equal(t, PriorityMustHave, out[0].Priority)
}

func TestAnalyzeClauseMutualIndemnificationNoSuggestion(t *testing.T) {
	n := New()
	out := n.AnalyzeClause("Each party shall indemnify the other from third-party claims within 30 days notice.", clause.Indemnification, "US", "technology")
	for _, s := range out {
		assert.NotEqual(t, MitigationMutualObligation, s.Mitigation)
	}
}

func TestAnalyzeClauseUnknownBenchmarkReturnsNil(t *testing.T) {
	n := New()
	out := n.AnalyzeClause("some confidentiality text", clause.Confidentiality, "US", "technology")
	assert.Nil(t, out)
}

func TestAnalyzeClauseGenericSoleDiscretion(t *testing.T) {
	n := New()
	out := n.AnalyzeClause("Provider may terminate in its sole discretion.", clause.Termination, "US", "technology")
	var found bool
	for _, s := range out {
		if s.Mitigation == MitigationNarrowScope {
			found = true
		}
	}
	assert.True(t, found)
}

func TestGeneratePlaybookCategorizesByPriority(t *testing.T) {
	n := New()
	classified := []clause.Classified{
		{Clause: clause.Clause{ID: "1", Text: "Liability shall be unlimited."}, Type: clause.LimitationOfLiability},
		{Clause: clause.Clause{ID: "2", Text: "Provider may terminate immediately."}, Type: clause.Termination},
	}
	pb := n.GeneratePlaybook("c1", classified, "US", "technology", "buyer", 0)
	assert.NotEmpty(t, pb.MustHave)
	assert.Greater(t, pb.TotalRiskReduction, 0)
	assert.Equal(t, StanceBalanced, pb.RecommendedStance)
}

func TestGeneratePlaybookStanceFollowsCounterpartyPower(t *testing.T) {
	n := New()
	pb := n.GeneratePlaybook("c1", nil, "US", "technology", "buyer", 0.8)
	assert.Equal(t, StanceProtective, pb.RecommendedStance)

	pb = n.GeneratePlaybook("c1", nil, "US", "technology", "buyer", -0.8)
	assert.Equal(t, StanceAggressive, pb.RecommendedStance)
}

func TestGeneratePlaybookConcessionOrderCappedAtFive(t *testing.T) {
	n := New()
	classified := []clause.Classified{
		{Clause: clause.Clause{ID: "1", Text: "Liability shall be unlimited. Perpetual obligations survive forever. Sole discretion applies."}, Type: clause.LimitationOfLiability},
	}
	pb := n.GeneratePlaybook("c1", classified, "US", "technology", "buyer", 0)
	assert.LessOrEqual(t, len(pb.ConcessionOrder), 5)
}

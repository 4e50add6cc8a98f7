package frontier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semaj90/legalrisk/clause"
	"github.com/semaj90/legalrisk/dispute"
	"github.com/semaj90/legalrisk/graph"
	"github.com/semaj90/legalrisk/power"
)

func classifiedFixture() []clause.Classified {
	return []clause.Classified{
		{Clause: clause.Clause{ID: "c1", Text: "Provider shall indemnify Customer from any and all claims, as amended."}, Type: clause.Indemnification, RiskWeight: 0.9},
		{Clause: clause.Clause{ID: "c2", Text: "Either party may terminate upon reasonable notice and material breach."}, Type: clause.Termination, RiskWeight: 0.7},
		{Clause: clause.Clause{ID: "c3", Text: "This Agreement is governed by the laws of Delaware."}, Type: clause.GoverningLaw, RiskWeight: 0.2},
	}
}

func TestAnalyzeSilenceScoresByPrevalence(t *testing.T) {
	ga := graph.Analysis{MissingExpected: []graph.MissingExpected{
		{Type: clause.LimitationOfLiability, ExpectedPrevalence: 0.9},
		{Type: clause.Insurance, ExpectedPrevalence: 0.3},
	}}
	s := AnalyzeSilence(ga)
	assert.InDelta(t, 60, s.SilenceScore, 0.01)
	assert.Equal(t, []string{"limitation_of_liability"}, s.LikelyStrategicOmissions)
}

func TestAnalyzeSilenceEmpty(t *testing.T) {
	s := AnalyzeSilence(graph.Analysis{})
	assert.Zero(t, s.SilenceScore)
	assert.Empty(t, s.LikelyStrategicOmissions)
}

func TestAnalyzeArchaeologyFindsPlaceholders(t *testing.T) {
	a := AnalyzeArchaeology("Payment due to [INSERT COMPANY NAME] within ____ days.", classifiedFixture())
	require.NotEmpty(t, a.PlaceholderScars)
	// c1 carries an "as amended" negotiation marker.
	assert.InDelta(t, 1.0/3, a.NegotiationIntensityScore, 1e-9)
}

func TestAnalyzeTemporalDecayOldContractNeedsReview(t *testing.T) {
	classified := []clause.Classified{
		{Clause: clause.Clause{ID: "c1"}, Type: clause.DataProtection, RiskWeight: 0.8},
	}
	td := AnalyzeTemporalDecay(classified, 60)
	assert.Less(t, td.MeaningStabilityIndex, 0.75)
	assert.True(t, td.NeedsReview)
	assert.NotEqual(t, UrgencyLow, td.ReviewUrgency)
}

func TestAnalyzeTemporalDecayFreshContractStable(t *testing.T) {
	td := AnalyzeTemporalDecay(classifiedFixture(), 1)
	assert.Greater(t, td.MeaningStabilityIndex, 0.9)
	assert.False(t, td.NeedsReview)
}

func TestAnalyzeStrainFlagsLandmines(t *testing.T) {
	s := AnalyzeStrain(classifiedFixture())
	assert.Greater(t, s.TotalStrainScore, 0.0)
	require.NotEmpty(t, s.LitigationLandmines)
	assert.Contains(t, s.LitigationLandmines[0], "indemnification")
}

func TestAnalyzeStrainStableDoctrineOnly(t *testing.T) {
	classified := []clause.Classified{
		{Clause: clause.Clause{ID: "c1"}, Type: clause.PaymentTerms, RiskWeight: 0.4},
	}
	s := AnalyzeStrain(classified)
	assert.Zero(t, s.TotalStrainScore)
	assert.Empty(t, s.LitigationLandmines)
}

func TestAnalyzeSocialStructureSignAndRelationship(t *testing.T) {
	pw := power.Analysis{
		Parties:           []power.Party{{Name: "Provider"}, {Name: "Customer"}},
		PowerScore:        70,
		DominantParty:     "Customer",
		BurdenedParty:     "Provider",
		AsymmetricClauses: []string{"c1", "c2", "c3"},
	}
	soc := AnalyzeSocialStructure(pw)
	assert.InDelta(t, -0.7, soc.PowerAsymmetryScore, 1e-9)
	assert.Equal(t, "dependent", soc.RelationshipType)
	assert.NotEmpty(t, soc.StructuralConcerns)
}

func TestAnalyzeAmbiguityIntentionalInHighRiskClauses(t *testing.T) {
	a := AnalyzeAmbiguity(classifiedFixture())
	assert.Greater(t, a.VagueTermCount, 0)
	assert.Contains(t, a.AmbiguousClauses, "c2")
	assert.Contains(t, a.LikelyIntentional, "reasonable")
}

func TestAnalyzeDisputeCartographyPrefersHotspotProbability(t *testing.T) {
	dp := dispute.Prediction{Hotspots: []dispute.Hotspot{
		{ClauseType: clause.Indemnification, Probability: 0.9, Category: dispute.CategoryConflict, Reason: "conflicts with liability cap"},
	}}
	dc := AnalyzeDisputeCartography(classifiedFixture(), dp)
	require.NotEmpty(t, dc.ClausePredictions)
	assert.Equal(t, clause.Indemnification, dc.ClausePredictions[0].ClauseType)
	assert.InDelta(t, 0.9, dc.ClausePredictions[0].DisputeProbability, 1e-9)
	assert.Contains(t, dc.DisputeAttractors, "indemnification")
	assert.Greater(t, dc.TotalDisputeProbability, 0.9)
	assert.LessOrEqual(t, dc.TotalDisputeProbability, 1.0)
}

func TestAnalyzeRollsUpComponentsAndFindings(t *testing.T) {
	in := Input{
		Classified: classifiedFixture(),
		GraphAnalysis: graph.Analysis{MissingExpected: []graph.MissingExpected{
			{Type: clause.LimitationOfLiability, ExpectedPrevalence: 0.9},
		}},
		Power: power.Analysis{
			Parties:       []power.Party{{Name: "Provider"}, {Name: "Customer"}},
			PowerScore:    70,
			DominantParty: "Customer",
			BurdenedParty: "Provider",
		},
		Dispute:           dispute.Prediction{},
		FullText:          "Provider shall pay [INSERT AMOUNT] to Customer.",
		ContractAgeMonths: 24,
	}
	rep := Analyze(in, DefaultOptions())
	assert.NotNil(t, rep.Silence)
	assert.NotNil(t, rep.Archaeology)
	assert.NotNil(t, rep.Temporal)
	assert.NotNil(t, rep.Strain)
	assert.NotNil(t, rep.Social)
	assert.NotNil(t, rep.Ambiguity)
	assert.NotNil(t, rep.Dispute)
	assert.Greater(t, rep.OverallFrontierRisk, 0.0)
	assert.LessOrEqual(t, rep.OverallFrontierRisk, 100.0)
	assert.NotEmpty(t, rep.CriticalFindings)
}

func TestAnalyzeDisabledCapabilitiesOmitted(t *testing.T) {
	rep := Analyze(Input{Classified: classifiedFixture()}, Options{EnableStrain: true})
	assert.Nil(t, rep.Silence)
	assert.Nil(t, rep.Ambiguity)
	assert.NotNil(t, rep.Strain)
}

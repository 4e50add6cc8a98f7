package power

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/semaj90/legalrisk/clause"
)

func TestAnalyzeEmptyInputYieldsZeroScore(t *testing.T) {
	a := Analyze(nil, "")
	assert.Equal(t, 0, a.TotalObligations)
	assert.Equal(t, 0, a.TotalProtections)
	assert.Equal(t, 0.0, a.PowerScore)
	assert.LessOrEqual(t, a.PowerScore, 100.0)
}

func TestAnalyzeDetectsOneSidedClause(t *testing.T) {
	text := `This Agreement is between Acme Corp ("Provider") and Beta LLC ("Customer").
The Provider may terminate this Agreement at its sole discretion and without liability to the Customer.`
	classified := []clause.Classified{
		{Clause: clause.Clause{ID: "c1", Text: "The Provider may terminate this Agreement at its sole discretion and without liability to the Customer."}, Type: clause.Termination},
	}
	a := Analyze(classified, text)
	assert.NotEmpty(t, a.AsymmetricClauses)
	assert.Contains(t, a.AsymmetricClauses, "c1")
}

func TestAnalyzePowerScoreWithinRange(t *testing.T) {
	text := `Between Acme Corp ("Provider") and Beta LLC ("Customer").
The Customer shall pay all fees when due. The Provider shall not be liable for indirect damages.`
	classified := []clause.Classified{
		{Clause: clause.Clause{ID: "c1", Text: "The Customer shall pay all fees when due."}, Type: clause.PaymentTerms},
		{Clause: clause.Clause{ID: "c2", Text: "The Provider shall not be liable for indirect damages."}, Type: clause.LimitationOfLiability},
	}
	a := Analyze(classified, text)
	assert.GreaterOrEqual(t, a.PowerScore, 0.0)
	assert.LessOrEqual(t, a.PowerScore, 100.0)
	assert.GreaterOrEqual(t, a.TotalObligations, 1)
	assert.GreaterOrEqual(t, a.TotalProtections, 1)
}

func TestAnalyzeAlwaysProducesAtLeastOneParty(t *testing.T) {
	a := Analyze(nil, "Some contract text with no explicit party markers whatsoever.")
	assert.NotEmpty(t, a.Parties)
}

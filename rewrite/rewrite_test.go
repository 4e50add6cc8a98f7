package rewrite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semaj90/legalrisk/clause"
	"github.com/semaj90/legalrisk/encoder"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := New(context.Background(), encoder.NewDeterministic(), nil, nil)
	require.NoError(t, err)
	return e
}

func TestSuggestUnknownClauseTypeReturnsNil(t *testing.T) {
	e := newTestEngine(t)
	s, err := e.Suggest(context.Background(), "some text", clause.Unknown, 80, "")
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestSuggestReducesRiskForHighRiskIndemnification(t *testing.T) {
	e := newTestEngine(t)
	s, err := e.Suggest(context.Background(), "One party indemnifies the other without limit.", clause.Indemnification, 90, "")
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Greater(t, s.RiskReduction, 0.0)
	assert.NotEmpty(t, s.Suggested)
	assert.NotEmpty(t, s.DiffSummary)
}

func TestSuggestTypeWithNoTemplatesReturnsNil(t *testing.T) {
	// The default bank covers every taxonomy type, so use a bank holding
	// only an indemnification template.
	bank := []Template{{ID: "indemnification-only", Type: clause.Indemnification, Level: "balanced", RiskScore: 30, Text: "Each party shall indemnify the other."}}
	e, err := New(context.Background(), encoder.NewDeterministic(), bank, nil)
	require.NoError(t, err)
	s, err := e.Suggest(context.Background(), "some insurance clause", clause.Insurance, 50, "")
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestSuggestPreferredLevelFiltersWhenAvailable(t *testing.T) {
	e := newTestEngine(t)
	s, err := e.Suggest(context.Background(), "indemnification text", clause.Indemnification, 90, "conservative")
	require.NoError(t, err)
	if s != nil {
		assert.Equal(t, Level("conservative"), s.TemplateLevel)
	}
}

package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semaj90/legalrisk/clause"
)

func classifiedOf(t clause.Type) clause.Classified {
	return clause.Classified{Clause: clause.Clause{ID: string(t)}, Type: t}
}

func TestBuildDetectsConflict(t *testing.T) {
	classified := []clause.Classified{
		classifiedOf(clause.Indemnification),
		classifiedOf(clause.LimitationOfLiability),
	}
	_, analysis := Build(classified, "msa")
	require.NotEmpty(t, analysis.Conflicts)
	found := false
	for _, e := range analysis.Conflicts {
		if e.Source == clause.Indemnification && e.Target == string(clause.LimitationOfLiability) {
			found = true
		}
	}
	assert.True(t, found, "expected indemnification/limitation-of-liability conflict edge")
}

func TestBuildMissingDependencyUsesSentinelTarget(t *testing.T) {
	classified := []clause.Classified{classifiedOf(clause.Indemnification)}
	_, analysis := Build(classified, "msa")
	require.NotEmpty(t, analysis.MissingDependencies)
	for _, e := range analysis.MissingDependencies {
		assert.True(t, len(e.Target) > len(MissingTargetPrefix) && e.Target[:len(MissingTargetPrefix)] == MissingTargetPrefix,
			"missing dependency target %q must carry the sentinel prefix", e.Target)
	}
}

func TestBuildUnknownContractTypeIsFullyComplete(t *testing.T) {
	classified := []clause.Classified{classifiedOf(clause.Termination)}
	_, analysis := Build(classified, "not_a_real_contract_type")
	assert.Equal(t, 1.0, analysis.CompletenessScore)
	assert.Empty(t, analysis.MissingExpected)
}

func TestBuildStructuralRiskWithinRange(t *testing.T) {
	classified := []clause.Classified{
		classifiedOf(clause.Indemnification),
		classifiedOf(clause.LimitationOfLiability),
		classifiedOf(clause.Warranty),
	}
	_, analysis := Build(classified, "msa")
	assert.GreaterOrEqual(t, analysis.StructuralRisk, 0.0)
	assert.LessOrEqual(t, analysis.StructuralRisk, 100.0)
}

func TestBuildNoClausesHasNoConflicts(t *testing.T) {
	_, analysis := Build(nil, "msa")
	assert.Empty(t, analysis.Conflicts)
}

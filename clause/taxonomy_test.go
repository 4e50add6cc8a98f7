package clause

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaxonomyIndexRoundTrip(t *testing.T) {
	for i, e := range Taxonomy {
		assert.Equal(t, i, Index(e.Type), "Index should invert taxonomy order for %s", e.Type)
	}
}

func TestEntryFoundForEveryTaxonomyMember(t *testing.T) {
	for _, e := range Taxonomy {
		got, ok := Entry(e.Type)
		require.True(t, ok, "Entry should find %s", e.Type)
		assert.Equal(t, e.Type, got.Type)
	}
}

func TestEntryUnknownNotFound(t *testing.T) {
	_, ok := Entry(Unknown)
	assert.False(t, ok)
}

func TestKMatchesTaxonomyLength(t *testing.T) {
	assert.Equal(t, len(Taxonomy), K())
}

func TestEveryTaxonomyEntryHasBilingualDescriptions(t *testing.T) {
	for _, e := range Taxonomy {
		assert.NotEmpty(t, e.DescriptionEN, "%s missing EN description", e.Type)
		assert.NotEmpty(t, e.DescriptionFR, "%s missing FR description", e.Type)
		assert.GreaterOrEqual(t, e.RiskWeight, 0.0)
		assert.LessOrEqual(t, e.RiskWeight, 1.0)
	}
}

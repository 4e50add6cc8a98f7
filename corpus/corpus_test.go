package corpus

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semaj90/legalrisk/clause"
)

// memStore is a trivial in-process store.ObjectStore for tests, avoiding
// any filesystem dependency.
type memStore struct{ data []byte }

func (m *memStore) Load(ctx context.Context) ([]byte, error) { return m.data, nil }
func (m *memStore) Save(ctx context.Context, data []byte) error {
	m.data = data
	return nil
}

func newTestProfile(t *testing.T) *Profile {
	t.Helper()
	p, err := New(context.Background(), &memStore{})
	require.NoError(t, err)
	return p
}

func TestCompareInsufficientDataBeforeThreeIngests(t *testing.T) {
	p := newTestProfile(t)
	cmp := p.Compare(CompareInput{RiskScore: 50})
	assert.True(t, cmp.InsufficientData)
}

func TestIngestThenCompareSucceedsAfterThreeIngests(t *testing.T) {
	p := newTestProfile(t)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		err := p.Ingest(ctx, IngestInput{
			ContractType: "msa",
			RiskScore:    50,
			Classified: []clause.Classified{
				{Type: clause.Indemnification, CalibratedConfidence: 0.8},
			},
		})
		require.NoError(t, err)
	}
	cmp := p.Compare(CompareInput{RiskScore: 50, Classified: []clause.Classified{
		{Type: clause.Indemnification, CalibratedConfidence: 0.8},
	}})
	assert.False(t, cmp.InsufficientData)
}

func TestIngestPersistsToBackingStore(t *testing.T) {
	backing := &memStore{}
	p, err := New(context.Background(), backing)
	require.NoError(t, err)

	err = p.Ingest(context.Background(), IngestInput{ContractType: "nda", RiskScore: 30})
	require.NoError(t, err)
	assert.NotEmpty(t, backing.data)
}

func TestNewReloadsFromExistingBackingData(t *testing.T) {
	backing := &memStore{}
	p1, err := New(context.Background(), backing)
	require.NoError(t, err)
	require.NoError(t, p1.Ingest(context.Background(), IngestInput{ContractType: "msa", RiskScore: 70}))

	p2, err := New(context.Background(), backing)
	require.NoError(t, err)
	cmp := p2.Compare(CompareInput{RiskScore: 70})
	assert.True(t, cmp.InsufficientData) // only one ingest so far, still below threshold
}

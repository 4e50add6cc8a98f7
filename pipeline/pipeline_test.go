package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semaj90/legalrisk/corpus"
	"github.com/semaj90/legalrisk/encoder"
	"github.com/semaj90/legalrisk/frontier"
	"github.com/semaj90/legalrisk/v12"
)

type memStore struct{ data []byte }

func (m *memStore) Load(ctx context.Context) ([]byte, error) { return m.data, nil }
func (m *memStore) Save(ctx context.Context, data []byte) error {
	m.data = data
	return nil
}

type fixedClock struct{ t time.Time }

func (f fixedClock) Now() time.Time { return f.t }

func newTestPipeline(t *testing.T) *Pipeline {
	t.Helper()
	enc := encoder.NewDeterministic()
	profile, err := corpus.New(context.Background(), &memStore{})
	require.NoError(t, err)

	p, err := New(context.Background(), enc, profile, nil,
		WithClock(fixedClock{t: time.Unix(0, 0)}),
	)
	require.NoError(t, err)
	return p
}

const sampleContract = `1. INDEMNIFICATION
Each party shall indemnify and hold harmless the other party from third-party claims arising from breach of this agreement.

2. LIMITATION OF LIABILITY
In no event shall either party's aggregate liability exceed the fees paid in the preceding twelve months.

3. TERMINATION
Either party may terminate this agreement upon thirty days written notice to the other party.

4. GOVERNING LAW
This agreement shall be governed by the laws of the State of Delaware.
`

func TestAnalyzeEmptyTextReturnsInvalidInputError(t *testing.T) {
	p := newTestPipeline(t)
	_, err := p.Analyze(context.Background(), "   ", DefaultAnalyzeOptions("msa"))
	require.Error(t, err)
	var invalidErr *InvalidInputError
	assert.ErrorAs(t, err, &invalidErr)
}

func TestAnalyzeProducesFullReport(t *testing.T) {
	p := newTestPipeline(t)
	report, err := p.Analyze(context.Background(), sampleContract, DefaultAnalyzeOptions("msa"))
	require.NoError(t, err)
	require.NotEmpty(t, report.Classified)
	assert.NotNil(t, report.Simulation)
	assert.GreaterOrEqual(t, report.OverallRiskScore, 0.0)
	assert.LessOrEqual(t, report.OverallRiskScore, 100.0)
	assert.NotEmpty(t, report.RiskLevel)
	assert.Equal(t, time.Unix(0, 0), report.AnalyzedAt)
}

func TestAnalyzeV12EnablesOverlay(t *testing.T) {
	enc := encoder.NewDeterministic()
	profile, err := corpus.New(context.Background(), &memStore{})
	require.NoError(t, err)
	v12Engine, err := v12.New(context.Background(), enc, nil, nil)
	require.NoError(t, err)

	p, err := New(context.Background(), enc, profile, v12Engine)
	require.NoError(t, err)

	report, err := p.AnalyzeV12(context.Background(), sampleContract, "msa")
	require.NoError(t, err)
	require.NotNil(t, report.V12)
	assert.Equal(t, report.V12.FusedRisk, report.OverallRiskScore)
}

func TestAnalyzeFrontierOverlayAndPlaybook(t *testing.T) {
	p := newTestPipeline(t)
	opts := DefaultAnalyzeOptions("msa")
	frontierOpts := frontier.DefaultOptions()
	opts.Frontier = &frontierOpts
	opts.ContractAgeMonths = 24
	opts.Playbook = true

	report, err := p.Analyze(context.Background(), sampleContract, opts)
	require.NoError(t, err)
	require.NotNil(t, report.Frontier)
	assert.NotNil(t, report.Frontier.Silence)
	assert.NotNil(t, report.Frontier.Ambiguity)
	assert.GreaterOrEqual(t, report.Frontier.OverallFrontierRisk, 0.0)
	assert.LessOrEqual(t, report.Frontier.OverallFrontierRisk, 100.0)
	require.NotNil(t, report.Playbook)
	assert.NotEmpty(t, report.Playbook.ContractID)
}

func TestAnalyzeFrontierDisabledByDefault(t *testing.T) {
	p := newTestPipeline(t)
	report, err := p.Analyze(context.Background(), sampleContract, DefaultAnalyzeOptions("msa"))
	require.NoError(t, err)
	assert.Nil(t, report.Frontier)
	assert.Nil(t, report.Playbook)
}

func TestIngestCorpusFoldsReportIntoProfile(t *testing.T) {
	p := newTestPipeline(t)
	report, err := p.Analyze(context.Background(), sampleContract, DefaultAnalyzeOptions("msa"))
	require.NoError(t, err)

	require.NoError(t, p.IngestCorpus(context.Background(), report))

	cmp := p.corpus.Compare(corpus.CompareInput{RiskScore: report.OverallRiskScore, Classified: report.Classified})
	assert.True(t, cmp.InsufficientData) // only one ingest so far
}

func TestRiskLevelOfIsMonotonic(t *testing.T) {
	levels := []string{riskLevelOf(0), riskLevelOf(29), riskLevelOf(30), riskLevelOf(54), riskLevelOf(55), riskLevelOf(79), riskLevelOf(80), riskLevelOf(100)}
	order := map[string]int{"LOW": 0, "MEDIUM": 1, "HIGH": 2, "CRITICAL": 3}
	for i := 1; i < len(levels); i++ {
		assert.GreaterOrEqual(t, order[levels[i]], order[levels[i-1]])
	}
	assert.Equal(t, "LOW", riskLevelOf(0))
	assert.Equal(t, "CRITICAL", riskLevelOf(100))
}

func TestOverallRiskScoreClampedToRange(t *testing.T) {
	assert.Equal(t, 100.0, overallRiskScore(1000, 1000, 1000))
	assert.Equal(t, 0.0, overallRiskScore(0, 0, 0))
}

func TestIsBlank(t *testing.T) {
	assert.True(t, isBlank("   \t\n"))
	assert.False(t, isBlank("  x "))
}

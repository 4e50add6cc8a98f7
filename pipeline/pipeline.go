// Package pipeline wires the chunker, classifier, graph builder, power
// analyzer, dispute predictor, risk simulator, rewrite engine, corpus
// profile, and V12 overlay into the single Analyze entry point the CLI
// (and any future transport) calls: one constructor gathering
// dependencies, one method running the stages in order, span-per-stage
// tracing and stage-latency metrics around each.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/semaj90/legalrisk/chunk"
	"github.com/semaj90/legalrisk/classify"
	"github.com/semaj90/legalrisk/clause"
	"github.com/semaj90/legalrisk/corpus"
	"github.com/semaj90/legalrisk/dispute"
	"github.com/semaj90/legalrisk/encoder"
	"github.com/semaj90/legalrisk/frontier"
	"github.com/semaj90/legalrisk/graph"
	"github.com/semaj90/legalrisk/negotiate"
	"github.com/semaj90/legalrisk/power"
	"github.com/semaj90/legalrisk/rewrite"
	"github.com/semaj90/legalrisk/simulate"
	"github.com/semaj90/legalrisk/telemetry"
	"github.com/semaj90/legalrisk/v12"
)

// Clock abstracts time.Now so report timestamps are reproducible in
// tests; simulation seeding comes from AnalyzeOptions.SimulationSeed,
// not from the clock.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// AnalyzeOptions toggles the optional stages of one Analyze call.
type AnalyzeOptions struct {
	ContractType     string
	SemanticChunking bool // false skips embedding-based chunking, using paragraph fallback
	RewriteSuggest   bool
	SimulationTrials int // 0 uses DefaultSimulationTrials
	SimulationSeed   int64
	V12              *v12.Options      // nil disables the V12 overlay entirely
	Frontier         *frontier.Options // nil disables the frontier overlay entirely
	Playbook         bool              // generate a negotiation playbook

	// Jurisdiction scopes the negotiation playbook's market benchmarks
	// and boosts same-jurisdiction case-law citations in the V12 RAG;
	// Industry scopes the playbook benchmarks; ContractAgeMonths feeds
	// the frontier overlay's temporal decay capability (0 skips it).
	Jurisdiction      string
	Industry          string
	ContractAgeMonths float64

	CompareToCorpus bool
}

// DefaultSimulationTrials is the trial count used when AnalyzeOptions
// leaves SimulationTrials at zero; enough for stable percentiles at
// interactive latency.
const DefaultSimulationTrials = 1000

// DefaultAnalyzeOptions returns sane defaults: semantic chunking and
// rewrite suggestions on, V12 overlay off (callers opt in explicitly
// since it roughly doubles analysis latency).
func DefaultAnalyzeOptions(contractType string) AnalyzeOptions {
	return AnalyzeOptions{
		ContractType:     contractType,
		SemanticChunking: true,
		RewriteSuggest:   true,
		SimulationTrials: DefaultSimulationTrials,
	}
}

// Report is the complete output of one Analyze call: the V11 views plus
// the optional V12, frontier, and negotiation overlays.
type Report struct {
	ContractType     string                   `json:"contract_type"`
	Classified       []clause.Classified      `json:"classified_clauses"`
	Graph            graph.Graph              `json:"graph"`
	GraphAnalysis    graph.Analysis           `json:"graph_analysis"`
	Power            power.Analysis           `json:"power_analysis"`
	Dispute          dispute.Prediction       `json:"dispute_prediction"`
	Simulation       *simulate.RiskSimulation `json:"simulation,omitempty"`
	Suggestions      []*rewrite.Suggestion    `json:"suggestions,omitempty"`
	CorpusComparison *corpus.Comparison       `json:"corpus_comparison,omitempty"`
	V12              *v12.Report              `json:"v12,omitempty"`
	Frontier         *frontier.Report         `json:"frontier,omitempty"`
	Playbook         *negotiate.Playbook      `json:"playbook,omitempty"`
	OverallRiskScore float64                  `json:"overall_risk_score"`
	RiskLevel        string                   `json:"risk_level"`
	StageErrors      []StageError             `json:"stage_errors,omitempty"`
	AnalyzedAt       time.Time                `json:"analyzed_at"`
}

// StageError records a degraded (non-fatal) stage failure. A single
// subsystem failing never aborts the whole analysis; it degrades that
// stage's portion of the report instead.
type StageError struct {
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

// Pipeline holds the once-constructed, concurrency-safe analysis
// subsystems. Build one per process (or per test) via New and reuse it
// across Analyze calls.
type Pipeline struct {
	enc        encoder.Encoder
	chunker    *chunk.Chunker
	classifier *classify.Classifier
	rewriter   *rewrite.Engine
	corpus     *corpus.Profile
	v12Engine  *v12.Engine
	negotiator *negotiate.Negotiator

	logger  *zap.Logger
	metrics *telemetry.Metrics
	clock   Clock
}

// PipelineOption configures New.
type PipelineOption func(*options)

type options struct {
	logger         *zap.Logger
	metrics        *telemetry.Metrics
	clock          Clock
	rewriteBank    []rewrite.Template
	embeddingCache encoder.EmbeddingCache
}

// WithLogger injects a zap logger; defaults to telemetry.NewLogger().
func WithLogger(l *zap.Logger) PipelineOption {
	return func(o *options) { o.logger = l }
}

// WithMetrics injects a prometheus-backed Metrics collector. Without it
// the Pipeline has no collector and records no metrics.
func WithMetrics(m *telemetry.Metrics) PipelineOption {
	return func(o *options) { o.metrics = m }
}

// WithClock injects a Clock; defaults to the real wall clock.
func WithClock(c Clock) PipelineOption {
	return func(o *options) { o.clock = c }
}

// WithRewriteBank overrides the rewrite engine's default template bank.
func WithRewriteBank(bank []rewrite.Template) PipelineOption {
	return func(o *options) { o.rewriteBank = bank }
}

// WithEmbeddingCache backs the classifier's prototype embeddings and the
// rewrite engine's template embeddings with a persistent cache (e.g.
// encoder.PGVectorCache), so a process restart doesn't re-embed either
// fixed index. Defaults to nil (always re-embed from enc).
func WithEmbeddingCache(cache encoder.EmbeddingCache) PipelineOption {
	return func(o *options) { o.embeddingCache = cache }
}

// New builds a Pipeline. enc is the shared embedding encoder used by the
// chunker, classifier, and rewrite engine (typically an
// encoder.CachedEncoder wrapping a production embedding model);
// corpusProfile persists the running corpus statistics compared against
// in CompareToCorpus mode.
func New(ctx context.Context, enc encoder.Encoder, corpusProfile *corpus.Profile, v12Engine *v12.Engine, opts ...PipelineOption) (*Pipeline, error) {
	o := &options{}
	for _, apply := range opts {
		apply(o)
	}
	if o.logger == nil {
		o.logger = telemetry.NewLogger()
	}
	if o.clock == nil {
		o.clock = systemClock{}
	}

	classifier, err := classify.New(ctx, enc, o.embeddingCache)
	if err != nil {
		return nil, fmt.Errorf("pipeline: build classifier: %w", err)
	}
	rewriter, err := rewrite.New(ctx, enc, o.rewriteBank, o.embeddingCache)
	if err != nil {
		return nil, fmt.Errorf("pipeline: build rewrite engine: %w", err)
	}

	return &Pipeline{
		enc:        enc,
		chunker:    chunk.New(enc),
		classifier: classifier,
		rewriter:   rewriter,
		corpus:     corpusProfile,
		v12Engine:  v12Engine,
		negotiator: negotiate.New(),
		logger:     o.logger,
		metrics:    o.metrics,
		clock:      o.clock,
	}, nil
}

// Analyze runs the full V11 analysis pipeline over text, and the V12
// overlay when opts.V12 is non-nil. Each stage's failure is recorded as a
// StageError and degrades that stage's portion of Report rather than
// aborting the whole call, except chunking on empty input which returns
// InvalidInputError immediately.
func (p *Pipeline) Analyze(ctx context.Context, text string, opts AnalyzeOptions) (*Report, error) {
	if isBlank(text) {
		return nil, &InvalidInputError{Reason: "input text is empty"}
	}

	report := &Report{ContractType: opts.ContractType, AnalyzedAt: p.clock.Now()}

	clauses, err := p.runChunk(ctx, text, opts)
	if err != nil {
		return nil, &InvalidInputError{Reason: err.Error()}
	}

	classified, err := p.runClassify(ctx, clauses)
	if err != nil {
		report.StageErrors = append(report.StageErrors, StageError{"classify", err.Error()})
	}
	report.Classified = classified

	g, ga := p.runGraph(ctx, classified, opts.ContractType)
	report.Graph, report.GraphAnalysis = g, ga

	pw := p.runPower(ctx, classified, text)
	report.Power = pw

	dp := p.runDispute(ctx, ga, pw, classified)
	report.Dispute = dp

	report.OverallRiskScore = overallRiskScore(ga.StructuralRisk, pw.PowerScore, dp.OverallDisputeRisk)
	report.RiskLevel = riskLevelOf(report.OverallRiskScore)

	sim := p.runSimulate(ctx, classified, ga, pw, dp, report.OverallRiskScore, opts)
	report.Simulation = &sim

	if opts.RewriteSuggest {
		suggestions := p.runRewrite(ctx, classified)
		report.Suggestions = suggestions
	}

	if opts.Frontier != nil {
		fr := p.runFrontier(ctx, report, text, opts)
		report.Frontier = &fr
	}

	if opts.Playbook {
		pb := p.runPlaybook(ctx, classified, pw, opts)
		report.Playbook = &pb
	}

	if opts.CompareToCorpus && p.corpus != nil {
		cmp := p.runCorpusCompare(ctx, report.OverallRiskScore, classified)
		report.CorpusComparison = &cmp
	}

	if opts.V12 != nil && p.v12Engine != nil {
		view := v12.View{
			Classified:    classified,
			Graph:         g,
			GraphAnalysis: ga,
			Power:         pw,
			ContractType:  opts.ContractType,
			Jurisdiction:  opts.Jurisdiction,
			FullText:      text,
			RiskScore:     report.OverallRiskScore,
		}
		v12rep := p.runV12(ctx, view, *opts.V12)
		report.V12 = &v12rep
		report.OverallRiskScore = v12rep.FusedRisk
		report.RiskLevel = riskLevelOf(report.OverallRiskScore)
	}

	if p.metrics != nil {
		p.metrics.AnalysesTotal.WithLabelValues(opts.ContractType, "ok").Inc()
	}
	return report, nil
}

// AnalyzeV12 is a convenience wrapper that enables the full V12 overlay
// with default options on top of DefaultAnalyzeOptions.
func (p *Pipeline) AnalyzeV12(ctx context.Context, text, contractType string) (*Report, error) {
	opts := DefaultAnalyzeOptions(contractType)
	v12Opts := v12.DefaultOptions()
	opts.V12 = &v12Opts
	return p.Analyze(ctx, text, opts)
}

// IngestCorpus folds an already-produced Report into the running corpus
// profile, for batch backfill or post-analysis ingestion flows distinct
// from the CompareToCorpus read path inside Analyze.
func (p *Pipeline) IngestCorpus(ctx context.Context, report *Report) error {
	if p.corpus == nil {
		return fmt.Errorf("pipeline: no corpus profile configured")
	}
	err := p.corpus.Ingest(ctx, corpus.IngestInput{
		ContractType: report.ContractType,
		RiskScore:    report.OverallRiskScore,
		Classified:   report.Classified,
	})
	if err == nil && p.metrics != nil {
		p.metrics.CorpusIngests.Inc()
	}
	return err
}

func (p *Pipeline) runChunk(ctx context.Context, text string, opts AnalyzeOptions) ([]clause.Clause, error) {
	ctx, end := telemetry.StartSpan(ctx, "chunk")
	defer end()
	start := time.Now()
	defer p.observe("chunk", start)
	return p.chunker.ChunkWithOptions(ctx, text, opts.SemanticChunking)
}

func (p *Pipeline) runClassify(ctx context.Context, clauses []clause.Clause) ([]clause.Classified, error) {
	ctx, end := telemetry.StartSpan(ctx, "classify")
	defer end()
	start := time.Now()
	defer p.observe("classify", start)
	return p.classifier.ClassifyBatch(ctx, clauses)
}

func (p *Pipeline) runGraph(ctx context.Context, classified []clause.Classified, contractType string) (graph.Graph, graph.Analysis) {
	_, end := telemetry.StartSpan(ctx, "graph")
	defer end()
	start := time.Now()
	defer p.observe("graph", start)
	return graph.Build(classified, contractType)
}

func (p *Pipeline) runPower(ctx context.Context, classified []clause.Classified, fullText string) power.Analysis {
	_, end := telemetry.StartSpan(ctx, "power")
	defer end()
	start := time.Now()
	defer p.observe("power", start)
	return power.Analyze(classified, fullText)
}

func (p *Pipeline) runDispute(ctx context.Context, ga graph.Analysis, pw power.Analysis, classified []clause.Classified) dispute.Prediction {
	_, end := telemetry.StartSpan(ctx, "dispute")
	defer end()
	start := time.Now()
	defer p.observe("dispute", start)
	return dispute.Predict(ga, pw, classified)
}

func (p *Pipeline) runSimulate(ctx context.Context, classified []clause.Classified, ga graph.Analysis, pw power.Analysis, dp dispute.Prediction, baseRisk float64, opts AnalyzeOptions) simulate.RiskSimulation {
	_, end := telemetry.StartSpan(ctx, "simulate")
	defer end()
	start := time.Now()
	defer p.observe("simulate", start)

	trials := opts.SimulationTrials
	if trials <= 0 {
		trials = DefaultSimulationTrials
	}
	return simulate.Simulate(classified, ga, pw, dp, baseRisk, trials, opts.SimulationSeed)
}

func (p *Pipeline) runCorpusCompare(ctx context.Context, riskScore float64, classified []clause.Classified) corpus.Comparison {
	_, end := telemetry.StartSpan(ctx, "corpus_compare")
	defer end()
	start := time.Now()
	defer p.observe("corpus_compare", start)
	return p.corpus.Compare(corpus.CompareInput{RiskScore: riskScore, Classified: classified})
}

func (p *Pipeline) runV12(ctx context.Context, view v12.View, opts v12.Options) v12.Report {
	ctx, end := telemetry.StartSpan(ctx, "v12")
	defer end()
	start := time.Now()
	defer p.observe("v12", start)
	return p.v12Engine.Analyze(ctx, view, opts)
}

func (p *Pipeline) runRewrite(ctx context.Context, classified []clause.Classified) []*rewrite.Suggestion {
	ctx, end := telemetry.StartSpan(ctx, "rewrite")
	defer end()
	start := time.Now()
	defer p.observe("rewrite", start)

	var suggestions []*rewrite.Suggestion
	for _, c := range classified {
		if !c.NeedsReview {
			continue
		}
		s, err := p.rewriter.Suggest(ctx, c.Text, c.Type, c.RiskWeight*100, "")
		if err != nil {
			p.logger.Warn("rewrite suggestion failed", zap.String("clause_type", string(c.Type)), zap.Error(err))
			continue
		}
		if s != nil {
			suggestions = append(suggestions, s)
		}
	}
	return suggestions
}

func (p *Pipeline) runFrontier(ctx context.Context, report *Report, text string, opts AnalyzeOptions) frontier.Report {
	_, end := telemetry.StartSpan(ctx, "frontier")
	defer end()
	start := time.Now()
	defer p.observe("frontier", start)
	return frontier.Analyze(frontier.Input{
		Classified:        report.Classified,
		GraphAnalysis:     report.GraphAnalysis,
		Power:             report.Power,
		Dispute:           report.Dispute,
		FullText:          text,
		Jurisdiction:      opts.Jurisdiction,
		ContractAgeMonths: opts.ContractAgeMonths,
	}, *opts.Frontier)
}

func (p *Pipeline) runPlaybook(ctx context.Context, classified []clause.Classified, pw power.Analysis, opts AnalyzeOptions) negotiate.Playbook {
	_, end := telemetry.StartSpan(ctx, "playbook")
	defer end()
	start := time.Now()
	defer p.observe("playbook", start)

	jurisdiction := opts.Jurisdiction
	if jurisdiction == "" {
		jurisdiction = "US"
	}
	industry := opts.Industry
	if industry == "" {
		industry = "technology"
	}
	// The caller is assumed to sit across the table from the dominant
	// party, so the counterparty's power grows with the asymmetry score.
	counterpartyPower := pw.PowerScore / 100
	return p.negotiator.GeneratePlaybook(uuid.NewString(), classified, jurisdiction, industry, "counterparty", counterpartyPower)
}

func (p *Pipeline) observe(stage string, start time.Time) {
	if p.metrics != nil {
		p.metrics.ObserveStage(stage, start)
	}
}

// overallRiskScore blends structural, power, and dispute risk into a
// single point estimate using the same weights simulate.Simulate applies
// per-trial, without the Monte-Carlo noise. This is the
// report's headline number and also the base_risk fed into Simulate.
func overallRiskScore(structuralRisk, powerScore, disputeRisk float64) float64 {
	score := 0.3*structuralRisk + 0.2*powerScore + 0.5*disputeRisk
	return clampF(score, 0, 100)
}

// riskLevelOf buckets a 0-100 overall risk score into a qualitative
// level. Thresholds chosen so a lightly-flagged single-clause contract
// lands LOW while a multi-conflict, power-asymmetric contract reaches
// HIGH or CRITICAL.
func riskLevelOf(score float64) string {
	switch {
	case score < 30:
		return "LOW"
	case score < 55:
		return "MEDIUM"
	case score < 80:
		return "HIGH"
	default:
		return "CRITICAL"
	}
}

func isBlank(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}

func clampF(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

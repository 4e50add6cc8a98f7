// Package v12 implements the V12 overlay: it fuses the symbolic doctrine
// reasoner, case-law RAG, graph attention network, and legal debate
// engine into a single meta-fused risk score with an audit trail. Each
// subsystem is independently switchable and its failure never aborts the
// others.
package v12

import (
	"context"

	"github.com/semaj90/legalrisk/caselaw"
	"github.com/semaj90/legalrisk/clause"
	"github.com/semaj90/legalrisk/debate"
	"github.com/semaj90/legalrisk/encoder"
	"github.com/semaj90/legalrisk/gat"
	"github.com/semaj90/legalrisk/graph"
	"github.com/semaj90/legalrisk/power"
	"github.com/semaj90/legalrisk/symbolic"
)

// View is the subset of a V11 report the V12 overlay needs. Kept
// independent of the pipeline package's Report type so v12 has no
// dependency back on pipeline (pipeline depends on v12, not the reverse).
type View struct {
	Classified    []clause.Classified
	Graph         graph.Graph
	GraphAnalysis graph.Analysis
	Power         power.Analysis
	ContractType  string
	Jurisdiction  string // boosts same-jurisdiction case-law citations; may be empty
	FullText      string
	RiskScore     float64 // the V11 report's overall_risk_score
}

// Options toggles each V12 subsystem independently; any one's failure (or
// being disabled) does not prevent the others from running, and
// meta-fusion renormalizes over whichever scores are available.
type Options struct {
	EnableSymbolic bool
	EnableRAG      bool
	EnableGNN      bool
	EnableDebate   bool
}

// DefaultOptions enables every V12 subsystem.
func DefaultOptions() Options {
	return Options{EnableSymbolic: true, EnableRAG: true, EnableGNN: true, EnableDebate: true}
}

// Report is the V12 overlay's output for one analysis (the
// V12Report entity).
type Report struct {
	V11Risk     float64            `json:"v11_risk"`
	Symbolic    *symbolic.Verdict  `json:"symbolic,omitempty"`
	RAG         *caselaw.Result    `json:"rag,omitempty"`
	GNN         *gat.Scores        `json:"gnn,omitempty"`
	Debate      *debate.Transcript `json:"debate,omitempty"`
	FusedRisk   float64            `json:"fused_risk"`
	Confidence  float64            `json:"confidence"`
	StageStatus map[string]string  `json:"stage_status"`
}

// Engine holds the once-built V12 subsystems: the precompiled symbolic
// rule set, the pre-embedded case-law index, and the fixed-weight GAT.
// Safe for concurrent use by multiple Analyze calls — none of its fields
// are mutated after New returns.
type Engine struct {
	symbolic *symbolic.Reasoner
	caselaw  *caselaw.Index
	gat      *gat.Network
}

// New builds the V12 engine. corpus may be nil to use the built-in
// default case-law corpus. cache, if non-nil, backs the case-law index's
// embeddings (e.g. encoder.PGVectorCache) so a restart skips re-embedding
// the whole corpus.
func New(ctx context.Context, enc encoder.Encoder, corpus []caselaw.Case, cache encoder.EmbeddingCache) (*Engine, error) {
	idx, err := caselaw.New(ctx, enc, corpus, cache)
	if err != nil {
		return nil, err
	}
	return &Engine{
		symbolic: symbolic.New(),
		caselaw:  idx,
		gat:      gat.New(),
	}, nil
}

// Analyze runs the enabled V12 subsystems over v and produces the
// meta-fused Report. Each subsystem's own panics-worth of error handling
// happens inside it; Analyze additionally respects ctx
// cancellation between subsystems.
func (e *Engine) Analyze(ctx context.Context, v View, opts Options) Report {
	status := map[string]string{}
	rep := Report{V11Risk: v.RiskScore, StageStatus: status}

	if ctx.Err() != nil {
		status["cancelled"] = ctx.Err().Error()
		return rep
	}

	if opts.EnableSymbolic {
		facts := buildFacts(v)
		verdict := e.symbolic.Evaluate(facts, avgCalibratedConfidence(v.Classified), v.RiskScore)
		rep.Symbolic = &verdict
		status["symbolic"] = "ok"
	}

	if ctx.Err() != nil {
		status["cancelled"] = ctx.Err().Error()
		return rep
	}

	if opts.EnableRAG {
		result := e.caselaw.Retrieve(ctx, toCaselawClauses(v.Classified), v.Jurisdiction, 3)
		rep.RAG = &result
		status["rag"] = "ok"
	}

	if ctx.Err() != nil {
		status["cancelled"] = ctx.Err().Error()
		return rep
	}

	if opts.EnableGNN {
		scores := e.gat.Forward(v.Graph)
		rep.GNN = &scores
		status["gnn"] = "ok"
	}

	if ctx.Err() != nil {
		status["cancelled"] = ctx.Err().Error()
		return rep
	}

	if opts.EnableDebate {
		transcript := debate.Debate(v.Classified, v.GraphAnalysis, v.Power)
		rep.Debate = &transcript
		status["debate"] = "ok"
	}

	rep.FusedRisk, rep.Confidence = fuse(rep)
	return rep
}

// fuse collects the available scores among {v11_risk, symbolic.fused_risk,
// gnn.graph_risk, v11_risk + 100*debate.risk_adjustment}, weights each at
// 25% and renormalizes over whichever are present, then derives a
// confidence from how much the available scores agree.
func fuse(rep Report) (fusedRisk, confidence float64) {
	var scores []float64
	scores = append(scores, rep.V11Risk)
	if rep.Symbolic != nil {
		scores = append(scores, rep.Symbolic.FusedRisk)
	}
	if rep.GNN != nil {
		scores = append(scores, rep.GNN.GraphRisk)
	}
	if rep.Debate != nil {
		scores = append(scores, clampF(rep.V11Risk+100*rep.Debate.RiskAdjustment, 0, 100))
	}

	var sum float64
	for _, s := range scores {
		sum += s
	}
	fusedRisk = clampF(sum/float64(len(scores)), 0, 100)

	confidence = clampF(1-variance(scores)/2500, 0.1, 0.99)
	return fusedRisk, confidence
}

func variance(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var mean float64
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))
	var sumSq float64
	for _, x := range xs {
		d := x - mean
		sumSq += d * d
	}
	return sumSq / float64(len(xs))
}

func buildFacts(v View) symbolic.Facts {
	present := map[clause.Type]bool{}
	text := map[clause.Type]string{}
	for _, c := range v.Classified {
		present[c.Type] = true
		text[c.Type] += " " + c.Text
	}
	return symbolic.Facts{
		Present:        present,
		ClauseText:     text,
		FullText:       v.FullText,
		ContractType:   v.ContractType,
		RiskScore:      v.RiskScore,
		ConflictCount:  len(v.GraphAnalysis.Conflicts),
		PowerAsymmetry: v.Power.PowerScore,
	}
}

func avgCalibratedConfidence(classified []clause.Classified) float64 {
	if len(classified) == 0 {
		return 0.5
	}
	var sum float64
	for _, c := range classified {
		sum += c.CalibratedConfidence
	}
	return sum / float64(len(classified))
}

func toCaselawClauses(classified []clause.Classified) []caselaw.Clause {
	out := make([]caselaw.Clause, len(classified))
	for i, c := range classified {
		out[i] = caselaw.Clause{
			Type:                 c.Type,
			Text:                 c.Text,
			RiskWeight:           c.RiskWeight,
			NeedsReview:          c.NeedsReview,
			CalibratedConfidence: c.CalibratedConfidence,
		}
	}
	return out
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

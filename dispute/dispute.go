// Package dispute implements the dispute predictor: it fuses conflict,
// gap, and power signals into per-clause-type dispute hotspots and an
// overall likelihood.
package dispute

import (
	"sort"

	"github.com/semaj90/legalrisk/clause"
	"github.com/semaj90/legalrisk/graph"
	"github.com/semaj90/legalrisk/power"
)

// Severity is a coarse bucketing of a hotspot's dispute probability.
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityHigh     Severity = "HIGH"
	SeverityMedium   Severity = "MEDIUM"
	SeverityLow      Severity = "LOW"
)

// Category is the signal family that produced a hotspot.
type Category string

const (
	CategoryConflict Category = "conflict"
	CategoryGap      Category = "gap"
	CategoryPower    Category = "power"
)

// Hotspot is a clause type flagged as likely to be disputed.
type Hotspot struct {
	ClauseType     clause.Type `json:"clause_type"`
	Probability    float64     `json:"probability"`
	Severity       Severity    `json:"severity"`
	Category       Category    `json:"category"`
	Reason         string      `json:"reason"`
	Recommendation string      `json:"recommendation"`
}

// Prediction is the dispute-predictor output for a contract.
type Prediction struct {
	Hotspots               []Hotspot `json:"hotspots"`
	OverallDisputeRisk     float64   `json:"overall_dispute_risk"`
	DisputeCountPrediction string    `json:"dispute_count_prediction"`
}

// candidate is a pre-dedup hotspot proposal.
type candidate struct {
	hotspot Hotspot
}

// Predict fuses conflict edges, unmet dependencies, one-sided clauses, and
// high-prevalence missing-expected clauses into a deduplicated, ranked set
// of dispute hotspots plus an overall likelihood.
func Predict(graphAnalysis graph.Analysis, powerAnalysis power.Analysis, classified []clause.Classified) Prediction {
	var candidates []candidate

	for _, e := range graphAnalysis.Conflicts {
		prob := minF(0.95, e.Severity*0.8+0.1)
		for _, t := range []clause.Type{e.Source, clause.Type(e.Target)} {
			candidates = append(candidates, candidate{Hotspot{
				ClauseType: t, Probability: prob, Category: CategoryConflict,
				Reason:         e.Description,
				Recommendation: "Reconcile the conflicting clauses or add an explicit precedence provision.",
			}})
		}
	}

	for _, e := range graphAnalysis.MissingDependencies {
		prob := minF(0.85, e.Severity*0.7+0.15)
		candidates = append(candidates, candidate{Hotspot{
			ClauseType: e.Source, Probability: prob, Category: CategoryGap,
			Reason:         e.Description,
			Recommendation: "Add the missing dependent clause: " + e.Target,
		}})
	}

	if len(powerAnalysis.AsymmetricClauses) > 0 {
		prob := minF(0.80, 0.4+(powerAnalysis.PowerScore/100)*0.4)
		oneSided := map[string]bool{}
		for _, id := range powerAnalysis.AsymmetricClauses {
			oneSided[id] = true
		}
		for _, c := range classified {
			if oneSided[c.ID] {
				candidates = append(candidates, candidate{Hotspot{
					ClauseType: c.Type, Probability: prob, Category: CategoryPower,
					Reason:         "Clause drafted with one-sided language favoring one party.",
					Recommendation: "Rebalance the clause to impose mutual obligations.",
				}})
			}
		}
	}

	for _, m := range graphAnalysis.MissingExpected {
		if m.ExpectedPrevalence >= 0.8 {
			candidates = append(candidates, candidate{Hotspot{
				ClauseType: m.Type, Probability: m.ExpectedPrevalence * 0.5, Category: CategoryGap,
				Reason:         m.Recommendation,
				Recommendation: m.Recommendation,
			}})
		}
	}

	hotspots := dedup(candidates)
	sort.Slice(hotspots, func(i, j int) bool { return hotspots[i].Probability > hotspots[j].Probability })

	return Prediction{
		Hotspots:               hotspots,
		OverallDisputeRisk:     overallRisk(hotspots, graphAnalysis.StructuralRisk),
		DisputeCountPrediction: countLabel(hotspots),
	}
}

// dedup groups candidates by clause_type, keeping the max-probability
// representative (testable property: hotspots are unique by clause_type).
func dedup(candidates []candidate) []Hotspot {
	best := map[clause.Type]Hotspot{}
	for _, c := range candidates {
		h := c.hotspot
		if existing, ok := best[h.ClauseType]; !ok || h.Probability > existing.Probability {
			best[h.ClauseType] = h
		}
	}
	out := make([]Hotspot, 0, len(best))
	for _, h := range best {
		h.Severity = severityOf(h.Probability)
		out = append(out, h)
	}
	return out
}

func severityOf(p float64) Severity {
	switch {
	case p >= 0.8:
		return SeverityCritical
	case p >= 0.6:
		return SeverityHigh
	case p >= 0.4:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// overallRisk = min(100, Σ(top-5 prob × {1 if CRITICAL else 0.7})·25 + structural_risk·0.3).
func overallRisk(hotspots []Hotspot, structuralRisk float64) float64 {
	top := hotspots
	if len(top) > 5 {
		top = top[:5]
	}
	var sum float64
	for _, h := range top {
		weight := 0.7
		if h.Severity == SeverityCritical {
			weight = 1.0
		}
		sum += h.Probability * weight
	}
	risk := sum*25 + structuralRisk*0.3
	if risk > 100 {
		risk = 100
	}
	return risk
}

func countLabel(hotspots []Hotspot) string {
	n := 0
	for _, h := range hotspots {
		if h.Probability >= 0.6 {
			n++
		}
	}
	switch {
	case n >= 5:
		return "High (5+)"
	case n >= 2:
		return "Medium (2-4)"
	default:
		return "Low (0-1)"
	}
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// Package frontier implements second-order legal-intelligence overlays on
// top of a completed analysis: silence detection (what the contract
// deliberately omits), contract archaeology (what negotiation traces
// survive in the text), temporal decay of meaning, jurisprudential strain,
// social-structure inference, strategic-ambiguity detection, and dispute
// cartography.
//
// Each capability reuses the views the rest of the pipeline already
// computed (graph.Analysis, power.Analysis, dispute.Prediction) rather
// than re-deriving them from raw text, the same way v12.Engine.Analyze
// consumes its View.
package frontier

import (
	"fmt"
	"strings"

	"github.com/semaj90/legalrisk/clause"
	"github.com/semaj90/legalrisk/dispute"
	"github.com/semaj90/legalrisk/graph"
	"github.com/semaj90/legalrisk/power"
)

// Options toggles each capability independently, matching the
// independently-toggleable subsystem discipline v12.Options uses.
type Options struct {
	EnableSilence     bool
	EnableArchaeology bool
	EnableTemporal    bool
	EnableStrain      bool
	EnableSocial      bool
	EnableAmbiguity   bool
	EnableDispute     bool
}

// DefaultOptions enables every capability.
func DefaultOptions() Options {
	return Options{
		EnableSilence: true, EnableArchaeology: true, EnableTemporal: true,
		EnableStrain: true, EnableSocial: true, EnableAmbiguity: true, EnableDispute: true,
	}
}

// Report is the frontier overlay's output for one analysis.
type Report struct {
	Silence             *SilenceAnalysis         `json:"silence,omitempty"`
	Archaeology         *ArchaeologyAnalysis     `json:"archaeology,omitempty"`
	Temporal            *TemporalDecayAnalysis   `json:"temporal,omitempty"`
	Strain              *StrainAnalysis          `json:"strain,omitempty"`
	Social              *SocialStructureAnalysis `json:"social,omitempty"`
	Ambiguity           *AmbiguityAnalysis       `json:"ambiguity,omitempty"`
	Dispute             *DisputeCartography      `json:"dispute,omitempty"`
	OverallFrontierRisk float64                  `json:"overall_frontier_risk"` // 0-100
	CriticalFindings    []string                 `json:"critical_findings"`
	RecommendedActions  []string                 `json:"recommended_actions"`
}

// Input is the subset of a V11 analysis the frontier overlay needs, kept
// independent of the pipeline package the same way v12.View is.
type Input struct {
	Classified        []clause.Classified
	GraphAnalysis     graph.Analysis
	Power             power.Analysis
	Dispute           dispute.Prediction
	FullText          string
	Jurisdiction      string
	ContractAgeMonths float64 // 0 disables AnalyzeTemporalDecay regardless of opts
}

// Analyze runs the enabled capabilities and rolls their per-capability
// risk components into a single overall_frontier_risk mean, accumulating
// critical findings and recommended actions along the way.
func Analyze(in Input, opts Options) Report {
	var rep Report
	var components []float64
	var findings, actions []string

	if opts.EnableSilence {
		s := AnalyzeSilence(in.GraphAnalysis)
		rep.Silence = &s
		components = append(components, s.SilenceScore/100)
		if s.SilenceScore > 50 {
			findings = append(findings, fmt.Sprintf(
				"High silence score (%.0f%%): %d strategic omissions detected",
				s.SilenceScore, len(s.LikelyStrategicOmissions)))
			actions = append(actions, "Review missing clauses: "+strings.Join(firstN(s.LikelyStrategicOmissions, 3), ", "))
		}
	}

	if opts.EnableArchaeology {
		a := AnalyzeArchaeology(in.FullText, in.Classified)
		rep.Archaeology = &a
		components = append(components, 1-a.NegotiationIntensityScore)
		if len(a.PlaceholderScars) > 0 {
			findings = append(findings, fmt.Sprintf("Template not fully customized: %d placeholders found", len(a.PlaceholderScars)))
			actions = append(actions, "Replace generic placeholders with specific terms")
		}
	}

	if opts.EnableTemporal && in.ContractAgeMonths > 0 {
		t := AnalyzeTemporalDecay(in.Classified, in.ContractAgeMonths)
		rep.Temporal = &t
		components = append(components, 1-t.MeaningStabilityIndex)
		if t.NeedsReview {
			findings = append(findings, fmt.Sprintf("Contract meaning has drifted: stability index %.2f", t.MeaningStabilityIndex))
			actions = append(actions, "Urgent review needed: "+string(t.ReviewUrgency)+" priority")
		}
	}

	if opts.EnableStrain {
		s := AnalyzeStrain(in.Classified)
		rep.Strain = &s
		components = append(components, minF(1.0, s.TotalStrainScore/2))
		if len(s.LitigationLandmines) > 0 {
			findings = append(findings, "Legal landmines detected: "+strings.Join(firstN(s.LitigationLandmines, 2), ", "))
		}
	}

	if opts.EnableSocial {
		soc := AnalyzeSocialStructure(in.Power)
		rep.Social = &soc
		if absF(soc.PowerAsymmetryScore) > 0.5 {
			findings = append(findings, "Severe power imbalance: "+soc.DominantParty+" dominates")
			actions = append(actions, "Consider rebalancing terms")
		}
		for _, c := range soc.StructuralConcerns {
			findings = append(findings, "Structure: "+c)
		}
	}

	if opts.EnableAmbiguity {
		amb := AnalyzeAmbiguity(in.Classified)
		rep.Ambiguity = &amb
		components = append(components, amb.InterpretationRiskScore/100)
		if amb.InterpretationRiskScore > 50 {
			findings = append(findings, fmt.Sprintf("High ambiguity risk: %d intentional vague terms", len(amb.LikelyIntentional)))
		}
	}

	if opts.EnableDispute {
		dc := AnalyzeDisputeCartography(in.Classified, in.Dispute)
		rep.Dispute = &dc
		components = append(components, dc.TotalDisputeProbability)
		if len(dc.DisputeAttractors) > 0 {
			findings = append(findings, fmt.Sprintf("High dispute risk: %d clauses likely to be contested", len(dc.DisputeAttractors)))
			actions = append(actions, "Focus negotiation on: "+strings.Join(firstN(dc.DisputeAttractors, 3), ", "))
		}
	}

	if len(components) > 0 {
		var sum float64
		for _, c := range components {
			sum += c
		}
		rep.OverallFrontierRisk = round2(sum / float64(len(components)) * 100)
	}
	rep.CriticalFindings = findings
	rep.RecommendedActions = actions
	return rep
}

func firstN(xs []string, n int) []string {
	if len(xs) > n {
		return xs[:n]
	}
	return xs
}

func dedupStrings(xs []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, x := range xs {
		if seen[x] {
			continue
		}
		seen[x] = true
		out = append(out, x)
	}
	return out
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func absF(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func round2(x float64) float64 {
	return float64(int(x*100+0.5)) / 100
}

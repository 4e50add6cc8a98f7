package frontier

import (
	"regexp"
	"sort"
	"strings"

	"github.com/semaj90/legalrisk/clause"
	"github.com/semaj90/legalrisk/dispute"
)

// AmbiguityAnalysis reports deliberately vague drafting: undefined
// standards ("reasonable", "material") that leave interpretation to a
// future dispute rather than the present text.
type AmbiguityAnalysis struct {
	InterpretationRiskScore float64  `json:"interpretation_risk_score"` // 0-100
	VagueTermCount          int      `json:"vague_term_count"`
	LikelyIntentional       []string `json:"likely_intentional"`
	AmbiguousClauses        []string `json:"ambiguous_clauses"` // clause ids
}

var vagueTermRe = regexp.MustCompile(`(?i)\breasonable\b|\bmaterial(?:ly)?\b|\bpromptly\b|\bbest efforts\b|\bcommercially reasonable\b|\bsubstantially\b|\bgood faith\b|\bappropriate\b|\btimely\b|\bfrom time to time\b|\bas necessary\b|\bsatisfactory\b`)

// AnalyzeAmbiguity counts vague terms per clause. A vague term inside a
// high-risk-weight clause is scored as likely intentional: ambiguity in
// the clauses where money changes hands reads as a negotiating position,
// not sloppy drafting.
func AnalyzeAmbiguity(classified []clause.Classified) AmbiguityAnalysis {
	var out AmbiguityAnalysis
	var weighted float64
	intentional := map[string]bool{}

	for _, c := range classified {
		terms := vagueTermRe.FindAllString(c.Text, -1)
		if len(terms) == 0 {
			continue
		}
		out.VagueTermCount += len(terms)
		out.AmbiguousClauses = append(out.AmbiguousClauses, c.ID)
		weighted += float64(len(terms)) * (0.5 + c.RiskWeight)
		if c.RiskWeight > 0.6 {
			for _, t := range terms {
				intentional[strings.ToLower(t)] = true
			}
		}
	}

	for t := range intentional {
		out.LikelyIntentional = append(out.LikelyIntentional, t)
	}
	sort.Strings(out.LikelyIntentional)

	if len(classified) > 0 {
		// ~2 weighted vague terms per clause saturates the score.
		out.InterpretationRiskScore = clamp(weighted/(float64(len(classified))*2)*100, 0, 100)
	}
	return out
}

// ClausePrediction is one clause type's position on the dispute map.
type ClausePrediction struct {
	ClauseType         clause.Type `json:"clause_type"`
	DisputeProbability float64     `json:"dispute_probability"` // 0-1
	Drivers            []string    `json:"drivers"`
}

// DisputeCartography maps where in the contract disputes are most likely
// to originate, combining the dispute predictor's hotspots with each
// clause type's intrinsic risk weight.
type DisputeCartography struct {
	ClausePredictions       []ClausePrediction `json:"clause_predictions"`
	DisputeAttractors       []string           `json:"dispute_attractors"`
	TotalDisputeProbability float64            `json:"total_dispute_probability"` // 0-1
}

// AnalyzeDisputeCartography builds one prediction per clause type present:
// the hotspot probability where the dispute predictor flagged the type,
// otherwise a baseline proportional to the type's risk weight. The total
// is the probability that at least one of the top predictions disputes,
// treating them as independent.
func AnalyzeDisputeCartography(classified []clause.Classified, dp dispute.Prediction) DisputeCartography {
	hotspots := map[clause.Type]dispute.Hotspot{}
	for _, h := range dp.Hotspots {
		hotspots[h.ClauseType] = h
	}

	seen := map[clause.Type]bool{}
	var out DisputeCartography
	for _, c := range classified {
		if seen[c.Type] {
			continue
		}
		seen[c.Type] = true

		pred := ClausePrediction{ClauseType: c.Type, DisputeProbability: c.RiskWeight * 0.3}
		if h, ok := hotspots[c.Type]; ok {
			pred.DisputeProbability = h.Probability
			pred.Drivers = append(pred.Drivers, string(h.Category)+": "+h.Reason)
		} else if c.RiskWeight > 0.5 {
			pred.Drivers = append(pred.Drivers, "intrinsically high-risk clause type")
		}
		out.ClausePredictions = append(out.ClausePredictions, pred)
	}

	sort.Slice(out.ClausePredictions, func(i, j int) bool {
		return out.ClausePredictions[i].DisputeProbability > out.ClausePredictions[j].DisputeProbability
	})

	noDispute := 1.0
	for i, p := range out.ClausePredictions {
		if i >= 5 {
			break
		}
		noDispute *= 1 - p.DisputeProbability
	}
	if len(out.ClausePredictions) > 0 {
		out.TotalDisputeProbability = clamp(1-noDispute, 0, 1)
	}

	for _, p := range out.ClausePredictions {
		if p.DisputeProbability > 0.4 {
			out.DisputeAttractors = append(out.DisputeAttractors, string(p.ClauseType))
		}
	}
	return out
}

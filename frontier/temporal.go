package frontier

import (
	"math"

	"github.com/semaj90/legalrisk/clause"
)

// TemporalDecayAnalysis estimates how much a contract's legal meaning has
// drifted since signing as regulation and case law move on around it.
type TemporalDecayAnalysis struct {
	MeaningStabilityIndex float64       `json:"meaning_stability_index"` // 0-1
	NeedsReview           bool          `json:"needs_review"`
	ReviewUrgency         ReviewUrgency `json:"review_urgency"`
}

// ReviewUrgency buckets how urgently a temporally-decayed contract should
// be re-reviewed.
type ReviewUrgency string

const (
	UrgencyLow    ReviewUrgency = "low"
	UrgencyMedium ReviewUrgency = "medium"
	UrgencyHigh   ReviewUrgency = "high"
)

// volatileDecayRates gives each clause type known to sit on fast-moving
// doctrine (data protection regulation, force majeure after pandemic-era
// litigation, non-compete enforceability) an annual decay rate; types not
// listed are treated as stable and contribute no decay.
var volatileDecayRates = map[clause.Type]float64{
	clause.DataProtection: 0.35,
	clause.ForceMajeure:   0.20,
	clause.NonCompete:     0.20,
	clause.GoverningLaw:   0.08,
}

// AnalyzeTemporalDecay estimates meaning_stability_index as
// exp(-rate*years) for the single most volatile clause type present,
// the way a maximum (not average) captures the worst-drifted clause
// driving the review decision.
func AnalyzeTemporalDecay(classified []clause.Classified, ageMonths float64) TemporalDecayAnalysis {
	if ageMonths <= 0 {
		return TemporalDecayAnalysis{MeaningStabilityIndex: 1.0, ReviewUrgency: UrgencyLow}
	}
	years := ageMonths / 12

	var maxDecay float64
	for _, c := range classified {
		rate, ok := volatileDecayRates[c.Type]
		if !ok {
			continue
		}
		decay := 1 - math.Exp(-rate*years)
		if decay > maxDecay {
			maxDecay = decay
		}
	}

	stability := clamp(1-maxDecay, 0, 1)
	urgency := UrgencyLow
	switch {
	case stability < 0.5:
		urgency = UrgencyHigh
	case stability < 0.75:
		urgency = UrgencyMedium
	}
	return TemporalDecayAnalysis{
		MeaningStabilityIndex: stability,
		NeedsReview:           stability < 0.75,
		ReviewUrgency:         urgency,
	}
}

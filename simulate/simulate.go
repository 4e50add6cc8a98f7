// Package simulate implements the Monte-Carlo risk simulator: it
// perturbs the structural, power, and dispute risk scores by
// uncertainty-scaled noise across N trials and summarizes the resulting
// distribution. The RNG seed is injected so Analyze stays reproducible
// end to end.
package simulate

import (
	"math"
	"math/rand"
	"sort"

	"github.com/semaj90/legalrisk/clause"
	"github.com/semaj90/legalrisk/dispute"
	"github.com/semaj90/legalrisk/graph"
	"github.com/semaj90/legalrisk/power"
)

// UncertaintySource names which input the simulation found most
// uncertain.
type UncertaintySource string

const (
	SourceClassification UncertaintySource = "classification"
	SourceGraphStructure UncertaintySource = "graph_structure"
	SourcePowerAsymmetry UncertaintySource = "power_asymmetry"
)

// Volatility is a qualitative label for the simulation's CI95 width.
type Volatility string

const (
	VolatilityLow    Volatility = "low"
	VolatilityMedium Volatility = "medium"
	VolatilityHigh   Volatility = "high"
)

// RiskSimulation is the output of a Monte-Carlo risk simulation run.
type RiskSimulation struct {
	Mean                      float64           `json:"mean"`
	Median                    float64           `json:"median"`
	Std                       float64           `json:"std"`
	CI95Lower                 float64           `json:"ci95_lower"`
	CI95Upper                 float64           `json:"ci95_upper"`
	CI80Lower                 float64           `json:"ci80_lower"`
	CI80Upper                 float64           `json:"ci80_upper"`
	BestCase                  float64           `json:"best_case"`  // p5
	WorstCase                 float64           `json:"worst_case"` // p95
	Volatility                Volatility        `json:"volatility"`
	Histogram                 [10]int           `json:"histogram"`
	DominantUncertaintySource UncertaintySource `json:"dominant_uncertainty_source"`
	N                         int               `json:"n"`
	Seed                      int64             `json:"seed"`
}

// Simulate runs N Monte-Carlo trials over the structural, power, and
// dispute risk scores, perturbed by noise scaled to three uncertainty
// sources derived from classified, graphAnalysis, and powerAnalysis.
// baseRisk is accepted for interface symmetry with the pipeline's
// point-estimate report field; the per-trial formula below uses the three
// component scores directly rather than re-deriving from baseRisk.
func Simulate(classified []clause.Classified, graphAnalysis graph.Analysis, powerAnalysis power.Analysis,
	disputeAnalysis dispute.Prediction, baseRisk float64, n int, seed int64) RiskSimulation {
	if n <= 0 {
		n = 1000
	}

	structural := graphAnalysis.StructuralRisk
	powerScore := powerAnalysis.PowerScore
	disputeScore := disputeAnalysis.OverallDisputeRisk

	uClass := classificationUncertainty(classified)
	uGraph := graphUncertainty(graphAnalysis)
	uPower := powerUncertainty(powerAnalysis)

	rng := rand.New(rand.NewSource(seed))
	samples := make([]float64, n)
	var histogram [10]int

	for i := 0; i < n; i++ {
		s := clamp(structural+rng.NormFloat64()*math.Sqrt(15*uClass)+uniform(rng, -5, 5), 0, 100)
		p := clamp(powerScore+rng.NormFloat64()*math.Sqrt(12*uPower), 0, 100)
		d := clamp(disputeScore+rng.NormFloat64()*math.Sqrt(10*(uClass+uGraph)), 0, 100)

		risk := clamp(0.3*s+0.2*p+0.5*d, 0, 100)
		samples[i] = risk

		bin := int(risk / 10)
		if bin > 9 {
			bin = 9
		}
		if bin < 0 {
			bin = 0
		}
		histogram[bin]++
	}

	sort.Float64s(samples)

	mean := meanOf(samples)
	std := stdOf(samples, mean)

	return RiskSimulation{
		Mean:                      mean,
		Median:                    percentile(samples, 50),
		Std:                       std,
		CI95Lower:                 percentile(samples, 2.5),
		CI95Upper:                 percentile(samples, 97.5),
		CI80Lower:                 percentile(samples, 10),
		CI80Upper:                 percentile(samples, 90),
		BestCase:                  percentile(samples, 5),
		WorstCase:                 percentile(samples, 95),
		Volatility:                volatilityOf(percentile(samples, 97.5) - percentile(samples, 2.5)),
		Histogram:                 histogram,
		DominantUncertaintySource: dominantSource(uClass, uGraph, uPower),
		N:                         n,
		Seed:                      seed,
	}
}

// classificationUncertainty = clip(0,1, 1 - mean_margin/0.3); margin
// proxies to 0.5*confidence when top_k is unavailable (e.g. an
// EncoderUnavailable degraded clause with no top_k).
func classificationUncertainty(classified []clause.Classified) float64 {
	if len(classified) == 0 {
		return 1
	}
	var sum float64
	for _, c := range classified {
		margin := c.Margin
		if len(c.TopK) < 2 {
			margin = 0.5 * c.CalibratedConfidence
		}
		sum += margin
	}
	meanMargin := sum / float64(len(classified))
	return clamp01(1 - meanMargin/0.3)
}

func graphUncertainty(a graph.Analysis) float64 {
	return 0.5*(1-a.CompletenessScore) + 0.5*minF(1, 0.2*float64(len(a.Conflicts)))
}

func powerUncertainty(a power.Analysis) float64 {
	total := a.TotalObligations + a.TotalProtections
	switch {
	case total < 5:
		return 0.8
	case total < 15:
		return 0.4
	default:
		return 0.2
	}
}

func dominantSource(uClass, uGraph, uPower float64) UncertaintySource {
	if uClass >= uGraph && uClass >= uPower {
		return SourceClassification
	}
	if uGraph >= uPower {
		return SourceGraphStructure
	}
	return SourcePowerAsymmetry
}

func volatilityOf(ci95Width float64) Volatility {
	switch {
	case ci95Width < 15:
		return VolatilityLow
	case ci95Width < 30:
		return VolatilityMedium
	default:
		return VolatilityHigh
	}
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func meanOf(xs []float64) float64 {
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func stdOf(xs []float64, mean float64) float64 {
	var sumSq float64
	for _, x := range xs {
		d := x - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(xs)))
}

// percentile expects a sorted slice and linearly interpolates between
// ranks, p in [0, 100].
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if len(sorted) == 1 {
		return sorted[0]
	}
	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
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

func clamp01(x float64) float64 { return clamp(x, 0, 1) }

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// Package debate implements the V12 legal debate engine: a
// prosecution/defense/judge protocol that argues each risk-bearing clause
// type from both sides and rules on whether the risk should weigh on the
// final score.
package debate

import (
	"strings"

	"github.com/semaj90/legalrisk/clause"
	"github.com/semaj90/legalrisk/graph"
	"github.com/semaj90/legalrisk/power"
)

// Severity is the prosecution's assessed gravity of an argument.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Verdict is the debate's overall conclusion.
type Verdict string

const (
	VerdictHighRisk     Verdict = "high_risk"
	VerdictModerateRisk Verdict = "moderate_risk"
	VerdictAcceptable   Verdict = "acceptable"
)

// Ruling is the judge's disposition of one contested clause type.
type Ruling string

const (
	RulingSustained         Ruling = "sustained"
	RulingSustainedCautious Ruling = "sustained_cautious"
	RulingOverruled         Ruling = "overruled"
)

// structuralType and powerType are sentinel pseudo clause-types used to
// key the debate's non-clause-specific arguments (graph conflicts, power
// asymmetry) through the same argument/ruling machinery as clause types.
const (
	structuralType clause.Type = "structural_risk"
	powerType      clause.Type = "power_asymmetry"
)

// Argument is one side's position on a clause type.
type Argument struct {
	ClauseType clause.Type `json:"clause_type"`
	Severity   Severity    `json:"severity"`
	Confidence float64     `json:"confidence"`
	Evidence   []string    `json:"evidence"`
}

// JudgeRuling is the judge's disposition of the argument pair for one
// clause type.
type JudgeRuling struct {
	ClauseType     clause.Type `json:"clause_type"`
	Ruling         Ruling      `json:"ruling"`
	RiskAdjustment float64     `json:"risk_adjustment"`
}

// Transcript is the full debate record for one report.
type Transcript struct {
	ProsecutionArgs []Argument    `json:"prosecution_args"`
	DefenseArgs     []Argument    `json:"defense_args"`
	Rulings         []JudgeRuling `json:"rulings"`
	Verdict         Verdict       `json:"verdict"`
	RiskAdjustment  float64       `json:"risk_adjustment"`
}

// Debate runs the adversarial protocol over classified, using
// graphAnalysis and powerAnalysis to seed the structural and power
// arguments.
func Debate(classified []clause.Classified, graphAnalysis graph.Analysis, powerAnalysis power.Analysis) Transcript {
	textByType := map[clause.Type]string{}
	confByType := map[clause.Type]float64{}
	for _, c := range classified {
		textByType[c.Type] += " " + c.Text
		if c.CalibratedConfidence > confByType[c.Type] {
			confByType[c.Type] = c.CalibratedConfidence
		}
	}

	var prosecution []Argument
	for t, kb := range knowledgeBase {
		text, present := textByType[t]
		if !present {
			continue
		}
		entry, ok := clause.Entry(t)
		riskWeight := 0.0
		if ok {
			riskWeight = entry.RiskWeight
		}
		if riskWeight <= 0.6 && wordOverlap(text, strings.Join(kb.Risks, " ")) < 0.3 {
			continue
		}
		prosecution = append(prosecution, Argument{
			ClauseType: t,
			Severity:   severityFromWeight(riskWeight),
			Confidence: minF(riskWeight+0.1, 1),
			Evidence:   append(topN(kb.Risks, 3), topN(kb.Precedents, 2)...),
		})
	}
	if graphAnalysis.StructuralRisk > 0 && len(graphAnalysis.Conflicts) > 0 {
		prosecution = append(prosecution, Argument{
			ClauseType: structuralType,
			Severity:   severityFromWeight(minF(1, float64(len(graphAnalysis.Conflicts))*0.25)),
			Confidence: minF(0.5+0.1*float64(len(graphAnalysis.Conflicts)), 1),
			Evidence:   []string{"unresolved conflicting clause relationships in the contract graph"},
		})
	}
	if diff := powerAnalysis.PowerScore - 50; diff > 20 || diff < -20 {
		prosecution = append(prosecution, Argument{
			ClauseType: powerType,
			Severity:   severityFromWeight(powerAnalysis.PowerScore / 100),
			Confidence: minF(powerAnalysis.PowerScore/100+0.1, 1),
			Evidence:   []string{"material bargaining-power asymmetry between the parties"},
		})
	}

	var defense []Argument
	for _, pro := range prosecution {
		kb, ok := knowledgeBase[pro.ClauseType]
		if ok && len(kb.Defenses) > 0 {
			defense = append(defense, Argument{
				ClauseType: pro.ClauseType,
				Severity:   SeverityLow,
				Confidence: 0.8 * confByType[pro.ClauseType],
				Evidence:   topN(kb.Defenses, 3),
			})
			continue
		}
		if pro.ClauseType == structuralType {
			defense = append(defense, Argument{
				ClauseType: structuralType, Severity: SeverityLow, Confidence: 0.5,
				Evidence: []string{"conflicts may be immaterial if the clauses address distinct risk scenarios"},
			})
		}
		if pro.ClauseType == powerType {
			defense = append(defense, Argument{
				ClauseType: powerType, Severity: SeverityLow, Confidence: 0.5,
				Evidence: []string{"asymmetric obligations may reflect a commercially justified allocation of risk"},
			})
		}
	}

	defenseByType := map[clause.Type]Argument{}
	for _, d := range defense {
		defenseByType[d.ClauseType] = d
	}

	var rulings []JudgeRuling
	var totalAdjustment float64
	sustained, overruled := 0, 0
	for _, pro := range prosecution {
		proTotal := pro.Confidence*severityWeight(pro.Severity) + 0.1*minF(3, float64(len(pro.Evidence)))
		var defTotal float64
		if def, ok := defenseByType[pro.ClauseType]; ok {
			defTotal = def.Confidence*severityWeight(def.Severity) + 0.1*minF(3, float64(len(def.Evidence)))
		}

		var ruling Ruling
		var adj float64
		switch {
		case proTotal > 1.2*defTotal:
			ruling = RulingSustained
			adj = pro.Confidence * 0.1
			sustained++
		case defTotal > 1.2*proTotal:
			ruling = RulingOverruled
			adj = -0.05
			overruled++
		default:
			ruling = RulingSustainedCautious
			adj = pro.Confidence * 0.05
			sustained++
		}
		totalAdjustment += adj
		rulings = append(rulings, JudgeRuling{ClauseType: pro.ClauseType, Ruling: ruling, RiskAdjustment: adj})
	}

	var verdict Verdict
	switch {
	case sustained > 2*overruled && sustained > 0:
		verdict = VerdictHighRisk
	case sustained > overruled:
		verdict = VerdictModerateRisk
	default:
		verdict = VerdictAcceptable
	}

	return Transcript{
		ProsecutionArgs: prosecution,
		DefenseArgs:     defense,
		Rulings:         rulings,
		Verdict:         verdict,
		RiskAdjustment:  totalAdjustment,
	}
}

func severityFromWeight(w float64) Severity {
	switch {
	case w >= 0.8:
		return SeverityCritical
	case w >= 0.6:
		return SeverityHigh
	case w >= 0.4:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

func severityWeight(s Severity) float64 {
	switch s {
	case SeverityCritical:
		return 1.0
	case SeverityHigh:
		return 0.75
	case SeverityMedium:
		return 0.5
	default:
		return 0.25
	}
}

func topN(items []string, n int) []string {
	if len(items) > n {
		return append([]string{}, items[:n]...)
	}
	return append([]string{}, items...)
}

// wordOverlap is a simple Jaccard similarity over lowercase word sets,
// used to decide whether a clause's own language echoes the knowledge
// base's listed risk language even when the clause's taxonomy risk_weight
// is middling.
func wordOverlap(a, b string) float64 {
	wa := wordSet(a)
	wb := wordSet(b)
	if len(wa) == 0 || len(wb) == 0 {
		return 0
	}
	inter := 0
	for w := range wa {
		if wb[w] {
			inter++
		}
	}
	union := len(wa) + len(wb) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

func wordSet(s string) map[string]bool {
	out := map[string]bool{}
	for _, w := range strings.Fields(strings.ToLower(s)) {
		w = strings.Trim(w, ".,;:()\"'")
		if len(w) > 3 {
			out[w] = true
		}
	}
	return out
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

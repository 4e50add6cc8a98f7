// Package symbolic implements the V12 symbolic doctrine reasoner: a
// fixed set of doctrine rules evaluated against facts extracted from a
// V11 report, fused with the neural (V11) risk score by an adaptive
// blend. All rule patterns are compiled once at load time.
package symbolic

import (
	"regexp"
	"strings"

	"github.com/semaj90/legalrisk/clause"
)

// PredicateKind is the closed set of doctrine-rule precondition kinds.
type PredicateKind string

const (
	PredRequiresClause          PredicateKind = "requires_clause"
	PredRequiresClauseSecondary PredicateKind = "requires_clause_secondary"
	PredMissingClause           PredicateKind = "missing_clause"
	PredContractTypes           PredicateKind = "contract_types"
	PredRiskThreshold           PredicateKind = "risk_threshold"
	PredClausePattern           PredicateKind = "clause_pattern"
	PredClausePatternSecondary  PredicateKind = "clause_pattern_secondary"
	PredMissingPattern          PredicateKind = "missing_pattern"
)

// hard predicate kinds can abort a rule outright regardless of confidence.
var hardKinds = map[PredicateKind]bool{
	PredRequiresClause:          true,
	PredRequiresClauseSecondary: true,
	PredMissingClause:           true,
	PredMissingPattern:          true,
}

// Predicate is one precondition a rule ANDs against the facts.
type Predicate struct {
	Kind          PredicateKind
	ClauseType    clause.Type
	ContractTypes []string
	Threshold     float64
	Pattern       string

	compiled *regexp.Regexp // set by compile(), nil if Pattern unused or failed to compile
}

// Rule is one immutable doctrine rule.
type Rule struct {
	ID               string
	Family           string
	Severity         string
	RiskContribution float64
	Remedy           string
	Citation         string
	Preconditions    []Predicate
}

// Violation is a rule that fired against a given set of facts.
type Violation struct {
	RuleID           string  `json:"rule_id"`
	Family           string  `json:"family"`
	Severity         string  `json:"severity"`
	Confidence       float64 `json:"confidence"`
	RiskContribution float64 `json:"risk_contribution"`
	Remedy           string  `json:"remedy"`
	Citation         string  `json:"citation"`
}

// Facts is the V11-report-derived fact base the rules evaluate against.
type Facts struct {
	Present        map[clause.Type]bool
	ClauseText     map[clause.Type]string
	FullText       string
	ContractType   string
	RiskScore      float64 // 0-100
	ConflictCount  int
	PowerAsymmetry float64 // power_score, 0-100
}

// Verdict is the symbolic reasoner's output.
type Verdict struct {
	Violations       []Violation `json:"violations"`
	DoctrineCoverage float64     `json:"doctrine_coverage"`
	SymbolicRisk     float64     `json:"symbolic_risk"`
	NeuralRisk       float64     `json:"neural_risk"`
	FusedRisk        float64     `json:"fused_risk"`
	Alpha            float64     `json:"alpha"`
	ReasoningChain   []string    `json:"reasoning_chain"`
}

// Reasoner holds the precompiled rule set.
type Reasoner struct {
	rules []Rule
}

// New precompiles every clause_pattern/missing_pattern regex once, per the
// "compile all patterns at load time, cache per rule id" design note.
func New() *Reasoner {
	rules := make([]Rule, len(ruleTable))
	copy(rules, ruleTable)
	for i := range rules {
		for j := range rules[i].Preconditions {
			p := &rules[i].Preconditions[j]
			if p.Pattern == "" {
				continue
			}
			if re, err := regexp.Compile("(?i)" + p.Pattern); err == nil {
				p.compiled = re
			}
			// PatternRegexCompileError: compiled stays nil, evaluate falls
			// back to a case-insensitive substring match.
		}
	}
	return &Reasoner{rules: rules}
}

// Evaluate runs every rule against facts, derived from avgCalibratedConf
// (the report's mean calibrated_confidence, used by the adaptive blend)
// and neuralRisk (the V11 report's overall_risk_score).
func (r *Reasoner) Evaluate(facts Facts, avgCalibratedConf, neuralRisk float64) Verdict {
	var violations []Violation
	var chain []string
	fired := 0

	for _, rule := range r.rules {
		conf, hardFail := evalRule(rule, facts)
		if hardFail || conf < 0.7 {
			continue
		}
		fired++
		violations = append(violations, Violation{
			RuleID: rule.ID, Family: rule.Family, Severity: rule.Severity,
			Confidence: conf, RiskContribution: rule.RiskContribution,
			Remedy: rule.Remedy, Citation: rule.Citation,
		})
		chain = append(chain, rule.ID+": "+rule.Remedy)
	}

	var riskSum float64
	for _, v := range violations {
		riskSum += v.RiskContribution * v.Confidence
	}
	symbolicRisk := minF(95, 100*riskSum)

	alpha := clamp(0.5+0.4*(avgCalibratedConf-0.5)-0.15*minF(1, float64(fired)/10), 0.25, 0.75)
	fusedRisk := alpha*neuralRisk + (1-alpha)*symbolicRisk

	coverage := 0.0
	if len(r.rules) > 0 {
		coverage = float64(fired) / float64(len(r.rules))
	}

	return Verdict{
		Violations:       violations,
		DoctrineCoverage: coverage,
		SymbolicRisk:     symbolicRisk,
		NeuralRisk:       neuralRisk,
		FusedRisk:        fusedRisk,
		Alpha:            alpha,
		ReasoningChain:   chain,
	}
}

// evalRule returns the rule's confidence (satisfied/total over its
// declared predicates) and whether any hard predicate failed.
func evalRule(rule Rule, facts Facts) (confidence float64, hardFail bool) {
	if len(rule.Preconditions) == 0 {
		return 0, true
	}
	satisfied := 0
	for _, p := range rule.Preconditions {
		ok := evalPredicate(p, facts)
		if ok {
			satisfied++
		} else if hardKinds[p.Kind] {
			hardFail = true
		}
	}
	confidence = float64(satisfied) / float64(len(rule.Preconditions))
	return confidence, hardFail
}

func evalPredicate(p Predicate, facts Facts) bool {
	switch p.Kind {
	case PredRequiresClause, PredRequiresClauseSecondary:
		return facts.Present[p.ClauseType]
	case PredMissingClause:
		return !facts.Present[p.ClauseType]
	case PredContractTypes:
		for _, t := range p.ContractTypes {
			if t == facts.ContractType {
				return true
			}
		}
		return false
	case PredRiskThreshold:
		return facts.RiskScore >= p.Threshold*100
	case PredClausePattern, PredClausePatternSecondary:
		return matchesPattern(p, facts.FullText)
	case PredMissingPattern:
		return !matchesPattern(p, facts.FullText)
	default:
		return false
	}
}

func matchesPattern(p Predicate, text string) bool {
	if p.compiled != nil {
		return p.compiled.MatchString(text)
	}
	return strings.Contains(strings.ToLower(text), strings.ToLower(p.Pattern))
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

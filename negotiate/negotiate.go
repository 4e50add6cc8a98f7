// Package negotiate implements a clause-level negotiation playbook
// generator: per-clause-type analyzers compare flagged contract language
// against a jurisdiction/industry market-benchmark table and emit
// prioritized suggestions, which GeneratePlaybook rolls up into a
// recommended stance, a concession order, and walk-away triggers.
package negotiate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/semaj90/legalrisk/clause"
)

// Stance is the overall negotiating posture recommended for a contract.
type Stance string

const (
	StanceAggressive     Stance = "aggressive"
	StanceBalanced       Stance = "balanced"
	StanceProtective     Stance = "protective"
	StanceMarketStandard Stance = "market_standard"
)

// Mitigation is the kind of change a Suggestion proposes.
type Mitigation string

const (
	MitigationCapLiability     Mitigation = "cap_liability"
	MitigationAddCarveout      Mitigation = "add_carveout"
	MitigationNarrowScope      Mitigation = "narrow_scope"
	MitigationAddNotice        Mitigation = "add_notice"
	MitigationMutualObligation Mitigation = "mutual_obligation"
	MitigationSunsetClause     Mitigation = "sunset_clause"
)

// Priority buckets a Suggestion by how essential it is to the negotiation.
type Priority string

const (
	PriorityMustHave   Priority = "must-have"
	PriorityShouldHave Priority = "should-have"
	PriorityNiceToHave Priority = "nice-to-have"
)

// Difficulty estimates how contested one suggestion, or a whole playbook,
// is likely to be.
type Difficulty string

const (
	DifficultyEasy     Difficulty = "easy"
	DifficultyModerate Difficulty = "moderate"
	DifficultyHard     Difficulty = "hard"
)

// Benchmark is the market norm for one clause type in one
// jurisdiction/industry pair.
type Benchmark struct {
	ClauseType            clause.Type
	Jurisdiction          string
	Industry              string
	TypicalCapMultiplier  float64 // e.g. 1.0 = 1x annual fees
	TypicalDurationMonths int
	TypicalNoticeDays     int
	MutualRate            float64 // how often this clause is mutual (0-1)
	CarveoutRate          float64 // how often carveouts exist (0-1)
	StandardLanguage      string
	AggressiveLanguage    string
	ProtectiveLanguage    string
}

// Suggestion is a single concrete negotiation move for one clause.
type Suggestion struct {
	ClauseType            clause.Type `json:"clause_type"`
	CurrentText           string      `json:"current_text"`
	SuggestedText         string      `json:"suggested_text"`
	Mitigation            Mitigation  `json:"mitigation_type"`
	Rationale             string      `json:"rationale"`
	MarketComparison      string      `json:"market_comparison"`
	RiskReduction         int         `json:"risk_reduction"`
	NegotiationDifficulty Difficulty  `json:"negotiation_difficulty"`
	Priority              Priority    `json:"priority"`
}

// Playbook is the complete negotiation plan for a contract.
type Playbook struct {
	ContractID          string       `json:"contract_id"`
	YourPosition        string       `json:"your_position"`      // "buyer", "seller", "licensor", ...
	CounterpartyPower   float64      `json:"counterparty_power"` // -1..1, negative = you have power
	RecommendedStance   Stance       `json:"recommended_stance"`
	MustHave            []Suggestion `json:"must_have"`
	ShouldHave          []Suggestion `json:"should_have"`
	NiceToHave          []Suggestion `json:"nice_to_have"`
	WalkAwayTriggers    []string     `json:"walk_away_triggers"`
	ConcessionOrder     []string     `json:"concession_order"` // what to give up first
	TotalRiskReduction  int          `json:"total_risk_reduction"`
	EstimatedDifficulty Difficulty   `json:"estimated_difficulty"`
}

// benchmarks is the built-in market-norm table, keyed by
// clause_type:jurisdiction:industry.
var benchmarks = map[string]Benchmark{
	"limitation_of_liability:US:technology": {
		ClauseType: clause.LimitationOfLiability, Jurisdiction: "US", Industry: "technology",
		TypicalCapMultiplier: 1.0, TypicalDurationMonths: 12, TypicalNoticeDays: 0,
		MutualRate: 0.7, CarveoutRate: 0.85,
		StandardLanguage:   "Liability shall not exceed fees paid in the 12 months preceding the claim.",
		AggressiveLanguage: "IN NO EVENT SHALL [PARTY]'S LIABILITY EXCEED THE FEES PAID HEREUNDER.",
		ProtectiveLanguage: "Liability shall not exceed fees paid in the 12 months preceding the claim, except for (i) indemnification obligations, (ii) gross negligence or willful misconduct, and (iii) breach of confidentiality.",
	},
	"indemnification:US:technology": {
		ClauseType: clause.Indemnification, Jurisdiction: "US", Industry: "technology",
		TypicalCapMultiplier: 0, TypicalDurationMonths: 36, TypicalNoticeDays: 30,
		MutualRate: 0.6, CarveoutRate: 0.4,
		StandardLanguage:   "Each party shall indemnify the other from third-party claims arising from its breach of this Agreement.",
		AggressiveLanguage: "Customer shall indemnify Provider from any and all claims arising from Customer's use of the Services.",
		ProtectiveLanguage: "Provider shall indemnify Customer from third-party IP infringement claims. Customer's indemnification limited to claims arising from Customer's data or willful misconduct.",
	},
	"termination:US:technology": {
		ClauseType: clause.Termination, Jurisdiction: "US", Industry: "technology",
		TypicalCapMultiplier: 0, TypicalDurationMonths: 0, TypicalNoticeDays: 30,
		MutualRate: 0.9, CarveoutRate: 0.5,
		StandardLanguage:   "Either party may terminate for convenience upon 30 days written notice.",
		AggressiveLanguage: "Provider may terminate immediately upon Customer's breach. Customer may terminate only upon 90 days notice.",
		ProtectiveLanguage: "Either party may terminate for convenience upon 30 days notice. Either party may terminate immediately if the other materially breaches and fails to cure within 30 days.",
	},
	"intellectual_property:US:technology": {
		ClauseType: clause.IntellectualProperty, Jurisdiction: "US", Industry: "technology",
		TypicalCapMultiplier: 0, TypicalDurationMonths: 0, TypicalNoticeDays: 0,
		MutualRate: 0.2, CarveoutRate: 0.7,
		StandardLanguage:   "Pre-existing IP remains with originating party. Work product jointly owned or licensed.",
		AggressiveLanguage: "All work product, including derivative works, shall be owned exclusively by [PARTY].",
		ProtectiveLanguage: "Pre-existing IP remains with originating party. Customer-specific deliverables owned by Customer. Provider retains rights to general knowledge and pre-existing tools.",
	},
	"data_protection:EU:technology": {
		ClauseType: clause.DataProtection, Jurisdiction: "EU", Industry: "technology",
		TypicalCapMultiplier: 2.0, TypicalDurationMonths: 0, TypicalNoticeDays: 72,
		MutualRate: 0.3, CarveoutRate: 0.9,
		StandardLanguage:   "Processor shall process personal data in accordance with GDPR and Controller's instructions.",
		AggressiveLanguage: "Customer bears all responsibility for data protection compliance.",
		ProtectiveLanguage: "Processor shall implement appropriate technical and organizational measures. Processor shall notify Controller within 72 hours of any personal data breach. Sub-processors require prior written consent.",
	},
}

func benchmarkKey(ct clause.Type, jurisdiction, industry string) string {
	return fmt.Sprintf("%s:%s:%s", ct, jurisdiction, industry)
}

func benchmarkFor(ct clause.Type, jurisdiction, industry string) (Benchmark, bool) {
	if b, ok := benchmarks[benchmarkKey(ct, jurisdiction, industry)]; ok {
		return b, true
	}
	b, ok := benchmarks[benchmarkKey(ct, "US", "technology")]
	return b, ok
}

var (
	uncappedRe     = regexp.MustCompile(`unlimited`)
	capPresentRe   = regexp.MustCompile(`not exceed|cap|limit`)
	carveoutRe     = regexp.MustCompile(`except|carve.?out|exclude`)
	mutualRe       = regexp.MustCompile(`each party|mutual|reciprocal|both parties`)
	noticeRe       = regexp.MustCompile(`notice`)
	cureRe         = regexp.MustCompile(`cure|remedy`)
	providerOnlyRe = regexp.MustCompile(`provider may terminate`)
	customerTermRe = regexp.MustCompile(`customer may terminate`)
	exclusiveIPRe  = regexp.MustCompile(`exclusively|all rights`)
	soleDiscRe     = regexp.MustCompile(`sole discretion`)
	perpetualRe    = regexp.MustCompile(`perpetual|forever`)
)

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// Negotiator analyzes clauses and generates negotiation playbooks against
// the built-in benchmark table.
type Negotiator struct{}

// New returns a Negotiator. Stateless (the benchmark table is a package
// constant), so a single instance is safe to share and reuse.
func New() *Negotiator { return &Negotiator{} }

// AnalyzeClause generates negotiation suggestions for one clause against
// its jurisdiction/industry market benchmark, falling back to the
// US/technology benchmark for that clause type when no exact match exists.
// Returns nil if no benchmark at all is known for ct.
func (n *Negotiator) AnalyzeClause(text string, ct clause.Type, jurisdiction, industry string) []Suggestion {
	bm, ok := benchmarkFor(ct, jurisdiction, industry)
	if !ok {
		return nil
	}

	var suggestions []Suggestion
	switch ct {
	case clause.LimitationOfLiability:
		suggestions = append(suggestions, analyzeLiabilityCap(text, bm)...)
	case clause.Indemnification:
		suggestions = append(suggestions, analyzeIndemnification(text, bm)...)
	case clause.Termination:
		suggestions = append(suggestions, analyzeTermination(text, bm)...)
	case clause.IntellectualProperty:
		suggestions = append(suggestions, analyzeIPOwnership(text, bm)...)
	}
	suggestions = append(suggestions, genericImprovements(text, ct, bm)...)
	return suggestions
}

func analyzeLiabilityCap(text string, bm Benchmark) []Suggestion {
	var out []Suggestion
	lower := strings.ToLower(text)

	if uncappedRe.MatchString(lower) || !capPresentRe.MatchString(lower) {
		out = append(out, Suggestion{
			ClauseType: clause.LimitationOfLiability, CurrentText: truncate(text, 200),
			SuggestedText: bm.ProtectiveLanguage, Mitigation: MitigationCapLiability,
			Rationale:             "Liability appears uncapped, which exposes you to unlimited risk.",
			MarketComparison:      fmt.Sprintf("Market standard is %gx annual fees.", bm.TypicalCapMultiplier),
			RiskReduction:         25,
			NegotiationDifficulty: DifficultyModerate,
			Priority:              PriorityMustHave,
		})
	}
	if bm.CarveoutRate > 0.5 && !carveoutRe.MatchString(lower) {
		out = append(out, Suggestion{
			ClauseType: clause.LimitationOfLiability, CurrentText: truncate(text, 200),
			SuggestedText:         "Add: 'except for (i) indemnification obligations, (ii) gross negligence or willful misconduct, (iii) breach of confidentiality, and (iv) IP infringement'",
			Mitigation:            MitigationAddCarveout,
			Rationale:             fmt.Sprintf("%d%% of market contracts include carveouts for serious breaches.", int(bm.CarveoutRate*100)),
			MarketComparison:      "Standard practice to exclude willful misconduct and IP from caps.",
			RiskReduction:         15,
			NegotiationDifficulty: DifficultyEasy,
			Priority:              PriorityShouldHave,
		})
	}
	return out
}

func analyzeIndemnification(text string, bm Benchmark) []Suggestion {
	var out []Suggestion
	lower := strings.ToLower(text)

	if !mutualRe.MatchString(lower) && bm.MutualRate > 0.5 {
		out = append(out, Suggestion{
			ClauseType: clause.Indemnification, CurrentText: truncate(text, 200),
			SuggestedText: bm.StandardLanguage, Mitigation: MitigationMutualObligation,
			Rationale:             "Indemnification is one-sided. Market standard is mutual.",
			MarketComparison:      fmt.Sprintf("%d%% of market contracts have mutual indemnification.", int(bm.MutualRate*100)),
			RiskReduction:         20,
			NegotiationDifficulty: DifficultyModerate,
			Priority:              PriorityMustHave,
		})
	}
	if !noticeRe.MatchString(lower) && bm.TypicalNoticeDays > 0 {
		out = append(out, Suggestion{
			ClauseType: clause.Indemnification, CurrentText: truncate(text, 200),
			SuggestedText:         fmt.Sprintf("Add: 'The indemnifying party shall be notified within %d days of any claim.'", bm.TypicalNoticeDays),
			Mitigation:            MitigationAddNotice,
			Rationale:             "No notice requirement for claims reduces your ability to respond.",
			MarketComparison:      fmt.Sprintf("Standard is %d-day notice requirement.", bm.TypicalNoticeDays),
			RiskReduction:         10,
			NegotiationDifficulty: DifficultyEasy,
			Priority:              PriorityShouldHave,
		})
	}
	return out
}

func analyzeTermination(text string, bm Benchmark) []Suggestion {
	var out []Suggestion
	lower := strings.ToLower(text)

	if !cureRe.MatchString(lower) {
		out = append(out, Suggestion{
			ClauseType: clause.Termination, CurrentText: truncate(text, 200),
			SuggestedText:         "Add: 'and fails to cure within 30 days of written notice'",
			Mitigation:            MitigationAddNotice,
			Rationale:             "No cure period means immediate termination on any breach.",
			MarketComparison:      "Standard practice is 30-day cure period for material breaches.",
			RiskReduction:         15,
			NegotiationDifficulty: DifficultyEasy,
			Priority:              PriorityMustHave,
		})
	}
	if providerOnlyRe.MatchString(lower) && !customerTermRe.MatchString(lower) {
		out = append(out, Suggestion{
			ClauseType: clause.Termination, CurrentText: truncate(text, 200),
			SuggestedText: bm.ProtectiveLanguage, Mitigation: MitigationMutualObligation,
			Rationale:             "Termination rights are asymmetric - only provider can terminate.",
			MarketComparison:      fmt.Sprintf("%d%% of contracts have symmetric termination.", int(bm.MutualRate*100)),
			RiskReduction:         20,
			NegotiationDifficulty: DifficultyModerate,
			Priority:              PriorityMustHave,
		})
	}
	return out
}

func analyzeIPOwnership(text string, bm Benchmark) []Suggestion {
	var out []Suggestion
	lower := strings.ToLower(text)

	if exclusiveIPRe.MatchString(lower) {
		out = append(out, Suggestion{
			ClauseType: clause.IntellectualProperty, CurrentText: truncate(text, 200),
			SuggestedText: bm.ProtectiveLanguage, Mitigation: MitigationNarrowScope,
			Rationale:             "Broad IP assignment may include your pre-existing IP.",
			MarketComparison:      "Standard: Pre-existing IP remains with originating party.",
			RiskReduction:         20,
			NegotiationDifficulty: DifficultyModerate,
			Priority:              PriorityMustHave,
		})
	}
	return out
}

func genericImprovements(text string, ct clause.Type, bm Benchmark) []Suggestion {
	var out []Suggestion
	lower := strings.ToLower(text)

	if soleDiscRe.MatchString(lower) {
		out = append(out, Suggestion{
			ClauseType: ct, CurrentText: truncate(text, 200),
			SuggestedText:         "Replace 'sole discretion' with 'reasonable discretion'",
			Mitigation:            MitigationNarrowScope,
			Rationale:             "'Sole discretion' allows arbitrary decisions without recourse.",
			MarketComparison:      "Best practice: 'reasonable discretion' or specific criteria.",
			RiskReduction:         10,
			NegotiationDifficulty: DifficultyEasy,
			Priority:              PriorityShouldHave,
		})
	}
	if perpetualRe.MatchString(lower) {
		out = append(out, Suggestion{
			ClauseType: ct, CurrentText: truncate(text, 200),
			SuggestedText:         fmt.Sprintf("Add sunset clause: 'This obligation shall survive for %d months following termination.'", bm.TypicalDurationMonths),
			Mitigation:            MitigationSunsetClause,
			Rationale:             "Perpetual obligations create indefinite exposure.",
			MarketComparison:      fmt.Sprintf("Market standard survival is %d months.", bm.TypicalDurationMonths),
			RiskReduction:         10,
			NegotiationDifficulty: DifficultyModerate,
			Priority:              PriorityNiceToHave,
		})
	}
	return out
}

// GeneratePlaybook builds a complete negotiation playbook for a contract's
// classified clauses. counterpartyPower (-1..1, negative meaning you hold
// the power) drives the recommended stance; pass the social-structure
// asymmetry a frontier analysis or the power analyzer produced, or 0 if
// none is available.
func (n *Negotiator) GeneratePlaybook(contractID string, classified []clause.Classified, jurisdiction, industry, yourPosition string, counterpartyPower float64) Playbook {
	var all []Suggestion
	for _, c := range classified {
		all = append(all, n.AnalyzeClause(c.Text, c.Type, jurisdiction, industry)...)
	}

	var mustHave, shouldHave, niceToHave []Suggestion
	for _, s := range all {
		switch s.Priority {
		case PriorityMustHave:
			mustHave = append(mustHave, s)
		case PriorityShouldHave:
			shouldHave = append(shouldHave, s)
		case PriorityNiceToHave:
			niceToHave = append(niceToHave, s)
		}
	}

	stance := StanceBalanced
	switch {
	case counterpartyPower > 0.5:
		stance = StanceProtective
	case counterpartyPower < -0.5:
		stance = StanceAggressive
	}

	var totalReduction int
	for _, s := range all {
		totalReduction += s.RiskReduction
	}

	var walkAway []string
	for _, s := range mustHave {
		if s.ClauseType == clause.LimitationOfLiability {
			walkAway = append(walkAway, "Refusal to add any liability cap")
			break
		}
	}
	for _, s := range mustHave {
		if s.ClauseType == clause.Indemnification && strings.Contains(strings.ToLower(s.Rationale), "one-sided") {
			walkAway = append(walkAway, "Completely one-sided indemnification with no reciprocity")
			break
		}
	}

	var concessionOrder []string
	for _, s := range niceToHave {
		concessionOrder = append(concessionOrder, string(s.ClauseType))
	}
	for _, s := range shouldHave {
		concessionOrder = append(concessionOrder, string(s.ClauseType))
	}
	if len(concessionOrder) > 5 {
		concessionOrder = concessionOrder[:5]
	}

	difficulty := DifficultyEasy
	switch {
	case len(mustHave) > 5:
		difficulty = DifficultyHard
	case len(mustHave) > 2:
		difficulty = DifficultyModerate
	}

	return Playbook{
		ContractID:          contractID,
		YourPosition:        yourPosition,
		CounterpartyPower:   counterpartyPower,
		RecommendedStance:   stance,
		MustHave:            mustHave,
		ShouldHave:          shouldHave,
		NiceToHave:          niceToHave,
		WalkAwayTriggers:    walkAway,
		ConcessionOrder:     concessionOrder,
		TotalRiskReduction:  totalReduction,
		EstimatedDifficulty: difficulty,
	}
}

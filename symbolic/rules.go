package symbolic

import "github.com/semaj90/legalrisk/clause"

func requires(t clause.Type) Predicate { return Predicate{Kind: PredRequiresClause, ClauseType: t} }
func requiresSecondary(t clause.Type) Predicate {
	return Predicate{Kind: PredRequiresClauseSecondary, ClauseType: t}
}
func missingClause(t clause.Type) Predicate { return Predicate{Kind: PredMissingClause, ClauseType: t} }
func contractTypes(ts ...string) Predicate {
	return Predicate{Kind: PredContractTypes, ContractTypes: ts}
}
func riskAbove(threshold float64) Predicate {
	return Predicate{Kind: PredRiskThreshold, Threshold: threshold}
}
func pattern(p string) Predicate { return Predicate{Kind: PredClausePattern, Pattern: p} }
func patternSecondary(p string) Predicate {
	return Predicate{Kind: PredClausePatternSecondary, Pattern: p}
}
func missingPattern(p string) Predicate { return Predicate{Kind: PredMissingPattern, Pattern: p} }

// ruleTable is the 48-rule fixed doctrine catalog, grouped by family.
// Every rule is data, not control flow, like the other taxonomy and
// catalog tables in this engine.
var ruleTable = []Rule{
	// --- proportionality ---
	{ID: "PROP-001", Family: "proportionality", Severity: "critical", RiskContribution: 0.55,
		Remedy:        "Add a limitation of liability clause capping indemnification exposure.",
		Citation:      "Restatement (Second) of Contracts §356",
		Preconditions: []Predicate{requires(clause.Indemnification), missingClause(clause.LimitationOfLiability)}},
	{ID: "PROP-002", Family: "proportionality", Severity: "high", RiskContribution: 0.40,
		Remedy:   "Cap liability proportionally to contract value rather than leaving it uncapped.",
		Citation: "UCC §2-719", Preconditions: []Predicate{requires(clause.LimitationOfLiability), pattern(`unlimited|without limit|no cap`)}},
	{ID: "PROP-003", Family: "proportionality", Severity: "medium", RiskContribution: 0.30,
		Remedy:   "Scale insurance coverage to the indemnification exposure it is meant to back.",
		Citation: "ISO CGL Form Commentary", Preconditions: []Predicate{requires(clause.Indemnification), missingClause(clause.Insurance)}},
	{ID: "PROP-004", Family: "proportionality", Severity: "medium", RiskContribution: 0.25,
		Remedy:        "Tie the penalty or liquidated damages figure to a reasonable estimate of harm.",
		Citation:      "Restatement (Second) of Contracts §356",
		Preconditions: []Predicate{pattern(`liquidated damages`), riskAbove(0.5)}},
	{ID: "PROP-005", Family: "proportionality", Severity: "high", RiskContribution: 0.35,
		Remedy:        "Bound the non-compete's duration and geography to what the relationship actually justifies.",
		Citation:      "Restatement (Second) of Contracts §188",
		Preconditions: []Predicate{requires(clause.NonCompete), missingPattern(`geograph|territor`)}},

	// --- good-faith ---
	{ID: "GF-001", Family: "good-faith", Severity: "high", RiskContribution: 0.40,
		Remedy:   "Condition termination-for-convenience on reasonable notice rather than immediate effect.",
		Citation: "UCC §1-304", Preconditions: []Predicate{requires(clause.Termination), pattern(`sole discretion`), missingPattern(`notice period|days.? written notice`)}},
	{ID: "GF-002", Family: "good-faith", Severity: "medium", RiskContribution: 0.25,
		Remedy:        "Require good-faith negotiation or escalation before invoking dispute resolution.",
		Citation:      "Restatement (Second) of Contracts §205",
		Preconditions: []Predicate{requires(clause.DisputeResolution), missingPattern(`good faith|good-faith`)}},
	{ID: "GF-003", Family: "good-faith", Severity: "medium", RiskContribution: 0.25,
		Remedy:   "Add a cure period before termination for breach, consistent with good-faith performance.",
		Citation: "UCC §1-304", Preconditions: []Predicate{requires(clause.Termination), missingPattern(`cure|opportunity to remedy`)}},
	{ID: "GF-004", Family: "good-faith", Severity: "low", RiskContribution: 0.15,
		Remedy:        "Apply the audit right reasonably, not as a pretext for harassment.",
		Citation:      "Restatement (Second) of Contracts §205",
		Preconditions: []Predicate{requires(clause.AuditRights), missingPattern(`reasonable`)}},
	{ID: "GF-005", Family: "good-faith", Severity: "medium", RiskContribution: 0.30,
		Remedy:   "Avoid open-ended sole-discretion pricing changes; require advance notice.",
		Citation: "UCC §2-305", Preconditions: []Predicate{requires(clause.PaymentTerms), pattern(`sole discretion`)}},

	// --- gap-filling ---
	{ID: "GAP-001", Family: "gap-filling", Severity: "high", RiskContribution: 0.35,
		Remedy:        "Add a governing law clause to avoid conflict-of-laws uncertainty.",
		Citation:      "Restatement (Second) of Conflict of Laws §187",
		Preconditions: []Predicate{missingClause(clause.GoverningLaw)}},
	{ID: "GAP-002", Family: "gap-filling", Severity: "medium", RiskContribution: 0.25,
		Remedy:        "Add a dispute resolution clause specifying forum and procedure.",
		Citation:      "Restatement (Second) of Contracts §178",
		Preconditions: []Predicate{missingClause(clause.DisputeResolution)}},
	{ID: "GAP-003", Family: "gap-filling", Severity: "high", RiskContribution: 0.30,
		Remedy:   "Add explicit payment terms rather than relying on a reasonable-price gap-filler.",
		Citation: "UCC §2-305", Preconditions: []Predicate{missingClause(clause.PaymentTerms)}},
	{ID: "GAP-004", Family: "gap-filling", Severity: "medium", RiskContribution: 0.20,
		Remedy:        "Add a termination clause rather than relying on indefinite-term default rules.",
		Citation:      "Restatement (Second) of Contracts §33",
		Preconditions: []Predicate{missingClause(clause.Termination)}},
	{ID: "GAP-005", Family: "gap-filling", Severity: "medium", RiskContribution: 0.25,
		Remedy:        "Add a confidentiality clause; trade secret protection should not rely solely on common law.",
		Citation:      "Uniform Trade Secrets Act §1",
		Preconditions: []Predicate{requires(clause.IntellectualProperty), missingClause(clause.Confidentiality)}},
	{ID: "GAP-006", Family: "gap-filling", Severity: "low", RiskContribution: 0.15,
		Remedy:   "Add a force majeure clause to allocate the risk of supervening events.",
		Citation: "UCC §2-615", Preconditions: []Predicate{missingClause(clause.ForceMajeure), contractTypes("msa", "saas_agreement", "licensing_agreement")}},
	{ID: "GAP-007", Family: "gap-filling", Severity: "medium", RiskContribution: 0.25,
		Remedy:   "Add a data protection clause given the data processing this agreement contemplates.",
		Citation: "GDPR Art. 28", Preconditions: []Predicate{contractTypes("saas_agreement"), missingClause(clause.DataProtection)}},
	{ID: "GAP-008", Family: "gap-filling", Severity: "low", RiskContribution: 0.15,
		Remedy:        "Add an assignment clause to address successor and change-of-control scenarios.",
		Citation:      "Restatement (Second) of Contracts §317",
		Preconditions: []Predicate{missingClause(clause.Assignment), contractTypes("msa")}},

	// --- unconscionability ---
	{ID: "UNC-001", Family: "unconscionability", Severity: "critical", RiskContribution: 0.50,
		Remedy:   "Remove or narrow the unilateral sole-discretion amendment right.",
		Citation: "UCC §2-302", Preconditions: []Predicate{pattern(`amend.{0,20}sole discretion|modify.{0,20}sole discretion`)}},
	{ID: "UNC-002", Family: "unconscionability", Severity: "high", RiskContribution: 0.40,
		Remedy:   "Cross-reference the liability waiver against applicable consumer-protection limits.",
		Citation: "UCC §2-302", Preconditions: []Predicate{pattern(`waives any right|waiver of all claims`)}},
	{ID: "UNC-003", Family: "unconscionability", Severity: "high", RiskContribution: 0.35,
		Remedy:   "Replace perpetual, irrevocable grants with a bounded term or license-back.",
		Citation: "UCC §2-302", Preconditions: []Predicate{requires(clause.IntellectualProperty), pattern(`perpetual and irrevocable|irrevocably assigns`)}},
	{ID: "UNC-004", Family: "unconscionability", Severity: "medium", RiskContribution: 0.30,
		Remedy:        "Narrow the non-compete to a defensible scope and duration.",
		Citation:      "Restatement (Second) of Contracts §188",
		Preconditions: []Predicate{requires(clause.NonCompete), pattern(`worldwide|any business`)}},
	{ID: "UNC-005", Family: "unconscionability", Severity: "high", RiskContribution: 0.40,
		Remedy:        "Balance the termination right; a one-sided termination-for-convenience is a bargaining-power red flag.",
		Citation:      "UCC §2-302",
		Preconditions: []Predicate{requires(clause.Termination), pattern(`at any time without cause`), riskAbove(0.4)}},

	// --- interpretation ---
	{ID: "INT-001", Family: "interpretation", Severity: "medium", RiskContribution: 0.20,
		Remedy:        "Add a definitions section or cross-reference to resolve ambiguous defined terms.",
		Citation:      "Restatement (Second) of Contracts §202",
		Preconditions: []Predicate{pattern(`as defined below|as defined herein`), missingPattern(`"[A-Z][a-zA-Z]+"\s+means`)}},
	{ID: "INT-002", Family: "interpretation", Severity: "low", RiskContribution: 0.15,
		Remedy:        "Add an order-of-precedence clause for conflicting documents.",
		Citation:      "Restatement (Second) of Contracts §203",
		Preconditions: []Predicate{pattern(`exhibit|schedule|attachment`), missingPattern(`order of precedence|conflict between`)}},
	{ID: "INT-003", Family: "interpretation", Severity: "medium", RiskContribution: 0.20,
		Remedy:        "Clarify whether notice periods are calendar or business days.",
		Citation:      "Restatement (Second) of Contracts §202",
		Preconditions: []Predicate{pattern(`\d+\s+days`), missingPattern(`business days|calendar days`)}},
	{ID: "INT-004", Family: "interpretation", Severity: "low", RiskContribution: 0.15,
		Remedy:   "State explicitly whether remedies are exclusive or cumulative.",
		Citation: "UCC §2-719", Preconditions: []Predicate{requires(clause.LimitationOfLiability), missingPattern(`exclusive remedy|cumulative`)}},
	{ID: "INT-005", Family: "interpretation", Severity: "medium", RiskContribution: 0.20,
		Remedy:        "Specify the standard of materiality used for material breach determinations.",
		Citation:      "Restatement (Second) of Contracts §241",
		Preconditions: []Predicate{requires(clause.Termination), pattern(`material breach`), missingPattern(`material breach.{0,60}means|constitutes a material breach`)}},

	// --- public-policy ---
	{ID: "PP-001", Family: "public-policy", Severity: "critical", RiskContribution: 0.45,
		Remedy:        "Narrow the non-compete; several jurisdictions treat broad non-competes as void as against public policy.",
		Citation:      "Cal. Bus. & Prof. Code §16600",
		Preconditions: []Predicate{requires(clause.NonCompete), contractTypes("employment_agreement")}},
	{ID: "PP-002", Family: "public-policy", Severity: "high", RiskContribution: 0.35,
		Remedy:        "Carve out gross negligence and willful misconduct from any liability waiver.",
		Citation:      "Restatement (Second) of Torts §496B",
		Preconditions: []Predicate{requires(clause.LimitationOfLiability), missingPattern(`gross negligence|willful misconduct`)}},
	{ID: "PP-003", Family: "public-policy", Severity: "medium", RiskContribution: 0.25,
		Remedy:        "Confirm the arbitration clause doesn't waive statutory rights that cannot be waived.",
		Citation:      "AT&T Mobility v. Concepcion, 563 U.S. 333 (2011)",
		Preconditions: []Predicate{requires(clause.DisputeResolution), pattern(`arbitration`), pattern(`waive`)}},
	{ID: "PP-004", Family: "public-policy", Severity: "high", RiskContribution: 0.35,
		Remedy:   "Ensure data protection terms meet the minimum standard of the applicable regulatory regime.",
		Citation: "GDPR Art. 5", Preconditions: []Predicate{requires(clause.DataProtection), missingPattern(`appropriate technical and organi`)}},
	{ID: "PP-005", Family: "public-policy", Severity: "medium", RiskContribution: 0.25,
		Remedy:   "Avoid contracting around mandatory consumer-protection disclosure requirements.",
		Citation: "FTC Act §5", Preconditions: []Predicate{contractTypes("saas_agreement"), missingClause(clause.DataProtection)}},

	// --- formation ---
	{ID: "FORM-001", Family: "formation", Severity: "critical", RiskContribution: 0.40,
		Remedy:        "Add consideration language or a recital establishing mutual exchange of value.",
		Citation:      "Restatement (Second) of Contracts §71",
		Preconditions: []Predicate{missingPattern(`in consideration of|consideration of the mutual`)}},
	{ID: "FORM-002", Family: "formation", Severity: "high", RiskContribution: 0.30,
		Remedy:        "Add an entire-agreement (integration) clause to avoid parol evidence disputes.",
		Citation:      "Restatement (Second) of Contracts §209",
		Preconditions: []Predicate{missingPattern(`entire agreement|integration clause`)}},
	{ID: "FORM-003", Family: "formation", Severity: "medium", RiskContribution: 0.20,
		Remedy:        "Add a severability clause so an unenforceable provision doesn't void the whole agreement.",
		Citation:      "Restatement (Second) of Contracts §184",
		Preconditions: []Predicate{missingPattern(`severability|severable`)}},
	{ID: "FORM-004", Family: "formation", Severity: "medium", RiskContribution: 0.20,
		Remedy:   "Require amendments in a signed writing to avoid informal-modification disputes.",
		Citation: "UCC §2-209", Preconditions: []Predicate{missingPattern(`writing signed by|written amendment`)}},
	{ID: "FORM-005", Family: "formation", Severity: "low", RiskContribution: 0.15,
		Remedy:   "Add a counterparts clause to support electronic and remote execution.",
		Citation: "UETA §7", Preconditions: []Predicate{missingPattern(`counterparts|electronic signature`)}},
	{ID: "FORM-006", Family: "formation", Severity: "medium", RiskContribution: 0.20,
		Remedy:        "Confirm signatory authority is represented for both parties.",
		Citation:      "Restatement (Second) of Agency §140",
		Preconditions: []Predicate{requires(clause.Warranty), missingPattern(`full right and authority|authorized to execute`)}},

	// --- cross-family composite risk flags ---
	{ID: "PROP-006", Family: "proportionality", Severity: "high", RiskContribution: 0.35,
		Remedy:   "High-risk contracts should carry audit rights proportional to the exposure being accepted.",
		Citation: "ISO 27001 Annex A.15", Preconditions: []Predicate{riskAbove(0.6), missingClause(clause.AuditRights)}},
	{ID: "GF-006", Family: "good-faith", Severity: "low", RiskContribution: 0.15,
		Remedy:        "State the standard for reasonable withholding of consent on assignment.",
		Citation:      "Restatement (Second) of Contracts §205",
		Preconditions: []Predicate{requires(clause.Assignment), missingPattern(`not to be unreasonably withheld`)}},
	{ID: "GAP-009", Family: "gap-filling", Severity: "low", RiskContribution: 0.15,
		Remedy:        "Add a notices clause specifying valid delivery methods and addresses.",
		Citation:      "Restatement (Second) of Contracts §205",
		Preconditions: []Predicate{missingPattern(`notices? (?:required|permitted) (?:under|by) this Agreement|notice address`)}},
	{ID: "UNC-006", Family: "unconscionability", Severity: "medium", RiskContribution: 0.25,
		Remedy:   "Ensure the audit cost allocation doesn't fall entirely on one party regardless of findings.",
		Citation: "UCC §2-302", Preconditions: []Predicate{requires(clause.AuditRights), pattern(`at the other party.?s expense`)}},
	{ID: "INT-006", Family: "interpretation", Severity: "low", RiskContribution: 0.15,
		Remedy:        "Specify the currency for all monetary figures.",
		Citation:      "Restatement (Second) of Contracts §202",
		Preconditions: []Predicate{requires(clause.PaymentTerms), missingPattern(`USD|EUR|GBP|dollars|euros`)}},
	{ID: "PP-006", Family: "public-policy", Severity: "medium", RiskContribution: 0.25,
		Remedy:   "Confirm export-control and sanctions compliance language for cross-border licensing.",
		Citation: "EAR 15 C.F.R. §730", Preconditions: []Predicate{contractTypes("licensing_agreement"), missingPattern(`export control|sanctions`)}},
	{ID: "FORM-007", Family: "formation", Severity: "low", RiskContribution: 0.15,
		Remedy:        "Add a waiver clause so a failure to enforce one breach doesn't waive future enforcement.",
		Citation:      "Restatement (Second) of Contracts §84",
		Preconditions: []Predicate{missingPattern(`failure to enforce|no waiver`)}},
	{ID: "PROP-007", Family: "proportionality", Severity: "medium", RiskContribution: 0.25,
		Remedy:        "Tie insurance coverage limits to a defined minimum rather than leaving them unstated.",
		Citation:      "ISO CGL Form Commentary",
		Preconditions: []Predicate{requires(clause.Insurance), missingPattern(`\$[\d,]+|minimum coverage`)}},
	{ID: "GAP-010", Family: "gap-filling", Severity: "low", RiskContribution: 0.15,
		Remedy:        "Add a survival clause identifying which obligations continue after termination.",
		Citation:      "Restatement (Second) of Contracts §236",
		Preconditions: []Predicate{requires(clause.Confidentiality), requiresSecondary(clause.Termination), missingPattern(`survive|survival`)}},
}

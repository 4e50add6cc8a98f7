package rewrite

import "github.com/semaj90/legalrisk/clause"

// defaultBank is a small fixed set of curated clause templates used when
// no caller-supplied bank is given. risk_score is this template's own
// residual risk (lower is safer); level is an informal drafting posture
// label used only as an optional retrieval filter.
var defaultBank = []Template{
	{
		ID: "indemnification-mutual-01", Type: clause.Indemnification, Level: "balanced", RiskScore: 35, Jurisdiction: "US-generic",
		Text: "Each party shall indemnify, defend, and hold harmless the other party from and against third-party claims " +
			"arising out of its own breach of this Agreement, negligence, or willful misconduct, subject to the " +
			"limitation of liability set forth herein.",
		Explanation: "Mutual indemnification scoped to each party's own conduct, capped by the liability limitation.",
	},
	{
		ID: "indemnification-capped-01", Type: clause.Indemnification, Level: "conservative", RiskScore: 20, Jurisdiction: "US-generic",
		Text: "Each party's indemnification obligations under this Agreement shall not exceed the aggregate fees paid " +
			"under this Agreement in the twelve (12) months preceding the claim.",
		Explanation: "Ties indemnification exposure to a cap proportional to contract value.",
	},
	{
		ID: "liability-mutual-cap-01", Type: clause.LimitationOfLiability, Level: "balanced", RiskScore: 30, Jurisdiction: "US-generic",
		Text: "Except for breaches of confidentiality, indemnification obligations, or willful misconduct, neither " +
			"party's aggregate liability arising out of this Agreement shall exceed the fees paid in the twelve (12) " +
			"months preceding the event giving rise to the claim.",
		Explanation: "Standard mutual cap with carve-outs for the claims that most need to survive it.",
	},
	{
		ID: "liability-strict-cap-01", Type: clause.LimitationOfLiability, Level: "conservative", RiskScore: 15, Jurisdiction: "US-generic",
		Text: "Neither party's aggregate liability arising out of this Agreement shall in any event exceed the fees " +
			"paid in the three (3) months preceding the event giving rise to the claim, with no carve-outs.",
		Explanation: "Tightest defensible cap; appropriate where the submitting party bears most downstream risk.",
	},
	{
		ID: "termination-balanced-01", Type: clause.Termination, Level: "balanced", RiskScore: 30, Jurisdiction: "US-generic",
		Text: "Either party may terminate this Agreement for convenience upon sixty (60) days' written notice, or " +
			"immediately upon the other party's uncured material breach following thirty (30) days' written notice " +
			"and opportunity to cure.",
		Explanation: "Symmetric termination rights with a cure period, avoiding one-sided termination-for-convenience.",
	},
	{
		ID: "termination-cure-only-01", Type: clause.Termination, Level: "conservative", RiskScore: 18, Jurisdiction: "US-generic",
		Text: "Either party may terminate this Agreement only upon the other party's uncured material breach " +
			"following sixty (60) days' written notice and opportunity to cure.",
		Explanation: "Removes unilateral termination-for-convenience entirely, requiring a breach and cure period.",
	},
	{
		ID: "confidentiality-standard-01", Type: clause.Confidentiality, Level: "balanced", RiskScore: 25, Jurisdiction: "US-generic",
		Text: "Each party shall protect the other party's Confidential Information using the same degree of care it " +
			"uses for its own confidential information, and in no event less than reasonable care, and shall not " +
			"disclose such information except as required by law or to affiliates and advisors under equivalent " +
			"confidentiality obligations.",
		Explanation: "Mutual, reasonable-care standard with a narrow compelled-disclosure carve-out.",
	},
	{
		ID: "governing-law-neutral-01", Type: clause.GoverningLaw, Level: "balanced", RiskScore: 15, Jurisdiction: "US-generic",
		Text: "This Agreement shall be governed by the laws of the jurisdiction mutually agreed in Schedule A, " +
			"without regard to conflict of laws principles, and the parties consent to the exclusive jurisdiction of " +
			"the courts located therein.",
		Explanation: "Defers the jurisdiction choice to a negotiated schedule rather than defaulting to one party's home forum.",
	},
	{
		ID: "payment-terms-standard-01", Type: clause.PaymentTerms, Level: "balanced", RiskScore: 20, Jurisdiction: "US-generic",
		Text: "Invoices are payable within thirty (30) days of receipt. Amounts not paid when due shall accrue " +
			"interest at the lesser of 1.0% per month or the maximum rate permitted by law, and either party may " +
			"dispute an invoiced amount in good faith prior to its due date without accruing interest on the " +
			"disputed portion.",
		Explanation: "Standard net-30 terms with a good-faith dispute carve-out for the paying party.",
	},
	{
		ID: "warranty-standard-01", Type: clause.Warranty, Level: "balanced", RiskScore: 30, Jurisdiction: "US-generic",
		Text: "Each party represents and warrants that it has the full right and authority to enter into this " +
			"Agreement and that its performance will not violate any other agreement to which it is a party. " +
			"EXCEPT AS EXPRESSLY SET FORTH HEREIN, NEITHER PARTY MAKES ANY OTHER WARRANTY, EXPRESS OR IMPLIED.",
		Explanation: "Limits warranties to authority-to-contract and disclaims broader implied warranties evenly.",
	},
	{
		ID: "ip-ownership-standard-01", Type: clause.IntellectualProperty, Level: "balanced", RiskScore: 25, Jurisdiction: "US-generic",
		Text: "Each party retains all right, title, and interest in its pre-existing intellectual property. Any " +
			"work product created specifically for the other party under a statement of work shall be owned by the " +
			"commissioning party upon full payment, subject to a perpetual license back for the creating party's " +
			"general know-how.",
		Explanation: "Separates background IP from commissioned work product and preserves a know-how license-back.",
	},
	{
		ID: "non-compete-reasonable-01", Type: clause.NonCompete, Level: "conservative", RiskScore: 30, Jurisdiction: "US-generic",
		Text: "For a period of twelve (12) months following termination, the restricted party shall not solicit the " +
			"other party's employees for employment, limited to the geographic markets and customer relationships " +
			"actually serviced under this Agreement.",
		Explanation: "Narrows scope to non-solicitation with a bounded duration and geography, improving enforceability.",
	},
	{
		ID: "force-majeure-standard-01", Type: clause.ForceMajeure, Level: "balanced", RiskScore: 20, Jurisdiction: "US-generic",
		Text: "Neither party shall be liable for any failure or delay in performance due to causes beyond its " +
			"reasonable control, including acts of God, war, labor disputes, or governmental action, provided the " +
			"affected party gives prompt notice and uses commercially reasonable efforts to mitigate the delay.",
		Explanation: "Conditions the excuse on notice and mitigation rather than an unconditional force majeure out.",
	},
	{
		ID: "assignment-consent-01", Type: clause.Assignment, Level: "balanced", RiskScore: 18, Jurisdiction: "US-generic",
		Text: "Neither party may assign this Agreement without the other party's prior written consent, not to be " +
			"unreasonably withheld, except that either party may assign this Agreement without consent in connection " +
			"with a merger, acquisition, or sale of substantially all assets.",
		Explanation: "Balances an anti-assignment default with a standard M&A carve-out for both parties.",
	},
	{
		ID: "dispute-resolution-tiered-01", Type: clause.DisputeResolution, Level: "balanced", RiskScore: 22, Jurisdiction: "US-generic",
		Text: "The parties shall first attempt to resolve any dispute through good-faith negotiation between senior " +
			"executives, and failing resolution within thirty (30) days, through binding arbitration administered " +
			"under the rules mutually agreed in Schedule A.",
		Explanation: "Tiered escalation before binding arbitration, avoiding immediate litigation or one-sided forum selection.",
	},
	{
		ID: "insurance-standard-01", Type: clause.Insurance, Level: "balanced", RiskScore: 20, Jurisdiction: "US-generic",
		Text: "Each party shall maintain commercial general liability insurance with coverage limits appropriate to " +
			"the risks of this Agreement and shall furnish a certificate of insurance upon the other party's " +
			"reasonable request.",
		Explanation: "Ties coverage to actual contract risk rather than an arbitrary fixed figure.",
	},
	{
		ID: "audit-rights-reasonable-01", Type: clause.AuditRights, Level: "balanced", RiskScore: 20, Jurisdiction: "US-generic",
		Text: "No more than once per twelve-month period, and upon reasonable prior written notice, either party may " +
			"audit the other party's records directly relevant to compliance with this Agreement during normal " +
			"business hours, at the auditing party's expense.",
		Explanation: "Bounds audit frequency, notice, and cost allocation instead of an open-ended audit right.",
	},
	{
		ID: "data-protection-standard-01", Type: clause.DataProtection, Level: "balanced", RiskScore: 25, Jurisdiction: "EU-GDPR",
		Text: "Each party shall process personal data received under this Agreement in compliance with applicable " +
			"data protection law, implement appropriate technical and organizational measures, and promptly notify " +
			"the other party of any security incident affecting that data.",
		Explanation: "Covers the baseline processing, security, and breach-notification duties common to data protection clauses.",
	},
	{
		ID: "data-protection-strict-01", Type: clause.DataProtection, Level: "conservative", RiskScore: 12, Jurisdiction: "EU-GDPR",
		Text: "Each party shall process personal data solely as a processor under applicable data protection law, " +
			"maintain a records-of-processing log, notify the other party of any security incident within 48 hours, " +
			"and flow down equivalent obligations to any subprocessor.",
		Explanation: "Adds a 48-hour breach notice window and subprocessor flow-down for stricter compliance postures.",
	},
}

package caselaw

import "github.com/semaj90/legalrisk/clause"

// defaultCorpus is the curated, compile-time-fixed case-law set used when
// no caller-supplied corpus is provided. Coverage spans the clause types
// most likely to surface RAG-worthy risk (high risk_weight in the
// taxonomy), plus a handful of formation/interpretation cases for breadth.
var defaultCorpus = []Case{
	{ID: "ind-001", ClauseType: clause.Indemnification, Jurisdiction: "Delaware", Year: 2014,
		Ruling:       "Enforced an uncapped indemnification clause against the indemnitor, rejecting an unconscionability defense absent a showing of unequal bargaining power.",
		Principle:    "Broad indemnification language is enforced as written between sophisticated commercial parties unless capped by statute or expressly limited.",
		SafeLanguage: "Each party shall indemnify the other against third-party claims arising from its breach of this Agreement, provided that aggregate indemnification liability shall not exceed the fees paid in the twelve (12) months preceding the claim.",
		RiskFactors:  []string{"uncapped liability", "broad scope", "no carve-outs"}},
	{ID: "ind-002", ClauseType: clause.Indemnification, Jurisdiction: "New York", Year: 2019,
		Ruling:       "Held that an indemnification clause silent on defense costs did not entitle the indemnitee to recover attorneys' fees absent explicit language.",
		Principle:    "Indemnification for defense costs must be stated explicitly; courts will not imply it from a general indemnity grant.",
		SafeLanguage: "The indemnifying party shall reimburse the indemnified party's reasonable attorneys' fees and costs of defense incurred in connection with an indemnified claim.",
		RiskFactors:  []string{"silent on defense costs", "ambiguous scope"}},
	{ID: "lol-001", ClauseType: clause.LimitationOfLiability, Jurisdiction: "California", Year: 2017,
		Ruling:       "Struck down a limitation of liability clause purporting to exclude liability for gross negligence as void against public policy.",
		Principle:    "A limitation of liability cannot waive liability for gross negligence or willful misconduct.",
		SafeLanguage: "In no event shall either party's aggregate liability exceed the fees paid under this Agreement in the preceding twelve (12) months, except for liability arising from gross negligence, willful misconduct, or breach of confidentiality obligations.",
		RiskFactors:  []string{"excludes gross negligence", "overbroad exclusion"}},
	{ID: "lol-002", ClauseType: clause.LimitationOfLiability, Jurisdiction: "Texas", Year: 2020,
		Ruling:       "Enforced a mutual cap on consequential damages where both parties had equal bargaining power and separate counsel.",
		Principle:    "Mutual, conspicuously disclosed limitation of liability clauses are enforceable between commercial parties.",
		SafeLanguage: "Neither party shall be liable for any indirect, incidental, special, or consequential damages, and each party's total liability shall be capped at the amounts paid under this Agreement.",
		RiskFactors:  []string{"one-sided cap", "inconspicuous disclosure"}},
	{ID: "nc-001", ClauseType: clause.NonCompete, Jurisdiction: "California", Year: 2008,
		Ruling:       "Voided an employee non-compete clause in its entirety under Cal. Bus. & Prof. Code §16600, finding no applicable exception.",
		Principle:    "Non-compete clauses restraining a former employee from engaging in a lawful profession are void absent a statutory exception.",
		SafeLanguage: "Employee agrees to a non-solicitation obligation with respect to the Company's clients and employees for twelve (12) months following termination, in lieu of any restriction on lawful employment.",
		RiskFactors:  []string{"broad restraint", "no geographic limit", "employment context"}},
	{ID: "nc-002", ClauseType: clause.NonCompete, Jurisdiction: "Delaware", Year: 2015,
		Ruling:       "Upheld a narrowly tailored eighteen-month, regional non-compete ancillary to the sale of a business.",
		Principle:    "Non-competes ancillary to a business sale are judged under a more permissive reasonableness standard than employment non-competes.",
		SafeLanguage: "Seller agrees not to compete with the Buyer's business within the defined territory for a period of eighteen (18) months following the closing date.",
		RiskFactors:  []string{"unbounded duration", "unbounded territory"}},
	{ID: "term-001", ClauseType: clause.Termination, Jurisdiction: "New York", Year: 2012,
		Ruling:       "Held that a termination-for-convenience clause exercised in bad faith to avoid an imminent, vested payment obligation breached the implied covenant of good faith and fair dealing.",
		Principle:    "A facially unconditional termination right remains subject to the implied covenant of good faith and fair dealing.",
		SafeLanguage: "Either party may terminate this Agreement for convenience upon sixty (60) days' prior written notice, provided that any payment obligations accrued prior to the termination date shall survive.",
		RiskFactors:  []string{"sole discretion", "no notice period", "bad faith timing"}},
	{ID: "dp-001", ClauseType: clause.DataProtection, Jurisdiction: "EU", Year: 2021,
		Ruling:       "Found a data processing addendum deficient for failing to specify appropriate technical and organizational measures under GDPR Article 28.",
		Principle:    "A data processing agreement must specify concrete technical and organizational measures, not a bare reference to 'industry standard' security.",
		SafeLanguage: "Processor shall implement the technical and organizational measures set out in Schedule 2 (encryption at rest and in transit, access logging, and annual penetration testing) and shall notify Controller of any personal data breach without undue delay and in any event within seventy-two (72) hours.",
		RiskFactors:  []string{"vague security standard", "no breach notification window"}},
	{ID: "dr-001", ClauseType: clause.DisputeResolution, Jurisdiction: "Federal", Year: 2011,
		Ruling:       "Compelled arbitration under the Federal Arbitration Act despite a claim of unconscionability, in AT&T Mobility v. Concepcion, 563 U.S. 333 (2011).",
		Principle:    "State law rules that categorically prohibit class-waiver arbitration clauses are preempted by the Federal Arbitration Act.",
		SafeLanguage: "Any dispute arising out of or relating to this Agreement shall first be escalated to the parties' executive sponsors for good-faith resolution, and if unresolved within thirty (30) days, shall be settled by binding arbitration administered under the rules of a recognized arbitral institution.",
		RiskFactors:  []string{"class action waiver", "no good-faith escalation step"}},
	{ID: "ip-001", ClauseType: clause.IntellectualProperty, Jurisdiction: "Delaware", Year: 2016,
		Ruling:       "Held that a 'work made for hire' assignment clause lacking the statutory categories under 17 U.S.C. §101 operated instead as a present assignment, shifting certain termination rights to the author.",
		Principle:    "An IP assignment clause should not rely on 'work made for hire' language alone where the statutory category requirement is not met; it should include an express present-assignment fallback.",
		SafeLanguage: "To the extent any deliverable does not qualify as a work made for hire, Contractor hereby irrevocably assigns to Company all right, title, and interest therein, including all intellectual property rights.",
		RiskFactors:  []string{"work for hire only", "no assignment fallback"}},
	{ID: "wty-001", ClauseType: clause.Warranty, Jurisdiction: "New York", Year: 2013,
		Ruling:       "Enforced a disclaimer of implied warranties because it was conspicuous and used the statutorily required language under UCC §2-316.",
		Principle:    "A disclaimer of implied warranties of merchantability must be conspicuous and, for merchantability, must mention merchantability by name.",
		SafeLanguage: "EXCEPT AS EXPRESSLY STATED HEREIN, PROVIDER DISCLAIMS ALL WARRANTIES, INCLUDING THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE.",
		RiskFactors:  []string{"inconspicuous disclaimer", "missing merchantability language"}},
	{ID: "ass-001", ClauseType: clause.Assignment, Jurisdiction: "California", Year: 2009,
		Ruling:       "Held that an anti-assignment clause did not prevent an assignment by operation of law in a statutory merger absent express language to that effect.",
		Principle:    "An anti-assignment clause should expressly address change-of-control and merger scenarios if the parties intend to restrict them.",
		SafeLanguage: "Neither party may assign this Agreement without the other party's prior written consent, not to be unreasonably withheld, except that either party may assign this Agreement to a successor in connection with a merger, acquisition, or sale of substantially all of its assets.",
		RiskFactors:  []string{"silent on merger", "silent on change of control"}},
	{ID: "fm-001", ClauseType: clause.ForceMajeure, Jurisdiction: "New York", Year: 2020,
		Ruling:       "Declined to excuse performance under a force majeure clause that did not enumerate pandemics or government shutdown orders among covered events.",
		Principle:    "A force majeure clause excuses only the categories of events it enumerates or that fall within a sufficiently broad catch-all.",
		SafeLanguage: "Neither party shall be liable for delay or failure to perform resulting from causes beyond its reasonable control, including acts of God, war, pandemic, governmental action, and failures of third-party infrastructure.",
		RiskFactors:  []string{"narrow enumeration", "no catch-all"}},
	{ID: "pt-001", ClauseType: clause.PaymentTerms, Jurisdiction: "Texas", Year: 2018,
		Ruling:       "Applied the UCC's reasonable-price gap-filler where a payment terms clause referenced pricing 'to be agreed' without further mechanism.",
		Principle:    "An open price term invites a reasonable-price gap-filler; parties seeking certainty should fix the price or a clear formula.",
		SafeLanguage: "Customer shall pay the fees set forth in the applicable Order Form within thirty (30) days of invoice date; any price increase shall require sixty (60) days' prior written notice.",
		RiskFactors:  []string{"open price term", "sole-discretion pricing"}},
	{ID: "aud-001", ClauseType: clause.AuditRights, Jurisdiction: "Delaware", Year: 2015,
		Ruling:       "Limited an audit right to once per year and during business hours where the clause was silent on frequency, applying a reasonableness gloss.",
		Principle:    "Courts will read a reasonableness limitation into an audit right that is silent on frequency or scope.",
		SafeLanguage: "Licensor may audit Licensee's records relevant to this Agreement no more than once per calendar year, upon thirty (30) days' prior written notice, during normal business hours, at Licensor's expense unless a material discrepancy is found.",
		RiskFactors:  []string{"unlimited frequency", "cost always on audited party"}},
	{ID: "gl-001", ClauseType: clause.GoverningLaw, Jurisdiction: "Delaware", Year: 2010,
		Ruling:       "Enforced a Delaware governing law and forum selection clause against a challenge based on inconvenience, given the parties' sophistication.",
		Principle:    "Governing law and forum selection clauses are enforced absent fraud, overreaching, or a showing the chosen forum would deprive a party of its day in court.",
		SafeLanguage: "This Agreement shall be governed by the laws of the State of Delaware, without regard to its conflict of laws principles, and the parties consent to the exclusive jurisdiction of the state and federal courts located in Delaware.",
		RiskFactors:  []string{"ambiguous forum", "conflicting choice of law across exhibits"}},
	{ID: "conf-001", ClauseType: clause.Confidentiality, Jurisdiction: "California", Year: 2017,
		Ruling:       "Held a confidentiality clause with no durational limit enforceable for trade secret information but time-limited for non-trade-secret confidential information absent clear intent otherwise.",
		Principle:    "Confidentiality obligations for trade secrets can be indefinite; obligations for other confidential information should carry an express term.",
		SafeLanguage: "Confidentiality obligations under this Agreement shall survive for five (5) years following termination, except that obligations with respect to trade secrets shall survive for as long as the information remains a trade secret.",
		RiskFactors:  []string{"no durational limit", "no trade secret carve-out"}},
}

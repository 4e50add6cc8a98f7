package debate

import "github.com/semaj90/legalrisk/clause"

// kbEntry is one clause type's fixed argument material for the
// prosecution/defense protocol: phrasing patterns a prosecutor points to
// as risk signals, supporting precedent summaries, and the counterarguments
// a defense typically raises. Mirrors caselaw.Case.RiskFactors/SafeLanguage
// in spirit but scoped to argument text rather than retrieval.
type kbEntry struct {
	Risks      []string
	Precedents []string
	Defenses   []string
}

// knowledgeBase is the fixed, compile-time argument material keyed by
// clause type. Only clause types likely to carry material risk get an
// entry; prosecution iterates only these entries, so types absent here
// never enter the debate, whatever their risk_weight.
var knowledgeBase = map[clause.Type]kbEntry{
	clause.Indemnification: {
		Risks: []string{
			"uncapped indemnification exposure with no aggregate dollar limit",
			"indemnification silent on defense cost reimbursement",
			"one-sided indemnification running only against the weaker party",
		},
		Precedents: []string{
			"Delaware (2014): broad indemnification enforced as written between sophisticated parties absent a showing of unequal bargaining power",
			"New York (2019): indemnification silent on defense costs does not entitle recovery of attorneys' fees",
		},
		Defenses: []string{
			"indemnification is mutual and capped at fees paid in the preceding twelve months",
			"sophisticated commercial parties negotiated this allocation with separate counsel",
			"carve-outs for gross negligence and willful misconduct already limit exposure",
		},
	},
	clause.LimitationOfLiability: {
		Risks: []string{
			"liability cap purports to exclude gross negligence or willful misconduct",
			"cap is one-sided, applying only to one party's liability",
			"cap is inconspicuously disclosed relative to the rest of the agreement",
		},
		Precedents: []string{
			"California (2017): a liability cap excluding gross negligence is void against public policy",
			"Texas (2020): mutual, conspicuously disclosed caps are enforceable between equal-bargaining-power parties",
		},
		Defenses: []string{
			"the cap is mutual and expressly carves out gross negligence and willful misconduct",
			"the cap was conspicuously negotiated and disclosed to both parties",
		},
	},
	clause.NonCompete: {
		Risks: []string{
			"restraint has no geographic or durational limit",
			"restraint applies in an employment context rather than a business-sale context",
			"restraint extends beyond the legitimate business interest it protects",
		},
		Precedents: []string{
			"California (2008): employee non-competes are void absent a statutory exception",
			"Delaware (2015): an eighteen-month, regional non-compete ancillary to a business sale was upheld",
		},
		Defenses: []string{
			"the restriction is narrowly tailored in duration and territory",
			"the restriction is ancillary to a business sale, not an employment relationship",
			"a non-solicitation obligation is substituted where the jurisdiction disfavors non-competes",
		},
	},
	clause.Termination: {
		Risks: []string{
			"termination for convenience exercisable at sole discretion with no notice period",
			"termination clause silent on survival of accrued payment obligations",
		},
		Precedents: []string{
			"New York (2012): a termination-for-convenience right exercised in bad faith to avoid a vested obligation breaches the implied covenant of good faith and fair dealing",
		},
		Defenses: []string{
			"a sixty-day notice period and survival of accrued obligations are both already specified",
			"termination rights are mutual, available to either party on the same terms",
		},
	},
	clause.DataProtection: {
		Risks: []string{
			"security obligations reference only a vague 'industry standard' rather than concrete measures",
			"no specified breach notification window",
		},
		Precedents: []string{
			"EU (2021): a data processing addendum referencing only 'industry standard' security was found deficient under GDPR Article 28",
		},
		Defenses: []string{
			"technical and organizational measures are enumerated in a schedule, not left to an industry-standard reference",
			"a seventy-two hour breach notification window is already specified",
		},
	},
	clause.DisputeResolution: {
		Risks: []string{
			"mandatory arbitration paired with a class-action waiver",
			"no good-faith escalation step before a formal dispute process",
		},
		Precedents: []string{
			"AT&T Mobility v. Concepcion, 563 U.S. 333 (2011): the FAA preempts state rules categorically barring class-waiver arbitration clauses",
		},
		Defenses: []string{
			"a good-faith executive escalation step precedes arbitration",
			"arbitration is administered under the rules of a recognized, neutral institution",
		},
	},
	clause.IntellectualProperty: {
		Risks: []string{
			"IP assignment relies solely on 'work made for hire' language without a present-assignment fallback",
		},
		Precedents: []string{
			"Delaware (2016): 'work made for hire' language alone, absent the statutory category, can shift termination rights back to the author",
		},
		Defenses: []string{
			"the clause includes an express present-assignment fallback beyond the work-for-hire grant",
		},
	},
	clause.Warranty: {
		Risks: []string{
			"disclaimer of implied warranties is inconspicuous or omits the statutorily required 'merchantability' language",
		},
		Precedents: []string{
			"New York (2013): a warranty disclaimer must be conspicuous and, for merchantability, must name merchantability specifically",
		},
		Defenses: []string{
			"the disclaimer is conspicuously capitalized and names merchantability and fitness for a particular purpose by name",
		},
	},
	clause.Assignment: {
		Risks: []string{
			"anti-assignment clause is silent on mergers and changes of control",
		},
		Precedents: []string{
			"California (2009): an anti-assignment clause silent on statutory mergers did not prevent assignment by operation of law",
		},
		Defenses: []string{
			"the clause expressly addresses merger and change-of-control assignment",
		},
	},
	clause.ForceMajeure: {
		Risks: []string{
			"enumerated events omit pandemics and government shutdown orders",
			"no broad catch-all for unenumerated events beyond the party's control",
		},
		Precedents: []string{
			"New York (2020): a force majeure clause was not extended to excuse performance for events outside its enumerated list",
		},
		Defenses: []string{
			"the clause includes a broad catch-all in addition to enumerated categories",
		},
	},
	clause.PaymentTerms: {
		Risks: []string{
			"pricing is left open ('to be agreed') without a fallback mechanism",
			"price increases are permitted at sole discretion without notice",
		},
		Precedents: []string{
			"Texas (2018): an open price term invites a reasonable-price gap-filler under the UCC",
		},
		Defenses: []string{
			"pricing is fixed in an order form with a defined notice period for any increase",
		},
	},
	clause.AuditRights: {
		Risks: []string{
			"audit frequency is unlimited",
			"audit costs always fall on the audited party regardless of findings",
		},
		Precedents: []string{
			"Delaware (2015): courts will read a once-per-year, business-hours reasonableness limitation into a silent audit right",
		},
		Defenses: []string{
			"the clause caps audit frequency, gives notice, and shifts cost to the audited party only on a material discrepancy",
		},
	},
	clause.Confidentiality: {
		Risks: []string{
			"confidentiality term has no durational limit and no trade-secret carve-out",
		},
		Precedents: []string{
			"California (2017): non-trade-secret confidential information should carry an express durational term even though trade secrets can be protected indefinitely",
		},
		Defenses: []string{
			"the clause specifies a five-year survival term with a separate trade-secret carve-out",
		},
	},
	clause.GoverningLaw: {
		Risks: []string{
			"governing law conflicts across exhibits or ancillary documents",
		},
		Precedents: []string{
			"Delaware (2010): a governing law and forum selection clause is enforced absent fraud, overreaching, or denial of a party's day in court",
		},
		Defenses: []string{
			"the governing law and forum are stated once, consistently, across the agreement and its exhibits",
		},
	},
}

package graph

import "github.com/semaj90/legalrisk/clause"

type relationship struct {
	source      clause.Type
	target      clause.Type
	kind        EdgeKind
	severity    float64
	description string
}

// catalog is the static relationship table between clause types. Each
// tuple is evaluated independently against the set of types present in a
// contract; it never depends on clause order or count.
var catalog = []relationship{
	// conflicts
	{clause.Indemnification, clause.LimitationOfLiability, Conflicts, 0.70,
		"Indemnification obligations may be capped or excluded by the liability limitation, creating an enforceability conflict"},
	{clause.Warranty, clause.LimitationOfLiability, Conflicts, 0.55,
		"Express warranties may be undermined by a broad liability limitation"},
	{clause.NonCompete, clause.Termination, Conflicts, 0.45,
		"Non-compete survival terms may conflict with termination provisions"},
	{clause.Confidentiality, clause.DataProtection, Conflicts, 0.40,
		"Confidentiality carve-outs may conflict with mandatory data protection disclosure duties"},
	{clause.Assignment, clause.Confidentiality, Conflicts, 0.35,
		"Permitted assignment may conflict with confidentiality restrictions on disclosure to assignees"},

	// depends_on
	{clause.Indemnification, clause.Insurance, DependsOn, 0.60,
		"Indemnification obligations are typically backed by an insurance requirement"},
	{clause.Termination, clause.PaymentTerms, DependsOn, 0.50,
		"Termination should specify treatment of outstanding payment obligations"},
	{clause.NonCompete, clause.GoverningLaw, DependsOn, 0.65,
		"Non-compete enforceability depends on the governing law chosen"},
	{clause.DisputeResolution, clause.GoverningLaw, DependsOn, 0.55,
		"Dispute resolution procedure depends on a designated governing law"},
	{clause.DataProtection, clause.AuditRights, DependsOn, 0.45,
		"Data protection compliance is typically verified through audit rights"},
	{clause.IntellectualProperty, clause.Confidentiality, DependsOn, 0.40,
		"IP ownership provisions typically depend on confidentiality protections"},
	{clause.LimitationOfLiability, clause.Insurance, DependsOn, 0.50,
		"Liability caps are typically supported by an insurance requirement"},

	// limits
	{clause.LimitationOfLiability, clause.Indemnification, Limits, 0.60,
		"The liability cap limits the scope of indemnification exposure"},
	{clause.ForceMajeure, clause.Termination, Limits, 0.35,
		"Force majeure excuses limit the grounds for termination for non-performance"},
	{clause.Confidentiality, clause.AuditRights, Limits, 0.30,
		"Confidentiality restricts the scope of permitted audit disclosure"},

	// supplements
	{clause.Insurance, clause.LimitationOfLiability, Supplements, 0.30,
		"Insurance coverage supplements the liability limitation by funding claims within the cap"},
	{clause.AuditRights, clause.DataProtection, Supplements, 0.30,
		"Audit rights supplement data protection compliance verification"},
	{clause.Warranty, clause.Indemnification, Supplements, 0.35,
		"Express warranties supplement indemnification by defining the underlying breach"},

	// references
	{clause.DisputeResolution, clause.GoverningLaw, References, 0.20,
		"The dispute resolution clause commonly references the governing law clause"},
	{clause.Assignment, clause.Termination, References, 0.20,
		"Assignment provisions commonly reference termination rights on change of control"},
}

package graph

import "github.com/semaj90/legalrisk/clause"

// expectedClauses maps a contract_type key to the clause types a contract
// of that kind is expected to carry, with the prevalence such a clause is
// observed at in a reference corpus of that contract kind. Unknown
// contract_type values are simply absent from this table, which Build
// treats as "no expectation" rather than an error.
var expectedClauses = map[string]map[clause.Type]float64{
	"msa": {
		clause.Indemnification:       0.90,
		clause.LimitationOfLiability: 0.90,
		clause.Termination:           0.85,
		clause.Confidentiality:       0.80,
		clause.GoverningLaw:          0.75,
		clause.PaymentTerms:          0.90,
		clause.Insurance:             0.60,
		clause.DisputeResolution:     0.70,
		clause.Assignment:            0.60,
		clause.ForceMajeure:          0.55,
		clause.AuditRights:           0.50,
		clause.DataProtection:        0.60,
		clause.IntellectualProperty:  0.55,
		clause.Warranty:              0.60,
		clause.NonCompete:            0.20,
	},
	"saas_agreement": {
		clause.DataProtection:        0.90,
		clause.LimitationOfLiability: 0.85,
		clause.Indemnification:       0.70,
		clause.Termination:           0.80,
		clause.PaymentTerms:          0.85,
		clause.IntellectualProperty:  0.75,
		clause.Confidentiality:       0.70,
		clause.GoverningLaw:          0.65,
		clause.AuditRights:           0.55,
		clause.Warranty:              0.50,
		clause.DisputeResolution:     0.55,
		clause.Insurance:             0.30,
		clause.Assignment:            0.40,
		clause.ForceMajeure:          0.40,
	},
	"nda": {
		clause.Confidentiality:      0.98,
		clause.Termination:          0.70,
		clause.GoverningLaw:         0.60,
		clause.IntellectualProperty: 0.55,
		clause.DisputeResolution:    0.40,
		clause.DataProtection:       0.35,
		clause.NonCompete:           0.15,
	},
	"employment_agreement": {
		clause.Termination:          0.90,
		clause.NonCompete:           0.70,
		clause.Confidentiality:      0.85,
		clause.PaymentTerms:         0.90,
		clause.GoverningLaw:         0.55,
		clause.DisputeResolution:    0.45,
		clause.IntellectualProperty: 0.50,
		clause.DataProtection:       0.35,
	},
	"licensing_agreement": {
		clause.IntellectualProperty:  0.95,
		clause.PaymentTerms:          0.80,
		clause.Termination:           0.75,
		clause.Warranty:              0.65,
		clause.LimitationOfLiability: 0.75,
		clause.Indemnification:       0.60,
		clause.Confidentiality:       0.60,
		clause.GoverningLaw:          0.60,
		clause.Assignment:            0.45,
		clause.DisputeResolution:     0.45,
		clause.AuditRights:           0.40,
	},
}

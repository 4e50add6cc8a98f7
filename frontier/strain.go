package frontier

import (
	"fmt"

	"github.com/semaj90/legalrisk/clause"
	"github.com/semaj90/legalrisk/power"
)

// StrainAnalysis reports where the law governing this contract is itself
// under stress: clause types whose enforceability doctrine is actively
// contested in courts or regulation, so that even well-drafted language
// carries litigation exposure the text cannot draft away.
type StrainAnalysis struct {
	TotalStrainScore    float64  `json:"total_strain_score"` // 0-2, sum of per-doctrine strain
	StrainedDoctrines   []string `json:"strained_doctrines"`
	LitigationLandmines []string `json:"litigation_landmines"`
}

// doctrineStrain weights clause types by how unsettled their governing
// doctrine currently is. Types not listed sit on stable doctrine and
// contribute nothing.
var doctrineStrain = map[clause.Type]struct {
	strain float64
	note   string
}{
	clause.NonCompete:            {0.50, "non-compete enforceability is under active regulatory attack"},
	clause.DataProtection:        {0.40, "cross-border data transfer rules are in flux"},
	clause.ForceMajeure:          {0.30, "force majeure scope is being relitigated post-pandemic"},
	clause.LimitationOfLiability: {0.25, "liability caps face growing unconscionability scrutiny"},
	clause.Indemnification:       {0.15, "indemnity scope disputes are increasingly common"},
}

// AnalyzeStrain sums doctrine strain over the clause types present and
// flags landmines: clauses that combine a strained doctrine with a high
// classifier risk weight, where contested law and aggressive drafting
// compound each other.
func AnalyzeStrain(classified []clause.Classified) StrainAnalysis {
	var out StrainAnalysis
	seen := map[clause.Type]bool{}
	for _, c := range classified {
		ds, ok := doctrineStrain[c.Type]
		if !ok || seen[c.Type] {
			continue
		}
		seen[c.Type] = true
		out.TotalStrainScore += ds.strain
		out.StrainedDoctrines = append(out.StrainedDoctrines, ds.note)
		if c.RiskWeight > 0.6 {
			out.LitigationLandmines = append(out.LitigationLandmines,
				fmt.Sprintf("%s (%s)", c.Type, ds.note))
		}
	}
	out.TotalStrainScore = clamp(out.TotalStrainScore, 0, 2)
	return out
}

// SocialStructureAnalysis reads the relationship the contract governs off
// its power structure: who dominates, how lopsided the obligations run,
// and what that implies about the parties' real-world footing.
type SocialStructureAnalysis struct {
	PowerAsymmetryScore float64  `json:"power_asymmetry_score"` // -1..1, sign points at the dominant party
	DominantParty       string   `json:"dominant_party"`
	RelationshipType    string   `json:"relationship_type"` // "peer", "hierarchical", "dependent"
	StructuralConcerns  []string `json:"structural_concerns"`
}

// AnalyzeSocialStructure converts the power analyzer's 0-100 score into a
// signed -1..1 asymmetry (positive when the first-listed party dominates)
// and infers the relationship type from its magnitude.
func AnalyzeSocialStructure(pw power.Analysis) SocialStructureAnalysis {
	magnitude := clamp(pw.PowerScore/100, 0, 1)
	signed := magnitude
	if len(pw.Parties) == 2 && pw.DominantParty == pw.Parties[1].Name {
		signed = -magnitude
	}

	relationship := "peer"
	switch {
	case magnitude > 0.6:
		relationship = "dependent"
	case magnitude > 0.3:
		relationship = "hierarchical"
	}

	var concerns []string
	if len(pw.AsymmetricClauses) >= 3 {
		concerns = append(concerns, fmt.Sprintf(
			"%d clauses grant unilateral rights to one party", len(pw.AsymmetricClauses)))
	}
	if pw.TotalObligations > 0 && pw.TotalProtections == 0 {
		concerns = append(concerns, "all obligations, no protective provisions for either party")
	}
	if relationship == "dependent" {
		concerns = append(concerns, pw.BurdenedParty+" appears structurally dependent on "+pw.DominantParty)
	}

	return SocialStructureAnalysis{
		PowerAsymmetryScore: signed,
		DominantParty:       pw.DominantParty,
		RelationshipType:    relationship,
		StructuralConcerns:  concerns,
	}
}

// Package power implements the power asymmetry analyzer: party
// extraction, obligation/protection/one-sided marker counting in English
// and French scoped by party-name proximity, and the burden and power
// scores derived from them.
package power

import (
	"regexp"
	"strings"

	"github.com/semaj90/legalrisk/clause"
)

// Party is one of the (at most two) contracting parties identified in the
// text.
type Party struct {
	Name string `json:"name"`
}

// Analysis is the power asymmetry result for a contract.
type Analysis struct {
	Parties           []Party  `json:"parties"`
	PowerScore        float64  `json:"power_score"` // 0-100
	DominantParty     string   `json:"dominant_party"`
	BurdenedParty     string   `json:"burdened_party"`
	AsymmetricClauses []string `json:"asymmetric_clauses"` // clause ids with one-sided triggers
	TotalObligations  int      `json:"total_obligations"`
	TotalProtections  int      `json:"total_protections"`
}

var quotedNameRe = regexp.MustCompile(`\(["“]?(?:the\s+)?([A-Z][a-zA-Z]+)["”]?\)`)

var roleWords = []string{"Provider", "Customer", "Licensor", "Licensee", "Client", "Vendor",
	"Contractor", "Company", "Supplier", "Employer", "Employee", "Buyer", "Seller",
	"Landlord", "Tenant", "Disclosing Party", "Receiving Party"}

var obligationMarkers = []string{
	"shall", "must", "will", "agrees to", "is required to", "is obligated to", "covenants to",
	"doit", "s'engage à", "est tenu de", "a l'obligation de",
}

var protectionMarkers = []string{
	"not be liable", "indemnify", "disclaims", "shall not be responsible", "limitation of liability",
	"n'est pas responsable", "dégage de toute responsabilité",
}

var oneSidedMarkers = []string{
	"sole discretion", "solely responsible", "without cause", "without liability", "irrevocably",
	"unconditionally", "no obligation", "exclusively", "waives any right",
	"seule discrétion", "sans motif", "sans responsabilité", "irrévocablement", "aucune obligation",
}

// Analyze extracts the contracting parties from the full text, scopes
// obligation/protection/one-sided marker counts to party-name proximity
// within each clause, and derives the burden and power scores.
func Analyze(classified []clause.Classified, fullText string) Analysis {
	parties := extractParties(fullText)
	nameA, nameB := parties[0].Name, parties[1].Name

	var oblA, oblB, protA, protB, oneSidedA, oneSidedB int
	var asymmetric []string

	for _, c := range classified {
		lower := strings.ToLower(c.Text)
		obl := countMarkers(lower, obligationMarkers)
		prot := countMarkers(lower, protectionMarkers)
		oneSided := countMarkers(lower, oneSidedMarkers)

		hasA := strings.Contains(c.Text, nameA)
		hasB := strings.Contains(c.Text, nameB)

		switch {
		case hasA && !hasB:
			oblA += obl
			protB += prot
			oneSidedA += oneSided
		case hasB && !hasA:
			oblB += obl
			protA += prot
			oneSidedB += oneSided
		default:
			// Both or neither named: split evenly.
			oblA += obl / 2
			oblB += obl - obl/2
			protA += prot / 2
			protB += prot - prot/2
			oneSidedA += oneSided / 2
			oneSidedB += oneSided - oneSided/2
		}

		if oneSided > 0 {
			asymmetric = append(asymmetric, c.ID)
		}
	}

	burdenA := burdenScore(oblA, protA, oneSidedA)
	burdenB := burdenScore(oblB, protB, oneSidedB)

	powerScore := min100(absF(burdenA-burdenB) + 5*float64(len(asymmetric)))

	dominant, burdened := nameA, nameB
	if burdenA > burdenB {
		dominant, burdened = nameB, nameA
	}

	return Analysis{
		Parties:           parties,
		PowerScore:        powerScore,
		DominantParty:     dominant,
		BurdenedParty:     burdened,
		AsymmetricClauses: asymmetric,
		TotalObligations:  oblA + oblB,
		TotalProtections:  protA + protB,
	}
}

// burdenScore = clip(0,100, 70*obl/(obl+prot+1) + min(30, 10*one_sided)).
func burdenScore(obl, prot, oneSided int) float64 {
	score := 70*float64(obl)/(float64(obl+prot)+1) + minF(30, 10*float64(oneSided))
	return clamp(score, 0, 100)
}

// extractParties returns exactly two parties: regex-extracted quoted
// capitalized names near the contract opening, else role words found in
// the text, else the default ["Party A", "Party B"].
func extractParties(text string) []Party {
	opening := text
	if len(opening) > 2000 {
		opening = opening[:2000]
	}

	seen := map[string]bool{}
	var names []string
	for _, m := range quotedNameRe.FindAllStringSubmatch(opening, -1) {
		name := m[1]
		if seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
		if len(names) >= 2 {
			break
		}
	}
	if len(names) < 2 {
		for _, rw := range roleWords {
			if seen[rw] {
				continue
			}
			if strings.Contains(text, rw) {
				seen[rw] = true
				names = append(names, rw)
				if len(names) >= 2 {
					break
				}
			}
		}
	}
	for len(names) < 2 {
		names = append(names, defaultPartyName(len(names)))
	}

	parties := make([]Party, 2)
	parties[0] = Party{Name: names[0]}
	parties[1] = Party{Name: names[1]}
	return parties
}

func defaultPartyName(i int) string {
	if i == 0 {
		return "Party A"
	}
	return "Party B"
}

func countMarkers(lower string, markers []string) int {
	n := 0
	for _, m := range markers {
		n += strings.Count(lower, m)
	}
	return n
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

func min100(x float64) float64 { return clamp(x, 0, 100) }
func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
func absF(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

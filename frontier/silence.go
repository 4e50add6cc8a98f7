package frontier

import (
	"regexp"

	"github.com/semaj90/legalrisk/clause"
	"github.com/semaj90/legalrisk/graph"
)

// SilenceAnalysis reports what a contract does not address, and how
// deliberate that omission looks. Built from graph.Build's
// already-computed MissingExpected list rather than re-deriving
// expected-clause prevalence.
type SilenceAnalysis struct {
	SilenceScore             float64  `json:"silence_score"` // 0-100
	LikelyStrategicOmissions []string `json:"likely_strategic_omissions"`
}

// AnalyzeSilence scores a contract's missing-expected clauses by their mean
// expected prevalence: an absent clause a reference corpus of this contract
// kind almost always includes reads as a deliberate, strategic omission
// rather than an oversight.
func AnalyzeSilence(ga graph.Analysis) SilenceAnalysis {
	if len(ga.MissingExpected) == 0 {
		return SilenceAnalysis{}
	}
	var weighted float64
	var omissions []string
	for _, m := range ga.MissingExpected {
		weighted += m.ExpectedPrevalence
		if m.ExpectedPrevalence >= 0.6 {
			omissions = append(omissions, string(m.Type))
		}
	}
	score := clamp(weighted/float64(len(ga.MissingExpected))*100, 0, 100)
	return SilenceAnalysis{SilenceScore: score, LikelyStrategicOmissions: omissions}
}

// ArchaeologyAnalysis reports what traces of prior drafts, unfinished
// negotiation, or copy-paste templating survive in the final text.
type ArchaeologyAnalysis struct {
	NegotiationIntensityScore float64  `json:"negotiation_intensity_score"` // 0-1
	PlaceholderScars          []string `json:"placeholder_scars"`
}

var placeholderRe = regexp.MustCompile(`(?i)\[(?:party|name|insert|tbd|date|amount|company)[^\]]*\]|_{3,}|\bXXX+\b`)

var negotiationMarkerRe = regexp.MustCompile(`(?i)as amended|as revised|as modified|redline|provided that|subject to mutual agreement`)

// AnalyzeArchaeology flags unfilled template placeholders (bracketed
// tokens, blank-fill underscores) as placeholder_scars, and scores
// negotiation_intensity_score as the fraction of clauses carrying a
// hand-negotiation marker (amendment language, redline artifacts) — a
// template dropped in wholesale with none of these reads as low-intensity,
// unnegotiated boilerplate.
func AnalyzeArchaeology(fullText string, classified []clause.Classified) ArchaeologyAnalysis {
	scars := dedupStrings(placeholderRe.FindAllString(fullText, -1))

	var edited int
	for _, c := range classified {
		if negotiationMarkerRe.MatchString(c.Text) {
			edited++
		}
	}
	var intensity float64
	if len(classified) > 0 {
		intensity = float64(edited) / float64(len(classified))
	}
	return ArchaeologyAnalysis{NegotiationIntensityScore: intensity, PlaceholderScars: scars}
}

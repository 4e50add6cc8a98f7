// Package clause defines the entities shared by every downstream pipeline
// stage: the raw Clause produced by the chunker, the ClassifiedClause
// produced by the classifier, and the closed clause-type taxonomy both
// depend on.
package clause

// Clause is an immutable span of contract text produced by the chunker.
type Clause struct {
	ID        string  `json:"id"`
	Text      string  `json:"text"`
	Header    string  `json:"header"`
	StartPos  int     `json:"start_pos"`
	EndPos    int     `json:"end_pos"`
	Coherence float64 `json:"coherence"`
}

// TypeScore is one entry of a classifier top-k result.
type TypeScore struct {
	Type        Type    `json:"type"`
	Probability float64 `json:"probability"`
}

// Classified extends Clause with the classifier's output. Produced once and
// never mutated afterward.
type Classified struct {
	Clause

	Type                 Type        `json:"type"`
	RawConfidence        float64     `json:"raw_confidence"`
	CalibratedConfidence float64     `json:"calibrated_confidence"`
	EntropyRatio         float64     `json:"entropy_ratio"`
	Margin               float64     `json:"margin"`
	NeedsReview          bool        `json:"needs_review"`
	TopK                 []TypeScore `json:"top_k"`
	RiskWeight           float64     `json:"risk_weight"`
	Category             Category    `json:"category"`
	Language             Language    `json:"language"`
}

// Language is the clause's detected natural language. Informational only.
type Language string

const (
	LanguageEN Language = "en"
	LanguageFR Language = "fr"
)

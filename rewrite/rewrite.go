// Package rewrite implements the clause rewrite engine: a fixed,
// pre-embedded template bank per clause type, similarity- and
// risk-scored retrieval against a flagged clause, and a unified diff
// summary of the suggested replacement.
package rewrite

import (
	"context"
	"fmt"
	"sort"

	"github.com/aymanbagabas/go-udiff"

	"github.com/semaj90/legalrisk/clause"
	"github.com/semaj90/legalrisk/encoder"
)

// Level is an informal drafting posture label for a template (how
// protective of the submitting party it is), used only as an optional
// retrieval filter.
type Level string

// Template is one curated candidate replacement clause.
type Template struct {
	ID           string      `json:"id"`
	Type         clause.Type `json:"type"`
	Level        Level       `json:"level"`
	Text         string      `json:"text"`
	RiskScore    float64     `json:"risk_score"` // 0-100, lower is safer
	Jurisdiction string      `json:"jurisdiction"`
	Explanation  string      `json:"explanation"`
}

// Suggestion is the best-scoring template retrieved for a flagged clause.
type Suggestion struct {
	Original      string  `json:"original"`
	Suggested     string  `json:"suggested"`
	RiskReduction float64 `json:"risk_reduction"`
	TemplateLevel Level   `json:"template_level"`
	Similarity    float64 `json:"similarity"`
	DiffSummary   string  `json:"diff_summary"`
	Explanation   string  `json:"explanation"`
}

// Engine holds the once-embedded template bank, indexed by clause type.
type Engine struct {
	enc       encoder.Encoder
	byType    map[clause.Type][]int
	templates []Template
	vectors   [][]float32
}

const cacheNamespace = "template"

// New embeds every template in bank once at construction time. A nil or
// empty bank falls back to the built-in default bank. cache, if non-nil,
// is consulted per template id before falling back to enc, and populated
// with whatever had to be freshly embedded (mirrors classify.New).
func New(ctx context.Context, enc encoder.Encoder, bank []Template, cache encoder.EmbeddingCache) (*Engine, error) {
	if len(bank) == 0 {
		bank = defaultBank
	}

	norm := make([][]float32, len(bank))
	var missIdx []int
	var missTexts []string
	for i, t := range bank {
		if cache != nil {
			if v, ok, err := cache.Get(ctx, cacheNamespace, t.ID); err == nil && ok {
				norm[i] = v
				continue
			}
		}
		missIdx = append(missIdx, i)
		missTexts = append(missTexts, t.Text)
	}

	if len(missTexts) > 0 {
		vecs, err := enc.Encode(ctx, missTexts)
		if err != nil {
			return nil, fmt.Errorf("rewrite: embed template bank: %w", err)
		}
		for j, i := range missIdx {
			v := encoder.Normalize(vecs[j])
			norm[i] = v
			if cache != nil {
				_ = cache.Put(ctx, cacheNamespace, bank[i].ID, v)
			}
		}
	}

	byType := map[clause.Type][]int{}
	for i, t := range bank {
		byType[t.Type] = append(byType[t.Type], i)
	}
	return &Engine{enc: enc, byType: byType, templates: bank, vectors: norm}, nil
}

// Suggest retrieves the best replacement for clauseText of clauseType
// given currentRisk (0-100). preferredLevel, if non-empty, restricts the
// candidate set to templates of that level when any exist. Returns nil
// (not an error) when the clause type is Unknown, has no templates, or the
// encoder is unavailable — a rewrite suggestion is advisory, never a hard
// requirement.
func (e *Engine) Suggest(ctx context.Context, clauseText string, clauseType clause.Type, currentRisk float64, preferredLevel Level) (*Suggestion, error) {
	if clauseType == clause.Unknown {
		return nil, nil
	}
	idxs, ok := e.byType[clauseType]
	if !ok || len(idxs) == 0 {
		return nil, nil
	}
	if preferredLevel != "" {
		if filtered := filterByLevel(idxs, e.templates, preferredLevel); len(filtered) > 0 {
			idxs = filtered
		}
	}

	vecs, err := e.enc.Encode(ctx, []string{clauseText})
	if err != nil {
		return nil, nil
	}
	v := encoder.Normalize(vecs[0])

	type scored struct {
		idx   int
		sim   float64
		score float64
	}
	var lower []scored
	var lowestRisk = idxs[0]
	for _, i := range idxs {
		sim := encoder.Cosine(v, e.vectors[i])
		if e.templates[i].RiskScore < e.templates[lowestRisk].RiskScore {
			lowestRisk = i
		}
		if e.templates[i].RiskScore < currentRisk {
			score := 0.4*sim + 0.6*(currentRisk-e.templates[i].RiskScore)/100
			lower = append(lower, scored{i, sim, score})
		}
	}

	var chosen int
	var sim float64
	if len(lower) > 0 {
		sort.Slice(lower, func(a, b int) bool { return lower[a].score > lower[b].score })
		chosen = lower[0].idx
		sim = lower[0].sim
	} else {
		chosen = lowestRisk
		sim = encoder.Cosine(v, e.vectors[chosen])
	}

	tmpl := e.templates[chosen]
	return &Suggestion{
		Original:      clauseText,
		Suggested:     tmpl.Text,
		RiskReduction: currentRisk - tmpl.RiskScore,
		TemplateLevel: tmpl.Level,
		Similarity:    sim,
		DiffSummary:   diffSummary(clauseText, tmpl.Text),
		Explanation:   tmpl.Explanation,
	}, nil
}

func filterByLevel(idxs []int, templates []Template, level Level) []int {
	var out []int
	for _, i := range idxs {
		if templates[i].Level == level {
			out = append(out, i)
		}
	}
	return out
}

// diffSummary renders an added/removed line count and hunk count, the way
// a diff viewer computes hunks for display.
func diffSummary(oldText, newText string) string {
	edits := udiff.Strings(oldText, newText)
	diff, err := udiff.ToUnifiedDiff("original", "suggested", oldText, edits, 2)
	if err != nil {
		return fmt.Sprintf("%d edit(s)", len(edits))
	}
	var added, removed int
	for _, h := range diff.Hunks {
		for _, l := range h.Lines {
			switch l.Kind {
			case udiff.Insert:
				added++
			case udiff.Delete:
				removed++
			}
		}
	}
	return fmt.Sprintf("+%d/-%d lines across %d hunk(s)", added, removed, len(diff.Hunks))
}

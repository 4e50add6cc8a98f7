// Package caselaw implements the V12 case-law RAG subsystem: a fixed,
// pre-embedded corpus of curated case summaries, queried per flagged
// clause and fused into a deduplicated, ranked citation list.
package caselaw

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/semaj90/legalrisk/clause"
	"github.com/semaj90/legalrisk/encoder"
)

// Case is one curated precedent summary.
type Case struct {
	ID           string      `json:"id"`
	ClauseType   clause.Type `json:"clause_type"`
	Jurisdiction string      `json:"jurisdiction"`
	Year         int         `json:"year"`
	Ruling       string      `json:"ruling"`
	Principle    string      `json:"principle"`
	SafeLanguage string      `json:"safe_language"`
	RiskFactors  []string    `json:"risk_factors"`
}

func (c Case) searchText() string {
	return string(c.ClauseType) + " " + c.Ruling + " " + c.Principle + " " + strings.Join(c.RiskFactors, " ")
}

// Citation is one retrieved case grounded against a specific clause.
type Citation struct {
	Case            Case    `json:"case"`
	Relevance       float64 `json:"relevance"`
	GroundedRewrite string  `json:"grounded_rewrite"`
	RiskExplanation string  `json:"risk_explanation"`
}

// Result is the RAG subsystem's full output for one report.
type Result struct {
	Citations     []Citation    `json:"citations"`
	Jurisdictions []string      `json:"jurisdictions"`
	ClauseTypes   []clause.Type `json:"clause_types"`
}

// Clause is the minimal view of a classified clause the index needs to
// decide whether to query it and with what text.
type Clause struct {
	Type                 clause.Type
	Text                 string
	RiskWeight           float64
	NeedsReview          bool
	CalibratedConfidence float64
}

// Index holds the once-embedded case-law corpus.
type Index struct {
	enc     encoder.Encoder
	cases   []Case
	vectors [][]float32 // nil entries mean "no encoder available"
}

const cacheNamespace = "caselaw"

// New embeds every case in corpus once at construction time. A nil or
// empty corpus falls back to the built-in default corpus. If enc fails to
// embed (EncoderUnavailable), the index still builds, just without
// vectors, and Retrieve degrades to the type-matched path described on
// fallback. cache, if non-nil, is consulted per case id before falling back
// to enc, and populated with whatever had to be freshly embedded (mirrors
// classify.New/rewrite.New).
func New(ctx context.Context, enc encoder.Encoder, corpus []Case, cache encoder.EmbeddingCache) (*Index, error) {
	if len(corpus) == 0 {
		corpus = defaultCorpus
	}
	idx := &Index{enc: enc, cases: corpus}

	norm := make([][]float32, len(corpus))
	var missIdx []int
	var missTexts []string
	for i, c := range corpus {
		if cache != nil {
			if v, ok, err := cache.Get(ctx, cacheNamespace, c.ID); err == nil && ok {
				norm[i] = v
				continue
			}
		}
		missIdx = append(missIdx, i)
		missTexts = append(missTexts, c.searchText())
	}

	if len(missTexts) == 0 {
		idx.vectors = norm
		return idx, nil
	}

	vecs, err := enc.Encode(ctx, missTexts)
	if err != nil {
		return idx, nil
	}
	for j, i := range missIdx {
		v := encoder.Normalize(vecs[j])
		norm[i] = v
		if cache != nil {
			_ = cache.Put(ctx, cacheNamespace, corpus[i].ID, v)
		}
	}
	idx.vectors = norm
	return idx, nil
}

// Retrieve runs the RAG query over every clause that warrants a citation
// (high risk_weight, flagged for review, or low confidence), dedups the
// resulting citations by case id keeping the highest relevance, and caps
// the result at 10 citations. jurisdiction, if non-empty, boosts cases
// decided in the contract's declared jurisdiction.
func (idx *Index) Retrieve(ctx context.Context, clauses []Clause, jurisdiction string, topK int) Result {
	if topK <= 0 {
		topK = 3
	}
	best := map[string]Citation{}

	for _, cl := range clauses {
		if !shouldQuery(cl) {
			continue
		}
		for _, c := range idx.query(ctx, cl, jurisdiction, topK) {
			if existing, ok := best[c.Case.ID]; !ok || c.Relevance > existing.Relevance {
				best[c.Case.ID] = c
			}
		}
	}

	citations := make([]Citation, 0, len(best))
	for _, c := range best {
		citations = append(citations, c)
	}
	sort.Slice(citations, func(i, j int) bool { return citations[i].Relevance > citations[j].Relevance })
	if len(citations) > 10 {
		citations = citations[:10]
	}

	jset := map[string]bool{}
	tset := map[clause.Type]bool{}
	for _, c := range citations {
		jset[c.Case.Jurisdiction] = true
		tset[c.Case.ClauseType] = true
	}
	jurisdictions := make([]string, 0, len(jset))
	for j := range jset {
		jurisdictions = append(jurisdictions, j)
	}
	sort.Strings(jurisdictions)
	types := make([]clause.Type, 0, len(tset))
	for t := range tset {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

	return Result{Citations: citations, Jurisdictions: jurisdictions, ClauseTypes: types}
}

func shouldQuery(cl Clause) bool {
	return cl.RiskWeight >= 0.5 || cl.NeedsReview || cl.CalibratedConfidence < 0.7
}

// recencyEpsilon is how close two relevance scores must be before the
// more recent ruling wins the tie.
const recencyEpsilon = 0.01

// query scores the full corpus against one clause and returns its top-k
// citations. A case from the contract's declared jurisdiction gets a
// smaller boost than a clause-type match (binding precedent matters, but
// never more than topical fit); at near-equal relevance the more recent
// ruling ranks first.
func (idx *Index) query(ctx context.Context, cl Clause, jurisdiction string, topK int) []Citation {
	if idx.vectors == nil {
		return idx.fallback(cl, topK)
	}

	queryText := string(cl.Type) + " " + truncate(cl.Text, 300)
	vecs, err := idx.enc.Encode(ctx, []string{queryText})
	if err != nil {
		return idx.fallback(cl, topK)
	}
	v := encoder.Normalize(vecs[0])

	type scored struct {
		idx   int
		score float64
	}
	scores := make([]scored, len(idx.cases))
	for i, c := range idx.cases {
		sim := encoder.Cosine(v, idx.vectors[i])
		if c.ClauseType == cl.Type {
			sim += 0.2
		}
		if jurisdiction != "" && strings.EqualFold(c.Jurisdiction, jurisdiction) {
			sim += 0.1
		}
		scores[i] = scored{i, sim}
	}
	sort.Slice(scores, func(a, b int) bool {
		if diff := scores[a].score - scores[b].score; diff > recencyEpsilon || diff < -recencyEpsilon {
			return diff > 0
		}
		return idx.cases[scores[a].idx].Year > idx.cases[scores[b].idx].Year
	})
	if len(scores) > topK {
		scores = scores[:topK]
	}

	out := make([]Citation, 0, len(scores))
	for _, s := range scores {
		out = append(out, idx.citationFor(idx.cases[s.idx], s.score, cl))
	}
	return out
}

// fallback is the no-encoder path: type-matched
// cases sorted by year descending, relevance fixed at 0.85.
func (idx *Index) fallback(cl Clause, topK int) []Citation {
	var matched []Case
	for _, c := range idx.cases {
		if c.ClauseType == cl.Type {
			matched = append(matched, c)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Year > matched[j].Year })
	if len(matched) > topK {
		matched = matched[:topK]
	}
	out := make([]Citation, 0, len(matched))
	for _, c := range matched {
		out = append(out, idx.citationFor(c, 0.85, cl))
	}
	return out
}

func (idx *Index) citationFor(c Case, relevance float64, cl Clause) Citation {
	return Citation{
		Case:            c,
		Relevance:       relevance,
		GroundedRewrite: c.SafeLanguage,
		RiskExplanation: fmt.Sprintf("%s (%s %d): %s", c.Ruling, c.Jurisdiction, c.Year, c.Principle),
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// Package classify implements the clause classifier and its deterministic
// calibration: nearest-prototype classification over the fixed taxonomy
// followed by a temperature/bias-scaled softmax that yields a calibrated
// confidence, an entropy-based uncertainty ratio, and a needs-review
// flag. No training is involved; the prototype index is built once from
// the taxonomy descriptions.
package classify

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/semaj90/legalrisk/clause"
	"github.com/semaj90/legalrisk/encoder"
)

const (
	temperature = 2.5
	bias        = -0.8
)

// Classifier holds the fixed, once-computed prototype index. Safe for
// concurrent use: Classify/ClassifyBatch only read the index.
type Classifier struct {
	enc        encoder.Encoder
	prototypes [][]float32 // indexed by clause.Taxonomy order
}

const cacheNamespace = "prototype"

// New builds the classifier by encoding each taxonomy entry's combined
// EN+FR description into a unit-norm prototype vector. cache, if non-nil,
// is consulted first per taxonomy type and populated with whatever had to
// be freshly encoded, so a restarted process with a warm cache (e.g.
// encoder.PGVectorCache) skips re-embedding the whole taxonomy.
func New(ctx context.Context, enc encoder.Encoder, cache encoder.EmbeddingCache) (*Classifier, error) {
	k := clause.K()
	protos := make([][]float32, k)

	var missIdx []int
	var missTexts []string
	for i, e := range clause.Taxonomy {
		key := string(e.Type)
		if cache != nil {
			if v, ok, err := cache.Get(ctx, cacheNamespace, key); err == nil && ok {
				protos[i] = v
				continue
			}
		}
		missIdx = append(missIdx, i)
		missTexts = append(missTexts, e.DescriptionEN+" "+e.DescriptionFR)
	}

	if len(missTexts) > 0 {
		vecs, err := enc.Encode(ctx, missTexts)
		if err != nil {
			return nil, fmt.Errorf("classify: build prototype index: %w", err)
		}
		for j, i := range missIdx {
			v := encoder.Normalize(vecs[j])
			protos[i] = v
			if cache != nil {
				// Best-effort: a failed cache write never fails construction,
				// it just means the next restart re-embeds this prototype.
				_ = cache.Put(ctx, cacheNamespace, string(clause.Taxonomy[i].Type), v)
			}
		}
	}

	return &Classifier{enc: enc, prototypes: protos}, nil
}

// Classify assigns a clause type to a single clause.
func (c *Classifier) Classify(ctx context.Context, cl clause.Clause) (clause.Classified, error) {
	out, err := c.ClassifyBatch(ctx, []clause.Clause{cl})
	if err != nil {
		return clause.Classified{}, err
	}
	return out[0], nil
}

// ClassifyBatch classifies all clauses in a single batched encode call,
// which is materially faster than calling Classify per clause whenever the
// injected Encoder supports batching.
func (c *Classifier) ClassifyBatch(ctx context.Context, clauses []clause.Clause) ([]clause.Classified, error) {
	out := make([]clause.Classified, len(clauses))

	textIdx := make([]int, 0, len(clauses))
	texts := make([]string, 0, len(clauses))
	for i, cl := range clauses {
		if strings.TrimSpace(cl.Text) == "" {
			out[i] = emptyResult(cl)
			continue
		}
		textIdx = append(textIdx, i)
		texts = append(texts, cl.Text)
	}

	if len(texts) == 0 {
		return out, nil
	}

	embeddings, err := c.enc.Encode(ctx, texts)
	if err != nil {
		// EncoderUnavailable: degrade every pending clause to "unknown"
		// with maximum entropy rather than failing the whole batch.
		for _, i := range textIdx {
			out[i] = emptyResult(clauses[i])
		}
		return out, nil
	}

	for j, i := range textIdx {
		out[i] = c.classifyOne(clauses[i], encoder.Normalize(embeddings[j]))
	}
	return out, nil
}

func (c *Classifier) classifyOne(cl clause.Clause, vec []float32) clause.Classified {
	k := len(c.prototypes)
	sims := make([]float64, k)
	for i, p := range c.prototypes {
		sims[i] = encoder.Cosine(vec, p)
	}

	logits := make([]float64, k)
	for i, s := range sims {
		logits[i] = (s + bias) / temperature
	}
	probs := softmax(logits)

	order := make([]int, k)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return probs[order[a]] > probs[order[b]] })

	top := order[0]
	entry := clause.Taxonomy[top]

	// calibrated_confidence and margin are read directly off the full
	// K-way softmax, not renormalized over the shortlist. Only top_k
	// itself is renormalized so its three probabilities sum to 1.
	calibrated := probs[order[0]]
	margin := calibrated
	if k > 1 {
		margin -= probs[order[1]]
	}
	entropyRatio := entropy(probs) / math.Log2(float64(k))

	kTop := 3
	if kTop > k {
		kTop = k
	}
	var topSum float64
	for i := 0; i < kTop; i++ {
		topSum += probs[order[i]]
	}
	topK := make([]clause.TypeScore, 0, kTop)
	for i := 0; i < kTop; i++ {
		idx := order[i]
		topK = append(topK, clause.TypeScore{Type: clause.Taxonomy[idx].Type, Probability: probs[idx] / topSum})
	}

	return clause.Classified{
		Clause:               cl,
		Type:                 entry.Type,
		RawConfidence:        maxOf(sims),
		CalibratedConfidence: calibrated,
		EntropyRatio:         entropyRatio,
		Margin:               margin,
		NeedsReview:          margin < 0.08 || entropyRatio > 0.75,
		TopK:                 topK,
		RiskWeight:           entry.RiskWeight,
		Category:             entry.Category,
		Language:             detectLanguage(cl.Text),
	}
}

func emptyResult(cl clause.Clause) clause.Classified {
	k := clause.K()
	return clause.Classified{
		Clause:               cl,
		Type:                 clause.Unknown,
		RawConfidence:        0,
		CalibratedConfidence: 1.0 / float64(k),
		EntropyRatio:         1.0,
		Margin:               0,
		NeedsReview:          true,
		TopK:                 nil,
		RiskWeight:           0,
		Category:             "",
		Language:             clause.LanguageEN,
	}
}

func softmax(logits []float64) []float64 {
	maxLogit := logits[0]
	for _, l := range logits[1:] {
		if l > maxLogit {
			maxLogit = l
		}
	}
	exps := make([]float64, len(logits))
	var sum float64
	for i, l := range logits {
		exps[i] = math.Exp(l - maxLogit)
		sum += exps[i]
	}
	for i := range exps {
		exps[i] /= sum
	}
	return exps
}

func entropy(p []float64) float64 {
	var h float64
	for _, x := range p {
		if x <= 0 {
			continue
		}
		h -= x * math.Log2(x)
	}
	return h
}

func maxOf(xs []float64) float64 {
	m := xs[0]
	for _, x := range xs[1:] {
		if x > m {
			m = x
		}
	}
	return m
}

var frenchMarkers = map[string]bool{
	"le": true, "la": true, "les": true, "et": true, "des": true, "une": true, "un": true,
	"dans": true, "pour": true, "avec": true, "est": true, "sont": true, "article": true,
	"clause": true, "contrat": true, "société": true, "partie": true, "droit": true,
	"accord": true, "entre": true, "ainsi": true, "que": true, "qui": true, "du": true,
}

func detectLanguage(text string) clause.Language {
	fields := strings.Fields(strings.ToLower(text))
	hits := 0
	for _, f := range fields {
		f = strings.Trim(f, ".,;:!?()\"'")
		if frenchMarkers[f] {
			hits++
			if hits >= 3 {
				return clause.LanguageFR
			}
		}
	}
	return clause.LanguageEN
}

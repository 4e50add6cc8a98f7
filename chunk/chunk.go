// Package chunk implements the semantic chunker: it splits raw contract
// text into coherent clauses, preferring numbered-section boundaries when
// the document has them and falling back to embedding-similarity boundary
// detection, then paragraph splitting, otherwise.
package chunk

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/semaj90/legalrisk/clause"
	"github.com/semaj90/legalrisk/encoder"
)

const (
	minChars    = 80
	maxChars    = 3000
	windowSize  = 3
	minSections = 4
)

var (
	sectionHeaderRe  = regexp.MustCompile(`(?m)^\s*\d{1,2}\.\s+[A-Z]`)
	paragraphBreakRe = regexp.MustCompile(`\n\s*\n+`)
)

var abbreviations = map[string]bool{
	"mr.": true, "mrs.": true, "ms.": true, "dr.": true, "inc.": true, "ltd.": true,
	"co.": true, "corp.": true, "vs.": true, "etc.": true, "u.s.": true, "no.": true,
	"art.": true, "sec.": true, "fig.": true, "jr.": true, "sr.": true, "e.g.": true, "i.e.": true,
}

// Chunker splits contract text into clauses.
type Chunker struct {
	enc encoder.Encoder
}

func New(enc encoder.Encoder) *Chunker {
	return &Chunker{enc: enc}
}

// span is a transient [start,end) rune range with materialized text, used
// before clause IDs/headers/coherence are assigned.
type span struct {
	text       string
	start, end int
	coherence  float64
}

// Chunk splits text into an ordered slice of Clause using the full
// regex -> semantic -> paragraph fallback chain. Equivalent to
// ChunkWithOptions(ctx, text, true).
func (c *Chunker) Chunk(ctx context.Context, text string) ([]clause.Clause, error) {
	return c.ChunkWithOptions(ctx, text, true)
}

// ChunkWithOptions is Chunk with the semantic-chunking stage (step 2,
// embedding similarity boundary detection) made optional. Callers that set
// the pipeline's semantic_chunking option to false skip straight from
// regex chunking to the paragraph fallback, avoiding the embedding calls
// semantic chunking requires. It never returns an empty slice for
// non-empty input: regex chunking, semantic chunking, and paragraph
// splitting all fall through to a single whole-document clause in the
// worst case.
func (c *Chunker) ChunkWithOptions(ctx context.Context, text string, allowSemantic bool) ([]clause.Clause, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	spans := c.regexChunks(text)
	if len(spans) < minSections {
		if allowSemantic {
			sem, err := c.semanticChunks(ctx, text)
			if err != nil || len(sem) == 0 {
				spans = c.paragraphChunks(text)
			} else {
				spans = sem
			}
		} else {
			spans = c.paragraphChunks(text)
		}
	}
	if len(spans) == 0 {
		spans = []span{{text: text, start: 0, end: len([]rune(text)), coherence: 1.0}}
	}

	spans = mergeShort(spans)
	spans = splitLong(spans)

	out := make([]clause.Clause, 0, len(spans))
	for _, s := range spans {
		out = append(out, clause.Clause{
			ID:        uuid.NewString(),
			Text:      strings.TrimSpace(s.text),
			Header:    header(s.text),
			StartPos:  s.start,
			EndPos:    s.end,
			Coherence: s.coherence,
		})
	}
	return out, nil
}

// regexChunks implements step (1): split before numbered-section headers.
func (c *Chunker) regexChunks(text string) []span {
	idx := sectionHeaderRe.FindAllStringIndex(text, -1)
	if len(idx) < minSections {
		return nil
	}
	runes := []rune(text)
	byteToRune := byteIndexToRune(text)

	spans := make([]span, 0, len(idx))
	for i, m := range idx {
		start := byteToRune[m[0]]
		end := len(runes)
		if i < len(idx)-1 {
			end = byteToRune[idx[i+1][0]]
		}
		spans = append(spans, span{
			text:      string(runes[start:end]),
			start:     start,
			end:       end,
			coherence: 1.0,
		})
	}
	return spans
}

// semanticChunks implements step (2): sentence windows + adaptive
// similarity-threshold boundary detection.
func (c *Chunker) semanticChunks(ctx context.Context, text string) ([]span, error) {
	sentences := splitSentences(text)
	if len(sentences) <= windowSize {
		return nil, nil
	}

	nWindows := len(sentences) - windowSize + 1
	windows := make([]string, nWindows)
	for i := 0; i < nWindows; i++ {
		parts := make([]string, windowSize)
		for j := 0; j < windowSize; j++ {
			parts[j] = sentences[i+j].text
		}
		windows[i] = strings.Join(parts, " ")
	}

	embeddings, err := c.enc.Encode(ctx, windows)
	if err != nil {
		return nil, fmt.Errorf("chunk: embed windows: %w", err)
	}

	sims := make([]float64, 0, nWindows-1)
	for i := 0; i < nWindows-1; i++ {
		sims = append(sims, encoder.Cosine(embeddings[i], embeddings[i+1]))
	}
	if len(sims) == 0 {
		return nil, nil
	}

	mean, std := meanStd(sims)
	lowThreshold := clampF(mean-0.5*std, 0, 1)
	adaptive := maxF(0.2, minF(0.40, lowThreshold))
	localMinThreshold := mean - 0.3*std

	boundarySet := map[int]bool{}
	for i, s := range sims {
		below := s < adaptive
		isLocalMin := i > 0 && i < len(sims)-1 && s < sims[i-1] && s < sims[i+1] && s < localMinThreshold
		if below || isLocalMin {
			boundarySet[i+windowSize] = true
		}
	}

	boundaries := make([]int, 0, len(boundarySet))
	for b := range boundarySet {
		if b > 0 && b < len(sentences) {
			boundaries = append(boundaries, b)
		}
	}
	sort.Ints(boundaries)

	groups := groupSentences(len(sentences), boundaries)
	spans := make([]span, 0, len(groups))
	for _, g := range groups {
		start := sentences[g[0]].start
		end := sentences[g[len(g)-1]].end
		var coh float64 = 1.0
		var sum float64
		var n int
		for wi := 0; wi < nWindows-1; wi++ {
			// window wi spans sentences [wi, wi+windowSize), its boundary
			// check happens against window wi+1; treat it as "internal" to
			// this group when both windows fall within [g[0], g[last]].
			if wi >= g[0] && wi+windowSize <= g[len(g)-1]+1 {
				sum += sims[wi]
				n++
			}
		}
		if n > 0 {
			coh = sum / float64(n)
		}
		spans = append(spans, span{
			text:      sentencesText(sentences[g[0] : g[len(g)-1]+1]),
			start:     start,
			end:       end,
			coherence: coh,
		})
	}
	return spans, nil
}

// paragraphChunks implements step (4): fallback on blank-line paragraphs.
func (c *Chunker) paragraphChunks(text string) []span {
	runes := []rune(text)
	idx := paragraphBreakRe.FindAllStringIndex(text, -1)
	byteToRune := byteIndexToRune(text)

	if len(idx) == 0 {
		return []span{{text: text, start: 0, end: len(runes), coherence: 1.0}}
	}

	spans := make([]span, 0, len(idx)+1)
	prev := 0
	for _, m := range idx {
		s := byteToRune[m[0]]
		if s > prev {
			spans = append(spans, span{text: string(runes[prev:s]), start: prev, end: s, coherence: 1.0})
		}
		prev = byteToRune[m[1]]
	}
	if prev < len(runes) {
		spans = append(spans, span{text: string(runes[prev:]), start: prev, end: len(runes), coherence: 1.0})
	}
	return spans
}

// mergeShort implements step (3)'s first half: fold any span shorter than
// minChars into its predecessor (or successor, if it is the first span).
func mergeShort(spans []span) []span {
	if len(spans) <= 1 {
		return spans
	}
	out := make([]span, 0, len(spans))
	for _, s := range spans {
		if len(strings.TrimSpace(s.text)) < minChars && len(out) > 0 {
			prev := &out[len(out)-1]
			prev.text = prev.text + "\n\n" + s.text
			prev.end = s.end
			continue
		}
		out = append(out, s)
	}
	if len(out) > 1 && len(strings.TrimSpace(out[0].text)) < minChars {
		out[1].text = out[0].text + "\n\n" + out[1].text
		out[1].start = out[0].start
		out = out[1:]
	}
	return out
}

// splitLong implements step (3)'s second half: split any span longer than
// maxChars at paragraph breaks.
func splitLong(spans []span) []span {
	out := make([]span, 0, len(spans))
	for _, s := range spans {
		if len(s.text) <= maxChars {
			out = append(out, s)
			continue
		}
		parts := paragraphBreakRe.Split(s.text, -1)
		if len(parts) <= 1 {
			out = append(out, hardSplit(s)...)
			continue
		}
		offset := s.start
		var cur strings.Builder
		curStart := offset
		flush := func(end int) {
			if cur.Len() == 0 {
				return
			}
			out = append(out, span{text: cur.String(), start: curStart, end: end, coherence: s.coherence})
			cur.Reset()
		}
		pos := offset
		for _, p := range parts {
			if cur.Len()+len(p) > maxChars && cur.Len() > 0 {
				flush(pos)
				curStart = pos
			}
			if cur.Len() > 0 {
				cur.WriteString("\n\n")
			}
			cur.WriteString(p)
			pos += len([]rune(p)) + 2
		}
		flush(s.end)
	}
	return out
}

func hardSplit(s span) []span {
	runes := []rune(s.text)
	var out []span
	for i := 0; i < len(runes); i += maxChars {
		end := i + maxChars
		if end > len(runes) {
			end = len(runes)
		}
		out = append(out, span{
			text:      string(runes[i:end]),
			start:     s.start + i,
			end:       s.start + end,
			coherence: s.coherence,
		})
	}
	return out
}

func header(text string) string {
	trimmed := strings.TrimSpace(text)
	line := trimmed
	if idx := strings.IndexByte(trimmed, '\n'); idx >= 0 {
		line = trimmed[:idx]
	}
	line = strings.TrimSpace(line)
	r := []rune(line)
	if len(r) > 80 {
		r = r[:80]
	}
	return string(r)
}

func byteIndexToRune(s string) map[int]int {
	m := make(map[int]int, len(s))
	ri := 0
	for bi := range s {
		m[bi] = ri
		ri++
	}
	m[len(s)] = ri
	return m
}

func groupSentences(n int, boundaries []int) [][2]int {
	type seg = [2]int
	bounds := append([]int{0}, boundaries...)
	bounds = append(bounds, n)
	groups := make([][2]int, 0, len(bounds)-1)
	for i := 0; i < len(bounds)-1; i++ {
		if bounds[i] >= bounds[i+1] {
			continue
		}
		groups = append(groups, seg{bounds[i], bounds[i+1] - 1})
	}
	return groups
}

func meanStd(xs []float64) (mean, std float64) {
	n := float64(len(xs))
	for _, x := range xs {
		mean += x
	}
	mean /= n
	var sumSq float64
	for _, x := range xs {
		d := x - mean
		sumSq += d * d
	}
	std = math.Sqrt(sumSq / n)
	return
}

func clampF(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

type sentence struct {
	text       string
	start, end int
}

func sentencesText(ss []sentence) string {
	parts := make([]string, len(ss))
	for i, s := range ss {
		parts[i] = s.text
	}
	return strings.Join(parts, " ")
}

// splitSentences performs punctuation-based sentence splitting that treats
// a `.`/`!`/`?` as a sentence end only when followed by whitespace and an
// uppercase letter (or end of text) and the preceding token is not a known
// abbreviation.
func splitSentences(text string) []sentence {
	runes := []rune(text)
	n := len(runes)
	var out []sentence
	start := 0
	for i := 0; i < n; i++ {
		r := runes[i]
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		j := i + 1
		for j < n && (runes[j] == ' ' || runes[j] == '\t' || runes[j] == '\n') {
			j++
		}
		boundaryOK := j >= n || unicode.IsUpper(runes[j])
		if !boundaryOK {
			continue
		}
		word := lastWord(string(runes[start : i+1]))
		if abbreviations[strings.ToLower(word)] {
			continue
		}
		sentText := strings.TrimSpace(string(runes[start : i+1]))
		if sentText != "" {
			out = append(out, sentence{text: sentText, start: start, end: i + 1})
		}
		start = j
		i = j - 1
	}
	if start < n {
		tail := strings.TrimSpace(string(runes[start:]))
		if tail != "" {
			out = append(out, sentence{text: tail, start: start, end: n})
		}
	}
	return out
}

func lastWord(s string) string {
	s = strings.TrimSpace(s)
	idx := strings.LastIndexAny(s, " \t\n")
	if idx < 0 {
		return s
	}
	return s[idx+1:]
}

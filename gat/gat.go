// Package gat implements the V12 graph attention network: a
// two-layer, multi-head attention network over the contract graph,
// expressed as pure dense linear algebra with no external ML runtime.
// Weights are Xavier-initialized once at construction with a fixed seed,
// mirroring the deterministic-seed discipline in encoder.HashEmbedding,
// which this package also reuses as its stand-in node-text embedding.
package gat

import (
	"math"
	"math/rand"
	"sort"

	"github.com/semaj90/legalrisk/clause"
	"github.com/semaj90/legalrisk/encoder"
	"github.com/semaj90/legalrisk/graph"
)

const (
	inputDim    = 400
	hidden1Dim  = 256
	hidden2Dim  = 128
	heads       = 4
	categoryDim = 14 // one-hot over taxonomy position, last slot shared beyond index 13
	leakyAlpha  = 0.2
	seed        = 42
)

// NodeResult is one node's GAT-derived risk and graph importance.
type NodeResult struct {
	ClauseID   string  `json:"clause_id"`
	Risk       float64 `json:"risk"`
	Importance float64 `json:"importance"`
}

// TopEdge is one of the highest-attention edges in the final layer,
// reported for explainability.
type TopEdge struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Weight float64 `json:"weight"`
}

// Scores is the GAT subsystem's output for one contract graph.
type Scores struct {
	NodeResults    []NodeResult `json:"node_results"`
	GraphEmbedding [64]float64  `json:"graph_embedding"`
	GraphRisk      float64      `json:"graph_risk"`
	Anomaly        float64      `json:"anomaly"`
	TopEdges       []TopEdge    `json:"top_edges"`
}

// layer holds one GAT layer's per-head weights.
type layer struct {
	w    [][][]float64 // [head][in][headDim]
	aSrc [][]float64   // [head][headDim]
	aDst [][]float64   // [head][headDim]
	bias [][]float64   // [head][headDim]
}

// Network holds the fixed, Xavier-initialized weights for both GAT layers
// and the risk head. Built once; Forward never mutates it.
type Network struct {
	l1     layer
	l2     layer
	riskW1 [][]float64 // 128x32
	riskB1 []float64
	riskW2 []float64 // 32x1
	riskB2 float64
}

// New builds the network with deterministic Xavier-initialized weights.
func New() *Network {
	rng := rand.New(rand.NewSource(seed))
	n := &Network{
		l1: newLayer(rng, inputDim, hidden1Dim, heads),
		l2: newLayer(rng, hidden1Dim, hidden2Dim, heads),
	}
	n.riskW1 = xavierMatrix(rng, hidden2Dim, 32)
	n.riskB1 = make([]float64, 32)
	n.riskW2 = xavierVector(rng, 32, 1)
	n.riskB2 = -0.5 // calibration bias: favor moderate risk absent strong signal
	return n
}

func newLayer(rng *rand.Rand, in, out, nHeads int) layer {
	headDim := out / nHeads
	l := layer{
		w:    make([][][]float64, nHeads),
		aSrc: make([][]float64, nHeads),
		aDst: make([][]float64, nHeads),
		bias: make([][]float64, nHeads),
	}
	for h := 0; h < nHeads; h++ {
		l.w[h] = xavierMatrix(rng, in, headDim)
		l.aSrc[h] = xavierVector(rng, headDim, 1)
		l.aDst[h] = xavierVector(rng, headDim, 1)
		l.bias[h] = make([]float64, headDim)
	}
	return l
}

func xavierMatrix(rng *rand.Rand, rows, cols int) [][]float64 {
	limit := math.Sqrt(6.0 / float64(rows+cols))
	m := make([][]float64, rows)
	for i := range m {
		m[i] = make([]float64, cols)
		for j := range m[i] {
			m[i][j] = (rng.Float64()*2 - 1) * limit
		}
	}
	return m
}

func xavierVector(rng *rand.Rand, n, fanOut int) []float64 {
	limit := math.Sqrt(6.0 / float64(n+fanOut))
	v := make([]float64, n)
	for i := range v {
		v[i] = (rng.Float64()*2 - 1) * limit
	}
	return v
}

// adjacency is a dense symmetric node-to-node graph with self-loops.
type adjacency struct {
	weight [][]float64 // 0 where no edge
}

// Forward runs both GAT layers and the risk head over g, producing node
// risks, an importance-weighted graph risk, a 64-d graph embedding, and a
// structural anomaly score. An empty graph yields a zero-valued Scores.
func (n *Network) Forward(g graph.Graph) Scores {
	nodes := g.Nodes
	if len(nodes) == 0 {
		return Scores{}
	}

	adj := buildAdjacency(g)
	x := buildFeatures(nodes)

	h1, _ := n.l1.forward(x, adj)
	h1 = applyElementwise(h1, elu)

	h2, attn2 := n.l2.forward(h1, adj)
	h2 = applyElementwise(h2, elu)

	risks := make([]float64, len(nodes))
	for i, row := range h2 {
		risks[i] = n.riskHead(row)
	}

	importance := columnNormalizedAttention(attn2)

	var graphRisk float64
	for i, r := range risks {
		graphRisk += r * importance[i]
	}
	graphRisk *= 100

	embedding := readout(h2)

	anomaly := structuralAnomaly(attn2)

	results := make([]NodeResult, len(nodes))
	for i, node := range nodes {
		results[i] = NodeResult{ClauseID: node.ID, Risk: risks[i], Importance: importance[i]}
	}

	return Scores{
		NodeResults:    results,
		GraphEmbedding: embedding,
		GraphRisk:      graphRisk,
		Anomaly:        anomaly,
		TopEdges:       topEdges(nodes, attn2),
	}
}

// forward runs one GAT layer: per-head linear projection, masked
// leaky-ReLU attention, row-softmax, weighted aggregation, head concat.
// Returns the concatenated output and the per-edge attention matrix
// averaged across heads (used by the caller for importance/anomaly).
func (l layer) forward(x [][]float64, adj adjacency) ([][]float64, [][]float64) {
	n := len(x)
	nHeads := len(l.w)
	headDim := len(l.w[0][0])

	wh := make([][][]float64, nHeads) // [head][node][headDim]
	for h := 0; h < nHeads; h++ {
		wh[h] = make([][]float64, n)
		for i := range x {
			wh[h][i] = matVec(l.w[h], x[i])
		}
	}

	out := make([][]float64, n)
	for i := range out {
		out[i] = make([]float64, 0, headDim*nHeads)
	}

	avgAttn := make([][]float64, n)
	for i := range avgAttn {
		avgAttn[i] = make([]float64, n)
	}

	for h := 0; h < nHeads; h++ {
		scores := make([][]float64, n)
		for i := 0; i < n; i++ {
			scores[i] = make([]float64, n)
			for j := 0; j < n; j++ {
				if adj.weight[i][j] == 0 {
					scores[i][j] = math.Inf(-1)
					continue
				}
				e := dot(l.aSrc[h], wh[h][i]) + dot(l.aDst[h], wh[h][j])
				e = leakyReLU(e, leakyAlpha)
				e += math.Log(adj.weight[i][j] + 1e-6)
				scores[i][j] = e
			}
		}
		alpha := rowSoftmax(scores)
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				avgAttn[i][j] += alpha[i][j] / float64(nHeads)
			}
		}
		for i := 0; i < n; i++ {
			agg := make([]float64, headDim)
			for j := 0; j < n; j++ {
				if alpha[i][j] == 0 {
					continue
				}
				for k := 0; k < headDim; k++ {
					agg[k] += alpha[i][j] * wh[h][j][k]
				}
			}
			for k := range agg {
				agg[k] += l.bias[h][k]
			}
			out[i] = append(out[i], agg...)
		}
	}
	return out, avgAttn
}

func (n *Network) riskHead(h2Row []float64) float64 {
	hidden := make([]float64, len(n.riskB1))
	for j := range hidden {
		var sum float64
		for i, x := range h2Row {
			sum += x * n.riskW1[i][j]
		}
		hidden[j] = relu(sum + n.riskB1[j])
	}
	var z float64
	for i, h := range hidden {
		z += h * n.riskW2[i]
	}
	return sigmoid(z + n.riskB2)
}

func buildFeatures(nodes []clause.Classified) [][]float64 {
	out := make([][]float64, len(nodes))
	for i, node := range nodes {
		v := make([]float64, inputDim)
		emb := encoder.HashEmbedding(string(node.Type), encoder.Dims)
		for j, f := range emb {
			v[j] = float64(f)
		}
		v[encoder.Dims] = node.CalibratedConfidence
		v[encoder.Dims+1] = node.RiskWeight
		idx := categoryIndexOf(node.Type)
		v[encoder.Dims+2+idx] = 1
		out[i] = v
	}
	return out
}

func categoryIndexOf(t clause.Type) int {
	idx := clause.Index(t)
	if idx < 0 || idx >= categoryDim {
		return categoryDim - 1
	}
	return idx
}

// buildAdjacency derives a binary symmetric node adjacency, weighted by
// edge severity, from g.Edges. If g carries no edges (no classified pair
// matched the static relationship catalog), it re-derives edges from the
// catalog directly via graph.Build so the GAT still sees structure.
func buildAdjacency(g graph.Graph) adjacency {
	n := len(g.Nodes)
	a := adjacency{weight: make([][]float64, n)}
	for i := range a.weight {
		a.weight[i] = make([]float64, n)
		a.weight[i][i] = 1 // self-loop
	}

	typeToIdx := map[clause.Type][]int{}
	for i, node := range g.Nodes {
		typeToIdx[node.Type] = append(typeToIdx[node.Type], i)
	}

	edges := g.Edges
	if len(edges) == 0 {
		synth, _ := graph.Build(g.Nodes, "")
		edges = synth.Edges
	}

	for _, e := range edges {
		if !e.IsSatisfied {
			continue
		}
		for _, i := range typeToIdx[e.Source] {
			for _, j := range typeToIdx[clause.Type(e.Target)] {
				if i == j {
					continue
				}
				if e.Severity > a.weight[i][j] {
					a.weight[i][j] = e.Severity
					a.weight[j][i] = e.Severity
				}
			}
		}
	}
	return a
}

func topEdges(nodes []clause.Classified, attn [][]float64) []TopEdge {
	type candidate struct {
		i, j   int
		weight float64
	}
	var cands []candidate
	for i := range attn {
		for j := range attn[i] {
			if i == j || attn[i][j] <= 0 {
				continue
			}
			cands = append(cands, candidate{i, j, attn[i][j]})
		}
	}
	sort.Slice(cands, func(a, b int) bool { return cands[a].weight > cands[b].weight })
	if len(cands) > 10 {
		cands = cands[:10]
	}
	out := make([]TopEdge, len(cands))
	for k, c := range cands {
		out[k] = TopEdge{Source: nodes[c.i].ID, Target: nodes[c.j].ID, Weight: c.weight}
	}
	return out
}

// columnNormalizedAttention sums attention directed into each node across
// all sources and normalizes so the importances sum to ~1.
func columnNormalizedAttention(attn [][]float64) []float64 {
	n := len(attn)
	col := make([]float64, n)
	var total float64
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			col[j] += attn[i][j]
			total += attn[i][j]
		}
	}
	if total == 0 {
		for i := range col {
			col[i] = 1.0 / float64(n)
		}
		return col
	}
	for i := range col {
		col[i] /= total
	}
	return col
}

// structuralAnomaly is 1 minus the normalized entropy of the nonzero
// attention weights: a near-uniform distribution scores low (unremarkable
// structure), a sharply peaked one scores high.
func structuralAnomaly(attn [][]float64) float64 {
	var weights []float64
	var total float64
	for _, row := range attn {
		for _, w := range row {
			if w > 0 {
				weights = append(weights, w)
				total += w
			}
		}
	}
	if len(weights) == 0 || total == 0 {
		return 0
	}
	var h float64
	for _, w := range weights {
		p := w / total
		if p > 0 {
			h -= p * math.Log(p)
		}
	}
	hMax := math.Log(float64(len(weights)))
	if hMax == 0 {
		return 0
	}
	return clamp01(1 - h/hMax)
}

// readout pools final-layer node representations into a fixed 64-d graph
// embedding: mean and max pooling concatenated, truncated to 64 dims.
func readout(h2 [][]float64) [64]float64 {
	var out [64]float64
	if len(h2) == 0 {
		return out
	}
	dim := len(h2[0])
	mean := make([]float64, dim)
	max := make([]float64, dim)
	copy(max, h2[0])
	for _, row := range h2 {
		for k, v := range row {
			mean[k] += v
			if v > max[k] {
				max[k] = v
			}
		}
	}
	for k := range mean {
		mean[k] /= float64(len(h2))
	}
	concat := append(append([]float64{}, mean...), max...)
	for i := 0; i < 64 && i < len(concat); i++ {
		out[i] = concat[i]
	}
	return out
}

func matVec(w [][]float64, x []float64) []float64 {
	cols := len(w[0])
	out := make([]float64, cols)
	for i, xi := range x {
		if xi == 0 {
			continue
		}
		for j := 0; j < cols; j++ {
			out[j] += xi * w[i][j]
		}
	}
	return out
}

func dot(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

func rowSoftmax(scores [][]float64) [][]float64 {
	out := make([][]float64, len(scores))
	for i, row := range scores {
		maxV := math.Inf(-1)
		for _, v := range row {
			if v > maxV {
				maxV = v
			}
		}
		var sum float64
		exp := make([]float64, len(row))
		for j, v := range row {
			if math.IsInf(v, -1) {
				exp[j] = 0
				continue
			}
			exp[j] = math.Exp(v - maxV)
			sum += exp[j]
		}
		out[i] = make([]float64, len(row))
		if sum == 0 {
			continue
		}
		for j := range exp {
			out[i][j] = exp[j] / sum
		}
	}
	return out
}

func applyElementwise(m [][]float64, f func(float64) float64) [][]float64 {
	out := make([][]float64, len(m))
	for i, row := range m {
		out[i] = make([]float64, len(row))
		for j, v := range row {
			out[i][j] = f(v)
		}
	}
	return out
}

func leakyReLU(x, alpha float64) float64 {
	if x >= 0 {
		return x
	}
	return alpha * x
}

func elu(x float64) float64 {
	if x >= 0 {
		return x
	}
	return math.Exp(x) - 1
}

func relu(x float64) float64 {
	if x > 0 {
		return x
	}
	return 0
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// Package corpus maintains running sufficient statistics over every
// ingested report and detects anomalies against those statistics. The
// profile is single-writer, many-reader: ingests serialize behind a
// mutex and write through to the backing ObjectStore, readers snapshot.
package corpus

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/bytedance/sonic"

	"github.com/semaj90/legalrisk/clause"
	"github.com/semaj90/legalrisk/store"
)

// ClauseTypeStats are the running sufficient statistics for one clause
// type across every ingested contract.
type ClauseTypeStats struct {
	Count           int     `json:"count"`
	SumConfidence   float64 `json:"sum_confidence"`
	SumConfidenceSq float64 `json:"sum_confidence_sq"`
	SumRisk         float64 `json:"sum_risk"`
	SumRiskSq       float64 `json:"sum_risk_sq"`
	SumLen          float64 `json:"sum_len"`
	SumLenSq        float64 `json:"sum_len_sq"`
	PresenceCount   int     `json:"presence_count"`
}

func (s ClauseTypeStats) meanConfidence() float64 { return safeDiv(s.SumConfidence, float64(s.Count)) }
func (s ClauseTypeStats) stdConfidence() float64 {
	return stdOf(s.SumConfidence, s.SumConfidenceSq, s.Count)
}
func (s ClauseTypeStats) presenceRate(totalContracts int) float64 {
	return safeDiv(float64(s.PresenceCount), float64(totalContracts))
}

// rawProfile is the on-disk representation: underscore-prefixed fields
// carry full sufficient statistics for reconstruction, non-underscored
// fields are human-readable summaries recomputed on every save.
type rawProfile struct {
	TotalContracts     int                             `json:"total_contracts"`
	ContractTypeCounts map[string]int                  `json:"contract_type_counts"`
	MeanRiskScore      float64                         `json:"mean_risk_score"`
	StdRiskScore       float64                         `json:"std_risk_score"`
	MeanClauseCount    float64                         `json:"mean_clause_count"`
	ClauseStatistics   map[clause.Type]clauseSummary   `json:"clause_statistics"`
	RawClauseStats     map[clause.Type]ClauseTypeStats `json:"_raw_clause_stats"`
	RiskScoreSum       float64                         `json:"_risk_score_sum"`
	RiskScoreSqSum     float64                         `json:"_risk_score_sq_sum"`
	ClauseCountSum     float64                         `json:"_clause_count_sum"`
	ClauseCountSqSum   float64                         `json:"_clause_count_sq_sum"`
}

type clauseSummary struct {
	Count          int     `json:"count"`
	MeanConfidence float64 `json:"mean_confidence"`
	MeanRisk       float64 `json:"mean_risk"`
	MeanLength     float64 `json:"mean_length"`
	PresenceRate   float64 `json:"presence_rate"`
}

// Profile is the in-memory corpus profile, single-writer/many-reader.
type Profile struct {
	mu                 sync.RWMutex
	totalContracts     int
	contractTypeCounts map[string]int
	riskScoreSum       float64
	riskScoreSqSum     float64
	clauseCountSum     float64
	clauseCountSqSum   float64
	clauseStats        map[clause.Type]*ClauseTypeStats

	backing store.ObjectStore
}

// New loads an existing profile from backing, or starts an empty one if
// none exists.
func New(ctx context.Context, backing store.ObjectStore) (*Profile, error) {
	p := &Profile{
		contractTypeCounts: map[string]int{},
		clauseStats:        map[clause.Type]*ClauseTypeStats{},
		backing:            backing,
	}
	data, err := backing.Load(ctx)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return p, nil
	}
	var raw rawProfile
	if err := sonic.Unmarshal(data, &raw); err != nil {
		return p, nil // corrupt/missing profile: start fresh rather than failing the pipeline
	}
	p.totalContracts = raw.TotalContracts
	p.contractTypeCounts = raw.ContractTypeCounts
	p.riskScoreSum = raw.RiskScoreSum
	p.riskScoreSqSum = raw.RiskScoreSqSum
	p.clauseCountSum = raw.ClauseCountSum
	p.clauseCountSqSum = raw.ClauseCountSqSum
	for t, s := range raw.RawClauseStats {
		st := s
		p.clauseStats[t] = &st
	}
	return p, nil
}

// IngestInput is the subset of an analysis report Ingest needs.
type IngestInput struct {
	ContractType string
	RiskScore    float64
	Classified   []clause.Classified
}

// Ingest folds one analyzed contract into the running statistics and
// persists the updated profile. A persistence failure is logged by the
// caller and does not roll back the in-memory update; the in-memory
// profile is the source of truth.
func (p *Profile) Ingest(ctx context.Context, in IngestInput) error {
	p.mu.Lock()
	p.totalContracts++
	p.contractTypeCounts[in.ContractType]++
	p.riskScoreSum += in.RiskScore
	p.riskScoreSqSum += in.RiskScore * in.RiskScore
	count := float64(len(in.Classified))
	p.clauseCountSum += count
	p.clauseCountSqSum += count * count

	present := map[clause.Type]bool{}
	for _, c := range in.Classified {
		present[c.Type] = true
		s := p.statsFor(c.Type)
		s.Count++
		s.SumConfidence += c.CalibratedConfidence
		s.SumConfidenceSq += c.CalibratedConfidence * c.CalibratedConfidence
		s.SumRisk += c.RiskWeight
		s.SumRiskSq += c.RiskWeight * c.RiskWeight
		length := float64(len([]rune(c.Text)))
		s.SumLen += length
		s.SumLenSq += length * length
	}
	for t := range present {
		p.statsFor(t).PresenceCount++
	}
	snapshot := p.snapshotLocked()
	p.mu.Unlock()

	data, err := sonic.Marshal(snapshot)
	if err != nil {
		return err
	}
	return p.backing.Save(ctx, data)
}

func (p *Profile) statsFor(t clause.Type) *ClauseTypeStats {
	s, ok := p.clauseStats[t]
	if !ok {
		s = &ClauseTypeStats{}
		p.clauseStats[t] = s
	}
	return s
}

func (p *Profile) snapshotLocked() rawProfile {
	raw := rawProfile{
		TotalContracts:     p.totalContracts,
		ContractTypeCounts: copyIntMap(p.contractTypeCounts),
		MeanRiskScore:      safeDiv(p.riskScoreSum, float64(p.totalContracts)),
		StdRiskScore:       stdOf(p.riskScoreSum, p.riskScoreSqSum, p.totalContracts),
		MeanClauseCount:    safeDiv(p.clauseCountSum, float64(p.totalContracts)),
		ClauseStatistics:   map[clause.Type]clauseSummary{},
		RawClauseStats:     map[clause.Type]ClauseTypeStats{},
		RiskScoreSum:       p.riskScoreSum,
		RiskScoreSqSum:     p.riskScoreSqSum,
		ClauseCountSum:     p.clauseCountSum,
		ClauseCountSqSum:   p.clauseCountSqSum,
	}
	for t, s := range p.clauseStats {
		raw.RawClauseStats[t] = *s
		raw.ClauseStatistics[t] = clauseSummary{
			Count:          s.Count,
			MeanConfidence: s.meanConfidence(),
			MeanRisk:       safeDiv(s.SumRisk, float64(s.Count)),
			MeanLength:     safeDiv(s.SumLen, float64(s.Count)),
			PresenceRate:   s.presenceRate(p.totalContracts),
		}
	}
	return raw
}

func copyIntMap(m map[string]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func stdOf(sum, sumSq float64, n int) float64 {
	if n == 0 {
		return 0
	}
	mean := sum / float64(n)
	variance := sumSq/float64(n) - mean*mean
	if variance < 0 {
		variance = 0
	}
	return math.Sqrt(variance)
}

func safeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}

// Severity is an anomaly's urgency bucket.
type Severity string

const (
	SeverityAlert   Severity = "alert"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// AnomalyKind names which detector raised an anomaly.
type AnomalyKind string

const (
	KindUnusualConfidence AnomalyKind = "unusual_confidence"
	KindMissing           AnomalyKind = "missing"
	KindOutlier           AnomalyKind = "outlier"
)

// Anomaly is one flagged deviation from corpus norms.
type Anomaly struct {
	ClauseType clause.Type `json:"clause_type,omitempty"`
	Kind       AnomalyKind `json:"kind"`
	Severity   Severity    `json:"severity"`
	Z          float64     `json:"z"`
	Detail     string      `json:"detail"`
}

// Comparison is the output of Compare.
type Comparison struct {
	InsufficientData     bool      `json:"insufficient_data"`
	RiskZ                float64   `json:"risk_z"`
	Anomalies            []Anomaly `json:"anomalies"`
	StructuralSimilarity float64   `json:"structural_similarity"`
	ClauseCoverage       float64   `json:"clause_coverage"`
}

// CompareInput is the subset of a report Compare needs.
type CompareInput struct {
	RiskScore  float64
	Classified []clause.Classified
}

// Compare evaluates in against the running corpus profile. Fewer than
// three ingested contracts yields an "insufficient data" result rather
// than unreliable z-scores.
func (p *Profile) Compare(in CompareInput) Comparison {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.totalContracts < 3 {
		return Comparison{InsufficientData: true}
	}

	muRisk := p.riskScoreSum / float64(p.totalContracts)
	sigmaRisk := stdOf(p.riskScoreSum, p.riskScoreSqSum, p.totalContracts)
	riskZ := 0.0
	if sigmaRisk > 0 {
		riskZ = (in.RiskScore - muRisk) / sigmaRisk
	}

	present := map[clause.Type]bool{}
	byType := map[clause.Type][]clause.Classified{}
	for _, c := range in.Classified {
		present[c.Type] = true
		byType[c.Type] = append(byType[c.Type], c)
	}

	var anomalies []Anomaly

	for t, clauses := range byType {
		s, ok := p.clauseStats[t]
		if !ok || s.Count < 3 {
			continue
		}
		std := s.stdConfidence()
		if std == 0 {
			continue
		}
		meanHere := meanConfidence(clauses)
		z := (meanHere - s.meanConfidence()) / std
		if math.Abs(z) > 2 {
			anomalies = append(anomalies, Anomaly{
				ClauseType: t, Kind: KindUnusualConfidence, Severity: SeverityWarning, Z: z,
				Detail: "classification confidence for this clause type deviates from corpus norms",
			})
		}
	}

	for t, s := range p.clauseStats {
		rate := s.presenceRate(p.totalContracts)
		if rate > 0.7 && !present[t] {
			anomalies = append(anomalies, Anomaly{
				ClauseType: t, Kind: KindMissing, Severity: SeverityWarning, Z: rate,
				Detail: "clause type present in most corpus contracts is absent here",
			})
		}
	}
	for t := range present {
		s, ok := p.clauseStats[t]
		rate := 0.0
		if ok {
			rate = s.presenceRate(p.totalContracts)
		}
		if rate < 0.15 {
			anomalies = append(anomalies, Anomaly{
				ClauseType: t, Kind: KindOutlier, Severity: SeverityInfo, Z: rate,
				Detail: "clause type rarely seen in the corpus is present here",
			})
		}
	}

	if math.Abs(riskZ) > 2 {
		sev := SeverityWarning
		if math.Abs(riskZ) > 3 {
			sev = SeverityAlert
		}
		anomalies = append(anomalies, Anomaly{
			Kind: KindOutlier, Severity: sev, Z: riskZ,
			Detail: "overall risk score deviates sharply from the corpus mean",
		})
	}

	sortAnomalies(anomalies)

	corpusTypes := map[clause.Type]bool{}
	common := map[clause.Type]bool{}
	for t, s := range p.clauseStats {
		if s.PresenceCount > 0 {
			corpusTypes[t] = true
		}
		if s.presenceRate(p.totalContracts) > 0.5 {
			common[t] = true
		}
	}

	return Comparison{
		RiskZ:                riskZ,
		Anomalies:            anomalies,
		StructuralSimilarity: jaccard(present, corpusTypes),
		ClauseCoverage:       coverage(present, common),
	}
}

func meanConfidence(classified []clause.Classified) float64 {
	var sum float64
	for _, c := range classified {
		sum += c.CalibratedConfidence
	}
	return safeDiv(sum, float64(len(classified)))
}

var severityRank = map[Severity]int{SeverityAlert: 0, SeverityWarning: 1, SeverityInfo: 2}

func sortAnomalies(anomalies []Anomaly) {
	sort.Slice(anomalies, func(i, j int) bool {
		if severityRank[anomalies[i].Severity] != severityRank[anomalies[j].Severity] {
			return severityRank[anomalies[i].Severity] < severityRank[anomalies[j].Severity]
		}
		return math.Abs(anomalies[i].Z) > math.Abs(anomalies[j].Z)
	})
}

func jaccard(a, b map[clause.Type]bool) float64 {
	union := map[clause.Type]bool{}
	inter := 0
	for t := range a {
		union[t] = true
		if b[t] {
			inter++
		}
	}
	for t := range b {
		union[t] = true
	}
	if len(union) == 0 {
		return 0
	}
	return float64(inter) / float64(len(union))
}

func coverage(present, common map[clause.Type]bool) float64 {
	if len(common) == 0 {
		return 1.0
	}
	hit := 0
	for t := range common {
		if present[t] {
			hit++
		}
	}
	return float64(hit) / float64(len(common))
}

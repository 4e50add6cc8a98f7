// Package graph builds the inter-clause relationship graph and its
// derived analysis: conflicts, unmet dependencies, and clause types a
// contract of this kind would be expected to carry but doesn't. Edges
// come from a static, typed relationship catalog rather than per-text
// inference.
package graph

import (
	"math"
	"sort"

	"github.com/semaj90/legalrisk/clause"
)

// EdgeKind is the closed set of relationship kinds between two clause
// types.
type EdgeKind string

const (
	Conflicts   EdgeKind = "conflicts"
	DependsOn   EdgeKind = "depends_on"
	Limits      EdgeKind = "limits"
	Supplements EdgeKind = "supplements"
	References  EdgeKind = "references"
)

// MissingTargetPrefix marks a depends_on edge whose target type is absent
// from the contract. Testable property 4 requires every such edge's
// target to equal this prefix plus the missing clause type.
const MissingTargetPrefix = "missing:"

// Edge is a typed, severity-weighted relationship between two clause
// types.
type Edge struct {
	Source      clause.Type `json:"source"`
	Target      string      `json:"target"`
	Kind        EdgeKind    `json:"kind"`
	Severity    float64     `json:"severity"`
	Description string      `json:"description"`
	IsSatisfied bool        `json:"is_satisfied"`
}

// Graph is the directed, typed, edge-labeled contract graph. Nodes are the
// classified clauses passed to Build; Edges are derived from the static
// relationship catalog.
type Graph struct {
	Nodes []clause.Classified `json:"nodes"`
	Edges []Edge              `json:"edges"`
}

// MissingExpected is an expected-but-absent clause type for a contract of
// a given kind.
type MissingExpected struct {
	Type               clause.Type `json:"type"`
	ExpectedPrevalence float64     `json:"expected_prevalence"`
	RiskContribution   float64     `json:"risk_contribution"`
	Recommendation     string      `json:"recommendation"`
}

// Analysis is the derived view over a Graph.
type Analysis struct {
	Conflicts           []Edge            `json:"conflicts"`
	MissingDependencies []Edge            `json:"missing_dependencies"`
	MissingExpected     []MissingExpected `json:"missing_expected"`
	StructuralRisk      float64           `json:"structural_risk"`
	CompletenessScore   float64           `json:"completeness_score"`
}

// Build constructs the contract graph and its analysis for a batch of
// classified clauses belonging to a contract of the given contractType
// (an expected-clauses table key; unknown contract types simply get no
// missing-expected analysis and a completeness score of 1.0).
func Build(classified []clause.Classified, contractType string) (Graph, Analysis) {
	present := map[clause.Type]bool{}
	for _, c := range classified {
		present[c.Type] = true
	}

	var edges []Edge
	for _, rel := range catalog {
		srcPresent := present[rel.source]
		dstPresent := present[rel.target]

		switch rel.kind {
		case Conflicts:
			if srcPresent && dstPresent {
				edges = append(edges, Edge{
					Source: rel.source, Target: string(rel.target), Kind: Conflicts,
					Severity: rel.severity, Description: rel.description, IsSatisfied: true,
				})
			}
		case DependsOn:
			switch {
			case srcPresent && dstPresent:
				edges = append(edges, Edge{
					Source: rel.source, Target: string(rel.target), Kind: DependsOn,
					Severity: rel.severity, Description: rel.description, IsSatisfied: true,
				})
			case srcPresent && !dstPresent:
				edges = append(edges, Edge{
					Source: rel.source, Target: MissingTargetPrefix + string(rel.target), Kind: DependsOn,
					Severity: rel.severity, Description: rel.description, IsSatisfied: false,
				})
			}
		case Limits, Supplements:
			if srcPresent && dstPresent {
				edges = append(edges, Edge{
					Source: rel.source, Target: string(rel.target), Kind: rel.kind,
					Severity: rel.severity, Description: rel.description, IsSatisfied: true,
				})
			}
		case References:
			if srcPresent && dstPresent {
				edges = append(edges, Edge{
					Source: rel.source, Target: string(rel.target), Kind: References,
					Severity: rel.severity, Description: rel.description, IsSatisfied: true,
				})
			}
		}
	}

	g := Graph{Nodes: classified, Edges: edges}

	var conflicts, missingDeps []Edge
	for _, e := range g.Edges {
		switch {
		case e.Kind == Conflicts:
			conflicts = append(conflicts, e)
		case e.Kind == DependsOn && !e.IsSatisfied:
			missingDeps = append(missingDeps, e)
		}
	}

	missingExpected := missingExpectedFor(contractType, present)

	structuralRisk := structuralRisk(conflicts, missingDeps, missingExpected)
	completeness := completenessFor(contractType, present)

	return g, Analysis{
		Conflicts:           conflicts,
		MissingDependencies: missingDeps,
		MissingExpected:     missingExpected,
		StructuralRisk:      structuralRisk,
		CompletenessScore:   completeness,
	}
}

func missingExpectedFor(contractType string, present map[clause.Type]bool) []MissingExpected {
	expected, ok := expectedClauses[contractType]
	if !ok {
		return nil
	}
	var out []MissingExpected
	for t, prevalence := range expected {
		if present[t] {
			continue
		}
		out = append(out, MissingExpected{
			Type:               t,
			ExpectedPrevalence: prevalence,
			RiskContribution:   math.Floor(prevalence * 40),
			Recommendation:     recommendationFor(t),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExpectedPrevalence > out[j].ExpectedPrevalence })
	return out
}

func completenessFor(contractType string, present map[clause.Type]bool) float64 {
	expected, ok := expectedClauses[contractType]
	if !ok || len(expected) == 0 {
		return 1.0
	}
	var hit int
	for t := range expected {
		if present[t] {
			hit++
		}
	}
	return float64(hit) / float64(len(expected))
}

func structuralRisk(conflicts, missingDeps []Edge, missingExpected []MissingExpected) float64 {
	var risk float64
	for _, c := range conflicts {
		risk += c.Severity * 30
	}
	for _, m := range missingDeps {
		risk += m.Severity * 25
	}
	top := missingExpected
	if len(top) > 5 {
		top = top[:5]
	}
	for _, m := range top {
		risk += m.RiskContribution
	}
	if risk > 100 {
		risk = 100
	}
	return risk
}

func recommendationFor(t clause.Type) string {
	entry, ok := clause.Entry(t)
	if !ok {
		return "Add a " + string(t) + " clause."
	}
	return "Add a " + string(t) + " clause: " + entry.DescriptionEN
}

package pipeline

import "fmt"

// InvalidInputError is returned when Analyze cannot proceed at all —
// currently only empty/whitespace-only input text. Contract
// type is never "invalid": an unrecognized contract_type degrades
// gracefully (graph.Build returns completeness_score 1.0 with no
// missing-expected entries rather than erroring).
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("pipeline: invalid input: %s", e.Reason)
}

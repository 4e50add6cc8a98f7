package chunk

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semaj90/legalrisk/encoder"
)

func TestChunkEmptyTextReturnsNothing(t *testing.T) {
	c := New(encoder.NewDeterministic())
	clauses, err := c.Chunk(context.Background(), "   \n\t ")
	require.NoError(t, err)
	assert.Empty(t, clauses)
}

func TestChunkNumberedSections(t *testing.T) {
	text := `1. INDEMNIFICATION
Each party shall indemnify the other against third-party claims arising from breach of this agreement.

2. LIMITATION OF LIABILITY
In no event shall either party's aggregate liability exceed the fees paid in the preceding twelve months.

3. TERMINATION
Either party may terminate this agreement upon thirty days written notice to the other party.

4. GOVERNING LAW
This agreement shall be governed by the laws of the State of Delaware without regard to conflict of law principles.
`
	c := New(encoder.NewDeterministic())
	clauses, err := c.Chunk(context.Background(), text)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(clauses), 4)
	for _, cl := range clauses {
		assert.NotEmpty(t, cl.ID)
		assert.NotEmpty(t, cl.Text)
		assert.GreaterOrEqual(t, cl.EndPos, cl.StartPos)
	}
}

func TestChunkWithOptionsDisablesSemanticFallback(t *testing.T) {
	text := strings.Repeat("This is one long paragraph of contract text with no numbered sections at all. ", 10) +
		"\n\n" + strings.Repeat("This is a second paragraph with different content entirely. ", 10)
	c := New(encoder.NewDeterministic())

	withSemantic, err := c.ChunkWithOptions(context.Background(), text, true)
	require.NoError(t, err)

	withoutSemantic, err := c.ChunkWithOptions(context.Background(), text, false)
	require.NoError(t, err)

	assert.NotEmpty(t, withSemantic)
	assert.NotEmpty(t, withoutSemantic)
}

func TestChunkIsIdempotentOnSameInput(t *testing.T) {
	text := `1. CONFIDENTIALITY
Each party shall keep the other's confidential information secret for five years.

2. ASSIGNMENT
Neither party may assign this agreement without the prior written consent of the other.
`
	c := New(encoder.NewDeterministic())
	a, err := c.Chunk(context.Background(), text)
	require.NoError(t, err)
	b, err := c.Chunk(context.Background(), text)
	require.NoError(t, err)
	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].Text, b[i].Text)
	}
}

package handler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"samvad/internal/model"
)

func TestFilterNarrativesDropsShortAndBlank(t *testing.T) {
	long := "This statement is comfortably longer than the minimum accepted narrative length."

	filtered := filterNarratives([]model.Narrative{
		{Speaker: "Alice", Text: long, Position: "Stated position"},
		{Speaker: "", Text: long},
		{Speaker: "Bob", Text: "too short"},
		{Speaker: "  ", Text: long},
	})

	require.Len(t, filtered, 1)
	assert.Equal(t, "Alice", filtered[0].Speaker)
	assert.Equal(t, "Stated position", filtered[0].Position)
}

func TestFilterNarrativesSynthesizesPosition(t *testing.T) {
	long := strings.Repeat("a very long narrative segment ", 5) // > 80 chars

	filtered := filterNarratives([]model.Narrative{
		{Speaker: "Alice", Text: long},
	})

	require.Len(t, filtered, 1)
	assert.Len(t, filtered[0].Position, 80)
	assert.Equal(t, strings.TrimSpace(long)[:80], filtered[0].Position)
}

func TestFilterNarrativesTrimsWhitespace(t *testing.T) {
	text := "  The waiting rooms overflow while families are sent home without any treatment.  "

	filtered := filterNarratives([]model.Narrative{
		{Speaker: " Alice ", Text: text},
	})

	require.Len(t, filtered, 1)
	assert.Equal(t, "Alice", filtered[0].Speaker)
	assert.Equal(t, strings.TrimSpace(text), filtered[0].Text)
}

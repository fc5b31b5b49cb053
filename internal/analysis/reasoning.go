package analysis

import (
	"sort"
	"strings"

	"samvad/internal/model"
)

// ReasoningTracer locates reasoning markers in a text and reconstructs the
// linear reasoning sequence by position.
type ReasoningTracer struct {
	taxonomy *Taxonomy
}

// NewReasoningTracer creates a tracer over the given taxonomy.
func NewReasoningTracer(taxonomy *Taxonomy) *ReasoningTracer {
	return &ReasoningTracer{taxonomy: taxonomy}
}

// Trace records every marker match with its byte offset and category, then
// sorts ascending by offset. Matches from different categories at the same
// span are each retained; the sort is stable so same-offset entries keep
// category declaration order.
func (t *ReasoningTracer) Trace(text string) model.ReasoningProfile {
	lower := strings.ToLower(text)

	var chain []model.ReasoningStep
	for _, step := range t.taxonomy.stepOrder {
		for _, pattern := range t.taxonomy.stepPatterns[step] {
			for _, loc := range pattern.FindAllStringIndex(lower, -1) {
				chain = append(chain, model.ReasoningStep{
					Type:        step,
					Position:    loc[0],
					MatchedText: lower[loc[0]:loc[1]],
				})
			}
		}
	}

	sort.SliceStable(chain, func(i, j int) bool {
		return chain[i].Position < chain[j].Position
	})

	return model.ReasoningProfile{
		Chain:        chain,
		HasStructure: len(chain) > 0,
	}
}

package analysis

import (
	"sort"
	"strings"

	"samvad/internal/model"
)

// ValueExtractor scores a text against the fixed value taxonomy.
type ValueExtractor struct {
	taxonomy *Taxonomy
}

// NewValueExtractor creates an extractor over the given taxonomy.
func NewValueExtractor(taxonomy *Taxonomy) *ValueExtractor {
	return &ValueExtractor{taxonomy: taxonomy}
}

// Extract counts whole-word keyword occurrences (keyword prefixes included,
// so "jobs" counts for "job") per value tag. TopValues holds up to 5
// tags with nonzero scores, descending; ties keep taxonomy declaration order.
func (e *ValueExtractor) Extract(text string) model.ValueProfile {
	lower := strings.ToLower(text)

	scores := make(map[model.ValueTag]int, len(e.taxonomy.valueOrder))
	for _, tag := range e.taxonomy.valueOrder {
		count := 0
		for _, pattern := range e.taxonomy.valuePatterns[tag] {
			count += len(pattern.FindAllStringIndex(lower, -1))
		}
		scores[tag] = count
	}

	ranked := make([]model.ValueTag, len(e.taxonomy.valueOrder))
	copy(ranked, e.taxonomy.valueOrder)
	sort.SliceStable(ranked, func(i, j int) bool {
		return scores[ranked[i]] > scores[ranked[j]]
	})

	top := make([]model.ValueTag, 0, 5)
	for _, tag := range ranked {
		if scores[tag] == 0 {
			continue
		}
		top = append(top, tag)
		if len(top) == 5 {
			break
		}
	}

	return model.ValueProfile{
		TopValues: top,
		Scores:    scores,
	}
}

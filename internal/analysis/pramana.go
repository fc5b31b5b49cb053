package analysis

import (
	"strings"

	"samvad/internal/model"
)

// PramanaClassifier scores a text against the four epistemic source
// categories. Pure and total: any string input yields a valid profile.
type PramanaClassifier struct {
	taxonomy *Taxonomy
}

// NewPramanaClassifier creates a classifier over the given taxonomy.
func NewPramanaClassifier(taxonomy *Taxonomy) *PramanaClassifier {
	return &PramanaClassifier{taxonomy: taxonomy}
}

// Classify counts non-overlapping pattern matches per category across the
// whole text and returns the dominant category. Ties break toward the first
// category in taxonomy declaration order. When nothing matches, the dominant
// source defaults to direct perception with zero confidence.
func (c *PramanaClassifier) Classify(text string) model.EpistemicProfile {
	lower := strings.ToLower(text)

	scores := make(map[model.Pramana]int, len(c.taxonomy.pramanaOrder))
	total := 0
	for _, pramana := range c.taxonomy.pramanaOrder {
		count := 0
		for _, pattern := range c.taxonomy.pramanaPatterns[pramana] {
			count += len(pattern.FindAllStringIndex(lower, -1))
		}
		scores[pramana] = count
		total += count
	}

	dominant := model.PramanaPratyaksha
	if total > 0 {
		best := -1
		for _, pramana := range c.taxonomy.pramanaOrder {
			if scores[pramana] > best {
				best = scores[pramana]
				dominant = pramana
			}
		}
	}

	confidence := 0.0
	if total > 0 {
		confidence = float64(scores[dominant]) / float64(total)
	}

	return model.EpistemicProfile{
		DominantSource: dominant,
		Scores:         scores,
		Confidence:     confidence,
	}
}

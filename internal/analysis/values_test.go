package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"samvad/internal/model"
)

func TestExtractCountsKeywordPrefixes(t *testing.T) {
	extractor := NewValueExtractor(DefaultTaxonomy())

	profile := extractor.Extract("Jobs and wages matter.")

	assert.Equal(t, []model.ValueTag{model.ValueEconomicSecurity}, profile.TopValues)
	assert.Equal(t, 2, profile.Scores[model.ValueEconomicSecurity])
}

func TestExtractTiesKeepDeclarationOrder(t *testing.T) {
	extractor := NewValueExtractor(DefaultTaxonomy())

	// Liberty appears first in the text but family_protection is declared
	// earlier in the taxonomy, so it ranks first on a tied score.
	profile := extractor.Extract("Liberty for the family.")

	assert.Equal(t, []model.ValueTag{
		model.ValueFamilyProtection,
		model.ValueFreedomAndAutonomy,
	}, profile.TopValues)
}

func TestExtractCapsTopValuesAtFive(t *testing.T) {
	extractor := NewValueExtractor(DefaultTaxonomy())

	profile := extractor.Extract("justice health job family community innovation liberty")

	assert.Len(t, profile.TopValues, 5)
	assert.Equal(t, []model.ValueTag{
		model.ValueJusticeAndFairness,
		model.ValueHealthAndWellbeing,
		model.ValueEconomicSecurity,
		model.ValueFamilyProtection,
		model.ValueCommunityWellbeing,
	}, profile.TopValues)
}

func TestExtractExcludesZeroScores(t *testing.T) {
	extractor := NewValueExtractor(DefaultTaxonomy())

	profile := extractor.Extract("")

	assert.Empty(t, profile.TopValues)
	assert.Len(t, profile.Scores, 7)
	for tag, score := range profile.Scores {
		assert.Zero(t, score, "unexpected match for %s", tag)
	}
}

func TestExtractRanksByScore(t *testing.T) {
	extractor := NewValueExtractor(DefaultTaxonomy())

	profile := extractor.Extract("Health care for every patient. Freedom matters too.")

	assert.Equal(t, 3, profile.Scores[model.ValueHealthAndWellbeing])
	// "freedom" counts twice: once for the "freedom" keyword and once as a
	// prefix match for "free".
	assert.Equal(t, 2, profile.Scores[model.ValueFreedomAndAutonomy])
	assert.Equal(t, []model.ValueTag{
		model.ValueHealthAndWellbeing,
		model.ValueFreedomAndAutonomy,
	}, profile.TopValues)
}

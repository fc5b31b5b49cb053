package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"samvad/internal/model"
)

func TestClassifyDefaultsToDirectPerception(t *testing.T) {
	classifier := NewPramanaClassifier(DefaultTaxonomy())

	profile := classifier.Classify("The weather was pleasant yesterday.")

	assert.Equal(t, model.PramanaPratyaksha, profile.DominantSource)
	assert.Equal(t, 0.0, profile.Confidence)
	for pramana, score := range profile.Scores {
		assert.Zero(t, score, "unexpected match for %s", pramana)
	}
}

func TestClassifyFirstHandExperience(t *testing.T) {
	classifier := NewPramanaClassifier(DefaultTaxonomy())

	profile := classifier.Classify("I saw it firsthand. In my experience this works.")

	assert.Equal(t, model.PramanaPratyaksha, profile.DominantSource)
	assert.Equal(t, 3, profile.Scores[model.PramanaPratyaksha])
	assert.Equal(t, 1.0, profile.Confidence)
}

func TestClassifyTestimonyWinsTieWithInference(t *testing.T) {
	classifier := NewPramanaClassifier(DefaultTaxonomy())

	profile := classifier.Classify("Studies show exercise helps. Therefore we should act.")

	require.Equal(t, 1, profile.Scores[model.PramanaSabda])
	require.Equal(t, 1, profile.Scores[model.PramanaAnumana])
	assert.Equal(t, model.PramanaSabda, profile.DominantSource)
	assert.InDelta(t, 0.5, profile.Confidence, 1e-9)
}

func TestClassifyAnalogy(t *testing.T) {
	classifier := NewPramanaClassifier(DefaultTaxonomy())

	profile := classifier.Classify("This is just as bad, similar to the old policy, like a storm.")

	assert.Equal(t, model.PramanaUpamana, profile.DominantSource)
	assert.Equal(t, 3, profile.Scores[model.PramanaUpamana])
	assert.Equal(t, 1.0, profile.Confidence)
}

func TestClassifyIsCaseInsensitive(t *testing.T) {
	classifier := NewPramanaClassifier(DefaultTaxonomy())

	lower := classifier.Classify("according to the report, experts say it works")
	mixed := classifier.Classify("ACCORDING TO the report, Experts Say it works")

	assert.Equal(t, lower.Scores, mixed.Scores)
	assert.Equal(t, lower.DominantSource, mixed.DominantSource)
}

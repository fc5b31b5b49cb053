package analysis

import (
	"errors"

	"samvad/internal/model"
)

// ErrTooFewSpeakers is returned when a dialogue has fewer than two distinct
// speakers; a single narrative cannot produce any pairwise agreement.
var ErrTooFewSpeakers = errors.New("at least 2 distinct speakers are required")

// Analyzer composes the classifier, extractor and tracer into one profile per
// speaker. Stateless after construction; safe for concurrent use.
type Analyzer struct {
	classifier *PramanaClassifier
	extractor  *ValueExtractor
	tracer     *ReasoningTracer
}

// NewAnalyzer creates an analyzer whose components share one taxonomy.
func NewAnalyzer(taxonomy *Taxonomy) *Analyzer {
	return &Analyzer{
		classifier: NewPramanaClassifier(taxonomy),
		extractor:  NewValueExtractor(taxonomy),
		tracer:     NewReasoningTracer(taxonomy),
	}
}

// Analyze builds one SpeakerProfile per narrative, keyed by speaker name.
// Duplicate speaker names overwrite earlier entries. Returns
// ErrTooFewSpeakers when fewer than 2 distinct speakers remain.
func (a *Analyzer) Analyze(narratives []model.Narrative) (map[string]model.SpeakerProfile, error) {
	profiles := make(map[string]model.SpeakerProfile, len(narratives))
	for _, n := range narratives {
		profiles[n.Speaker] = model.SpeakerProfile{
			Speaker:   n.Speaker,
			Text:      n.Text,
			Epistemic: a.classifier.Classify(n.Text),
			Values:    a.extractor.Extract(n.Text),
			Reasoning: a.tracer.Trace(n.Text),
		}
	}

	if len(profiles) < 2 {
		return nil, ErrTooFewSpeakers
	}
	return profiles, nil
}

package analysis

import (
	"testing"

	"pgregory.net/rapid"

	"samvad/internal/model"
)

// textGen produces dialogue-like text mixing marker words with filler so the
// classifiers see both matching and non-matching input.
func textGen() *rapid.Generator[string] {
	return rapid.StringMatching(`([a-z]{1,9} |therefore |studies show |i saw |like |family |health |because |we should ){0,20}`)
}

func TestClassifyConfidenceBounded(t *testing.T) {
	classifier := NewPramanaClassifier(DefaultTaxonomy())

	rapid.Check(t, func(rt *rapid.T) {
		text := textGen().Draw(rt, "text")
		profile := classifier.Classify(text)

		if profile.Confidence < 0 || profile.Confidence > 1 {
			rt.Fatalf("confidence %v out of [0,1]", profile.Confidence)
		}
		if profile.DominantSource == "" {
			rt.Fatalf("dominant source must never be empty")
		}
		for pramana, score := range profile.Scores {
			if score > profile.Scores[profile.DominantSource] {
				rt.Fatalf("%s scored %d above dominant %s", pramana, score, profile.DominantSource)
			}
		}
	})
}

func TestExtractTopValuesInvariants(t *testing.T) {
	extractor := NewValueExtractor(DefaultTaxonomy())

	rapid.Check(t, func(rt *rapid.T) {
		text := textGen().Draw(rt, "text")
		profile := extractor.Extract(text)

		if len(profile.TopValues) > 5 {
			rt.Fatalf("got %d top values, max is 5", len(profile.TopValues))
		}
		for i, tag := range profile.TopValues {
			if profile.Scores[tag] == 0 {
				rt.Fatalf("top value %s has zero score", tag)
			}
			if i > 0 && profile.Scores[tag] > profile.Scores[profile.TopValues[i-1]] {
				rt.Fatalf("top values not sorted descending at index %d", i)
			}
		}
	})
}

func TestTraceChainMonotonic(t *testing.T) {
	tracer := NewReasoningTracer(DefaultTaxonomy())

	rapid.Check(t, func(rt *rapid.T) {
		text := textGen().Draw(rt, "text")
		profile := tracer.Trace(text)

		if profile.HasStructure != (len(profile.Chain) > 0) {
			rt.Fatalf("HasStructure=%v but chain has %d steps", profile.HasStructure, len(profile.Chain))
		}
		for i := 1; i < len(profile.Chain); i++ {
			if profile.Chain[i].Position < profile.Chain[i-1].Position {
				rt.Fatalf("chain not sorted by position at index %d", i)
			}
		}
	})
}

func TestDetectPairInvariants(t *testing.T) {
	taxonomy := DefaultTaxonomy()
	analyzer := NewAnalyzer(taxonomy)
	detector := NewAgreementDetector(taxonomy)

	rapid.Check(t, func(rt *rapid.T) {
		speakers := rapid.SliceOfNDistinct(
			rapid.StringMatching(`[A-Z][a-z]{2,7}`), 2, 5, rapid.ID[string],
		).Draw(rt, "speakers")

		narratives := make([]model.Narrative, len(speakers))
		for i, speaker := range speakers {
			narratives[i] = model.Narrative{
				Speaker: speaker,
				Text:    textGen().Draw(rt, "text"),
			}
		}

		profiles, err := analyzer.Analyze(narratives)
		if err != nil {
			rt.Fatalf("Analyze failed: %v", err)
		}

		agreements := detector.Detect(profiles)

		n := len(speakers)
		if len(agreements) > n*(n-1)/2 {
			rt.Fatalf("got %d agreements for %d speakers", len(agreements), n)
		}
		for i, agreement := range agreements {
			if agreement.PersonA >= agreement.PersonB {
				rt.Fatalf("pair %q/%q not in lexicographic order", agreement.PersonA, agreement.PersonB)
			}
			if len(agreement.SharedValues) > 5 {
				rt.Fatalf("shared values exceed cap: %d", len(agreement.SharedValues))
			}
			if agreement.AgreementStrength < 0 || agreement.AgreementStrength > 1 {
				rt.Fatalf("strength %v out of [0,1]", agreement.AgreementStrength)
			}
			if i > 0 && agreement.AgreementStrength > agreements[i-1].AgreementStrength {
				rt.Fatalf("agreements not sorted descending at index %d", i)
			}
			if agreement.Insight == "" {
				rt.Fatalf("agreement %q/%q has empty insight", agreement.PersonA, agreement.PersonB)
			}
		}
	})
}

package analysis

import (
	"fmt"
	"sort"
	"strings"

	"samvad/internal/model"
)

// Agreement strength weights: shared values dominate, epistemic similarity
// and reasoning compatibility refine.
const (
	weightSharedValues = 0.6
	weightPramana      = 0.25
	weightReasoning    = 0.15

	// Pairs at or below this strength with no shared values are dropped.
	agreementThreshold = 0.1
)

// AgreementDetector enumerates speaker pairs, scores their latent common
// ground and synthesizes insight text and recommendations.
type AgreementDetector struct {
	taxonomy *Taxonomy
}

// NewAgreementDetector creates a detector over the given taxonomy.
func NewAgreementDetector(taxonomy *Taxonomy) *AgreementDetector {
	return &AgreementDetector{taxonomy: taxonomy}
}

// Detect scores every unordered speaker pair and returns the qualifying
// agreements sorted descending by strength. Pairs are enumerated over
// lexicographically sorted speaker names so the output is deterministic for a
// given profile set; ties keep enumeration order.
func (d *AgreementDetector) Detect(profiles map[string]model.SpeakerProfile) []model.Agreement {
	speakers := make([]string, 0, len(profiles))
	for speaker := range profiles {
		speakers = append(speakers, speaker)
	}
	sort.Strings(speakers)

	var agreements []model.Agreement
	for i := 0; i < len(speakers); i++ {
		for j := i + 1; j < len(speakers); j++ {
			a := profiles[speakers[i]]
			b := profiles[speakers[j]]

			shared := d.sharedValues(a, b)
			similarity := d.pramanaSimilarity(a, b)
			compatibility := reasoningCompatibility(a, b)
			strength := agreementStrength(shared, similarity, compatibility)

			if strength <= agreementThreshold && len(shared) == 0 {
				continue
			}

			agreements = append(agreements, model.Agreement{
				PersonA:                a.Speaker,
				PersonB:                b.Speaker,
				SharedValues:           shared,
				AgreementStrength:      strength,
				PramanaSimilarity:      similarity,
				ReasoningCompatibility: compatibility,
				Insight:                d.insight(a, b, shared, similarity),
			})
		}
	}

	sort.SliceStable(agreements, func(i, j int) bool {
		return agreements[i].AgreementStrength > agreements[j].AgreementStrength
	})
	return agreements
}

// sharedValues intersects the top values of both speakers, then expands with
// the related-values table. Direct overlaps come first, expanded matches
// after, all in first-encountered order, capped at 5.
func (d *AgreementDetector) sharedValues(a, b model.SpeakerProfile) []model.ValueTag {
	inB := make(map[model.ValueTag]bool, len(b.Values.TopValues))
	for _, tag := range b.Values.TopValues {
		inB[tag] = true
	}

	var shared []model.ValueTag
	seen := make(map[model.ValueTag]bool)
	add := func(tag model.ValueTag) {
		if !seen[tag] {
			seen[tag] = true
			shared = append(shared, tag)
		}
	}

	for _, tag := range a.Values.TopValues {
		if inB[tag] {
			add(tag)
		}
	}

	for _, valA := range a.Values.TopValues {
		for _, valB := range b.Values.TopValues {
			if d.taxonomy.Related(valA, valB) {
				add(valA)
				add(valB)
			}
		}
	}

	if len(shared) > 5 {
		shared = shared[:5]
	}
	return shared
}

// pramanaSimilarity compares dominant knowledge sources: 0.9 for the same
// source, 0.6 for a designated compatible pair, 0.3 otherwise (including when
// either side is missing).
func (d *AgreementDetector) pramanaSimilarity(a, b model.SpeakerProfile) float64 {
	pa := a.Epistemic.DominantSource
	pb := b.Epistemic.DominantSource

	switch {
	case pa == "" || pb == "":
		return 0.3
	case pa == pb:
		return 0.9
	case d.taxonomy.Compatible(pa, pb):
		return 0.6
	default:
		return 0.3
	}
}

// reasoningCompatibility: 0.7 when both have a reasoning chain, 0.4 when
// exactly one does, 0.2 when neither does.
func reasoningCompatibility(a, b model.SpeakerProfile) float64 {
	switch {
	case a.Reasoning.HasStructure && b.Reasoning.HasStructure:
		return 0.7
	case a.Reasoning.HasStructure || b.Reasoning.HasStructure:
		return 0.4
	default:
		return 0.2
	}
}

// agreementStrength is the weighted combination; 3+ shared values saturate
// the value component. Bounded within [0,1] by construction.
func agreementStrength(shared []model.ValueTag, similarity, compatibility float64) float64 {
	valueScore := float64(len(shared)) / 3.0
	if valueScore > 1.0 {
		valueScore = 1.0
	}
	return valueScore*weightSharedValues + similarity*weightPramana + compatibility*weightReasoning
}

// insight writes the human-readable explanation of the agreement. With no
// shared values the common ground is the epistemic approach alone; otherwise
// the shared values are narrated, followed by a same-source or bridging
// framing and a mediation suggestion around the top shared value.
func (d *AgreementDetector) insight(a, b model.SpeakerProfile, shared []model.ValueTag, similarity float64) string {
	pa := a.Epistemic.DominantSource
	pb := b.Epistemic.DominantSource

	if len(shared) == 0 {
		return fmt.Sprintf(
			"While %s and %s may disagree on policy, they use similar epistemological approaches (%s and %s). "+
				"This suggests potential for productive dialogue if they can identify shared goals.",
			a.Speaker, b.Speaker, pa, pb)
	}

	var pramanaInsight string
	if similarity > 0.7 {
		pramanaInsight = fmt.Sprintf(
			"Both primarily use %s (same way of knowing), "+
				"so disagreement likely stems from different interpretations or priorities, not fundamental epistemology.",
			pa)
	} else {
		pramanaInsight = fmt.Sprintf(
			"%s relies on %s while %s uses %s. "+
				"Bridging this gap could help them find common ground despite different reasoning approaches.",
			a.Speaker, pa, b.Speaker, pb)
	}

	return fmt.Sprintf(
		"Both people value %s, but reach different conclusions. %s "+
			"A mediator could highlight their shared concern for %s "+
			"to build consensus on specific action steps.",
		narrateValues(shared), pramanaInsight, shared[0].Label())
}

// narrateValues renders a tag list grammatically: "x", "x and y", or
// "x, y, and z".
func narrateValues(tags []model.ValueTag) string {
	labels := make([]string, len(tags))
	for i, tag := range tags {
		labels[i] = tag.Label()
	}

	switch len(labels) {
	case 1:
		return labels[0]
	case 2:
		return labels[0] + " and " + labels[1]
	default:
		return strings.Join(labels[:len(labels)-1], ", ") + ", and " + labels[len(labels)-1]
	}
}

// fallbackRecommendations are returned when no agreements were detected.
var fallbackRecommendations = []string{
	"No clear hidden agreements detected. Focus on establishing common ground.",
	"Try identifying shared experiences or concerns as a starting point.",
	"Consider using a neutral facilitator to explore potential areas of agreement.",
}

// Recommend turns a detected agreement list into actionable dialogue
// recommendations. An empty list yields the three fixed fallback strings; a
// non-empty list yields up to four templated recommendations driven by the
// strongest agreement, the distinct shared values, epistemic similarity and
// the total agreement count.
func (d *AgreementDetector) Recommend(agreements []model.Agreement) []string {
	if len(agreements) == 0 {
		out := make([]string, len(fallbackRecommendations))
		copy(out, fallbackRecommendations)
		return out
	}

	var recommendations []string

	strongest := agreements[0]
	if strongest.AgreementStrength > 0.6 {
		recommendations = append(recommendations, fmt.Sprintf(
			"Strong agreement detected between %s and %s. Build on their shared values: %s.",
			strongest.PersonA, strongest.PersonB, joinTags(strongest.SharedValues, 2)))
	}

	// Distinct shared values across all agreements, first-encountered order.
	var allShared []model.ValueTag
	seen := make(map[model.ValueTag]bool)
	for _, agreement := range agreements {
		for _, tag := range agreement.SharedValues {
			if !seen[tag] {
				seen[tag] = true
				allShared = append(allShared, tag)
			}
		}
	}
	if len(allShared) >= 3 {
		recommendations = append(recommendations, fmt.Sprintf(
			"Multiple shared values detected across speakers: %s. Frame discussion around these common concerns.",
			joinTags(allShared, 3)))
	}

	similarPairs := 0
	for _, agreement := range agreements {
		if agreement.PramanaSimilarity > 0.6 {
			similarPairs++
		}
	}
	if similarPairs > 1 {
		recommendations = append(recommendations, fmt.Sprintf(
			"%d speaker pair(s) use similar reasoning methods. "+
				"They may disagree on conclusions but share epistemological common ground.",
			similarPairs))
	}

	if len(agreements) > 3 {
		recommendations = append(recommendations,
			"Multiple hidden agreements suggest this group has more common ground than apparent. "+
				"Focus dialogue on shared values to find compromise solutions.")
	}

	return recommendations
}

func joinTags(tags []model.ValueTag, limit int) string {
	if len(tags) > limit {
		tags = tags[:limit]
	}
	parts := make([]string, len(tags))
	for i, tag := range tags {
		parts[i] = string(tag)
	}
	return strings.Join(parts, ", ")
}

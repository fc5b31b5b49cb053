package model

// Pramana is an epistemic source category: the kind of knowledge basis a
// speaker invokes.
type Pramana string

const (
	// PramanaPratyaksha is direct perception / first-hand experience.
	PramanaPratyaksha Pramana = "pratyaksha"
	// PramanaAnumana is inference.
	PramanaAnumana Pramana = "anumana"
	// PramanaSabda is testimony / appeal to authority.
	PramanaSabda Pramana = "sabda"
	// PramanaUpamana is analogy / comparison.
	PramanaUpamana Pramana = "upamana"
)

// EpistemicProfile describes which knowledge sources a text leans on.
// Confidence is scores[dominant] / max(sum(scores), 1); when no pattern
// matched at all, DominantSource falls back to pratyaksha and Confidence is 0.
type EpistemicProfile struct {
	DominantSource Pramana         `json:"dominantSource" bson:"dominantSource"`
	Scores         map[Pramana]int `json:"scores" bson:"scores"`
	Confidence     float64         `json:"confidence" bson:"confidence"`
}

// ValueTag is a normalized concern label signalled by keyword presence.
type ValueTag string

const (
	ValueJusticeAndFairness    ValueTag = "justice_and_fairness"
	ValueHealthAndWellbeing    ValueTag = "health_and_wellbeing"
	ValueEconomicSecurity      ValueTag = "economic_security"
	ValueFamilyProtection      ValueTag = "family_protection"
	ValueCommunityWellbeing    ValueTag = "community_wellbeing"
	ValueProgressAndInnovation ValueTag = "progress_and_innovation"
	ValueFreedomAndAutonomy    ValueTag = "freedom_and_autonomy"
)

// Label returns the human-readable form of the tag (underscores to spaces).
func (v ValueTag) Label() string {
	out := make([]byte, len(v))
	for i := 0; i < len(v); i++ {
		if v[i] == '_' {
			out[i] = ' '
		} else {
			out[i] = v[i]
		}
	}
	return string(out)
}

// ValueProfile holds the value signals found in a text. TopValues contains at
// most 5 tags, each with a nonzero score, descending by score; ties keep the
// taxonomy declaration order.
type ValueProfile struct {
	TopValues []ValueTag       `json:"topValues" bson:"topValues"`
	Scores    map[ValueTag]int `json:"scores" bson:"scores"`
}

// StepType classifies a reasoning marker.
type StepType string

const (
	StepPremise    StepType = "premise"
	StepInference  StepType = "inference"
	StepEvidence   StepType = "evidence"
	StepConclusion StepType = "conclusion"
)

// ReasoningStep is a single detected reasoning marker at a character offset.
type ReasoningStep struct {
	Type        StepType `json:"type" bson:"type"`
	Position    int      `json:"position" bson:"position"`
	MatchedText string   `json:"matchedText" bson:"matchedText"`
}

// ReasoningProfile is the reconstructed reasoning sequence of a text, ordered
// ascending by offset. Markers from different categories at the same span are
// all retained.
type ReasoningProfile struct {
	Chain        []ReasoningStep `json:"chain" bson:"chain"`
	HasStructure bool            `json:"hasStructure" bson:"hasStructure"`
}

package model

// Narrative is one speaker's contribution to a dialogue. Speaker names are
// expected to be unique within a dialogue; duplicates overwrite (caller
// concern). Position is a short excerpt or summary of the stance.
type Narrative struct {
	Speaker  string `json:"speaker" bson:"speaker"`
	Text     string `json:"text" bson:"text"`
	Position string `json:"position" bson:"position"`
}

// SpeakerProfile aggregates the per-narrative analysis for one speaker.
type SpeakerProfile struct {
	Speaker   string           `json:"speaker" bson:"speaker"`
	Text      string           `json:"text" bson:"text"`
	Epistemic EpistemicProfile `json:"epistemic" bson:"epistemic"`
	Values    ValueProfile     `json:"values" bson:"values"`
	Reasoning ReasoningProfile `json:"reasoning" bson:"reasoning"`
}

// AnalysisResult is the full outcome of one analysis pass: the input
// narratives, one profile per speaker, and the qualifying agreements sorted
// descending by strength.
type AnalysisResult struct {
	Narratives []Narrative               `json:"narratives" bson:"narratives"`
	Profiles   map[string]SpeakerProfile `json:"profiles" bson:"profiles"`
	Agreements []Agreement               `json:"agreements" bson:"agreements"`
}

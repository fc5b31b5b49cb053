package model

// Agreement is a detected overlap between two speakers: shared values and/or
// compatible epistemic approach, with a templated insight. Derived from
// exactly two speaker profiles; symmetric apart from the A/B labels.
type Agreement struct {
	PersonA                string     `json:"personA" bson:"personA"`
	PersonB                string     `json:"personB" bson:"personB"`
	SharedValues           []ValueTag `json:"sharedValues" bson:"sharedValues"`
	AgreementStrength      float64    `json:"agreementStrength" bson:"agreementStrength"`
	PramanaSimilarity      float64    `json:"pramanaSimilarity" bson:"pramanaSimilarity"`
	ReasoningCompatibility float64    `json:"reasoningCompatibility" bson:"reasoningCompatibility"`
	Insight                string     `json:"insight" bson:"insight"`
}

package model

import "time"

// Source types for stored analyses.
const (
	SourceText  = "text"
	SourceAudio = "audio"
)

// AnalysisRecord is a persisted dialogue analysis: the inputs, the full
// result, and the rendered report. The repository assigns the ID.
type AnalysisRecord struct {
	ID            string         `json:"id" bson:"_id,omitempty"`
	CreatedAt     time.Time      `json:"createdAt" bson:"createdAt"`
	NumSpeakers   int            `json:"numSpeakers" bson:"numSpeakers"`
	NumAgreements int            `json:"numAgreements" bson:"numAgreements"`
	SourceType    string         `json:"sourceType" bson:"sourceType"`
	Narratives    []Narrative    `json:"narratives" bson:"narratives"`
	Result        AnalysisResult `json:"result" bson:"result"`
	Report        string         `json:"report" bson:"report"`
}

// StoredAgreement is the per-agreement document kept alongside the analysis
// record, for cross-analysis statistics.
type StoredAgreement struct {
	ID                string     `json:"id" bson:"_id,omitempty"`
	AnalysisID        string     `json:"analysisId" bson:"analysisId"`
	CreatedAt         time.Time  `json:"createdAt" bson:"createdAt"`
	PersonA           string     `json:"personA" bson:"personA"`
	PersonB           string     `json:"personB" bson:"personB"`
	SharedValues      []ValueTag `json:"sharedValues" bson:"sharedValues"`
	AgreementStrength float64    `json:"agreementStrength" bson:"agreementStrength"`
	Insight           string     `json:"insight" bson:"insight"`
}

// AnalysisSummary is the listing shape for recent analyses.
type AnalysisSummary struct {
	ID            string    `json:"id" bson:"_id"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
	NumSpeakers   int       `json:"numSpeakers" bson:"numSpeakers"`
	NumAgreements int       `json:"numAgreements" bson:"numAgreements"`
	SourceType    string    `json:"sourceType" bson:"sourceType"`
}

// Statistics are service-wide aggregate counts.
type Statistics struct {
	TotalAnalyses   int64   `json:"totalAnalyses"`
	TotalAgreements int64   `json:"totalAgreements"`
	AvgAgreements   float64 `json:"avgAgreements"`
}

// DashboardEvent is broadcast to connected dashboard clients when an analysis
// completes.
type DashboardEvent struct {
	AnalysisID    string    `json:"analysisId"`
	NumSpeakers   int       `json:"numSpeakers"`
	NumAgreements int       `json:"numAgreements"`
	SourceType    string    `json:"sourceType"`
	CreatedAt     time.Time `json:"createdAt"`
}

package analysis

import (
	"fmt"
	"strings"

	"samvad/internal/model"
)

var sectionRule = strings.Repeat("=", 60)
var subsectionRule = strings.Repeat("-", 60)

// ReportBuilder renders an AnalysisResult as a plain-text report. Pure
// formatting: identical input yields byte-identical output, so renders can be
// golden-file tested.
type ReportBuilder struct{}

// NewReportBuilder creates a report builder.
func NewReportBuilder() *ReportBuilder {
	return &ReportBuilder{}
}

// Render produces the full report: header, summary counts, per-speaker
// sections in narrative order, agreements (when any), numbered
// recommendations and footer.
func (r *ReportBuilder) Render(result model.AnalysisResult, recommendations []string) string {
	var lines []string
	add := func(format string, args ...interface{}) {
		lines = append(lines, fmt.Sprintf(format, args...))
	}

	numSpeakers := len(result.Narratives)
	numAgreements := len(result.Agreements)

	add(sectionRule)
	add("SAMVAD DIALOGUE ANALYSIS REPORT")
	add(sectionRule)
	add("")
	add("Total Speakers: %d", numSpeakers)
	add("Hidden Agreements Found: %d", numAgreements)
	add("Dialogue Connections: %d", numSpeakers*(numSpeakers-1)/2)
	add("")
	add("INDIVIDUAL NARRATIVE ANALYSIS")
	add(subsectionRule)
	add("")

	rendered := make(map[string]bool, numSpeakers)
	for _, narrative := range result.Narratives {
		if rendered[narrative.Speaker] {
			continue
		}
		rendered[narrative.Speaker] = true

		profile, ok := result.Profiles[narrative.Speaker]
		if !ok {
			continue
		}

		add("%s:", narrative.Speaker)
		position := narrative.Position
		if position == "" {
			position = "N/A"
		}
		add("  Position: %s", position)
		add("  Knowledge Source: %s", profile.Epistemic.DominantSource)
		add("  Top Values: %s", joinTags(profile.Values.TopValues, 3))
		add("")
	}

	if numAgreements > 0 {
		add("")
		add("HIDDEN AGREEMENTS DETECTED")
		add(subsectionRule)
		add("")

		for i, agreement := range result.Agreements {
			add("Agreement #%d:", i+1)
			add("  Between: %s ↔ %s", agreement.PersonA, agreement.PersonB)
			if len(agreement.SharedValues) > 0 {
				add("  Shared Values: %s", joinTags(agreement.SharedValues, len(agreement.SharedValues)))
			} else {
				add("  Shared Values: None explicit")
			}
			add("  Agreement Strength: %.0f%%", agreement.AgreementStrength*100)
			add("  Insight: %s", agreement.Insight)
			add("")
		}
	}

	add("")
	add("DIALOGUE RECOMMENDATIONS")
	add(subsectionRule)
	add("")
	for i, rec := range recommendations {
		add("%d. %s", i+1, rec)
	}
	add("")
	add(sectionRule)
	add("End of Report")
	add(sectionRule)

	return strings.Join(lines, "\n")
}

package analysis

import (
	"regexp"

	"samvad/internal/model"
)

// Taxonomy holds the fixed classification tables: epistemic source patterns,
// the value keyword lists, reasoning markers, related-value expansion and the
// compatible pramana pairs. Built once at startup and shared by reference;
// never mutated afterwards. All patterns match against lowercased text.
type Taxonomy struct {
	pramanaOrder    []model.Pramana
	pramanaPatterns map[model.Pramana][]*regexp.Regexp

	valueOrder    []model.ValueTag
	valuePatterns map[model.ValueTag][]*regexp.Regexp

	stepOrder    []model.StepType
	stepPatterns map[model.StepType][]*regexp.Regexp

	relatedValues map[model.ValueTag][]model.ValueTag

	compatiblePairs [][2]model.Pramana
}

var pramanaPatternSources = map[model.Pramana][]string{
	model.PramanaPratyaksha: {
		`\bi (see|saw|witness|observe|watch|experience)\b`,
		`\bi have (seen|witnessed|observed|experienced)\b`,
		`\bin my experience\b`,
		`\bfirsthand\b`,
		`\bi was there\b`,
		`\bwith my own eyes\b`,
	},
	model.PramanaAnumana: {
		`\btherefore\b`,
		`\bthus\b`,
		`\bhence\b`,
		`\bconsequently\b`,
		`\bit follows that\b`,
		`\bwe can infer\b`,
		`\bthis implies\b`,
		`\bif .+ then\b`,
		`\bbecause .+ must\b`,
	},
	model.PramanaSabda: {
		`\bstudies show\b`,
		`\bresearch (shows|indicates|proves)\b`,
		`\bexperts say\b`,
		`\baccording to\b`,
		`\bdata (shows|indicates)\b`,
		`\bevidence suggests\b`,
		`\bscientists (agree|found)\b`,
		`\bthe literature\b`,
	},
	model.PramanaUpamana: {
		`\blike\b`,
		`\bsimilar to\b`,
		`\bjust as\b`,
		`\banalogous to\b`,
		`\bcompare to\b`,
		`\bresembles\b`,
		`\bin the same way\b`,
	},
}

var valueKeywordSources = map[model.ValueTag][]string{
	model.ValueJusticeAndFairness: {
		"justice", "fair", "fairness", "equal", "equality", "rights",
		"deserve", "ought", "should", "moral", "ethical", "unjust",
	},
	model.ValueHealthAndWellbeing: {
		"health", "wellbeing", "wellness", "care", "medical", "hospital",
		"patient", "illness", "disease", "treatment", "safety",
	},
	model.ValueEconomicSecurity: {
		"job", "employment", "economy", "economic", "business", "income",
		"financial", "money", "wage", "salary", "afford", "cost",
	},
	model.ValueFamilyProtection: {
		"family", "children", "kids", "parents", "home", "household",
		"father", "mother", "son", "daughter", "protect",
	},
	model.ValueCommunityWellbeing: {
		"community", "society", "neighbor", "local", "town", "city",
		"people", "citizens", "public", "collective",
	},
	model.ValueProgressAndInnovation: {
		"innovation", "progress", "technology", "future", "advance",
		"develop", "improve", "growth", "modern", "new",
	},
	model.ValueFreedomAndAutonomy: {
		"freedom", "liberty", "choice", "autonomy", "independent",
		"free", "choose", "decide", "control",
	},
}

var stepPatternSources = map[model.StepType][]string{
	model.StepPremise: {
		`\b(because|since|given that|as)\b`,
		`\bthe fact (that|is)\b`,
	},
	model.StepInference: {
		`\b(therefore|thus|hence|consequently)\b`,
		`\bit follows that\b`,
		`\bthis (means|implies)\b`,
	},
	model.StepEvidence: {
		`\b(studies|research|data|evidence) (show|suggest|indicate)\b`,
		`\baccording to\b`,
	},
	model.StepConclusion: {
		`\b(in conclusion|ultimately|finally)\b`,
		`\bwe (must|should|need to)\b`,
	},
}

// relatedValueSources expands near-miss overlaps: a speaker concerned with one
// tag is treated as sharing ground with a speaker holding a related tag. The
// table is consulted symmetrically.
var relatedValueSources = map[model.ValueTag][]model.ValueTag{
	model.ValueHealthAndWellbeing: {model.ValueFamilyProtection, model.ValueCommunityWellbeing},
	model.ValueEconomicSecurity:   {model.ValueFamilyProtection, model.ValueCommunityWellbeing},
	model.ValueJusticeAndFairness: {"human_dignity", "equality"},
	model.ValueCommunityWellbeing: {model.ValueFamilyProtection, model.ValueHealthAndWellbeing},
	model.ValueFamilyProtection:   {model.ValueHealthAndWellbeing, model.ValueEconomicSecurity},
}

// DefaultTaxonomy builds the standard taxonomy. Panics on malformed pattern
// constants, which is a programming error caught at startup.
func DefaultTaxonomy() *Taxonomy {
	t := &Taxonomy{
		// Declaration order doubles as the argmax tie-break order:
		// perception, then testimony, then inference, then analogy.
		pramanaOrder: []model.Pramana{
			model.PramanaPratyaksha,
			model.PramanaSabda,
			model.PramanaAnumana,
			model.PramanaUpamana,
		},
		pramanaPatterns: make(map[model.Pramana][]*regexp.Regexp),
		valueOrder: []model.ValueTag{
			model.ValueJusticeAndFairness,
			model.ValueHealthAndWellbeing,
			model.ValueEconomicSecurity,
			model.ValueFamilyProtection,
			model.ValueCommunityWellbeing,
			model.ValueProgressAndInnovation,
			model.ValueFreedomAndAutonomy,
		},
		valuePatterns: make(map[model.ValueTag][]*regexp.Regexp),
		stepOrder: []model.StepType{
			model.StepPremise,
			model.StepInference,
			model.StepEvidence,
			model.StepConclusion,
		},
		stepPatterns:  make(map[model.StepType][]*regexp.Regexp),
		relatedValues: relatedValueSources,
		compatiblePairs: [][2]model.Pramana{
			{model.PramanaPratyaksha, model.PramanaAnumana}, // experience + inference
			{model.PramanaSabda, model.PramanaAnumana},      // testimony + inference
			{model.PramanaPratyaksha, model.PramanaSabda},   // experience + testimony
		},
	}

	for pramana, sources := range pramanaPatternSources {
		t.pramanaPatterns[pramana] = compileAll(sources)
	}
	for tag, keywords := range valueKeywordSources {
		patterns := make([]*regexp.Regexp, 0, len(keywords))
		for _, kw := range keywords {
			// Keyword as a word prefix, so "job" also matches
			// "jobs" via the \w* tail.
			patterns = append(patterns, regexp.MustCompile(`\b`+regexp.QuoteMeta(kw)+`\w*\b`))
		}
		t.valuePatterns[tag] = patterns
	}
	for step, sources := range stepPatternSources {
		t.stepPatterns[step] = compileAll(sources)
	}

	return t
}

func compileAll(sources []string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(sources))
	for _, src := range sources {
		compiled = append(compiled, regexp.MustCompile(src))
	}
	return compiled
}

// Related reports whether a and b appear as a related pair in the expansion
// table, checked in both directions.
func (t *Taxonomy) Related(a, b model.ValueTag) bool {
	for _, rel := range t.relatedValues[a] {
		if rel == b {
			return true
		}
	}
	for _, rel := range t.relatedValues[b] {
		if rel == a {
			return true
		}
	}
	return false
}

// Compatible reports whether the unordered pramana pair {a, b} is one of the
// designated compatible pairs.
func (t *Taxonomy) Compatible(a, b model.Pramana) bool {
	for _, pair := range t.compatiblePairs {
		if (pair[0] == a && pair[1] == b) || (pair[0] == b && pair[1] == a) {
			return true
		}
	}
	return false
}

package scoring

// Rubric holds the weights of every sub-scorer. The defaults reproduce the
// reference scoring; totals are not normalized, so a run with the grammar
// sub-scorer or a full bonus can exceed OutOf.
type Rubric struct {
	TailoringWeight  float64
	TailoringDefault float64

	SkillsPerKeyword   float64
	SkillsKeywordCap   int
	SkillsDefault      float64
	SkillsSuggestBelow float64

	ActionVerbCap          int
	ActionVerbSuggestBelow int

	ATSWeight float64

	GrammarWeight   float64
	GrammarExamples int

	StructurePerSection float64
	StructureSectionCap int

	BonusPerSignal float64
}

const OutOf = 100

func DefaultRubric() Rubric {
	return Rubric{
		TailoringWeight:  30,
		TailoringDefault: 20,

		SkillsPerKeyword:   2,
		SkillsKeywordCap:   10,
		SkillsDefault:      15,
		SkillsSuggestBelow: 10,

		ActionVerbCap:          10,
		ActionVerbSuggestBelow: 3,

		ATSWeight: 10,

		GrammarWeight:   10,
		GrammarExamples: 3,

		StructurePerSection: 2,
		StructureSectionCap: 5,

		BonusPerSignal: 3.33,
	}
}

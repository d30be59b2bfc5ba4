package taxonomy

// Category represents a verbal reasoning skill category.
type Category string

const (
	CategoryReadingComprehension Category = "reading_comprehension"
	CategoryTextCompletion       Category = "text_completion"
	CategorySentenceEquivalence  Category = "sentence_equivalence"
	CategoryTrapRecognition      Category = "trap_recognition"
)

// VerbalCategories returns the three question-producing categories in
// display order. Trap recognition is cross-cutting and never has its own
// questions.
func VerbalCategories() []Category {
	return []Category{
		CategoryReadingComprehension,
		CategoryTextCompletion,
		CategorySentenceEquivalence,
	}
}

// AllCategories returns every category, including trap recognition.
func AllCategories() []Category {
	return append(VerbalCategories(), CategoryTrapRecognition)
}

// CategoryDisplayName returns a human-readable name for a category.
func CategoryDisplayName(c Category) string {
	switch c {
	case CategoryReadingComprehension:
		return "Reading Comprehension"
	case CategoryTextCompletion:
		return "Text Completion"
	case CategorySentenceEquivalence:
		return "Sentence Equivalence"
	case CategoryTrapRecognition:
		return "Trap Recognition"
	default:
		return string(c)
	}
}

// ShortLabel returns the two-letter abbreviation used in reports.
func (c Category) ShortLabel() string {
	switch c {
	case CategoryReadingComprehension:
		return "RC"
	case CategoryTextCompletion:
		return "TC"
	case CategorySentenceEquivalence:
		return "SE"
	case CategoryTrapRecognition:
		return "Trap"
	default:
		return string(c)
	}
}

// Skill represents a single named reasoning pattern. The catalog is fixed
// at compile time and never mutated.
type Skill struct {
	ID          string
	Name        string
	Category    Category
	Description string
	// Triggers are signal phrases associated with the skill. They are
	// informational only; nothing selects on them.
	Triggers []string
}

// IsTrap reports whether the skill belongs to the trap category.
func (s Skill) IsTrap() bool {
	return s.Category == CategoryTrapRecognition
}

// DifficultyBand describes one of the five question difficulty levels.
type DifficultyBand struct {
	Level       int
	Label       string
	ScoreRange  [2]int
	Description string
}

// Bands returns the five difficulty bands in ascending order.
func Bands() []DifficultyBand {
	return []DifficultyBand{
		{Level: 1, Label: "Foundation", ScoreRange: [2]int{130, 140}, Description: "Clear signals, common vocabulary, single-skill"},
		{Level: 2, Label: "Developing", ScoreRange: [2]int{140, 148}, Description: "Moderate vocabulary, 1-2 skills combined"},
		{Level: 3, Label: "Competent", ScoreRange: [2]int{148, 155}, Description: "Subtle signals, test-level vocabulary, multi-skill"},
		{Level: 4, Label: "Advanced", ScoreRange: [2]int{155, 162}, Description: "Ambiguous signals, traps present, nuanced reasoning"},
		{Level: 5, Label: "Expert", ScoreRange: [2]int{162, 170}, Description: "Near-authentic difficulty, multiple traps, dense passages"},
	}
}

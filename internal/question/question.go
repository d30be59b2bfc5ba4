package question

import "github.com/nkapur/verbaprep/internal/taxonomy"

// AnswerOption is one selectable choice on a question.
type AnswerOption struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	Correct bool   `json:"correct"`
}

// BlankOptions holds the per-blank choices of a multi-blank question.
type BlankOptions struct {
	BlankIndex int            `json:"blankIndex"`
	Options    []AnswerOption `json:"options"`
}

// Question is a single bank question. The engine treats questions as
// read-only reference data.
type Question struct {
	ID         string            `json:"id"`
	Type       taxonomy.Category `json:"type"`
	Skills     []string          `json:"skills"`
	Difficulty int               `json:"difficulty"`
	Passage    string            `json:"passage,omitempty"`
	// PassageID groups sibling questions sharing a reading passage.
	PassageID        string            `json:"passageId,omitempty"`
	Stem             string            `json:"stem"`
	Blanks           int               `json:"blanks,omitempty"`
	Options          []AnswerOption    `json:"options"`
	BlankOptions     []BlankOptions    `json:"blankOptions,omitempty"`
	CorrectCount     int               `json:"correctCount"`
	Explanation      string            `json:"explanation"`
	SkillExplanation map[string]string `json:"skillExplanation,omitempty"`
	// TrapAnalysis maps a wrong option ID to why it is tempting.
	TrapAnalysis map[string]string `json:"trapAnalysis,omitempty"`
	Tags         []string          `json:"tags,omitempty"`
}

// Passage groups questions that share a reading passage.
type Passage struct {
	ID          string   `json:"id"`
	Text        string   `json:"text"`
	Structure   string   `json:"structure,omitempty"`
	Topic       string   `json:"topic,omitempty"`
	WordCount   int      `json:"wordCount,omitempty"`
	QuestionIDs []string `json:"questionIds,omitempty"`
}

// Answer is a learner's submitted response to one question. Single-answer
// questions carry one element in Selected.
type Answer struct {
	QuestionID string   `json:"questionId"`
	Selected   []string `json:"selectedAnswer"`
}

// CorrectOptionIDs returns the IDs of all options flagged correct.
func (q Question) CorrectOptionIDs() []string {
	var ids []string
	for _, o := range q.Options {
		if o.Correct {
			ids = append(ids, o.ID)
		}
	}
	return ids
}

// IsCorrect reports whether the selection matches the correct option set
// exactly. A single-answer question is correct iff the one selected ID is
// the one flagged correct; a multi-answer question requires set equality.
// There is no partial credit.
func (q Question) IsCorrect(selected []string) bool {
	correct := q.CorrectOptionIDs()
	if len(selected) == 0 || len(selected) != len(correct) {
		return false
	}
	want := make(map[string]bool, len(correct))
	for _, id := range correct {
		want[id] = true
	}
	matched := make(map[string]bool, len(selected))
	for _, id := range selected {
		if !want[id] || matched[id] {
			return false
		}
		matched[id] = true
	}
	return true
}

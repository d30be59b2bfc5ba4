package testgen

import (
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/nkapur/verbaprep/internal/brainmap"
	"github.com/nkapur/verbaprep/internal/question"
	"github.com/nkapur/verbaprep/internal/scoring"
	"github.com/nkapur/verbaprep/internal/taxonomy"
)

// SkillBreakdown tallies seen/correct per skill over one test.
type SkillBreakdown struct {
	Seen    int `json:"seen"`
	Correct int `json:"correct"`
}

// TestResult is the scored outcome of a single-category test.
type TestResult struct {
	TestID             string                    `json:"testId"`
	Category           taxonomy.Category         `json:"category"`
	Date               time.Time                 `json:"date"`
	Answers            []scoring.ScoredAnswer    `json:"answers"`
	CorrectCount       int                       `json:"correct"`
	Total              int                       `json:"total"`
	EstimatedScore     int                       `json:"estimatedScore"`
	ConfidenceInterval int                       `json:"confidenceInterval"`
	SkillBreakdown     map[string]SkillBreakdown `json:"skillBreakdown"`
	WeakSkills         []string                  `json:"weakSkills"`
	StrongSkills       []string                  `json:"strongSkills"`
	TrapsFallenFor     []string                  `json:"trapsFallenFor"`
}

// Single-category accuracy cutoffs for the post-hoc skill lists. The
// mock exam uses a stricter strong cutoff; keep them separate.
const (
	weakAccuracyCutoff   = 0.5
	strongAccuracyCutoff = 0.8
)

// ScoreTest grades every answered question, folds each one into the
// mastery model, and returns the result with the updated BrainMap.
// Questions without a submitted answer are excluded entirely.
func ScoreTest(test *GeneratedTest, answers []question.Answer, bm *brainmap.BrainMap) (*TestResult, *brainmap.BrainMap) {
	selections := lo.SliceToMap(answers, func(a question.Answer) (string, []string) {
		return a.QuestionID, a.Selected
	})

	updated := bm.Clone()
	var scored []scoring.ScoredAnswer
	breakdown := make(map[string]SkillBreakdown)
	var trapsFallenFor []string

	for _, q := range test.Questions {
		selected, ok := selections[q.ID]
		if !ok || len(selected) == 0 {
			continue
		}
		correct := q.IsCorrect(selected)

		scored = append(scored, scoring.ScoredAnswer{
			QuestionID: q.ID,
			Selected:   selected,
			Correct:    correct,
			Difficulty: q.Difficulty,
			Skills:     q.Skills,
		})

		for _, skillID := range q.Skills {
			b := breakdown[skillID]
			b.Seen++
			if correct {
				b.Correct++
			}
			breakdown[skillID] = b

			updated = brainmap.UpdateSkillAfterAnswer(updated, skillID, float64(q.Difficulty), correct)
		}

		if !correct {
			for _, skillID := range q.Skills {
				if taxonomy.IsTrapID(skillID) {
					trapsFallenFor = append(trapsFallenFor, skillID)
					updated = brainmap.UpdateTrapProfile(updated, skillID, true)
				}
			}
		}
	}

	correctCount := lo.CountBy(scored, func(a scoring.ScoredAnswer) bool { return a.Correct })
	weak, strong := skillLists(breakdown, strongAccuracyCutoff, false)

	result := &TestResult{
		TestID:             test.TestID,
		Category:           test.Category,
		Date:               time.Now(),
		Answers:            scored,
		CorrectCount:       correctCount,
		Total:              len(scored),
		EstimatedScore:     scoring.EstimateScaledScore(scored),
		ConfidenceInterval: scoring.ConfidenceInterval(len(bm.TestHistory) + 1),
		SkillBreakdown:     breakdown,
		WeakSkills:         weak,
		StrongSkills:       strong,
		TrapsFallenFor:     lo.Uniq(trapsFallenFor),
	}
	return result, updated
}

// skillLists derives the weak and strong skill lists from a breakdown.
// With exact=true a skill is strong only at 100% accuracy; otherwise the
// strong cutoff applies.
func skillLists(breakdown map[string]SkillBreakdown, strongCutoff float64, exact bool) (weak, strong []string) {
	for skillID, b := range breakdown {
		if b.Seen == 0 {
			continue
		}
		acc := float64(b.Correct) / float64(b.Seen)
		switch {
		case acc < weakAccuracyCutoff:
			weak = append(weak, skillID)
		case exact && acc == 1.0, !exact && acc >= strongCutoff:
			strong = append(strong, skillID)
		}
	}
	sort.Strings(weak)
	sort.Strings(strong)
	return weak, strong
}

// Recommendation suggests next steps after a scored test.
type Recommendation struct {
	ReviewLessons  []string `json:"reviewLessons"`
	PracticeSkills []string `json:"practiceSkills"`
	Message        string   `json:"message"`
}

// Recommend turns a result into lesson and practice suggestions.
func Recommend(result *TestResult) Recommendation {
	known := lo.Filter(result.WeakSkills, func(id string, _ int) bool {
		_, err := taxonomy.GetSkill(id)
		return err == nil
	})
	practice := lo.Filter(known, func(id string, _ int) bool { return !taxonomy.IsTrapID(id) })

	var accuracy float64
	if result.Total > 0 {
		accuracy = float64(result.CorrectCount) / float64(result.Total)
	}
	var message string
	switch {
	case accuracy >= 0.9:
		message = "Excellent work! You're performing at a high level. Consider increasing difficulty."
	case accuracy >= 0.7:
		message = "Good performance! Focus on your weak areas to push your score higher."
	case accuracy >= 0.5:
		message = "Decent start. Review the lessons for your weak skills and practice more."
	default:
		message = "Consider reviewing the pattern lessons before taking more tests. Focus on understanding the core patterns."
	}

	return Recommendation{
		ReviewLessons:  lo.Slice(known, 0, 3),
		PracticeSkills: lo.Slice(practice, 0, 2),
		Message:        message,
	}
}

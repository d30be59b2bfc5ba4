package mocktest

import (
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/nkapur/verbaprep/internal/brainmap"
	"github.com/nkapur/verbaprep/internal/question"
	"github.com/nkapur/verbaprep/internal/scoring"
	"github.com/nkapur/verbaprep/internal/taxonomy"
	"github.com/nkapur/verbaprep/internal/testgen"
)

// SectionResult is one section's raw outcome.
type SectionResult struct {
	SectionNumber  int          `json:"sectionNumber"`
	Correct        int          `json:"correct"`
	Total          int          `json:"total"`
	DifficultyTier scoring.Tier `json:"difficultyTier"`
}

// Result is the scored outcome of a full mock test.
type Result struct {
	TestID         string                            `json:"testId"`
	Date           time.Time                         `json:"date"`
	Sections       [2]SectionResult                  `json:"sections"`
	TotalCorrect   int                               `json:"totalCorrect"`
	TotalQuestions int                               `json:"totalQuestions"`
	ScoreEstimate  scoring.ScoreEstimate             `json:"scoreEstimate"`
	SkillBreakdown map[string]testgen.SkillBreakdown `json:"skillBreakdown"`
	WeakSkills     []string                          `json:"weakSkills"`
	StrongSkills   []string                          `json:"strongSkills"`
	TrapsFallenFor []string                          `json:"trapsFallenFor"`
	Answers        []scoring.ScoredAnswer            `json:"answers"`
}

// Score grades both sections, folds every answered question into the
// mastery model (including trap profiles), and combines the section raw
// scores through the tier-weighted mock conversion. A skill counts as
// strong here only at 100% accuracy; the single-category cutoff is
// deliberately looser.
func Score(mt *MockTest, section1Answers, section2Answers []question.Answer, bm *brainmap.BrainMap) (*Result, *brainmap.BrainMap) {
	allAnswers := append(append([]question.Answer{}, section1Answers...), section2Answers...)
	selections := lo.SliceToMap(allAnswers, func(a question.Answer) (string, []string) {
		return a.QuestionID, a.Selected
	})

	updated := bm.Clone()
	var scored []scoring.ScoredAnswer
	breakdown := make(map[string]testgen.SkillBreakdown)
	var trapsFallenFor []string

	for _, section := range mt.Sections {
		for _, q := range section.Questions {
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
				Section:    section.SectionNumber,
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

			for _, skillID := range q.Skills {
				if !taxonomy.IsTrapID(skillID) {
					continue
				}
				if correct {
					updated = brainmap.UpdateTrapProfile(updated, skillID, false)
				} else {
					trapsFallenFor = append(trapsFallenFor, skillID)
					updated = brainmap.UpdateTrapProfile(updated, skillID, true)
				}
			}
		}
	}

	section1Correct := countCorrect(mt.Sections[0].Questions, section1Answers)
	section2Correct := countCorrect(mt.Sections[1].Questions, section2Answers)

	estimate := scoring.CalculateMockTestScore(scoring.MockTestScoreInput{
		Section1Correct: section1Correct,
		Section1Total:   len(mt.Sections[0].Questions),
		Section2Correct: section2Correct,
		Section2Total:   len(mt.Sections[1].Questions),
		Section2Tier:    mt.Sections[1].DifficultyTier,
	})

	weak, strong := mockSkillLists(breakdown)

	return &Result{
		TestID: mt.TestID,
		Date:   time.Now(),
		Sections: [2]SectionResult{
			{SectionNumber: 1, Correct: section1Correct, Total: len(mt.Sections[0].Questions), DifficultyTier: mt.Sections[0].DifficultyTier},
			{SectionNumber: 2, Correct: section2Correct, Total: len(mt.Sections[1].Questions), DifficultyTier: mt.Sections[1].DifficultyTier},
		},
		TotalCorrect:   section1Correct + section2Correct,
		TotalQuestions: len(mt.Sections[0].Questions) + len(mt.Sections[1].Questions),
		ScoreEstimate:  estimate,
		SkillBreakdown: breakdown,
		WeakSkills:     weak,
		StrongSkills:   strong,
		TrapsFallenFor: lo.Uniq(trapsFallenFor),
		Answers:        scored,
	}, updated
}

// mockSkillLists uses the mock thresholds: weak under 50%, strong only
// at exactly 100%.
func mockSkillLists(breakdown map[string]testgen.SkillBreakdown) (weak, strong []string) {
	for skillID, b := range breakdown {
		if b.Seen == 0 {
			continue
		}
		acc := float64(b.Correct) / float64(b.Seen)
		switch {
		case acc < 0.5:
			weak = append(weak, skillID)
		case acc == 1.0:
			strong = append(strong, skillID)
		}
	}
	sort.Strings(weak)
	sort.Strings(strong)
	return weak, strong
}

package testgen

import (
	"fmt"
	"strings"
	"testing"

	"github.com/nkapur/verbaprep/internal/brainmap"
	"github.com/nkapur/verbaprep/internal/question"
	"github.com/nkapur/verbaprep/internal/taxonomy"
)

func simpleQuestion(id, skillID string, difficulty int) question.Question {
	return question.Question{
		ID:           id,
		Type:         taxonomy.CategoryTextCompletion,
		Skills:       []string{skillID},
		Difficulty:   difficulty,
		Options:      []question.AnswerOption{{ID: "a", Correct: true}, {ID: "b", Correct: false}},
		CorrectCount: 1,
	}
}

func TestScoreTest_FoldsIntoMasteryModel(t *testing.T) {
	test := &GeneratedTest{
		TestID:   "test-1",
		Category: taxonomy.CategoryTextCompletion,
		Questions: []question.Question{
			simpleQuestion("q1", "TC-CON", 3),
			simpleQuestion("q2", "TC-CON", 3),
			simpleQuestion("q3", "TC-CONT", 2),
		},
	}
	answers := []question.Answer{
		{QuestionID: "q1", Selected: []string{"a"}},
		{QuestionID: "q2", Selected: []string{"b"}},
		{QuestionID: "q3", Selected: []string{"a"}},
	}
	bm := brainmap.New("u1")

	result, updated := ScoreTest(test, answers, bm)

	if result.CorrectCount != 2 || result.Total != 3 {
		t.Errorf("score = %d/%d, want 2/3", result.CorrectCount, result.Total)
	}
	if b := result.SkillBreakdown["TC-CON"]; b.Seen != 2 || b.Correct != 1 {
		t.Errorf("TC-CON breakdown = %+v, want seen=2 correct=1", b)
	}
	if updated.Skills["TC-CON"].QuestionsSeen != 2 {
		t.Errorf("TC-CON seen = %d, want 2", updated.Skills["TC-CON"].QuestionsSeen)
	}
	if updated.Skills["TC-CONT"].Correct != 1 {
		t.Errorf("TC-CONT correct = %d, want 1", updated.Skills["TC-CONT"].Correct)
	}
	if bm.Skills["TC-CON"].QuestionsSeen != 0 {
		t.Error("input map mutated")
	}
}

func TestScoreTest_UnansweredExcluded(t *testing.T) {
	test := &GeneratedTest{
		TestID:   "test-1",
		Category: taxonomy.CategoryTextCompletion,
		Questions: []question.Question{
			simpleQuestion("q1", "TC-CON", 3),
			simpleQuestion("q2", "TC-CONT", 3),
		},
	}
	answers := []question.Answer{{QuestionID: "q1", Selected: []string{"a"}}}

	result, updated := ScoreTest(test, answers, brainmap.New("u1"))

	if result.Total != 1 {
		t.Errorf("total = %d, want 1 (unanswered excluded)", result.Total)
	}
	if updated.Skills["TC-CONT"].QuestionsSeen != 0 {
		t.Error("unanswered question folded into mastery")
	}
}

func TestScoreTest_WeakAndStrongCutoffs(t *testing.T) {
	// TC-CON: 4/5 = 0.8 is strong at the single-category cutoff.
	// TC-CONT: 1/3 is weak. TC-ELAB: 2/3 is neither.
	var questions []question.Question
	var answers []question.Answer
	add := func(skillID string, correct bool) {
		id := fmt.Sprintf("q%d", len(questions))
		questions = append(questions, simpleQuestion(id, skillID, 3))
		pick := "a"
		if !correct {
			pick = "b"
		}
		answers = append(answers, question.Answer{QuestionID: id, Selected: []string{pick}})
	}
	for i := 0; i < 5; i++ {
		add("TC-CON", i < 4)
	}
	for i := 0; i < 3; i++ {
		add("TC-CONT", i < 1)
	}
	for i := 0; i < 3; i++ {
		add("TC-ELAB", i < 2)
	}

	test := &GeneratedTest{TestID: "test-1", Category: taxonomy.CategoryTextCompletion, Questions: questions}
	result, _ := ScoreTest(test, answers, brainmap.New("u1"))

	if len(result.StrongSkills) != 1 || result.StrongSkills[0] != "TC-CON" {
		t.Errorf("strong = %v, want [TC-CON]", result.StrongSkills)
	}
	if len(result.WeakSkills) != 1 || result.WeakSkills[0] != "TC-CONT" {
		t.Errorf("weak = %v, want [TC-CONT]", result.WeakSkills)
	}
}

func TestScoreTest_TrapRecordedOnMiss(t *testing.T) {
	q := question.Question{
		ID:           "q1",
		Type:         taxonomy.CategorySentenceEquivalence,
		Skills:       []string{"SE-TRAP", "TRAP-EXT"},
		Difficulty:   4,
		Options:      []question.AnswerOption{{ID: "a", Correct: true}, {ID: "b", Correct: false}},
		CorrectCount: 1,
	}
	test := &GeneratedTest{TestID: "test-1", Category: taxonomy.CategorySentenceEquivalence, Questions: []question.Question{q}}
	answers := []question.Answer{{QuestionID: "q1", Selected: []string{"b"}}}

	result, updated := ScoreTest(test, answers, brainmap.New("u1"))

	if len(result.TrapsFallenFor) != 1 || result.TrapsFallenFor[0] != "TRAP-EXT" {
		t.Errorf("traps = %v, want [TRAP-EXT]", result.TrapsFallenFor)
	}
	if updated.TrapProfile["TRAP-EXT"].FallenFor != 1 {
		t.Errorf("trap profile = %+v, want fallenFor=1", updated.TrapProfile["TRAP-EXT"])
	}
}

func TestRecommend_Messages(t *testing.T) {
	cases := []struct {
		correct, total int
		wantSubstring  string
	}{
		{19, 20, "Excellent"},
		{15, 20, "Good performance"},
		{11, 20, "Decent start"},
		{4, 20, "reviewing the pattern lessons"},
	}
	for _, tc := range cases {
		rec := Recommend(&TestResult{CorrectCount: tc.correct, Total: tc.total})
		if !strings.Contains(rec.Message, tc.wantSubstring) {
			t.Errorf("Recommend(%d/%d) message = %q, want substring %q", tc.correct, tc.total, rec.Message, tc.wantSubstring)
		}
	}
}

func TestRecommend_FiltersTrapsFromPractice(t *testing.T) {
	result := &TestResult{
		CorrectCount: 10,
		Total:        20,
		WeakSkills:   []string{"TC-CON", "TRAP-EXT", "not-a-skill"},
	}
	rec := Recommend(result)

	for _, id := range rec.PracticeSkills {
		if taxonomy.IsTrapID(id) {
			t.Errorf("trap %s recommended for direct practice", id)
		}
		if _, err := taxonomy.GetSkill(id); err != nil {
			t.Errorf("unknown skill %s recommended", id)
		}
	}
	for _, id := range rec.ReviewLessons {
		if _, err := taxonomy.GetSkill(id); err != nil {
			t.Errorf("unknown skill %s in lesson list", id)
		}
	}
}

package brainmap

import (
	"math"
	"testing"
	"time"
)

const epsilon = 0.0001

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func answerN(bm *BrainMap, skillID string, difficulty float64, results ...bool) *BrainMap {
	for _, r := range results {
		bm = UpdateSkillAfterAnswer(bm, skillID, difficulty, r)
	}
	return bm
}

func TestUpdateSkillAfterAnswer_Counters(t *testing.T) {
	bm := New("u1")
	bm = UpdateSkillAfterAnswer(bm, "TC-CON", 3, true)

	sm := bm.Skills["TC-CON"]
	if sm.QuestionsSeen != 1 || sm.Correct != 1 || sm.Streak != 1 {
		t.Errorf("after one correct: seen=%d correct=%d streak=%d", sm.QuestionsSeen, sm.Correct, sm.Streak)
	}
	if sm.AccuracyByDifficulty[3].Seen != 1 || sm.AccuracyByDifficulty[3].Correct != 1 {
		t.Errorf("band 3 record = %+v", sm.AccuracyByDifficulty[3])
	}

	bm = UpdateSkillAfterAnswer(bm, "TC-CON", 3, false)
	sm = bm.Skills["TC-CON"]
	if sm.QuestionsSeen != 2 || sm.Correct != 1 {
		t.Errorf("after one wrong: seen=%d correct=%d", sm.QuestionsSeen, sm.Correct)
	}
	if sm.Streak != 0 {
		t.Errorf("streak = %d, want 0 after an incorrect answer", sm.Streak)
	}
}

func TestUpdateSkillAfterAnswer_StreakRebuilds(t *testing.T) {
	bm := New("u1")
	bm = answerN(bm, "SE-SYN", 2, true, true, false, true, true, true)
	if got := bm.Skills["SE-SYN"].Streak; got != 3 {
		t.Errorf("streak = %d, want 3", got)
	}
}

func TestUpdateSkillAfterAnswer_UnknownSkillNoOp(t *testing.T) {
	bm := New("u1")
	updated := UpdateSkillAfterAnswer(bm, "NOT-A-SKILL", 3, true)
	for id, sm := range updated.Skills {
		if sm.QuestionsSeen != bm.Skills[id].QuestionsSeen {
			t.Errorf("skill %s changed on unknown-skill update", id)
		}
	}
	if updated == bm {
		t.Error("no-op must still return a fresh copy")
	}
}

func TestUpdateSkillAfterAnswer_RecentAnswersBounded(t *testing.T) {
	bm := New("u1")
	for i := 0; i < 50; i++ {
		bm = UpdateSkillAfterAnswer(bm, "RC-INF", 3, i%2 == 0)
	}
	if got := len(bm.Skills["RC-INF"].RecentAnswers); got != 20 {
		t.Errorf("recentAnswers length = %d, want 20", got)
	}
}

func TestUpdateSkillAfterAnswer_DifficultyClamped(t *testing.T) {
	bm := New("u1")
	bm = UpdateSkillAfterAnswer(bm, "TC-CE", 9.7, true)
	bm = UpdateSkillAfterAnswer(bm, "TC-CE", -2, false)
	bm = UpdateSkillAfterAnswer(bm, "TC-CE", 2.4, true)

	sm := bm.Skills["TC-CE"]
	if sm.AccuracyByDifficulty[5].Seen != 1 {
		t.Errorf("difficulty 9.7 should land in band 5, got %+v", sm.AccuracyByDifficulty)
	}
	if sm.AccuracyByDifficulty[1].Seen != 1 {
		t.Errorf("difficulty -2 should land in band 1")
	}
	if sm.AccuracyByDifficulty[2].Seen != 1 {
		t.Errorf("difficulty 2.4 should round to band 2")
	}
	for band := range sm.AccuracyByDifficulty {
		if band < 1 || band > 5 {
			t.Errorf("band %d outside 1..5", band)
		}
	}
}

func TestUpdateSkillAfterAnswer_NoAliasing(t *testing.T) {
	bm := New("u1")
	next := UpdateSkillAfterAnswer(bm, "TC-CON", 3, true)

	if bm.Skills["TC-CON"].QuestionsSeen != 0 {
		t.Error("input BrainMap was mutated")
	}
	// Mutating the new state must not reach back into the old one.
	sm := next.Skills["TC-CON"]
	sm.AccuracyByDifficulty[3] = DifficultyAccuracy{Seen: 99}
	if bm.Skills["TC-CON"].AccuracyByDifficulty[3].Seen == 99 {
		t.Error("accuracy map aliases between states")
	}
}

func TestUpdateSkillAfterAnswer_CountersStrictlyIncrease(t *testing.T) {
	// Re-applying identical inputs is not idempotent: counters must
	// increase on every call.
	bm := New("u1")
	bm = UpdateSkillAfterAnswer(bm, "RC-PP", 4, true)
	bm = UpdateSkillAfterAnswer(bm, "RC-PP", 4, true)
	sm := bm.Skills["RC-PP"]
	if sm.QuestionsSeen != 2 || sm.Correct != 2 {
		t.Errorf("seen=%d correct=%d, want 2/2", sm.QuestionsSeen, sm.Correct)
	}
}

func TestMasteryAlwaysInBounds(t *testing.T) {
	bm := New("u1")
	for i := 0; i < 100; i++ {
		bm = UpdateSkillAfterAnswer(bm, "SE-CTX", float64(1+i%5), i%3 != 0)
		sm := bm.Skills["SE-CTX"]
		if sm.Mastery < 0 || sm.Mastery > 1 {
			t.Fatalf("mastery %f out of [0,1] at step %d", sm.Mastery, i)
		}
		if sm.Level != LevelFor(sm.Mastery) {
			t.Fatalf("level %s does not match mastery %f", sm.Level, sm.Mastery)
		}
	}
}

func TestLevelFor_Thresholds(t *testing.T) {
	cases := []struct {
		mastery float64
		want    MasteryLevel
	}{
		{0.0, LevelFoundation},
		{0.29, LevelFoundation},
		{0.30, LevelDeveloping},
		{0.49, LevelDeveloping},
		{0.50, LevelCompetent},
		{0.69, LevelCompetent},
		{0.70, LevelAdvanced},
		{0.84, LevelAdvanced},
		{0.85, LevelExpert},
		{1.0, LevelExpert},
	}
	for _, c := range cases {
		if got := LevelFor(c.mastery); got != c.want {
			t.Errorf("LevelFor(%f) = %s, want %s", c.mastery, got, c.want)
		}
	}
}

func TestMastery_ScenarioEightOfTen(t *testing.T) {
	// 10 seen / 8 correct at difficulty 3, just practiced: weighted
	// accuracy 0.8, volume 10/15, consistency and recency near 1.
	// Product lands strictly between 0.4 and 0.6.
	sm := newSkillMastery("TC-CON")
	sm.QuestionsSeen = 10
	sm.Correct = 8
	sm.AccuracyByDifficulty[3] = DifficultyAccuracy{Seen: 10, Correct: 8}
	sm.LastPracticed = time.Now()
	sm.RecentAnswers = []bool{true, true, true, true, true, true, true, true, false, false}

	m := CalculateMastery(sm)
	if m <= 0.4 || m >= 0.6 {
		t.Errorf("mastery = %f, want strictly between 0.4 and 0.6", m)
	}
}

func TestMastery_WeightedDenominator(t *testing.T) {
	// The difficulty weight applies to seen counts as well as correct
	// ones. Five correct at difficulty 5 and five wrong at difficulty 1
	// must therefore score (5*2)/(5*2 + 5*0.5) = 0.8, not 10/10.
	sm := newSkillMastery("RC-SW")
	sm.QuestionsSeen = 10
	sm.Correct = 5
	sm.AccuracyByDifficulty[5] = DifficultyAccuracy{Seen: 5, Correct: 5}
	sm.AccuracyByDifficulty[1] = DifficultyAccuracy{Seen: 5, Correct: 0}
	sm.LastPracticed = time.Now()
	// Steady pattern keeps the consistency factor from muddying the pin.
	sm.RecentAnswers = []bool{true, true, true, true, true, true, true, true, true, true}

	m := CalculateMastery(sm)
	want := 0.8 * 1.0 * 1.0 * (10.0 / 15.0)
	if !almostEqual(m, want) {
		t.Errorf("mastery = %f, want %f (difficulty-weighted denominator)", m, want)
	}
}

func TestConsistencyFactor(t *testing.T) {
	if got := consistencyFactor([]bool{true, false}); !almostEqual(got, 0.8) {
		t.Errorf("under 3 answers = %f, want 0.8", got)
	}
	if got := consistencyFactor([]bool{true, true, true, true, true}); !almostEqual(got, 1.0) {
		t.Errorf("all correct = %f, want 1.0", got)
	}
	// Alternating answers have stddev 0.5 -> 1 - 0.15 = 0.85.
	alt := []bool{true, false, true, false, true, false, true, false, true, false}
	if got := consistencyFactor(alt); !almostEqual(got, 0.85) {
		t.Errorf("alternating = %f, want 0.85", got)
	}
}

func TestRecencyFactor(t *testing.T) {
	now := time.Now()
	if got := recencyFactor(time.Time{}, now); !almostEqual(got, 0.5) {
		t.Errorf("never practiced = %f, want 0.5", got)
	}
	if got := recencyFactor(now, now); !almostEqual(got, 1.0) {
		t.Errorf("just practiced = %f, want 1.0", got)
	}
	tenDays := now.Add(-10 * 24 * time.Hour)
	if got := recencyFactor(tenDays, now); !almostEqual(got, 0.8) {
		t.Errorf("10 days idle = %f, want 0.8", got)
	}
	yearAgo := now.Add(-365 * 24 * time.Hour)
	if got := recencyFactor(yearAgo, now); !almostEqual(got, 0.5) {
		t.Errorf("a year idle = %f, want floor 0.5", got)
	}
}

func TestTrendFor(t *testing.T) {
	if got := trendFor([]bool{true, true, true}); got != TrendStable {
		t.Errorf("short history = %s, want stable", got)
	}
	improving := []bool{false, false, false, false, false, true, true, true, true, true}
	if got := trendFor(improving); got != TrendImproving {
		t.Errorf("improving pattern = %s", got)
	}
	declining := []bool{true, true, true, true, true, false, false, false, false, false}
	if got := trendFor(declining); got != TrendDeclining {
		t.Errorf("declining pattern = %s", got)
	}
	flat := []bool{true, false, true, false, true, true, false, true, false, true}
	if got := trendFor(flat); got != TrendStable {
		t.Errorf("flat pattern = %s", got)
	}
}

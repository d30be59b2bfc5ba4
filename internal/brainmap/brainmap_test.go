package brainmap

import (
	"slices"
	"sort"
	"testing"
	"time"

	"github.com/nkapur/verbaprep/internal/taxonomy"
)

func TestNew_CoversTaxonomy(t *testing.T) {
	bm := New("u1")
	for _, id := range taxonomy.AllSkillIDs() {
		sm, ok := bm.Skills[id]
		if !ok {
			t.Fatalf("skill %s missing from fresh BrainMap", id)
		}
		if sm.Mastery != 0 || sm.Level != LevelFoundation {
			t.Errorf("skill %s not at zero: mastery=%f level=%s", id, sm.Mastery, sm.Level)
		}
		for d := 1; d <= 5; d++ {
			if _, ok := sm.AccuracyByDifficulty[d]; !ok {
				t.Errorf("skill %s missing difficulty band %d", id, d)
			}
		}
	}
	for _, id := range taxonomy.TrapSkillIDs() {
		if _, ok := bm.TrapProfile[id]; !ok {
			t.Errorf("trap %s missing profile", id)
		}
	}
	if bm.EstimatedScore != (EstimatedScore{Overall: 130, RC: 130, TC: 130, SE: 130}) {
		t.Errorf("fresh estimate = %+v, want all 130", bm.EstimatedScore)
	}
}

func TestEstimatedScore_AlwaysClamped(t *testing.T) {
	bm := New("u1")

	// All-zero mastery.
	if s := recalculateScores(bm); s.Overall < 130 || s.RC < 130 || s.TC < 130 || s.SE < 130 {
		t.Errorf("zero-mastery estimate out of range: %+v", s)
	}

	// Force every skill to full mastery.
	maxed := bm.Clone()
	for id, sm := range maxed.Skills {
		sm.Mastery = 1.0
		maxed.Skills[id] = sm
	}
	s := recalculateScores(maxed)
	if s.Overall > 170 || s.RC > 170 || s.TC > 170 || s.SE > 170 {
		t.Errorf("full-mastery estimate out of range: %+v", s)
	}
	if s.RC != 170 || s.TC != 170 || s.SE != 170 || s.Overall != 170 {
		t.Errorf("full mastery should pin every estimate at 170, got %+v", s)
	}
}

func TestEstimatedScore_RecomputedFromWholeSkillSet(t *testing.T) {
	bm := New("u1")
	before := bm.EstimatedScore
	bm = UpdateSkillAfterAnswer(bm, "TC-CON", 5, true)
	after := bm.EstimatedScore
	if after.TC < before.TC {
		t.Errorf("TC estimate dropped after a correct answer: %d -> %d", before.TC, after.TC)
	}
	if after.RC != 130 || after.SE != 130 {
		t.Errorf("untouched categories moved: %+v", after)
	}
}

func TestUpdateTrapProfile(t *testing.T) {
	bm := New("u1")
	bm = UpdateTrapProfile(bm, "TRAP-EXT", true)
	bm = UpdateTrapProfile(bm, "TRAP-EXT", true)
	bm = UpdateTrapProfile(bm, "TRAP-EXT", false)

	trap := bm.TrapProfile["TRAP-EXT"]
	if trap.FallenFor != 2 || trap.Avoided != 1 {
		t.Errorf("trap profile = %+v, want fallenFor=2 avoided=1", trap)
	}

	// Creating an absent profile on demand.
	bm = UpdateTrapProfile(bm, "TRAP-NEW", false)
	if bm.TrapProfile["TRAP-NEW"].Avoided != 1 {
		t.Errorf("absent trap not created: %+v", bm.TrapProfile["TRAP-NEW"])
	}
}

func TestAddTestToHistory_AppendOnly(t *testing.T) {
	bm := New("u1")
	next := AddTestToHistory(bm, TestHistoryEntry{TestID: "t1", Date: time.Now()})
	if len(bm.TestHistory) != 0 {
		t.Error("input history mutated")
	}
	if len(next.TestHistory) != 1 || next.TestHistory[0].TestID != "t1" {
		t.Errorf("history = %+v", next.TestHistory)
	}
}

func TestMarkLessonComplete_FloorsMastery(t *testing.T) {
	bm := New("u1")
	bm = MarkLessonComplete(bm, "TC-DN", 80)

	if _, ok := bm.LessonsCompleted["TC-DN"]; !ok {
		t.Fatal("lesson record missing")
	}
	if got := bm.Skills["TC-DN"].Mastery; got != 0.2 {
		t.Errorf("mastery = %f, want floor 0.2", got)
	}

	// A higher mastery must not be pulled down.
	sm := bm.Skills["TC-CON"]
	sm.Mastery = 0.6
	bm.Skills["TC-CON"] = sm
	bm = MarkLessonComplete(bm, "TC-CON", 100)
	if got := bm.Skills["TC-CON"].Mastery; got != 0.6 {
		t.Errorf("mastery = %f, want 0.6 untouched", got)
	}
}

func TestWeakAndStrongSkills(t *testing.T) {
	bm := New("u1")
	set := func(id string, m float64) {
		sm := bm.Skills[id]
		sm.Mastery = m
		bm.Skills[id] = sm
	}
	// Lift every TC skill off the zero floor so the probes below have
	// unambiguous ranks.
	for _, s := range taxonomy.ByCategory(taxonomy.CategoryTextCompletion) {
		set(s.ID, 0.5)
	}
	set("TC-CON", 0.9)
	set("TC-CE", 0.1)

	weak := WeakSkills(bm, taxonomy.CategoryTextCompletion)
	if weak[0] != "TC-CE" {
		t.Errorf("weakest TC skill = %s, want TC-CE", weak[0])
	}
	strong := StrongSkills(bm, taxonomy.CategoryTextCompletion)
	if strong[0] != "TC-CON" {
		t.Errorf("strongest TC skill = %s, want TC-CON", strong[0])
	}
	if len(weak) != len(taxonomy.ByCategory(taxonomy.CategoryTextCompletion)) {
		t.Errorf("category filter returned %d skills", len(weak))
	}

	all := WeakSkills(bm, "")
	if len(all) != len(taxonomy.AllSkillIDs()) {
		t.Errorf("unfiltered list has %d skills, want %d", len(all), len(taxonomy.AllSkillIDs()))
	}
}

func TestSkillRankings_TiesAreDeterministic(t *testing.T) {
	// A fresh map has every skill at mastery zero; equal entries must
	// come back ordered by ID, not by map iteration.
	bm := New("u1")

	weak := WeakSkills(bm, "")
	sorted := append([]string{}, weak...)
	sort.Strings(sorted)
	for i := range weak {
		if weak[i] != sorted[i] {
			t.Fatalf("tied skills out of ID order at %d: got %v", i, weak)
		}
	}

	for run := 0; run < 5; run++ {
		if again := WeakSkills(bm, ""); !slices.Equal(again, weak) {
			t.Fatalf("ranking changed between calls: %v vs %v", again, weak)
		}
	}
}

func TestSkillsNeedingReview(t *testing.T) {
	bm := New("u1")

	sm := bm.Skills["RC-INF"]
	sm.QuestionsSeen = 5
	sm.LastPracticed = time.Now().Add(-10 * 24 * time.Hour)
	bm.Skills["RC-INF"] = sm

	sm = bm.Skills["RC-PP"]
	sm.QuestionsSeen = 5
	sm.LastPracticed = time.Now()
	sm.Trend = TrendDeclining
	bm.Skills["RC-PP"] = sm

	due := SkillsNeedingReview(bm)
	if len(due) != 2 {
		t.Fatalf("due = %v, want RC-INF and RC-PP", due)
	}
	found := map[string]bool{due[0]: true, due[1]: true}
	if !found["RC-INF"] || !found["RC-PP"] {
		t.Errorf("due = %v", due)
	}
}

package brainmap

import (
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/nkapur/verbaprep/internal/taxonomy"
)

// UpdateTrapProfile increments the fallen-for or avoided counter on one
// trap profile, creating it if absent. No other field changes.
func UpdateTrapProfile(bm *BrainMap, trapID string, fellFor bool) *BrainMap {
	updated := bm.Clone()
	trap, ok := updated.TrapProfile[trapID]
	if !ok {
		trap = TrapProfile{TrapID: trapID}
	}
	if fellFor {
		trap.FallenFor++
	} else {
		trap.Avoided++
	}
	updated.TrapProfile[trapID] = trap
	return updated
}

// AddTestToHistory appends a completed test summary.
func AddTestToHistory(bm *BrainMap, entry TestHistoryEntry) *BrainMap {
	updated := bm.Clone()
	updated.TestHistory = append(updated.TestHistory, entry)
	updated.LastUpdated = time.Now()
	return updated
}

// MarkLessonComplete records a finished lesson and floors the skill's
// mastery at 0.2 so fresh lesson knowledge registers immediately.
func MarkLessonComplete(bm *BrainMap, skillID string, quickCheckScore int) *BrainMap {
	updated := bm.Clone()
	updated.LessonsCompleted[skillID] = LessonRecord{
		CompletedAt:     time.Now(),
		QuickCheckScore: quickCheckScore,
	}
	if sm, ok := updated.Skills[skillID]; ok && sm.Mastery < 0.2 {
		sm.Mastery = 0.2
		sm.Level = LevelFoundation
		updated.Skills[skillID] = sm
	}
	return updated
}

// WeakSkills returns skill IDs sorted by ascending mastery, optionally
// restricted to one category. An empty category means all skills.
func WeakSkills(bm *BrainMap, category taxonomy.Category) []string {
	return sortedByMastery(bm, category, true)
}

// StrongSkills returns skill IDs sorted by descending mastery.
func StrongSkills(bm *BrainMap, category taxonomy.Category) []string {
	return sortedByMastery(bm, category, false)
}

func sortedByMastery(bm *BrainMap, category taxonomy.Category, ascending bool) []string {
	skills := lo.Values(bm.Skills)
	if category != "" {
		skills = lo.Filter(skills, func(sm SkillMastery, _ int) bool {
			c, ok := taxonomy.CategoryOf(sm.SkillID)
			return ok && c == category
		})
	}
	sort.SliceStable(skills, func(i, j int) bool {
		if skills[i].Mastery != skills[j].Mastery {
			if ascending {
				return skills[i].Mastery < skills[j].Mastery
			}
			return skills[i].Mastery > skills[j].Mastery
		}
		// Ties break on ID so map iteration order never leaks out.
		return skills[i].SkillID < skills[j].SkillID
	})
	return lo.Map(skills, func(sm SkillMastery, _ int) string { return sm.SkillID })
}

// SkillsNeedingReview returns practiced skills that are declining or idle
// for more than five days, weakest first.
func SkillsNeedingReview(bm *BrainMap) []string {
	now := time.Now()
	due := lo.Filter(lo.Values(bm.Skills), func(sm SkillMastery, _ int) bool {
		if sm.QuestionsSeen == 0 || sm.LastPracticed.IsZero() {
			return false
		}
		daysSince := now.Sub(sm.LastPracticed).Hours() / 24
		return sm.Trend == TrendDeclining || daysSince > 5
	})
	sort.SliceStable(due, func(i, j int) bool {
		if due[i].Mastery != due[j].Mastery {
			return due[i].Mastery < due[j].Mastery
		}
		return due[i].SkillID < due[j].SkillID
	})
	return lo.Map(due, func(sm SkillMastery, _ int) string { return sm.SkillID })
}

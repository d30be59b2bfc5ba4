// Package brainmap implements the per-user skill mastery model. Every
// mutation takes a BrainMap and returns a fresh deep copy; successive
// states never alias, so concurrent sessions cannot partially overwrite
// each other's updates.
package brainmap

import (
	"maps"
	"slices"
	"time"

	"github.com/nkapur/verbaprep/internal/taxonomy"
)

// MasteryLevel is the label derived from a mastery value.
type MasteryLevel string

const (
	LevelFoundation MasteryLevel = "foundation"
	LevelDeveloping MasteryLevel = "developing"
	LevelCompetent  MasteryLevel = "competent"
	LevelAdvanced   MasteryLevel = "advanced"
	LevelExpert     MasteryLevel = "expert"
)

// Trend describes the direction of recent performance.
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendStable    Trend = "stable"
	TrendDeclining Trend = "declining"
)

// DifficultyAccuracy tracks seen/correct counts within one difficulty band.
type DifficultyAccuracy struct {
	Seen    int `json:"seen"`
	Correct int `json:"correct"`
}

// SkillMastery is the per-skill proficiency record.
type SkillMastery struct {
	SkillID       string       `json:"skillId"`
	Mastery       float64      `json:"mastery"`
	Level         MasteryLevel `json:"level"`
	QuestionsSeen int          `json:"questionsSeen"`
	Correct       int          `json:"correct"`
	// AccuracyByDifficulty is keyed by difficulty band 1..5 only.
	AccuracyByDifficulty map[int]DifficultyAccuracy `json:"accuracyByDifficulty"`
	// CurrentDifficulty is carried for future use; the mastery
	// calculation does not read it.
	CurrentDifficulty float64   `json:"currentDifficulty"`
	Trend             Trend     `json:"trend"`
	LastPracticed     time.Time `json:"lastPracticed,omitzero"`
	Streak            int       `json:"streak"`
	// RecentAnswers keeps the most recent answers, oldest first, bounded
	// to maxRecentAnswers.
	RecentAnswers []bool `json:"recentAnswers"`
}

// TrapProfile counts encounters with one trap skill.
type TrapProfile struct {
	TrapID    string `json:"trapId"`
	FallenFor int    `json:"fallenFor"`
	Avoided   int    `json:"avoided"`
}

// EstimatedScore holds the 130-170 scaled score estimates.
type EstimatedScore struct {
	Overall int `json:"overall"`
	RC      int `json:"rc"`
	TC      int `json:"tc"`
	SE      int `json:"se"`
}

// TestHistoryEntry summarizes one completed test.
type TestHistoryEntry struct {
	TestID          string    `json:"testId"`
	Date            time.Time `json:"date"`
	Category        string    `json:"category"`
	Score           string    `json:"score"`
	EstimatedScore  int       `json:"estimatedScore"`
	DifficultyRange [2]int    `json:"difficultyRange"`
	WeakSkills      []string  `json:"weakSkills"`
	StrongSkills    []string  `json:"strongSkills"`
}

// LessonRecord marks a completed skill lesson.
type LessonRecord struct {
	CompletedAt     time.Time `json:"completedAt"`
	QuickCheckScore int       `json:"quickCheckScore"`
}

// BrainMap is the full proficiency snapshot for one user.
type BrainMap struct {
	UserID           string                  `json:"userId"`
	LastUpdated      time.Time               `json:"lastUpdated"`
	EstimatedScore   EstimatedScore          `json:"estimatedScore"`
	Skills           map[string]SkillMastery `json:"skills"`
	TrapProfile      map[string]TrapProfile  `json:"trapProfile"`
	TestHistory      []TestHistoryEntry      `json:"testHistory"`
	LessonsCompleted map[string]LessonRecord `json:"lessonsCompleted"`
}

// New creates a BrainMap with every taxonomy skill at mastery zero and a
// trap profile for every trap skill.
func New(userID string) *BrainMap {
	skills := make(map[string]SkillMastery)
	for _, id := range taxonomy.AllSkillIDs() {
		skills[id] = newSkillMastery(id)
	}

	traps := make(map[string]TrapProfile)
	for _, id := range taxonomy.TrapSkillIDs() {
		traps[id] = TrapProfile{TrapID: id}
	}

	return &BrainMap{
		UserID:           userID,
		LastUpdated:      time.Now(),
		EstimatedScore:   EstimatedScore{Overall: 130, RC: 130, TC: 130, SE: 130},
		Skills:           skills,
		TrapProfile:      traps,
		TestHistory:      []TestHistoryEntry{},
		LessonsCompleted: make(map[string]LessonRecord),
	}
}

func newSkillMastery(skillID string) SkillMastery {
	acc := make(map[int]DifficultyAccuracy, 5)
	for d := 1; d <= 5; d++ {
		acc[d] = DifficultyAccuracy{}
	}
	return SkillMastery{
		SkillID:              skillID,
		Level:                LevelFoundation,
		AccuracyByDifficulty: acc,
		CurrentDifficulty:    2.0,
		Trend:                TrendStable,
	}
}

// Clone returns a deep copy. All mutators go through Clone so returned
// maps never share state with their input.
func (bm *BrainMap) Clone() *BrainMap {
	out := &BrainMap{
		UserID:           bm.UserID,
		LastUpdated:      bm.LastUpdated,
		EstimatedScore:   bm.EstimatedScore,
		Skills:           make(map[string]SkillMastery, len(bm.Skills)),
		TrapProfile:      maps.Clone(bm.TrapProfile),
		TestHistory:      make([]TestHistoryEntry, len(bm.TestHistory)),
		LessonsCompleted: maps.Clone(bm.LessonsCompleted),
	}
	for i, e := range bm.TestHistory {
		e.WeakSkills = slices.Clone(e.WeakSkills)
		e.StrongSkills = slices.Clone(e.StrongSkills)
		out.TestHistory[i] = e
	}
	for id, sm := range bm.Skills {
		sm.AccuracyByDifficulty = maps.Clone(sm.AccuracyByDifficulty)
		sm.RecentAnswers = slices.Clone(sm.RecentAnswers)
		out.Skills[id] = sm
	}
	return out
}

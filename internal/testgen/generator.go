// Package testgen builds single-category practice tests: skill slots
// stratified against current mastery, a gentle difficulty arc, and a
// fallback ladder against the question store so short supply degrades
// the test instead of failing it.
package testgen

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/nkapur/verbaprep/internal/brainmap"
	"github.com/nkapur/verbaprep/internal/question"
	"github.com/nkapur/verbaprep/internal/taxonomy"
)

// maxQuestionsPerSkill caps how often one skill is targeted in a test.
const maxQuestionsPerSkill = 3

// Stratification shares: 40% weak, 30% moderate, remainder strong.
const (
	weakShare     = 0.4
	moderateShare = 0.3
)

// GeneratedTest is an ordered test with its per-slot difficulty targets.
// TargetDifficulties is truncated to the questions actually found.
type GeneratedTest struct {
	TestID             string              `json:"testId"`
	Category           taxonomy.Category   `json:"category"`
	Questions          []question.Question `json:"questions"`
	TargetDifficulties []int               `json:"targetDifficulties"`
}

// Generator selects questions from a store. The rand source is injected
// so a fixed seed reproduces slot order and tie-breaking.
type Generator struct {
	store question.Store
	rng   *rand.Rand
}

// New creates a Generator backed by the given store and random source.
func New(store question.Store, rng *rand.Rand) *Generator {
	return &Generator{store: store, rng: rng}
}

// Generate builds a test of up to questionCount questions for one
// category. It returns fewer questions when the store runs short.
func (g *Generator) Generate(ctx context.Context, category taxonomy.Category, questionCount int, bm *brainmap.BrainMap) (*GeneratedTest, error) {
	skillIDs := lo.Map(taxonomy.ByCategory(category), func(s taxonomy.Skill, _ int) string { return s.ID })
	if len(skillIDs) == 0 || questionCount <= 0 {
		return &GeneratedTest{TestID: newTestID("test"), Category: category}, nil
	}

	slots := g.buildSkillSlots(skillIDs, questionCount, bm)
	g.shuffleAvoidingAdjacentRepeats(slots)
	targets := targetDifficulties(questionCount)

	selected := make([]question.Question, 0, questionCount)
	usedIDs := make(map[string]bool)
	usedPassages := make(map[string]bool)
	skillCounts := make(map[string]int)

	for i := 0; i < questionCount; i++ {
		skillID := effectiveSkill(slots, i, skillCounts)
		pick, ok, err := g.pickQuestion(ctx, category, skillID, targets[i], usedIDs)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		selected = append(selected, pick)
		usedIDs[pick.ID] = true
		if pick.PassageID != "" {
			usedPassages[pick.PassageID] = true
		}
		skillCounts[skillID]++
	}

	return &GeneratedTest{
		TestID:             newTestID("test"),
		Category:           category,
		Questions:          selected,
		TargetDifficulties: targets[:len(selected)],
	}, nil
}

// buildSkillSlots allocates one skill per future question. With practice
// history the pools stratify by mastery; without it, skills cycle evenly.
func (g *Generator) buildSkillSlots(skillIDs []string, questionCount int, bm *brainmap.BrainMap) []string {
	var weak, moderate, strong []string
	hasData := false
	for _, id := range skillIDs {
		sm := bm.Skills[id]
		if sm.QuestionsSeen > 0 {
			hasData = true
		}
		switch {
		case sm.Mastery < 0.5:
			weak = append(weak, id)
		case sm.Mastery < 0.7:
			moderate = append(moderate, id)
		default:
			strong = append(strong, id)
		}
	}

	slots := make([]string, 0, questionCount)
	if hasData && len(weak) > 0 {
		weakCount := int(math.Ceil(float64(questionCount) * weakShare))
		modCount := int(math.Ceil(float64(questionCount) * moderateShare))
		strongCount := questionCount - weakCount - modCount

		for i := 0; i < weakCount; i++ {
			slots = append(slots, weak[i%len(weak)])
		}
		modPool := moderate
		if len(modPool) == 0 {
			modPool = skillIDs
		}
		for i := 0; i < modCount; i++ {
			slots = append(slots, modPool[i%len(modPool)])
		}
		strongPool := strong
		if len(strongPool) == 0 {
			strongPool = skillIDs
		}
		for i := 0; i < strongCount; i++ {
			slots = append(slots, strongPool[i%len(strongPool)])
		}
	} else {
		for i := 0; i < questionCount; i++ {
			slots = append(slots, skillIDs[i%len(skillIDs)])
		}
	}
	return slots
}

// shuffleAvoidingAdjacentRepeats permutes the slots uniformly, then
// repairs adjacent duplicates by swapping with the nearest later distinct
// entry. Repeats stay only when the pool makes them unavoidable.
func (g *Generator) shuffleAvoidingAdjacentRepeats(slots []string) {
	g.rng.Shuffle(len(slots), func(i, j int) {
		slots[i], slots[j] = slots[j], slots[i]
	})
	for i := 1; i < len(slots); i++ {
		if slots[i] != slots[i-1] {
			continue
		}
		for j := i + 1; j < len(slots); j++ {
			if slots[j] != slots[i] {
				slots[i], slots[j] = slots[j], slots[i]
				break
			}
		}
	}
}

// targetDifficulties produces the difficulty arc: two baseline questions
// at 3, then a single sine sweep peaking mid-test.
func targetDifficulties(questionCount int) []int {
	targets := make([]int, questionCount)
	for i := range targets {
		if i < 2 {
			targets[i] = 3
			continue
		}
		v := 3 + math.Sin(float64(i)/float64(questionCount)*math.Pi)*1.5
		targets[i] = int(math.Round(math.Max(1, math.Min(5, v))))
	}
	return targets
}

// effectiveSkill redirects a slot whose skill already hit the per-test
// cap to another under-used slot's skill.
func effectiveSkill(slots []string, i int, skillCounts map[string]int) string {
	target := slots[i]
	if skillCounts[target] < maxQuestionsPerSkill {
		return target
	}
	for _, s := range slots {
		if skillCounts[s] < maxQuestionsPerSkill {
			return s
		}
	}
	return target
}

// pickQuestion walks the fallback ladder: exact skill+difficulty, then
// the skill at ±1 difficulty ranked by closeness, then any unused
// question of the category. One of the top three candidates is chosen at
// random so regenerating a test does not repeat itself deterministically.
func (g *Generator) pickQuestion(ctx context.Context, category taxonomy.Category, skillID string, targetDiff int, usedIDs map[string]bool) (question.Question, bool, error) {
	candidates, err := g.store.QuestionsBySkill(ctx, skillID, targetDiff)
	if err != nil {
		return question.Question{}, false, fmt.Errorf("fetch questions for %s at %d: %w", skillID, targetDiff, err)
	}
	candidates = rejectUsed(candidates, usedIDs)

	if len(candidates) == 0 {
		all, err := g.store.QuestionsBySkill(ctx, skillID, question.AnyDifficulty)
		if err != nil {
			return question.Question{}, false, fmt.Errorf("fetch questions for %s: %w", skillID, err)
		}
		candidates = lo.Filter(all, func(q question.Question, _ int) bool {
			return !usedIDs[q.ID] && abs(q.Difficulty-targetDiff) <= 1
		})
		sort.SliceStable(candidates, func(i, j int) bool {
			return abs(candidates[i].Difficulty-targetDiff) < abs(candidates[j].Difficulty-targetDiff)
		})
	}

	if len(candidates) == 0 {
		pool, err := g.store.Questions(ctx, category)
		if err != nil {
			return question.Question{}, false, fmt.Errorf("fetch %s pool: %w", category, err)
		}
		candidates = rejectUsed(pool, usedIDs)
		g.rng.Shuffle(len(candidates), func(i, j int) {
			candidates[i], candidates[j] = candidates[j], candidates[i]
		})
	}

	if len(candidates) == 0 {
		return question.Question{}, false, nil
	}
	top := min(3, len(candidates))
	return candidates[g.rng.Intn(top)], true, nil
}

func rejectUsed(qs []question.Question, usedIDs map[string]bool) []question.Question {
	return lo.Filter(qs, func(q question.Question, _ int) bool { return !usedIDs[q.ID] })
}

func newTestID(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.NewString())
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Package mocktest orchestrates the two-section adaptive exam. Section 1
// runs at baseline difficulty; section 2 branches easy/standard/hard on
// the section-1 raw score. Reading-comprehension questions travel in
// passage blocks that are never split by shuffling.
package mocktest

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/nkapur/verbaprep/internal/brainmap"
	"github.com/nkapur/verbaprep/internal/question"
	"github.com/nkapur/verbaprep/internal/scoring"
	"github.com/nkapur/verbaprep/internal/taxonomy"
)

// Per-section composition: 6 RC, 8 TC, 6 SE.
var sectionComposition = []struct {
	category taxonomy.Category
	count    int
}{
	{taxonomy.CategoryReadingComprehension, 6},
	{taxonomy.CategoryTextCompletion, 8},
	{taxonomy.CategorySentenceEquivalence, 6},
}

// maxQuestionsPerPassage bounds how many questions one passage can
// contribute to a section.
const maxQuestionsPerPassage = 3

// Section is one of the exam's two question blocks.
type Section struct {
	SectionNumber  int                 `json:"sectionNumber"`
	Questions      []question.Question `json:"questions"`
	DifficultyTier scoring.Tier        `json:"difficultyTier"`
}

// MockTest is a two-section exam. Section 2 stays empty until section 1
// has been answered and the tier is known.
type MockTest struct {
	TestID    string     `json:"testId"`
	Sections  [2]Section `json:"sections"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Engine generates and grades mock tests against a question store. The
// rand source is injected so fixed seeds reproduce selection.
type Engine struct {
	store question.Store
	rng   *rand.Rand
}

// New creates an Engine.
func New(store question.Store, rng *rand.Rand) *Engine {
	return &Engine{store: store, rng: rng}
}

// Generate builds a mock test with section 1 populated at baseline
// difficulty. Section 2 is generated after section 1 is answered.
func (e *Engine) Generate(ctx context.Context, bm *brainmap.BrainMap) (*MockTest, error) {
	section1, err := e.selectSectionQuestions(ctx, scoring.TierStandard.TargetDifficulty(), nil)
	if err != nil {
		return nil, fmt.Errorf("assemble section 1: %w", err)
	}
	return &MockTest{
		TestID: fmt.Sprintf("mock-%s", uuid.NewString()),
		Sections: [2]Section{
			{SectionNumber: 1, Questions: section1, DifficultyTier: scoring.TierStandard},
			{SectionNumber: 2, DifficultyTier: scoring.TierStandard},
		},
		CreatedAt: time.Now(),
	}, nil
}

// GenerateSection2 branches on the section-1 raw score and fills section
// 2 at the tier's target difficulty, excluding every section-1 question.
func (e *Engine) GenerateSection2(ctx context.Context, mt *MockTest, section1Answers []question.Answer) (*MockTest, error) {
	section1 := mt.Sections[0]
	correct := countCorrect(section1.Questions, section1Answers)
	tier := scoring.GetSection2Tier(correct, len(section1.Questions))

	exclude := make(map[string]bool, len(section1.Questions))
	for _, q := range section1.Questions {
		exclude[q.ID] = true
	}

	questions, err := e.selectSectionQuestions(ctx, tier.TargetDifficulty(), exclude)
	if err != nil {
		return nil, fmt.Errorf("assemble section 2: %w", err)
	}

	out := *mt
	out.Sections[1] = Section{SectionNumber: 2, Questions: questions, DifficultyTier: tier}
	return &out, nil
}

// selectSectionQuestions fills one section to the 6/8/6 composition. RC
// comes from shuffled passage groups, at most three questions each
// ranked by closeness to the target difficulty, falling back to
// standalone RC only when passages run short. TC and SE pick from the
// closest-difficulty candidates with a shuffled tie pool.
func (e *Engine) selectSectionQuestions(ctx context.Context, targetDifficulty int, exclude map[string]bool) ([]question.Question, error) {
	used := make(map[string]bool, len(exclude))
	for id := range exclude {
		used[id] = true
	}

	var selected []question.Question
	for _, target := range sectionComposition {
		pool, err := e.store.Questions(ctx, target.category)
		if err != nil {
			return nil, fmt.Errorf("fetch %s pool: %w", target.category, err)
		}
		pool = lo.Filter(pool, func(q question.Question, _ int) bool { return !used[q.ID] })

		var picked []question.Question
		if target.category == taxonomy.CategoryReadingComprehension {
			picked = e.pickReadingComprehension(pool, target.count, targetDifficulty)
		} else {
			picked = e.pickByDifficulty(pool, target.count, targetDifficulty)
		}
		for _, q := range picked {
			used[q.ID] = true
		}
		selected = append(selected, picked...)
	}

	return e.shuffleKeepingPassageBlocks(selected), nil
}

// pickReadingComprehension consumes shuffled passage groups until the
// quota is met, then tops up from standalone RC questions.
func (e *Engine) pickReadingComprehension(pool []question.Question, count, targetDifficulty int) []question.Question {
	groups := lo.GroupBy(
		lo.Filter(pool, func(q question.Question, _ int) bool { return q.PassageID != "" }),
		func(q question.Question) string { return q.PassageID },
	)
	passageIDs := lo.Keys(groups)
	sort.Strings(passageIDs) // deterministic base order before shuffling
	e.rng.Shuffle(len(passageIDs), func(i, j int) {
		passageIDs[i], passageIDs[j] = passageIDs[j], passageIDs[i]
	})

	var picked []question.Question
	used := make(map[string]bool)
	for _, passageID := range passageIDs {
		if len(picked) >= count {
			break
		}
		group := sortByCloseness(groups[passageID], targetDifficulty)
		take := min(len(group), min(count-len(picked), maxQuestionsPerPassage))
		for i := 0; i < take; i++ {
			picked = append(picked, group[i])
			used[group[i].ID] = true
		}
	}

	if len(picked) < count {
		// Top up from ungrouped questions only; refilling from a passage
		// already at its cap would break the per-passage bound.
		standalone := sortByCloseness(
			lo.Filter(pool, func(q question.Question, _ int) bool { return q.PassageID == "" && !used[q.ID] }),
			targetDifficulty,
		)
		take := min(len(standalone), count-len(picked))
		picked = append(picked, standalone[:take]...)
	}
	return picked
}

// pickByDifficulty ranks by closeness to the target, then picks from a
// shuffled candidate pool so equal-distance questions rotate between
// generations.
func (e *Engine) pickByDifficulty(pool []question.Question, count, targetDifficulty int) []question.Question {
	candidates := sortByCloseness(pool, targetDifficulty)
	e.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	return candidates[:min(len(candidates), count)]
}

// shuffleKeepingPassageBlocks randomizes question order while keeping
// every passage's questions contiguous: each passage group is one block,
// every other question its own block; blocks shuffle, then flatten.
func (e *Engine) shuffleKeepingPassageBlocks(questions []question.Question) []question.Question {
	var blocks [][]question.Question
	byPassage := make(map[string]int)
	for _, q := range questions {
		if q.PassageID == "" {
			blocks = append(blocks, []question.Question{q})
			continue
		}
		if i, ok := byPassage[q.PassageID]; ok {
			blocks[i] = append(blocks[i], q)
			continue
		}
		byPassage[q.PassageID] = len(blocks)
		blocks = append(blocks, []question.Question{q})
	}

	e.rng.Shuffle(len(blocks), func(i, j int) {
		blocks[i], blocks[j] = blocks[j], blocks[i]
	})
	return lo.Flatten(blocks)
}

func sortByCloseness(qs []question.Question, targetDifficulty int) []question.Question {
	sorted := make([]question.Question, len(qs))
	copy(sorted, qs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return abs(sorted[i].Difficulty-targetDifficulty) < abs(sorted[j].Difficulty-targetDifficulty)
	})
	return sorted
}

// countCorrect grades one section's answers with exact-match semantics.
// Unanswered questions do not count.
func countCorrect(questions []question.Question, answers []question.Answer) int {
	selections := lo.SliceToMap(answers, func(a question.Answer) (string, []string) {
		return a.QuestionID, a.Selected
	})
	correct := 0
	for _, q := range questions {
		selected, ok := selections[q.ID]
		if !ok || len(selected) == 0 {
			continue
		}
		if q.IsCorrect(selected) {
			correct++
		}
	}
	return correct
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

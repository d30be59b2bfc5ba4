package brainmap

import (
	"math"

	"github.com/samber/lo"

	"github.com/nkapur/verbaprep/internal/taxonomy"
)

// Category weights for the overall estimate. Reading comprehension is
// roughly half the real verbal sections, so it carries the most weight.
const (
	rcWeight = 0.45
	tcWeight = 0.30
	seWeight = 0.25
)

// recalculateScores derives all four scaled score estimates from the
// entire skill set.
func recalculateScores(bm *BrainMap) EstimatedScore {
	rc := categoryScore(bm, taxonomy.CategoryReadingComprehension)
	tc := categoryScore(bm, taxonomy.CategoryTextCompletion)
	se := categoryScore(bm, taxonomy.CategorySentenceEquivalence)

	overall := int(math.Round(float64(rc)*rcWeight + float64(tc)*tcWeight + float64(se)*seWeight))

	return EstimatedScore{
		Overall: ClampScore(overall),
		RC:      ClampScore(rc),
		TC:      ClampScore(tc),
		SE:      ClampScore(se),
	}
}

// categoryScore maps the average mastery of a category's skills onto the
// 130-170 scale. A category with no skills scores 0 and gets clamped up
// by the caller.
func categoryScore(bm *BrainMap, category taxonomy.Category) int {
	masteries := lo.FilterMap(taxonomy.ByCategory(category), func(s taxonomy.Skill, _ int) (float64, bool) {
		sm, ok := bm.Skills[s.ID]
		return sm.Mastery, ok
	})
	if len(masteries) == 0 {
		return 0
	}
	avg := lo.Sum(masteries) / float64(len(masteries))
	return int(math.Round(130 + avg*40))
}

// ClampScore bounds a scaled score to [130,170].
func ClampScore(score int) int {
	return int(math.Max(130, math.Min(170, float64(score))))
}

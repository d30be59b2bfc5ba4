package question

import (
	"context"

	"github.com/nkapur/verbaprep/internal/taxonomy"
)

// AnyDifficulty asks a store method not to filter by difficulty.
const AnyDifficulty = 0

// Store is the question supply the generators draw from. Implementations
// may return empty slices; callers must not rely on any ordering.
type Store interface {
	// QuestionsBySkill returns questions exercising the skill. A
	// difficulty of AnyDifficulty returns all difficulties.
	QuestionsBySkill(ctx context.Context, skillID string, difficulty int) ([]Question, error)

	// Questions returns all questions of a category. An empty category
	// returns the whole bank.
	Questions(ctx context.Context, category taxonomy.Category) ([]Question, error)

	// Passages returns all reading passages. Used to discover grouping,
	// not content.
	Passages(ctx context.Context) ([]Passage, error)
}

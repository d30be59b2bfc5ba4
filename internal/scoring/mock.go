package scoring

import "github.com/nkapur/verbaprep/internal/brainmap"

// Tier is the section-2 difficulty branch of the mock exam.
type Tier string

const (
	TierEasy     Tier = "easy"
	TierStandard Tier = "standard"
	TierHard     Tier = "hard"
)

// TargetDifficulty returns the question difficulty a tier aims at.
func (t Tier) TargetDifficulty() int {
	switch t {
	case TierHard:
		return 4
	case TierEasy:
		return 2
	default:
		return 3
	}
}

// GetSection2Tier maps section-1 raw performance to the section-2 tier.
// The mapping is monotonic over the correct ratio and uses exactly three
// tiers.
func GetSection2Tier(section1Correct, section1Total int) Tier {
	if section1Total <= 0 {
		return TierStandard
	}
	ratio := float64(section1Correct) / float64(section1Total)
	switch {
	case ratio >= 0.7:
		return TierHard
	case ratio >= 0.4:
		return TierStandard
	default:
		return TierEasy
	}
}

// mockScoreTable approximates the official raw-to-scaled conversion for
// a 40-question exam.
var mockScoreTable = map[int]int{
	40: 170, 39: 169, 38: 167, 37: 166, 36: 165,
	35: 164, 34: 163, 33: 161, 32: 160, 31: 158,
	30: 157, 29: 156, 28: 155, 27: 154, 26: 152,
	25: 151, 24: 150, 23: 148, 22: 147, 21: 145,
	20: 144, 19: 143, 18: 141, 17: 140, 16: 138,
	15: 137, 14: 136, 13: 135, 12: 134, 11: 132,
	10: 131, 9: 131, 8: 130, 7: 130, 6: 130,
	5: 130, 4: 130, 3: 130, 2: 130, 1: 130, 0: 130,
}

// MockTestScoreInput carries both sections' raw results.
type MockTestScoreInput struct {
	Section1Correct int
	Section1Total   int
	Section2Correct int
	Section2Total   int
	Section2Tier    Tier
}

// CalculateMockTestScore converts the combined raw score through the
// lookup table, then credits or debits two points for the section-2
// branch: the same raw count is worth more on a hard second section.
func CalculateMockTestScore(input MockTestScoreInput) ScoreEstimate {
	raw := input.Section1Correct + input.Section2Correct
	scaled, ok := mockScoreTable[raw]
	if !ok {
		scaled = 130
	}

	switch input.Section2Tier {
	case TierHard:
		scaled = brainmap.ClampScore(scaled + 2)
	case TierEasy:
		scaled = brainmap.ClampScore(scaled - 2)
	}

	label, pct := Band(scaled)
	return ScoreEstimate{
		Score: scaled,
		// A single mock carries no accumulated history, so the interval
		// stays at its single-test width.
		ConfidenceInterval: ConfidenceInterval(1),
		Band:               label,
		Percentile:         pct,
	}
}

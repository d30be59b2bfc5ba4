// Package scoring maps raw performance onto the product's 130-170
// scaled-score range: theta-style estimates for single-category tests,
// a raw-score lookup table for the two-section mock exam, score bands,
// and confidence intervals.
package scoring

import (
	"math"

	"github.com/nkapur/verbaprep/internal/brainmap"
)

// ScoredAnswer is one answered question with its grading outcome. The
// engines build these; scoring only reads them.
type ScoredAnswer struct {
	QuestionID string   `json:"questionId"`
	Selected   []string `json:"selectedAnswer"`
	Correct    bool     `json:"correct"`
	Difficulty int      `json:"difficulty"`
	Skills     []string `json:"skills"`
	Section    int      `json:"sectionNumber,omitempty"`
}

// ScoreEstimate is a scaled score with its uncertainty and band.
type ScoreEstimate struct {
	Score              int    `json:"score"`
	ConfidenceInterval int    `json:"confidenceInterval"`
	Band               string `json:"band"`
	Percentile         int    `json:"percentile"`
}

// scoreBand labels a contiguous scaled-score range.
type scoreBand struct {
	min, max   int
	label      string
	percentile int
}

var scoreBands = []scoreBand{
	{165, 170, "High", 96},
	{156, 164, "Above Average", 80},
	{148, 155, "Average", 55},
	{140, 147, "Below Average", 30},
	{130, 139, "Low", 10},
}

// Band returns the label and percentile for a scaled score.
func Band(score int) (string, int) {
	for _, b := range scoreBands {
		if score >= b.min && score <= b.max {
			return b.label, b.percentile
		}
	}
	return "Low", 5
}

// EstimateScaledScore converts answered questions into a 130-170 score.
// Theta is the difficulty-weighted hit rate, normalized by how hard the
// test ran relative to its average difficulty.
func EstimateScaledScore(answers []ScoredAnswer) int {
	if len(answers) == 0 {
		return 130
	}

	var totalDifficulty, correctDifficulty, maxDifficulty float64
	for _, a := range answers {
		d := float64(a.Difficulty)
		totalDifficulty += d
		if a.Correct {
			correctDifficulty += d
		}
		maxDifficulty = math.Max(maxDifficulty, d)
	}
	if totalDifficulty == 0 {
		return 130
	}

	theta := correctDifficulty / totalDifficulty
	avgDifficulty := totalDifficulty / float64(len(answers))
	normalizedTheta := theta * (maxDifficulty / math.Max(avgDifficulty, 1))

	return brainmap.ClampScore(130 + int(math.Round(normalizedTheta*40)))
}

// ConfidenceInterval narrows as the learner accumulates test history,
// bounded to [2,6] points.
func ConfidenceInterval(testsTaken int) int {
	ci := math.Round(3 / math.Sqrt(float64(testsTaken)/2))
	return int(math.Max(2, math.Min(6, ci)))
}

// EstimateFromBrainMap derives the current standing estimate from test
// history, weighting recent tests higher. With no history it falls back
// to the model's running estimate at maximum uncertainty.
func EstimateFromBrainMap(bm *brainmap.BrainMap) ScoreEstimate {
	testCount := len(bm.TestHistory)
	if testCount == 0 {
		label, pct := Band(bm.EstimatedScore.Overall)
		return ScoreEstimate{
			Score:              bm.EstimatedScore.Overall,
			ConfidenceInterval: 6,
			Band:               label,
			Percentile:         pct,
		}
	}

	recent := bm.TestHistory
	if len(recent) > 10 {
		recent = recent[len(recent)-10:]
	}
	var weightedSum, totalWeight float64
	for i, test := range recent {
		w := float64(i + 1)
		weightedSum += float64(test.EstimatedScore) * w
		totalWeight += w
	}

	avg := 130
	if totalWeight > 0 {
		avg = int(math.Round(weightedSum / totalWeight))
	}
	score := brainmap.ClampScore(avg)
	label, pct := Band(score)
	return ScoreEstimate{
		Score:              score,
		ConfidenceInterval: ConfidenceInterval(testCount),
		Band:               label,
		Percentile:         pct,
	}
}

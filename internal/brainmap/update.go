package brainmap

import (
	"math"
	"time"
)

// difficultyWeights scale both the numerator and the denominator of the
// weighted hit rate. Keeping the weight on the denominator too is the
// documented behavior, even though it dampens the harder-question bonus.
var difficultyWeights = map[int]float64{1: 0.5, 2: 0.75, 3: 1.0, 4: 1.5, 5: 2.0}

const maxRecentAnswers = 20

// UpdateSkillAfterAnswer folds one answered question into the model and
// returns a new BrainMap. Unknown skill IDs yield an unchanged copy.
func UpdateSkillAfterAnswer(bm *BrainMap, skillID string, difficulty float64, correct bool) *BrainMap {
	updated := bm.Clone()
	updated.LastUpdated = time.Now()

	sm, ok := updated.Skills[skillID]
	if !ok {
		return updated
	}

	sm.QuestionsSeen++
	if correct {
		sm.Correct++
		sm.Streak++
	} else {
		sm.Streak = 0
	}

	band := clampBand(difficulty)
	rec := sm.AccuracyByDifficulty[band]
	rec.Seen++
	if correct {
		rec.Correct++
	}
	sm.AccuracyByDifficulty[band] = rec

	sm.RecentAnswers = append(sm.RecentAnswers, correct)
	if len(sm.RecentAnswers) > maxRecentAnswers {
		sm.RecentAnswers = sm.RecentAnswers[len(sm.RecentAnswers)-maxRecentAnswers:]
	}

	sm.LastPracticed = time.Now()

	sm.Mastery = CalculateMastery(sm)
	sm.Level = LevelFor(sm.Mastery)
	sm.Trend = trendFor(sm.RecentAnswers)

	updated.Skills[skillID] = sm
	updated.EstimatedScore = recalculateScores(updated)
	return updated
}

// CalculateMastery combines four multiplicative factors, each roughly in
// [0,1], and clamps the product to [0,1].
func CalculateMastery(sm SkillMastery) float64 {
	return masteryAt(sm, time.Now())
}

func masteryAt(sm SkillMastery, now time.Time) float64 {
	if sm.QuestionsSeen == 0 {
		return 0
	}

	var weightedCorrect, totalWeight float64
	for band, rec := range sm.AccuracyByDifficulty {
		w, ok := difficultyWeights[band]
		if !ok {
			w = 1
		}
		weightedCorrect += float64(rec.Correct) * w
		totalWeight += float64(rec.Seen) * w
	}
	weightedAccuracy := 0.0
	if totalWeight > 0 {
		weightedAccuracy = weightedCorrect / totalWeight
	}

	consistency := consistencyFactor(sm.RecentAnswers)
	recency := recencyFactor(sm.LastPracticed, now)
	volume := math.Min(1.0, float64(sm.QuestionsSeen)/15.0)

	return clamp01(weightedAccuracy * consistency * recency * volume)
}

// consistencyFactor depresses mastery for erratic recent performance.
// Fewer than 3 answers is insufficient evidence and scores a flat 0.8.
func consistencyFactor(recent []bool) float64 {
	if len(recent) < 3 {
		return 0.8
	}
	last10 := recent
	if len(last10) > 10 {
		last10 = last10[len(last10)-10:]
	}
	var sum float64
	for _, a := range last10 {
		if a {
			sum++
		}
	}
	mean := sum / float64(len(last10))
	var variance float64
	for _, a := range last10 {
		v := 0.0
		if a {
			v = 1.0
		}
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(last10))
	stdDev := math.Sqrt(variance)
	return math.Max(0.5, 1-stdDev*0.3)
}

// recencyFactor decays mastery by 2% per idle day, floored at 0.5.
// A never-practiced skill sits at the floor.
func recencyFactor(lastPracticed, now time.Time) float64 {
	if lastPracticed.IsZero() {
		return 0.5
	}
	days := now.Sub(lastPracticed).Hours() / 24
	return math.Max(0.5, 1-days*0.02)
}

// LevelFor maps a mastery value to its label band.
func LevelFor(mastery float64) MasteryLevel {
	switch {
	case mastery < 0.30:
		return LevelFoundation
	case mastery < 0.50:
		return LevelDeveloping
	case mastery < 0.70:
		return LevelCompetent
	case mastery < 0.85:
		return LevelAdvanced
	default:
		return LevelExpert
	}
}

// trendFor compares the last 5 answers against the preceding 5. Fewer
// than 10 recorded answers reads as stable.
func trendFor(recent []bool) Trend {
	if len(recent) < 10 {
		return TrendStable
	}
	last5 := recent[len(recent)-5:]
	prev5 := recent[len(recent)-10 : len(recent)-5]

	diff := accuracy(last5) - accuracy(prev5)
	switch {
	case diff > 0.15:
		return TrendImproving
	case diff < -0.15:
		return TrendDeclining
	default:
		return TrendStable
	}
}

func accuracy(answers []bool) float64 {
	if len(answers) == 0 {
		return 0
	}
	var correct float64
	for _, a := range answers {
		if a {
			correct++
		}
	}
	return correct / float64(len(answers))
}

// clampBand rounds an observed difficulty to an integer band in [1,5].
func clampBand(difficulty float64) int {
	return int(math.Round(math.Max(1, math.Min(5, difficulty))))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

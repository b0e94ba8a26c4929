package predict

import "math"

// Model weights. The blend renormalizes the first three over whichever
// components survive their minimum-games gates; the last three scale
// additive adjustments.
const (
	weightRecentForm     = 0.30
	weightSeasonBaseline = 0.25
	weightH2HHistory     = 0.15
	weightHomeAway       = 0.10
	weightGoalieMatchup  = 0.10
	weightTeamPace       = 0.10
)

const (
	minGamesRecent = 3
	minGamesSeason = 10
	minGamesH2H    = 3

	recentFormWindow = 5

	leagueAvgSavePct      = 0.905
	leagueAvgGoalsPerTeam = 3.10
	leagueAvgGameTotal    = 2 * leagueAvgGoalsPerTeam

	defaultGoalRatio     = 0.4
	defaultExpectedShots = 2.5
	defaultExpectedTotal = 6.0
)

// component is one gated contribution to the blended baseline
type component struct {
	value  float64
	weight float64
}

// blendBase averages the available components with weights renormalized
// over the surviving subset. No components means no baseline.
func blendBase(components []component) float64 {
	if len(components) == 0 {
		return 0
	}

	var sum, weightSum float64
	for _, c := range components {
		sum += c.value * c.weight
		weightSum += c.weight
	}
	if weightSum == 0 {
		return 0
	}
	return sum / weightSum
}

// poissonProbs converts expected goals/points into outcome probabilities
// under a Poisson arrival model. Non-positive rates fall back to small
// floor probabilities.
func poissonProbs(expectedGoals, expectedPoints float64) (probGoal, probPoint, probMulti float64) {
	if expectedGoals > 0 {
		probGoal = 1 - math.Exp(-expectedGoals)
	} else {
		probGoal = 0.05
	}

	if expectedPoints > 0 {
		probPoint = 1 - math.Exp(-expectedPoints)
		lambda := expectedPoints
		probMulti = 1 - math.Exp(-lambda) - lambda*math.Exp(-lambda)
	} else {
		probPoint = 0.10
		probMulti = 0.02
	}

	return probGoal, probPoint, probMulti
}

// confidenceScore saturates at 1 once fifty games back the prediction;
// a full goalie picture adds a small bump.
func confidenceScore(gamesAnalyzed int, bothGoalies bool) float64 {
	score := math.Min(1, float64(gamesAnalyzed)/50)
	if bothGoalies {
		score = math.Min(1, score+0.10)
	}
	return score
}

// confidenceTier buckets a confidence score
func confidenceTier(score float64) string {
	switch {
	case score >= 0.70:
		return "high"
	case score >= 0.40:
		return "medium"
	default:
		return "low"
	}
}

// paceRating buckets a game's expected total goals
func paceRating(expectedTotal float64) string {
	switch {
	case expectedTotal >= 6.5:
		return "high"
	case expectedTotal <= 5.5:
		return "low"
	default:
		return "average"
	}
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}

// Package levels provides the level catalog for Entropy Reduction:
// YAML level definitions, win goals and star grading. This package
// depends on core but core does not depend on levels.
package levels

import "fmt"

// GoalType identifies the win condition of a level.
type GoalType string

const (
	GoalClearTiles   GoalType = "clear_tiles"   // Clear Amount tiles
	GoalReachScore   GoalType = "reach_score"   // Reach Amount points
	GoalChainLength  GoalType = "chain_length"  // Trigger a cascade chain of Amount steps
	GoalMaxCombo     GoalType = "max_combo"     // Reach a combo run of Amount clears
	GoalClearTimed   GoalType = "clear_timed"   // Clear Amount tiles within Seconds
	GoalSurvive      GoalType = "survive"       // Stay alive for Seconds
	GoalEntropyBelow GoalType = "entropy_below" // Push board entropy to Threshold or lower
)

// goalTypes is the set of valid goal type strings.
var goalTypes = map[GoalType]bool{
	GoalClearTiles:   true,
	GoalReachScore:   true,
	GoalChainLength:  true,
	GoalMaxCombo:     true,
	GoalClearTimed:   true,
	GoalSurvive:      true,
	GoalEntropyBelow: true,
}

// Goal is a level's win condition. Amount is used by count-based goals,
// Seconds by time-based goals and Threshold by entropy goals; unused
// fields stay zero.
type Goal struct {
	Type      GoalType
	Amount    int
	Seconds   float64
	Threshold float64
}

// StarMetric selects which stat the star thresholds grade.
type StarMetric string

const (
	StarsByScore StarMetric = "score"
	StarsByTime  StarMetric = "time"
	StarsByTiles StarMetric = "tiles"
)

// StarThresholds grades a completed level into 1..3 stars. Thresholds
// are ordered star 1 to star 3: for score and tiles the stat must reach
// the threshold, for time it must stay at or under it.
type StarThresholds struct {
	Metric     StarMetric
	Thresholds [3]float64
}

// GameStats is the session snapshot goals and stars are judged against.
// The game shell maintains it; this package only reads it.
type GameStats struct {
	Score        int
	TilesCleared int
	MaxCombo     int
	MaxChain     int
	Entropy      float64
	TimeElapsed  float64 // Seconds
}

// IsGoalComplete reports whether stats satisfy the goal.
func IsGoalComplete(g Goal, stats GameStats) bool {
	switch g.Type {
	case GoalClearTiles:
		return stats.TilesCleared >= g.Amount
	case GoalReachScore:
		return stats.Score >= g.Amount
	case GoalChainLength:
		return stats.MaxChain >= g.Amount
	case GoalMaxCombo:
		return stats.MaxCombo >= g.Amount
	case GoalClearTimed:
		return stats.TilesCleared >= g.Amount && stats.TimeElapsed <= g.Seconds
	case GoalSurvive:
		return stats.TimeElapsed >= g.Seconds
	case GoalEntropyBelow:
		return stats.Entropy <= g.Threshold
	default:
		return false
	}
}

// GoalProgress returns completion progress in percent, clamped to 0..100.
// Timed clear goals report the tile count; the deadline is pass/fail.
func GoalProgress(g Goal, stats GameStats) int {
	var ratio float64
	switch g.Type {
	case GoalClearTiles, GoalClearTimed:
		ratio = fraction(float64(stats.TilesCleared), float64(g.Amount))
	case GoalReachScore:
		ratio = fraction(float64(stats.Score), float64(g.Amount))
	case GoalChainLength:
		ratio = fraction(float64(stats.MaxChain), float64(g.Amount))
	case GoalMaxCombo:
		ratio = fraction(float64(stats.MaxCombo), float64(g.Amount))
	case GoalSurvive:
		ratio = fraction(stats.TimeElapsed, g.Seconds)
	case GoalEntropyBelow:
		if IsGoalComplete(g, stats) {
			ratio = 1
		}
	}

	pct := int(ratio * 100)
	if pct > 100 {
		pct = 100
	}
	if pct < 0 {
		pct = 0
	}
	return pct
}

func fraction(have, want float64) float64 {
	if want <= 0 {
		return 1
	}
	return have / want
}

// StarsEarned grades a completed level. A cleared level always earns at
// least one star even when no threshold is met.
func StarsEarned(st StarThresholds, stats GameStats) int {
	var stat float64
	switch st.Metric {
	case StarsByScore:
		stat = float64(stats.Score)
	case StarsByTime:
		stat = stats.TimeElapsed
	case StarsByTiles:
		stat = float64(stats.TilesCleared)
	default:
		return 1
	}

	stars := 0
	for _, threshold := range st.Thresholds {
		met := stat >= threshold
		if st.Metric == StarsByTime {
			met = stat <= threshold
		}
		if met {
			stars++
		}
	}
	if stars < 1 {
		stars = 1
	}
	return stars
}

// validateGoal checks that a parsed goal is internally consistent.
func validateGoal(g Goal) error {
	if !goalTypes[g.Type] {
		return fmt.Errorf("unknown goal type %q", g.Type)
	}
	switch g.Type {
	case GoalClearTiles, GoalReachScore, GoalChainLength, GoalMaxCombo:
		if g.Amount <= 0 {
			return fmt.Errorf("goal %s requires a positive amount", g.Type)
		}
	case GoalClearTimed:
		if g.Amount <= 0 || g.Seconds <= 0 {
			return fmt.Errorf("goal %s requires a positive amount and time limit", g.Type)
		}
	case GoalSurvive:
		if g.Seconds <= 0 {
			return fmt.Errorf("goal %s requires a positive duration", g.Type)
		}
	case GoalEntropyBelow:
		if g.Threshold <= 0 || g.Threshold >= 1 {
			return fmt.Errorf("goal %s requires a threshold in (0,1)", g.Type)
		}
	}
	return nil
}

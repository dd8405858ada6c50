package levels

import "testing"

func TestIsGoalComplete(t *testing.T) {
	tests := []struct {
		name     string
		goal     Goal
		stats    GameStats
		complete bool
	}{
		{"clear tiles met", Goal{Type: GoalClearTiles, Amount: 20}, GameStats{TilesCleared: 20}, true},
		{"clear tiles short", Goal{Type: GoalClearTiles, Amount: 20}, GameStats{TilesCleared: 19}, false},
		{"reach score met", Goal{Type: GoalReachScore, Amount: 300}, GameStats{Score: 300}, true},
		{"reach score over", Goal{Type: GoalReachScore, Amount: 300}, GameStats{Score: 450}, true},
		{"reach score short", Goal{Type: GoalReachScore, Amount: 300}, GameStats{Score: 299}, false},
		{"chain met", Goal{Type: GoalChainLength, Amount: 3}, GameStats{MaxChain: 3}, true},
		{"chain short", Goal{Type: GoalChainLength, Amount: 3}, GameStats{MaxChain: 2}, false},
		{"combo met", Goal{Type: GoalMaxCombo, Amount: 4}, GameStats{MaxCombo: 5}, true},
		{"timed clear in time", Goal{Type: GoalClearTimed, Amount: 10, Seconds: 60}, GameStats{TilesCleared: 10, TimeElapsed: 59}, true},
		{"timed clear too late", Goal{Type: GoalClearTimed, Amount: 10, Seconds: 60}, GameStats{TilesCleared: 10, TimeElapsed: 61}, false},
		{"survive met", Goal{Type: GoalSurvive, Seconds: 120}, GameStats{TimeElapsed: 120}, true},
		{"survive short", Goal{Type: GoalSurvive, Seconds: 120}, GameStats{TimeElapsed: 119.5}, false},
		{"entropy met", Goal{Type: GoalEntropyBelow, Threshold: 0.25}, GameStats{Entropy: 0.2}, true},
		{"entropy high", Goal{Type: GoalEntropyBelow, Threshold: 0.25}, GameStats{Entropy: 0.5}, false},
		{"unknown type", Goal{Type: "bogus", Amount: 1}, GameStats{Score: 999}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsGoalComplete(tc.goal, tc.stats); got != tc.complete {
				t.Errorf("IsGoalComplete() = %v, expected %v", got, tc.complete)
			}
		})
	}
}

func TestGoalProgress(t *testing.T) {
	tests := []struct {
		name  string
		goal  Goal
		stats GameStats
		pct   int
	}{
		{"halfway tiles", Goal{Type: GoalClearTiles, Amount: 20}, GameStats{TilesCleared: 10}, 50},
		{"score clamped", Goal{Type: GoalReachScore, Amount: 100}, GameStats{Score: 250}, 100},
		{"zero progress", Goal{Type: GoalMaxCombo, Amount: 4}, GameStats{}, 0},
		{"survive partial", Goal{Type: GoalSurvive, Seconds: 100}, GameStats{TimeElapsed: 25}, 25},
		{"entropy binary incomplete", Goal{Type: GoalEntropyBelow, Threshold: 0.25}, GameStats{Entropy: 0.9}, 0},
		{"entropy binary complete", Goal{Type: GoalEntropyBelow, Threshold: 0.25}, GameStats{Entropy: 0.1}, 100},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := GoalProgress(tc.goal, tc.stats); got != tc.pct {
				t.Errorf("GoalProgress() = %d, expected %d", got, tc.pct)
			}
		})
	}
}

func TestStarsEarned(t *testing.T) {
	byScore := StarThresholds{Metric: StarsByScore, Thresholds: [3]float64{200, 400, 800}}
	byTime := StarThresholds{Metric: StarsByTime, Thresholds: [3]float64{180, 120, 60}}

	tests := []struct {
		name  string
		st    StarThresholds
		stats GameStats
		stars int
	}{
		{"score below all", byScore, GameStats{Score: 100}, 1},
		{"score one star", byScore, GameStats{Score: 250}, 1},
		{"score two stars", byScore, GameStats{Score: 500}, 2},
		{"score three stars", byScore, GameStats{Score: 800}, 3},
		{"time slow", byTime, GameStats{TimeElapsed: 200}, 1},
		{"time mid", byTime, GameStats{TimeElapsed: 100}, 2},
		{"time fast", byTime, GameStats{TimeElapsed: 45}, 3},
		{"no thresholds floor", StarThresholds{}, GameStats{Score: 9999}, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := StarsEarned(tc.st, tc.stats); got != tc.stars {
				t.Errorf("StarsEarned() = %d, expected %d", got, tc.stars)
			}
		})
	}
}

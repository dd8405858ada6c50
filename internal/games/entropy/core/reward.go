package core

import (
	"math"
	"math/rand"
)

// RewardConfig tunes the reward calculator. Zero values are replaced by
// defaults in NewCalculator, so a partially filled config is safe.
type RewardConfig struct {
	Baseline           int     // Points per cleared tile before bonuses
	ComboMultiplier    float64 // Per-combo-step multiplier (applied as m^(combo-1))
	CriticalChance     float64 // Probability of a critical roll per clear
	CriticalMultiplier float64 // Points multiplier on a critical
}

// DefaultRewardConfig returns the standard tuning.
func DefaultRewardConfig() RewardConfig {
	return RewardConfig{
		Baseline:           10,
		ComboMultiplier:    1.5,
		CriticalChance:     0.10,
		CriticalMultiplier: 3.5,
	}
}

// Reward is the outcome of one clear: the points awarded, whether the
// critical roll fired, and a message the presentation layer may display.
type Reward struct {
	Points     int
	IsCritical bool
	Message    string
}

// Calculator converts cleared groups into score deltas. The critical roll
// is a variable-ratio schedule: independent on each call, uninfluenced by
// prior rolls or play quality.
type Calculator struct {
	cfg RewardConfig
	rng *rand.Rand
}

// NewCalculator creates a reward calculator using the given RNG.
// A chance of exactly 0 disables criticals, which tests rely on.
func NewCalculator(cfg RewardConfig, rng *rand.Rand) *Calculator {
	if cfg.Baseline == 0 {
		cfg.Baseline = 10
	}
	if cfg.ComboMultiplier == 0 {
		cfg.ComboMultiplier = 1.5
	}
	if cfg.CriticalMultiplier == 0 {
		cfg.CriticalMultiplier = 3.5
	}
	return &Calculator{cfg: cfg, rng: rng}
}

// Calculate converts base points, the current combo count and the cascade
// level into a reward. Combo scaling multiplies by multiplier^(combo-1)
// for combo counts above 1. The cascade level only affects the message:
// chain bonuses are already folded into basePoints by the caller.
// Points are floored to an integer.
func (c *Calculator) Calculate(basePoints, comboCount, cascadeLevel int) Reward {
	points := float64(basePoints)

	if comboCount > 1 {
		points *= math.Pow(c.cfg.ComboMultiplier, float64(comboCount-1))
	}

	isCritical := c.cfg.CriticalChance > 0 && c.rng.Float64() < c.cfg.CriticalChance
	if isCritical {
		points *= c.cfg.CriticalMultiplier
	}

	return Reward{
		Points:     int(math.Floor(points)),
		IsCritical: isCritical,
		Message:    rewardMessage(isCritical, comboCount, cascadeLevel),
	}
}

// ForClear computes the base points for a cleared group and runs the full
// calculation. Groups above 3 tiles earn a super-linear size bonus of
// 1 + 0.5*(n-3) on top of baseline*n.
func (c *Calculator) ForClear(clearedCount, comboCount, cascadeLevel int) Reward {
	base := float64(c.cfg.Baseline * clearedCount)
	if clearedCount > 3 {
		base *= 1 + 0.5*float64(clearedCount-3)
	}
	return c.Calculate(int(math.Floor(base)), comboCount, cascadeLevel)
}

// rewardMessage picks the feedback line for a clear. Chain labels apply to
// gravity-triggered clears, combo labels to consecutive player clears.
func rewardMessage(isCritical bool, comboCount, cascadeLevel int) string {
	switch {
	case isCritical:
		return "CRITICAL!"
	case cascadeLevel > 0:
		return "Chain!"
	case comboCount > 1:
		return "Combo!"
	default:
		return ""
	}
}

// ComboTracker counts consecutive successful clears inside a rolling tick
// window. It is process-local session state owned by the game shell; the
// pure calculator only consumes the count.
type ComboTracker struct {
	WindowTicks uint64 // Rolling timeout; 0 means combos never chain

	count    int
	lastTick uint64
	maxCount int
}

// Record registers a successful clear at the given tick and returns the
// updated combo count. Clears beyond the window restart the run.
func (ct *ComboTracker) Record(tick uint64) int {
	if ct.count > 0 && tick-ct.lastTick <= ct.WindowTicks {
		ct.count++
	} else {
		ct.count = 1
	}
	ct.lastTick = tick
	if ct.count > ct.maxCount {
		ct.maxCount = ct.count
	}
	return ct.count
}

// Expire resets the run if the window has lapsed by the given tick.
func (ct *ComboTracker) Expire(tick uint64) {
	if ct.count > 0 && tick-ct.lastTick > ct.WindowTicks {
		ct.count = 0
	}
}

// Fail resets the run after an unsuccessful action.
func (ct *ComboTracker) Fail() {
	ct.count = 0
}

// Count returns the current combo count.
func (ct *ComboTracker) Count() int {
	return ct.count
}

// Max returns the highest combo count seen this session.
func (ct *ComboTracker) Max() int {
	return ct.maxCount
}

// Reset clears all combo state.
func (ct *ComboTracker) Reset() {
	ct.count = 0
	ct.lastTick = 0
	ct.maxCount = 0
}

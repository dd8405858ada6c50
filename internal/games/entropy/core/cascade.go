package core

import (
	"math/rand"
	"sort"
)

// MaxCascadeLevel caps gravity-triggered re-detection depth. Termination
// within this many steps is guaranteed regardless of board configuration;
// exceeding it stops the cascade rather than hanging.
const MaxCascadeLevel = 10

// DetectMode selects the detection strategy a cascade uses between steps.
// Swap play re-detects with flood-fill groups; tap play re-detects with
// straight-line runs. The two detectors are never mixed in one resolution.
type DetectMode int

const (
	DetectGroups DetectMode = iota
	DetectLines
)

// Step is one discrete resolution step: the tiles cleared, the settled
// board after gravity, the cascade level reached and the score awarded.
// The presentation layer animates steps on its own schedule.
type Step struct {
	ClearedIDs   []int
	TilesAfter   []Tile
	Spawned      []Tile
	CascadeLevel int
	ScoreDelta   int
	Reward       Reward
}

// Cascade drives one resolution as explicit caller-owned state: no hidden
// state survives between calls, so a caller may run it step-by-step across
// animation frames or drain it at once with ResolveAll. Within each step,
// clearing always completes before gravity and gravity before
// re-detection.
type Cascade struct {
	tiles    []Tile
	gridSize int
	mode     DetectMode
	rng      *rand.Rand
	gen      IDGenerator
	calc     *Calculator
	combo    int

	pending []int
	level   int
	done    bool
}

// NewCascade prepares a cascade that will first clear initialIDs.
// comboCount is the player's combo at the initiating action; it applies to
// every step of this resolution. The tile set is validated up front since
// a corrupt board here is a programming error.
func NewCascade(initialIDs []int, tiles []Tile, gridSize int, mode DetectMode, rng *rand.Rand, gen IDGenerator, calc *Calculator, comboCount int) (*Cascade, error) {
	if err := ValidateTiles(tiles, gridSize); err != nil {
		return nil, err
	}
	if gen == nil {
		gen = SequenceAfter(tiles)
	}

	return &Cascade{
		tiles:    cloneTiles(tiles),
		gridSize: gridSize,
		mode:     mode,
		rng:      rng,
		gen:      gen,
		calc:     calc,
		combo:    comboCount,
		pending:  append([]int(nil), initialIDs...),
		done:     len(initialIDs) == 0,
	}, nil
}

// Next performs one clear -> gravity -> re-detect step. The second return
// is false once the cascade has terminated (no further matches, or the
// depth cap was reached).
func (c *Cascade) Next() (Step, bool) {
	if c.done {
		return Step{}, false
	}

	cleared := c.pending
	clearedCount := len(cleared)

	remaining := RemoveTiles(c.tiles, cleared)
	settled := ApplyGravity(remaining, c.gridSize, c.rng, c.gen)
	c.tiles = settled.Tiles

	reward := c.calc.ForClear(clearedCount, c.combo, c.level)

	step := Step{
		ClearedIDs:   cleared,
		TilesAfter:   cloneTiles(c.tiles),
		Spawned:      settled.Spawned,
		CascadeLevel: c.level,
		ScoreDelta:   reward.Points,
		Reward:       reward,
	}

	next := c.detect()
	if len(next) > 0 && c.level < MaxCascadeLevel {
		c.level++
		c.pending = next
	} else {
		c.pending = nil
		c.done = true
	}

	return step, true
}

// ResolveAll drains the cascade and returns every step in order.
func (c *Cascade) ResolveAll() []Step {
	var steps []Step
	for {
		step, ok := c.Next()
		if !ok {
			return steps
		}
		steps = append(steps, step)
	}
}

// Tiles returns the current settled tile set.
func (c *Cascade) Tiles() []Tile {
	return cloneTiles(c.tiles)
}

// Level returns the cascade level reached so far.
func (c *Cascade) Level() int {
	return c.level
}

// Done reports whether the cascade has terminated.
func (c *Cascade) Done() bool {
	return c.done
}

// detect finds the ids to clear next using the cascade's detection mode.
// Results are sorted so step contents are deterministic for a given seed.
func (c *Cascade) detect() []int {
	var ids []int
	switch c.mode {
	case DetectLines:
		clearable := FindClearableTiles(c.tiles, c.gridSize)
		for id := range clearable {
			ids = append(ids, id)
		}
	default:
		for _, m := range FindAllMatches(c.tiles, c.gridSize) {
			ids = append(ids, m.IDs...)
		}
	}
	sort.Ints(ids)
	return ids
}

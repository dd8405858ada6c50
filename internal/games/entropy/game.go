// Package entropy provides the Entropy Reduction match-3 game for the
// arcade: swap adjacent tiles to form groups, clear them, and ride the
// gravity chains. Campaign mode works through the level catalog; zen
// mode is tap-to-clear on a depleting board.
package entropy

import (
	"math/rand"
	"sort"

	platformcore "github.com/vovakirdan/entropy-reduction/internal/core"
	"github.com/vovakirdan/entropy-reduction/internal/games/entropy/core"
	"github.com/vovakirdan/entropy-reduction/internal/games/entropy/levels"
	"github.com/vovakirdan/entropy-reduction/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeCampaign Mode = "campaign"
	ModeZen      Mode = "zen"
)

// Tuning holds the gameplay parameters normally sourced from the config
// file. The platform applies it before Reset.
type Tuning struct {
	GridSize      int
	Rewards       core.RewardConfig
	ComboWindowMs int // Rolling combo window
	StepMs        int // Duration of each resolution phase
}

// DefaultTuning returns the standard parameters.
func DefaultTuning() Tuning {
	return Tuning{
		GridSize:      core.DefaultGridSize,
		Rewards:       core.DefaultRewardConfig(),
		ComboWindowMs: 3000,
		StepMs:        150,
	}
}

// Package-level variables for configuration
var (
	selectedStartLevel int
	levelsRoot         string
	tuning             = DefaultTuning()
)

// SetStartLevel sets the starting level (1-indexed). 0 means start from
// beginning.
func SetStartLevel(level int) {
	selectedStartLevel = level
}

// GetStartLevel returns the currently selected start level.
func GetStartLevel() int {
	return selectedStartLevel
}

// SetLevelsRoot points the campaign at a custom level directory.
// Empty means the embedded catalog.
func SetLevelsRoot(root string) {
	levelsRoot = root
}

// SetTuning replaces the gameplay parameters.
func SetTuning(t Tuning) {
	if t.GridSize <= 0 {
		t.GridSize = core.DefaultGridSize
	}
	if t.ComboWindowMs <= 0 {
		t.ComboWindowMs = 3000
	}
	if t.StepMs <= 0 {
		t.StepMs = 150
	}
	tuning = t
}

// Game implements the Entropy Reduction game.
type Game struct {
	mode Mode
	rng  *rand.Rand
	gen  *core.Sequence
	tick uint64

	gridSize int
	tickRate int
	tiles    []core.Tile
	phase    core.Phase

	calc  *core.Calculator
	combo core.ComboTracker

	// Campaign resolution state
	cascade *core.Cascade
	// Zen resolution state
	pendingClear []int
	zenChain     int

	phaseTicks int // Ticks left in the current phase
	stepTicks  int // Phase duration
	revert     bool

	chainSteps int // Steps in the current resolution
	comboCount int // Combo at the initiating action

	// Cursor and selection
	cursor   core.Coord
	selected *core.Coord
	hintA    *core.Coord
	hintB    *core.Coord
	hintTick int

	// Progression
	levelIndex int
	allLevels  []levels.Level
	level      *levels.Level
	stats      levels.GameStats
	lastStars  int
	startTick  uint64 // Tick the current level began

	// Most recent level completion, for persistence by the platform
	lastClearedID    string
	lastClearedScore int

	score        int
	message      string
	messageTicks int

	screenW int
	screenH int

	gameOver        bool
	won             bool
	levelCleared    bool
	paused          bool
	tooSmall        bool
	levelClearTicks int
}

// New creates a new campaign mode game.
func New() *Game {
	return &Game{mode: ModeCampaign}
}

// NewZen creates a new zen mode game.
func NewZen() *Game {
	return &Game{mode: ModeZen}
}

func init() {
	registry.Register("entropy", func() registry.Game {
		return New()
	})
	registry.Register("entropy_zen", func() registry.Game {
		return NewZen()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeZen {
		return "entropy_zen"
	}
	return "entropy"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeZen {
		return "Entropy Reduction (Zen)"
	}
	return "Entropy Reduction"
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.gen = core.NewSequence(0)
	g.tick = 0
	g.score = 0
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.tickRate = cfg.TickRate
	if g.tickRate <= 0 {
		g.tickRate = 60
	}

	g.gridSize = tuning.GridSize
	g.calc = core.NewCalculator(tuning.Rewards, g.rng)
	g.combo = core.ComboTracker{WindowTicks: uint64(tuning.ComboWindowMs * g.tickRate / 1000)}
	g.stepTicks = tuning.StepMs * g.tickRate / 1000
	if g.stepTicks < 1 {
		g.stepTicks = 1
	}

	g.phase = core.PhaseIdle
	g.cascade = nil
	g.pendingClear = nil
	g.zenChain = 0
	g.chainSteps = 0
	g.cursor = core.C(g.gridSize/2, g.gridSize/2)
	g.selected = nil
	g.hintA, g.hintB = nil, nil
	g.message = ""
	g.messageTicks = 0
	g.gameOver = false
	g.won = false
	g.levelCleared = false
	g.paused = false
	g.levelClearTicks = 0
	g.lastStars = 0
	g.startTick = 0
	g.stats = levels.GameStats{}
	g.lastClearedID = ""
	g.lastClearedScore = 0

	g.loadCatalog()
	if g.mode == ModeCampaign && selectedStartLevel > 0 && selectedStartLevel <= len(g.allLevels) {
		g.levelIndex = selectedStartLevel - 1
		selectedStartLevel = 0
	} else {
		g.levelIndex = 0
	}
	g.loadLevel()
	g.cursor = core.C(g.gridSize/2, g.gridSize/2)

	g.newBoard()
	g.checkScreenSize()
}

// CampaignLevels returns the campaign catalog under the configured
// levels root, for level selection screens.
func CampaignLevels() ([]levels.Level, error) {
	all, err := levels.Catalog(levelsRoot)
	if err != nil {
		return nil, err
	}
	campaign := make([]levels.Level, 0, len(all))
	for _, lvl := range all {
		if lvl.Metadata["mode"] != "zen" {
			campaign = append(campaign, lvl)
		}
	}
	return campaign, nil
}

// loadCatalog loads the level catalog for this mode. Campaign plays
// everything not marked zen; zen plays only zen-marked levels and falls
// back to free play when there are none.
func (g *Game) loadCatalog() {
	all, err := levels.Catalog(levelsRoot)
	if err != nil {
		g.allLevels = nil
		return
	}

	g.allLevels = g.allLevels[:0]
	for _, lvl := range all {
		isZen := lvl.Metadata["mode"] == "zen"
		if (g.mode == ModeZen) == isZen {
			g.allLevels = append(g.allLevels, lvl)
		}
	}
}

// loadLevel sets the active level, if any. Outside the catalog the game
// runs as free play with no goal.
func (g *Game) loadLevel() {
	if g.levelIndex < len(g.allLevels) {
		lvl := g.allLevels[g.levelIndex]
		g.level = &lvl
		if lvl.GridSize > 0 {
			g.gridSize = lvl.GridSize
		}
		return
	}
	g.level = nil
	g.gridSize = tuning.GridSize
}

// newBoard fills the board for the current mode and level.
func (g *Game) newBoard() {
	if g.mode == ModeZen {
		g.spawnWave()
		return
	}

	res := core.NewBoard(g.gridSize, g.rng, g.gen)
	g.tiles = res.Tiles
	if !res.OK {
		// Pathological board; surface it instead of looping
		g.setMessage("Board is stuck")
		g.gameOver = true
	}
}

// spawnWave fills the zen board with random tiles. A wave without a
// single clearable run is useless, so retry a few times.
func (g *Game) spawnWave() {
	for attempt := 0; attempt < core.DefaultShuffleRetries; attempt++ {
		res := core.ApplyGravity(nil, g.gridSize, g.rng, g.gen)
		g.tiles = res.Tiles
		if len(core.FindClearableTiles(g.tiles, g.gridSize)) > 0 {
			return
		}
	}
}

// checkScreenSize checks if the screen is large enough.
func (g *Game) checkScreenSize() {
	minW := g.gridSize*cellW + sidePanelW + 4
	minH := g.gridSize*cellH + 6
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Step advances the game by one tick.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	g.tick++
	var events []platformcore.Event

	if g.tooSmall {
		return g.result(events)
	}

	if in.Has(platformcore.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return g.result(events)
	}

	if g.messageTicks > 0 {
		g.messageTicks--
		if g.messageTicks == 0 {
			g.message = ""
		}
	}
	if g.hintTick > 0 {
		g.hintTick--
		if g.hintTick == 0 {
			g.hintA, g.hintB = nil, nil
		}
	}

	if g.levelCleared {
		g.levelClearTicks++
		if g.levelClearTicks >= 2*g.tickRate {
			g.advanceLevel()
		}
		return g.result(events)
	}

	if g.gameOver || g.won {
		return g.result(events)
	}

	g.combo.Expire(g.tick)
	g.stats.MaxCombo = g.combo.Max()
	g.stats.TimeElapsed = float64(g.tick-g.startTick) / float64(g.tickRate)

	if g.phase.AcceptsInput() {
		events = g.checkGoal(events)
		if !g.levelCleared && !g.gameOver {
			events = g.handleInput(in, events)
		}
	} else {
		events = g.stepResolution(events)
	}

	return g.result(events)
}

func (g *Game) result(events []platformcore.Event) platformcore.StepResult {
	return platformcore.StepResult{State: g.State(), Events: events}
}

// handleInput processes player actions while the board is idle.
func (g *Game) handleInput(in platformcore.InputFrame, events []platformcore.Event) []platformcore.Event {
	switch {
	case in.Has(platformcore.ActionUp):
		g.cursor.Y = platformcore.Clamp(g.cursor.Y-1, 0, g.gridSize-1)
	case in.Has(platformcore.ActionDown):
		g.cursor.Y = platformcore.Clamp(g.cursor.Y+1, 0, g.gridSize-1)
	case in.Has(platformcore.ActionLeft):
		g.cursor.X = platformcore.Clamp(g.cursor.X-1, 0, g.gridSize-1)
	case in.Has(platformcore.ActionRight):
		g.cursor.X = platformcore.Clamp(g.cursor.X+1, 0, g.gridSize-1)
	}

	if in.Has(platformcore.ActionHint) {
		g.showHint()
	}

	if in.Has(platformcore.ActionSelect) {
		if g.mode == ModeZen {
			events = g.zenTap(events)
		} else {
			events = g.campaignSelect(events)
		}
	}

	return events
}

// showHint highlights one valid move for a short while.
func (g *Game) showHint() {
	if g.mode == ModeZen {
		return
	}
	h := core.Hint(g.tiles, g.gridSize)
	if h == nil {
		return
	}
	a, b := core.C(h.A.X, h.A.Y), core.C(h.B.X, h.B.Y)
	g.hintA, g.hintB = &a, &b
	g.hintTick = 2 * g.tickRate
}

// campaignSelect handles tile selection and swap attempts.
func (g *Game) campaignSelect(events []platformcore.Event) []platformcore.Event {
	if g.selected == nil {
		c := g.cursor
		g.selected = &c
		return events
	}
	if *g.selected == g.cursor {
		g.selected = nil
		return events
	}

	dx := g.cursor.X - g.selected.X
	dy := g.cursor.Y - g.selected.Y
	if dx*dx+dy*dy != 1 {
		// Not adjacent; move the selection instead
		c := g.cursor
		g.selected = &c
		return events
	}

	events = g.trySwap(*g.selected, g.cursor, events)
	g.selected = nil
	return events
}

// trySwap attempts the swap and starts a resolution on success. A swap
// that yields no match reverts and breaks the combo run.
func (g *Game) trySwap(a, b core.Coord, events []platformcore.Event) []platformcore.Event {
	idA, idB := g.tileIDAt(a), g.tileIDAt(b)
	if idA < 0 || idB < 0 {
		return events
	}

	swapped := core.SwapTiles(g.tiles, idA, idB)
	var ids []int
	if m := core.FindMatchingGroup(swapped, idA, g.gridSize); m != nil {
		ids = append(ids, m.IDs...)
	}
	if m := core.FindMatchingGroup(swapped, idB, g.gridSize); m != nil {
		ids = appendUnique(ids, m.IDs)
	}

	if len(ids) == 0 {
		g.combo.Fail()
		g.setMessage("No match")
		g.revert = true
		g.enterPhase(core.PhaseSwapping)
		return events
	}

	g.tiles = swapped
	g.comboCount = g.combo.Record(g.tick)
	g.chainSteps = 0

	cascade, err := core.NewCascade(ids, g.tiles, g.gridSize, core.DetectGroups, g.rng, g.gen, g.calc, g.comboCount)
	if err != nil {
		// Board corruption is a bug; stop the session loudly
		g.setMessage("Board error")
		g.gameOver = true
		return events
	}
	g.cascade = cascade
	g.revert = false
	g.enterPhase(core.PhaseSwapping)
	return events
}

// zenTap clears the line run under the cursor, if any.
func (g *Game) zenTap(events []platformcore.Event) []platformcore.Event {
	id := g.tileIDAt(g.cursor)
	if id < 0 {
		return events
	}

	ids := g.lineRunThrough(id)
	if len(ids) == 0 {
		g.combo.Fail()
		g.setMessage("No run")
		return events
	}

	g.comboCount = g.combo.Record(g.tick)
	g.chainSteps = 0
	g.zenChain = 0
	g.pendingClear = ids
	g.enterPhase(core.PhaseClearing)
	return g.applyZenClear(events)
}

// lineRunThrough returns the ids of the maximal horizontal and vertical
// same-type runs of 3+ through the tile.
func (g *Game) lineRunThrough(id int) []int {
	var origin *core.Tile
	lookup := make(map[core.Coord]*core.Tile, len(g.tiles))
	for i := range g.tiles {
		lookup[core.C(g.tiles[i].X, g.tiles[i].Y)] = &g.tiles[i]
		if g.tiles[i].ID == id {
			origin = &g.tiles[i]
		}
	}
	if origin == nil {
		return nil
	}

	var ids []int
	for _, axis := range [2]core.Coord{{X: 1}, {Y: 1}} {
		run := []int{origin.ID}
		for dir := -1; dir <= 1; dir += 2 {
			for step := 1; ; step++ {
				t := lookup[core.C(origin.X+axis.X*dir*step, origin.Y+axis.Y*dir*step)]
				if t == nil || t.Type != origin.Type {
					break
				}
				run = append(run, t.ID)
			}
		}
		if len(run) >= core.MinMatchSize {
			ids = appendUnique(ids, run)
		}
	}
	return ids
}

// stepResolution advances the phase machine while a resolution runs.
func (g *Game) stepResolution(events []platformcore.Event) []platformcore.Event {
	g.phaseTicks--
	if g.phaseTicks > 0 {
		return events
	}

	switch g.phase {
	case core.PhaseSwapping:
		if g.revert || g.cascade == nil {
			g.enterPhase(core.PhaseIdle)
			return events
		}
		return g.startClearing(events)

	case core.PhaseClearing:
		if g.mode == ModeZen {
			g.tiles = core.SettleColumns(g.tiles, g.gridSize)
		}
		g.enterPhase(core.PhaseFalling)
		return events

	case core.PhaseFalling:
		g.enterPhase(core.PhaseCascadeCheck)
		return events

	case core.PhaseCascadeCheck:
		if g.mode == ModeZen {
			return g.zenCascadeCheck(events)
		}
		if g.cascade != nil && !g.cascade.Done() {
			return g.startClearing(events)
		}
		return g.endResolution(events)
	}

	g.enterPhase(core.PhaseIdle)
	return events
}

// startClearing runs the next cascade step and applies it.
func (g *Game) startClearing(events []platformcore.Event) []platformcore.Event {
	step, ok := g.cascade.Next()
	if !ok {
		return g.endResolution(events)
	}

	g.tiles = step.TilesAfter
	g.chainSteps++
	events = g.applyStepOutcome(len(step.ClearedIDs), step.CascadeLevel, step.Reward, events)
	g.enterPhase(core.PhaseClearing)
	return events
}

// applyZenClear removes the pending run and scores it.
func (g *Game) applyZenClear(events []platformcore.Event) []platformcore.Event {
	cleared := len(g.pendingClear)
	g.tiles = core.RemoveTiles(g.tiles, g.pendingClear)
	g.pendingClear = nil
	g.chainSteps++

	reward := g.calc.ForClear(cleared, g.comboCount, g.zenChain)
	return g.applyStepOutcome(cleared, g.zenChain, reward, events)
}

// zenCascadeCheck looks for runs formed by settling and chains them.
func (g *Game) zenCascadeCheck(events []platformcore.Event) []platformcore.Event {
	clearable := core.FindClearableTiles(g.tiles, g.gridSize)
	if len(clearable) > 0 && g.zenChain < core.MaxCascadeLevel {
		g.zenChain++
		g.pendingClear = sortedIDs(clearable)
		g.enterPhase(core.PhaseClearing)
		return g.applyZenClear(events)
	}
	return g.endResolution(events)
}

// applyStepOutcome folds one clear step into score, stats and events.
func (g *Game) applyStepOutcome(cleared, chainLevel int, reward core.Reward, events []platformcore.Event) []platformcore.Event {
	g.score += reward.Points
	g.stats.Score += reward.Points
	g.stats.TilesCleared += cleared
	if g.chainSteps > g.stats.MaxChain {
		g.stats.MaxChain = g.chainSteps
	}

	events = append(events, platformcore.EventClear)
	if cleared >= 5 {
		events = append(events, platformcore.EventBigClear)
	}
	if reward.IsCritical {
		events = append(events, platformcore.EventCritical)
	}
	if chainLevel > 0 {
		events = append(events, platformcore.EventChain)
	}
	if reward.Message != "" {
		g.setMessage(reward.Message)
	}
	return events
}

// endResolution returns the board to idle and runs the end-of-turn
// checks: goal completion, then deadlock.
func (g *Game) endResolution(events []platformcore.Event) []platformcore.Event {
	g.cascade = nil
	g.enterPhase(core.PhaseIdle)

	events = g.checkGoal(events)
	if g.levelCleared || g.gameOver {
		return events
	}

	if g.mode == ModeZen {
		return g.zenStuckCheck(events)
	}
	return g.deadlockCheck(events)
}

// checkGoal judges the active level goal against the current stats.
// A timed clear that runs out of time fails the level.
func (g *Game) checkGoal(events []platformcore.Event) []platformcore.Event {
	g.stats.Entropy = core.Entropy(g.tiles, g.gridSize)
	g.stats.MaxCombo = g.combo.Max()
	g.stats.TimeElapsed = float64(g.tick-g.startTick) / float64(g.tickRate)

	if g.level == nil {
		return events
	}

	if levels.IsGoalComplete(g.level.Goal, g.stats) {
		g.levelCleared = true
		g.levelClearTicks = 0
		g.lastStars = levels.StarsEarned(g.level.Stars, g.stats)
		g.lastClearedID = g.level.ID
		g.lastClearedScore = g.stats.Score
		return append(events, platformcore.EventLevelCleared)
	}

	if g.level.Goal.Type == levels.GoalClearTimed && g.stats.TimeElapsed > g.level.Goal.Seconds {
		g.setMessage("Time up")
		g.gameOver = true
	}
	return events
}

// deadlockCheck reshuffles a stuck campaign board.
func (g *Game) deadlockCheck(events []platformcore.Event) []platformcore.Event {
	if !core.HasNoMoves(g.tiles, g.gridSize) {
		return events
	}

	events = append(events, platformcore.EventNoMoves)
	res := core.ShuffleTiles(g.tiles, g.gridSize, g.rng)
	g.tiles = res.Tiles
	if !res.OK {
		g.setMessage("No moves left")
		g.gameOver = true
		return events
	}
	g.setMessage("Shuffled")
	return append(events, platformcore.EventShuffled)
}

// zenStuckCheck handles a zen board with no remaining runs: free play
// gets a fresh wave, a level run fails.
func (g *Game) zenStuckCheck(events []platformcore.Event) []platformcore.Event {
	if len(core.FindClearableTiles(g.tiles, g.gridSize)) > 0 {
		return events
	}

	events = append(events, platformcore.EventNoMoves)
	if g.level != nil {
		g.setMessage("No runs left")
		g.gameOver = true
		return events
	}

	g.spawnWave()
	g.setMessage("New wave")
	return append(events, platformcore.EventShuffled)
}

// advanceLevel moves to the next level with a fresh board.
func (g *Game) advanceLevel() {
	g.levelCleared = false
	g.levelClearTicks = 0

	if g.levelIndex >= len(g.allLevels)-1 {
		g.won = true
		return
	}

	g.levelIndex++
	g.loadLevel()
	g.stats = levels.GameStats{}
	g.combo.Reset()
	g.startTick = g.tick
	g.cursor = core.C(g.gridSize/2, g.gridSize/2)
	g.selected = nil
	g.newBoard()
	g.checkScreenSize()
}

// enterPhase transitions the phase machine, resetting the phase timer.
func (g *Game) enterPhase(next core.Phase) {
	if g.phase != next && !g.phase.CanTransition(next) {
		// Illegal transitions indicate a shell bug; recover via idle
		g.phase = core.PhaseIdle
		return
	}
	g.phase = next
	g.phaseTicks = g.stepTicks
}

// tileIDAt returns the id of the tile at c, or -1.
func (g *Game) tileIDAt(c core.Coord) int {
	for _, t := range g.tiles {
		if t.X == c.X && t.Y == c.Y {
			return t.ID
		}
	}
	return -1
}

func (g *Game) setMessage(msg string) {
	g.message = msg
	g.messageTicks = 2 * g.tickRate
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	return platformcore.GameState{
		Score:    g.score,
		GameOver: g.gameOver || g.won,
		Paused:   g.paused || g.tooSmall || g.levelCleared,
	}
}

// LastLevelResult reports the most recently cleared level, for
// persistence by the platform layer. ok is false before any level has
// been cleared this run.
func (g *Game) LastLevelResult() (levelID string, stars, score int, ok bool) {
	if g.lastClearedID == "" {
		return "", 0, 0, false
	}
	return g.lastClearedID, g.lastStars, g.lastClearedScore, true
}

// appendUnique appends the ids not already present.
func appendUnique(dst []int, src []int) []int {
	seen := make(map[int]struct{}, len(dst))
	for _, id := range dst {
		seen[id] = struct{}{}
	}
	for _, id := range src {
		if _, dup := seen[id]; !dup {
			dst = append(dst, id)
			seen[id] = struct{}{}
		}
	}
	return dst
}

// sortedIDs flattens a clearable set into a deterministic id list.
func sortedIDs(set map[int]struct{}) []int {
	ids := make([]int, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

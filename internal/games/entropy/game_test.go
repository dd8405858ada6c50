package entropy

import (
	"testing"

	platformcore "github.com/vovakirdan/entropy-reduction/internal/core"
	"github.com/vovakirdan/entropy-reduction/internal/games/entropy/core"
	"github.com/vovakirdan/entropy-reduction/internal/games/entropy/levels"
	"github.com/vovakirdan/entropy-reduction/internal/registry"
)

func testConfig(seed int64) platformcore.RuntimeConfig {
	return platformcore.RuntimeConfig{
		Seed:     seed,
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

func TestDeterminism(t *testing.T) {
	// Two games with the same seed and input script must stay in
	// lockstep, including through swaps, cascades and shuffles
	g1 := New()
	g1.Reset(testConfig(12345))
	g2 := New()
	g2.Reset(testConfig(12345))

	input := platformcore.NewInputFrame()
	for i := 0; i < 600; i++ {
		input.Clear()
		switch {
		case i%37 == 5:
			input.Set(platformcore.ActionRight)
		case i%37 == 11:
			input.Set(platformcore.ActionDown)
		case i%37 == 17:
			input.Set(platformcore.ActionSelect)
		case i%37 == 23:
			input.Set(platformcore.ActionLeft)
		case i%37 == 29:
			input.Set(platformcore.ActionSelect)
		}

		g1.Step(input)
		g2.Step(input)
	}

	snap1, snap2 := g1.Snapshot(), g2.Snapshot()
	if snap1 != snap2 {
		t.Errorf("snapshots diverged:\n%+v\n%+v", snap1, snap2)
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	g1 := New()
	g1.Reset(testConfig(1))
	g2 := New()
	g2.Reset(testConfig(2))

	if g1.Snapshot().BoardHash == g2.Snapshot().BoardHash {
		t.Error("different seeds produced identical boards")
	}
}

func TestResetRestoresCleanState(t *testing.T) {
	g := New()
	g.Reset(testConfig(7))

	input := platformcore.NewInputFrame()
	for i := 0; i < 50; i++ {
		input.Clear()
		if i%3 == 0 {
			input.Set(platformcore.ActionRight)
		}
		g.Step(input)
	}

	g.Reset(testConfig(7))
	snap := g.Snapshot()
	if snap.Tick != 0 || snap.Score != 0 || snap.Phase != "Idle" {
		t.Errorf("reset left state behind: %+v", snap)
	}
	if snap.State != StatePlaying {
		t.Errorf("state after reset = %q", snap.State)
	}
}

func TestFreshBoardHasNoMatchesAndAMove(t *testing.T) {
	for seed := int64(0); seed < 5; seed++ {
		g := New()
		g.Reset(testConfig(seed))

		if matches := core.FindAllMatches(g.tiles, g.gridSize); len(matches) != 0 {
			t.Errorf("seed %d: fresh board has %d matches", seed, len(matches))
		}
		if moves := core.FindValidMoves(g.tiles, g.gridSize); len(moves) == 0 {
			t.Errorf("seed %d: fresh board has no valid move", seed)
		}
	}
}

func TestCursorMovementAndClamping(t *testing.T) {
	g := New()
	g.Reset(testConfig(3))

	input := platformcore.NewInputFrame()
	for i := 0; i < g.gridSize*2; i++ {
		input.Clear()
		input.Set(platformcore.ActionRight)
		g.Step(input)
	}
	if g.cursor.X != g.gridSize-1 {
		t.Errorf("cursor x = %d, expected clamp at %d", g.cursor.X, g.gridSize-1)
	}

	for i := 0; i < g.gridSize*2; i++ {
		input.Clear()
		input.Set(platformcore.ActionUp)
		g.Step(input)
	}
	if g.cursor.Y != 0 {
		t.Errorf("cursor y = %d, expected clamp at 0", g.cursor.Y)
	}
}

func TestSelectionToggle(t *testing.T) {
	g := New()
	g.Reset(testConfig(4))

	input := platformcore.NewInputFrame()
	input.Set(platformcore.ActionSelect)
	g.Step(input)
	if g.selected == nil || *g.selected != g.cursor {
		t.Fatal("first select should mark the cursor cell")
	}

	g.Step(input)
	if g.selected != nil {
		t.Error("selecting the same cell again should deselect")
	}
}

func TestInputRejectedDuringResolution(t *testing.T) {
	g := New()
	g.Reset(testConfig(5))

	g.phase = core.PhaseClearing
	g.phaseTicks = 10
	before := g.cursor

	input := platformcore.NewInputFrame()
	input.Set(platformcore.ActionRight)
	g.Step(input)

	if g.cursor != before {
		t.Error("cursor moved while the board was resolving")
	}
}

func TestPauseToggle(t *testing.T) {
	g := New()
	g.Reset(testConfig(6))

	input := platformcore.NewInputFrame()
	input.Set(platformcore.ActionPause)
	g.Step(input)
	if !g.State().Paused {
		t.Fatal("pause action should pause")
	}

	g.Step(input)
	if g.State().Paused {
		t.Error("second pause action should resume")
	}
}

func TestSwapResolvesThroughPhases(t *testing.T) {
	g := New()
	g.Reset(testConfig(8))

	// Drive a real swap from the engine's own hint
	h := core.Hint(g.tiles, g.gridSize)
	if h == nil {
		t.Fatal("fresh board must have a valid move")
	}

	scoreBefore := g.score
	events := g.forceSwap(t, core.C(h.A.X, h.A.Y), core.C(h.B.X, h.B.Y))

	if !containsEvent(events, platformcore.EventClear) {
		t.Error("expected a clear event during resolution")
	}
	if g.score <= scoreBefore {
		t.Errorf("score did not increase: %d -> %d", scoreBefore, g.score)
	}
	if g.phase != core.PhaseIdle {
		t.Errorf("phase after resolution = %s, expected Idle", g.phase)
	}
	if err := core.ValidateTiles(g.tiles, g.gridSize); err != nil {
		t.Errorf("resolution left invalid board: %v", err)
	}
	if g.stats.TilesCleared < 3 {
		t.Errorf("tiles cleared = %d, expected 3+", g.stats.TilesCleared)
	}
}

// forceSwap performs the swap directly and drives the phase machine to
// completion, collecting every emitted event.
func (g *Game) forceSwap(t *testing.T, a, b core.Coord) []platformcore.Event {
	t.Helper()

	var events []platformcore.Event
	events = append(events, g.trySwap(a, b, nil)...)

	idle := platformcore.NewInputFrame()
	for i := 0; i < 10000 && g.phase != core.PhaseIdle; i++ {
		res := g.Step(idle)
		events = append(events, res.Events...)
	}
	if g.phase != core.PhaseIdle {
		t.Fatal("resolution did not terminate")
	}
	return events
}

func TestFailedSwapReverts(t *testing.T) {
	g := New()
	g.Reset(testConfig(9))

	// Find an adjacent pair whose swap matches nothing
	var a, b core.Coord
	found := false
	for _, t1 := range g.tiles {
		for _, d := range [2]core.Coord{{X: 1}, {Y: 1}} {
			c := core.C(t1.X+d.X, t1.Y+d.Y)
			id2 := g.tileIDAt(c)
			if id2 < 0 {
				continue
			}
			if !swapMatches(g.tiles, t1.ID, id2, g.gridSize) {
				a, b = core.C(t1.X, t1.Y), c
				found = true
			}
		}
		if found {
			break
		}
	}
	if !found {
		t.Skip("board has no failing swap")
	}

	hashBefore := g.boardHash()
	g.forceSwap(t, a, b)

	if g.boardHash() != hashBefore {
		t.Error("failed swap changed the board")
	}
	if g.combo.Count() != 0 {
		t.Error("failed swap should break the combo run")
	}
}

func swapMatches(tiles []core.Tile, idA, idB, gridSize int) bool {
	swapped := core.SwapTiles(tiles, idA, idB)
	return core.FindMatchingGroup(swapped, idA, gridSize) != nil ||
		core.FindMatchingGroup(swapped, idB, gridSize) != nil
}

func TestGoalCompletionPausesForLevelClear(t *testing.T) {
	g := New()
	g.Reset(testConfig(10))
	g.level = &levels.Level{
		ID:   "test",
		Goal: levels.Goal{Type: levels.GoalReachScore, Amount: 300},
	}

	g.stats.Score = 300
	res := g.Step(platformcore.NewInputFrame())

	if !g.levelCleared {
		t.Fatal("goal met but level not cleared")
	}
	if !containsEvent(res.Events, platformcore.EventLevelCleared) {
		t.Error("expected a level-cleared event")
	}
	if !g.State().Paused {
		t.Error("level clear should pause the game state")
	}
	if g.lastStars < 1 {
		t.Errorf("stars = %d, expected at least 1", g.lastStars)
	}
}

func TestTimedGoalFailure(t *testing.T) {
	g := New()
	g.Reset(testConfig(11))
	g.level = &levels.Level{
		ID:   "timed",
		Goal: levels.Goal{Type: levels.GoalClearTimed, Amount: 999, Seconds: 0.01},
	}

	input := platformcore.NewInputFrame()
	for i := 0; i < 10 && !g.gameOver; i++ {
		g.Step(input)
	}
	if !g.gameOver {
		t.Error("running out the clock should end the game")
	}
}

func TestZenTapClearsRun(t *testing.T) {
	g := NewZen()
	g.Reset(testConfig(12))

	// Plant a known board: one horizontal run of three drops on the
	// bottom row plus scattered singles
	g.gridSize = 4
	g.tiles = []core.Tile{
		{ID: 1, X: 0, Y: 3, Type: core.TileDrop},
		{ID: 2, X: 1, Y: 3, Type: core.TileDrop},
		{ID: 3, X: 2, Y: 3, Type: core.TileDrop},
		{ID: 4, X: 3, Y: 3, Type: core.TileLeaf},
		{ID: 5, X: 0, Y: 2, Type: core.TileEmber},
	}
	g.cursor = core.C(1, 3)

	input := platformcore.NewInputFrame()
	input.Set(platformcore.ActionSelect)
	g.Step(input)

	idle := platformcore.NewInputFrame()
	for i := 0; i < 1000 && g.phase != core.PhaseIdle; i++ {
		g.Step(idle)
	}

	for _, id := range []int{1, 2, 3} {
		for _, tile := range g.tiles {
			if tile.ID == id {
				t.Errorf("tile %d should have been cleared", id)
			}
		}
	}
	if g.stats.TilesCleared != 3 {
		t.Errorf("tiles cleared = %d, expected 3", g.stats.TilesCleared)
	}
	// No refill in zen: the ember settles onto the bottom row
	if got := g.tileIDAt(core.C(0, 3)); got != 5 {
		t.Errorf("expected the ember to settle to (0,3), found id %d", got)
	}
}

func TestZenTapOutsideRunBreaksCombo(t *testing.T) {
	g := NewZen()
	g.Reset(testConfig(13))

	g.gridSize = 4
	// Goal strict enough that the sparse test board does not clear it
	g.level = &levels.Level{
		ID:   "strict",
		Goal: levels.Goal{Type: levels.GoalEntropyBelow, Threshold: 0.05},
	}
	g.tiles = []core.Tile{
		{ID: 1, X: 0, Y: 3, Type: core.TileDrop},
		{ID: 2, X: 1, Y: 3, Type: core.TileLeaf},
		{ID: 3, X: 2, Y: 3, Type: core.TileDrop},
	}
	g.cursor = core.C(0, 3)
	g.combo.Record(1)

	input := platformcore.NewInputFrame()
	input.Set(platformcore.ActionSelect)
	g.Step(input)

	if len(g.tiles) != 3 {
		t.Error("tap outside a run should clear nothing")
	}
	if g.combo.Count() != 0 {
		t.Error("tap outside a run should break the combo")
	}
	if g.phase != core.PhaseIdle {
		t.Errorf("phase = %s, expected Idle", g.phase)
	}
}

func TestRegistryRegistration(t *testing.T) {
	for _, id := range []string{"entropy", "entropy_zen"} {
		if !registry.Exists(id) {
			t.Errorf("game %q not registered", id)
		}
	}

	g, err := registry.Create("entropy")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.ID() != "entropy" {
		t.Errorf("created game id = %q", g.ID())
	}
}

func containsEvent(events []platformcore.Event, e platformcore.Event) bool {
	for _, ev := range events {
		if ev == e {
			return true
		}
	}
	return false
}

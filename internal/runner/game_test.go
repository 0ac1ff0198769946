package runner

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/diag"
)

type memStore struct {
	high    int
	readErr error
	sets    []int
}

func (m *memStore) HighScore() (int, error) {
	return m.high, m.readErr
}

func (m *memStore) SetHighScore(score int) error {
	m.sets = append(m.sets, score)
	m.high = score
	return nil
}

type panicSink struct{}

func (panicSink) Log(diag.Level, string, string) { panic("sink down") }

// quietConfig disables spawns and gaps so runs are driven only by the test.
func quietConfig() config.RunnerConfig {
	cfg := config.DefaultRunnerConfig()
	cfg.Spawner.IntervalMS = 1 << 30
	cfg.Gaps.Chance = 0
	return cfg
}

func newTestGame(t *testing.T, cfg config.RunnerConfig, opts ...Option) *Game {
	t.Helper()
	g := New(append([]Option{WithConfig(cfg)}, opts...)...)
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 42})
	return g
}

func step(g *Game, actions ...core.Action) core.StepResult {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return g.Step(in)
}

func stepN(g *Game, n int) {
	for i := 0; i < n; i++ {
		step(g)
	}
}

// placeOnPlayer moves an entity so its hitbox is centered on the player's.
func placeOnPlayer(g *Game, e *Entity) {
	fp := g.player.Body.Footprint()
	center := fp.Min.Add(fp.Max).Mul(0.5)
	e.Body.Pos = center.Sub(e.Body.Size.Mul(0.5))
}

func TestGameStartsRunning(t *testing.T) {
	g := newTestGame(t, quietConfig())

	st := g.State()
	if g.Mode() != ModeRunning || st.Score != 0 || st.Health != 100 || st.Over || st.Paused {
		t.Errorf("unexpected initial state %+v mode=%s", st, g.Mode())
	}
	if g.Speed() != 5 {
		t.Errorf("speed = %v, want 5", g.Speed())
	}
}

func TestGameScoreTicksPerFrame(t *testing.T) {
	g := newTestGame(t, quietConfig())
	stepN(g, 10)

	if g.State().Score != 10 {
		t.Errorf("score = %d, want 10", g.State().Score)
	}

	stepN(g, 50)
	if !g.Player().Grounded() {
		t.Errorf("player never landed on the initial ground")
	}
}

// Scenario A: the speed rises exactly once when the score crosses 500.
func TestGameSpeedStepsAtThreshold(t *testing.T) {
	g := newTestGame(t, quietConfig())

	changes := 0
	last := g.Speed()
	for g.State().Score < 999 {
		step(g)
		if g.Speed() != last {
			changes++
			if g.State().Score != 500 {
				t.Errorf("speed changed at score %d", g.State().Score)
			}
			last = g.Speed()
		}
	}

	if changes != 1 {
		t.Errorf("speed changed %d times, want 1", changes)
	}
	if math.Abs(g.Speed()-5.1) > 1e-9 {
		t.Errorf("speed = %v, want 5.1", g.Speed())
	}
}

// Scenario B: four hits of 25 take health from 100 to 0 and end the run.
func TestGameObstacleHitsEndRun(t *testing.T) {
	g := newTestGame(t, quietConfig())

	want := []int{75, 50, 25, 0}
	for i, h := range want {
		e := g.spawner.spawnKind(KindObstacle, 0)
		g.handleEvent(Event{Kind: EventObstacle, Entity: e})
		if g.State().Health != h {
			t.Errorf("hit %d: health = %d, want %d", i+1, g.State().Health, h)
		}
		if !e.Consumed() {
			t.Errorf("hit %d: obstacle not consumed", i+1)
		}
	}

	if g.Mode() != ModeGameOver {
		t.Fatalf("mode = %s, want GameOver", g.Mode())
	}

	e := g.spawner.spawnKind(KindObstacle, 0)
	g.handleEvent(Event{Kind: EventObstacle, Entity: e})
	if g.State().Health != 0 {
		t.Errorf("health went below zero: %d", g.State().Health)
	}
}

func TestGameObstacleCollisionThroughPhysics(t *testing.T) {
	g := newTestGame(t, quietConfig())

	e := g.spawner.spawnKind(KindObstacle, 0)
	placeOnPlayer(g, e)
	step(g)

	if g.State().Health != 75 {
		t.Errorf("health = %d, want 75", g.State().Health)
	}
	if !e.Consumed() {
		t.Errorf("obstacle not consumed")
	}
	if !g.Shaking() {
		t.Errorf("camera shake not started")
	}

	stepN(g, 20)
	if g.Shaking() {
		t.Errorf("camera shake outlived its duration")
	}
	if g.State().Health != 75 {
		t.Errorf("consumed obstacle hit again: health %d", g.State().Health)
	}
}

func TestGameDuplicateContactAppliesOnce(t *testing.T) {
	g := newTestGame(t, quietConfig())

	e := g.spawner.spawnKind(KindObstacle, 0)
	g.events.Push(Event{Kind: EventObstacle, Entity: e})
	g.events.Push(Event{Kind: EventObstacle, Entity: e})
	g.events.Drain(g.handleEvent)

	if g.State().Health != 75 {
		t.Errorf("health = %d, want 75", g.State().Health)
	}
}

func TestGameEventQueueOverflow(t *testing.T) {
	cfg := quietConfig()
	cfg.Events.QueueSize = 1
	rec := &diag.Recorder{}
	g := newTestGame(t, cfg, WithSink(rec))

	for i := 0; i < 2; i++ {
		placeOnPlayer(g, g.spawner.spawnKind(KindObstacle, 0))
	}
	step(g)

	if g.State().Health != 75 {
		t.Errorf("health = %d, want 75", g.State().Health)
	}
	if g.events.Dropped() != 1 {
		t.Errorf("dropped = %d, want 1", g.events.Dropped())
	}
	found := false
	for _, e := range rec.Entries {
		if e.Level == diag.LevelWarn && strings.Contains(e.Message, "queue full") {
			found = true
		}
	}
	if !found {
		t.Errorf("overflow not reported: %+v", rec.Entries)
	}
}

// Scenario E plus bonus scoring: heals clamp at the maximum and never add
// score; bonus items add score and never heal.
func TestGameCollectibles(t *testing.T) {
	g := newTestGame(t, quietConfig())

	g.health = 90
	g.handleEvent(Event{Kind: EventCollectible, Entity: g.spawner.spawnKind(KindChocolate, 0)})
	if g.State().Health != 100 || g.State().Score != 0 {
		t.Errorf("after heal at 90: %+v", g.State())
	}

	g.handleEvent(Event{Kind: EventCollectible, Entity: g.spawner.spawnKind(KindGreenApple, 0)})
	if g.State().Health != 100 {
		t.Errorf("heal exceeded maximum: %d", g.State().Health)
	}

	g.health = 50
	g.handleEvent(Event{Kind: EventCollectible, Entity: g.spawner.spawnKind(KindHeart, 0)})
	g.handleEvent(Event{Kind: EventCollectible, Entity: g.spawner.spawnKind(KindRose, 0)})
	if g.State().Score != 200 || g.State().Health != 50 {
		t.Errorf("after two bonus items: %+v", g.State())
	}
}

func TestGameHealthStaysInRange(t *testing.T) {
	g := newTestGame(t, quietConfig())

	kinds := []Kind{KindChocolate, KindObstacle, KindGreenApple, KindGreenApple, KindObstacle, KindObstacle, KindChocolate, KindObstacle, KindObstacle, KindObstacle}
	for _, k := range kinds {
		ev := Event{Kind: EventCollectible, Entity: g.spawner.spawnKind(k, 0)}
		if k.IsObstacle() {
			ev.Kind = EventObstacle
		}
		g.handleEvent(ev)
		if h := g.State().Health; h < 0 || h > 100 {
			t.Fatalf("health out of range: %d", h)
		}
	}
}

// Scenario D: reaching the target wins even with low health.
func TestGameWinAtTarget(t *testing.T) {
	cfg := quietConfig()
	cfg.Difficulty.WinScore = 1000
	rec := &diag.Recorder{}
	g := newTestGame(t, cfg, WithSink(rec))
	g.health = 25

	for i := 0; i < 2000 && !g.Mode().Terminal(); i++ {
		step(g)
	}

	if g.Mode() != ModeWon {
		t.Fatalf("mode = %s, want Won (score %d)", g.Mode(), g.State().Score)
	}
	st := g.State()
	if st.Score != 1000 || st.Outcome != core.OutcomeWin || !st.Over {
		t.Errorf("unexpected state %+v", st)
	}
	if g.Player().Tint() != TintGold {
		t.Errorf("player not celebrating")
	}
	if rec.Count(diag.LevelSuccess) == 0 {
		t.Errorf("win not reported")
	}
}

func TestGameFallIntoGap(t *testing.T) {
	rec := &diag.Recorder{}
	g := newTestGame(t, quietConfig(), WithSink(rec))

	for _, seg := range g.Track().Segments() {
		seg.Destroy()
	}
	for i := 0; i < 120 && !g.Mode().Terminal(); i++ {
		step(g)
	}

	if g.Mode() != ModeGameOver {
		t.Fatalf("mode = %s, want GameOver", g.Mode())
	}
	if g.Player().Alive() {
		t.Errorf("player not marked dead")
	}
	if rec.Count(diag.LevelError) != 1 {
		t.Errorf("expected one error entry, got %d", rec.Count(diag.LevelError))
	}
}

func TestGamePauseIsReversibleAndFreezesRun(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	cfg.Gaps.Chance = 0
	g := newTestGame(t, cfg)

	stepN(g, 60)
	before := g.State()
	step(g, core.ActionPause)
	if g.Mode() != ModePaused || !g.State().Paused {
		t.Fatalf("mode = %s after pause", g.Mode())
	}

	for i := 0; i < 200; i++ {
		step(g, core.ActionJump)
	}
	st := g.State()
	if st.Score != before.Score || st.Health != before.Health {
		t.Errorf("paused run changed: before %+v after %+v", before, st)
	}
	if g.Spawner().Spawned() != 0 {
		t.Errorf("spawn timer fired while paused")
	}
	if !g.world.Paused() {
		t.Errorf("physics running while paused")
	}

	step(g, core.ActionPause)
	if g.Mode() != ModeRunning || g.world.Paused() {
		t.Fatalf("resume failed: mode=%s", g.Mode())
	}
	stepN(g, 39)
	if g.Spawner().Spawned() != 1 {
		t.Errorf("spawned = %d, want 1 after the interval elapsed", g.Spawner().Spawned())
	}

	for i := 0; i < 10; i++ {
		score := g.State().Score
		step(g, core.ActionPause)
		step(g, core.ActionPause)
		if g.Mode() != ModeRunning {
			t.Fatalf("toggle %d left mode %s", i, g.Mode())
		}
		// The resume frame itself runs.
		if g.State().Score != score+1 {
			t.Errorf("toggle %d: score %d, want %d", i, g.State().Score, score+1)
		}
	}
}

func TestGameTerminalIsAbsorbingAndHandsOffOnce(t *testing.T) {
	var results []Result
	g := newTestGame(t, quietConfig(), WithHandoff(func(r Result) {
		results = append(results, r)
	}))

	stepN(g, 30)
	g.finish(ModeGameOver)
	final := g.State().Score

	g.finish(ModeWon)
	if g.Mode() != ModeGameOver {
		t.Fatalf("second terminal transition applied: %s", g.Mode())
	}

	for i := 0; i < 59; i++ {
		step(g, core.ActionJump, core.ActionPause)
	}
	if len(results) != 0 {
		t.Fatalf("hand-off fired before the delay")
	}

	stepN(g, 200)
	if len(results) != 1 {
		t.Fatalf("hand-off fired %d times, want 1", len(results))
	}
	if results[0] != (Result{FinalScore: final, Outcome: core.OutcomeLoss}) {
		t.Errorf("result = %+v", results[0])
	}
	if res, ok := g.Result(); !ok || res != results[0] {
		t.Errorf("Result() = %+v, %v", res, ok)
	}

	st := g.State()
	if st.Score != final || st.Paused || !st.HandedOff || g.Mode() != ModeGameOver {
		t.Errorf("terminal state changed: %+v mode=%s", st, g.Mode())
	}
}

func TestGameHighScore(t *testing.T) {
	store := &memStore{high: 50}
	g := newTestGame(t, quietConfig(), WithStore(store))

	if g.State().HighScore != 50 {
		t.Fatalf("high score = %d, want 50", g.State().HighScore)
	}

	stepN(g, 60)
	if g.State().HighScore != 60 {
		t.Errorf("live high score = %d, want 60", g.State().HighScore)
	}
	if len(store.sets) != 0 {
		t.Errorf("high score persisted every frame: %v", store.sets)
	}

	// The pause frame does not tick the score.
	step(g, core.ActionPause)
	if len(store.sets) != 1 || store.sets[0] != 60 {
		t.Errorf("pause did not persist: %v", store.sets)
	}

	step(g, core.ActionPause)
	g.finish(ModeGameOver)
	if len(store.sets) != 2 || store.sets[1] != g.State().Score {
		t.Errorf("game over did not persist: %v", store.sets)
	}
}

func TestGameHighScoreStoreFailure(t *testing.T) {
	store := &memStore{high: 500, readErr: errors.New("disk gone")}
	rec := &diag.Recorder{}
	g := newTestGame(t, quietConfig(), WithStore(store), WithSink(rec))

	if g.State().HighScore != 0 {
		t.Errorf("failed read should count as zero, got %d", g.State().HighScore)
	}
	if rec.Count(diag.LevelWarn) == 0 {
		t.Errorf("store failure not reported")
	}
}

func TestGameSurvivesPanickingSink(t *testing.T) {
	g := newTestGame(t, quietConfig(), WithSink(panicSink{}))

	g.handleEvent(Event{Kind: EventObstacle, Entity: g.spawner.spawnKind(KindObstacle, 0)})
	stepN(g, 10)

	if g.State().Health != 75 || g.State().Score != 10 {
		t.Errorf("unexpected state %+v", g.State())
	}
}

func TestGameDeterministicForSeed(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	cfg.Gaps.SafeZoneScore = 0
	a := newTestGame(t, cfg)
	b := newTestGame(t, cfg)

	for i := 0; i < 3000; i++ {
		jump := core.ActionNone
		if i%45 == 0 {
			jump = core.ActionJump
		}
		step(a, jump)
		step(b, jump)
	}

	if a.State() != b.State() {
		t.Errorf("states diverged: %+v vs %+v", a.State(), b.State())
	}
	if a.Track().Gaps() != b.Track().Gaps() || a.Spawner().Spawned() != b.Spawner().Spawned() {
		t.Errorf("generators diverged")
	}
}

func TestGameRender(t *testing.T) {
	g := newTestGame(t, quietConfig())
	stepN(g, 90)

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	for _, want := range []string{"Score: 90", "Energy: 100%", string(PlayerChar), string(GroundTopChar)} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}

	g.health = 20
	g.Render(screen)
	energy := " Energy: 20% "
	x := screen.Width() - len(energy) - 2
	if c := screen.GetCell(x+1, 0); c.Rune != 'E' || c.Color != core.ColorBrightRed {
		t.Errorf("low energy cell = %+v", c)
	}

	step(g, core.ActionPause)
	g.Render(screen)
	if !strings.Contains(screen.String(), "PAUSED") {
		t.Errorf("pause overlay missing")
	}
}

func TestGameRenderDebugLine(t *testing.T) {
	cfg := quietConfig()
	g := newTestGame(t, cfg)
	stepN(g, 90)

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if strings.Contains(screen.String(), "seg:") {
		t.Error("debug line drawn while viewport.debug is off")
	}

	cfg.Viewport.Debug = true
	g = newTestGame(t, cfg)
	stepN(g, 90)
	g.Render(screen)
	row := screen.Row(2)
	for _, want := range []string{"f:90 ", "seg:", "gap:0 ", "skip:0 "} {
		if !strings.Contains(row, want) {
			t.Errorf("debug row %q missing %q", row, want)
		}
	}
	if _, ok := g.Track().LastGap(); ok {
		t.Error("no gap expected with gap chance 0")
	}
}

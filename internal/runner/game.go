// Package runner implements an endless side-scrolling runner: a ground track
// with guaranteed-jumpable gaps, timed obstacle and collectible spawns, a
// double-jump player and the run state machine tying them together.
package runner

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/diag"
	"github.com/vovakirdan/tui-runner/internal/physics"
	"github.com/vovakirdan/tui-runner/internal/registry"
	"github.com/vovakirdan/tui-runner/internal/sched"
)

// GameID is the registry identifier of the runner.
const GameID = "runner"

const logSource = "GameScene"

// Mode is the state of a run.
type Mode int

const (
	ModeRunning Mode = iota
	ModePaused
	ModeGameOver
	ModeWon
)

// String returns a human-readable name for the mode.
func (m Mode) String() string {
	switch m {
	case ModeRunning:
		return "Running"
	case ModePaused:
		return "Paused"
	case ModeGameOver:
		return "GameOver"
	case ModeWon:
		return "Won"
	default:
		return "Unknown"
	}
}

// Terminal reports whether no further transition is possible.
func (m Mode) Terminal() bool {
	return m == ModeGameOver || m == ModeWon
}

// Result is the payload handed to the presentation layer after a run.
type Result = core.Result

// HighScoreStore persists the best score. Failures are non-fatal.
type HighScoreStore = core.HighScoreStore

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names keep the
// config default.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// Option customizes a Game.
type Option func(*Game)

// WithConfig uses cfg instead of loading the YAML config at Reset.
func WithConfig(cfg config.RunnerConfig) Option {
	return func(g *Game) {
		g.fixed = &cfg
	}
}

// WithStore sets the high score store.
func WithStore(s HighScoreStore) Option {
	return func(g *Game) {
		g.store = s
	}
}

// WithSink sets the diagnostic sink.
func WithSink(s diag.Sink) Option {
	return func(g *Game) {
		g.sink = diag.Safe(s)
	}
}

// WithHandoff registers a callback for the delayed end-of-run hand-off.
func WithHandoff(fn func(Result)) Option {
	return func(g *Game) {
		g.onHandoff = fn
	}
}

// Game is one runner session. Each Reset starts a fresh run.
type Game struct {
	fixed     *config.RunnerConfig
	preset    config.DifficultyPreset
	store     HighScoreStore
	sink      diag.Sink
	onHandoff func(Result)

	cfg     config.RunnerConfig
	runtime core.RuntimeConfig
	rng     *rand.Rand

	world      *physics.World
	clock      *sched.Scheduler
	track      *Track
	spawner    *Spawner
	player     *Player
	events     *EventQueue
	difficulty *config.DifficultyManager
	spawnTimer *sched.Task

	mode      Mode
	score     int
	highScore int
	savedHigh int
	health    int
	frames    int
	bgOffset  float64

	shakeUntil time.Duration
	result     *Result
}

// New creates a runner. Reset must be called before Step.
func New(opts ...Option) *Game {
	g := &Game{sink: diag.Nop{}}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Endless Runner"
}

// Attach sets the store and sink after construction. Used by the platform,
// which creates games through the registry.
func (g *Game) Attach(store HighScoreStore, sink diag.Sink) {
	g.store = store
	if sink != nil {
		g.sink = diag.Safe(sink)
	}
}

// SetDifficulty picks a preset for this instance only, overriding the one set
// with SetDifficultyPreset. Takes effect at the next Reset.
func (g *Game) SetDifficulty(preset string) {
	g.preset = config.ParsePreset(preset)
}

// OnHandoff replaces the hand-off callback.
func (g *Game) OnHandoff(fn func(Result)) {
	g.onHandoff = fn
}

// Reset builds a new run: world, track, spawner, player and timers.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.cfg = g.loadConfig()
	g.rng = rand.New(rand.NewSource(runtime.Seed))

	g.world = physics.NewWorld(g.cfg.Physics.Gravity)
	g.clock = sched.New()
	g.events = NewEventQueue(g.cfg.Events.QueueSize)
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)

	g.track = NewTrack(g.cfg, g.world, g.rng)
	g.track.OnGap(func(gap Gap) {
		g.log(diag.LevelInfo, fmt.Sprintf("Gap generated! Width: %.0fpx (Max safe: %.0fpx)", gap.Width, gap.MaxSafe))
	})
	g.spawner = NewSpawner(g.cfg, g.world, g.rng)
	g.player = NewPlayer(g.cfg, g.world)

	g.world.Collide(g.player.Body, g.track.Group())
	g.world.Overlap(g.player.Body, g.spawner.Obstacles(), func(_, other *physics.Body) {
		g.enqueue(EventObstacle, other)
	})
	g.world.Overlap(g.player.Body, g.spawner.Collectibles(), func(_, other *physics.Body) {
		g.enqueue(EventCollectible, other)
	})

	g.spawnTimer = g.clock.Every(time.Duration(g.cfg.Spawner.IntervalMS)*time.Millisecond, func() {
		g.spawner.Spawn(g.difficulty.Speed())
	})

	g.mode = ModeRunning
	g.score = 0
	g.health = g.cfg.Health.Max
	g.frames = 0
	g.bgOffset = 0
	g.shakeUntil = 0
	g.result = nil
	g.highScore = g.loadHighScore()
	g.savedHigh = g.highScore

	g.log(diag.LevelInfo, "Game Scene Created. Starting run.")
}

func (g *Game) loadConfig() config.RunnerConfig {
	if g.fixed != nil {
		return *g.fixed
	}
	cfg, err := config.LoadRunner(configPath)
	if err != nil {
		g.log(diag.LevelWarn, fmt.Sprintf("config: %v; using defaults", err))
		cfg = config.DefaultRunnerConfig()
	}
	preset := difficultyPreset
	if g.preset != "" {
		preset = g.preset
	}
	if preset != "" {
		config.ApplyPreset(&cfg, preset)
	}
	return cfg
}

// Step advances the run by one frame. The scheduler always advances so the
// end-of-run hand-off fires; everything else only runs while Running.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.clock.Advance(g.frameDuration())

	if in.Has(core.ActionPause) {
		g.TogglePause()
	}
	if g.mode != ModeRunning {
		return core.StepResult{State: g.State()}
	}
	g.frames++

	g.player.Update()
	if in.Has(core.ActionJump) {
		g.player.Jump()
	}

	g.world.Step(1 / g.cfg.Physics.FrameRate)
	g.events.Drain(g.handleEvent)
	if g.mode != ModeRunning {
		return core.StepResult{State: g.State()}
	}

	speed := g.difficulty.Speed()
	g.bgOffset += speed * g.cfg.Viewport.BgParallax
	g.track.Step(speed, g.score)
	g.spawner.Cleanup()

	if g.player.Body.Center().Y() > g.cfg.GroundY()+g.cfg.Physics.FallTolerance {
		g.finish(ModeGameOver)
		return core.StepResult{State: g.State()}
	}

	g.score++
	if g.difficulty.Update(g.score) {
		g.log(diag.LevelInfo, fmt.Sprintf("Speed up! %.1f at score %d", g.difficulty.Speed(), g.score))
	}
	g.trackHighScore()

	if g.score >= g.cfg.Difficulty.WinScore {
		g.finish(ModeWon)
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) frameDuration() time.Duration {
	return time.Duration(float64(time.Second) / g.cfg.Physics.FrameRate)
}

func (g *Game) enqueue(kind EventKind, b *physics.Body) {
	e := entityOf(b)
	if e == nil {
		return
	}
	if !g.events.Push(Event{Kind: kind, Entity: e}) {
		g.log(diag.LevelWarn, fmt.Sprintf("Collision queue full, dropped %s contact", e.Kind))
	}
}

// handleEvent applies one collision outcome. Entities already consumed
// earlier in the same drain and events arriving after a terminal transition
// are ignored.
func (g *Game) handleEvent(ev Event) {
	if g.mode != ModeRunning || ev.Entity.Consumed() {
		return
	}
	switch ev.Kind {
	case EventObstacle:
		g.hitObstacle(ev.Entity)
	case EventCollectible:
		g.collect(ev.Entity)
	}
}

func (g *Game) hitObstacle(e *Entity) {
	g.spawner.Consume(e)
	g.shake()
	g.health = core.Clamp(g.health-g.cfg.Health.Damage, 0, g.cfg.Health.Max)
	g.log(diag.LevelWarn, fmt.Sprintf("Hit an obstacle! Health: %d%%", g.health))
	if g.health == 0 {
		g.finish(ModeGameOver)
	}
}

func (g *Game) collect(e *Entity) {
	g.spawner.Consume(e)
	if e.Kind.Heals() {
		g.health = core.Clamp(g.health+g.cfg.Health.Heal, 0, g.cfg.Health.Max)
		g.log(diag.LevelSuccess, fmt.Sprintf("Collected %s! Health healed to %d%%", e.Kind, g.health))
		return
	}
	g.score += g.cfg.Scoring.Bonus
	g.log(diag.LevelInfo, fmt.Sprintf("Collected %s! Bonus score: +%d", e.Kind, g.cfg.Scoring.Bonus))
}

func (g *Game) shake() {
	g.shakeUntil = g.clock.Now() + time.Duration(g.cfg.Timing.ShakeMS)*time.Millisecond
}

// TogglePause flips between Running and Paused, suspending physics and the
// spawn timer together. It does nothing once the run has ended.
func (g *Game) TogglePause() {
	switch g.mode {
	case ModeRunning:
		g.mode = ModePaused
		g.world.Pause()
		g.spawnTimer.Pause()
		g.persistHighScore()
	case ModePaused:
		g.mode = ModeRunning
		g.world.Resume()
		g.spawnTimer.Resume()
	}
}

// finish enters a terminal mode. Only the first call has any effect.
func (g *Game) finish(mode Mode) {
	if g.mode.Terminal() {
		return
	}
	g.mode = mode
	g.world.Pause()
	g.spawnTimer.Pause()

	outcome := core.OutcomeLoss
	if mode == ModeWon {
		outcome = core.OutcomeWin
		g.player.Celebrate()
		g.log(diag.LevelSuccess, fmt.Sprintf("Success! Target Score Reached: %d", g.cfg.Difficulty.WinScore))
	} else {
		g.player.Die()
		g.log(diag.LevelError, fmt.Sprintf("Game Over! Final Score: %d", g.score))
	}

	g.trackHighScore()
	g.persistHighScore()

	res := Result{FinalScore: g.score, Outcome: outcome}
	g.clock.After(time.Duration(g.cfg.Timing.HandoffDelayMS)*time.Millisecond, func() {
		g.handoff(res)
	})
}

func (g *Game) handoff(res Result) {
	if g.result != nil {
		return
	}
	g.result = &res
	if g.onHandoff != nil {
		g.onHandoff(res)
	}
}

func (g *Game) trackHighScore() {
	if g.score > g.highScore {
		g.highScore = g.score
	}
}

func (g *Game) loadHighScore() int {
	if g.store == nil {
		return 0
	}
	hs, err := g.store.HighScore()
	if err != nil {
		g.log(diag.LevelWarn, fmt.Sprintf("high score unavailable: %v", err))
		return 0
	}
	return max(hs, 0)
}

func (g *Game) persistHighScore() {
	if g.store == nil || g.highScore <= g.savedHigh {
		return
	}
	if err := g.store.SetHighScore(g.highScore); err != nil {
		g.log(diag.LevelWarn, fmt.Sprintf("high score not saved: %v", err))
		return
	}
	g.savedHigh = g.highScore
}

func (g *Game) log(level diag.Level, msg string) {
	if g.sink == nil {
		return
	}
	g.sink.Log(level, msg, logSource)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:     g.score,
		HighScore: g.highScore,
		Health:    g.health,
		Paused:    g.mode == ModePaused,
		Over:      g.mode.Terminal(),
		Outcome:   g.outcome(),
		HandedOff: g.result != nil,
	}
}

func (g *Game) outcome() core.Outcome {
	switch g.mode {
	case ModeGameOver:
		return core.OutcomeLoss
	case ModeWon:
		return core.OutcomeWin
	default:
		return core.OutcomeNone
	}
}

// Mode returns the run mode.
func (g *Game) Mode() Mode {
	return g.mode
}

// Result returns the hand-off payload once it has been emitted.
func (g *Game) Result() (Result, bool) {
	if g.result == nil {
		return Result{}, false
	}
	return *g.result, true
}

// Speed returns the current scroll speed.
func (g *Game) Speed() float64 {
	return g.difficulty.Speed()
}

// Config returns the configuration of the current run.
func (g *Game) Config() config.RunnerConfig {
	return g.cfg
}

// Player returns the player controller.
func (g *Game) Player() *Player {
	return g.player
}

// Track returns the ground generator.
func (g *Game) Track() *Track {
	return g.track
}

// Spawner returns the entity spawner.
func (g *Game) Spawner() *Spawner {
	return g.spawner
}

// Frames returns how many Running frames were simulated.
func (g *Game) Frames() int {
	return g.frames
}

// Shaking reports whether the camera shake effect is active.
func (g *Game) Shaking() bool {
	return g.clock.Now() < g.shakeUntil
}

// Register the game with the registry
func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}

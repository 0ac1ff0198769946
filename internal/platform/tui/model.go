package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/diag"
	"github.com/vovakirdan/tui-runner/internal/registry"
	"github.com/vovakirdan/tui-runner/internal/storage"
)

// platformSource tags diagnostics emitted by the terminal layer.
const platformSource = "Platform"

// Env carries the shared services a session hands to each run.
type Env struct {
	Store  *storage.Store
	Sink   diag.Sink
	Preset string // Difficulty preset; empty keeps the config default
}

func (e Env) sink() diag.Sink {
	return diag.Safe(e.Sink)
}

// GameModel runs one game and shows the result screen once the game hands
// its result off.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	env        Env
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	bestBefore int

	result     *core.Result
	resultView ResultModel

	standalone bool // Back to menu quits the program
	quitting   bool
	backToMenu bool
}

// NewGameModel prepares a run of game. The store and sink from env are
// attached when the game supports them.
func NewGameModel(game registry.Game, env Env, cfg core.RuntimeConfig) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if a, ok := game.(registry.Attachable); ok {
		a.Attach(storage.NewHighScores(env.Store, game.ID()), env.Sink)
	}
	if t, ok := game.(registry.Tunable); ok && env.Preset != "" {
		t.SetDifficulty(env.Preset)
	}

	m := GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		env:        env,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
	}
	m.bestBefore = m.storedBest()
	return m
}

// Init starts the run and the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.result != nil {
			return m.handleResultKey(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// World coordinates do not depend on the terminal size, so a resize
		// only rescales the view.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		m.resultView = m.resultView.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		if m.result != nil {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input during a run.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	// Leaving mid-run is only allowed from the pause overlay.
	if m.inputFrame.Has(core.ActionBack) && m.gameState.Paused {
		return m.leave()
	}

	return m, nil
}

// handleResultKey forwards input to the result screen and acts on its choice.
func (m GameModel) handleResultKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.resultView, cmd = m.resultView.Update(msg)

	switch m.resultView.Choice() {
	case ResultChoicePlayAgain:
		return m.restart()
	case ResultChoiceMenu:
		return m.leave()
	case ResultChoiceQuit:
		m.quitting = true
		return m, tea.Quit
	}
	return m, cmd
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	if res, ok := m.finished(); ok {
		m.saveRun(res)
		m.result = &res
		m.resultView = NewResultModel(res, m.bestBefore, m.config.ScreenW, m.config.ScreenH)
		return m, nil
	}

	return m, tickCmd(m.config.TickRate)
}

// finished reports the result once the game has handed it off. Games without
// a delayed hand-off finish as soon as they report a terminal state.
func (m GameModel) finished() (core.Result, bool) {
	if f, ok := m.game.(registry.Finisher); ok {
		return f.Result()
	}
	if !m.gameState.Over {
		return core.Result{}, false
	}
	return core.Result{FinalScore: m.gameState.Score, Outcome: m.gameState.Outcome}, true
}

// restart begins a new run with a fresh seed.
func (m GameModel) restart() (tea.Model, tea.Cmd) {
	m.config.Seed = time.Now().UnixNano()
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.result = nil
	m.inputFrame.Clear()
	m.bestBefore = m.storedBest()
	return m, tickCmd(m.config.TickRate)
}

func (m GameModel) leave() (tea.Model, tea.Cmd) {
	m.backToMenu = true
	if m.standalone {
		return m, tea.Quit
	}
	return m, nil
}

func (m GameModel) saveRun(res core.Result) {
	if m.env.Store == nil {
		return
	}
	if _, err := m.env.Store.SaveRun(m.game.ID(), res); err != nil {
		m.env.sink().Log(diag.LevelWarn, err.Error(), platformSource)
	}
}

func (m GameModel) storedBest() int {
	if m.env.Store == nil {
		return 0
	}
	best, err := m.env.Store.HighScore(m.game.ID())
	if err != nil {
		return 0
	}
	return best
}

// saveScreenshot writes the current frame as plain text under
// ~/.arcade/screenshots.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	//nolint:errcheck // Best-effort save, the run continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	if m.result != nil {
		return m.resultView.View()
	}

	m.game.Render(m.screen)
	out := RenderScreen(m.screen)
	if m.gameState.Paused && m.screen.Height() > 1 {
		// The bottom row of the ground gives way to the key help while paused.
		h := help.New()
		h.Width = m.screen.Width()
		if i := strings.LastIndexByte(out, '\n'); i >= 0 {
			out = out[:i+1] + h.View(m.keyMapper.Game)
		}
	}
	return out
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Result returns the last handed-off result, if any.
func (m GameModel) Result() (core.Result, bool) {
	if m.result == nil {
		return core.Result{}, false
	}
	return *m.result, true
}

// Run plays game in its own Bubble Tea program. Leaving the result screen
// for the menu ends the program.
func Run(game registry.Game, env Env, cfg core.RuntimeConfig) error {
	model := NewGameModel(game, env, cfg)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}

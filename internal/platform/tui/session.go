package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/diag"
	"github.com/vovakirdan/tui-runner/internal/registry"
)

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenScores
)

// SessionModel manages the full flow for one player: menu, game with its
// result screen, and the scoreboard. Used for SSH sessions and the local
// menu command.
type SessionModel struct {
	gameID   string
	env      Env
	config   core.RuntimeConfig
	username string
	screen   sessionScreen
	menu     MenuModel
	game     *GameModel
	scores   ScoreboardModel
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(gameID string, env Env, cfg core.RuntimeConfig, username string) SessionModel {
	return SessionModel{
		gameID:   gameID,
		env:      env,
		config:   cfg,
		username: username,
		menu:     NewMenuModel(gameID, env.Store, cfg, env.Preset),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch m.menu.Choice() {
	case MenuChoiceQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuChoiceScores:
		m.scores = NewScoreboardModel(m.gameID, m.env.Store, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenScores
		return m, m.scores.Init()

	case MenuChoicePlay:
		return m.startGame()
	}

	return m, cmd
}

func (m SessionModel) startGame() (tea.Model, tea.Cmd) {
	game, err := registry.Create(m.gameID)
	if err != nil {
		m.env.sink().Log(diag.LevelError, err.Error(), platformSource)
		m.menu = NewMenuModel(m.gameID, m.env.Store, m.config, m.menu.Preset())
		return m, nil
	}

	env := m.env
	env.Preset = m.menu.Preset()
	m.env.Preset = env.Preset

	cfg := m.config
	cfg.Seed = time.Now().UnixNano()

	gm := NewGameModel(game, env, cfg)
	m.game = &gm
	m.screen = screenGame
	return m, m.game.Init()
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.game = &gameModel
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.game.BackToMenu() {
		return m.toMenu()
	}

	return m, cmd
}

// updateScores handles updates on the scoreboard.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scores.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scores = sb
	}

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scores.IsGoingBack() {
		return m.toMenu()
	}
	return m, cmd
}

// toMenu rebuilds the menu so it shows fresh stats.
func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.game = nil
	m.screen = screenMenu
	m.menu = NewMenuModel(m.gameID, m.env.Store, m.config, m.env.Preset)
	return m, m.menu.Init()
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.scores.View()
	default:
		return m.menu.View()
	}
}

// Username returns the player this session belongs to.
func (m SessionModel) Username() string {
	return m.username
}

// RunSession runs the menu flow locally until the player quits.
func RunSession(gameID string, env Env, cfg core.RuntimeConfig) error {
	model := NewSessionModel(gameID, env, cfg, "local")

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}

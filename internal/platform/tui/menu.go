package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/registry"
	"github.com/vovakirdan/tui-runner/internal/storage"
)

// MenuChoice is the action picked in the menu.
type MenuChoice int

const (
	MenuChoiceNone MenuChoice = iota
	MenuChoicePlay
	MenuChoiceScores
	MenuChoiceQuit
)

type menuEntry struct {
	label  string
	choice MenuChoice
}

var menuEntries = []menuEntry{
	{"Play", MenuChoicePlay},
	{"High Scores", MenuChoiceScores},
	{"Quit", MenuChoiceQuit},
}

// Presets lists the difficulty choices offered in the menu. The empty preset
// keeps whatever the config file says.
var Presets = []string{"", "easy", "normal", "hard", "fixed"}

// MenuModel is the Bubble Tea model for the start screen.
type MenuModel struct {
	gameID    string
	title     string
	cursor    int
	preset    int
	highScore int
	runs      int
	wins      int
	width     int
	height    int
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	help      help.Model
	quitting  bool
	choice    MenuChoice
}

// NewMenuModel creates the start screen for gameID. The high score and run
// counts come from store when it is available.
func NewMenuModel(gameID string, store *storage.Store, cfg core.RuntimeConfig, preset string) MenuModel {
	m := MenuModel{
		gameID:    gameID,
		title:     gameID,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		help:      help.New(),
	}
	m.help.Width = cfg.ScreenW
	for _, g := range registry.List() {
		if g.ID == gameID {
			m.title = g.Title
		}
	}
	for i, p := range Presets {
		if p == preset {
			m.preset = i
		}
	}
	if store != nil {
		if stats, err := store.GetGameStats(gameID); err == nil {
			m.highScore = stats.HighScore
			m.runs = stats.GamesCount
			m.wins = stats.Wins
		}
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		m.choice = MenuChoiceQuit
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(menuEntries)-1 {
			m.cursor++
		}

	case MenuActionLeft:
		m.preset = (m.preset + len(Presets) - 1) % len(Presets)

	case MenuActionRight:
		m.preset = (m.preset + 1) % len(Presets)

	case MenuActionScoreboard:
		m.choice = MenuChoiceScores
		return m, tea.Quit

	case MenuActionSelect:
		m.choice = menuEntries[m.cursor].choice
		if m.choice == MenuChoiceQuit {
			m.quitting = true
		}
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	selStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render(spaced(m.title)), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(fmt.Sprintf("High Score: %d", m.highScore), m.width))
	b.WriteString("\n")
	if m.runs > 0 {
		b.WriteString(centerText(dimStyle.Render(fmt.Sprintf("%d runs, %d cleared", m.runs, m.wins)), m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for i, e := range menuEntries {
		line := "  " + e.label
		if i == m.cursor {
			line = selStyle.Render("> " + e.label)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(fmt.Sprintf("Difficulty: < %s >", presetLabel(m.Preset())), m.width))
	b.WriteString("\n\n")

	b.WriteString(centerText(m.help.View(m.keyMapper.Menu), m.width))
	b.WriteString("\n")

	return b.String()
}

// Choice returns the picked action, or MenuChoiceNone.
func (m MenuModel) Choice() MenuChoice {
	return m.choice
}

// Preset returns the selected difficulty preset name.
func (m MenuModel) Preset() string {
	return Presets[m.preset]
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

func presetLabel(p string) string {
	if p == "" {
		return "config"
	}
	return p
}

// spaced turns "Endless Runner" into "E N D L E S S   R U N N E R".
func spaced(title string) string {
	words := strings.Fields(strings.ToUpper(title))
	for i, w := range words {
		words[i] = strings.Join(strings.Split(w, ""), " ")
	}
	return strings.Join(words, "   ")
}

// centerText centers text within given width. Styled text is measured by its
// printable width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

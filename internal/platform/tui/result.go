package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-runner/internal/core"
)

// ResultChoice is what the player picked on the result screen.
type ResultChoice int

const (
	ResultChoiceNone ResultChoice = iota
	ResultChoicePlayAgain
	ResultChoiceMenu
	ResultChoiceQuit
)

var resultOptions = []struct {
	label  string
	choice ResultChoice
}{
	{"Play Again", ResultChoicePlayAgain},
	{"Back to Menu", ResultChoiceMenu},
}

// ResultKeyMap defines the key bindings for the result screen.
type ResultKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Again  key.Binding
	Menu   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ResultKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.Again, k.Menu, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ResultKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.Again, k.Menu, k.Quit},
	}
}

// DefaultResultKeyMap returns default key bindings.
func DefaultResultKeyMap() ResultKeyMap {
	return ResultKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("up/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("down/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "select"),
		),
		Again: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "play again"),
		),
		Menu: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "menu"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ResultModel shows the outcome of a finished run.
type ResultModel struct {
	result     core.Result
	bestBefore int
	cursor     int
	choice     ResultChoice
	keys       ResultKeyMap
	help       help.Model
	width      int
	height     int
}

// NewResultModel builds the result screen. bestBefore is the stored high
// score from before the run and decides the "new high score" banner.
func NewResultModel(res core.Result, bestBefore, width, height int) ResultModel {
	h := help.New()
	h.Width = width
	return ResultModel{
		result:     res,
		bestBefore: bestBefore,
		keys:       DefaultResultKeyMap(),
		help:       h,
		width:      width,
		height:     height,
	}
}

// Resize updates the layout size.
func (m ResultModel) Resize(width, height int) ResultModel {
	m.width = width
	m.height = height
	m.help.Width = width
	return m
}

// Update handles key input. The chosen action is read with Choice.
func (m ResultModel) Update(msg tea.Msg) (ResultModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.choice = ResultChoiceQuit
	case key.Matches(keyMsg, m.keys.Again):
		m.choice = ResultChoicePlayAgain
	case key.Matches(keyMsg, m.keys.Menu):
		m.choice = ResultChoiceMenu
	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(resultOptions)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, m.keys.Select):
		m.choice = resultOptions[m.cursor].choice
	}
	return m, nil
}

// Choice returns the picked action, or ResultChoiceNone.
func (m ResultModel) Choice() ResultChoice {
	return m.choice
}

// NewBest reports whether the run beat the previously stored high score.
func (m ResultModel) NewBest() bool {
	return m.result.FinalScore > m.bestBefore
}

// Headline returns the title line for the outcome.
func (m ResultModel) Headline() string {
	if m.result.Won() {
		return "Level Clear!"
	}
	return "Game Over!"
}

// View renders the result screen.
func (m ResultModel) View() string {
	headColor := lipgloss.Color("9")
	if m.result.Won() {
		headColor = lipgloss.Color("10")
	}
	headStyle := lipgloss.NewStyle().Bold(true).Foreground(headColor)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	selStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))

	var body strings.Builder
	body.WriteString(headStyle.Render(m.Headline()))
	body.WriteString("\n\n")
	body.WriteString(fmt.Sprintf("Final Score: %d\n", m.result.FinalScore))
	if m.NewBest() {
		body.WriteString(selStyle.Render("New high score!"))
	} else {
		body.WriteString(dimStyle.Render(fmt.Sprintf("High Score: %d", m.bestBefore)))
	}
	body.WriteString("\n\n")

	for i, opt := range resultOptions {
		if i == m.cursor {
			body.WriteString(selStyle.Render("> " + opt.label))
		} else {
			body.WriteString("  " + opt.label)
		}
		body.WriteString("\n")
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(headColor).
		Padding(1, 4).
		Render(body.String())

	footer := dimStyle.Render(m.help.View(m.keys))
	content := lipgloss.JoinVertical(lipgloss.Center, box, "", footer)

	if m.width <= 0 || m.height <= 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-runner/internal/core"
)

// palette maps core colors to terminal colors. The pinks use 256-color codes
// so collectibles stay distinguishable on 16-color themes.
var palette = map[core.Color]lipgloss.TerminalColor{
	core.ColorRed:       lipgloss.Color("1"),
	core.ColorGreen:     lipgloss.Color("2"),
	core.ColorYellow:    lipgloss.Color("3"),
	core.ColorBlue:      lipgloss.Color("4"),
	core.ColorMagenta:   lipgloss.Color("5"),
	core.ColorCyan:      lipgloss.Color("6"),
	core.ColorWhite:     lipgloss.Color("7"),
	core.ColorBrightRed: lipgloss.Color("9"),
	core.ColorPink:      lipgloss.Color("218"),
	core.ColorHotPink:   lipgloss.Color("205"),
	core.ColorGray:      lipgloss.Color("245"),
}

var colorStyles = buildStyles()

func buildStyles() map[core.Color]lipgloss.Style {
	styles := make(map[core.Color]lipgloss.Style, len(palette)+1)
	styles[core.ColorDefault] = lipgloss.NewStyle()
	for c, tc := range palette {
		styles[c] = lipgloss.NewStyle().Foreground(tc)
	}
	return styles
}

// styleFor returns the style for c, falling back to the terminal default.
func styleFor(c core.Color) lipgloss.Style {
	if s, ok := colorStyles[c]; ok {
		return s
	}
	return colorStyles[core.ColorDefault]
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Runs of cells sharing a color are styled together to keep escape
// sequences short.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			color := s.GetCell(x, y).Color
			run.Reset()
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}
			if color == core.ColorDefault {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(styleFor(color).Render(run.String()))
		}
	}
	return sb.String()
}

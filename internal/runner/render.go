package runner

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-runner/internal/core"
)

// Visual characters for rendering
const (
	GroundTopChar  = '▀'
	GroundFillChar = '▓'
	BackdropChar   = '·'
	PlayerChar     = '█'
	PlayerHeadChar = '◆'
	MissingGlyph   = '?'
)

// lowEnergy is the health level below which the HUD switches to the alert color.
const lowEnergy = 30

// backdropSpacing is the column distance between parallax backdrop dots.
const backdropSpacing = 11

var kindGlyphs = map[Kind]rune{
	KindObstacle:   '●',
	KindHeart:      '♥',
	KindRose:       '✿',
	KindChocolate:  '▬',
	KindGreenApple: '●',
}

var kindColors = map[Kind]core.Color{
	KindObstacle:   core.ColorRed,
	KindHeart:      core.ColorHotPink,
	KindRose:       core.ColorMagenta,
	KindChocolate:  core.ColorYellow,
	KindGreenApple: core.ColorGreen,
}

// viewport maps world coordinates onto screen cells.
type viewport struct {
	sx, sy float64
	dx     float64 // Camera shake in world units
}

func (v viewport) col(x float64) int {
	return int(math.Floor((x + v.dx) * v.sx))
}

func (v viewport) row(y float64) int {
	return int(math.Floor(y * v.sy))
}

// Render draws the current game state to the screen. Drawing reads the run
// state and never changes it.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.world == nil || dst.Width() == 0 || dst.Height() == 0 {
		return
	}

	v := viewport{
		sx: float64(dst.Width()) / g.cfg.RightEdge(),
		sy: float64(dst.Height()) / g.cfg.Viewport.Height,
	}
	if g.Shaking() {
		v.dx = g.cfg.Timing.ShakeIntensity * g.cfg.Viewport.Width
		if g.frames%2 == 1 {
			v.dx = -v.dx
		}
	}

	g.drawBackdrop(dst, v)
	g.drawGround(dst, v)
	for _, e := range g.spawner.Entities() {
		g.drawEntity(dst, v, e)
	}
	g.drawPlayer(dst, v)
	g.drawHUD(dst)

	switch g.mode {
	case ModePaused:
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	case ModeGameOver:
		g.drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d", g.score))
	case ModeWon:
		g.drawCenteredMessage(dst, "LEVEL CLEAR!", fmt.Sprintf("Score: %d", g.score))
	}
}

// drawBackdrop scrolls a row of dots at the parallax rate.
func (g *Game) drawBackdrop(dst *core.Screen, v viewport) {
	dst.SetPen(core.ColorGray)
	y := v.row(g.cfg.GroundY()) / 3
	shift := int(g.bgOffset*v.sx) % backdropSpacing
	for x := -shift; x < dst.Width(); x += backdropSpacing {
		dst.Set(x, y, BackdropChar)
		dst.Set(x+backdropSpacing/2, y+2, BackdropChar)
	}
}

func (g *Game) drawGround(dst *core.Screen, v viewport) {
	top := v.row(g.cfg.GroundY())
	for _, seg := range g.track.Segments() {
		x0 := v.col(seg.Pos.X())
		x1 := v.col(seg.Right())
		if x1 <= x0 {
			x1 = x0 + 1
		}
		for x := x0; x < x1; x++ {
			dst.SetPen(core.ColorGreen)
			dst.Set(x, top, GroundTopChar)
			dst.SetPen(core.ColorYellow)
			for y := top + 1; y < dst.Height(); y++ {
				dst.Set(x, y, GroundFillChar)
			}
		}
	}
}

func (g *Game) drawEntity(dst *core.Screen, v viewport, e *Entity) {
	glyph, ok := kindGlyphs[e.Kind]
	if !ok {
		glyph = MissingGlyph
	}
	dst.SetPen(kindColors[e.Kind])

	c := e.Center()
	x, y := v.col(c.X()), v.row(c.Y())
	dst.Set(x, y, glyph)
	if e.Kind.IsObstacle() {
		dst.Set(x+1, y, glyph)
	}
}

// drawPlayer renders the hitbox area, which is what the player collides with.
func (g *Game) drawPlayer(dst *core.Screen, v viewport) {
	switch g.player.Tint() {
	case TintHurt:
		dst.SetPen(core.ColorBrightRed)
	case TintGold:
		dst.SetPen(core.ColorYellow)
	default:
		dst.SetPen(core.ColorCyan)
	}

	fp := g.player.Body.Footprint()
	x0, x1 := v.col(fp.Min.X()), v.col(fp.Max.X())
	y0, y1 := v.row(fp.Min.Y()), v.row(fp.Max.Y())
	x1 = max(x1, x0+1)
	y1 = max(y1, y0+1)

	dst.DrawRect(core.NewRect(x0, y0, x1-x0, y1-y0), PlayerChar)
	dst.Set(x1-1, y0, PlayerHeadChar)
}

func (g *Game) drawHUD(dst *core.Screen) {
	dst.SetPen(core.ColorWhite)
	dst.DrawText(2, 0, fmt.Sprintf(" Score: %d ", g.score))

	dst.SetPen(core.ColorHotPink)
	dst.DrawText(2, 1, fmt.Sprintf(" High Score: %d ", g.highScore))

	energy := fmt.Sprintf(" Energy: %d%% ", g.health)
	if g.health < lowEnergy {
		dst.SetPen(core.ColorBrightRed)
	}
	dst.DrawText(dst.Width()-len(energy)-2, 0, energy)

	if g.difficulty.IsEnabled() {
		dst.SetPen(core.ColorGray)
		speed := fmt.Sprintf(" Spd: %.1f ", g.difficulty.Speed())
		dst.DrawText(dst.Width()-len(speed)-2, 1, speed)
	}

	if g.cfg.Viewport.Debug {
		dst.SetPen(core.ColorGray)
		dst.DrawText(2, 2, g.debugLine())
	}
	dst.SetPen(core.ColorDefault)
}

func (g *Game) debugLine() string {
	line := fmt.Sprintf(" f:%d phys:%d seg:%d gap:%d skip:%d ents:%d ",
		g.Frames(), g.world.Steps(), g.track.Placed(), g.track.Gaps(),
		g.track.Suppressed(), len(g.spawner.Entities()))
	if gap, ok := g.track.LastGap(); ok {
		line += fmt.Sprintf("last:%.0f/%.0f ", gap.Width, gap.MaxSafe)
	}
	return line
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	box := core.Centered(dst.Width(), dst.Height(), max(len(title), len(subtitle))+4, 5)

	dst.SetPen(core.ColorWhite)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)

	dst.DrawText(box.X+(box.W-len(title))/2, box.Y+1, title)
	dst.DrawText(box.X+(box.W-len(subtitle))/2, box.Y+3, subtitle)
}

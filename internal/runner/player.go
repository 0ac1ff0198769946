package runner

import (
	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/physics"
)

// Tint is the presentation color state of the player.
type Tint int

const (
	TintNone Tint = iota
	TintHurt
	TintGold
)

// Player owns the jump budget. Ground contact comes from the physics body.
type Player struct {
	Body *physics.Body

	jumpVelocity float64
	maxJumps     int
	jumpCount    int
	alive        bool
	tint         Tint
}

// NewPlayer creates the player at its spawn point with the forgiving hitbox
// and registers it with world.
func NewPlayer(cfg config.RunnerConfig, world *physics.World) *Player {
	pc := cfg.Player
	centerY := cfg.Viewport.Height - pc.StartYOffset

	body := physics.NewBody(pc.X-pc.Width/2, centerY-pc.Height/2, pc.Width, pc.Height)
	body.AllowGravity = true
	body.SetBox(
		pc.Width*pc.HitboxW, pc.Height*pc.HitboxH,
		pc.Width*pc.HitboxOffsetX, pc.Height*pc.HitboxOffsetY,
	)
	world.Add(body)

	return &Player{
		Body:         body,
		jumpVelocity: cfg.Physics.JumpVelocity,
		maxJumps:     cfg.Physics.MaxJumps,
		alive:        true,
	}
}

// Jump applies the jump impulse if the budget allows and reports whether it
// did. A grounded player always may jump; an airborne one only while fewer
// than maxJumps impulses were used since the last landing.
func (p *Player) Jump() bool {
	switch {
	case p.Body.TouchingDown:
		p.jumpCount = 0
	case p.jumpCount >= p.maxJumps:
		return false
	}

	p.Body.Vel[1] = p.jumpVelocity
	p.Body.TouchingDown = false
	p.jumpCount++
	return true
}

// Update resets the budget on ground contact. It must run before jump input
// is applied for the frame.
func (p *Player) Update() {
	if p.Body.TouchingDown {
		p.jumpCount = 0
	}
}

// Die marks the player dead and tints it. It never changes the run mode.
func (p *Player) Die() {
	p.alive = false
	p.tint = TintHurt
}

// Celebrate tints the player for a won run.
func (p *Player) Celebrate() {
	p.tint = TintGold
}

// JumpCount returns the impulses used since the last landing.
func (p *Player) JumpCount() int {
	return p.jumpCount
}

// Grounded reports whether the player rests on ground.
func (p *Player) Grounded() bool {
	return p.Body.TouchingDown
}

// Alive reports whether Die has not been called.
func (p *Player) Alive() bool {
	return p.alive
}

// Tint returns the current presentation tint.
func (p *Player) Tint() Tint {
	return p.tint
}

package runner

import (
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/physics"
)

func TestPlayerJumpBudget(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	p := NewPlayer(cfg, physics.NewWorld(cfg.Physics.Gravity))
	p.Body.TouchingDown = true

	if !p.Jump() {
		t.Fatal("grounded jump rejected")
	}
	if p.Body.Vel.Y() != cfg.Physics.JumpVelocity || p.JumpCount() != 1 {
		t.Errorf("after first jump: vy=%v count=%d", p.Body.Vel.Y(), p.JumpCount())
	}
	if p.Grounded() {
		t.Errorf("player still grounded after jumping")
	}

	if !p.Jump() || p.JumpCount() != 2 {
		t.Fatalf("double jump rejected, count=%d", p.JumpCount())
	}

	p.Body.Vel[1] = -100
	if p.Jump() {
		t.Errorf("third jump accepted")
	}
	if p.Body.Vel.Y() != -100 || p.JumpCount() != 2 {
		t.Errorf("rejected jump changed state: vy=%v count=%d", p.Body.Vel.Y(), p.JumpCount())
	}

	// Landing restores the full budget.
	p.Body.TouchingDown = true
	p.Update()
	if p.JumpCount() != 0 {
		t.Errorf("landing did not reset budget, count=%d", p.JumpCount())
	}
	for i := 0; i < cfg.Physics.MaxJumps; i++ {
		if !p.Jump() {
			t.Errorf("jump %d after landing rejected", i+1)
		}
	}
}

func TestPlayerJumpOnLandingFrameWithoutUpdate(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	p := NewPlayer(cfg, physics.NewWorld(cfg.Physics.Gravity))

	p.Body.TouchingDown = true
	p.jumpCount = cfg.Physics.MaxJumps

	if !p.Jump() {
		t.Errorf("grounded player with a spent budget must still jump")
	}
	if p.JumpCount() != 1 {
		t.Errorf("count = %d, want 1", p.JumpCount())
	}
}

func TestPlayerLandsOnTrack(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	world := physics.NewWorld(cfg.Physics.Gravity)
	tr := NewTrack(cfg, world, rand.New(rand.NewSource(1)))
	p := NewPlayer(cfg, world)
	world.Collide(p.Body, tr.Group())

	for i := 0; i < 120; i++ {
		world.Step(1 / cfg.Physics.FrameRate)
	}

	if !p.Grounded() {
		t.Fatal("player never landed")
	}
	if bottom := p.Body.Footprint().Max.Y(); math.Abs(bottom-cfg.GroundY()) > 1e-9 {
		t.Errorf("hitbox bottom %v, want ground line %v", bottom, cfg.GroundY())
	}
}

func TestPlayerPresentation(t *testing.T) {
	cfg := config.DefaultRunnerConfig()

	p := NewPlayer(cfg, physics.NewWorld(cfg.Physics.Gravity))
	if !p.Alive() || p.Tint() != TintNone {
		t.Fatalf("fresh player: alive=%v tint=%v", p.Alive(), p.Tint())
	}
	p.Die()
	if p.Alive() || p.Tint() != TintHurt {
		t.Errorf("after Die: alive=%v tint=%v", p.Alive(), p.Tint())
	}

	p = NewPlayer(cfg, physics.NewWorld(cfg.Physics.Gravity))
	p.Celebrate()
	if !p.Alive() || p.Tint() != TintGold {
		t.Errorf("after Celebrate: alive=%v tint=%v", p.Alive(), p.Tint())
	}
}

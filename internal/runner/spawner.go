package runner

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/physics"
)

// Forgiving hitbox ratios, relative to the sprite width/height.
const (
	obstacleRadius    = 0.3
	obstacleOffset    = 0.2
	collectibleRadius = 0.4
	collectibleOffset = 0.1
)

// Collectible height bands above the ground line. The high band sits above a
// standing player's hitbox so it can only be reached mid-jump.
const (
	defaultBandLift  = 50
	defaultBandRange = 100
	highBandLift     = 150
	highBandRange    = 50
)

// Spawner creates obstacles and collectibles beyond the right edge and
// removes them once they scroll past the left cleanup threshold. When it
// runs is decided by the caller's timer.
type Spawner struct {
	cfg     config.SpawnerConfig
	groundY float64
	spawnX  float64
	unit    float64

	rng          *rand.Rand
	obstacles    *physics.Group
	collectibles *physics.Group

	spawned int
	cleaned int
}

// NewSpawner creates a spawner registering its bodies with world.
func NewSpawner(cfg config.RunnerConfig, world *physics.World, rng *rand.Rand) *Spawner {
	return &Spawner{
		cfg:          cfg.Spawner,
		groundY:      cfg.GroundY(),
		spawnX:       cfg.Viewport.Width + cfg.Spawner.XOffset,
		unit:         cfg.Physics.FrameRate,
		rng:          rng,
		obstacles:    world.NewGroup(),
		collectibles: world.NewGroup(),
	}
}

// Spawn creates exactly one entity moving left at speed world units per
// frame: an obstacle with probability ObstacleChance, otherwise a collectible
// of a uniformly drawn kind.
func (s *Spawner) Spawn(speed float64) *Entity {
	if s.rng.Float64() < s.cfg.ObstacleChance {
		return s.spawnKind(KindObstacle, speed)
	}
	return s.spawnKind(collectibleKinds[s.rng.Intn(len(collectibleKinds))], speed)
}

func (s *Spawner) spawnKind(kind Kind, speed float64) *Entity {
	var (
		size  config.Size
		group *physics.Group
		y     float64
	)

	switch {
	case kind.IsObstacle():
		size, group = s.cfg.ObstacleSize, s.obstacles
		y = s.groundY - s.cfg.ObstacleLift
	case kind == KindGreenApple:
		size, group = s.cfg.CollectibleSize, s.collectibles
		y = s.groundY - highBandLift - s.rng.Float64()*highBandRange
	default:
		size, group = s.cfg.CollectibleSize, s.collectibles
		y = s.groundY - defaultBandLift - s.rng.Float64()*defaultBandRange
	}

	// Placement is by visual center; bodies are anchored top-left.
	body := physics.NewBody(s.spawnX-size.W/2, y-size.H/2, size.W, size.H)
	body.Vel = mgl64.Vec2{-speed * s.unit, 0}
	body.AllowGravity = false

	if kind.IsObstacle() {
		body.SetCircle(size.W*obstacleRadius, size.W*obstacleOffset, size.H*obstacleOffset)
	} else {
		body.SetCircle(size.W*collectibleRadius, size.W*collectibleOffset, size.H*collectibleOffset)
	}

	e := &Entity{Kind: kind, Body: body}
	body.Data = e
	group.Add(body)
	s.spawned++
	return e
}

// Cleanup destroys every entity whose center has passed the off-screen
// threshold and returns how many were removed.
func (s *Spawner) Cleanup() int {
	n := 0
	for _, g := range []*physics.Group{s.obstacles, s.collectibles} {
		for _, b := range g.Bodies() {
			if b.Center().X() < s.cfg.OffscreenThreshold {
				b.Destroy()
				n++
			}
		}
	}
	s.cleaned += n
	return n
}

// Consume destroys an entity after a collision.
func (s *Spawner) Consume(e *Entity) {
	e.Body.Destroy()
}

// Obstacles returns the obstacle group for overlap registration.
func (s *Spawner) Obstacles() *physics.Group {
	return s.obstacles
}

// Collectibles returns the collectible group for overlap registration.
func (s *Spawner) Collectibles() *physics.Group {
	return s.collectibles
}

// Entities returns every live entity, obstacles first.
func (s *Spawner) Entities() []*Entity {
	obs := s.obstacles.Bodies()
	col := s.collectibles.Bodies()
	out := make([]*Entity, 0, len(obs)+len(col))
	for _, b := range obs {
		out = append(out, entityOf(b))
	}
	for _, b := range col {
		out = append(out, entityOf(b))
	}
	return out
}

// Spawned returns how many entities were created.
func (s *Spawner) Spawned() int {
	return s.spawned
}

// CleanedUp returns how many entities were removed off-screen.
func (s *Spawner) CleanedUp() int {
	return s.cleaned
}

package runner

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-runner/internal/physics"
)

// Kind identifies what a spawned entity is.
type Kind int

const (
	KindObstacle   Kind = iota // Red apple, always on the ground line
	KindHeart                  // Bonus score
	KindRose                   // Decorative bonus score
	KindChocolate              // Heal
	KindGreenApple             // Heal, only reachable by jumping
)

// collectibleKinds lists every collectible kind, drawn uniformly.
var collectibleKinds = []Kind{KindHeart, KindRose, KindChocolate, KindGreenApple}

// String returns the asset-style name of the kind.
func (k Kind) String() string {
	switch k {
	case KindObstacle:
		return "apple_red"
	case KindHeart:
		return "heart"
	case KindRose:
		return "rose"
	case KindChocolate:
		return "chocolate"
	case KindGreenApple:
		return "apple_green"
	default:
		return "unknown"
	}
}

// IsObstacle reports whether touching the entity causes damage.
func (k Kind) IsObstacle() bool {
	return k == KindObstacle
}

// Heals reports whether collecting the entity restores health instead of
// adding score.
func (k Kind) Heals() bool {
	return k == KindChocolate || k == KindGreenApple
}

// Entity is a spawned obstacle or collectible. Motion and collision live in
// the physics body; the entity only adds what the loop needs to react.
type Entity struct {
	Kind Kind
	Body *physics.Body
}

var _ physics.Collider = (*Entity)(nil)

// Footprint implements physics.Collider.
func (e *Entity) Footprint() physics.Footprint {
	return e.Body.Footprint()
}

// Velocity implements physics.Collider.
func (e *Entity) Velocity() mgl64.Vec2 {
	return e.Body.Velocity()
}

// Center returns the center of the entity's visual bounds.
func (e *Entity) Center() mgl64.Vec2 {
	return e.Body.Center()
}

// Consumed reports whether the entity was destroyed.
func (e *Entity) Consumed() bool {
	return e.Body.Removed()
}

func entityOf(b *physics.Body) *Entity {
	e, _ := b.Data.(*Entity)
	return e
}

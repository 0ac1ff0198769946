// Package physics is a small arcade physics service: gravity integration,
// one-way landing on static groups and overlap callbacks. It performs naive
// pairwise checks; the runner never has more than a few dozen bodies.
package physics

import "github.com/go-gl/mathgl/mgl64"

// Shape selects how a body's collision footprint is computed.
type Shape int

const (
	ShapeBox Shape = iota
	ShapeCircle
)

// Footprint is the collision region of a body in world coordinates.
type Footprint struct {
	Shape  Shape
	Min    mgl64.Vec2 // Box top-left
	Max    mgl64.Vec2 // Box bottom-right
	Center mgl64.Vec2 // Circle center
	Radius float64
}

// Collider is the capability shared by every simulated entity: a collision
// footprint and a velocity.
type Collider interface {
	Footprint() Footprint
	Velocity() mgl64.Vec2
}

// Body is a simulated rectangle with an optional tighter hitbox.
// Pos is the top-left corner of the visual bounds.
type Body struct {
	Pos          mgl64.Vec2
	Size         mgl64.Vec2 // Visual bounds
	Vel          mgl64.Vec2 // World units per second
	AllowGravity bool
	Immovable    bool
	TouchingDown bool // Set by the world when resting on a collider group

	shape     Shape
	hitOffset mgl64.Vec2
	hitSize   mgl64.Vec2
	radius    float64
	prevPos   mgl64.Vec2
	removed   bool

	// Data lets owners map a body back to their own record.
	Data any
}

// NewBody creates a body whose hitbox equals its visual bounds.
func NewBody(x, y, w, h float64) *Body {
	return &Body{
		Pos:     mgl64.Vec2{x, y},
		Size:    mgl64.Vec2{w, h},
		hitSize: mgl64.Vec2{w, h},
		prevPos: mgl64.Vec2{x, y},
	}
}

// SetBox sets a rectangular hitbox relative to the visual top-left.
func (b *Body) SetBox(w, h, offX, offY float64) {
	b.shape = ShapeBox
	b.hitSize = mgl64.Vec2{w, h}
	b.hitOffset = mgl64.Vec2{offX, offY}
}

// SetCircle sets a circular hitbox of radius r whose bounding square starts
// at (offX, offY) relative to the visual top-left.
func (b *Body) SetCircle(r, offX, offY float64) {
	b.shape = ShapeCircle
	b.radius = r
	b.hitOffset = mgl64.Vec2{offX, offY}
}

// Footprint returns the current collision region.
func (b *Body) Footprint() Footprint {
	origin := b.Pos.Add(b.hitOffset)
	if b.shape == ShapeCircle {
		return Footprint{
			Shape:  ShapeCircle,
			Center: origin.Add(mgl64.Vec2{b.radius, b.radius}),
			Radius: b.radius,
		}
	}
	return Footprint{
		Shape: ShapeBox,
		Min:   origin,
		Max:   origin.Add(b.hitSize),
	}
}

// Velocity returns the body's velocity.
func (b *Body) Velocity() mgl64.Vec2 {
	return b.Vel
}

// Center returns the center of the visual bounds.
func (b *Body) Center() mgl64.Vec2 {
	return b.Pos.Add(b.Size.Mul(0.5))
}

// Right returns the right edge of the visual bounds.
func (b *Body) Right() float64 {
	return b.Pos.X() + b.Size.X()
}

// Destroy marks the body for removal from its world and groups.
func (b *Body) Destroy() {
	b.removed = true
}

// Removed reports whether Destroy was called.
func (b *Body) Removed() bool {
	return b.removed
}

// Overlaps reports whether two footprints intersect. Touching edges do not
// count as overlap.
func Overlaps(a, b Footprint) bool {
	switch {
	case a.Shape == ShapeBox && b.Shape == ShapeBox:
		return a.Min.X() < b.Max.X() && b.Min.X() < a.Max.X() &&
			a.Min.Y() < b.Max.Y() && b.Min.Y() < a.Max.Y()
	case a.Shape == ShapeCircle && b.Shape == ShapeCircle:
		r := a.Radius + b.Radius
		return a.Center.Sub(b.Center).LenSqr() < r*r
	case a.Shape == ShapeCircle:
		return boxCircle(b, a)
	default:
		return boxCircle(a, b)
	}
}

func boxCircle(box, circle Footprint) bool {
	nearest := mgl64.Vec2{
		mgl64.Clamp(circle.Center.X(), box.Min.X(), box.Max.X()),
		mgl64.Clamp(circle.Center.Y(), box.Min.Y(), box.Max.Y()),
	}
	return circle.Center.Sub(nearest).LenSqr() < circle.Radius*circle.Radius
}

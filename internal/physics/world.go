package physics

// Group is an ordered set of bodies registered with a world.
type Group struct {
	world  *World
	bodies []*Body
}

// Add registers the body with the group and its world.
func (g *Group) Add(b *Body) {
	g.bodies = append(g.bodies, b)
	g.world.Add(b)
}

// Bodies returns the live bodies. The slice must not be modified.
func (g *Group) Bodies() []*Body {
	g.compact()
	return g.bodies
}

// Len returns the number of live bodies.
func (g *Group) Len() int {
	return len(g.Bodies())
}

func (g *Group) compact() {
	g.bodies = compact(g.bodies)
}

// OverlapFunc receives the single body and the group member it overlaps.
type OverlapFunc func(a, b *Body)

type collider struct {
	body  *Body
	group *Group
}

type overlap struct {
	body  *Body
	group *Group
	fn    OverlapFunc
}

// World integrates bodies and reports contacts.
type World struct {
	gravity   float64
	bodies    []*Body
	colliders []collider
	overlaps  []overlap
	paused    bool
	steps     int
}

// NewWorld creates a world with the given downward gravity (units/s²).
func NewWorld(gravity float64) *World {
	return &World{gravity: gravity}
}

// Add registers a body for integration.
func (w *World) Add(b *Body) {
	b.prevPos = b.Pos
	w.bodies = append(w.bodies, b)
}

// NewGroup creates an empty group bound to this world.
func (w *World) NewGroup() *Group {
	return &Group{world: w}
}

// Collide makes body land on top of any member of group.
func (w *World) Collide(body *Body, group *Group) {
	w.colliders = append(w.colliders, collider{body: body, group: group})
}

// Overlap calls fn for every member of group whose footprint overlaps body
// during a step.
func (w *World) Overlap(body *Body, group *Group, fn OverlapFunc) {
	w.overlaps = append(w.overlaps, overlap{body: body, group: group, fn: fn})
}

// Pause suspends integration and contact detection.
func (w *World) Pause() {
	w.paused = true
}

// Resume re-enables stepping.
func (w *World) Resume() {
	w.paused = false
}

// Paused reports whether the world is paused.
func (w *World) Paused() bool {
	return w.paused
}

// Steps returns how many non-paused steps have run.
func (w *World) Steps() int {
	return w.steps
}

// Step advances the simulation by dt seconds. Nothing happens while paused.
func (w *World) Step(dt float64) {
	if w.paused || dt <= 0 {
		return
	}
	w.steps++
	w.bodies = compact(w.bodies)

	for _, b := range w.bodies {
		b.prevPos = b.Pos
		if b.Immovable {
			continue
		}
		if b.AllowGravity {
			b.Vel[1] += w.gravity * dt
		}
		b.Pos = b.Pos.Add(b.Vel.Mul(dt))
		b.TouchingDown = false
	}

	for _, c := range w.colliders {
		if c.body.removed {
			continue
		}
		for _, other := range c.group.Bodies() {
			land(c.body, other)
		}
	}

	for _, o := range w.overlaps {
		if o.body.removed {
			continue
		}
		for _, other := range o.group.Bodies() {
			if other.removed || o.body.removed {
				continue
			}
			if Overlaps(o.body.Footprint(), other.Footprint()) {
				o.fn(o.body, other)
			}
		}
	}
}

// land resolves a falling body onto the top surface of a static one. Only
// contacts where the body was above the surface before this step count, so a
// body that has fallen past the top keeps falling.
func land(b, ground *Body) {
	if ground.removed || b.Vel.Y() < 0 {
		return
	}
	fb := b.Footprint()
	fg := ground.Footprint()
	if !Overlaps(fb, fg) {
		return
	}
	prevBottom := fb.Max.Y() - (b.Pos.Y() - b.prevPos.Y())
	top := fg.Min.Y()
	if prevBottom > top+landingSlop {
		return
	}
	b.Pos[1] -= fb.Max.Y() - top
	b.Vel[1] = 0
	b.TouchingDown = true
}

// landingSlop absorbs float error when a resting body is re-snapped each step.
const landingSlop = 0.5

func compact(bodies []*Body) []*Body {
	live := bodies[:0]
	for _, b := range bodies {
		if !b.removed {
			live = append(live, b)
		}
	}
	for i := len(live); i < len(bodies); i++ {
		bodies[i] = nil
	}
	return live
}

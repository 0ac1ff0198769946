package runner

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/physics"
)

// Gap records one interval of missing ground.
type Gap struct {
	Start   float64 // Cursor position when the gap opened
	Width   float64
	MaxSafe float64 // Jump limit at the speed the gap was cut for
	Speed   float64
	Score   int
}

// Track is the endless ground strip. It owns every ground segment and a
// cursor (nextX) that marks where the next segment would start. Segments and
// cursor scroll left together by the current speed each frame.
type Track struct {
	ground config.GroundConfig
	gaps   config.GapConfig
	phys   config.PhysicsConfig

	groundY   float64
	rightEdge float64

	rng      *rand.Rand
	segments *physics.Group

	nextX          float64
	awaitingGapEnd bool

	placed     int
	gapCount   int
	suppressed int
	lastGap    Gap
	onGap      func(Gap)
}

// NewTrack creates a track and fills the visible area with ground.
func NewTrack(cfg config.RunnerConfig, world *physics.World, rng *rand.Rand) *Track {
	t := &Track{
		ground:    cfg.Ground,
		gaps:      cfg.Gaps,
		phys:      cfg.Physics,
		groundY:   cfg.GroundY(),
		rightEdge: cfg.RightEdge(),
		rng:       rng,
		segments:  world.NewGroup(),
	}

	// Start one segment behind the left edge so the first frames never show
	// a hole.
	t.nextX = -t.ground.Width
	for t.nextX < t.rightEdge+t.ground.Width {
		t.placeSegment()
	}
	return t
}

// OnGap registers a callback invoked each time a gap is cut.
func (t *Track) OnGap(fn func(Gap)) {
	t.onGap = fn
}

// MaxSafeGap returns the widest gap a perfectly timed jump clears at speed,
// scaled down by the safety margin. The result may be non-finite for a
// degenerate physics config; callers must check it against the segment width.
func MaxSafeGap(phys config.PhysicsConfig, gaps config.GapConfig, speed float64) float64 {
	jumpTime := 2 * math.Abs(phys.JumpVelocity) / phys.Gravity
	maxJumpDistance := speed * jumpTime * phys.FrameRate
	return maxJumpDistance * gaps.SafetyMargin
}

// Step scrolls the track by speed, drops segments that are far enough behind
// the left edge and, once the cursor nears the right edge, either places a
// segment or cuts a gap.
func (t *Track) Step(speed float64, score int) {
	limit := -t.ground.Width * t.ground.CleanupMultiplier
	for _, seg := range t.segments.Bodies() {
		seg.Pos[0] -= speed
		if seg.Pos.X() < limit {
			seg.Destroy()
		}
	}

	t.nextX -= speed
	if t.nextX >= t.rightEdge+t.ground.Width {
		return
	}

	if t.wantsGap(score) {
		maxSafe := MaxSafeGap(t.phys, t.gaps, speed)
		if gapAllowed(maxSafe, t.ground.Width) {
			t.cutGap(maxSafe, speed, score)
			return
		}
		t.suppressed++
	}
	t.placeSegment()
}

func (t *Track) wantsGap(score int) bool {
	if score < t.gaps.SafeZoneScore || t.awaitingGapEnd {
		return false
	}
	return t.rng.Float64() < t.gaps.Chance
}

func gapAllowed(maxSafe, width float64) bool {
	if math.IsNaN(maxSafe) || math.IsInf(maxSafe, 0) {
		return false
	}
	return width > 0 && maxSafe >= width
}

func (t *Track) cutGap(maxSafe, speed float64, score int) {
	width := t.ground.Width + t.rng.Float64()*(maxSafe-t.ground.Width)
	gap := Gap{
		Start:   t.nextX,
		Width:   width,
		MaxSafe: maxSafe,
		Speed:   speed,
		Score:   score,
	}
	t.nextX += width
	t.awaitingGapEnd = true
	t.gapCount++
	t.lastGap = gap
	if t.onGap != nil {
		t.onGap(gap)
	}
}

func (t *Track) placeSegment() {
	seg := physics.NewBody(t.nextX, t.groundY, t.ground.Width, t.ground.BodyHeight)
	seg.Immovable = true
	t.segments.Add(seg)

	t.nextX += t.ground.Width - t.ground.Overlap
	t.awaitingGapEnd = false
	t.placed++
}

// Group returns the segment group for collider registration.
func (t *Track) Group() *physics.Group {
	return t.segments
}

// Segments returns the live segments. The slice must not be modified.
func (t *Track) Segments() []*physics.Body {
	return t.segments.Bodies()
}

// NextX returns the cursor position.
func (t *Track) NextX() float64 {
	return t.nextX
}

// AwaitingGapEnd reports whether the last decision cut a gap.
func (t *Track) AwaitingGapEnd() bool {
	return t.awaitingGapEnd
}

// Placed returns how many segments were created, including the initial fill.
func (t *Track) Placed() int {
	return t.placed
}

// Gaps returns how many gaps were cut.
func (t *Track) Gaps() int {
	return t.gapCount
}

// Suppressed returns how many drawn gaps were dropped because the jump limit
// was below one segment width.
func (t *Track) Suppressed() int {
	return t.suppressed
}

// LastGap returns the most recent gap, if any.
func (t *Track) LastGap() (Gap, bool) {
	return t.lastGap, t.gapCount > 0
}

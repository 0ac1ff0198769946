// Package config provides YAML-based runner configuration loading and
// the score-driven difficulty model.
package config

// RunnerConfig holds every tunable of a run. One value is passed into the
// game at Reset; nothing reads package-level state during a run.
type RunnerConfig struct {
	Physics    PhysicsConfig    `yaml:"physics"`
	Viewport   ViewportConfig   `yaml:"viewport"`
	Ground     GroundConfig     `yaml:"ground"`
	Gaps       GapConfig        `yaml:"gaps"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Spawner    SpawnerConfig    `yaml:"spawner"`
	Player     PlayerConfig     `yaml:"player"`
	Health     HealthConfig     `yaml:"health"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Timing     TimingConfig     `yaml:"timing"`
	Events     EventsConfig     `yaml:"events"`
}

// PhysicsConfig defines gravity and jump parameters. Velocities are in world
// units per second; FrameRate converts per-frame speeds to per-second ones.
type PhysicsConfig struct {
	Gravity       float64 `yaml:"gravity"`
	JumpVelocity  float64 `yaml:"jump_velocity"` // Negative = upward
	MaxJumps      int     `yaml:"max_jumps"`
	FrameRate     float64 `yaml:"frame_rate"`
	FallTolerance float64 `yaml:"fall_tolerance"` // Distance below the ground line that counts as falling out
}

// ViewportConfig describes the visible world area.
type ViewportConfig struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	CameraZoom    float64 `yaml:"camera_zoom"`
	GroundYOffset float64 `yaml:"ground_y_offset"` // Ground line = Height - GroundYOffset
	BgParallax    float64 `yaml:"bg_parallax"`
	Debug         bool    `yaml:"debug"` // Track counters under the HUD
}

// GroundConfig defines ground segment geometry.
type GroundConfig struct {
	Width             float64 `yaml:"width"`
	Overlap           float64 `yaml:"overlap"`
	CleanupMultiplier float64 `yaml:"cleanup_multiplier"`
	BodyHeight        float64 `yaml:"body_height"`
}

// GapConfig controls gap generation.
type GapConfig struct {
	Chance        float64 `yaml:"chance"`
	SafetyMargin  float64 `yaml:"safety_margin"` // Fraction of the max jump distance
	SafeZoneScore int     `yaml:"safe_zone_score"`
}

// DifficultyConfig defines the stepped speed progression and the win target.
type DifficultyConfig struct {
	BaseSpeed float64 `yaml:"base_speed"` // World units per frame
	Increment float64 `yaml:"increment"`
	Threshold int     `yaml:"threshold"` // Speed rises each time score crosses a multiple of this
	WinScore  int     `yaml:"win_score"`
}

// Size is a width/height pair in world units.
type Size struct {
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// SpawnerConfig defines obstacle and collectible spawning.
type SpawnerConfig struct {
	IntervalMS         int     `yaml:"interval_ms"`
	XOffset            float64 `yaml:"x_offset"`
	ObstacleChance     float64 `yaml:"obstacle_chance"`
	ObstacleLift       float64 `yaml:"obstacle_lift"`
	OffscreenThreshold float64 `yaml:"offscreen_threshold"`
	ObstacleSize       Size    `yaml:"obstacle_size"`
	CollectibleSize    Size    `yaml:"collectible_size"`
}

// PlayerConfig defines the player sprite and its tighter hitbox.
type PlayerConfig struct {
	X             float64 `yaml:"x"`
	StartYOffset  float64 `yaml:"start_y_offset"` // Spawn height = viewport height - offset
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	HitboxW       float64 `yaml:"hitbox_w"` // Ratios of the sprite size
	HitboxH       float64 `yaml:"hitbox_h"`
	HitboxOffsetX float64 `yaml:"hitbox_offset_x"`
	HitboxOffsetY float64 `yaml:"hitbox_offset_y"`
}

// HealthConfig defines the energy meter.
type HealthConfig struct {
	Max    int `yaml:"max"`
	Damage int `yaml:"damage"`
	Heal   int `yaml:"heal"`
}

// ScoringConfig defines collectible rewards.
type ScoringConfig struct {
	Bonus int `yaml:"bonus"`
}

// TimingConfig defines delays of scheduled effects.
type TimingConfig struct {
	HandoffDelayMS int     `yaml:"handoff_delay_ms"`
	ShakeMS        int     `yaml:"shake_ms"`
	ShakeIntensity float64 `yaml:"shake_intensity"`
}

// EventsConfig sizes the collision event queue.
type EventsConfig struct {
	QueueSize int `yaml:"queue_size"`
}

// GroundY returns the y of the ground line.
func (c RunnerConfig) GroundY() float64 {
	return c.Viewport.Height - c.Viewport.GroundYOffset
}

// RightEdge returns the visible right edge accounting for camera zoom.
func (c RunnerConfig) RightEdge() float64 {
	if c.Viewport.CameraZoom <= 0 {
		return c.Viewport.Width
	}
	return c.Viewport.Width / c.Viewport.CameraZoom
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI string to a preset. Unknown values yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

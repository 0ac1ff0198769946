package config

import (
	_ "embed"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultRunnerConfig returns the hard-coded runner configuration. It matches
// defaults/runner.yaml and is the last fallback when no YAML can be parsed.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Physics: PhysicsConfig{
			Gravity:       1000,
			JumpVelocity:  -650,
			MaxJumps:      2,
			FrameRate:     60,
			FallTolerance: 100,
		},
		Viewport: ViewportConfig{
			Width:         800,
			Height:        600,
			CameraZoom:    0.8,
			GroundYOffset: 128,
			BgParallax:    0.2,
		},
		Ground: GroundConfig{
			Width:             190,
			Overlap:           2,
			CleanupMultiplier: 2,
			BodyHeight:        100,
		},
		Gaps: GapConfig{
			Chance:        0.2,
			SafetyMargin:  0.7,
			SafeZoneScore: 500,
		},
		Difficulty: DifficultyConfig{
			BaseSpeed: 5,
			Increment: 0.1,
			Threshold: 500,
			WinScore:  10000,
		},
		Spawner: SpawnerConfig{
			IntervalMS:         1500,
			XOffset:            300,
			ObstacleChance:     0.4,
			ObstacleLift:       20,
			OffscreenThreshold: -200,
			ObstacleSize:       Size{W: 60, H: 60},
			CollectibleSize:    Size{W: 50, H: 50},
		},
		Player: PlayerConfig{
			X:             100,
			StartYOffset:  200,
			Width:         100,
			Height:        160,
			HitboxW:       0.25,
			HitboxH:       0.6,
			HitboxOffsetX: 0.37,
			HitboxOffsetY: 0.2,
		},
		Health: HealthConfig{
			Max:    100,
			Damage: 25,
			Heal:   10,
		},
		Scoring: ScoringConfig{
			Bonus: 100,
		},
		Timing: TimingConfig{
			HandoffDelayMS: 1000,
			ShakeMS:        200,
			ShakeIntensity: 0.01,
		},
		Events: EventsConfig{
			QueueSize: 64,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultRunnerYAML
}

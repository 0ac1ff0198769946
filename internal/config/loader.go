package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadRunner loads the runner configuration.
// Search order: customPath -> ~/.arcade/configs/runner.yaml -> ./configs/runner.yaml -> embedded default.
// Files are applied on top of the defaults, so a partial file only overrides
// the keys it names.
func LoadRunner(customPath string) (RunnerConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultRunnerConfig(), fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return DefaultRunnerConfig(), fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("runner.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "runner.yaml")); err == nil {
		if cfg, err := parse(data); err == nil {
			return cfg, nil
		}
	}

	cfg, err := parse(defaultRunnerYAML)
	if err != nil {
		return DefaultRunnerConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parse decodes YAML over the defaults and validates the result.
func parse(data []byte) (RunnerConfig, error) {
	cfg := DefaultRunnerConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// Validate reports the first setting that would make a run meaningless.
// Settings that only degrade gap generation (e.g. a tiny jump arc) are
// accepted; the generator suppresses gaps for them at runtime.
func (c RunnerConfig) Validate() error {
	switch {
	case c.Physics.FrameRate <= 0:
		return fmt.Errorf("config: physics.frame_rate must be positive, got %v", c.Physics.FrameRate)
	case c.Physics.Gravity <= 0:
		return fmt.Errorf("config: physics.gravity must be positive, got %v", c.Physics.Gravity)
	case c.Physics.MaxJumps < 1:
		return fmt.Errorf("config: physics.max_jumps must be at least 1, got %d", c.Physics.MaxJumps)
	case c.Ground.Width <= 0:
		return fmt.Errorf("config: ground.width must be positive, got %v", c.Ground.Width)
	case c.Ground.Overlap < 0 || c.Ground.Overlap >= c.Ground.Width:
		return fmt.Errorf("config: ground.overlap must be in [0, width), got %v", c.Ground.Overlap)
	case c.Gaps.Chance < 0 || c.Gaps.Chance > 1:
		return fmt.Errorf("config: gaps.chance must be in [0, 1], got %v", c.Gaps.Chance)
	case c.Gaps.SafetyMargin <= 0 || c.Gaps.SafetyMargin > 1:
		return fmt.Errorf("config: gaps.safety_margin must be in (0, 1], got %v", c.Gaps.SafetyMargin)
	case c.Spawner.ObstacleChance < 0 || c.Spawner.ObstacleChance > 1:
		return fmt.Errorf("config: spawner.obstacle_chance must be in [0, 1], got %v", c.Spawner.ObstacleChance)
	case c.Spawner.IntervalMS <= 0:
		return fmt.Errorf("config: spawner.interval_ms must be positive, got %d", c.Spawner.IntervalMS)
	case c.Difficulty.BaseSpeed < 0 || c.Difficulty.Increment < 0:
		return fmt.Errorf("config: difficulty speeds must not be negative")
	case c.Difficulty.WinScore <= 0:
		return fmt.Errorf("config: difficulty.win_score must be positive, got %d", c.Difficulty.WinScore)
	case c.Health.Max <= 0 || c.Health.Max > 100:
		return fmt.Errorf("config: health.max must be in (0, 100], got %d", c.Health.Max)
	case c.Health.Damage < 0:
		return fmt.Errorf("config: health.damage must not be negative, got %d", c.Health.Damage)
	case c.Health.Heal < 0:
		return fmt.Errorf("config: health.heal must not be negative, got %d", c.Health.Heal)
	case c.Events.QueueSize <= 0:
		return fmt.Errorf("config: events.queue_size must be positive, got %d", c.Events.QueueSize)
	}
	return nil
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *RunnerConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Difficulty.BaseSpeed *= 0.8
		cfg.Difficulty.Increment *= 0.5
		cfg.Health.Damage = cfg.Health.Damage * 4 / 5
	case DifficultyHard:
		cfg.Difficulty.BaseSpeed *= 1.2
		cfg.Difficulty.Increment *= 1.5
		cfg.Gaps.SafeZoneScore /= 2
	case DifficultyFixed:
		cfg.Difficulty.Increment = 0
	}
}

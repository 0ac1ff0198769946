package config

// DifficultyManager maps score to scroll speed. Speed rises by a fixed
// increment each time the score crosses a multiple of the threshold and
// never decreases within a run.
type DifficultyManager struct {
	cfg   DifficultyConfig
	tier  int
	speed float64
}

// NewDifficultyManager creates a manager starting at the base speed.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:   cfg,
		speed: cfg.BaseSpeed,
	}
}

// SpeedAt returns the speed for a score without touching manager state.
func (d *DifficultyManager) SpeedAt(score int) float64 {
	return d.cfg.BaseSpeed + float64(d.tierOf(score))*d.cfg.Increment
}

// Update advances the manager to the given score and reports whether the
// speed increased. Lower scores than previously seen are ignored.
func (d *DifficultyManager) Update(score int) bool {
	tier := d.tierOf(score)
	if tier <= d.tier {
		return false
	}
	d.tier = tier
	next := d.SpeedAt(score)
	if next <= d.speed {
		return false
	}
	d.speed = next
	return true
}

// Speed returns the current scroll speed in world units per frame.
func (d *DifficultyManager) Speed() float64 {
	return d.speed
}

// IsEnabled returns whether speed progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Threshold > 0 && d.cfg.Increment > 0
}

func (d *DifficultyManager) tierOf(score int) int {
	if d.cfg.Threshold <= 0 || score <= 0 {
		return 0
	}
	return score / d.cfg.Threshold
}

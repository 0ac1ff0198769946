package config

import (
	"math"
	"testing"
)

func TestDifficultySpeedStepsOnceAtThreshold(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{BaseSpeed: 5, Increment: 0.1, Threshold: 500})

	raised := 0
	for score := 1; score <= 999; score++ {
		if d.Update(score) {
			raised++
			if score != 500 {
				t.Errorf("speed raised at score %d, expected 500", score)
			}
		}
	}

	if raised != 1 {
		t.Fatalf("speed raised %d times below 1000, expected once", raised)
	}
	if math.Abs(d.Speed()-5.1) > 1e-9 {
		t.Errorf("Speed() = %v, expected 5.1", d.Speed())
	}
}

func TestDifficultyBonusJumpOverThreshold(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{BaseSpeed: 5, Increment: 0.1, Threshold: 500})

	d.Update(450)
	if !d.Update(1050) {
		t.Fatal("crossing two multiples at once should raise speed")
	}
	if math.Abs(d.Speed()-5.2) > 1e-9 {
		t.Errorf("Speed() = %v, expected 5.2", d.Speed())
	}
}

func TestDifficultyNeverDecreases(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{BaseSpeed: 5, Increment: 0.1, Threshold: 500})
	d.Update(1500)
	before := d.Speed()

	if d.Update(200) {
		t.Error("lower score should not report a raise")
	}
	if d.Speed() != before {
		t.Errorf("speed changed from %v to %v on lower score", before, d.Speed())
	}
}

func TestDifficultyDisabled(t *testing.T) {
	tests := []struct {
		name string
		cfg  DifficultyConfig
	}{
		{"zero threshold", DifficultyConfig{BaseSpeed: 5, Increment: 0.1}},
		{"zero increment", DifficultyConfig{BaseSpeed: 5, Threshold: 500}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := NewDifficultyManager(tc.cfg)
			d.Update(10000)
			if d.Speed() != 5 {
				t.Errorf("Speed() = %v, expected base 5", d.Speed())
			}
			if d.IsEnabled() {
				t.Error("IsEnabled() should be false")
			}
		})
	}
}

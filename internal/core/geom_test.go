package core

import "testing"

func TestRectClip(t *testing.T) {
	tests := []struct {
		name  string
		in    Rect
		want  Rect
		empty bool
	}{
		{"inside", NewRect(2, 2, 4, 3), NewRect(2, 2, 4, 3), false},
		{"left overhang", NewRect(-3, 1, 5, 2), NewRect(0, 1, 2, 2), false},
		{"bottom right overhang", NewRect(8, 8, 5, 5), NewRect(8, 8, 2, 2), false},
		{"fully outside", NewRect(20, 0, 3, 3), Rect{X: 20, Y: 0}, true},
		{"fully above", NewRect(0, -10, 3, 3), Rect{Y: 0, W: 3}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.in.Clip(10, 10)
			if got.Empty() != tc.empty {
				t.Fatalf("Clip(%+v).Empty() = %v, want %v", tc.in, got.Empty(), tc.empty)
			}
			if !tc.empty && got != tc.want {
				t.Errorf("Clip(%+v) = %+v, want %+v", tc.in, got, tc.want)
			}
		})
	}
}

func TestCentered(t *testing.T) {
	r := Centered(80, 24, 20, 5)
	if r.X != 30 || r.Y != 9 || r.Right() != 50 || r.Bottom() != 14 {
		t.Errorf("Centered() = %+v", r)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 100, 0},
		{100, 0, 100, 100},
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.lo, tc.hi); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.lo, tc.hi, got, tc.expected)
		}
	}

	if got := Clamp(1.5, 0.0, 1.0); got != 1 {
		t.Errorf("Clamp(1.5, 0, 1) = %f, expected 1", got)
	}
}

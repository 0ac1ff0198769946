package core

import "testing"

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	if !f.Empty() {
		t.Fatal("new frame not empty")
	}

	f.Set(ActionJump)
	f.Set(ActionJump)
	f.Set(ActionPause)
	f.Set(ActionNone)

	if !f.Has(ActionJump) || !f.Has(ActionPause) {
		t.Error("set actions missing")
	}
	if f.Has(ActionQuit) || f.Has(ActionNone) {
		t.Error("unset action reported")
	}

	f.Clear()
	if !f.Empty() || f.Has(ActionJump) {
		t.Error("Clear() left actions behind")
	}
}

func TestActionString(t *testing.T) {
	tests := []struct {
		a    Action
		want string
	}{
		{ActionJump, "Jump"},
		{ActionPause, "Pause"},
		{Action(200), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.a.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.a, got, tt.want)
		}
	}
}

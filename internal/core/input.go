package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action uint8

const (
	ActionNone    Action = iota
	ActionJump           // Space, W, Up
	ActionConfirm        // Enter
	ActionBack           // B, Escape
	ActionRestart        // R, play again after a run ends
	ActionQuit           // Q, Ctrl+C
	ActionPause          // P
	actionCount
)

var actionNames = [actionCount]string{
	ActionNone:    "None",
	ActionJump:    "Jump",
	ActionConfirm: "Confirm",
	ActionBack:    "Back",
	ActionRestart: "Restart",
	ActionQuit:    "Quit",
	ActionPause:   "Pause",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if a >= actionCount {
		return "Unknown"
	}
	return actionNames[a]
}

// InputFrame is the set of actions pressed since the previous tick. Several
// presses of the same key within one tick count once.
type InputFrame struct {
	bits uint16
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if a == ActionNone || a >= actionCount {
		return
	}
	f.bits |= 1 << a
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return a < actionCount && f.bits&(1<<a) != 0
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	return f.bits == 0
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	f.bits = 0
}

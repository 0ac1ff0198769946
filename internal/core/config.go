package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// Outcome describes how a finished run ended.
type Outcome string

const (
	OutcomeNone Outcome = ""
	OutcomeLoss Outcome = "loss"
	OutcomeWin  Outcome = "win"
)

// GameState is the platform-facing summary of a run, returned by Game.State().
type GameState struct {
	Score     int
	HighScore int
	Health    int
	Paused    bool
	Over      bool    // A terminal mode was reached (loss or win)
	Outcome   Outcome // Set together with Over
	HandedOff bool    // The delayed result hand-off has fired
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}

// Result is handed to the presentation layer once a run has ended.
type Result struct {
	FinalScore int     `json:"finalScore"`
	Outcome    Outcome `json:"outcome"`
}

// Won reports whether the run ended by reaching the target score.
func (r Result) Won() bool {
	return r.Outcome == OutcomeWin
}

// HighScoreStore persists the best score of one game. Failures are non-fatal
// to callers: a read error counts as zero and a failed write is dropped.
type HighScoreStore interface {
	HighScore() (int, error)
	SetHighScore(score int) error
}

// Package diag carries gameplay diagnostics out of the game loop. Sinks are
// fire-and-forget: they never block the caller and never report failures.
package diag

import (
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Level is the severity of a diagnostic entry.
type Level string

const (
	LevelInfo    Level = "INFO"
	LevelWarn    Level = "WARN"
	LevelError   Level = "ERROR"
	LevelSuccess Level = "SUCCESS"
)

// ParseLevel maps a case-insensitive name to a level, defaulting to info.
func ParseLevel(s string) Level {
	switch Level(strings.ToUpper(strings.TrimSpace(s))) {
	case LevelWarn:
		return LevelWarn
	case LevelError:
		return LevelError
	case LevelSuccess:
		return LevelSuccess
	default:
		return LevelInfo
	}
}

// Entry is one diagnostic record as sent over the wire.
type Entry struct {
	Level   Level     `json:"level"`
	Message string    `json:"message"`
	Source  string    `json:"source"`
	Time    time.Time `json:"time,omitempty"`
}

// Sink receives diagnostic entries.
type Sink interface {
	Log(level Level, message, source string)
}

// Nop discards everything.
type Nop struct{}

// Log implements Sink.
func (Nop) Log(Level, string, string) {}

// Multi fans an entry out to several sinks.
type Multi []Sink

// Log implements Sink.
func (m Multi) Log(level Level, message, source string) {
	for _, s := range m {
		Safe(s).Log(level, message, source)
	}
}

type safeSink struct {
	next Sink
}

// Safe wraps a sink so that a panic inside it is swallowed.
func Safe(s Sink) Sink {
	if s == nil {
		return Nop{}
	}
	if already, ok := s.(safeSink); ok {
		return already
	}
	return safeSink{next: s}
}

func (s safeSink) Log(level Level, message, source string) {
	defer func() {
		_ = recover()
	}()
	s.next.Log(level, message, source)
}

// ConsoleSink writes entries to a charmbracelet logger.
type ConsoleSink struct {
	logger *log.Logger
}

// NewConsoleSink creates a sink backed by logger.
func NewConsoleSink(logger *log.Logger) *ConsoleSink {
	return &ConsoleSink{logger: logger}
}

// Log implements Sink.
func (c *ConsoleSink) Log(level Level, message, source string) {
	switch level {
	case LevelWarn:
		c.logger.Warn(message, "source", source)
	case LevelError:
		c.logger.Error(message, "source", source)
	case LevelSuccess:
		c.logger.Info(message, "source", source, "success", true)
	default:
		c.logger.Info(message, "source", source)
	}
}

// Recorder keeps entries in memory. Used by tests and the debug HUD.
type Recorder struct {
	Entries []Entry
}

// Log implements Sink.
func (r *Recorder) Log(level Level, message, source string) {
	r.Entries = append(r.Entries, Entry{Level: level, Message: message, Source: source})
}

// Count returns how many entries have the given level.
func (r *Recorder) Count(level Level) int {
	n := 0
	for _, e := range r.Entries {
		if e.Level == level {
			n++
		}
	}
	return n
}

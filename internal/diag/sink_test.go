package diag

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

type panicSink struct{}

func (panicSink) Log(Level, string, string) { panic("boom") }

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"info", LevelInfo},
		{"WARN", LevelWarn},
		{" error ", LevelError},
		{"Success", LevelSuccess},
		{"", LevelInfo},
		{"trace", LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSafeSwallowsPanics(t *testing.T) {
	s := Safe(panicSink{})
	s.Log(LevelError, "should not escape", "test")

	if _, ok := Safe(nil).(Nop); !ok {
		t.Errorf("Safe(nil) should be Nop")
	}
}

func TestMultiContinuesAfterPanic(t *testing.T) {
	rec := &Recorder{}
	m := Multi{panicSink{}, rec}

	m.Log(LevelWarn, "queue full", "events")

	if len(rec.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(rec.Entries))
	}
	if rec.Count(LevelWarn) != 1 {
		t.Errorf("expected WARN entry, got %+v", rec.Entries[0])
	}
}

func TestConsoleSink(t *testing.T) {
	var buf bytes.Buffer
	s := NewConsoleSink(log.New(&buf))

	s.Log(LevelWarn, "gap skipped", "track")
	s.Log(LevelSuccess, "win", "game")

	out := buf.String()
	for _, want := range []string{"gap skipped", "source=track", "win", "success=true"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

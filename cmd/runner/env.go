package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/diag"
	"github.com/vovakirdan/tui-runner/internal/platform/tui"
	"github.com/vovakirdan/tui-runner/internal/storage"
)

// httpFlushTimeout bounds how long exit waits for queued diagnostics.
const httpFlushTimeout = 2 * time.Second

// appEnv holds the services opened for one command.
type appEnv struct {
	store   *storage.Store
	sink    diag.Sink
	closers []func()
}

// openEnv opens the scores database and builds the diagnostic sink. The
// terminal belongs to the TUI, so local diagnostics go to logTo.
func openEnv(logTo *log.Logger) *appEnv {
	env := &appEnv{}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
	} else {
		env.store = store
		env.closers = append(env.closers, func() { store.Close() })
	}

	sinks := diag.Multi{}
	if logTo != nil {
		sinks = append(sinks, diag.NewConsoleSink(logTo))
	}
	if flagLogURL != "" {
		hs := diag.NewHTTPSink(flagLogURL)
		sinks = append(sinks, hs)
		env.closers = append(env.closers, func() { hs.Close(httpFlushTimeout) })
	}
	env.sink = sinks

	return env
}

// tuiEnv returns the services handed to the terminal UI.
func (e *appEnv) tuiEnv() tui.Env {
	return tui.Env{
		Store:  e.store,
		Sink:   e.sink,
		Preset: flagDifficulty,
	}
}

// Close releases everything in reverse order of opening.
func (e *appEnv) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		e.closers[i]()
	}
}

// openTUIEnv is openEnv for commands that hand the terminal to Bubble Tea:
// local diagnostics go to ~/.arcade/runner.log instead of the screen.
func openTUIEnv() *appEnv {
	logger, closeLog := fileLogger()
	env := openEnv(logger)
	env.closers = append(env.closers, closeLog)
	return env
}

// fileLogger returns a logger writing to ~/.arcade/runner.log, or nil when
// the file cannot be opened.
func fileLogger() (*log.Logger, func()) {
	noop := func() {}
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, noop
	}
	dir := filepath.Join(home, ".arcade")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, noop
	}
	f, err := os.OpenFile(filepath.Join(dir, "runner.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, noop
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "runner",
	})
	return logger, func() { f.Close() }
}

// stderrLogger returns the process logger used by the server commands.
func stderrLogger(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
}

// runtimeConfig sizes the run to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

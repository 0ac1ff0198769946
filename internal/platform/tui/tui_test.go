package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/diag"
	"github.com/vovakirdan/tui-runner/internal/storage"
)

// stubGame ends after finishAt steps and hands off one step later.
type stubGame struct {
	finishAt int
	outcome  core.Outcome
	steps    int
	resets   int
	store    core.HighScoreStore
	preset   string
}

func (g *stubGame) ID() string    { return "stub" }
func (g *stubGame) Title() string { return "Stub Run" }

func (g *stubGame) Reset(core.RuntimeConfig) {
	g.steps = 0
	g.resets++
}

func (g *stubGame) Step(core.InputFrame) core.StepResult {
	g.steps++
	return core.StepResult{State: g.State()}
}

func (g *stubGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, "stub")
}

func (g *stubGame) State() core.GameState {
	st := core.GameState{Score: g.steps * 10}
	if g.steps >= g.finishAt {
		st.Over = true
		st.Outcome = g.outcome
	}
	return st
}

func (g *stubGame) Result() (core.Result, bool) {
	if g.steps <= g.finishAt {
		return core.Result{}, false
	}
	return core.Result{FinalScore: g.finishAt * 10, Outcome: g.outcome}, true
}

func (g *stubGame) Attach(store core.HighScoreStore, _ diag.Sink) { g.store = store }
func (g *stubGame) SetDifficulty(preset string)                  { g.preset = preset }

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func tick(t *testing.T, m GameModel) GameModel {
	t.Helper()
	next, _ := m.Update(TickMsg(time.Now()))
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return gm
}

func press(t *testing.T, m GameModel, k string) (GameModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(keyMsg(k))
	return next.(GameModel), cmd
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		key    string
		action core.Action
		quit   bool
	}{
		{" ", core.ActionJump, false},
		{"w", core.ActionJump, false},
		{"up", core.ActionJump, false},
		{"p", core.ActionPause, false},
		{"esc", core.ActionBack, false},
		{"r", core.ActionRestart, false},
		{"enter", core.ActionConfirm, false},
		{"q", core.ActionQuit, true},
		{"ctrl+c", core.ActionQuit, true},
		{"x", core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			action, quit := km.MapKey(keyMsg(tt.key))
			if action != tt.action || quit != tt.quit {
				t.Errorf("MapKey(%q) = %v, %v; want %v, %v", tt.key, action, quit, tt.action, tt.quit)
			}
		})
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		key  string
		want MenuAction
	}{
		{"up", MenuActionUp},
		{"j", MenuActionDown},
		{"h", MenuActionLeft},
		{"l", MenuActionRight},
		{"enter", MenuActionSelect},
		{"esc", MenuActionBack},
		{"tab", MenuActionScoreboard},
		{"q", MenuActionQuit},
		{"x", MenuActionNone},
	}

	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(keyMsg(tt.key)); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestGameModelSavesRunOnceAfterHandoff(t *testing.T) {
	store := openStore(t)
	game := &stubGame{finishAt: 3, outcome: core.OutcomeWin}
	m := NewGameModel(game, Env{Store: store, Preset: "hard"}, core.RuntimeConfig{ScreenW: 40, ScreenH: 12, TickRate: 60})
	m.Init()

	if game.store == nil {
		t.Fatal("store not attached")
	}
	if game.preset != "hard" {
		t.Errorf("preset = %q, want hard", game.preset)
	}

	// Terminal at step 3, hand-off at step 4.
	for range 3 {
		m = tick(t, m)
	}
	if _, ok := m.Result(); ok {
		t.Fatal("result shown before hand-off")
	}

	m = tick(t, m)
	res, ok := m.Result()
	if !ok {
		t.Fatal("no result after hand-off")
	}
	if res.FinalScore != 30 || !res.Won() {
		t.Errorf("result = %+v", res)
	}
	if !strings.Contains(m.View(), "Level Clear!") {
		t.Error("result screen missing headline")
	}

	// Ticks on the result screen do not save again.
	for range 5 {
		m = tick(t, m)
	}
	runs, err := store.AllScores("stub")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(runs) != 1 || runs[0].Outcome != core.OutcomeWin {
		t.Errorf("runs = %+v, want one win", runs)
	}
}

func TestGameModelResultChoices(t *testing.T) {
	tests := []struct {
		name       string
		keys       []string
		standalone bool
		wantBack   bool
		wantQuit   bool
		wantReset  int
		wantCmd    bool
	}{
		{"play again key", []string{"r"}, false, false, false, 2, true},
		{"play again menu", []string{"enter"}, false, false, false, 2, true},
		{"back to menu", []string{"down", "enter"}, false, true, false, 1, false},
		{"back to menu standalone", []string{"esc"}, true, true, false, 1, true},
		{"quit", []string{"q"}, false, false, true, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			game := &stubGame{finishAt: 1, outcome: core.OutcomeLoss}
			m := NewGameModel(game, Env{}, core.RuntimeConfig{ScreenW: 40, ScreenH: 12})
			m.standalone = tt.standalone
			m.Init()
			m = tick(t, m)
			m = tick(t, m)
			if _, ok := m.Result(); !ok {
				t.Fatal("expected result screen")
			}
			if !strings.Contains(m.View(), "Game Over!") {
				t.Error("loss headline missing")
			}

			var cmd tea.Cmd
			for _, k := range tt.keys {
				m, cmd = press(t, m, k)
			}

			if m.BackToMenu() != tt.wantBack {
				t.Errorf("BackToMenu() = %v, want %v", m.BackToMenu(), tt.wantBack)
			}
			if m.IsQuitting() != tt.wantQuit {
				t.Errorf("IsQuitting() = %v, want %v", m.IsQuitting(), tt.wantQuit)
			}
			if game.resets != tt.wantReset {
				t.Errorf("resets = %d, want %d", game.resets, tt.wantReset)
			}
			if (cmd != nil) != tt.wantCmd {
				t.Errorf("cmd = %v, want non-nil %v", cmd != nil, tt.wantCmd)
			}
		})
	}
}

func TestGameModelBackOnlyWhenPaused(t *testing.T) {
	game := &stubGame{finishAt: 1000}
	m := NewGameModel(game, Env{}, core.RuntimeConfig{ScreenW: 40, ScreenH: 12})
	m.Init()
	m = tick(t, m)

	m, _ = press(t, m, "esc")
	if m.BackToMenu() {
		t.Error("back accepted while running")
	}

	m.gameState.Paused = true
	m, _ = press(t, m, "esc")
	if !m.BackToMenu() {
		t.Error("back refused while paused")
	}
}

func TestResultModelNewBest(t *testing.T) {
	tests := []struct {
		score, before int
		want          bool
	}{
		{120, 100, true},
		{100, 100, false},
		{0, 0, false},
	}
	for _, tt := range tests {
		r := NewResultModel(core.Result{FinalScore: tt.score, Outcome: core.OutcomeLoss}, tt.before, 60, 20)
		if r.NewBest() != tt.want {
			t.Errorf("NewBest(%d over %d) = %v, want %v", tt.score, tt.before, r.NewBest(), tt.want)
		}
	}
}

func TestMenuChoices(t *testing.T) {
	store := openStore(t)
	if _, err := store.SaveRun("stub", core.Result{FinalScore: 420, Outcome: core.OutcomeWin}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	m := NewMenuModel("stub", store, core.RuntimeConfig{ScreenW: 100, ScreenH: 30}, "normal")
	if !strings.Contains(m.View(), "High Score: 420") {
		t.Errorf("menu missing high score:\n%s", m.View())
	}
	if m.Preset() != "normal" {
		t.Errorf("Preset() = %q, want normal", m.Preset())
	}

	next, _ := m.Update(keyMsg("l"))
	m = next.(MenuModel)
	if m.Preset() != "hard" {
		t.Errorf("after right, Preset() = %q, want hard", m.Preset())
	}

	next, _ = m.Update(keyMsg("down"))
	next, _ = next.(MenuModel).Update(keyMsg("enter"))
	if got := next.(MenuModel).Choice(); got != MenuChoiceScores {
		t.Errorf("Choice() = %v, want scores", got)
	}
}

func TestScoreboardFilter(t *testing.T) {
	store := openStore(t)
	for _, r := range []core.Result{
		{FinalScore: 300, Outcome: core.OutcomeLoss},
		{FinalScore: 10000, Outcome: core.OutcomeWin},
	} {
		if _, err := store.SaveRun("stub", r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	m := NewScoreboardModel("stub", store, 100, 30)
	if len(m.visible()) != 2 {
		t.Fatalf("visible = %d, want 2", len(m.visible()))
	}

	next, _ := m.Update(keyMsg("tab"))
	m = next.(ScoreboardModel)
	if v := m.visible(); len(v) != 1 || v[0].Score != 10000 {
		t.Errorf("wins only = %+v", v)
	}
	if !strings.Contains(m.View(), "Cleared: 1") {
		t.Error("stats sidebar missing win count")
	}
}

func TestSessionFlow(t *testing.T) {
	store := openStore(t)
	s := NewSessionModel("stub", Env{Store: store}, core.RuntimeConfig{ScreenW: 80, ScreenH: 24}, "tester")

	step := func(msg tea.Msg) {
		t.Helper()
		next, _ := s.Update(msg)
		s = next.(SessionModel)
	}

	// The session plays a registered game, so an unknown id stays on the menu.
	step(keyMsg("enter"))
	if s.screen != screenMenu {
		t.Fatalf("screen = %v, want menu for unregistered game", s.screen)
	}

	step(keyMsg("tab"))
	if s.screen != screenScores {
		t.Fatalf("screen = %v, want scores", s.screen)
	}
	step(keyMsg("esc"))
	if s.screen != screenMenu {
		t.Fatalf("screen = %v, want menu", s.screen)
	}

	step(keyMsg("q"))
	if !s.quitting {
		t.Error("quit not honored")
	}
}

func TestRenderScreenColors(t *testing.T) {
	s := core.NewScreen(4, 1)
	s.SetPen(core.ColorRed)
	s.DrawText(0, 0, "ab")
	s.SetPen(core.ColorDefault)
	s.DrawText(2, 0, "cd")

	out := RenderScreen(s)
	if !strings.Contains(out, "ab") || !strings.HasSuffix(out, "cd") {
		t.Errorf("RenderScreen() = %q", out)
	}
}

func TestUserSinkTagsMessages(t *testing.T) {
	rec := &diag.Recorder{}
	userSink{next: rec, user: "alice"}.Log(diag.LevelWarn, "Hit an obstacle! Health: 75%", "GameScene")

	if len(rec.Entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(rec.Entries))
	}
	e := rec.Entries[0]
	if e.Message != "[alice] Hit an obstacle! Health: 75%" || e.Source != "GameScene" || e.Level != diag.LevelWarn {
		t.Errorf("entry = %+v", e)
	}
}

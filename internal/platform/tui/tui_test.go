package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-bounce/internal/config"
	"github.com/vovakirdan/tui-bounce/internal/core"
	"github.com/vovakirdan/tui-bounce/internal/games/bounce"
	"github.com/vovakirdan/tui-bounce/internal/games/bounce/levels"
)

func testEnv() Env {
	return Env{
		Levels:  levels.Default(),
		Config:  config.DefaultBounceConfig(),
		Runtime: core.RuntimeConfig{ScreenW: 100, ScreenH: 40, TickRate: 60},
		NoFiles: true,
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m GameModel, msg tea.Msg) (GameModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update() returned %T", next)
	}
	return gm, cmd
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{runes("a"), core.ActionLeft, false},
		{tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{runes("d"), core.ActionRight, false},
		{tea.KeyMsg{Type: tea.KeySpace}, core.ActionLaunch, false},
		{runes("p"), core.ActionPause, false},
		{runes("n"), core.ActionNext, false},
		{runes("r"), core.ActionRestart, false},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{runes("q"), core.ActionQuit, true},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{runes("z"), core.ActionNone, false},
	}
	for _, tt := range tests {
		action, quit := km.MapKey(tt.msg)
		if action != tt.action || quit != tt.quit {
			t.Errorf("MapKey(%q) = %v, %v, expected %v, %v", tt.msg.String(), action, quit, tt.action, tt.quit)
		}
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()
	if a := km.MapKeyToMenuAction(runes("j")); a != MenuActionDown {
		t.Errorf("j = %v, expected MenuActionDown", a)
	}
	if a := km.MapKeyToMenuAction(tea.KeyMsg{Type: tea.KeyTab}); a != MenuActionScoreboard {
		t.Errorf("tab = %v, expected MenuActionScoreboard", a)
	}
	if a := km.MapKeyToMenuAction(tea.KeyMsg{Type: tea.KeyEnter}); a != MenuActionSelect {
		t.Errorf("enter = %v, expected MenuActionSelect", a)
	}
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawText(0, 0, "ab", core.ColorRed)
	s.Plot(3, 1, core.ColorGreen)

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("RenderScreen() has %d lines, expected 2", len(lines))
	}
	if !strings.Contains(lines[0], "ab") || !strings.Contains(lines[0], "▄") {
		t.Errorf("RenderScreen() row 0 = %q", lines[0])
	}
	if strings.TrimSpace(lines[1]) != "" {
		t.Errorf("RenderScreen() row 1 = %q, expected blank", lines[1])
	}
}

func TestLayout(t *testing.T) {
	vp, ok := Layout(100, 40, 641, 700)
	if !ok {
		t.Fatal("Layout(100x40) should fit")
	}
	if vp.Area.Y != 2 || vp.Area.Bottom() > 40-2 {
		t.Errorf("Layout() area = %+v leaves no room for HUD and hint", vp.Area)
	}
	// Square pixels: columns per world px match pixel rows per world px.
	colScale := float64(vp.Area.W) / 641
	rowScale := float64(2*vp.Area.H) / 700
	if colScale/rowScale > 1.1 || rowScale/colScale > 1.1 {
		t.Errorf("Layout() scales %v vs %v, expected square pixels", colScale, rowScale)
	}

	if _, ok := Layout(20, 8, 641, 700); ok {
		t.Error("Layout(20x8) should not fit")
	}
}

func TestBoardMutations(t *testing.T) {
	cfg := config.DefaultBounceConfig()
	e := bounce.NewEngine(cfg, bounce.WithLevels("t", []bounce.Level{{
		Title:  "two",
		Bricks: []bounce.BrickRule{{Row: 2, Column: 0, Type: bounce.ObstacleRegular, Color: 0x112233, Count: 2}},
	}}))
	if err := e.NewCampaign(); err != nil {
		t.Fatalf("NewCampaign() failed: %v", err)
	}

	b := NewBoard(cfg.Arena.HitColor)
	b.Reset(e.Obstacles())
	if b.Len() != 2 {
		t.Fatalf("Len() = %d, expected 2", b.Len())
	}

	ids := []int{e.Obstacles()[0].ID, e.Obstacles()[1].ID}
	b.Apply([]bounce.BrickMutation{bounce.BrickMutation(-ids[0]), bounce.BrickMutation(ids[1]), 999})

	if c, ok := b.Color(ids[0]); !ok || c != core.Color(cfg.Arena.HitColor) {
		t.Errorf("Color(%d) = %v, %v, expected hit color", ids[0], c, ok)
	}
	if _, ok := b.Color(ids[1]); ok {
		t.Errorf("brick %d should be removed", ids[1])
	}
	if b.Len() != 1 {
		t.Errorf("Len() = %d, expected 1", b.Len())
	}
}

func TestGameModelReleaseAndPause(t *testing.T) {
	m := NewGameModel(testEnv(), Selection{FreePlay: true})
	t0 := time.Now()

	m, _ = update(t, m, TickMsg(t0))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m, cmd := update(t, m, TickMsg(t0.Add(100*time.Millisecond)))
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}

	e := m.Engine()
	if e.Held() {
		t.Fatal("space should release the ball")
	}
	if e.Time() < 99 || e.Time() > 101 {
		t.Errorf("Time() = %v, expected 100", e.Time())
	}

	m, _ = update(t, m, runes("p"))
	if !m.Paused() {
		t.Fatal("p should pause")
	}
	m, _ = update(t, m, TickMsg(t0.Add(200*time.Millisecond)))
	if e.Time() > 101 {
		t.Errorf("Time() = %v, engine advanced while paused", e.Time())
	}
	if !strings.Contains(m.View(), "PAUSED") {
		t.Error("paused view should say so")
	}

	m, _ = update(t, m, runes("p"))
	m, _ = update(t, m, TickMsg(t0.Add(250*time.Millisecond)))
	if e.Time() < 149 || e.Time() > 151 {
		t.Errorf("Time() = %v after resume, expected 150", e.Time())
	}
}

func TestGameModelBackNeedsPause(t *testing.T) {
	m := NewGameModel(testEnv(), Selection{})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.BackToMenu() {
		t.Fatal("esc during play should not leave the game")
	}
	m, _ = update(t, m, runes("p"))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("esc while paused should go back to the menu")
	}
}

func TestGameModelQuit(t *testing.T) {
	m := NewGameModel(testEnv(), Selection{})
	m, cmd := update(t, m, runes("q"))
	if !m.IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
	if m.View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestGameModelStartLevel(t *testing.T) {
	env := testEnv()
	m := NewGameModel(env, Selection{Level: 2})
	if m.Engine().Level() != 2 {
		t.Errorf("Level() = %d, expected 2", m.Engine().Level())
	}
	if m.Engine().Status() != env.Levels.Levels[2].Title {
		t.Errorf("Status() = %q, expected level title", m.Engine().Status())
	}
	view := m.View()
	for _, want := range []string{"Score: 0", "Level: 3/", "SPACE"} {
		if !strings.Contains(view, want) {
			t.Errorf("view is missing %q", want)
		}
	}
}

func TestGameModelTooSmall(t *testing.T) {
	m := NewGameModel(testEnv(), Selection{FreePlay: true})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 20, Height: 8})
	if !strings.Contains(m.View(), "Window too small") {
		t.Error("tiny window should show the size hint")
	}
}

func TestGameModelMouse(t *testing.T) {
	m := NewGameModel(testEnv(), Selection{FreePlay: true})
	t0 := time.Now()
	m, _ = update(t, m, TickMsg(t0))

	col := m.viewport.Area.X + 1
	m, _ = update(t, m, tea.MouseMsg{X: col, Y: 10, Action: tea.MouseActionMotion})
	m, _ = update(t, m, TickMsg(t0.Add(200*time.Millisecond)))

	p := m.Engine().Paddle()
	if p.Left != 0 {
		t.Errorf("Paddle().Left = %v, expected the paddle clamped to the left wall", p.Left)
	}
}

func TestSessionFlow(t *testing.T) {
	s := NewSessionModel(testEnv())

	next, _ := s.Update(tea.KeyMsg{Type: tea.KeyTab})
	s = next.(SessionModel)
	if s.screen != screenScores {
		t.Fatalf("tab should open the scoreboard, screen = %v", s.screen)
	}
	next, _ = s.Update(tea.KeyMsg{Type: tea.KeyEsc})
	s = next.(SessionModel)
	if s.screen != screenMenu {
		t.Fatalf("esc should return to the menu, screen = %v", s.screen)
	}

	next, cmd := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	s = next.(SessionModel)
	if s.screen != screenGame || cmd == nil {
		t.Fatalf("enter should start the campaign, screen = %v", s.screen)
	}
	if s.game.Engine().Level() != 0 {
		t.Errorf("campaign should start at level 0, got %d", s.game.Engine().Level())
	}

	next, cmd = s.Update(runes("q"))
	s = next.(SessionModel)
	if !s.quitting || cmd == nil {
		t.Error("q in game should end the session")
	}
}

func TestMenuLevelSelect(t *testing.T) {
	m := NewMenuModel("Bounce", []string{"One", "Two", "Three"}, core.DefaultConfig())
	keys := []tea.KeyMsg{
		{Type: tea.KeyDown}, {Type: tea.KeyDown}, {Type: tea.KeyEnter}, // Select level...
		{Type: tea.KeyDown}, {Type: tea.KeyEnter}, // Two
	}
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(MenuModel)
	}
	sel := m.Selected()
	if sel == nil || sel.FreePlay || sel.Level != 1 {
		t.Errorf("Selected() = %+v, expected campaign level 1", sel)
	}
}

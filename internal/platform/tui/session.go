package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// sessionScreen is the screen a SessionModel shows.
type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenScores
)

// SessionModel manages the full session flow: menu -> game or scores -> menu.
// It is the top-level model for the interactive menu and for SSH sessions.
type SessionModel struct {
	env        Env
	screen     sessionScreen
	menu       MenuModel
	game       *GameModel
	scoreboard *ScoreboardModel
	quitting   bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(env Env) SessionModel {
	return SessionModel{
		env:  env,
		menu: newMenuFor(env),
	}
}

func newMenuFor(env Env) MenuModel {
	names := make([]string, len(env.Levels.Levels))
	for i, l := range env.Levels.Levels {
		names[i] = l.Title
	}
	return NewMenuModel(env.Levels.Title, names, env.Runtime)
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.env.Runtime.ScreenW = wsm.Width
		m.env.Runtime.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode. The menu ends its own
// program with tea.Quit on selection; here that command is dropped.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsScoreboard() {
		sb := NewScoreboardModel(m.env.Store, m.env.Runtime.ScreenW, m.env.Runtime.ScreenH)
		m.scoreboard = &sb
		m.screen = screenScores
		return m, nil
	}

	if sel := m.menu.Selected(); sel != nil {
		game := NewGameModel(m.env, *sel)
		m.game = &game
		m.screen = screenGame
		return m, m.game.Init()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.game = &gameModel
	}

	if m.game.BackToMenu() {
		return m.toMenu()
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// updateScores handles updates when the scoreboard is shown.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scoreboard.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scoreboard = &sb
	}

	if m.scoreboard.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scoreboard.IsGoingBack() {
		return m.toMenu()
	}
	return m, cmd
}

func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.game = nil
	m.scoreboard = nil
	m.screen = screenMenu
	m.menu = newMenuFor(m.env)
	return m, m.menu.Init()
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.scoreboard.View()
	default:
		return m.menu.View()
	}
}

// RunSession runs the menu-driven session in the local terminal.
func RunSession(env Env) error {
	p := tea.NewProgram(
		NewSessionModel(env),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	_, err := p.Run()
	return err
}

// RunScoreboard runs the scoreboard screen on its own.
func RunScoreboard(env Env) error {
	p := tea.NewProgram(
		NewScoreboardModel(env.Store, env.Runtime.ScreenW, env.Runtime.ScreenH),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}

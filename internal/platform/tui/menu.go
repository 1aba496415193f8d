package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-bounce/internal/core"
)

// MenuEntry is a top-level menu choice.
type MenuEntry int

const (
	MenuCampaign MenuEntry = iota
	MenuFreePlay
	MenuSelectLevel
	MenuScores
	MenuQuit
)

var menuLabels = []string{
	MenuCampaign:    "Campaign",
	MenuFreePlay:    "Free play",
	MenuSelectLevel: "Select level...",
	MenuScores:      "High scores",
	MenuQuit:        "Quit",
}

var (
	menuTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(core.ColorPaddle.Hex()))
	menuCursor     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuHintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MenuModel lets the player pick a mode and a starting level.
type MenuModel struct {
	title          string
	levelNames     []string
	cursor         int
	levelCursor    int
	inLevelSelect  bool
	width          int
	height         int
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	quitting       bool
	selected       *Selection
	openScoreboard bool
}

// NewMenuModel creates a new menu model for the campaign title and level names.
func NewMenuModel(title string, levelNames []string, cfg core.RuntimeConfig) MenuModel {
	return MenuModel{
		title:      title,
		levelNames: levelNames,
		width:      cfg.ScreenW,
		height:     cfg.ScreenH,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		action := m.keyMapper.MapKeyToMenuAction(msg)
		if m.inLevelSelect {
			return m.handleLevelSelect(action)
		}
		return m.handleMain(action)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

func (m MenuModel) handleMain(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(menuLabels)-1 {
			m.cursor++
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit

	case MenuActionSelect:
		switch MenuEntry(m.cursor) {
		case MenuCampaign:
			if len(m.levelNames) > 0 {
				m.selected = &Selection{}
				return m, tea.Quit
			}
		case MenuFreePlay:
			m.selected = &Selection{FreePlay: true}
			return m, tea.Quit
		case MenuSelectLevel:
			if len(m.levelNames) > 0 {
				m.inLevelSelect = true
				m.levelCursor = 0
			}
		case MenuScores:
			m.openScoreboard = true
			return m, tea.Quit
		case MenuQuit:
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m MenuModel) handleLevelSelect(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.levelCursor > 0 {
			m.levelCursor--
		}
	case MenuActionDown:
		if m.levelCursor < len(m.levelNames)-1 {
			m.levelCursor++
		}
	case MenuActionSelect:
		m.selected = &Selection{Level: m.levelCursor}
		return m, tea.Quit
	case MenuActionBack:
		m.inLevelSelect = false
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render(spaced(m.title)), m.width))
	b.WriteString("\n\n")

	if m.inLevelSelect {
		b.WriteString(centerText("Select level", m.width))
		b.WriteString("\n\n")
		for i, name := range m.levelNames {
			b.WriteString(centerText(menuLine(i == m.levelCursor, fmt.Sprintf("%2d. %s", i+1, name)), m.width))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(centerText(menuHintStyle.Render("Enter: Play  |  Esc: Back  |  Q: Quit"), m.width))
		return b.String()
	}

	for i, label := range menuLabels {
		if MenuEntry(i) == MenuCampaign {
			label = fmt.Sprintf("%s (%d levels)", label, len(m.levelNames))
		}
		b.WriteString(centerText(menuLine(i == m.cursor, label), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(menuHintStyle.Render("Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit"), m.width))
	b.WriteString("\n")
	return b.String()
}

func menuLine(active bool, label string) string {
	if active {
		return menuCursor.Render("> " + label)
	}
	return "  " + label
}

// spaced turns "Bounce" into "B O U N C E".
func spaced(s string) string {
	return strings.Join(strings.Split(strings.ToUpper(s), ""), " ")
}

// Selected returns the chosen game, or nil if none was chosen.
func (m MenuModel) Selected() *Selection {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width, measuring printable cells.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

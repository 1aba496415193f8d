package tui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-bounce/internal/config"
	"github.com/vovakirdan/tui-bounce/internal/core"
	"github.com/vovakirdan/tui-bounce/internal/games/bounce"
	"github.com/vovakirdan/tui-bounce/internal/games/bounce/levels"
	"github.com/vovakirdan/tui-bounce/internal/platform/audio"
	"github.com/vovakirdan/tui-bounce/internal/storage"
)

var errFilesDisabled = errors.New("file output is disabled")

// maxFrame caps the wall time fed to one Advance, so a suspended terminal
// does not fast-forward the game.
const maxFrame = 250 * time.Millisecond

// Env bundles what the front end screens share.
type Env struct {
	Store   *storage.Store // may be nil
	Levels  levels.Game
	Config  config.BounceConfig
	Runtime core.RuntimeConfig
	Sound   audio.Sink  // nil plays nothing
	Logger  *log.Logger // nil discards
	DataDir string      // screenshots and replays; "~/.bounce" when empty
	NoFiles bool        // disables screenshots and replays
}

func (env Env) logger() *log.Logger {
	if env.Logger == nil {
		return log.New(io.Discard)
	}
	return env.Logger
}

func (env Env) dataDir() string {
	if env.DataDir != "" {
		return env.DataDir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".bounce"
	}
	return filepath.Join(home, ".bounce")
}

// Selection chooses what a GameModel plays.
type Selection struct {
	FreePlay bool
	Level    int // starting campaign level, 0-based
}

// GameModel is the Bubble Tea model that drives one bounce engine.
type GameModel struct {
	env       Env
	sel       Selection
	engine    *bounce.Engine
	recorder  *bounce.Recorder
	board     *Board
	sounds    *audio.Dispatcher
	screen    *core.Screen
	keyMapper *KeyMapper
	viewport  core.Viewport
	fits      bool

	lastFrame  time.Time
	paused     bool
	scoreSaved bool
	highScore  int
	flash      string // one-line notice shown in the hint row
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a game model and starts the selected game.
func NewGameModel(env Env, sel Selection) GameModel {
	rt := env.Runtime
	if rt.TickRate <= 0 {
		rt.TickRate = core.DefaultConfig().TickRate
	}
	env.Runtime = rt

	recorder := bounce.NewRecorder(1000.0 / float64(rt.TickRate))
	engine := bounce.NewEngine(env.Config,
		bounce.WithLogger(env.logger()),
		bounce.WithLevels(env.Levels.Title, env.Levels.Levels),
		bounce.WithRecorder(recorder),
	)

	m := GameModel{
		env:       env,
		sel:       sel,
		engine:    engine,
		recorder:  recorder,
		board:     NewBoard(env.Config.Arena.HitColor),
		sounds:    audio.NewDispatcher(env.Config.Timing.SoundWindow, env.Sound),
		screen:    core.NewScreen(rt.ScreenW, rt.ScreenH),
		keyMapper: NewKeyMapper(),
	}
	m.layout()
	m.start()
	return m
}

// start begins the selection from scratch with a zero score.
func (m *GameModel) start() {
	var err error
	if m.sel.FreePlay {
		err = m.engine.StartFreePlay()
	} else {
		err = m.engine.NewCampaign()
		if err == nil && m.sel.Level > 0 {
			err = m.engine.LoadLevel(m.sel.Level)
		}
	}
	if err != nil {
		m.env.logger().Error("cannot start game", "err", err)
	}
	m.newGame()
}

// newGame syncs the front end with a freshly started engine game.
func (m *GameModel) newGame() {
	m.board.Reset(m.engine.Obstacles())
	m.sounds.Reset()
	m.paused = false
	m.scoreSaved = false
	m.flash = ""
	m.highScore = m.loadHighScore()
}

func (m *GameModel) mode() string {
	if m.sel.FreePlay {
		return storage.ModeFreePlay
	}
	return storage.ModeCampaign
}

func (m *GameModel) loadHighScore() int {
	if m.env.Store == nil {
		return 0
	}
	high, err := m.env.Store.HighScore(m.mode())
	if err != nil {
		return 0
	}
	return high
}

func (m *GameModel) layout() {
	arena := m.engine.Arena()
	m.viewport, m.fits = Layout(m.screen.Width(), m.screen.Height(), arena.X2-arena.X1, arena.Y2-arena.Y1)
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.env.Runtime.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.env.Runtime.ScreenW = msg.Width
		m.env.Runtime.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		m.layout()
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// inputDelay is the wall time since the engine was last advanced, so the
// input lands at the engine time matching the moment it was pressed.
func (m *GameModel) inputDelay() float64 {
	if m.lastFrame.IsZero() {
		return 0
	}
	d := time.Since(m.lastFrame)
	if d > maxFrame {
		d = maxFrame
	}
	return float64(d) / float64(time.Millisecond)
}

func (m *GameModel) playing() bool {
	return m.engine.State() == bounce.StateActive && !m.paused
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	case "ctrl+r":
		m.saveReplay()
		return m, nil
	case "m":
		if t, ok := m.env.Sound.(interface{ ToggleMute() bool }); ok {
			if t.ToggleMute() {
				m.flash = "Sound on"
			} else {
				m.flash = "Sound off"
			}
		}
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.saveScore(storage.OutcomeQuit)
		m.quitting = true
		return m, tea.Quit
	}

	state := m.engine.State()
	switch action {
	case core.ActionLeft:
		if m.playing() {
			m.engine.StepPaddleLeft(m.inputDelay())
		}
	case core.ActionRight:
		if m.playing() {
			m.engine.StepPaddleRight(m.inputDelay())
		}
	case core.ActionLaunch:
		if m.playing() && m.engine.Held() {
			m.engine.ReleaseBall(m.inputDelay())
		}
	case core.ActionPause:
		if state == bounce.StateActive {
			m.paused = !m.paused
			if m.paused {
				m.sounds.Reset()
			}
		}
	case core.ActionNext:
		if state == bounce.StateLevelComplete && m.engine.HasNextLevel() {
			if err := m.engine.NextLevel(); err == nil {
				m.newGame()
			}
		}
	case core.ActionRestart:
		if state != bounce.StateInit {
			m.saveScore(storage.OutcomeQuit)
			m.start()
		}
	case core.ActionBack:
		if m.paused || state.Terminal() || state == bounce.StateInit {
			m.saveScore(storage.OutcomeQuit)
			m.backToMenu = true
		}
	}

	return m, nil
}

// handleMouse moves the paddle to the pointer and releases on click.
func (m GameModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.fits || !m.playing() {
		return m, nil
	}

	switch {
	case msg.Action == tea.MouseActionMotion:
		m.engine.SetPaddlePosition(m.inputDelay(), m.viewport.WorldX(msg.X))
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if m.engine.Held() {
			m.engine.ReleaseBall(m.inputDelay())
		}
	}
	return m, nil
}

// handleTick advances the engine by the wall time since the last tick.
func (m GameModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}

	elapsed := time.Duration(0)
	if !m.lastFrame.IsZero() {
		elapsed = min(now.Sub(m.lastFrame), maxFrame)
	}
	m.lastFrame = now

	if !m.paused {
		m.engine.Advance(float64(elapsed) / float64(time.Millisecond))
	}
	m.board.Apply(m.engine.DrainMutations())
	if cues := m.engine.DrainSounds(); len(cues) > 0 || m.sounds.Pending() > 0 {
		m.sounds.Feed(m.engine.Time(), cues)
	}

	switch m.engine.State() {
	case bounce.StateGameOver:
		m.saveScore(storage.OutcomeGameOver)
	case bounce.StateLevelComplete:
		if !m.engine.HasNextLevel() {
			m.saveScore(storage.OutcomeVictory)
		}
	}

	return m, tickCmd(m.env.Runtime.TickRate)
}

// saveScore records the current game once. Empty games are not recorded.
func (m *GameModel) saveScore(outcome storage.Outcome) {
	if m.scoreSaved || m.engine.Score() <= 0 || m.engine.State() == bounce.StateInit {
		return
	}
	m.scoreSaved = true
	if m.env.Store == nil {
		return
	}

	level := 0
	if !m.sel.FreePlay {
		level = m.engine.Level() + 1
	}
	_, err := m.env.Store.SaveResult(storage.ScoreEntry{
		Mode:     m.mode(),
		Level:    level,
		Score:    m.engine.Score(),
		Outcome:  outcome,
		Duration: int64(m.engine.Time()),
	})
	if err != nil {
		// Best-effort save, game continues regardless
		m.env.logger().Warn("cannot save score", "err", err)
	}
}

// saveScreenshot saves the current screen as plain text.
func (m *GameModel) saveScreenshot() {
	m.draw()
	path, err := m.writeDataFile("screenshots", "txt", []byte(m.screen.String()))
	if err != nil {
		m.flash = "Screenshot failed"
		return
	}
	m.flash = "Saved " + path
}

// saveReplay writes the inputs of the current game as a replay script.
func (m *GameModel) saveReplay() {
	data, err := yaml.Marshal(m.recorder.Script(m.engine.Time()))
	if err != nil {
		m.flash = "Replay failed"
		return
	}
	path, err := m.writeDataFile("replays", "yaml", data)
	if err != nil {
		m.flash = "Replay failed"
		return
	}
	m.flash = "Saved " + path
}

func (m *GameModel) writeDataFile(sub, ext string, data []byte) (string, error) {
	if m.env.NoFiles {
		return "", errFilesDisabled
	}
	dir := filepath.Join(m.env.dataDir(), sub)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	name := fmt.Sprintf("%s_%s.%s", m.mode(), time.Now().Format("20060102_150405"), ext)
	path := filepath.Join(dir, name)
	return path, os.WriteFile(path, data, 0o600)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}
	m.draw()
	return RenderScreen(m.screen)
}

func (m *GameModel) draw() {
	dst := m.screen
	dst.Clear()

	if err := m.engine.Err(); err != nil {
		dst.DrawTextCentered(dst.Height()/2-1, "Cannot start game", core.ColorRed)
		dst.DrawTextCentered(dst.Height()/2+1, err.Error(), core.ColorWhite)
		return
	}
	if !m.fits {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small", core.ColorWhite)
		dst.DrawTextCentered(dst.Height()/2+1,
			fmt.Sprintf("Need %dx%d", minArenaCols+2, minArenaRows+4), core.ColorGray)
		return
	}

	drawHUD(dst, m.engine, m.highScore)
	m.board.Draw(dst, m.viewport, m.engine)
	m.drawOverlay()
}

func (m *GameModel) drawOverlay() {
	dst := m.screen
	hint := dst.Height() - 1

	switch state := m.engine.State(); {
	case m.paused:
		drawCenteredBox(dst, "PAUSED", "P resume  |  Esc menu", core.ColorCyan)
	case state == bounce.StateGameOver:
		drawCenteredBox(dst, "GAME OVER",
			fmt.Sprintf("Score: %d  |  R restart  |  Esc menu", m.engine.Score()), core.ColorRed)
	case state == bounce.StateLevelComplete && m.engine.HasNextLevel():
		drawCenteredBox(dst, "LEVEL CLEAR",
			fmt.Sprintf("Score: %d  |  N next level", m.engine.Score()), core.ColorGreen)
	case state == bounce.StateLevelComplete:
		drawCenteredBox(dst, "YOU WIN!",
			fmt.Sprintf("Final Score: %d  |  R restart  |  Esc menu", m.engine.Score()), core.ColorGreen)
	case state == bounce.StateBallMissed:
		dst.DrawTextCentered(hint, "Ball lost...", core.ColorRed)
		return
	case m.engine.Held():
		dst.DrawTextCentered(hint, "Press SPACE to launch", core.ColorGray)
		return
	}

	if m.flash != "" {
		dst.DrawTextCentered(hint, m.flash, core.ColorGray)
	}
}

// Engine returns the driven engine.
func (m GameModel) Engine() *bounce.Engine {
	return m.engine
}

// Paused reports whether the game is paused.
func (m GameModel) Paused() bool {
	return m.paused
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run starts a game in its own Bubble Tea program.
func Run(env Env, sel Selection) error {
	p := tea.NewProgram(
		NewGameModel(env, sel),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	_, err := p.Run()
	return err
}

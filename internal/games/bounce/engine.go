// Package bounce implements a brick breaker on a continuous-time event engine.
//
// The ball moves in straight legs at constant speed. At the start of every
// leg the engine predicts the next contact analytically and schedules it;
// between events it only integrates the ball position. Paddle input, score
// ticks and speed ramps are events on the same queue, so a run is fully
// determined by the sequence of Advance calls and inputs.
package bounce

import (
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-bounce/internal/config"
)

// DefaultTitle is the game title used before a campaign is installed.
const DefaultTitle = "Bounce"

// Engine is the game state store plus its scheduler. It is not safe for
// concurrent use and owns no goroutines or timers.
type Engine struct {
	cfg    config.BounceConfig
	logger *log.Logger

	width  float64
	height float64
	footer float64

	state  State
	status string
	err    error

	time       float64
	score      int
	held       bool
	speedExtra float64

	ball      Ball
	paddle    Paddle
	obstacles []Obstacle

	title  string
	levels []Level
	level  int // -1 for free play

	events    eventQueue
	sounds    []SoundCue
	mutations []BrickMutation
	recorder  *Recorder
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithLevels installs a campaign at construction.
func WithLevels(title string, levels []Level) Option {
	return func(e *Engine) {
		e.SetLevels(title, levels)
	}
}

// WithRecorder captures every input call into r.
func WithRecorder(r *Recorder) Option {
	return func(e *Engine) {
		e.recorder = r
	}
}

// NewEngine creates an engine in the Init state. A configuration error is
// recorded, not returned: the engine then refuses to start a game and
// reports the error through Err.
func NewEngine(cfg config.BounceConfig, opts ...Option) *Engine {
	e := &Engine{
		cfg:    cfg,
		logger: log.New(io.Discard),
		width:  cfg.Arena.Width(),
		height: cfg.Arena.Height,
		footer: cfg.Arena.FooterHeight,
		state:  StateInit,
		title:  DefaultTitle,
		level:  -1,
	}
	if len(e.cfg.Paddle.Deflection) == 0 {
		e.cfg.Paddle.Deflection = config.DefaultBounceConfig().Paddle.Deflection
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.width < cfg.Arena.MinWidth || e.height < cfg.Arena.MinHeight {
		e.fail(fmt.Errorf("%w: %gx%g, minimum %gx%g",
			ErrArenaTooSmall, e.width, e.height, cfg.Arena.MinWidth, cfg.Arena.MinHeight))
	}

	e.obstacles = []Obstacle{e.arenaObstacle()}
	e.resetBodies()
	return e
}

// SetLevels installs a campaign. Levels are validated up front; an invalid
// level records a data error.
func (e *Engine) SetLevels(title string, levels []Level) {
	for i, l := range levels {
		if err := l.Validate(); err != nil {
			e.FailData(fmt.Errorf("level %d (%s): %w", i+1, l.Title, err))
			return
		}
	}
	if title != "" {
		e.title = title
	}
	e.levels = levels
	e.status = e.title
}

// FailData records that the level source could not be loaded.
func (e *Engine) FailData(err error) {
	e.fail(fmt.Errorf("%w: %w", ErrLevelData, err))
}

func (e *Engine) fail(err error) {
	if e.err == nil {
		e.err = err
	}
	e.state = StateInit
	e.status = err.Error()
	e.logger.Error("engine unavailable", "err", err)
}

// NewCampaign resets the score and starts the first level.
func (e *Engine) NewCampaign() error {
	if e.err != nil {
		return fmt.Errorf("%w: %w", ErrNotReady, e.err)
	}
	e.score = 0
	return e.LoadLevel(0)
}

// LoadLevel rebuilds the obstacles from level i and starts a new game.
// The score carries over.
func (e *Engine) LoadLevel(i int) error {
	if e.err != nil {
		return fmt.Errorf("%w: %w", ErrNotReady, e.err)
	}
	if i < 0 || i >= len(e.levels) {
		return fmt.Errorf("%w: %d of %d", ErrNoSuchLevel, i+1, len(e.levels))
	}
	e.level = i
	e.buildObstacles(e.levels[i])
	if err := e.NewGame(); err != nil {
		return err
	}
	e.status = e.levels[i].Title
	e.logger.Debug("level loaded", "level", i+1, "title", e.levels[i].Title, "bricks", len(e.obstacles)-1)
	return nil
}

// HasNextLevel reports whether the campaign continues after the current level.
func (e *Engine) HasNextLevel() bool {
	return e.level >= 0 && e.level+1 < len(e.levels)
}

// NextLevel loads the level after the current one.
func (e *Engine) NextLevel() error {
	if !e.HasNextLevel() {
		return fmt.Errorf("%w: after %d", ErrNoSuchLevel, e.level+1)
	}
	return e.LoadLevel(e.level + 1)
}

// StartFreePlay starts a game in an empty arena. Score is reset.
func (e *Engine) StartFreePlay() error {
	if e.err != nil {
		return fmt.Errorf("%w: %w", ErrNotReady, e.err)
	}
	e.level = -1
	e.score = 0
	e.buildObstacles(Level{})
	if err := e.NewGame(); err != nil {
		return err
	}
	e.status = "Free play"
	return nil
}

// NewGame resets time, ball, paddle and queues on the current obstacles.
// The ball starts held on the paddle.
func (e *Engine) NewGame() error {
	if e.err != nil {
		return fmt.Errorf("%w: %w", ErrNotReady, e.err)
	}
	e.time = 0
	e.speedExtra = 0
	e.events.reset()
	e.sounds = nil
	e.mutations = nil
	e.resetBodies()
	e.setState(StateActive)
	if e.recorder != nil {
		e.recorder.begin(e.level)
	}
	return nil
}

func (e *Engine) resetBodies() {
	e.held = true
	e.paddle = Paddle{HalfWidth: e.cfg.Paddle.HalfWidth, Top: e.height}
	e.paddle.centerAt(e.width/2, e.width)
	e.ball = Ball{
		Speed:  e.cfg.Ball.Speed,
		Angle:  e.cfg.Ball.Angle,
		Radius: e.cfg.Ball.Radius,
	}
	e.pinBall()
}

// pinBall keeps a held ball resting on the paddle center.
func (e *Engine) pinBall() {
	if !e.held {
		return
	}
	e.ball.X = e.paddle.Center()
	e.ball.Y = e.height - e.ball.Radius
}

func (e *Engine) arenaObstacle() Obstacle {
	return Obstacle{
		ID:    0,
		Type:  ObstacleArena,
		X1:    0,
		X2:    e.width,
		Y1:    0,
		Y2:    e.height + e.footer,
		Color: e.cfg.Arena.Color,
	}
}

func (e *Engine) buildObstacles(l Level) {
	e.obstacles = append([]Obstacle{e.arenaObstacle()}, l.expand(e.cfg.Arena, 1)...)
}

func (e *Engine) setState(s State) {
	if e.state == s {
		return
	}
	e.logger.Debug("state", "from", e.state, "to", s, "t", e.time)
	e.state = s
}

// running reports whether Advance dispatches events.
func (e *Engine) running() bool {
	return e.state == StateActive || e.state == StateBallMissed
}

// Advance moves engine time forward by elapsed milliseconds, dispatching
// every event due by then in time order and integrating the ball between
// them. It is a no-op before a game starts and after the game ends. When
// an event ends the game, time stops at that event.
func (e *Engine) Advance(elapsed float64) {
	if !e.running() {
		return
	}
	if elapsed < 0 || !finite(elapsed) {
		elapsed = 0
	}
	end := e.time + elapsed

	for e.running() {
		next, ok := e.events.peek()
		if !ok || next.Time > end {
			break
		}
		e.processEvent(e.events.pop())
	}
	if e.running() && e.time < end {
		e.moveBall(end - e.time)
	}
}

// moveBall integrates the ball along its current leg.
func (e *Engine) moveBall(dt float64) {
	if dt <= 0 {
		return
	}
	if !e.held {
		sin, cos := math.Sincos(e.ball.Angle)
		e.ball.X += dt * e.ball.Speed * cos
		e.ball.Y += dt * e.ball.Speed * sin
	}
	e.time += dt
}

// schedule queues an event delay milliseconds from now and returns its time.
func (e *Engine) schedule(ev Event, delay float64) float64 {
	if delay < 0 || math.IsNaN(delay) {
		delay = 0
	}
	return e.scheduleAt(ev, e.time+delay)
}

// scheduleAt queues an event at absolute time at, or now if at has passed.
func (e *Engine) scheduleAt(ev Event, at float64) float64 {
	ev.Time = max(at, e.time)
	e.events.push(ev)
	return ev.Time
}

func (e *Engine) emitSound(c SoundCue) {
	e.sounds = append(e.sounds, c)
}

// StepPaddleLeft moves the paddle one step left after delay milliseconds.
func (e *Engine) StepPaddleLeft(delay float64) {
	e.input(InputLeft, delay, 0)
}

// StepPaddleRight moves the paddle one step right after delay milliseconds.
func (e *Engine) StepPaddleRight(delay float64) {
	e.input(InputRight, delay, 0)
}

// SetPaddlePosition centers the paddle on x after delay milliseconds.
// A non-finite x is ignored.
func (e *Engine) SetPaddlePosition(delay, x float64) {
	e.input(InputPosition, delay, x)
}

// ReleaseBall launches a held ball after delay milliseconds.
func (e *Engine) ReleaseBall(delay float64) {
	e.input(InputRelease, delay, 0)
}

func (e *Engine) input(kind InputKind, delay, x float64) {
	if delay < 0 || math.IsNaN(delay) {
		delay = 0
	}
	e.inputAt(kind, e.time+delay, x)
}

// inputAt queues an input at absolute time at and records it.
func (e *Engine) inputAt(kind InputKind, at, x float64) {
	if kind == InputPosition && !finite(x) {
		return
	}
	at = e.scheduleAt(Event{Kind: kind.event(), Obstacle: noObstacle, X: x}, at)
	if e.recorder != nil {
		e.recorder.record(Input{At: at, Kind: kind, X: x})
	}
}

// Ball returns the ball.
func (e *Engine) Ball() Ball { return e.ball }

// BallBox returns the bounding box of the ball.
func (e *Engine) BallBox() Box { return e.ball.Box() }

// Paddle returns the paddle.
func (e *Engine) Paddle() Paddle { return e.paddle }

// Score returns the score.
func (e *Engine) Score() int { return e.score }

// State returns the lifecycle state.
func (e *Engine) State() State { return e.state }

// Status returns the status line: level title, result or error text.
func (e *Engine) Status() string { return e.status }

// Title returns the campaign title.
func (e *Engine) Title() string { return e.title }

// Time returns the engine time in milliseconds since the game started.
func (e *Engine) Time() float64 { return e.time }

// Held reports whether the ball rests on the paddle.
func (e *Engine) Held() bool { return e.held }

// Err returns the recorded configuration or data error.
func (e *Engine) Err() error { return e.err }

// Level returns the current level index, or -1 in free play.
func (e *Engine) Level() int { return e.level }

// LevelCount returns the number of campaign levels.
func (e *Engine) LevelCount() int { return len(e.levels) }

// Levels returns the installed campaign.
func (e *Engine) Levels() []Level { return e.levels }

// Arena returns the arena box including the footer.
func (e *Engine) Arena() Obstacle { return e.obstacles[0] }

// Width returns the arena width in pixels.
func (e *Engine) Width() float64 { return e.width }

// Height returns the paddle plane, which is also the visible arena height.
func (e *Engine) Height() float64 { return e.height }

// Obstacles returns the bricks still in play.
func (e *Engine) Obstacles() []Obstacle {
	out := make([]Obstacle, 0, len(e.obstacles)-1)
	for _, o := range e.obstacles[1:] {
		if !o.removed {
			out = append(out, o)
		}
	}
	return out
}

// Pending returns the queued events in dispatch order.
func (e *Engine) Pending() []Event {
	return e.events.pending()
}

// DrainSounds returns and clears the queued sound cues.
func (e *Engine) DrainSounds() []SoundCue {
	out := e.sounds
	e.sounds = nil
	return out
}

// DrainMutations returns and clears the queued brick mutations.
func (e *Engine) DrainMutations() []BrickMutation {
	out := e.mutations
	e.mutations = nil
	return out
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

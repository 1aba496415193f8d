package bounce

import "fmt"

// State is the engine lifecycle state.
type State int

const (
	StateInit          State = iota // no game started, or configuration/data error
	StateActive                     // ball in play or held on the paddle
	StateBallMissed                 // ball passed the paddle, game over pending
	StateLevelComplete              // every destructible brick removed
	StateGameOver
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateActive:
		return "active"
	case StateBallMissed:
		return "ball_missed"
	case StateLevelComplete:
		return "level_complete"
	case StateGameOver:
		return "game_over"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Terminal reports whether the state stops event dispatch.
func (s State) Terminal() bool {
	return s == StateGameOver || s == StateLevelComplete
}

// ObstacleType identifies how an obstacle reacts to a hit.
// The numeric values are the level-file type codes.
type ObstacleType int

const (
	ObstacleArena   ObstacleType = 1 // the outer box, tested from the inside
	ObstacleRegular ObstacleType = 2 // destroyed by one hit
	ObstacleSilver  ObstacleType = 3 // becomes regular on the first hit
	ObstacleGold    ObstacleType = 4 // indestructible
)

// String returns the level-file name of the type.
func (t ObstacleType) String() string {
	switch t {
	case ObstacleArena:
		return "arena"
	case ObstacleRegular:
		return "regular"
	case ObstacleSilver:
		return "silver"
	case ObstacleGold:
		return "gold"
	default:
		return fmt.Sprintf("type(%d)", int(t))
	}
}

// Brick reports whether the type may appear in a level.
func (t ObstacleType) Brick() bool {
	return t == ObstacleRegular || t == ObstacleSilver || t == ObstacleGold
}

// ParseObstacleType converts a level-file name to a brick type.
func ParseObstacleType(name string) (ObstacleType, bool) {
	switch name {
	case "regular":
		return ObstacleRegular, true
	case "silver":
		return ObstacleSilver, true
	case "gold":
		return ObstacleGold, true
	default:
		return 0, false
	}
}

// Box is an axis-aligned rectangle in arena pixels, y growing downward.
type Box struct {
	Top, Bottom, Left, Right float64
}

// Ball is the single moving body.
type Ball struct {
	X, Y   float64 // center
	Speed  float64 // pixels per millisecond
	Angle  float64 // radians, 0 = right, pi/2 = down
	Radius float64
}

// Box returns the bounding box of the ball.
func (b Ball) Box() Box {
	return Box{
		Top:    b.Y - b.Radius,
		Bottom: b.Y + b.Radius,
		Left:   b.X - b.Radius,
		Right:  b.X + b.Radius,
	}
}

// Paddle is the player-controlled segment lying on the paddle plane.
type Paddle struct {
	Left, Right float64
	HalfWidth   float64
	Top         float64
}

// Center returns the horizontal center of the paddle.
func (p Paddle) Center() float64 {
	return (p.Left + p.Right) / 2
}

// Covers reports whether x lies over the paddle.
func (p Paddle) Covers(x float64) bool {
	return x >= p.Left && x <= p.Right
}

// centerAt moves the paddle so its center is x, clamped to [0, width].
func (p *Paddle) centerAt(x, width float64) {
	x = clampF(x, p.HalfWidth, width-p.HalfWidth)
	p.Left = x - p.HalfWidth
	p.Right = x + p.HalfWidth
}

// Obstacle is a brick or the arena box.
type Obstacle struct {
	ID     int
	Type   ObstacleType
	X1, X2 float64
	Y1, Y2 float64
	Color  uint32

	removed bool
}

// Box returns the obstacle rectangle.
func (o Obstacle) Box() Box {
	return Box{Top: o.Y1, Bottom: o.Y2, Left: o.X1, Right: o.X2}
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

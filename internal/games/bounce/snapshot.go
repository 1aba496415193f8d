package bounce

import "math"

// Snapshot contains the complete engine state for replay checks and the
// web surface. Uses primitive types only for stable serialization.
type Snapshot struct {
	Time       float64 `json:"time"`
	State      string  `json:"state"`
	Status     string  `json:"status"`
	Score      int     `json:"score"`
	LevelIndex int     `json:"level"`
	Held       bool    `json:"held"`

	BallX      float64 `json:"ball_x"`
	BallY      float64 `json:"ball_y"`
	BallSpeed  float64 `json:"ball_speed"`
	BallAngle  float64 `json:"ball_angle"`
	SpeedExtra float64 `json:"speed_extra"`

	PaddleLeft  float64 `json:"paddle_left"`
	PaddleRight float64 `json:"paddle_right"`

	PendingEvents   int `json:"pending_events"`
	BricksRemaining int `json:"bricks_remaining"`

	// Brick states, each brick is 3 ints: ID, Type, Removed
	BrickData []int `json:"bricks"`
}

// Snapshot returns the current engine state as a Snapshot.
func (e *Engine) Snapshot() Snapshot {
	brickData := make([]int, 0, (len(e.obstacles)-1)*3)
	remaining := 0
	for _, o := range e.obstacles[1:] {
		removed := 0
		if o.removed {
			removed = 1
		} else if o.Type != ObstacleGold {
			remaining++
		}
		brickData = append(brickData, o.ID, int(o.Type), removed)
	}

	return Snapshot{
		Time:       e.time,
		State:      e.state.String(),
		Status:     e.status,
		Score:      e.score,
		LevelIndex: e.level,
		Held:       e.held,

		BallX:      e.ball.X,
		BallY:      e.ball.Y,
		BallSpeed:  e.ball.Speed,
		BallAngle:  e.ball.Angle,
		SpeedExtra: e.speedExtra,

		PaddleLeft:  e.paddle.Left,
		PaddleRight: e.paddle.Right,

		PendingEvents:   e.events.Len(),
		BricksRemaining: remaining,
		BrickData:       brickData,
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := math.Float64bits(snap.Time)
	h = h*31 + uint64(snap.Score)      //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.LevelIndex) //#nosec G115 -- hash computation
	if snap.Held {
		h = h*31 + 1
	}
	for _, c := range snap.State {
		h = h*31 + uint64(c) //#nosec G115 -- hash computation
	}

	for _, f := range []float64{
		snap.BallX, snap.BallY, snap.BallSpeed, snap.BallAngle, snap.SpeedExtra,
		snap.PaddleLeft, snap.PaddleRight,
	} {
		h = h*31 + math.Float64bits(f)
	}

	h = h*31 + uint64(snap.PendingEvents)   //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.BricksRemaining) //#nosec G115 -- hash computation

	for _, v := range snap.BrickData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}

	return h
}

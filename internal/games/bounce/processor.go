package bounce

import "math"

// minLaunchAngle keeps the ball leaving the paddle at least this far from horizontal.
const minLaunchAngle = 0.15

// processEvent brings the world to the event time and applies the event.
func (e *Engine) processEvent(ev Event) {
	e.moveBall(ev.Time - e.time)

	switch ev.Kind {
	case EventPaddleStepLeft:
		e.paddle.centerAt(e.paddle.Center()-e.cfg.Paddle.Step, e.width)
		e.pinBall()
	case EventPaddleStepRight:
		e.paddle.centerAt(e.paddle.Center()+e.cfg.Paddle.Step, e.width)
		e.pinBall()
	case EventPaddleSetPosition:
		e.paddle.centerAt(ev.X, e.width)
		e.pinBall()
	case EventReleaseBall:
		e.release()
	case EventBounceHorizontal, EventBounceVertical, EventBouncePaddle:
		e.bounce(ev)
	case EventGameOver:
		e.status = "Game Over!"
		e.setState(StateGameOver)
	case EventScoreTick:
		e.score += int(math.Round(e.ball.Speed * e.cfg.Scoring.TimeFactor))
		e.schedule(Event{Kind: EventScoreTick, Obstacle: noObstacle}, e.cfg.Timing.ScoreInterval)
	case EventSpeedRampTick:
		e.speedExtra += e.cfg.Timing.SpeedIncrement
		e.schedule(Event{Kind: EventSpeedRampTick, Obstacle: noObstacle}, e.cfg.Timing.SpeedInterval)
	}
}

// release launches a held ball and starts the periodic ticks.
func (e *Engine) release() {
	if !e.held {
		return
	}
	e.held = false
	// The launch is a reflection off the paddle plane with no obstacle.
	e.schedule(Event{Kind: EventBounceHorizontal, Obstacle: noObstacle}, 0)
	if e.cfg.Timing.ScoreInterval > 0 {
		e.schedule(Event{Kind: EventScoreTick, Obstacle: noObstacle}, e.cfg.Timing.ScoreInterval)
	}
	if e.cfg.Timing.SpeedRamp && e.cfg.Timing.SpeedInterval > 0 {
		e.schedule(Event{Kind: EventSpeedRampTick, Obstacle: noObstacle}, e.cfg.Timing.SpeedInterval)
	}
}

// bounce reflects the ball, resolves the obstacle hit and predicts the next leg.
func (e *Engine) bounce(ev Event) {
	switch ev.Kind {
	case EventBounceHorizontal:
		e.ball.Angle = -e.ball.Angle
	case EventBounceVertical:
		e.ball.Angle = math.Pi - e.ball.Angle
	case EventBouncePaddle:
		switch {
		case e.state == StateBallMissed:
			// already falling through the footer
		case e.paddle.Covers(e.ball.X):
			e.ball.Angle = launchAngle(-e.ball.Angle + e.deflection(e.ball.X))
			e.emitSound(SoundCue{Cue: CuePaddle, Time: e.time})
		default:
			e.miss()
		}
	}

	e.hit(ev.Obstacle)
	if e.state == StateLevelComplete {
		return
	}
	e.queueBounce()
}

// deflection returns the angle offset for a paddle hit at x. The paddle half
// is split into len(table)+1 zones; the outermost zone gets the last entry.
func (e *Engine) deflection(x float64) float64 {
	table := e.cfg.Paddle.Deflection
	zone := e.paddle.HalfWidth / float64(len(table)+1)
	for i := range table {
		edge := zone * float64(i+1)
		d := table[len(table)-1-i]
		if x <= e.paddle.Left+edge {
			return -d
		}
		if x >= e.paddle.Right-edge {
			return d
		}
	}
	return 0
}

// launchAngle normalizes a and keeps it pointing upward, at least
// minLaunchAngle away from horizontal.
func launchAngle(a float64) float64 {
	a = normalizeAngle(a)
	if a > -minLaunchAngle || a < -math.Pi+minLaunchAngle {
		if math.Cos(a) < 0 {
			return -math.Pi + minLaunchAngle
		}
		return -minLaunchAngle
	}
	return a
}

// miss schedules the end of the game for when the ball leaves the footer.
func (e *Engine) miss() {
	vspeed := (e.ball.Speed + e.speedExtra) * math.Sin(e.ball.Angle)
	var delay float64
	if vspeed > 0 {
		delay = e.footer / vspeed
	}
	at := e.schedule(Event{Kind: EventGameOver, Obstacle: noObstacle}, delay)
	e.emitSound(SoundCue{Cue: CueGameOver, Time: at})
	e.setState(StateBallMissed)
}

// hit applies a bounce to obstacle i. The arena, stale indices and removed
// bricks are left alone.
func (e *Engine) hit(i int) {
	if i <= 0 || i >= len(e.obstacles) {
		return
	}
	o := &e.obstacles[i]
	if o.removed {
		return
	}

	switch o.Type {
	case ObstacleSilver:
		o.Type = ObstacleRegular
		o.Color = e.cfg.Arena.HitColor
		e.mutations = append(e.mutations, BrickMutation(-o.ID))
	case ObstacleRegular:
		o.removed = true
		e.mutations = append(e.mutations, BrickMutation(o.ID))
		e.score += e.cfg.Scoring.BrickBonus
		e.checkVictory()
	}
}

// checkVictory completes the level once no destructible brick remains.
func (e *Engine) checkVictory() {
	for _, o := range e.obstacles[1:] {
		if !o.removed && (o.Type == ObstacleRegular || o.Type == ObstacleSilver) {
			return
		}
	}
	e.status = "Victory!"
	e.emitSound(SoundCue{Cue: CueVictory, Time: e.time})
	e.setState(StateLevelComplete)
}

package bounce

import "math"

// candidate is the earliest contact found so far for the current leg.
type candidate struct {
	time     float64 // milliseconds from now
	kind     EventKind
	obstacle int
}

// normalizeAngle maps a into (-pi, pi].
func normalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a > math.Pi {
		a -= 2 * math.Pi
	} else if a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// queueBounce starts a new leg: it folds the pending speed ramp into the
// ball speed, finds the earliest contact along the leg and schedules it.
//
// Every obstacle is probed on both axes. The gap along an axis is measured
// from the leading side of the ball to the facing side of the obstacle
// (the far side for the arena, which holds the ball inside). A brick face
// counts when the ball box overlaps it at contact time, so brick faces are
// padded by the radius. This also settles corners: a box that clips a
// corner reaches one padded face first, and the face it reaches is the one
// the center overshoots least. A box whose center overshoots both padded
// faces passes the corner without contact.
func (e *Engine) queueBounce() {
	b := &e.ball
	b.Speed += e.speedExtra
	e.speedExtra = 0
	b.Angle = normalizeAngle(b.Angle)

	sin, cos := math.Sincos(b.Angle)
	hspeed := b.Speed * cos
	vspeed := b.Speed * sin
	box := b.Box()

	best := candidate{time: math.Inf(1), obstacle: noObstacle}
	consider := func(t float64, kind EventKind, i int) {
		if t < best.time {
			best = candidate{time: t, kind: kind, obstacle: i}
		}
	}

	if e.state != StateBallMissed && sin > 0 && box.Bottom < e.paddle.Top {
		consider((e.paddle.Top-box.Bottom)/vspeed, EventBouncePaddle, noObstacle)
	}

	for i := range e.obstacles {
		o := &e.obstacles[i]
		if o.removed {
			continue
		}

		var vdist, hdist float64
		if o.Type == ObstacleArena {
			vdist = pick(sin > 0, o.Y2-box.Bottom, box.Top-o.Y1)
			hdist = pick(cos > 0, o.X2-box.Right, box.Left-o.X1)
		} else {
			vdist = pick(sin > 0, o.Y1-box.Bottom, box.Top-o.Y2)
			hdist = pick(cos > 0, o.X1-box.Right, box.Left-o.X2)
		}

		var pad float64
		if o.Type != ObstacleArena {
			pad = b.Radius
		}

		if vdist > 0 {
			vtime := vdist / math.Abs(vspeed)
			nextX := b.X + hspeed*vtime
			if nextX >= o.X1-pad && nextX <= o.X2+pad {
				consider(vtime, EventBounceHorizontal, i)
			}
		}
		if hdist > 0 {
			htime := hdist / math.Abs(hspeed)
			nextY := b.Y + vspeed*htime
			if nextY >= o.Y1-pad && nextY <= o.Y2+pad {
				consider(htime, EventBounceVertical, i)
			}
		}
	}

	if best.kind == 0 {
		e.logger.Warn("no contact ahead", "t", e.time, "x", b.X, "y", b.Y, "angle", b.Angle)
		return
	}

	at := e.schedule(Event{Kind: best.kind, Obstacle: best.obstacle}, best.time)
	if best.kind != EventBouncePaddle {
		typ := e.obstacles[best.obstacle].Type
		e.emitSound(SoundCue{Cue: cueForObstacle(typ), Time: at, Brick: typ})
	}
	e.logger.Debug("bounce queued", "kind", best.kind, "obstacle", best.obstacle, "at", at)
}

func pick(cond bool, a, b float64) float64 {
	if cond {
		return a
	}
	return b
}

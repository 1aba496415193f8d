package bounce

// Cue names a sound the audio adapter should play.
type Cue int

const (
	CueWall Cue = iota + 1
	CueBrick
	CueMetal // silver and gold bricks
	CuePaddle
	CueGameOver
	CueVictory
)

// String returns the sound name of the cue.
func (c Cue) String() string {
	switch c {
	case CueWall:
		return "wall"
	case CueBrick:
		return "brick"
	case CueMetal:
		return "metal"
	case CuePaddle:
		return "paddle"
	case CueGameOver:
		return "gameover"
	case CueVictory:
		return "victory"
	default:
		return "unknown"
	}
}

// SoundCue is a sound scheduled at an absolute engine time.
// Cues for predicted bounces are queued when the bounce is predicted, so
// their Time usually lies in the future.
type SoundCue struct {
	Cue   Cue
	Time  float64
	Brick ObstacleType // obstacle type at prediction time, zero for non-bounce cues
}

// BrickMutation tells the renderer how a brick changed: a positive value is
// the id of a removed brick, a negative value the negated id of a recolored one.
type BrickMutation int

// Removed reports whether the brick was destroyed.
func (m BrickMutation) Removed() bool { return m > 0 }

// ID returns the brick id.
func (m BrickMutation) ID() int {
	if m < 0 {
		return int(-m)
	}
	return int(m)
}

// cueForObstacle maps the obstacle being hit to its sound.
func cueForObstacle(t ObstacleType) Cue {
	switch t {
	case ObstacleArena:
		return CueWall
	case ObstacleSilver, ObstacleGold:
		return CueMetal
	default:
		return CueBrick
	}
}

package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/vovakirdan/tui-bounce/internal/games/bounce"
)

const sampleRate = beep.SampleRate(44100)

// note is one step of a cue melody.
type note struct {
	freq float64
	dur  time.Duration
}

var melodies = map[bounce.Cue][]note{
	bounce.CueWall:     {{220, 40 * time.Millisecond}},
	bounce.CueBrick:    {{660, 50 * time.Millisecond}},
	bounce.CueMetal:    {{1320, 60 * time.Millisecond}},
	bounce.CuePaddle:   {{440, 50 * time.Millisecond}},
	bounce.CueGameOver: {{392, 150 * time.Millisecond}, {330, 150 * time.Millisecond}, {262, 300 * time.Millisecond}},
	bounce.CueVictory:  {{523, 100 * time.Millisecond}, {659, 100 * time.Millisecond}, {784, 100 * time.Millisecond}, {1047, 250 * time.Millisecond}},
}

// toneFor builds the streamer for a cue, or nil for unknown cues.
func toneFor(c bounce.Cue, volume float64) beep.Streamer {
	notes, ok := melodies[c]
	if !ok {
		return nil
	}

	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		sine, err := generators.SineTone(sampleRate, n.freq)
		if err != nil {
			return nil
		}
		parts = append(parts, newDecay(beep.Take(sampleRate.N(n.dur), sine), sampleRate.N(n.dur)))
	}
	return newVolume(beep.Seq(parts...), volume)
}

// newVolume scales a streamer linearly; zero or less is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// decay fades a note out exponentially over its length.
type decay struct {
	streamer beep.Streamer
	pos      int
	total    int
}

func newDecay(s beep.Streamer, total int) beep.Streamer {
	return &decay{streamer: s, total: total}
}

func (d *decay) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = d.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := math.Exp(-4 * float64(d.pos) / float64(d.total))
		samples[i][0] *= vol
		samples[i][1] *= vol
		d.pos++
	}
	return n, ok
}

func (d *decay) Err() error { return d.streamer.Err() }

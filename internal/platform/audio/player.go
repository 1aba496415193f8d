package audio

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-bounce/internal/games/bounce"
)

// Sink plays a cue after the given delay.
type Sink interface {
	Play(c bounce.Cue, delay time.Duration)
}

// speakerOnce guards speaker.Init, which may only run once per process.
var (
	speakerOnce sync.Once
	speakerErr  error
)

// Player plays cues through the system speaker. Delayed cues run on
// time.AfterFunc goroutines, so every method is safe for concurrent use.
type Player struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	volume float64
	timers map[uint64]*time.Timer
	nextID uint64

	muted  atomic.Bool
	silent atomic.Bool // speaker unavailable
	closed atomic.Bool
}

// NewPlayer initializes the speaker. When no audio device is available the
// player stays usable and silently drops every cue.
func NewPlayer(volume float64, logger *log.Logger) *Player {
	p := &Player{mixer: &beep.Mixer{}, volume: volume, timers: make(map[uint64]*time.Timer)}

	speakerOnce.Do(func() {
		speakerErr = speaker.Init(sampleRate, sampleRate.N(time.Second/20))
	})
	if speakerErr != nil {
		if logger != nil {
			logger.Warn("audio disabled", "err", speakerErr)
		}
		p.silent.Store(true)
		return p
	}

	speaker.Play(p.mixer)
	return p
}

// Play schedules a cue. A zero delay plays it right away.
func (p *Player) Play(c bounce.Cue, delay time.Duration) {
	if !p.Enabled() {
		return
	}
	if delay <= 0 {
		p.add(c)
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	id := p.nextID
	p.nextID++
	p.timers[id] = time.AfterFunc(delay, func() {
		p.mu.Lock()
		delete(p.timers, id)
		p.mu.Unlock()
		p.add(c)
	})
}

func (p *Player) add(c bounce.Cue) {
	if p.closed.Load() || p.muted.Load() {
		return
	}
	s := toneFor(c, p.volume)
	if s == nil {
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Cancel stops all delayed cues that have not played yet.
func (p *Player) Cancel() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for id, t := range p.timers {
		t.Stop()
		delete(p.timers, id)
	}
}

// ToggleMute flips the mute state and reports whether sound is now on.
func (p *Player) ToggleMute() bool {
	muted := !p.muted.Load()
	p.muted.Store(muted)
	return !muted
}

// Enabled reports whether cues are audible.
func (p *Player) Enabled() bool {
	return !p.silent.Load() && !p.muted.Load() && !p.closed.Load()
}

// Close cancels pending cues and clears the mixer.
func (p *Player) Close() {
	if !p.closed.CompareAndSwap(false, true) {
		return
	}
	p.Cancel()
	if p.silent.Load() {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
}

package audio

import "github.com/vovakirdan/tui-bounce/internal/games/bounce"

// Dispatcher connects a Scheduler to a Sink.
type Dispatcher struct {
	sched *Scheduler
	sink  Sink
}

// NewDispatcher creates a dispatcher. A nil sink discards every cue.
func NewDispatcher(window float64, sink Sink) *Dispatcher {
	return &Dispatcher{sched: NewScheduler(window), sink: sink}
}

// Feed queues cues drained from the engine and plays those due at now.
func (d *Dispatcher) Feed(now float64, cues []bounce.SoundCue) {
	d.sched.Push(cues...)
	for _, p := range d.sched.Due(now) {
		if d.sink != nil {
			d.sink.Play(p.Cue, p.Delay)
		}
	}
}

// Reset drops held cues and cancels delayed ones when the sink supports it.
func (d *Dispatcher) Reset() {
	d.sched.Reset()
	if c, ok := d.sink.(interface{ Cancel() }); ok {
		c.Cancel()
	}
}

// Pending returns the number of cues still held by the scheduler.
func (d *Dispatcher) Pending() int { return d.sched.Pending() }

package audio

import (
	"testing"
	"time"

	"github.com/vovakirdan/tui-bounce/internal/games/bounce"
)

type recordedCue struct {
	cue   bounce.Cue
	delay time.Duration
}

type recordingSink struct {
	played    []recordedCue
	cancelled int
}

func (r *recordingSink) Play(c bounce.Cue, delay time.Duration) {
	r.played = append(r.played, recordedCue{c, delay})
}

func (r *recordingSink) Cancel() { r.cancelled++ }

func TestSchedulerWindow(t *testing.T) {
	s := NewScheduler(200)
	s.Push(
		bounce.SoundCue{Cue: bounce.CueWall, Time: 1500},
		bounce.SoundCue{Cue: bounce.CueBrick, Time: 1150},
		bounce.SoundCue{Cue: bounce.CuePaddle, Time: 900},
	)

	due := s.Due(1000)
	if len(due) != 2 {
		t.Fatalf("Due(1000) returned %d cues, expected 2", len(due))
	}
	if due[0].Cue != bounce.CuePaddle || due[0].Delay != 0 {
		t.Errorf("Due(1000)[0] = %+v, expected paddle cue without delay", due[0])
	}
	if due[1].Cue != bounce.CueBrick || due[1].Delay != 150*time.Millisecond {
		t.Errorf("Due(1000)[1] = %+v, expected brick cue after 150ms", due[1])
	}
	if s.Pending() != 1 {
		t.Errorf("Pending() = %d, expected 1", s.Pending())
	}

	due = s.Due(1300)
	if len(due) != 1 || due[0].Cue != bounce.CueWall || due[0].Delay != 200*time.Millisecond {
		t.Errorf("Due(1300) = %+v, expected wall cue at the window edge", due)
	}
	if s.Pending() != 0 {
		t.Errorf("Pending() = %d after all cues played", s.Pending())
	}
}

func TestSchedulerDefaultWindow(t *testing.T) {
	if w := NewScheduler(0).Window(); w != DefaultWindow {
		t.Errorf("Window() = %v, expected %v", w, DefaultWindow)
	}
}

func TestSchedulerReset(t *testing.T) {
	s := NewScheduler(200)
	s.Push(bounce.SoundCue{Cue: bounce.CueWall, Time: 5000})
	s.Reset()
	if len(s.Due(5000)) != 0 {
		t.Error("Reset() should drop held cues")
	}
}

func TestDispatcherFeed(t *testing.T) {
	sink := &recordingSink{}
	d := NewDispatcher(200, sink)

	d.Feed(0, []bounce.SoundCue{
		{Cue: bounce.CueWall, Time: 100},
		{Cue: bounce.CueMetal, Time: 400, Brick: bounce.ObstacleSilver},
	})
	if len(sink.played) != 1 || sink.played[0].cue != bounce.CueWall {
		t.Fatalf("played = %+v, expected only the wall cue", sink.played)
	}
	if d.Pending() != 1 {
		t.Errorf("Pending() = %d, expected 1", d.Pending())
	}

	d.Feed(250, nil)
	if len(sink.played) != 2 || sink.played[1].delay != 150*time.Millisecond {
		t.Errorf("played = %+v, expected metal cue after 150ms", sink.played)
	}

	d.Feed(250, []bounce.SoundCue{{Cue: bounce.CueVictory, Time: 900}})
	d.Reset()
	if d.Pending() != 0 || sink.cancelled != 1 {
		t.Errorf("Reset() left %d pending, cancelled %d times", d.Pending(), sink.cancelled)
	}
}

func TestDispatcherNilSink(t *testing.T) {
	d := NewDispatcher(200, nil)
	d.Feed(0, []bounce.SoundCue{{Cue: bounce.CueWall, Time: 0}})
	d.Reset()
}

func TestToneFor(t *testing.T) {
	for c := range melodies {
		if toneFor(c, 0.5) == nil {
			t.Errorf("toneFor(%v) = nil", c)
		}
	}
	if toneFor(bounce.Cue(99), 0.5) != nil {
		t.Error("toneFor(unknown) should be nil")
	}
}

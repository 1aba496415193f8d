// Package audio turns the engine's sound cues into synthesized tones.
// The engine predicts bounces ahead of time, so most cues arrive before the
// moment they should be heard; the Scheduler holds them back until they fall
// inside the planning window and the Player delays them to the exact time.
package audio

import (
	"sort"
	"time"

	"github.com/vovakirdan/tui-bounce/internal/games/bounce"
)

// DefaultWindow is the planning window in engine milliseconds.
const DefaultWindow = 200.0

// Planned is a cue ready to be handed to a sink.
type Planned struct {
	Cue   bounce.Cue
	Delay time.Duration
}

// Scheduler buffers cues until they are due. It is not safe for concurrent
// use; the TUI feeds and polls it from the update goroutine.
type Scheduler struct {
	window  float64
	pending []bounce.SoundCue
}

// NewScheduler creates a scheduler with the given window in ms.
// A non-positive window falls back to DefaultWindow.
func NewScheduler(window float64) *Scheduler {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Scheduler{window: window}
}

// Window returns the planning window in ms.
func (s *Scheduler) Window() float64 { return s.window }

// Push adds cues drained from the engine.
func (s *Scheduler) Push(cues ...bounce.SoundCue) {
	s.pending = append(s.pending, cues...)
}

// Pending returns the number of cues still held back.
func (s *Scheduler) Pending() int { return len(s.pending) }

// Reset drops every pending cue. Call it when the engine clock restarts.
func (s *Scheduler) Reset() { s.pending = s.pending[:0] }

// Due removes and returns the cues whose time lies within the window of now,
// ordered by time. Cues already in the past play without delay.
func (s *Scheduler) Due(now float64) []Planned {
	var due []bounce.SoundCue
	kept := s.pending[:0]
	for _, c := range s.pending {
		if c.Time-now > s.window {
			kept = append(kept, c)
			continue
		}
		due = append(due, c)
	}
	s.pending = kept

	sort.SliceStable(due, func(i, j int) bool { return due[i].Time < due[j].Time })

	out := make([]Planned, 0, len(due))
	for _, c := range due {
		delay := c.Time - now
		if delay < 0 {
			delay = 0
		}
		out = append(out, Planned{
			Cue:   c.Cue,
			Delay: time.Duration(delay * float64(time.Millisecond)),
		})
	}
	return out
}

package bounce

import (
	"fmt"
	"sort"
)

// InputKind names a player input in a replay script.
type InputKind string

const (
	InputLeft     InputKind = "left"
	InputRight    InputKind = "right"
	InputPosition InputKind = "position"
	InputRelease  InputKind = "release"
)

func (k InputKind) event() EventKind {
	switch k {
	case InputLeft:
		return EventPaddleStepLeft
	case InputRight:
		return EventPaddleStepRight
	case InputPosition:
		return EventPaddleSetPosition
	default:
		return EventReleaseBall
	}
}

// Valid reports whether k is a known input kind.
func (k InputKind) Valid() bool {
	switch k {
	case InputLeft, InputRight, InputPosition, InputRelease:
		return true
	}
	return false
}

// Input is one player input at an absolute engine time.
type Input struct {
	At   float64   `yaml:"at" json:"at"`
	Kind InputKind `yaml:"kind" json:"kind"`
	X    float64   `yaml:"x,omitempty" json:"x,omitempty"`
}

// Script describes a reproducible run: where it starts, how the host drives
// Advance and which inputs arrive when.
type Script struct {
	Level    int     `yaml:"level" json:"level"` // -1 for free play
	Frame    float64 `yaml:"frame_ms" json:"frame_ms"`
	Duration float64 `yaml:"duration_ms" json:"duration_ms"`
	Inputs   []Input `yaml:"inputs" json:"inputs"`
}

// DefaultFrame is the Advance step used when a script leaves it unset.
const DefaultFrame = 1000.0 / 60

// Validate checks the script for values Replay cannot honor.
func (s Script) Validate() error {
	if s.Frame < 0 || !finite(s.Frame) {
		return fmt.Errorf("frame_ms %g must be a non-negative number", s.Frame)
	}
	if s.Duration < 0 || !finite(s.Duration) {
		return fmt.Errorf("duration_ms %g must be a non-negative number", s.Duration)
	}
	for i, in := range s.Inputs {
		if !in.Kind.Valid() {
			return fmt.Errorf("input %d: unknown kind %q", i, in.Kind)
		}
		if in.At < 0 || !finite(in.At) {
			return fmt.Errorf("input %d: time %g must be a non-negative number", i, in.At)
		}
		if !finite(in.X) {
			return fmt.Errorf("input %d: x %g must be finite", i, in.X)
		}
	}
	return nil
}

// Recorder captures the inputs of the current game at their absolute
// engine times. Replaying with the frame the run was played at reproduces
// the exact state. Runs with uneven frames, as the TUI plays them, replay
// to the same outcome but may differ in the last bits of the ball position.
type Recorder struct {
	script Script
}

// NewRecorder creates a recorder that reports frames of frame milliseconds.
func NewRecorder(frame float64) *Recorder {
	return &Recorder{script: Script{Level: -1, Frame: frame}}
}

func (r *Recorder) begin(level int) {
	r.script = Script{Level: level, Frame: r.script.Frame}
}

func (r *Recorder) record(in Input) {
	r.script.Inputs = append(r.script.Inputs, in)
}

// Script returns the recorded run lasting until the engine time now.
func (r *Recorder) Script(now float64) Script {
	s := r.script
	s.Inputs = append([]Input(nil), r.script.Inputs...)
	s.Duration = now
	return s
}

// Replayer drives a scripted game one frame at a time. Inputs are issued
// in the frame that contains their time.
type Replayer struct {
	e      *Engine
	script Script
	frame  float64
	inputs []Input
	next   int
}

// NewReplayer validates s and starts its game on e.
func NewReplayer(e *Engine, s Script) (*Replayer, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	frame := s.Frame
	if frame == 0 {
		frame = DefaultFrame
	}

	var err error
	if s.Level < 0 {
		err = e.StartFreePlay()
	} else {
		err = e.LoadLevel(s.Level)
	}
	if err != nil {
		return nil, err
	}

	inputs := append([]Input(nil), s.Inputs...)
	sort.SliceStable(inputs, func(i, j int) bool { return inputs[i].At < inputs[j].At })
	return &Replayer{e: e, script: s, frame: frame, inputs: inputs}, nil
}

// Frame returns the Advance step in milliseconds.
func (r *Replayer) Frame() float64 { return r.frame }

// Done reports whether the script ran out or the game ended.
func (r *Replayer) Done() bool {
	st := r.e.State()
	return r.e.Time() >= r.script.Duration || st.Terminal() || st == StateInit
}

// Step plays one frame. It returns false once the replay is done.
func (r *Replayer) Step() bool {
	if r.Done() {
		return false
	}
	step := min(r.frame, r.script.Duration-r.e.Time())
	end := r.e.Time() + step
	for ; r.next < len(r.inputs) && r.inputs[r.next].At < end; r.next++ {
		in := r.inputs[r.next]
		r.e.inputAt(in.Kind, in.At, in.X)
	}
	r.e.Advance(step)
	return true
}

// Replay starts the scripted game on e and drives it to the end of the
// script or to a terminal state.
func Replay(e *Engine, s Script) (Snapshot, error) {
	r, err := NewReplayer(e, s)
	if err != nil {
		return Snapshot{}, err
	}
	for r.Step() {
	}
	return e.Snapshot(), nil
}

// Package config provides YAML-based engine configuration loading and
// difficulty presets for the bounce game.
package config

// BounceConfig contains all tunables of the bounce engine.
type BounceConfig struct {
	Arena   BounceArena   `yaml:"arena"`
	Ball    BounceBall    `yaml:"ball"`
	Paddle  BouncePaddle  `yaml:"paddle"`
	Timing  BounceTiming  `yaml:"timing"`
	Scoring BounceScoring `yaml:"scoring"`
}

// BounceArena defines the play field and the brick grid.
// The arena width is derived from the grid: Columns*BrickWidth + 1.
type BounceArena struct {
	Columns      int     `yaml:"columns"`
	BrickWidth   float64 `yaml:"brick_width"`
	BrickHeight  float64 `yaml:"brick_height"`
	Height       float64 `yaml:"height"`        // paddle plane
	FooterHeight float64 `yaml:"footer_height"` // drop zone below the paddle
	MinWidth     float64 `yaml:"min_width"`
	MinHeight    float64 `yaml:"min_height"`
	Color        uint32  `yaml:"color"`
	HitColor     uint32  `yaml:"hit_color"` // silver brick after its first hit
}

// Width returns the arena width in pixels.
func (a BounceArena) Width() float64 {
	return float64(a.Columns)*a.BrickWidth + 1
}

// BounceBall defines the ball at the start of every game.
type BounceBall struct {
	Radius float64 `yaml:"radius"`
	Speed  float64 `yaml:"speed"` // pixels per millisecond
	Angle  float64 `yaml:"angle"` // radians, y grows downward
}

// BouncePaddle defines paddle geometry and steering.
type BouncePaddle struct {
	HalfWidth float64 `yaml:"half_width"`
	Step      float64 `yaml:"step"`
	// Deflection lists the angle offsets for the edge zones, innermost first.
	// The paddle half is split into len(Deflection)+1 zones; the two zones
	// around the center reflect without offset.
	Deflection []float64 `yaml:"deflection"`
}

// BounceTiming defines the periodic ticks.
type BounceTiming struct {
	ScoreInterval  float64 `yaml:"score_interval_ms"`
	SpeedRamp      bool    `yaml:"speed_ramp"`
	SpeedInterval  float64 `yaml:"speed_interval_ms"`
	SpeedIncrement float64 `yaml:"speed_increment"`
	SoundWindow    float64 `yaml:"sound_window_ms"` // audio planning horizon
}

// BounceScoring defines point awards.
type BounceScoring struct {
	BrickBonus int     `yaml:"brick_bonus"`
	TimeFactor float64 `yaml:"time_factor"` // points per tick = round(speed*factor)
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value to a preset. Unknown names map to normal.
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	default:
		return DifficultyNormal, false
	}
}

// IsFixedPreset returns true if the preset disables the speed ramp.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

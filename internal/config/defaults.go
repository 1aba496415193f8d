package config

import (
	_ "embed"
	"math"
)

//go:embed defaults/bounce.yaml
var defaultBounceYAML []byte

// DefaultBounceConfig returns the hard-coded bounce configuration.
func DefaultBounceConfig() BounceConfig {
	return BounceConfig{
		Arena: BounceArena{
			Columns:      16,
			BrickWidth:   40,
			BrickHeight:  20,
			Height:       652,
			FooterHeight: 48,
			MinWidth:     128,
			MinHeight:    64,
			Color:        0xdcdcdc,
			HitColor:     0x333333,
		},
		Ball: BounceBall{
			Radius: 8,
			Speed:  0.1,
			Angle:  math.Pi / 3,
		},
		Paddle: BouncePaddle{
			HalfWidth:  32,
			Step:       32,
			Deflection: []float64{0.2, 0.4, 0.6},
		},
		Timing: BounceTiming{
			ScoreInterval:  1000,
			SpeedRamp:      true,
			SpeedInterval:  20000,
			SpeedIncrement: 0.05,
			SoundWindow:    200,
		},
		Scoring: BounceScoring{
			BrickBonus: 100,
			TimeFactor: 10,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultBounceYAML
}

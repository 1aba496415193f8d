package core

// RuntimeConfig contains configuration passed to the front end at startup.
type RuntimeConfig struct {
	ScreenW  int  // Screen width in characters
	ScreenH  int  // Screen height in characters
	TickRate int  // Frames per second driving the engine
	Sound    bool // Whether the audio adapter is enabled
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Sound:    true,
	}
}

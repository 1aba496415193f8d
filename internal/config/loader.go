package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadBounce loads the bounce configuration.
// Search order: customPath -> ~/.bounce/configs/bounce.yaml -> ./configs/bounce.yaml -> embedded default
// Files only need to carry the keys they override.
func LoadBounce(customPath string) (BounceConfig, error) {
	cfg := DefaultBounceConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("bounce.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
			cfg = DefaultBounceConfig()
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/bounce.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
		cfg = DefaultBounceConfig()
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultBounceYAML, &cfg); err != nil {
		return DefaultBounceConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".bounce", "configs", filename)
}

// ApplyBouncePreset modifies the config based on a difficulty preset.
func ApplyBouncePreset(cfg *BounceConfig, preset DifficultyPreset) {
	cfg.Timing.SpeedRamp = !IsFixedPreset(preset)

	switch preset {
	case DifficultyEasy:
		cfg.Ball.Speed = 0.08
		cfg.Paddle.HalfWidth = 40
		cfg.Timing.SpeedIncrement = 0.03
	case DifficultyHard:
		cfg.Ball.Speed = 0.13
		cfg.Paddle.HalfWidth = 24
		cfg.Timing.SpeedIncrement = 0.07
	}
}

// bounce is a continuous-time brick breaker for the terminal.
//
// Usage:
//
//	bounce play [level]      - Play the campaign, optionally from a level
//	bounce menu              - Start the interactive menu
//	bounce serve             - Start SSH server for remote play
//	bounce web               - Start the HTTP score and replay server
//	bounce levels            - List campaign levels
//	bounce scores [mode]     - Show high scores
//	bounce simulate <script> - Replay an input script headlessly
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--db <path>           - Set database path (default: ~/.bounce/scores.db)
//	--config <path>       - Engine configuration YAML
//	--levels <path>       - Campaign file (YAML or JSON)
//	--difficulty <preset> - easy, normal, hard or fixed
//	--debug               - Verbose logging
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-bounce/internal/config"
	"github.com/vovakirdan/tui-bounce/internal/core"
	"github.com/vovakirdan/tui-bounce/internal/games/bounce/levels"
)

var (
	// Global flags
	flagFPS        int
	flagDBPath     string
	flagConfig     string
	flagLevels     string
	flagDifficulty string
	flagDebug      bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bounce",
	Short: "Bounce - a brick breaker in your terminal",
	Long: `Bounce is a brick breaker whose ball moves on an exact, event-driven
timeline: every wall, brick and paddle contact is predicted ahead of time.

Available commands:
  play      - Play the campaign or free play directly
  menu      - Interactive menu
  serve     - Start SSH server for remote play
  web       - Start HTTP server with scores and replays
  levels    - List campaign levels
  scores    - View high scores
  simulate  - Replay an input script without a terminal

Examples:
  bounce play
  bounce play 3 --difficulty hard
  bounce play --free
  bounce menu --levels ./my-campaign.yaml
  bounce serve --ssh :2222
  bounce simulate replay.yaml`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.bounce/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to engine config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLevels, "levels", "", "Path to a campaign file (default: built-in campaign)")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simulateCmd)
}

// newLogger creates a stderr logger with the given prefix.
func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// loadGameConfig reads the engine config and applies the difficulty preset.
func loadGameConfig() (config.BounceConfig, error) {
	cfg, err := config.LoadBounce(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDifficulty != "" {
		preset, ok := config.ParsePreset(flagDifficulty)
		if !ok {
			return cfg, fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
		}
		config.ApplyBouncePreset(&cfg, preset)
	}
	return cfg, nil
}

// loadCampaign reads the --levels file or the built-in campaign.
func loadCampaign() (levels.Game, error) {
	return levels.Load(flagLevels)
}

// runtimeConfig builds the front end settings from the terminal size.
func runtimeConfig() core.RuntimeConfig {
	rt := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		rt.ScreenW = w
		rt.ScreenH = h
	}
	if flagFPS > 0 {
		rt.TickRate = flagFPS
	}
	return rt
}

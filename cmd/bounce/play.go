package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-bounce/internal/platform/audio"
	"github.com/vovakirdan/tui-bounce/internal/platform/tui"
	"github.com/vovakirdan/tui-bounce/internal/storage"
)

var (
	flagFree   bool
	flagMute   bool
	flagVolume float64
	flagLog    string
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play the campaign",
	Long: `Start the campaign, optionally from a 1-based level, or free play.

Controls:
  Left/A, Right/D  - Move the paddle
  Mouse            - Move the paddle to the pointer
  Space/Click      - Launch the ball
  P                - Pause
  N                - Next level (after clearing one)
  R                - Restart
  M                - Toggle sound
  Esc/B            - Back (while paused or after the game)
  Ctrl+S           - Save a screenshot
  Ctrl+R           - Save a replay script
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Slower ball, wider paddle, gentle speed ramp
  normal - Configured values
  hard   - Faster ball, narrower paddle, steep speed ramp
  fixed  - Configured values without the speed ramp

Examples:
  bounce play
  bounce play 4
  bounce play --free --difficulty fixed
  bounce play --config ./my-bounce.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagFree, "free", false, "Free play: an empty arena, score by survival")
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
	playCmd.Flags().Float64Var(&flagVolume, "volume", 0.5, "Sound volume (0-1)")
	playCmd.Flags().StringVar(&flagLog, "log", "", "Write the game log to a file")
}

func runPlay(cmd *cobra.Command, args []string) error {
	sel := tui.Selection{FreePlay: flagFree}
	if len(args) == 1 {
		level, err := strconv.Atoi(args[0])
		if err != nil || level < 1 {
			return fmt.Errorf("invalid level %q", args[0])
		}
		sel.Level = level - 1
	}

	env, cleanup, err := localEnv()
	if err != nil {
		return err
	}
	defer cleanup()

	if !sel.FreePlay && sel.Level >= len(env.Levels.Levels) {
		return fmt.Errorf("level %d does not exist (campaign has %d)", sel.Level+1, len(env.Levels.Levels))
	}

	if err := tui.Run(env, sel); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}

// localEnv prepares everything a local terminal game needs. The returned
// cleanup closes the store, the sound player and the log file.
func localEnv() (tui.Env, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	// The terminal belongs to the game, so logs go to a file or nowhere.
	var logOut io.Writer = io.Discard
	if flagLog != "" {
		f, err := os.OpenFile(flagLog, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return tui.Env{}, cleanup, fmt.Errorf("cannot open log file: %w", err)
		}
		closers = append(closers, func() { f.Close() })
		logOut = f
	}
	logger := log.NewWithOptions(logOut, log.Options{ReportTimestamp: true, Prefix: "bounce"})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}

	cfg, err := loadGameConfig()
	if err != nil {
		cleanup()
		return tui.Env{}, func() {}, err
	}
	campaign, err := loadCampaign()
	if err != nil {
		cleanup()
		return tui.Env{}, func() {}, err
	}

	env := tui.Env{
		Levels:  campaign,
		Config:  cfg,
		Runtime: runtimeConfig(),
		Logger:  logger,
	}
	env.Runtime.Sound = !flagMute

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
	} else {
		env.Store = store
		closers = append(closers, func() { store.Close() })
	}

	if env.Runtime.Sound {
		player := audio.NewPlayer(flagVolume, logger)
		env.Sound = player
		closers = append(closers, player.Close)
	}

	return env, cleanup, nil
}

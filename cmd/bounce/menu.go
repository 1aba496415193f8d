package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-bounce/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the interactive menu",
	Long: `Start an interactive menu to pick campaign, free play, a starting
level or the high score tables.

Controls:
  Up/Down or W/S or J/K  - Navigate
  Enter/Space            - Select
  Tab                    - High scores
  Esc/B                  - Back
  Q                      - Quit`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func init() {
	menuCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
	menuCmd.Flags().Float64Var(&flagVolume, "volume", 0.5, "Sound volume (0-1)")
	menuCmd.Flags().StringVar(&flagLog, "log", "", "Write the game log to a file")
}

func runMenu(_ *cobra.Command, _ []string) error {
	env, cleanup, err := localEnv()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := tui.RunSession(env); err != nil {
		return fmt.Errorf("error running menu: %w", err)
	}
	return nil
}

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-bounce/internal/games/bounce"
)

var flagJSON bool

var simulateCmd = &cobra.Command{
	Use:   "simulate <script>",
	Short: "Replay an input script headlessly",
	Long: `Run a recorded or hand-written input script against a fresh engine and
print the final state. Scripts are YAML or JSON; Ctrl+R in a game saves one.

Script format:
  level: 0          # 0-based campaign level, -1 for free play
  frame_ms: 16.67   # Advance step
  duration_ms: 5000
  inputs:
    - {at: 0, kind: release}
    - {at: 120, kind: left}
    - {at: 400, kind: position, x: 300}

Examples:
  bounce simulate ~/.bounce/replays/campaign_20260101_120000.yaml
  bounce simulate run.json --json`,
	Args: cobra.ExactArgs(1),
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().BoolVar(&flagJSON, "json", false, "Print the final snapshot as JSON")
}

func runSimulate(_ *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("cannot read script: %w", err)
	}
	var script bounce.Script
	if err := yaml.Unmarshal(data, &script); err != nil {
		return fmt.Errorf("cannot parse script %s: %w", args[0], err)
	}

	cfg, err := loadGameConfig()
	if err != nil {
		return err
	}
	campaign, err := loadCampaign()
	if err != nil {
		return err
	}

	e := bounce.NewEngine(cfg,
		bounce.WithLogger(newLogger("bounce-sim")),
		bounce.WithLevels(campaign.Title, campaign.Levels),
	)
	snap, err := bounce.Replay(e, script)
	if err != nil {
		return err
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	}

	fmt.Printf("State:   %s\n", snap.State)
	fmt.Printf("Status:  %s\n", snap.Status)
	fmt.Printf("Time:    %.1f ms\n", snap.Time)
	fmt.Printf("Score:   %d\n", snap.Score)
	fmt.Printf("Bricks:  %d remaining\n", snap.BricksRemaining)
	fmt.Printf("Ball:    (%.2f, %.2f) speed %.4f\n", snap.BallX, snap.BallY, snap.BallSpeed)
	fmt.Printf("Hash:    %016x\n", snap.Hash())
	return nil
}

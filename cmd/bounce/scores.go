package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-bounce/internal/platform/tui"
	"github.com/vovakirdan/tui-bounce/internal/storage"
)

var (
	flagClear       bool
	flagInteractive bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores",
	Long: `Display the top 10 high scores for a mode (campaign or freeplay,
default campaign).

Examples:
  bounce scores
  bounce scores freeplay
  bounce scores -i
  bounce scores campaign --clear`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{storage.ModeCampaign, storage.ModeFreePlay},
	RunE:      runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all scores of the mode")
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse scores in the terminal UI")
}

func runScores(_ *cobra.Command, args []string) error {
	mode := storage.ModeCampaign
	if len(args) == 1 {
		mode = args[0]
	}
	if mode != storage.ModeCampaign && mode != storage.ModeFreePlay {
		return fmt.Errorf("unknown mode %q (want campaign or freeplay)", mode)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening scores database: %w", err)
	}
	defer store.Close()

	if flagInteractive {
		return tui.RunScoreboard(tui.Env{Store: store, Runtime: runtimeConfig()})
	}

	if flagClear {
		if err := store.ClearScores(mode); err != nil {
			return err
		}
		fmt.Printf("Cleared %s scores.\n", mode)
		return nil
	}

	scores, err := store.TopScores(mode, 10)
	if err != nil {
		return fmt.Errorf("error retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", mode)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'bounce play' to set the first high score!")
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-8s  %-5s  %-9s  %s\n", "Rank", "Score", "Level", "Result", "Date")
	fmt.Printf("  %-4s  %-8s  %-5s  %-9s  %s\n", "----", "-----", "-----", "------", "----")

	for i, entry := range scores {
		level := "-"
		if entry.Level > 0 {
			level = fmt.Sprintf("%d", entry.Level)
		}
		fmt.Printf("  %-4d  %-8d  %-5s  %-9s  %s\n",
			i+1, entry.Score, level, entry.Outcome, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.GetModeStats(mode); err == nil {
		fmt.Println()
		fmt.Printf("Best: %d  Games: %d  Average: %.0f  Victories: %d\n",
			stats.HighScore, stats.GamesCount, stats.AvgScore, stats.Victories)
	}
	return nil
}

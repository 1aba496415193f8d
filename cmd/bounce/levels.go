package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-bounce/internal/games/bounce/levels"
)

var flagLevelsDir string

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List campaign levels",
	Long: `Shows the levels of the campaign selected with --levels, or of every
game file in a directory with --dir.`,
	Args: cobra.NoArgs,
	RunE: runLevels,
}

func init() {
	levelsCmd.Flags().StringVar(&flagLevelsDir, "dir", "", "List every game file in this directory")
}

func runLevels(_ *cobra.Command, _ []string) error {
	if flagLevelsDir != "" {
		games, err := levels.LoadDir(flagLevelsDir)
		if err != nil {
			return err
		}
		if len(games) == 0 {
			fmt.Println("No game files found.")
			return nil
		}
		for i, g := range games {
			if i > 0 {
				fmt.Println()
			}
			printGame(g)
		}
		return nil
	}

	g, err := loadCampaign()
	if err != nil {
		return err
	}
	printGame(g)
	fmt.Println()
	fmt.Println("Run 'bounce play <n>' to start at level n.")
	return nil
}

func printGame(g levels.Game) {
	source := g.FilePath
	if source == "" {
		source = "built-in"
	}
	fmt.Printf("%s (%s)\n\n", g.Title, source)

	// Calculate column widths
	maxTitle := len("Title")
	for _, l := range g.Levels {
		maxTitle = max(maxTitle, len(l.Title))
	}

	fmt.Printf("  %-3s  %-*s  %s\n", "#", maxTitle, "Title", "Bricks")
	fmt.Printf("  %-3s  %-*s  %s\n", "--", maxTitle, "-----", "------")
	for i, l := range g.Levels {
		n := 0
		for _, b := range l.Bricks {
			n += b.Count
		}
		fmt.Printf("  %-3d  %-*s  %d\n", i+1, maxTitle, l.Title, n)
	}
}

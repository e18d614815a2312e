package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sokoban/internal/config"
	"github.com/vovakirdan/tui-sokoban/internal/scores"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all levels with their best scores",
	Long:  `Shows every level in the archive, with best scores where recorded.`,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	repo, err := openRepo(cfg)
	if err != nil {
		return err
	}

	store, err := scores.LoadOrInit(config.ExpandHome(cfg.Paths.ScoresFile), repo.Count())
	if err != nil {
		return err
	}

	fmt.Printf("Levels: %d\n\n", repo.Count())
	fmt.Printf("  %-5s  %-18s  %s\n", "Level", "Best by moves", "Best by pushes")
	fmt.Printf("  %-5s  %-18s  %s\n", "-----", "-------------", "--------------")

	for level := 1; level <= repo.Count(); level++ {
		bestMoves, bestPushes := store.BestFor(level)
		fmt.Printf("  %-5d  %-18s  %s\n", level, formatBest(bestMoves), formatBest(bestPushes))
	}

	fmt.Println()
	fmt.Println("Run 'sokoban play <level>' to play a level.")
	return nil
}

func formatBest(p *scores.Pair) string {
	if p == nil {
		return "-"
	}
	return fmt.Sprintf("%d moves, %d pushes", p.Moves, p.Pushes)
}

package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-sokoban/internal/config"
	"github.com/vovakirdan/tui-sokoban/internal/history"
	"github.com/vovakirdan/tui-sokoban/internal/platform/tui"
	"github.com/vovakirdan/tui-sokoban/internal/scores"
)

var flagBoard bool

var scoresCmd = &cobra.Command{
	Use:   "scores [level]",
	Short: "Show best scores and recent completed runs",
	Long: `Without an argument, shows recent completed runs across all levels.
With a level number, shows that level's best scores and its best runs.

Examples:
  sokoban scores
  sokoban scores 3
  sokoban scores --board`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagBoard, "board", false, "Open the interactive scoreboard")
}

func runScores(cmd *cobra.Command, args []string) error {
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

	runs, err := history.Open(cfg.Paths.HistoryDB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run history: %v\n", err)
		runs = nil
	}
	if runs != nil {
		defer runs.Close()
	}

	if flagBoard {
		_, height, termErr := term.GetSize(int(os.Stdout.Fd()))
		if termErr != nil {
			height = 24
		}
		return tui.Run(tui.NewScoreboardModel(store, runs, height))
	}

	if len(args) == 1 {
		level, convErr := strconv.Atoi(args[0])
		if convErr != nil || level < 1 || level > repo.Count() {
			return fmt.Errorf("invalid level %q", args[0])
		}
		return printLevelScores(store, runs, level)
	}

	return printRecentRuns(runs)
}

func printLevelScores(store *scores.Store, runs *history.Store, level int) error {
	bestMoves, bestPushes := store.BestFor(level)

	fmt.Printf("Level %d\n\n", level)
	fmt.Printf("  Best by moves:  %s\n", formatBest(bestMoves))
	fmt.Printf("  Best by pushes: %s\n", formatBest(bestPushes))

	if runs == nil {
		return nil
	}

	best, err := runs.BestRuns(level, 10)
	if err != nil {
		return err
	}
	if len(best) == 0 {
		fmt.Println()
		fmt.Println("No completed runs recorded yet.")
		return nil
	}

	fmt.Println()
	fmt.Printf("  %-4s  %-6s  %-6s  %s\n", "Rank", "Moves", "Pushes", "Date")
	fmt.Printf("  %-4s  %-6s  %-6s  %s\n", "----", "-----", "------", "----")
	for i, run := range best {
		fmt.Printf("  %-4d  %-6d  %-6d  %s\n",
			i+1, run.Moves, run.Pushes, run.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func printRecentRuns(runs *history.Store) error {
	if runs == nil {
		fmt.Println("Run history is unavailable.")
		return nil
	}

	recent, err := runs.RecentRuns(20)
	if err != nil {
		return err
	}
	if len(recent) == 0 {
		fmt.Println("No completed runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'sokoban play' to record the first one!")
		return nil
	}

	fmt.Println("Recent completed runs:")
	fmt.Println()
	fmt.Printf("  %-5s  %-6s  %-6s  %s\n", "Level", "Moves", "Pushes", "Date")
	fmt.Printf("  %-5s  %-6s  %-6s  %s\n", "-----", "-----", "------", "----")
	for _, run := range recent {
		fmt.Printf("  %-5d  %-6d  %-6d  %s\n",
			run.Level, run.Moves, run.Pushes, run.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

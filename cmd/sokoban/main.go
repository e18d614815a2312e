// sokoban is a terminal Sokoban: push every package onto a home cell in as
// few moves as you can.
//
// Usage:
//
//	sokoban play [level]     - Play, resuming from the saved level cursor
//	sokoban list             - List levels and best scores
//	sokoban scores [level]   - Show best scores and recent completed runs
//	sokoban serve            - Start SSH server for remote play
//
// Global flags:
//
//	--config <path>  - Config file (default: ~/.sokoban/config.yaml)
//	--levels <path>  - Level archive (default: embedded level set)
//	--scores <path>  - Score document (default: ~/.sokoban/scores.yaml)
//	--db <path>      - Run history database (default: ~/.sokoban/history.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sokoban/internal/config"
	"github.com/vovakirdan/tui-sokoban/internal/levels"
)

var (
	// Global flags
	flagConfig  string
	flagLevels  string
	flagScores  string
	flagHistory string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sokoban",
	Short: "Sokoban - push packages onto home cells in your terminal",
	Long: `Sokoban is a terminal puzzle game. Move the player (X) to push every
package ($) onto a home cell (.). A move that pushes a package counts as a
push; best scores track the fewest moves and the fewest pushes per level.

Available commands:
  play     - Play, resuming from the saved level cursor
  list     - Show all levels with their best scores
  scores   - View best scores and recent completed runs
  serve    - Start SSH server for remote play

Examples:
  sokoban play
  sokoban play 3
  sokoban list
  sokoban scores 1
  sokoban serve --ssh :2222`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLevels, "levels", "", "Path to level archive (zip)")
	rootCmd.PersistentFlags().StringVar(&flagScores, "scores", "", "Path to score document")
	rootCmd.PersistentFlags().StringVar(&flagHistory, "db", "", "Path to run history database")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadConfig merges the config file with command-line overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagLevels != "" {
		cfg.Paths.LevelsArchive = flagLevels
	}
	if flagScores != "" {
		cfg.Paths.ScoresFile = flagScores
	}
	if flagHistory != "" {
		cfg.Paths.HistoryDB = flagHistory
	}
	return cfg, nil
}

// openRepo opens the configured level archive, or the embedded set.
func openRepo(cfg config.Config) (*levels.Repo, error) {
	if cfg.Paths.LevelsArchive != "" {
		return levels.Open(config.ExpandHome(cfg.Paths.LevelsArchive))
	}
	return levels.OpenEmbedded()
}

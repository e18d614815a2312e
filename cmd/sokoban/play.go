package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-sokoban/internal/config"
	"github.com/vovakirdan/tui-sokoban/internal/history"
	"github.com/vovakirdan/tui-sokoban/internal/platform/tui"
	"github.com/vovakirdan/tui-sokoban/internal/scores"
	"github.com/vovakirdan/tui-sokoban/internal/session"
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play Sokoban",
	Long: `Start playing. Without an argument the game resumes from the saved
level cursor; with a level number it starts that exact level.

Controls:
  h/j/k/l    - Move (or use the arrow keys)
  u          - Undo the last move
  r          - Restart the level
  n / p      - Next / previous level
  q/Ctrl+C   - Quit

Examples:
  sokoban play
  sokoban play 3`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	startLevel := 0
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return fmt.Errorf("invalid level %q", args[0])
		}
		startLevel = n
	}

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
		// Continue without history - the game still works
		runs = nil
	}
	if runs != nil {
		defer runs.Close()
	}

	// Probe the terminal so resize events have a sane starting point.
	if _, _, termErr := term.GetSize(int(os.Stdout.Fd())); termErr != nil {
		fmt.Fprintln(os.Stderr, "Warning: not a terminal; display may be degraded")
	}

	presenter := tui.NewDisplay()
	sess := session.New(repo, store, runs, presenter, log.New(io.Discard))
	model := tui.NewPlayModel(sess, presenter, startLevel, cfg.Display.ShowLegend)

	return tui.Run(model)
}

// Package session orchestrates one Sokoban game: it binds a level repository
// and score store to the active puzzle, relays presenter events into puzzle
// operations, and records scores on completion.
package session

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-sokoban/internal/game"
	"github.com/vovakirdan/tui-sokoban/internal/history"
	"github.com/vovakirdan/tui-sokoban/internal/levels"
	"github.com/vovakirdan/tui-sokoban/internal/scores"
)

// State is the session lifecycle phase.
type State int

const (
	// StateNoLevel is the initial state, before the first start.
	StateNoLevel State = iota
	// StatePlaying means an active, unsolved puzzle exists.
	StatePlaying
	// StateSolved means the current puzzle has been completed.
	StateSolved
)

// Stats is the header information the presenter renders above the grid.
type Stats struct {
	Level      int
	Moves      int
	Pushes     int
	BestMoves  *scores.Pair
	BestPushes *scores.Pair
}

// Presenter is the rendering collaborator. The session never touches the
// display directly; it hands the presenter row data and statistics.
type Presenter interface {
	// RenderFull redraws the whole grid and header.
	RenderFull(rows []game.RenderedRow, stats Stats)
	// RenderRows redraws only the given rows, plus the header stats.
	RenderRows(rows []game.RenderedRow, stats Stats)
	// RenderCompletion overlays the level-complete splash.
	RenderCompletion(moves, pushes int)
	// ShowMessage reports a user-visible, non-fatal condition.
	ShowMessage(msg string)
}

// Session is the single-owner orchestrator binding repository, score store
// and the active puzzle. Exactly one exists per process.
type Session struct {
	repo      *levels.Repo
	store     *scores.Store
	runs      *history.Store
	presenter Presenter
	logger    *log.Logger

	puzzle *game.Puzzle
	state  State
}

// New creates a session. The runs store may be nil; run history is then
// skipped. A nil logger discards output.
func New(repo *levels.Repo, store *scores.Store, runs *history.Store, presenter Presenter, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Session{
		repo:      repo,
		store:     store,
		runs:      runs,
		presenter: presenter,
		logger:    logger,
	}
}

// State returns the session lifecycle phase.
func (s *Session) State() State {
	return s.state
}

// Puzzle returns the active puzzle, or nil before the first start.
func (s *Session) Puzzle() *game.Puzzle {
	return s.puzzle
}

// Start selects an explicit level and begins it. The previous puzzle stays
// active if the level cannot be started.
func (s *Session) Start(level int) error {
	prev := s.store.CurrentLevel()
	if err := s.store.Select(level); err != nil {
		return err
	}
	return s.begin(prev)
}

// StartStep moves the level cursor by delta (0 restarts the current level,
// +1/-1 switch level) and begins the resulting level.
func (s *Session) StartStep(delta int) error {
	prev := s.store.CurrentLevel()
	if err := s.store.Step(delta); err != nil {
		return err
	}
	return s.begin(prev)
}

// begin loads the cursor's level and replaces the active puzzle. On a
// recoverable failure the cursor is rolled back to prev and the previous
// puzzle, if any, stays active.
func (s *Session) begin(prev int) error {
	level := s.store.CurrentLevel()

	rows, err := s.repo.Load(level)
	if err != nil {
		return s.refuse(prev, level, err)
	}

	puzzle, err := game.New(rows, level)
	if err != nil {
		return s.refuse(prev, level, err)
	}

	s.puzzle = puzzle
	s.state = StatePlaying
	s.presenter.RenderFull(puzzle.RenderAllRows(), s.stats())
	return nil
}

func (s *Session) refuse(prev, level int, err error) error {
	if errors.Is(err, levels.ErrNotFound) || errors.Is(err, game.ErrInvalidLevel) {
		if prev != level {
			if selErr := s.store.Select(prev); selErr != nil {
				s.logger.Warn("could not restore level cursor", "error", selErr)
			}
		}
		s.presenter.ShowMessage(fmt.Sprintf("cannot start level %d: %v", level, err))
	}
	return err
}

// ApplyMotion delegates a directional key to the puzzle and forwards the
// changed rows to the presenter. Completing the level records the score and
// requests the completion overlay.
func (s *Session) ApplyMotion(dir game.Direction) error {
	if s.puzzle == nil || s.state != StatePlaying {
		return nil
	}

	changed := s.puzzle.HandleMotion(dir)
	if len(changed) == 0 {
		return nil
	}

	if !s.puzzle.Finished() {
		s.presenter.RenderRows(s.renderRows(changed), s.stats())
		return nil
	}

	s.state = StateSolved
	moves, pushes := s.puzzle.MoveCount(), s.puzzle.PushCount()

	var recordErr error
	if err := s.store.Record(s.puzzle.Level(), moves, pushes); err != nil {
		// Gameplay state and persisted score state are independent; the
		// puzzle stays solved even when the write fails.
		s.logger.Warn("could not record score", "level", s.puzzle.Level(), "error", err)
		recordErr = err
	}
	if s.runs != nil {
		if _, err := s.runs.SaveRun(s.puzzle.Level(), moves, pushes); err != nil {
			s.logger.Warn("could not save run history", "level", s.puzzle.Level(), "error", err)
		}
	}

	s.presenter.RenderRows(s.renderRows(changed), s.stats())
	s.presenter.RenderCompletion(moves, pushes)
	return recordErr
}

// ApplyUndo delegates an undo to the puzzle and forwards the restored rows.
// Undo is disallowed once the level is solved.
func (s *Session) ApplyUndo() {
	if s.puzzle == nil || s.state != StatePlaying {
		return
	}
	changed := s.puzzle.Undo()
	if len(changed) == 0 {
		return
	}
	s.presenter.RenderRows(s.renderRows(changed), s.stats())
}

func (s *Session) renderRows(indices []int) []game.RenderedRow {
	rows := make([]game.RenderedRow, 0, len(indices))
	for _, i := range indices {
		text, spans := s.puzzle.RenderRow(i)
		rows = append(rows, game.RenderedRow{Index: i, Text: text, Spans: spans})
	}
	return rows
}

func (s *Session) stats() Stats {
	bestMoves, bestPushes := s.store.BestFor(s.puzzle.Level())
	return Stats{
		Level:      s.puzzle.Level(),
		Moves:      s.puzzle.MoveCount(),
		Pushes:     s.puzzle.PushCount(),
		BestMoves:  bestMoves,
		BestPushes: bestPushes,
	}
}

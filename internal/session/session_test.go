package session

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-sokoban/internal/game"
	"github.com/vovakirdan/tui-sokoban/internal/levels"
	"github.com/vovakirdan/tui-sokoban/internal/scores"
)

// fakePresenter records every callback so tests can assert on what the
// session asked to be drawn.
type fakePresenter struct {
	fullRedraws int
	rowBatches  [][]game.RenderedRow
	lastStats   Stats
	completions [][2]int
	messages    []string
}

func (p *fakePresenter) RenderFull(rows []game.RenderedRow, stats Stats) {
	p.fullRedraws++
	p.lastStats = stats
}

func (p *fakePresenter) RenderRows(rows []game.RenderedRow, stats Stats) {
	p.rowBatches = append(p.rowBatches, rows)
	p.lastStats = stats
}

func (p *fakePresenter) RenderCompletion(moves, pushes int) {
	p.completions = append(p.completions, [2]int{moves, pushes})
}

func (p *fakePresenter) ShowMessage(msg string) {
	p.messages = append(p.messages, msg)
}

// testRepo builds an archive with two playable levels and a broken third
// one that has no player glyph.
func testRepo(t *testing.T) *levels.Repo {
	t.Helper()

	entries := map[string]string{
		"level1.sok": "######\n#X $.#\n######\n",
		"level2.sok": "#####\n#X$.#\n#####\n",
		"level3.sok": "#####\n# $.#\n#####\n",
	}

	path := filepath.Join(t.TempDir(), "levels.zip")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create archive: %v", err)
	}
	w := zip.NewWriter(f)
	for name, body := range entries {
		entry, err := w.Create(name)
		if err != nil {
			t.Fatalf("create entry %s: %v", name, err)
		}
		if _, err := entry.Write([]byte(body)); err != nil {
			t.Fatalf("write entry %s: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close archive: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close file: %v", err)
	}

	repo, err := levels.Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	return repo
}

func newSession(t *testing.T) (*Session, *fakePresenter, *scores.Store) {
	t.Helper()
	repo := testRepo(t)
	store, err := scores.LoadOrInit(filepath.Join(t.TempDir(), "scores.yaml"), repo.Count())
	if err != nil {
		t.Fatalf("LoadOrInit() failed: %v", err)
	}
	presenter := &fakePresenter{}
	return New(repo, store, nil, presenter, nil), presenter, store
}

func TestStartRendersFullGrid(t *testing.T) {
	sess, presenter, store := newSession(t)

	if err := sess.Start(1); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	if sess.State() != StatePlaying {
		t.Errorf("State() = %v, want StatePlaying", sess.State())
	}
	if presenter.fullRedraws != 1 {
		t.Errorf("full redraws = %d, want 1", presenter.fullRedraws)
	}
	if presenter.lastStats.Level != 1 || presenter.lastStats.Moves != 0 {
		t.Errorf("stats = %+v, want level 1 with 0 moves", presenter.lastStats)
	}
	if store.CurrentLevel() != 1 {
		t.Errorf("CurrentLevel() = %d, want 1", store.CurrentLevel())
	}
}

func TestMotionRendersChangedRows(t *testing.T) {
	sess, presenter, _ := newSession(t)
	if err := sess.Start(1); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	if err := sess.ApplyMotion(game.DirRight); err != nil {
		t.Fatalf("ApplyMotion() failed: %v", err)
	}

	if len(presenter.rowBatches) != 1 {
		t.Fatalf("row batches = %d, want 1", len(presenter.rowBatches))
	}
	batch := presenter.rowBatches[0]
	if len(batch) != 1 || batch[0].Index != 1 {
		t.Errorf("changed rows = %v, want row 1 only", batch)
	}
	if presenter.lastStats.Moves != 1 || presenter.lastStats.Pushes != 0 {
		t.Errorf("stats = %+v, want 1 move 0 pushes", presenter.lastStats)
	}
}

func TestRejectedMotionRendersNothing(t *testing.T) {
	sess, presenter, _ := newSession(t)
	if err := sess.Start(1); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	if err := sess.ApplyMotion(game.DirLeft); err != nil {
		t.Fatalf("ApplyMotion() failed: %v", err)
	}

	if len(presenter.rowBatches) != 0 {
		t.Errorf("rejected motion produced %d row batches, want 0", len(presenter.rowBatches))
	}
}

func TestCompletionRecordsScore(t *testing.T) {
	sess, presenter, store := newSession(t)
	if err := sess.Start(2); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	// One push to the right solves level 2.
	if err := sess.ApplyMotion(game.DirRight); err != nil {
		t.Fatalf("ApplyMotion() failed: %v", err)
	}

	if sess.State() != StateSolved {
		t.Errorf("State() = %v, want StateSolved", sess.State())
	}
	if len(presenter.completions) != 1 {
		t.Fatalf("completions = %d, want 1", len(presenter.completions))
	}
	if presenter.completions[0] != [2]int{1, 1} {
		t.Errorf("completion = %v, want [1 1]", presenter.completions[0])
	}

	bestMoves, bestPushes := store.BestFor(2)
	if bestMoves == nil || bestMoves.Moves != 1 || bestMoves.Pushes != 1 {
		t.Errorf("best by moves = %v, want {1 1}", bestMoves)
	}
	if bestPushes == nil || bestPushes.Moves != 1 || bestPushes.Pushes != 1 {
		t.Errorf("best by pushes = %v, want {1 1}", bestPushes)
	}
}

func TestNoMotionOrUndoAfterSolve(t *testing.T) {
	sess, presenter, _ := newSession(t)
	if err := sess.Start(2); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	if err := sess.ApplyMotion(game.DirRight); err != nil {
		t.Fatalf("ApplyMotion() failed: %v", err)
	}

	batches := len(presenter.rowBatches)
	if err := sess.ApplyMotion(game.DirLeft); err != nil {
		t.Fatalf("ApplyMotion() after solve failed: %v", err)
	}
	sess.ApplyUndo()

	if len(presenter.rowBatches) != batches {
		t.Error("solved session still produced row updates")
	}
	if sess.Puzzle().MoveCount() != 1 {
		t.Errorf("MoveCount() = %d, want 1", sess.Puzzle().MoveCount())
	}
}

func TestUndoRendersRestoredRows(t *testing.T) {
	sess, presenter, _ := newSession(t)
	if err := sess.Start(1); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	if err := sess.ApplyMotion(game.DirRight); err != nil {
		t.Fatalf("ApplyMotion() failed: %v", err)
	}

	sess.ApplyUndo()

	if len(presenter.rowBatches) != 2 {
		t.Fatalf("row batches = %d, want 2", len(presenter.rowBatches))
	}
	if presenter.lastStats.Moves != 0 {
		t.Errorf("stats after undo = %+v, want 0 moves", presenter.lastStats)
	}
	if sess.Puzzle().PlayerPosition() != (game.Pos{X: 1, Y: 1}) {
		t.Errorf("player at %v, want {1 1}", sess.Puzzle().PlayerPosition())
	}
}

func TestRefusedSwitchKeepsCurrentPuzzle(t *testing.T) {
	sess, presenter, store := newSession(t)
	if err := sess.Start(2); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	// Level 3 has no player and cannot be started.
	err := sess.StartStep(1)
	if !errors.Is(err, game.ErrInvalidLevel) {
		t.Fatalf("StartStep() error = %v, want ErrInvalidLevel", err)
	}

	if store.CurrentLevel() != 2 {
		t.Errorf("CurrentLevel() = %d, want cursor rolled back to 2", store.CurrentLevel())
	}
	if sess.Puzzle().Level() != 2 {
		t.Errorf("Puzzle().Level() = %d, want previous puzzle kept", sess.Puzzle().Level())
	}
	if sess.State() != StatePlaying {
		t.Errorf("State() = %v, want StatePlaying", sess.State())
	}
	if len(presenter.messages) != 1 {
		t.Errorf("messages = %v, want one refusal message", presenter.messages)
	}
}

func TestStartMissingLevel(t *testing.T) {
	sess, _, store := newSession(t)
	if err := sess.Start(1); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	err := sess.Start(9)
	if !errors.Is(err, levels.ErrNotFound) {
		t.Fatalf("Start(9) error = %v, want ErrNotFound", err)
	}
	if store.CurrentLevel() != 1 {
		t.Errorf("CurrentLevel() = %d, want 1", store.CurrentLevel())
	}
}

func TestDispatchRouting(t *testing.T) {
	sess, presenter, store := newSession(t)
	if err := sess.Start(1); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	if err := sess.Dispatch(MotionEvent(game.DirRight)); err != nil {
		t.Fatalf("Dispatch(motion) failed: %v", err)
	}
	if sess.Puzzle().MoveCount() != 1 {
		t.Errorf("MoveCount() = %d, want 1", sess.Puzzle().MoveCount())
	}

	if err := sess.Dispatch(CommandEvent(CmdUndo)); err != nil {
		t.Fatalf("Dispatch(undo) failed: %v", err)
	}
	if sess.Puzzle().MoveCount() != 0 {
		t.Errorf("MoveCount() after undo = %d, want 0", sess.Puzzle().MoveCount())
	}

	if err := sess.Dispatch(CommandEvent(CmdNext)); err != nil {
		t.Fatalf("Dispatch(next) failed: %v", err)
	}
	if store.CurrentLevel() != 2 {
		t.Errorf("CurrentLevel() = %d, want 2", store.CurrentLevel())
	}

	if err := sess.Dispatch(CommandEvent(CmdPrevious)); err != nil {
		t.Fatalf("Dispatch(previous) failed: %v", err)
	}
	if store.CurrentLevel() != 1 {
		t.Errorf("CurrentLevel() = %d, want 1", store.CurrentLevel())
	}

	redraws := presenter.fullRedraws
	if err := sess.Dispatch(CommandEvent(CmdRestart)); err != nil {
		t.Fatalf("Dispatch(restart) failed: %v", err)
	}
	if presenter.fullRedraws != redraws+1 {
		t.Error("restart did not redraw the grid")
	}
}

package scores

import (
	"os"
	"path/filepath"
	"testing"
)

func newStore(t *testing.T, levelCount int) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scores.yaml")
	s, err := LoadOrInit(path, levelCount)
	if err != nil {
		t.Fatalf("LoadOrInit() failed: %v", err)
	}
	return s, path
}

func TestLoadOrInitCreatesDocument(t *testing.T) {
	s, path := newStore(t, 6)

	if _, err := os.Stat(path); err != nil {
		t.Errorf("document was not persisted: %v", err)
	}
	if s.CurrentLevel() != 0 {
		t.Errorf("CurrentLevel() = %d, want 0", s.CurrentLevel())
	}
	for level := 1; level <= 6; level++ {
		bestMoves, bestPushes := s.BestFor(level)
		if bestMoves != nil || bestPushes != nil {
			t.Errorf("level %d has scores %v/%v, want unset", level, bestMoves, bestPushes)
		}
	}
}

func TestLoadOrInitReloadsExisting(t *testing.T) {
	s, path := newStore(t, 6)

	if err := s.Select(3); err != nil {
		t.Fatalf("Select() failed: %v", err)
	}
	if err := s.Record(3, 12, 4); err != nil {
		t.Fatalf("Record() failed: %v", err)
	}

	reloaded, err := LoadOrInit(path, 6)
	if err != nil {
		t.Fatalf("LoadOrInit() reload failed: %v", err)
	}
	if reloaded.CurrentLevel() != 3 {
		t.Errorf("CurrentLevel() = %d, want 3", reloaded.CurrentLevel())
	}
	bestMoves, bestPushes := reloaded.BestFor(3)
	if bestMoves == nil || bestMoves.Moves != 12 || bestMoves.Pushes != 4 {
		t.Errorf("best by moves = %v, want {12 4}", bestMoves)
	}
	if bestPushes == nil || bestPushes.Moves != 12 || bestPushes.Pushes != 4 {
		t.Errorf("best by pushes = %v, want {12 4}", bestPushes)
	}
}

func TestStepClamps(t *testing.T) {
	s, _ := newStore(t, 6)

	tests := []struct {
		name  string
		from  int
		delta int
		want  int
	}{
		{"fresh cursor steps to first level", 0, 1, 1},
		{"no underflow at first level", 1, -1, 1},
		{"no overflow at last level", 6, 1, 6},
		{"restart keeps level", 4, 0, 4},
		{"big negative clamps", 5, -100, 1},
		{"big positive clamps", 2, 100, 6},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := s.Select(tc.from); err != nil {
				t.Fatalf("Select() failed: %v", err)
			}
			if err := s.Step(tc.delta); err != nil {
				t.Fatalf("Step() failed: %v", err)
			}
			if s.CurrentLevel() != tc.want {
				t.Errorf("CurrentLevel() = %d, want %d", s.CurrentLevel(), tc.want)
			}
		})
	}
}

func TestStepNoWriteWhenUnchanged(t *testing.T) {
	s, path := newStore(t, 6)
	if err := s.Select(1); err != nil {
		t.Fatalf("Select() failed: %v", err)
	}

	// Removing the document exposes any further write.
	if err := os.Remove(path); err != nil {
		t.Fatalf("remove document: %v", err)
	}

	if err := s.Step(-1); err != nil {
		t.Fatalf("Step() failed: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("clamped no-op step rewrote the document")
	}
}

func TestRecordIndependentComparisons(t *testing.T) {
	s, _ := newStore(t, 6)

	// Order-independent: minimum moves and minimum pushes win separately.
	for _, run := range [][2]int{{5, 5}, {3, 8}, {4, 2}} {
		if err := s.Record(1, run[0], run[1]); err != nil {
			t.Fatalf("Record(%v) failed: %v", run, err)
		}
	}

	bestMoves, bestPushes := s.BestFor(1)
	if bestMoves == nil || bestMoves.Moves != 3 || bestMoves.Pushes != 8 {
		t.Errorf("best by moves = %v, want {3 8}", bestMoves)
	}
	if bestPushes == nil || bestPushes.Moves != 4 || bestPushes.Pushes != 2 {
		t.Errorf("best by pushes = %v, want {4 2}", bestPushes)
	}
}

func TestRecordFirstCompletionSetsBoth(t *testing.T) {
	s, _ := newStore(t, 6)

	if err := s.Record(2, 40, 11); err != nil {
		t.Fatalf("Record() failed: %v", err)
	}

	bestMoves, bestPushes := s.BestFor(2)
	if bestMoves == nil || bestPushes == nil {
		t.Fatal("first completion left a record unset")
	}
	if *bestMoves != (Pair{Moves: 40, Pushes: 11}) || *bestPushes != (Pair{Moves: 40, Pushes: 11}) {
		t.Errorf("records = %v/%v, want {40 11} both", bestMoves, bestPushes)
	}
}

func TestRecordNoWriteWhenWorse(t *testing.T) {
	s, path := newStore(t, 6)
	if err := s.Record(1, 10, 5); err != nil {
		t.Fatalf("Record() failed: %v", err)
	}

	if err := os.Remove(path); err != nil {
		t.Fatalf("remove document: %v", err)
	}

	if err := s.Record(1, 11, 6); err != nil {
		t.Fatalf("Record() failed: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("worse run rewrote the document")
	}
}

func TestSelectPersistsOnChangeOnly(t *testing.T) {
	s, path := newStore(t, 6)
	if err := s.Select(2); err != nil {
		t.Fatalf("Select() failed: %v", err)
	}

	if err := os.Remove(path); err != nil {
		t.Fatalf("remove document: %v", err)
	}

	if err := s.Select(2); err != nil {
		t.Fatalf("repeat Select() failed: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("unchanged select rewrote the document")
	}
}

// Package scores owns the level-selection cursor and per-level best-score
// pairs, persisted as a YAML document that is rewritten in full after every
// mutation.
package scores

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ErrPersistence is returned when the score document cannot be read or written.
var ErrPersistence = errors.New("scores: persistence failure")

// Pair is one recorded result: the move and push counts of a completed run.
type Pair struct {
	Moves  int `yaml:"moves"`
	Pushes int `yaml:"pushes"`
}

// LevelScores holds the two independently tracked records for one level.
// A nil pair means no completed run has set that record yet.
type LevelScores struct {
	BestMoves  *Pair `yaml:"best_moves,omitempty"`
	BestPushes *Pair `yaml:"best_pushes,omitempty"`
}

// document is the persisted YAML structure. Level numbers are string keys.
type document struct {
	CurrentLevel int                     `yaml:"current_level"`
	Scores       map[string]*LevelScores `yaml:"scores"`
}

// Store is the durable score table plus the level-selection cursor.
type Store struct {
	path       string
	levelCount int
	doc        document
}

// LoadOrInit reads the persisted document at path if present; otherwise it
// synthesizes one with every level unset and cursor 0, persisting it
// immediately.
func LoadOrInit(path string, levelCount int) (*Store, error) {
	s := &Store{path: path, levelCount: levelCount}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &s.doc); err != nil {
			return nil, fmt.Errorf("%w: parse %s: %v", ErrPersistence, path, err)
		}
		if s.doc.Scores == nil {
			s.doc.Scores = make(map[string]*LevelScores)
		}
		return s, nil
	case os.IsNotExist(err):
		s.doc = document{Scores: make(map[string]*LevelScores)}
		for level := 1; level <= levelCount; level++ {
			s.doc.Scores[strconv.Itoa(level)] = &LevelScores{}
		}
		if err := s.save(); err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("%w: read %s: %v", ErrPersistence, path, err)
	}
}

// LevelCount returns the number of levels the store was sized for.
func (s *Store) LevelCount() int {
	return s.levelCount
}

// CurrentLevel returns the level-selection cursor.
func (s *Store) CurrentLevel() int {
	return s.doc.CurrentLevel
}

// Select sets the cursor to level, persisting on change. The caller is
// expected to pass a validated level; no clamping is performed here.
func (s *Store) Select(level int) error {
	if s.doc.CurrentLevel == level {
		return nil
	}
	s.doc.CurrentLevel = level
	return s.save()
}

// Step moves the cursor by delta and clamps it to [1, levelCount],
// persisting only if the clamped value differs from the prior one.
func (s *Store) Step(delta int) error {
	next := s.doc.CurrentLevel + delta
	if next < 1 {
		next = 1
	}
	if next > s.levelCount {
		next = s.levelCount
	}
	return s.Select(next)
}

// BestFor returns the best-by-moves and best-by-pushes records for a level.
// Either may be nil when no completed run has set it.
func (s *Store) BestFor(level int) (bestMoves, bestPushes *Pair) {
	entry := s.doc.Scores[strconv.Itoa(level)]
	if entry == nil {
		return nil, nil
	}
	return entry.BestMoves, entry.BestPushes
}

// Record stores a completed run's counters. The move record and push record
// are updated independently: each is replaced when its counter is strictly
// smaller than the stored one, and an unset record is always beaten.
// The document is persisted only if at least one record changed.
func (s *Store) Record(level, moves, pushes int) error {
	key := strconv.Itoa(level)
	entry := s.doc.Scores[key]
	if entry == nil {
		entry = &LevelScores{}
		s.doc.Scores[key] = entry
	}

	changed := false
	if entry.BestMoves == nil || moves < entry.BestMoves.Moves {
		entry.BestMoves = &Pair{Moves: moves, Pushes: pushes}
		changed = true
	}
	if entry.BestPushes == nil || pushes < entry.BestPushes.Pushes {
		entry.BestPushes = &Pair{Moves: moves, Pushes: pushes}
		changed = true
	}

	if !changed {
		return nil
	}
	return s.save()
}

// save rewrites the whole document.
func (s *Store) save() error {
	data, err := yaml.Marshal(&s.doc)
	if err != nil {
		return fmt.Errorf("%w: encode: %v", ErrPersistence, err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: create %s: %v", ErrPersistence, dir, err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrPersistence, s.path, err)
	}
	return nil
}

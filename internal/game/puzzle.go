// Package game implements the Sokoban puzzle core: grid state, the
// 4-directional movement rules, undo history and completion detection.
// It contains no external dependencies so the rules stay pure and testable.
package game

import (
	"errors"
	"fmt"
	"strings"
)

// GridOffset is the number of spaces the grid is indented by in rendered rows.
const GridOffset = 10

// ErrInvalidLevel is returned when level text has no player cell.
var ErrInvalidLevel = errors.New("game: level has no player cell")

// Pos is a grid coordinate. X is the column, Y the row.
type Pos struct {
	X, Y int
}

// rowSnapshot is the pre-move text of a single grid row.
type rowSnapshot struct {
	index int
	text  string
}

// undoRecord captures everything needed to reverse exactly one move.
type undoRecord struct {
	moves  int
	pushes int
	pos    Pos
	rows   []rowSnapshot
}

// Puzzle owns one level's mutable playfield.
type Puzzle struct {
	grid    [][]rune
	level   int
	homes   map[Pos]bool
	pos     Pos
	moves   int
	pushes  int
	undoLog []undoRecord
}

// New builds a puzzle from level rows. It scans the rows once to locate the
// player cell and the full set of home cells.
func New(rows []string, level int) (*Puzzle, error) {
	p := &Puzzle{
		level: level,
		grid:  make([][]rune, len(rows)),
		homes: make(map[Pos]bool),
	}

	found := false
	for y, row := range rows {
		p.grid[y] = []rune(row)
		for x, c := range p.grid[y] {
			switch c {
			case CellPlayer:
				p.pos = Pos{X: x, Y: y}
				found = true
			case CellHome:
				p.homes[Pos{X: x, Y: y}] = true
			}
		}
	}

	if !found {
		return nil, fmt.Errorf("level %d: %w", level, ErrInvalidLevel)
	}
	return p, nil
}

// Level returns the level number this puzzle was built for.
func (p *Puzzle) Level() int {
	return p.level
}

// Height returns the number of grid rows.
func (p *Puzzle) Height() int {
	return len(p.grid)
}

// MoveCount returns the number of moves made so far.
func (p *Puzzle) MoveCount() int {
	return p.moves
}

// PushCount returns the number of moves that pushed a package.
func (p *Puzzle) PushCount() int {
	return p.pushes
}

// PlayerPosition returns the player's current coordinate.
func (p *Puzzle) PlayerPosition() Pos {
	return p.pos
}

// UndoDepth returns the number of moves that can be undone.
func (p *Puzzle) UndoDepth() int {
	return len(p.undoLog)
}

// HandleMotion attempts to move the player one cell in the given direction,
// pushing a package ahead of it when the rules allow. It returns the distinct
// indices of rows whose text changed, in the order they were touched, for
// incremental redraw. A rejected move returns no rows and changes nothing.
// Once the puzzle is finished all motion is a no-op.
func (p *Puzzle) HandleMotion(dir Direction) []int {
	var changed []int
	if p.Finished() {
		return changed
	}

	dx, dy := dir.Deltas()
	x, y := p.pos.X, p.pos.Y
	x2, y2 := x+dx, y+dy
	x3, y3 := x+dx*2, y+dy*2

	dest := p.charAt(x2, y2)
	switch dest {
	case CellWall, 0:
		return changed
	case CellPackage:
		if c := p.charAt(x3, y3); c != CellFloor && c != CellHome {
			return changed
		}
	}
	push := dest == CellPackage

	rec := undoRecord{moves: p.moves, pushes: p.pushes, pos: p.pos}

	// The player's old row always changes.
	rec.rows = append(rec.rows, rowSnapshot{y, string(p.grid[y])})
	changed = append(changed, y)
	p.grid[y][x] = p.emptyChar(p.pos)

	if y2 != y {
		rec.rows = append(rec.rows, rowSnapshot{y2, string(p.grid[y2])})
		p.grid[y2][x2] = CellPlayer
		changed = append(changed, y2)
		if push {
			rec.rows = append(rec.rows, rowSnapshot{y3, string(p.grid[y3])})
			p.grid[y3][x3] = CellPackage
			changed = append(changed, y3)
		}
	} else {
		p.grid[y][x2] = CellPlayer
		if push {
			p.grid[y][x3] = CellPackage
		}
	}

	p.undoLog = append(p.undoLog, rec)
	p.moves++
	if push {
		p.pushes++
	}
	p.pos = Pos{X: x2, Y: y2}

	return changed
}

// Undo reverses the most recent move, restoring counters, player position and
// the saved row text verbatim. It returns the restored row indices, or an
// empty result if there is nothing to undo or the puzzle is finished.
func (p *Puzzle) Undo() []int {
	var changed []int
	if len(p.undoLog) == 0 || p.Finished() {
		return changed
	}

	rec := p.undoLog[len(p.undoLog)-1]
	p.undoLog = p.undoLog[:len(p.undoLog)-1]

	p.moves = rec.moves
	p.pushes = rec.pushes
	p.pos = rec.pos
	for _, snap := range rec.rows {
		p.grid[snap.index] = []rune(snap.text)
		changed = append(changed, snap.index)
	}
	return changed
}

// Finished reports whether every home cell currently holds a package.
func (p *Puzzle) Finished() bool {
	for pos := range p.homes {
		if p.charAt(pos.X, pos.Y) != CellPackage {
			return false
		}
	}
	return true
}

// emptyChar returns the glyph to restore when the player leaves a cell.
func (p *Puzzle) emptyChar(pos Pos) rune {
	if p.homes[pos] {
		return CellHome
	}
	return CellFloor
}

// charAt returns the glyph at the given coordinate, or 0 outside the grid.
// Rows may have different widths.
func (p *Puzzle) charAt(x, y int) rune {
	if y < 0 || y >= len(p.grid) {
		return 0
	}
	if x < 0 || x >= len(p.grid[y]) {
		return 0
	}
	return p.grid[y][x]
}

// RenderRow produces the display text for one grid row, indented by
// GridOffset, plus the highlight spans for cells that need visual
// distinction.
func (p *Puzzle) RenderRow(index int) (string, []Span) {
	line := strings.Repeat(" ", GridOffset) + string(p.grid[index])
	var spans []Span
	for i, c := range line {
		if cat := categoryFor(c); cat != CategoryNone {
			spans = append(spans, Span{Start: i, End: i + 1, Category: cat})
		}
	}
	return line, spans
}

// RenderedRow pairs a row's display text with its highlight spans.
type RenderedRow struct {
	Index int
	Text  string
	Spans []Span
}

// RenderAllRows renders every grid row for a full redraw.
func (p *Puzzle) RenderAllRows() []RenderedRow {
	rows := make([]RenderedRow, len(p.grid))
	for i := range p.grid {
		text, spans := p.RenderRow(i)
		rows[i] = RenderedRow{Index: i, Text: text, Spans: spans}
	}
	return rows
}

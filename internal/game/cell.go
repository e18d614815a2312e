package game

// Cell glyphs used in level text and on the live grid.
const (
	CellWall    = '#'
	CellPackage = '$'
	CellHome    = '.'
	CellPlayer  = 'X'
	CellFloor   = ' '
)

// LegacyPlayer is the player glyph used by older level sets.
// It is rewritten to CellPlayer when a level is loaded.
const LegacyPlayer = '@'

// Category classifies a cell for display highlighting.
type Category int

const (
	CategoryNone Category = iota
	CategoryWall
	CategoryPackage
	CategoryHome
	CategoryPlayer
)

// categoryFor maps a grid glyph to its highlight category.
func categoryFor(c rune) Category {
	switch c {
	case CellWall:
		return CategoryWall
	case CellPackage:
		return CategoryPackage
	case CellHome:
		return CategoryHome
	case CellPlayer:
		return CategoryPlayer
	default:
		return CategoryNone
	}
}

// Span marks a half-open column range [Start, End) of a rendered row that
// should be displayed with the given category's highlight.
type Span struct {
	Start    int
	End      int
	Category Category
}

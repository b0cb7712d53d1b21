package match3

import "github.com/plus3/match3/ecs"

// Match is one placement of a template on the board.
type Match struct {
	Template *Template
	Row, Col int
	Center   ecs.EntityId
	// Offsets holds the non-center cells in template order.
	Offsets []ecs.EntityId
}

// Cells returns the center followed by the offset cells.
func (m Match) Cells() []ecs.EntityId {
	cells := make([]ecs.EntityId, 0, len(m.Offsets)+1)
	cells = append(cells, m.Center)
	return append(cells, m.Offsets...)
}

// Contains reports whether id is part of the match.
func (m Match) Contains(id ecs.EntityId) bool {
	if m.Center == id {
		return true
	}
	for _, cell := range m.Offsets {
		if cell == id {
			return true
		}
	}
	return false
}

// Detect finds every placement of the given templates. Positions are scanned
// row-major (top to bottom, left to right) and, for one position, templates are
// tried in the order given; results come back in that order.
//
// A placement qualifies when every cell is on the board, none is claimed, none
// holds a special and all hold the same piece.
func Detect(board *Board, pieces Lookup[Piece], claimed *Claimed, templates ...Template) []Match {
	var matches []Match
	for index, center := range board.Cells {
		row, col := board.Position(index)
		for i := range templates {
			if m, ok := placeTemplate(board, &templates[i], row, col, center); ok {
				if eligible(pieces, claimed, m) {
					matches = append(matches, m)
				}
			}
		}
	}
	return matches
}

func placeTemplate(board *Board, t *Template, row, col int, center ecs.EntityId) (Match, bool) {
	m := Match{
		Template: t,
		Row:      row,
		Col:      col,
		Center:   center,
		Offsets:  make([]ecs.EntityId, len(t.Offsets)),
	}
	for i, off := range t.Offsets {
		cell, ok := board.CellAt(row+off.Row, col+off.Col)
		if !ok {
			return Match{}, false
		}
		m.Offsets[i] = cell
	}
	return m, true
}

// eligible rechecks a placement against the current pieces and claims. The
// resolver calls it again after earlier matches in the same step have claimed
// or promoted cells.
func eligible(pieces Lookup[Piece], claimed *Claimed, m Match) bool {
	want := *pieceOf(pieces, m.Center)
	if want.Special() || claimed.Has(m.Center) {
		return false
	}
	for _, cell := range m.Offsets {
		if claimed.Has(cell) || *pieceOf(pieces, cell) != want {
			return false
		}
	}
	return true
}

package match3

import "github.com/plus3/match3/ecs"

// CellView is a read-only copy of one cell.
type CellView struct {
	ID       ecs.EntityId
	Row, Col int
	Piece    Piece
	// Pending is set while the cell is claimed and waiting for compaction.
	Pending    bool
	FallOffset float32
}

// Snapshot is a read-only copy of the board for presentation.
type Snapshot struct {
	Size  int
	State TurnState
	// Cells are row-major; empty when no level is running.
	Cells []CellView
}

// At returns the cell at a 1-based position. The position must be on the board.
func (s Snapshot) At(row, col int) CellView {
	return s.Cells[(row-1)*s.Size+col-1]
}

// Pieces returns the piece layout, row-major.
func (s Snapshot) Pieces() []Piece {
	out := make([]Piece, len(s.Cells))
	for i, c := range s.Cells {
		out[i] = c.Piece
	}
	return out
}

// Settled reports whether no cell is falling.
func (s Snapshot) Settled() bool {
	for _, c := range s.Cells {
		if c.FallOffset > 0 {
			return false
		}
	}
	return true
}

// Snapshot copies the current board.
func (g *Game) Snapshot() Snapshot {
	board := g.board.Get()
	claimed := g.claimed.Get()
	pieces := ecs.Components[Piece](g.storage)
	falls := ecs.Components[Fall](g.storage)

	snap := Snapshot{
		Size:  board.N,
		State: g.turn.Get(),
		Cells: make([]CellView, len(board.Cells)),
	}
	for i, id := range board.Cells {
		row, col := board.Position(i)
		view := CellView{
			ID:      id,
			Row:     row,
			Col:     col,
			Piece:   *pieceOf(pieces, id),
			Pending: claimed.Has(id),
		}
		if f := falls.Get(id); f != nil {
			view.FallOffset = f.Offset
		}
		snap.Cells[i] = view
	}
	return snap
}

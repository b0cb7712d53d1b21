package match3

import (
	"math/rand/v2"

	"github.com/plus3/match3/ecs"
)

// Compact resolves one gravity cycle. In every column the claimed cells are
// lifted to the top (keeping their order) and dealt fresh plain pieces, while
// the survivors slide down beneath them, also keeping their order. Columns with
// nothing claimed are left alone. Every cell that moved gets a fall offset so
// it can be animated into place: survivors fall by the rows they dropped,
// regenerated cells by the number of cells the column lost. The claimed set is
// empty afterwards.
//
// It returns the number of cells regenerated.
func Compact(board *Board, pieces Lookup[Piece], falls Lookup[Fall], claimed *Claimed, rng *rand.Rand) int {
	if claimed.Len() == 0 {
		return 0
	}

	regenerated := 0
	removed := make([]ecs.EntityId, 0, board.N)
	survivors := make([]ecs.EntityId, 0, board.N)

	for col := 1; col <= board.N; col++ {
		removed, survivors = removed[:0], survivors[:0]
		for row := 1; row <= board.N; row++ {
			id, _ := board.CellAt(row, col)
			if claimed.Has(id) {
				removed = append(removed, id)
			} else {
				survivors = append(survivors, id)
			}
		}
		if len(removed) == 0 {
			continue
		}

		drop := float32(len(removed))
		row := 1
		for _, id := range removed {
			*pieceOf(pieces, id) = RandomPlain(rng)
			setFall(falls, id, drop)
			placeAt(board, row, col, id)
			row++
		}
		for _, id := range survivors {
			oldRow, _ := board.PositionOf(id)
			if moved := row - oldRow; moved > 0 {
				setFall(falls, id, float32(moved))
			}
			placeAt(board, row, col, id)
			row++
		}
		regenerated += len(removed)
	}

	claimed.Clear()
	return regenerated
}

// Settle advances a fall offset by rate rows and reports whether it is at rest.
func Settle(f *Fall, rate float32) bool {
	f.Offset = max(0, f.Offset-rate)
	return f.Resting()
}

func setFall(falls Lookup[Fall], id ecs.EntityId, offset float32) {
	f := falls.Get(id)
	if f == nil {
		lookupPanic(id, "has no fall state")
	}
	f.Offset = offset
}

func placeAt(board *Board, row, col int, id ecs.EntityId) {
	i, _ := board.Index(row, col)
	board.place(i, id)
}

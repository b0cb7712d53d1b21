package match3

import (
	"math/rand/v2"

	"github.com/plus3/match3/ecs"
)

// Activate triggers the effect of the special held by cell, marking the cells it
// clears. Plain pieces do nothing. It returns how many cells were newly marked.
func Activate(board *Board, pieces Lookup[Piece], claimed *Claimed, cell ecs.EntityId, rng *rand.Rand) int {
	before := claimed.Len()
	row, col := board.PositionOf(cell)

	switch *pieceOf(pieces, cell) {
	case Bomb:
		for dr := -1; dr <= 1; dr++ {
			for dc := -1; dc <= 1; dc++ {
				if id, ok := board.CellAt(row+dr, col+dc); ok {
					claimed.Mark(id)
				}
			}
		}
	case HorizontalLiner:
		for c := 1; c <= board.N; c++ {
			id, _ := board.CellAt(row, c)
			claimed.Mark(id)
		}
	case VerticalLiner:
		for r := 1; r <= board.N; r++ {
			id, _ := board.CellAt(r, col)
			claimed.Mark(id)
		}
	case Eliminator:
		claimed.Mark(cell)
		for _, id := range sampleCells(board, cell, 3*board.N, rng) {
			claimed.Mark(id)
		}
	}
	return claimed.Len() - before
}

// sampleCells draws up to k distinct cells other than skip, uniformly and without
// replacement. Asking for more cells than exist yields all of them.
func sampleCells(board *Board, skip ecs.EntityId, k int, rng *rand.Rand) []ecs.EntityId {
	pool := make([]ecs.EntityId, 0, len(board.Cells))
	for _, id := range board.Cells {
		if id != skip {
			pool = append(pool, id)
		}
	}
	k = min(k, len(pool))

	// partial Fisher-Yates: the first k slots end up as the sample
	for i := 0; i < k; i++ {
		j := i + rng.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k]
}

package match3

import (
	"math/rand/v2"

	"github.com/plus3/match3/ecs"
)

// TrySwap validates and performs a swap request. Requests naming a cell that is
// not on the board, or two cells that are not orthogonal neighbours, are
// rejected without touching anything. An accepted swap exchanges the cells,
// records them as the last swapped pair and then activates a then b if they
// hold specials.
func TrySwap(board *Board, pieces Lookup[Piece], claimed *Claimed, swapped *JustSwapped, a, b ecs.EntityId, rng *rand.Rand) bool {
	if !board.Adjacent(a, b) {
		return false
	}

	board.Swap(a, b)
	*swapped = JustSwapped{A: a, B: b}

	Activate(board, pieces, claimed, a, rng)
	Activate(board, pieces, claimed, b, rng)
	return true
}

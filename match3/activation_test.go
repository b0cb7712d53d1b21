package match3_test

import (
	"testing"

	"github.com/plus3/match3/match3"
	"github.com/plus3/match3/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBombClearsItsNeighbourhood(t *testing.T) {
	w := newWorld(t,
		"RGBPR",
		"GBPRG",
		"BPXGB",
		"PRGBP",
		"RGBPR",
	)

	marked := match3.Activate(w.board, w.pieces, w.claimed, w.at(3, 3), w.rng)

	assert.Equal(t, 9, marked)
	assert.ElementsMatch(t, w.cells(
		[2]int{2, 2}, [2]int{2, 3}, [2]int{2, 4},
		[2]int{3, 2}, [2]int{3, 3}, [2]int{3, 4},
		[2]int{4, 2}, [2]int{4, 3}, [2]int{4, 4},
	), w.claimedCells())
}

func TestBombInCornerStaysOnBoard(t *testing.T) {
	w := newWorld(t,
		"XGB",
		"GBP",
		"BPR",
	)

	marked := match3.Activate(w.board, w.pieces, w.claimed, w.at(1, 1), w.rng)

	assert.Equal(t, 4, marked)
	assert.ElementsMatch(t, w.cells([2]int{1, 1}, [2]int{1, 2}, [2]int{2, 1}, [2]int{2, 2}), w.claimedCells())
}

func TestLinersClearRowOrColumn(t *testing.T) {
	w := newWorld(t,
		"RGBP",
		"GHPR",
		"BPVG",
		"PRGB",
	)

	match3.Activate(w.board, w.pieces, w.claimed, w.at(2, 2), w.rng)
	assert.ElementsMatch(t, w.cells([2]int{2, 1}, [2]int{2, 2}, [2]int{2, 3}, [2]int{2, 4}), w.claimedCells())

	w.claimed.Clear()
	match3.Activate(w.board, w.pieces, w.claimed, w.at(3, 3), w.rng)
	assert.ElementsMatch(t, w.cells([2]int{1, 3}, [2]int{2, 3}, [2]int{3, 3}, [2]int{4, 3}), w.claimedCells())
}

func TestEliminatorSamplesWithoutReplacement(t *testing.T) {
	rows := []string{
		"RGBPRGBPRG",
		"GBPRGBPRGB",
		"BPRGBPRGBP",
		"PRGBPRGBPR",
		"RGBPEGBPRG",
		"GBPRGBPRGB",
		"BPRGBPRGBP",
		"PRGBPRGBPR",
		"RGBPRGBPRG",
		"GBPRGBPRGB",
	}
	w := newWorld(t, rows...)
	eliminator := w.at(5, 5)

	marked := match3.Activate(w.board, w.pieces, w.claimed, eliminator, w.rng)

	assert.Equal(t, 1+3*10, marked, "itself plus 3N distinct victims")
	assert.True(t, w.claimed.Has(eliminator))
}

func TestEliminatorClampsOnSmallBoards(t *testing.T) {
	w := newWorld(t,
		"EGB",
		"GBP",
		"BPR",
	)

	marked := match3.Activate(w.board, w.pieces, w.claimed, w.at(1, 1), w.rng)

	assert.Equal(t, 9, marked, "every cell is taken when fewer than 3N exist")
}

func TestPlainPiecesDoNotActivate(t *testing.T) {
	w := newWorld(t,
		"RG",
		"BP",
	)

	assert.Zero(t, match3.Activate(w.board, w.pieces, w.claimed, w.at(1, 1), w.rng))
	assert.Zero(t, w.claimed.Len())
}

func TestTrySwapAdjacencyGate(t *testing.T) {
	w := newWorld(t,
		"RGB",
		"GBP",
		"BPR",
	)
	before := append([]ecs.EntityId(nil), w.board.Cells...)
	swapped := match3.JustSwapped{A: w.at(3, 3), B: w.at(3, 2)}

	cases := []struct {
		name string
		a, b ecs.EntityId
	}{
		{"diagonal", w.at(1, 1), w.at(2, 2)},
		{"two apart", w.at(1, 1), w.at(1, 3)},
		{"same cell", w.at(2, 2), w.at(2, 2)},
		{"unknown cell", w.at(1, 1), ecs.NewEntityId(42, 4242)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ok := match3.TrySwap(w.board, w.pieces, w.claimed, &swapped, tc.a, tc.b, w.rng)
			assert.False(t, ok)
			assert.Equal(t, before, w.board.Cells)
			assert.Equal(t, match3.JustSwapped{A: w.at(3, 3), B: w.at(3, 2)}, swapped)
			assert.Zero(t, w.claimed.Len())
		})
	}
}

func TestTrySwapDoubleSwapRestores(t *testing.T) {
	w := newWorld(t,
		"RGB",
		"GBP",
		"BPR",
	)
	before := w.layout()
	var swapped match3.JustSwapped

	a, b := w.at(2, 2), w.at(2, 3)
	require.True(t, match3.TrySwap(w.board, w.pieces, w.claimed, &swapped, a, b, w.rng))
	assert.Equal(t, match3.JustSwapped{A: a, B: b}, swapped)
	assert.Equal(t, match3.Blue, w.piece(2, 3))

	require.True(t, match3.TrySwap(w.board, w.pieces, w.claimed, &swapped, w.at(2, 2), w.at(2, 3), w.rng))
	assert.Equal(t, before, w.layout())
}

func TestTrySwapActivatesMovedSpecials(t *testing.T) {
	w := newWorld(t,
		"RGBP",
		"GXPR",
		"BPHG",
		"PRGB",
	)
	var swapped match3.JustSwapped

	bomb, liner := w.at(2, 2), w.at(3, 3)
	require.True(t, match3.TrySwap(w.board, w.pieces, w.claimed, &swapped, bomb, w.at(2, 3), w.rng))

	// the bomb now sits at (2,3)
	r, c := w.board.PositionOf(bomb)
	assert.Equal(t, [2]int{2, 3}, [2]int{r, c})
	assert.True(t, w.claimed.Has(w.at(1, 4)))
	assert.True(t, w.claimed.Has(liner), "the horizontal liner is inside the blast")
	assert.False(t, w.claimed.Has(w.at(3, 1)), "liners are not chained by a blast")
}

package match3_test

import (
	"fmt"
	"testing"

	"github.com/plus3/match3/match3"
	"github.com/plus3/match3/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func idsFrom(n int) []ecs.EntityId {
	ids := make([]ecs.EntityId, n)
	for i := range ids {
		ids[i] = ecs.NewEntityId(1, uint32(i))
	}
	return ids
}

func TestIndexIsABijection(t *testing.T) {
	for n := 1; n <= 6; n++ {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			board := match3.NewBoard(n, idsFrom(n*n))
			seen := make(map[int]bool)

			for row := -1; row <= n+2; row++ {
				for col := -1; col <= n+2; col++ {
					i, ok := board.Index(row, col)
					inside := row >= 1 && row <= n && col >= 1 && col <= n
					require.Equal(t, inside, ok, "(%d,%d)", row, col)
					if !ok {
						continue
					}
					assert.GreaterOrEqual(t, i, 0)
					assert.Less(t, i, n*n)
					assert.False(t, seen[i], "index %d produced twice", i)
					seen[i] = true
				}
			}
			assert.Len(t, seen, n*n)
		})
	}
}

func TestIndexLayoutIsRowMajor(t *testing.T) {
	board := match3.NewBoard(10, idsFrom(100))

	i, _ := board.Index(1, 1)
	assert.Equal(t, 0, i)
	i, _ = board.Index(2, 1)
	assert.Equal(t, 10, i)
	i, _ = board.Index(10, 10)
	assert.Equal(t, 99, i)
}

func TestPositionRoundTrip(t *testing.T) {
	n := 5
	board := match3.NewBoard(n, idsFrom(n*n))

	for row := 1; row <= n; row++ {
		for col := 1; col <= n; col++ {
			id, ok := board.CellAt(row, col)
			require.True(t, ok)
			r, c := board.PositionOf(id)
			assert.Equal(t, [2]int{row, col}, [2]int{r, c})
		}
	}

	_, ok := board.CellAt(0, 3)
	assert.False(t, ok)
	_, ok = board.CellAt(3, n+1)
	assert.False(t, ok)
}

func TestPositionOfMissingCellPanics(t *testing.T) {
	board := match3.NewBoard(2, idsFrom(4))

	err := recoverError(func() { board.PositionOf(ecs.NewEntityId(9, 9)) })
	assert.ErrorIs(t, err, match3.ErrLookupInconsistency)
	assert.False(t, board.Contains(ecs.NewEntityId(9, 9)))
}

func TestSwapTwiceRestoresLayout(t *testing.T) {
	board := match3.NewBoard(3, idsFrom(9))
	original := append([]ecs.EntityId(nil), board.Cells...)

	a, _ := board.CellAt(2, 2)
	b, _ := board.CellAt(2, 3)
	board.Swap(a, b)

	assert.NotEqual(t, original, board.Cells)
	r, c := board.PositionOf(a)
	assert.Equal(t, [2]int{2, 3}, [2]int{r, c})

	// swap whatever now sits at the two positions
	x, _ := board.CellAt(2, 2)
	y, _ := board.CellAt(2, 3)
	board.Swap(x, y)
	assert.Equal(t, original, board.Cells)
}

func TestAdjacent(t *testing.T) {
	board := match3.NewBoard(3, idsFrom(9))
	at := func(r, c int) ecs.EntityId {
		id, _ := board.CellAt(r, c)
		return id
	}

	assert.True(t, board.Adjacent(at(1, 1), at(1, 2)))
	assert.True(t, board.Adjacent(at(2, 2), at(3, 2)))
	assert.False(t, board.Adjacent(at(1, 1), at(2, 2)), "diagonal")
	assert.False(t, board.Adjacent(at(1, 1), at(1, 3)), "two apart")
	assert.False(t, board.Adjacent(at(1, 1), at(1, 1)), "same cell")
	assert.False(t, board.Adjacent(at(1, 1), ecs.NewEntityId(7, 70)), "unknown cell")
}

func TestNewBoardRejectsBadInput(t *testing.T) {
	assert.Panics(t, func() { match3.NewBoard(3, idsFrom(8)) })
	assert.Panics(t, func() { match3.NewBoard(0, nil) })

	dup := idsFrom(4)
	dup[3] = dup[0]
	assert.Panics(t, func() { match3.NewBoard(2, dup) })
}

func TestColumn(t *testing.T) {
	board := match3.NewBoard(3, idsFrom(9))
	assert.Equal(t, []ecs.EntityId{board.Cells[1], board.Cells[4], board.Cells[7]}, board.Column(2))
}

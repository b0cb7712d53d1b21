package match3

import (
	"fmt"

	"github.com/kamstrup/intmap"
	"github.com/plus3/match3/ecs"
)

// Board is the N×N grid of cell identities, stored row-major.
// Rows and columns are 1-based; row 1 is the top and column 1 the left edge.
// Every index holds exactly one cell between resolution cycles.
type Board struct {
	N     int
	Cells []ecs.EntityId

	// reverse index so positionOf does not scan the grid
	lookup *intmap.Map[ecs.EntityId, int]
}

// NewBoard lays out cells row-major on an n×n grid. It panics unless there are
// exactly n² distinct cells.
func NewBoard(n int, cells []ecs.EntityId) *Board {
	if n < 1 || len(cells) != n*n {
		panic(fmt.Sprintf("board of size %d needs %d cells, got %d", n, n*n, len(cells)))
	}

	b := &Board{
		N:      n,
		Cells:  make([]ecs.EntityId, len(cells)),
		lookup: intmap.New[ecs.EntityId, int](len(cells)),
	}
	for i, id := range cells {
		if b.lookup.Has(id) {
			panic(fmt.Sprintf("cell %d appears twice on the board", id))
		}
		b.place(i, id)
	}
	return b
}

// Index maps a position to its slot, or false when the position is off the board.
func (b *Board) Index(row, col int) (int, bool) {
	if row < 1 || col < 1 || row > b.N || col > b.N {
		return 0, false
	}
	return (row-1)*b.N + col - 1, true
}

// Position is the inverse of Index. The index must be in range.
func (b *Board) Position(index int) (row, col int) {
	return index/b.N + 1, index%b.N + 1
}

// CellAt returns the cell at a position, or false when the position is off the board.
func (b *Board) CellAt(row, col int) (ecs.EntityId, bool) {
	i, ok := b.Index(row, col)
	if !ok {
		return 0, false
	}
	return b.Cells[i], true
}

// Contains reports whether id is on the board.
func (b *Board) Contains(id ecs.EntityId) bool {
	return b.lookup.Has(id)
}

// PositionOf returns where a cell sits. The cell must be on the board; a miss
// panics with ErrLookupInconsistency.
func (b *Board) PositionOf(id ecs.EntityId) (row, col int) {
	i, ok := b.lookup.Get(id)
	if !ok {
		lookupPanic(id, "is not on the board")
	}
	return b.Position(i)
}

// Adjacent reports whether both cells are on the board at Manhattan distance 1.
func (b *Board) Adjacent(x, y ecs.EntityId) bool {
	i, okX := b.lookup.Get(x)
	j, okY := b.lookup.Get(y)
	if !okX || !okY {
		return false
	}
	r1, c1 := b.Position(i)
	r2, c2 := b.Position(j)
	return abs(r1-r2)+abs(c1-c2) == 1
}

// Swap exchanges the positions of two cells on the board. Adjacency is not checked.
func (b *Board) Swap(x, y ecs.EntityId) {
	i, okX := b.lookup.Get(x)
	if !okX {
		lookupPanic(x, "is not on the board")
	}
	j, okY := b.lookup.Get(y)
	if !okY {
		lookupPanic(y, "is not on the board")
	}
	b.place(i, y)
	b.place(j, x)
}

// Column returns the cells of column col from top to bottom.
func (b *Board) Column(col int) []ecs.EntityId {
	out := make([]ecs.EntityId, b.N)
	for row := 1; row <= b.N; row++ {
		out[row-1], _ = b.CellAt(row, col)
	}
	return out
}

func (b *Board) place(index int, id ecs.EntityId) {
	b.Cells[index] = id
	b.lookup.Put(id, index)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

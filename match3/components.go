package match3

import (
	"iter"
	"math/rand/v2"

	"github.com/kamstrup/intmap"
	"github.com/plus3/match3/ecs"
)

// Fall is the distance, in rows, a cell is still drawn above its resting row.
type Fall struct {
	Offset float32
}

// Resting reports whether the cell has finished falling.
func (f Fall) Resting() bool {
	return f.Offset <= 0
}

// JustSwapped remembers the two cells of the last accepted swap.
// It is only consulted to decide where a Liner is promoted.
type JustSwapped struct {
	A, B ecs.EntityId
}

// Has reports whether id is one of the pair.
func (j JustSwapped) Has(id ecs.EntityId) bool {
	return id != 0 && (id == j.A || id == j.B)
}

// UnlockFlags gate which specials the resolver may create.
type UnlockFlags struct {
	Eliminator bool
	Bomb       bool
	Liner      bool
}

// AllUnlocked permits every special.
var AllUnlocked = UnlockFlags{Eliminator: true, Bomb: true, Liner: true}

// TurnState is the two-phase turn of a running board.
type TurnState int

const (
	InPlay TurnState = iota
	AnimatingFallingShapes
)

func (t TurnState) String() string {
	if t == AnimatingFallingShapes {
		return "AnimatingFallingShapes"
	}
	return "InPlay"
}

// SwapRequest asks for cells A and B to trade places.
type SwapRequest struct {
	A, B ecs.EntityId
}

// SwapQueue holds swap input in arrival order until an InPlay tick takes it.
type SwapQueue struct {
	Pending []SwapRequest
}

func (q *SwapQueue) push(req SwapRequest) {
	q.Pending = append(q.Pending, req)
}

func (q *SwapQueue) pop() (SwapRequest, bool) {
	if len(q.Pending) == 0 {
		return SwapRequest{}, false
	}
	req := q.Pending[0]
	q.Pending = q.Pending[1:]
	return req, true
}

func (q *SwapQueue) clear() int {
	n := len(q.Pending)
	q.Pending = q.Pending[:0]
	return n
}

// MatchMade is emitted once for every match the resolver accepts.
type MatchMade struct {
	Shape  Shape
	Center ecs.EntityId
	// Cells holds every cell of the match, center first.
	Cells []ecs.EntityId
	// Promoted is the cell turned into a special, or zero for a triple.
	Promoted ecs.EntityId
	Special  Piece
}

// Random is the board's single random source.
type Random struct {
	*rand.Rand
}

// Claimed is the set of cells marked for removal in the current cycle.
// The zero value is an empty set.
type Claimed struct {
	set *intmap.Set[ecs.EntityId]
}

// NewClaimed returns an empty set sized for a board of n×n cells.
func NewClaimed(n int) *Claimed {
	return &Claimed{set: intmap.NewSet[ecs.EntityId](n * n)}
}

// Mark adds id to the set. Marking twice is harmless.
func (c *Claimed) Mark(id ecs.EntityId) {
	if c.set == nil {
		c.set = intmap.NewSet[ecs.EntityId](64)
	}
	c.set.Add(id)
}

// Unmark removes id from the set.
func (c *Claimed) Unmark(id ecs.EntityId) {
	if c.set != nil {
		c.set.Del(id)
	}
}

// Has reports whether id is marked.
func (c *Claimed) Has(id ecs.EntityId) bool {
	return c.set.Has(id)
}

// Len returns the number of marked cells.
func (c *Claimed) Len() int {
	return c.set.Len()
}

// Clear unmarks every cell.
func (c *Claimed) Clear() {
	if c.set != nil {
		c.set.Clear()
	}
}

// All iterates the marked cells in no particular order.
func (c *Claimed) All() iter.Seq[ecs.EntityId] {
	return c.set.All()
}

// Lookup resolves a cell to one of its components.
// *ecs.ComponentStore[T] satisfies it.
type Lookup[T any] interface {
	Get(id ecs.EntityId) *T
}

func pieceOf(pieces Lookup[Piece], id ecs.EntityId) *Piece {
	p := pieces.Get(id)
	if p == nil {
		lookupPanic(id, "has no piece")
	}
	return p
}

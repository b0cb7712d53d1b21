package match3_test

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/plus3/match3/match3"
	"github.com/plus3/match3/ecs"
	"github.com/stretchr/testify/require"
)

var pieceLetters = map[rune]match3.Piece{
	'R': match3.Red,
	'B': match3.Blue,
	'G': match3.Green,
	'P': match3.Pink,
	'X': match3.Bomb,
	'H': match3.HorizontalLiner,
	'V': match3.VerticalLiner,
	'E': match3.Eliminator,
}

// parseLayout turns rows like "RGB" into a row-major piece list.
func parseLayout(t *testing.T, rows ...string) (int, []match3.Piece) {
	t.Helper()
	n := len(rows)
	pieces := make([]match3.Piece, 0, n*n)
	for _, row := range rows {
		row = strings.ReplaceAll(row, " ", "")
		require.Len(t, row, n, "layout must be square")
		for _, r := range row {
			p, ok := pieceLetters[r]
			require.True(t, ok, "unknown piece letter %q", r)
			pieces = append(pieces, p)
		}
	}
	return n, pieces
}

type world struct {
	storage *ecs.Storage
	board   *match3.Board
	pieces  *ecs.ComponentStore[match3.Piece]
	falls   *ecs.ComponentStore[match3.Fall]
	claimed *match3.Claimed
	rng     *rand.Rand
}

func newWorld(t *testing.T, rows ...string) *world {
	t.Helper()
	n, layout := parseLayout(t, rows...)

	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[match3.Piece](registry)
	ecs.RegisterComponent[match3.Fall](registry)
	storage := ecs.NewStorage(registry)

	cells := make([]ecs.EntityId, len(layout))
	for i, p := range layout {
		cells[i] = storage.Spawn(p, match3.Fall{})
	}

	return &world{
		storage: storage,
		board:   match3.NewBoard(n, cells),
		pieces:  ecs.Components[match3.Piece](storage),
		falls:   ecs.Components[match3.Fall](storage),
		claimed: match3.NewClaimed(n),
		rng:     rand.New(rand.NewPCG(1, 2)),
	}
}

func (w *world) at(row, col int) ecs.EntityId {
	id, ok := w.board.CellAt(row, col)
	if !ok {
		panic("position off the board")
	}
	return id
}

func (w *world) piece(row, col int) match3.Piece {
	return *w.pieces.Get(w.at(row, col))
}

func (w *world) cells(positions ...[2]int) []ecs.EntityId {
	out := make([]ecs.EntityId, len(positions))
	for i, pos := range positions {
		out[i] = w.at(pos[0], pos[1])
	}
	return out
}

func (w *world) claimedCells() []ecs.EntityId {
	var out []ecs.EntityId
	for id := range w.claimed.All() {
		out = append(out, id)
	}
	return out
}

func (w *world) layout() []match3.Piece {
	out := make([]match3.Piece, len(w.board.Cells))
	for i, id := range w.board.Cells {
		out[i] = *w.pieces.Get(id)
	}
	return out
}

// recoverError runs fn and returns the error it panicked with, if any.
func recoverError(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err, _ = r.(error)
		}
	}()
	fn()
	return nil
}

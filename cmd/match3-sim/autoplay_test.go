package main

import (
	"math/rand/v2"
	"testing"

	"github.com/plus3/match3/match3"
	"github.com/stretchr/testify/assert"
)

const (
	r = match3.Red
	g = match3.Green
	b = match3.Blue
	p = match3.Pink
	x = match3.Bomb
)

func TestFindMovesLinesUpThree(t *testing.T) {
	pieces := []match3.Piece{
		r, g, r, b,
		b, r, g, p,
		g, b, p, g,
		p, g, b, b,
	}

	moves := FindMoves(pieces, 4)

	// lifting the middle red into row 1
	assert.Contains(t, moves, Move{1, 2, 2, 2})
	for _, m := range moves {
		assert.Equal(t, 1, abs(m.R1-m.R2)+abs(m.C1-m.C2), "only adjacent swaps")
	}
	assert.NotContains(t, moves, Move{1, 1, 1, 2}, "that swap makes nothing")
}

func TestFindMovesTakesSpecials(t *testing.T) {
	pieces := []match3.Piece{
		r, g, b,
		b, x, g,
		g, b, r,
	}

	moves := FindMoves(pieces, 3)
	assert.ElementsMatch(t, []Move{{1, 2, 2, 2}, {2, 1, 2, 2}, {2, 2, 2, 3}, {2, 2, 3, 2}}, moves)
}

func TestAutoplayerFallsBackToAnySwap(t *testing.T) {
	pieces := []match3.Piece{
		r, g,
		b, p,
	}
	a := &Autoplayer{rng: rand.New(rand.NewPCG(1, 2))}

	for range 20 {
		m := a.Next(pieces, 2)
		assert.Equal(t, m.R1, m.R2)
		assert.Equal(t, m.C1+1, m.C2)
		assert.True(t, m.R1 >= 1 && m.R1 <= 2 && m.C1 == 1)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

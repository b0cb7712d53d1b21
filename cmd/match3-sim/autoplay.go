package main

import (
	"math/rand/v2"

	"github.com/plus3/match3/match3"
)

// Move is a swap of two orthogonally adjacent 1-based positions.
type Move struct {
	R1, C1, R2, C2 int
}

// FindMoves lists every adjacent swap that either moves a special (which
// activates it) or lines up three equal plain pieces through a swapped cell.
// pieces is row-major on an n×n board.
func FindMoves(pieces []match3.Piece, n int) []Move {
	grid := append([]match3.Piece(nil), pieces...)
	var moves []Move

	for row := 1; row <= n; row++ {
		for col := 1; col <= n; col++ {
			for _, d := range [][2]int{{0, 1}, {1, 0}} {
				r2, c2 := row+d[0], col+d[1]
				if r2 > n || c2 > n {
					continue
				}
				i, j := (row-1)*n+col-1, (r2-1)*n+c2-1
				if grid[i].Special() || grid[j].Special() {
					moves = append(moves, Move{row, col, r2, c2})
					continue
				}
				if grid[i] == grid[j] {
					continue
				}

				grid[i], grid[j] = grid[j], grid[i]
				if lined(grid, n, row, col) || lined(grid, n, r2, c2) {
					moves = append(moves, Move{row, col, r2, c2})
				}
				grid[i], grid[j] = grid[j], grid[i]
			}
		}
	}
	return moves
}

// lined reports whether the piece at (row, col) is part of a horizontal or
// vertical run of at least three.
func lined(grid []match3.Piece, n, row, col int) bool {
	p := grid[(row-1)*n+col-1]
	at := func(r, c int) bool {
		return r >= 1 && r <= n && c >= 1 && c <= n && grid[(r-1)*n+c-1] == p
	}

	run := 1
	for c := col - 1; at(row, c); c-- {
		run++
	}
	for c := col + 1; at(row, c); c++ {
		run++
	}
	if run >= 3 {
		return true
	}

	run = 1
	for r := row - 1; at(r, col); r-- {
		run++
	}
	for r := row + 1; at(r, col); r++ {
		run++
	}
	return run >= 3
}

// Autoplayer picks the next move for a board.
type Autoplayer struct {
	rng *rand.Rand
}

// Next picks a random matching move, or a random adjacent swap when the board
// offers none.
func (a *Autoplayer) Next(pieces []match3.Piece, n int) Move {
	if moves := FindMoves(pieces, n); len(moves) > 0 {
		return moves[a.rng.IntN(len(moves))]
	}
	row, col := 1+a.rng.IntN(n), 1+a.rng.IntN(max(1, n-1))
	return Move{row, col, row, col + 1}
}

package main

import "image"

const (
	boardLeft   = 20
	boardTop    = 100
	boardPixels = 600

	buttonWidth  = 240
	buttonHeight = 60
	buttonGap    = 20
	buttonsTop   = 200
)

// Layout maps board cells and level buttons to screen pixels.
type Layout struct {
	N int
}

// CellSize is the side of one cell in pixels.
func (l Layout) CellSize() float32 {
	if l.N <= 0 {
		return 0
	}
	return float32(boardPixels) / float32(l.N)
}

// CellOrigin returns the top-left pixel of the 1-based cell, lifted by fall rows.
func (l Layout) CellOrigin(row, col int, fall float32) (float32, float32) {
	size := l.CellSize()
	x := float32(boardLeft) + float32(col-1)*size
	y := float32(boardTop) + (float32(row-1)-fall)*size
	return x, y
}

// CellAt returns the 1-based cell under a pixel.
func (l Layout) CellAt(x, y int) (row, col int, ok bool) {
	if l.N <= 0 || x < boardLeft || y < boardTop || x >= boardLeft+boardPixels || y >= boardTop+boardPixels {
		return 0, 0, false
	}
	size := l.CellSize()
	col = int(float32(x-boardLeft)/size) + 1
	row = int(float32(y-boardTop)/size) + 1
	return min(row, l.N), min(col, l.N), true
}

// LevelButton returns the screen rectangle of the i-th level button.
func LevelButton(i int) image.Rectangle {
	x := (ScreenWidth - buttonWidth) / 2
	y := buttonsTop + i*(buttonHeight+buttonGap)
	return image.Rect(x, y, x+buttonWidth, y+buttonHeight)
}

// LevelAt returns the index of the level button under a pixel, or -1.
func LevelAt(x, y, count int) int {
	p := image.Pt(x, y)
	for i := range count {
		if p.In(LevelButton(i)) {
			return i
		}
	}
	return -1
}

func boardRect() image.Rectangle {
	return image.Rect(boardLeft, boardTop, boardLeft+boardPixels, boardTop+boardPixels)
}

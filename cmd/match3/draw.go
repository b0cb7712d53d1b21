package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/match3/ecs"
	"github.com/plus3/match3/match3"
	"github.com/plus3/match3/progression"
)

var (
	background   = color.RGBA{24, 24, 27, 255}
	boardColor   = color.RGBA{39, 39, 42, 255}
	outlineColor = color.RGBA{250, 250, 250, 255}
	lockedColor  = color.RGBA{63, 63, 70, 255}
	openColor    = color.RGBA{99, 102, 241, 255}
	doneColor    = color.RGBA{34, 197, 94, 255}
)

var pieceColors = map[match3.Piece]color.RGBA{
	match3.Red:             {239, 68, 68, 255},
	match3.Blue:            {59, 130, 246, 255},
	match3.Green:           {34, 197, 94, 255},
	match3.Pink:            {236, 72, 153, 255},
	match3.Bomb:            {3, 7, 18, 255},
	match3.HorizontalLiner: {245, 158, 11, 255},
	match3.VerticalLiner:   {245, 158, 11, 255},
	match3.Eliminator:      {255, 255, 255, 255},
}

func drawLevelSelect(screen *ebiten.Image, tracker *progression.Tracker) {
	screen.Fill(background)
	ebitenutil.DebugPrintAt(screen, "Choose a level (click or press its number)", 180, 140)

	for i, lvl := range tracker.Levels() {
		r := LevelButton(i)
		fill := lockedColor
		label := fmt.Sprintf("%d. %s (%d matches)", i+1, lvl.Name, lvl.NeededMatches)
		switch {
		case tracker.Finished(i):
			fill = doneColor
			label += " done"
		case tracker.Available(i):
			fill = openColor
		}
		vector.DrawFilledRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), fill, false)
		ebitenutil.DebugPrintAt(screen, label, r.Min.X+12, r.Min.Y+buttonHeight/2-8)
	}

	if tracker.Next() < 0 {
		ebitenutil.DebugPrintAt(screen, "Every level is finished. Press Q to quit.", 190, ScreenHeight-80)
	}
}

func drawBoard(screen *ebiten.Image, snap match3.Snapshot, selected ecs.EntityId, counter *progression.Counter) {
	screen.Fill(background)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Matches: %d/%d", counter.Total(), counter.Needed()), boardLeft, 30)
	ebitenutil.DebugPrintAt(screen, "Esc: level select   Z: count a match", boardLeft, 50)

	vector.DrawFilledRect(screen, boardLeft, boardTop, boardPixels, boardPixels, boardColor, false)

	// the board area clips cells that are still falling in from above
	board := screen.SubImage(boardRect()).(*ebiten.Image)
	layout := Layout{N: snap.Size}
	size := layout.CellSize()
	inset := size * 0.08

	for _, cell := range snap.Cells {
		x, y := layout.CellOrigin(cell.Row, cell.Col, cell.FallOffset)
		drawPiece(board, cell.Piece, x+inset, y+inset, size-2*inset)
		if cell.ID == selected {
			vector.StrokeRect(board, x+1, y+1, size-2, size-2, 3, outlineColor, false)
		}
	}
}

func drawPiece(dst *ebiten.Image, p match3.Piece, x, y, size float32) {
	c := pieceColors[p]
	half := size / 2

	switch p {
	case match3.Bomb:
		vector.DrawFilledCircle(dst, x+half, y+half, half, c, true)
	case match3.Eliminator:
		vector.DrawFilledCircle(dst, x+half, y+half, half, c, true)
		vector.StrokeCircle(dst, x+half, y+half, half*0.6, 3, background, true)
	case match3.HorizontalLiner:
		vector.DrawFilledRect(dst, x, y, size, size, c, false)
		vector.DrawFilledRect(dst, x, y+half-size/10, size, size/5, background, false)
	case match3.VerticalLiner:
		vector.DrawFilledRect(dst, x, y, size, size, c, false)
		vector.DrawFilledRect(dst, x+half-size/10, y, size/5, size, background, false)
	default:
		vector.DrawFilledRect(dst, x, y, size, size, c, false)
	}
}

func drawWin(screen *ebiten.Image) {
	screen.Fill(background)
	ebitenutil.DebugPrintAt(screen, "You win!", ScreenWidth/2-24, ScreenHeight/2-8)
	ebitenutil.DebugPrintAt(screen, "Click or press Enter to continue", ScreenWidth/2-96, ScreenHeight/2+16)
}

// rules is the text of the explanation screen.
var rules = []string{
	"Swap two neighbouring pieces to line up three or more of one color.",
	"",
	"Four in a line makes a Liner: it clears its whole row or column.",
	"An L of five makes a Bomb: it clears the 3x3 square around it.",
	"Five in a line makes an Eliminator: it clears 3 cells per board row at random.",
	"Swap a special to set it off.",
	"",
	"Specials are unlocked by finishing levels.",
	"Reach the level's match target to win it.",
}

func drawStart(screen *ebiten.Image) {
	screen.Fill(background)
	ebitenutil.DebugPrintAt(screen, "Match 3", ScreenWidth/2-21, 100)
	ebitenutil.DebugPrintAt(screen, "Click to start", ScreenWidth/2-42, 160)
	ebitenutil.DebugPrintAt(screen, "H: how to play   Q: quit", ScreenWidth/2-72, 190)
}

func drawExplanation(screen *ebiten.Image) {
	screen.Fill(background)
	for i, line := range rules {
		ebitenutil.DebugPrintAt(screen, line, 40, 100+i*20)
	}
	ebitenutil.DebugPrintAt(screen, "Click or press Esc to go back", 40, 100+(len(rules)+1)*20)
}

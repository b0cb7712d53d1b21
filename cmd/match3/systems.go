package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/match3/ecs"
	"github.com/plus3/match3/ecs/debugui"
	"github.com/plus3/match3/match3"
	"go.uber.org/zap"
)

var levelKeys = []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5, ebiten.Key6, ebiten.Key7, ebiten.Key8, ebiten.Key9}

// StartScreenSystem leaves the title screen for level select on click or
// Enter, or for the rules on H.
type StartScreenSystem struct {
	Screen ecs.State[Screen]
	Input  ecs.Singleton[debugui.ImguiInputState]
}

func (s *StartScreenSystem) Execute(frame *ecs.UpdateFrame) {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyH):
		s.Screen.Set(Explanation)
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter):
		s.Screen.Set(LevelSelect)
	default:
		if _, _, ok := leftClick(s.Input.Get()); ok {
			s.Screen.Set(LevelSelect)
		}
	}
}

// ExplanationSystem returns to the title screen on any click, Enter or Esc.
type ExplanationSystem struct {
	Screen ecs.State[Screen]
	Input  ecs.Singleton[debugui.ImguiInputState]
}

func (s *ExplanationSystem) Execute(frame *ecs.UpdateFrame) {
	_, _, clicked := leftClick(s.Input.Get())
	if clicked || inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		s.Screen.Set(Start)
	}
}

// LevelSelectSystem starts an available level on click or number key.
type LevelSelectSystem struct {
	Input ecs.Singleton[debugui.ImguiInputState]

	app *App
}

func (s *LevelSelectSystem) Execute(frame *ecs.UpdateFrame) {
	if x, y, ok := leftClick(s.Input.Get()); ok {
		s.app.chooseLevel(LevelAt(x, y, len(s.app.tracker.Levels())))
	}
	for i, key := range levelKeys {
		if inpututil.IsKeyJustPressed(key) {
			s.app.chooseLevel(i)
		}
	}
}

// BoardInputSystem turns clicks into swap requests, advances the board by one
// step and ends the level once the match target is reached.
type BoardInputSystem struct {
	Input ecs.Singleton[debugui.ImguiInputState]

	app *App
}

func (s *BoardInputSystem) Execute(frame *ecs.UpdateFrame) {
	app := s.app
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		app.screen.Set(LevelSelect)
		return
	}

	// the level failed to start; the queued return to level select wins
	if !app.game.Running() {
		return
	}

	capture := s.Input.Get()
	if !capture.WantCaptureKeyboard && inpututil.IsKeyJustPressed(ebiten.KeyZ) {
		// dev shortcut: count a match without making one
		app.counter.Record(match3.MatchMade{Shape: match3.ShapeTriple})
	}
	if x, y, ok := leftClick(capture); ok {
		if row, col, ok := (Layout{N: app.game.Level().BoardSize}).CellAt(x, y); ok {
			app.clickCell(row, col)
		}
	}

	app.game.Tick()

	if app.counter.Won() {
		app.screen.Set(Won)
	}
}

// WinScreenSystem returns to level select on click or Enter.
type WinScreenSystem struct {
	Screen ecs.State[Screen]
	Input  ecs.Singleton[debugui.ImguiInputState]
}

func (s *WinScreenSystem) Execute(frame *ecs.UpdateFrame) {
	if _, _, ok := leftClick(s.Input.Get()); ok || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		s.Screen.Set(LevelSelect)
	}
}

func leftClick(capture *debugui.ImguiInputState) (int, int, bool) {
	if capture.WantCaptureMouse || !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return 0, 0, false
	}
	x, y := ebiten.CursorPosition()
	return x, y, true
}

// chooseLevel starts level i if it is available.
func (a *App) chooseLevel(i int) bool {
	if !a.tracker.Available(i) {
		return false
	}
	a.level = i
	a.screen.Set(Playing)
	return true
}

// clickCell implements two-click swapping: the first click selects a cell,
// clicking it again clears the selection and clicking another cell requests
// the swap. Clicks are ignored while the board is falling.
func (a *App) clickCell(row, col int) {
	if a.game.State() != match3.InPlay {
		return
	}
	snap := a.game.Snapshot()
	id := snap.At(row, col).ID

	switch a.selected {
	case 0:
		a.selected = id
	case id:
		a.selected = 0
	default:
		a.log.Debug("swap requested", zap.Uint64("a", uint64(a.selected)), zap.Uint64("b", uint64(id)))
		a.game.RequestSwap(a.selected, id)
		a.selected = 0
	}
}

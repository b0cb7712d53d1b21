package main

import (
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/match3/ecs"
	"github.com/plus3/match3/ecs/debugui"
	debugui_ebiten "github.com/plus3/match3/ecs/debugui/ebiten"
	"github.com/plus3/match3/match3"
	"github.com/plus3/match3/progression"
	"go.uber.org/zap"
)

// Screen is the front end's finite state.
type Screen uint8

const (
	Start Screen = iota
	Explanation
	LevelSelect
	Playing
	Won
)

func (s Screen) String() string {
	switch s {
	case Start:
		return "start"
	case Explanation:
		return "explanation"
	case LevelSelect:
		return "level-select"
	case Playing:
		return "playing"
	case Won:
		return "won"
	}
	return "unknown"
}

// AppOptions configures NewApp. Tracker is required; a nil Rand or Log takes
// the match3 defaults.
type AppOptions struct {
	Settings match3.Settings
	Tracker  *progression.Tracker
	Rand     *rand.Rand
	Log      *zap.Logger
	Debug    bool
}

// App is the ebiten.Game. It drives a small UI world of its own, whose Screen
// state switches between level select, the board and the win screen, next to
// the match3 world of the running level.
type App struct {
	game    *match3.Game
	tracker *progression.Tracker
	counter *progression.Counter
	log     *zap.Logger

	ui        *ecs.Storage
	scheduler *ecs.Scheduler
	screen    *ecs.State[Screen]
	input     *ecs.Singleton[debugui.ImguiInputState]
	backend   *debugui_ebiten.ImguiBackend

	level    int
	selected ecs.EntityId
}

func NewApp(opts AppOptions) *App {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}

	a := &App{
		tracker: opts.Tracker,
		log:     log.Named("app"),
		level:   -1,
	}
	a.game = match3.NewGame(opts.Settings,
		match3.WithLogger(log),
		match3.WithRand(opts.Rand),
		match3.WithUnlocks(opts.Tracker),
	)
	a.counter = progression.NewCounter(0, nil, log)
	a.game.OnMatch(a.counter.Record)

	registry := ecs.NewComponentRegistry()
	debugui.RegisterComponents(registry)
	a.ui = ecs.NewStorage(registry)
	a.input = ecs.NewSingleton[debugui.ImguiInputState](a.ui)

	a.screen = ecs.InitState(a.ui, Start)
	a.screen.OnEnter(Playing, a.enterPlaying)
	a.screen.OnExit(Playing, a.exitPlaying)
	a.screen.OnEnter(Won, a.enterWon)

	a.scheduler = ecs.NewScheduler(a.ui)
	a.scheduler.Register(&StartScreenSystem{}, ecs.InState(Start))
	a.scheduler.Register(&ExplanationSystem{}, ecs.InState(Explanation))
	a.scheduler.Register(&LevelSelectSystem{app: a}, ecs.InState(LevelSelect))
	a.scheduler.Register(&BoardInputSystem{app: a}, ecs.InState(Playing))
	a.scheduler.Register(&WinScreenSystem{}, ecs.InState(Won))

	if opts.Debug {
		backend := debugui_ebiten.NewImguiBackend("match3", ScreenWidth, ScreenHeight)
		a.backend = &backend
		a.scheduler.Register(&debugui.ImguiSystem{})
		debugui.SpawnDebugUI(a.ui, a.game.Storage(), a.game.Scheduler())
	}
	return a
}

func (a *App) enterPlaying(*ecs.Storage) {
	lvl, err := a.tracker.Level(a.level)
	if err != nil {
		a.log.Error("cannot start level", zap.Error(err))
		a.screen.Set(LevelSelect)
		return
	}
	a.counter.Reset(lvl.NeededMatches)
	if err := a.game.Start(lvl.Config()); err != nil {
		a.log.Error("cannot start level", zap.String("level", lvl.Name), zap.Error(err))
		a.screen.Set(LevelSelect)
		return
	}
	a.selected = 0
}

func (a *App) exitPlaying(*ecs.Storage) {
	a.game.Stop()
	a.selected = 0
}

func (a *App) enterWon(*ecs.Storage) {
	if err := a.tracker.Finish(a.level); err != nil {
		a.log.Error("cannot finish level", zap.Error(err))
	}
}

func (a *App) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyQ) && a.screen.Get() != Playing {
		return ebiten.Termination
	}

	if a.backend == nil {
		a.scheduler.Once(1.0 / float64(ebiten.TPS()))
		return nil
	}
	a.backend.Frame(func() {
		a.scheduler.Once(1.0 / float64(ebiten.TPS()))
	})
	return nil
}

func (a *App) Draw(screen *ebiten.Image) {
	switch a.screen.Get() {
	case Start:
		drawStart(screen)
	case Explanation:
		drawExplanation(screen)
	case LevelSelect:
		drawLevelSelect(screen, a.tracker)
	case Playing:
		drawBoard(screen, a.game.Snapshot(), a.selected, a.counter)
	case Won:
		drawWin(screen)
	}

	if a.backend != nil {
		a.backend.Overlay(screen)
	}
}

func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if a.backend != nil {
		a.backend.Layout(outsideWidth, outsideHeight)
	}
	return ScreenWidth, ScreenHeight
}

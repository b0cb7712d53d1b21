package match3

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/plus3/match3/ecs"
	"go.uber.org/zap"
)

// LevelConfig is supplied when a level starts.
type LevelConfig struct {
	BoardSize     int
	NeededMatches int
}

// UnlockProvider supplies the unlock flags; it is read at level start and on every tick.
type UnlockProvider interface {
	Unlocks() UnlockFlags
}

// Settings tune the simulation step.
type Settings struct {
	// TickRate is the number of fixed steps per second.
	TickRate int
	// FallRate is how many rows a falling cell moves per step.
	FallRate float32
}

// DefaultSettings are used for any zero field of the Settings passed to NewGame.
var DefaultSettings = Settings{TickRate: 60, FallRate: 0.25}

// Option configures a Game.
type Option func(*Game)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(g *Game) { g.log = log }
}

// WithRand sets the random source used to deal and regenerate pieces and to
// pick Eliminator victims.
func WithRand(r *rand.Rand) Option {
	return func(g *Game) { g.rng = r }
}

// WithUnlocks sets where unlock flags come from. Without it nothing is unlocked
// and only triples resolve.
func WithUnlocks(p UnlockProvider) Option {
	return func(g *Game) { g.unlocks = p }
}

// Game owns one board world and advances it one fixed step at a time.
// It is not safe for concurrent use.
type Game struct {
	settings Settings
	log      *zap.Logger
	rng      *rand.Rand
	unlocks  UnlockProvider

	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	turn      *ecs.State[TurnState]
	board     *ecs.Singleton[Board]
	claimed   *ecs.Singleton[Claimed]
	swapped   *ecs.Singleton[JustSwapped]
	flags     *ecs.Singleton[UnlockFlags]
	queue     *ecs.Singleton[SwapQueue]
	listeners []func(MatchMade)

	level   LevelConfig
	session uuid.UUID
	running bool
	sessLog *zap.Logger
}

// NewGame builds the world and registers the turn systems. No board exists until Start.
func NewGame(settings Settings, opts ...Option) *Game {
	if settings.TickRate <= 0 {
		settings.TickRate = DefaultSettings.TickRate
	}
	if settings.FallRate <= 0 {
		settings.FallRate = DefaultSettings.FallRate
	}

	g := &Game{settings: settings}
	for _, opt := range opts {
		opt(g)
	}
	if g.log == nil {
		g.log = zap.NewNop()
	}
	g.log = g.log.Named("match3")
	g.sessLog = g.log
	if g.rng == nil {
		g.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Piece](registry)
	ecs.RegisterComponent[Fall](registry)
	g.storage = ecs.NewStorage(registry)

	g.board = ecs.NewSingleton[Board](g.storage)
	g.claimed = ecs.NewSingleton[Claimed](g.storage)
	g.swapped = ecs.NewSingleton[JustSwapped](g.storage)
	g.flags = ecs.NewSingleton[UnlockFlags](g.storage)
	g.queue = ecs.NewSingleton[SwapQueue](g.storage)
	ecs.NewSingleton[Random](g.storage, Random{Rand: g.rng})
	g.turn = ecs.InitState(g.storage, InPlay)
	g.turn.OnEnter(AnimatingFallingShapes, func(s *ecs.Storage) {
		compactOnFall(g.sessLog)(s)
	})

	g.scheduler = ecs.NewScheduler(g.storage)
	g.scheduler.Register(&unlockSystem{game: g})
	g.scheduler.Register(&PlaySystem{log: g.log}, ecs.InState(InPlay))
	g.scheduler.Register(&FallSystem{rate: settings.FallRate, log: g.log}, ecs.InState(AnimatingFallingShapes))
	g.scheduler.Register(&MatchNotifySystem{listeners: &g.listeners})
	return g
}

// Start deals a fresh random board for level and enters InPlay. A running
// level is stopped first.
func (g *Game) Start(level LevelConfig) error {
	if level.BoardSize < 1 {
		return fmt.Errorf("start level: board size %d must be positive", level.BoardSize)
	}
	pieces := make([]Piece, level.BoardSize*level.BoardSize)
	for i := range pieces {
		pieces[i] = RandomPlain(g.rng)
	}
	return g.StartWithPieces(level, pieces)
}

// StartWithPieces starts level from a fixed row-major layout.
func (g *Game) StartWithPieces(level LevelConfig, pieces []Piece) error {
	n := level.BoardSize
	if n < 1 {
		return fmt.Errorf("start level: board size %d must be positive", n)
	}
	if len(pieces) != n*n {
		return fmt.Errorf("start level: %d pieces for a %dx%d board", len(pieces), n, n)
	}
	if g.running {
		g.Stop()
	}

	cells := make([]ecs.EntityId, len(pieces))
	for i, p := range pieces {
		cells[i] = g.storage.Spawn(p, Fall{})
	}
	g.storage.AddSingleton(NewBoard(n, cells))
	g.storage.AddSingleton(NewClaimed(n))
	g.storage.AddSingleton(JustSwapped{})
	g.queue.Get().clear()
	g.refreshUnlocks()
	ecs.InitState(g.storage, InPlay)

	g.level = level
	g.session = uuid.New()
	g.sessLog = g.log.With(zap.String("session", g.session.String()))
	g.running = true

	flags := *g.flags.Get()
	g.sessLog.Info("level started",
		zap.Int("board_size", n),
		zap.Int("needed_matches", level.NeededMatches),
		zap.Bool("eliminator", flags.Eliminator),
		zap.Bool("bomb", flags.Bomb),
		zap.Bool("liner", flags.Liner),
	)
	return nil
}

// Stop deletes the board and every cell. It is a no-op when nothing is running.
func (g *Game) Stop() {
	if !g.running {
		return
	}
	for _, id := range g.board.Get().Cells {
		g.storage.Delete(id)
	}
	g.storage.AddSingleton(Board{})
	g.claimed.Get().Clear()
	g.queue.Get().clear()
	ecs.InitState(g.storage, InPlay)
	g.running = false
	g.sessLog.Info("level stopped", zap.Uint64("ticks", g.scheduler.Ticks()))
}

// Running reports whether a level is in progress.
func (g *Game) Running() bool {
	return g.running
}

// Level returns the configuration of the running (or last) level.
func (g *Game) Level() LevelConfig {
	return g.level
}

// Session identifies the current level run in logs and reports.
func (g *Game) Session() uuid.UUID {
	return g.session
}

// RequestSwap queues a swap of cells a and b for a later InPlay tick. Requests
// are taken one per tick in arrival order and validated only then; requests
// pending while the board is falling are dropped.
func (g *Game) RequestSwap(a, b ecs.EntityId) {
	if !g.running {
		return
	}
	g.queue.Get().push(SwapRequest{A: a, B: b})
}

// SwapAt is RequestSwap addressed by position. It reports false when either
// position is off the board.
func (g *Game) SwapAt(r1, c1, r2, c2 int) bool {
	board := g.board.Get()
	a, okA := board.CellAt(r1, c1)
	b, okB := board.CellAt(r2, c2)
	if !okA || !okB {
		return false
	}
	g.RequestSwap(a, b)
	return true
}

// OnMatch subscribes fn to MatchMade notifications. They are delivered at the
// end of the tick that produced them, in emission order.
func (g *Game) OnMatch(fn func(MatchMade)) {
	g.listeners = append(g.listeners, fn)
}

// Tick advances the simulation by one fixed step. It does nothing when no level is running.
func (g *Game) Tick() {
	if !g.running {
		return
	}
	g.scheduler.Once(g.stepSeconds())
}

// Run ticks at the configured rate until ctx is done.
func (g *Game) Run(ctx context.Context) {
	g.scheduler.Run(ctx, time.Second/time.Duration(g.settings.TickRate))
}

// State returns the current turn state.
func (g *Game) State() TurnState {
	return g.turn.Get()
}

// Storage exposes the world for debugging tools. Callers must not mutate it.
func (g *Game) Storage() *ecs.Storage {
	return g.storage
}

// Scheduler exposes the system scheduler for statistics.
func (g *Game) Scheduler() *ecs.Scheduler {
	return g.scheduler
}

func (g *Game) stepSeconds() float64 {
	return 1 / float64(g.settings.TickRate)
}

func (g *Game) refreshUnlocks() {
	if g.unlocks == nil {
		return
	}
	*g.flags.Get() = g.unlocks.Unlocks()
}

// unlockSystem copies the provider's flags into the world at the start of every tick.
type unlockSystem struct {
	game *Game
}

func (s *unlockSystem) Execute(frame *ecs.UpdateFrame) {
	s.game.refreshUnlocks()
}

package match3

import (
	"github.com/plus3/match3/ecs"
	"go.uber.org/zap"
)

// PlaySystem runs the swap and match pipeline while the board is InPlay. Each
// tick it takes at most one queued swap, activates any specials it moved, then
// resolves matches. Any claimed cell hands the turn over to the fall animation;
// matches that the fall uncovers are found on the next InPlay tick.
type PlaySystem struct {
	Board   ecs.Singleton[Board]
	Claimed ecs.Singleton[Claimed]
	Swapped ecs.Singleton[JustSwapped]
	Unlocks ecs.Singleton[UnlockFlags]
	Queue   ecs.Singleton[SwapQueue]
	Rand    ecs.Singleton[Random]
	Turn    ecs.State[TurnState]
	Matches ecs.Events[MatchMade]

	log *zap.Logger
}

func (s *PlaySystem) Execute(frame *ecs.UpdateFrame) {
	board := s.Board.Get()
	claimed := s.Claimed.Get()
	swapped := s.Swapped.Get()
	pieces := ecs.Components[Piece](frame.Storage)
	rng := s.Rand.Get().Rand

	if req, ok := s.Queue.Get().pop(); ok {
		if TrySwap(board, pieces, claimed, swapped, req.A, req.B, rng) {
			s.log.Debug("swap accepted",
				zap.Uint64("a", uint64(req.A)),
				zap.Uint64("b", uint64(req.B)),
				zap.Int("activated", claimed.Len()),
			)
		} else {
			s.log.Debug("swap rejected",
				zap.Uint64("a", uint64(req.A)),
				zap.Uint64("b", uint64(req.B)),
			)
		}
	}

	for _, made := range Resolve(board, pieces, claimed, *s.Unlocks.Get(), *swapped) {
		row, col := board.PositionOf(made.Center)
		s.log.Debug("match resolved",
			zap.Stringer("shape", made.Shape),
			zap.Int("row", row),
			zap.Int("col", col),
			zap.Int("cells", len(made.Cells)),
		)
		s.Matches.Send(made)
	}

	if claimed.Len() > 0 {
		s.Turn.Set(AnimatingFallingShapes)
	}
}

// FallSystem advances the fall animation while the board is AnimatingFallingShapes
// and returns the turn to InPlay once every cell is at rest. Swap input that
// arrives mid-fall is dropped.
type FallSystem struct {
	Cells ecs.Query[struct{ *Fall }]
	Queue ecs.Singleton[SwapQueue]
	Turn  ecs.State[TurnState]

	rate float32
	log  *zap.Logger
}

func (s *FallSystem) Execute(frame *ecs.UpdateFrame) {
	if dropped := s.Queue.Get().clear(); dropped > 0 {
		s.log.Debug("swap input dropped during fall", zap.Int("requests", dropped))
	}

	resting := true
	for cell := range s.Cells.Values() {
		if !Settle(cell.Fall, s.rate) {
			resting = false
		}
	}
	if resting {
		s.Turn.Set(InPlay)
	}
}

// MatchNotifySystem hands the tick's MatchMade events to subscribers in the
// order they were emitted. It runs last so every match of the tick is seen.
type MatchNotifySystem struct {
	Matches ecs.Events[MatchMade]

	listeners *[]func(MatchMade)
}

func (s *MatchNotifySystem) Execute(frame *ecs.UpdateFrame) {
	for made := range s.Matches.Read() {
		for _, fn := range *s.listeners {
			fn(made)
		}
	}
}

// compactOnFall is the enter hook of AnimatingFallingShapes: it runs the one
// gravity cycle of the turn before any animation tick.
func compactOnFall(log *zap.Logger) func(*ecs.Storage) {
	return func(storage *ecs.Storage) {
		var (
			board   *Board
			claimed *Claimed
			rng     *Random
		)
		if !storage.ReadSingleton(&board) || !storage.ReadSingleton(&claimed) || !storage.ReadSingleton(&rng) {
			return
		}

		removed := claimed.Len()
		regenerated := Compact(board,
			ecs.Components[Piece](storage),
			ecs.Components[Fall](storage),
			claimed, rng.Rand)
		log.Debug("board compacted", zap.Int("claimed", removed), zap.Int("regenerated", regenerated))
	}
}

package ecs_test

import (
	"fmt"
	"reflect"

	"github.com/plus3/match3/ecs"
)

type Turn int

const (
	TurnPlay Turn = iota
	TurnSettle
)

var gemType = reflect.TypeOf(Gem{})

type Cleared struct {
	Count int
}

type ClearSystem struct {
	Turn    ecs.State[Turn]
	Cleared ecs.Events[Cleared]
	Gems    ecs.Query[struct {
		ecs.EntityId
		*Gem
	}]
}

func (s *ClearSystem) Execute(frame *ecs.UpdateFrame) {
	count := 0
	for item := range s.Gems.Values() {
		if item.Gem.Color == "red" {
			frame.Commands.RemoveComponent(item.EntityId, gemType)
			count++
		}
	}
	if count > 0 {
		s.Cleared.Send(Cleared{Count: count})
		s.Turn.Set(TurnSettle)
	}
}

type SettleSystem struct {
	Turn    ecs.State[Turn]
	Cleared ecs.Events[Cleared]
}

func (s *SettleSystem) Execute(frame *ecs.UpdateFrame) {
	for event := range s.Cleared.Read() {
		fmt.Printf("tick %d: settling after %d cleared\n", frame.Tick, event.Count)
	}
	s.Turn.Set(TurnPlay)
}

// ExampleScheduler demonstrates a two-phase loop built from states, events and queries.
// Systems are executed in registration order. Conditions gate which systems run,
// structural changes are applied at the end of the frame, and queued state
// transitions take effect after that.
func ExampleScheduler() {
	storage := ecs.NewStorage(newTestRegistry())
	turn := ecs.InitState(storage, TurnPlay)

	storage.Spawn(Slot{Row: 0, Col: 0}, Gem{Color: "red"})
	storage.Spawn(Slot{Row: 0, Col: 1}, Gem{Color: "red"})
	storage.Spawn(Slot{Row: 0, Col: 2}, Gem{Color: "blue"})

	turn.OnEnter(TurnSettle, func(s *ecs.Storage) {
		fmt.Printf("gems left: %d\n", ecs.Components[Gem](s).Len())
	})

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&ClearSystem{}, ecs.InState(TurnPlay))
	scheduler.Register(&SettleSystem{}, ecs.InState(TurnSettle))

	scheduler.Once(1.0)
	scheduler.Once(1.0)
	scheduler.Once(1.0)

	fmt.Println("turn is play:", turn.Get() == TurnPlay)

	// Output:
	// gems left: 1
	// tick 2: settling after 2 cleared
	// turn is play: true
}

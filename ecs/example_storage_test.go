package ecs_test

import (
	"fmt"
	"reflect"

	"github.com/plus3/match3/ecs"
)

// ExampleStorage demonstrates the basic API for managing entities and components.
// Storage is the core container for all entities and their component data.
func ExampleStorage() {
	storage := ecs.NewStorage(newTestRegistry())

	cell := storage.Spawn(
		Slot{Row: 2, Col: 3},
		Gem{Color: "red"},
	)

	slot := ecs.ReadComponent[Slot](storage, cell)
	fmt.Printf("Gem placed at (%d, %d)\n", slot.Row, slot.Col)

	slot.Row = 4
	fmt.Printf("Gem moved to (%d, %d)\n", slot.Row, slot.Col)

	storage.Delete(cell)
	fmt.Println("Gem removed:", !storage.Alive(cell))

	// Output:
	// Gem placed at (2, 3)
	// Gem moved to (4, 3)
	// Gem removed: true
}

// ExampleStorage_addRemoveComponents shows components being attached to and
// detached from a live entity. The entity id never changes.
func ExampleStorage_addRemoveComponents() {
	storage := ecs.NewStorage(newTestRegistry())

	entity := storage.Spawn(Slot{Row: 0, Col: 0})

	hasDrop := storage.HasComponent(entity, reflect.TypeOf(Drop{}))
	fmt.Printf("Falling: %v\n", hasDrop)

	storage.AddComponent(entity, Drop{Offset: 3})
	drop := ecs.ReadComponent[Drop](storage, entity)
	fmt.Printf("Falling: %v (%.0f rows)\n", drop != nil, drop.Offset)

	storage.AddComponent(entity, Gem{Color: "blue"})
	gem := ecs.ReadComponent[Gem](storage, entity)
	fmt.Printf("Gem: %s\n", gem.Color)

	storage.RemoveComponent(entity, reflect.TypeOf(Drop{}))
	hasDrop = storage.HasComponent(entity, reflect.TypeOf(Drop{}))
	fmt.Printf("Falling: %v\n", hasDrop)

	// Output:
	// Falling: false
	// Falling: true (3 rows)
	// Gem: blue
	// Falling: false
}

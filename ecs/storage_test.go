package ecs_test

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/plus3/match3/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityIdEncoding(t *testing.T) {
	tests := []struct {
		generation uint32
		index      uint32
	}{
		{1, 0},
		{0xFFFFFFFF, 0xFFFFFFFF},
		{1, 1},
		{0x12345678, 0x9ABCDEF0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("generation=%d,index=%d", tt.generation, tt.index), func(t *testing.T) {
			id := ecs.NewEntityId(tt.generation, tt.index)
			assert.Equal(t, tt.generation, id.Generation())
			assert.Equal(t, tt.index, id.Index())
		})
	}
}

func TestSpawnEntity(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(&Slot{Row: 1, Col: 2}, Gem{Color: "red"}, Score(32))
	assert.NotEqual(t, ecs.EntityId(0), id)
	assert.True(t, storage.Alive(id))
	assert.Equal(t, 1, storage.EntityCount())

	slot := ecs.ReadComponent[Slot](storage, id)
	require.NotNil(t, slot)
	assert.Equal(t, Slot{Row: 1, Col: 2}, *slot)
	assert.Equal(t, Score(32), *ecs.ReadComponent[Score](storage, id))
}

func TestSpawnPanics(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	assert.Panics(t, func() { storage.Spawn() }, "spawning without components")
	assert.Panics(t, func() { storage.Spawn(struct{ Unregistered int }{}) }, "unregistered component")
	assert.Panics(t, func() { storage.Spawn(map[string]int{}) }, "map component")
}

func TestGetComponent(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(&Slot{Row: 3, Col: 4}, Label("corner"))

	slotComp := storage.GetComponent(id, reflect.TypeOf(Slot{}))
	require.NotNil(t, slotComp)
	slot := slotComp.(*Slot)
	assert.Equal(t, 3, slot.Row)
	assert.Equal(t, 4, slot.Col)

	labelComp := storage.GetComponent(id, reflect.TypeOf(Label("")))
	require.NotNil(t, labelComp)
	assert.Equal(t, Label("corner"), *labelComp.(*Label))

	assert.Nil(t, storage.GetComponent(id, reflect.TypeOf(Gem{})))
	assert.Nil(t, ecs.ReadComponent[Gem](storage, id))
}

func TestDeleteEntity(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(&Slot{Row: 1, Col: 1}, &Gem{Color: "blue"})
	require.NotNil(t, storage.GetComponent(id, reflect.TypeOf(Slot{})))

	storage.Delete(id)

	assert.False(t, storage.Alive(id))
	assert.Nil(t, storage.GetComponent(id, reflect.TypeOf(Slot{})))
	assert.Zero(t, storage.EntityCount())

	// deleting twice is harmless
	storage.Delete(id)
	assert.Zero(t, storage.EntityCount())
}

func TestRecycledSlotGetsNewGeneration(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	first := storage.Spawn(Gem{Color: "red"})
	storage.Delete(first)
	second := storage.Spawn(Gem{Color: "green"})

	assert.Equal(t, first.Index(), second.Index())
	assert.NotEqual(t, first.Generation(), second.Generation())
	assert.False(t, storage.Alive(first))
	assert.Nil(t, ecs.ReadComponent[Gem](storage, first), "stale id must not see the new entity")
	assert.Equal(t, "green", ecs.ReadComponent[Gem](storage, second).Color)
}

func TestComponentPointersSurviveGrowth(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	first := storage.Spawn(Drop{Offset: 1})
	ptr := ecs.ReadComponent[Drop](storage, first)

	for i := 0; i < 500; i++ {
		storage.Spawn(Drop{Offset: float32(i)})
	}

	ptr.Offset = 42
	assert.Equal(t, float32(42), ecs.ReadComponent[Drop](storage, first).Offset)
}

func TestAddRemoveComponent(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Slot{Row: 2, Col: 2})
	assert.False(t, storage.HasComponent(id, reflect.TypeOf(Frozen{})))

	require.True(t, storage.AddComponent(id, Frozen{}))
	assert.True(t, storage.HasComponent(id, reflect.TypeOf(Frozen{})))

	// replacing keeps a single component
	require.True(t, storage.AddComponent(id, Gem{Color: "pink"}))
	require.True(t, storage.AddComponent(id, &Gem{Color: "red"}))
	assert.Equal(t, "red", ecs.ReadComponent[Gem](storage, id).Color)
	assert.Equal(t, 1, ecs.Components[Gem](storage).Len())

	require.True(t, storage.RemoveComponent(id, reflect.TypeOf(Frozen{})))
	assert.False(t, storage.HasComponent(id, reflect.TypeOf(Frozen{})))
	assert.True(t, storage.Alive(id))

	assert.False(t, storage.RemoveComponent(id, reflect.TypeOf(Frozen{})), "already removed")
}

func TestComponentTypes(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	a := storage.Spawn(Slot{Row: 1, Col: 1}, Gem{Color: "blue"})
	b := storage.Spawn(Score(3), Label("b"))
	storage.Spawn(Frozen{})
	storage.Delete(storage.Spawn(Chain{}))

	assert.Equal(t, []reflect.Type{
		reflect.TypeOf(Frozen{}),
		reflect.TypeOf(Gem{}),
		reflect.TypeOf(Label("")),
		reflect.TypeOf(Score(0)),
		reflect.TypeOf(Slot{}),
	}, storage.ComponentTypes(), "empty stores are left out")

	assert.Equal(t, []reflect.Type{reflect.TypeOf(Gem{}), reflect.TypeOf(Slot{})}, storage.EntityComponents(a))
	assert.Equal(t, []reflect.Type{reflect.TypeOf(Label("")), reflect.TypeOf(Score(0))}, storage.EntityComponents(b))

	storage.Delete(b)
	assert.Nil(t, storage.EntityComponents(b))
}

func TestRemovingLastComponentDeletesEntity(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Score(7))
	require.True(t, storage.RemoveComponent(id, reflect.TypeOf(Score(0))))

	assert.False(t, storage.Alive(id))
	assert.False(t, storage.AddComponent(id, Score(8)), "cannot add to a deleted entity")
}

func TestComponentStore(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	gems := ecs.Components[Gem](storage)

	a := storage.Spawn(Gem{Color: "red"})
	b := storage.Spawn(Gem{Color: "blue"})
	c := storage.Spawn(Gem{Color: "green"})
	storage.Delete(b)

	assert.Equal(t, 2, gems.Len())
	assert.True(t, gems.Has(a))
	assert.False(t, gems.Has(b))

	seen := make(map[ecs.EntityId]string)
	for id, gem := range gems.All() {
		seen[id] = gem.Color
	}
	assert.Equal(t, map[ecs.EntityId]string{a: "red", c: "green"}, seen)

	var entities []ecs.EntityId
	for id := range storage.Entities(reflect.TypeOf(Gem{})) {
		entities = append(entities, id)
	}
	assert.ElementsMatch(t, []ecs.EntityId{a, c}, entities)
}

func TestReadSingleton(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	var chain *Chain
	assert.False(t, storage.ReadSingleton(&chain))
	assert.Nil(t, chain)

	storage.AddSingleton(Chain{Links: []int{1, 2}})
	require.True(t, storage.ReadSingleton(&chain))
	assert.Equal(t, []int{1, 2}, chain.Links)

	// replacing keeps existing handles pointed at the live value
	handle := ecs.NewSingleton[Chain](storage)
	storage.AddSingleton(&Chain{Links: []int{3}})
	assert.Equal(t, []int{3}, handle.Get().Links)

	assert.Panics(t, func() { storage.ReadSingleton(chain) })
}

package ecs

import (
	"iter"
	"reflect"
	"unsafe"

	"github.com/kamstrup/intmap"
)

// ComponentRegistry manages component type registration for an ECS instance.
// Each Storage instance has its own ComponentRegistry, allowing multiple
// independent worlds (for example two boards in one test) to coexist.
type ComponentRegistry struct {
	factories map[reflect.Type]func() iComponentStorage
}

// NewComponentRegistry creates a new component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() iComponentStorage),
	}
}

// RegisterComponent registers a new component type with the given registry.
// This must be called for each component type before it can be spawned.
func RegisterComponent[T any](r *ComponentRegistry) {
	t := reflect.TypeFor[T]()
	r.factories[t] = func() iComponentStorage {
		return newComponentStore[T]()
	}
}

// getFactory returns the factory function for a given component type.
// Returns nil if the type is not registered.
func (r *ComponentRegistry) getFactory(t reflect.Type) func() iComponentStorage {
	return r.factories[t]
}

const (
	genericBlockSize = 64
)

// ComponentStore holds every component of type T, keyed by entity.
// Components live in fixed-size blocks that are never moved, so a pointer returned
// by Get stays valid until that entity's component is removed.
type ComponentStore[T any] struct {
	slots     *intmap.Map[EntityId, int]
	blocks    []*[genericBlockSize]T
	owners    []EntityId
	freeSlots []int
}

func newComponentStore[T any]() *ComponentStore[T] {
	return &ComponentStore[T]{
		slots: intmap.New[EntityId, int](genericBlockSize),
	}
}

// Insert stores value for the entity, replacing any previous value, and returns
// a pointer to the stored component.
func (cs *ComponentStore[T]) Insert(id EntityId, value T) *T {
	if slot, ok := cs.slots.Get(id); ok {
		ptr := cs.at(slot)
		*ptr = value
		return ptr
	}

	var slot int
	if n := len(cs.freeSlots); n > 0 {
		slot = cs.freeSlots[n-1]
		cs.freeSlots = cs.freeSlots[:n-1]
		cs.owners[slot] = id
	} else {
		slot = len(cs.owners)
		cs.owners = append(cs.owners, id)
		if slot/genericBlockSize >= len(cs.blocks) {
			cs.blocks = append(cs.blocks, new([genericBlockSize]T))
		}
	}

	cs.slots.Put(id, slot)
	ptr := cs.at(slot)
	*ptr = value
	return ptr
}

// Get returns a pointer to the entity's component, or nil if it has none.
func (cs *ComponentStore[T]) Get(id EntityId) *T {
	slot, ok := cs.slots.Get(id)
	if !ok {
		return nil
	}
	return cs.at(slot)
}

// Has reports whether the entity has a component in this store.
func (cs *ComponentStore[T]) Has(id EntityId) bool {
	return cs.slots.Has(id)
}

// Remove deletes the entity's component. Returns false if there was none.
func (cs *ComponentStore[T]) Remove(id EntityId) bool {
	slot, ok := cs.slots.Get(id)
	if !ok {
		return false
	}

	var zero T
	*cs.at(slot) = zero
	cs.owners[slot] = 0
	cs.freeSlots = append(cs.freeSlots, slot)
	cs.slots.Del(id)
	return true
}

// Len returns the number of stored components.
func (cs *ComponentStore[T]) Len() int {
	return cs.slots.Len()
}

// All iterates entities and their components in slot order.
func (cs *ComponentStore[T]) All() iter.Seq2[EntityId, *T] {
	return func(yield func(EntityId, *T) bool) {
		for slot, owner := range cs.owners {
			if owner == 0 {
				continue
			}
			if !yield(owner, cs.at(slot)) {
				return
			}
		}
	}
}

func (cs *ComponentStore[T]) at(slot int) *T {
	return &cs.blocks[slot/genericBlockSize][slot%genericBlockSize]
}

func (cs *ComponentStore[T]) componentType() reflect.Type {
	return reflect.TypeFor[T]()
}

func (cs *ComponentStore[T]) insertAny(id EntityId, item any) bool {
	switch v := item.(type) {
	case T:
		cs.Insert(id, v)
	case *T:
		cs.Insert(id, *v)
	default:
		return false
	}
	return true
}

func (cs *ComponentStore[T]) remove(id EntityId) bool {
	return cs.Remove(id)
}

func (cs *ComponentStore[T]) getAny(id EntityId) any {
	ptr := cs.Get(id)
	if ptr == nil {
		return nil
	}
	return ptr
}

func (cs *ComponentStore[T]) pointer(id EntityId) unsafe.Pointer {
	return unsafe.Pointer(cs.Get(id))
}

func (cs *ComponentStore[T]) has(id EntityId) bool {
	return cs.Has(id)
}

func (cs *ComponentStore[T]) len() int {
	return cs.Len()
}

func (cs *ComponentStore[T]) ids() iter.Seq[EntityId] {
	return func(yield func(EntityId) bool) {
		for id := range cs.All() {
			if !yield(id) {
				return
			}
		}
	}
}

package ecs

import (
	"iter"
	"reflect"
	"slices"
	"strings"
)

// Storage owns every entity, component, singleton, event buffer and state of one world.
// It is not safe for concurrent use; a world is advanced by exactly one Scheduler.
type Storage struct {
	registry   *ComponentRegistry
	entities   entityAllocator
	components map[reflect.Type]iComponentStorage
	singletons map[reflect.Type]*singletonEntry
	events     []eventRotator
	states     []stateTransitioner

	// structural changes bump the version so cached queries know to rebuild
	version uint64
}

// NewStorage creates a new ECS storage with the given component registry
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		registry:   registry,
		components: make(map[reflect.Type]iComponentStorage),
		singletons: make(map[reflect.Type]*singletonEntry),
	}
}

// Spawn creates a new entity with the provided components
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("cannot spawn entity without components")
	}

	types := extractComponentTypes(components)

	id := s.entities.allocate()
	for i, comp := range components {
		s.storeFor(types[i]).insertAny(id, comp)
	}
	s.version++
	return id
}

// Delete removes all data related to the entity ID. Deleting a dead id is a no-op.
func (s *Storage) Delete(id EntityId) {
	if !s.entities.release(id) {
		return
	}
	for _, store := range s.components {
		store.remove(id)
	}
	s.version++
}

// Alive reports whether id names an entity that has not been deleted.
func (s *Storage) Alive(id EntityId) bool {
	return s.entities.isAlive(id)
}

// EntityCount returns the number of live entities.
func (s *Storage) EntityCount() int {
	return s.entities.count
}

// AddComponent attaches (or replaces) a component on a live entity.
func (s *Storage) AddComponent(id EntityId, component any) bool {
	if !s.entities.isAlive(id) {
		return false
	}
	compType := extractComponentTypes([]any{component})[0]
	store := s.storeFor(compType)
	had := store.has(id)
	store.insertAny(id, component)
	if !had {
		s.version++
	}
	return true
}

// RemoveComponent detaches a component. An entity left without components is deleted,
// matching the rule that entities cannot exist without components.
func (s *Storage) RemoveComponent(id EntityId, compType reflect.Type) bool {
	store, ok := s.components[compType]
	if !ok || !store.remove(id) {
		return false
	}
	s.version++

	for _, other := range s.components {
		if other.has(id) {
			return true
		}
	}
	s.Delete(id)
	return true
}

// GetComponent returns a pointer to the component for the given entity ID and component type,
// or nil if the entity does not have it.
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	if !s.entities.isAlive(id) {
		return nil
	}
	store, ok := s.components[compType]
	if !ok {
		return nil
	}
	return store.getAny(id)
}

// HasComponent checks if an entity has a specific component type
func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	store, ok := s.components[compType]
	if !ok {
		return false
	}
	return s.entities.isAlive(id) && store.has(id)
}

// Entities iterates the ids of every live entity holding a component of compType.
func (s *Storage) Entities(compType reflect.Type) iter.Seq[EntityId] {
	return func(yield func(EntityId) bool) {
		store, ok := s.components[compType]
		if !ok {
			return
		}
		for id := range store.ids() {
			if !yield(id) {
				return
			}
		}
	}
}

// ComponentTypes returns every component type currently held by at least one
// entity, ordered by name.
func (s *Storage) ComponentTypes() []reflect.Type {
	types := make([]reflect.Type, 0, len(s.components))
	for t, store := range s.components {
		if store.len() > 0 {
			types = append(types, t)
		}
	}
	slices.SortFunc(types, func(a, b reflect.Type) int {
		return strings.Compare(a.String(), b.String())
	})
	return types
}

// EntityComponents returns the component types attached to id, ordered by name.
func (s *Storage) EntityComponents(id EntityId) []reflect.Type {
	if !s.entities.isAlive(id) {
		return nil
	}
	var types []reflect.Type
	for _, t := range s.ComponentTypes() {
		if s.components[t].has(id) {
			types = append(types, t)
		}
	}
	return types
}

// storeFor returns the store for a component type, creating it on first use.
func (s *Storage) storeFor(t reflect.Type) iComponentStorage {
	if store, ok := s.components[t]; ok {
		return store
	}
	factory := s.registry.getFactory(t)
	if factory == nil {
		panic("component type " + t.String() + " not registered")
	}
	store := factory()
	s.components[t] = store
	return store
}

// Components returns the typed store for T. T must be registered.
func Components[T any](s *Storage) *ComponentStore[T] {
	return s.storeFor(reflect.TypeFor[T]()).(*ComponentStore[T])
}

// extractComponentTypes resolves the component type of each value, dereferencing pointers
func extractComponentTypes(components []any) []reflect.Type {
	types := make([]reflect.Type, 0, len(components))
	for _, comp := range components {
		compType := reflect.TypeOf(comp)

		// If it's a pointer, get the underlying type
		if compType.Kind() == reflect.Ptr {
			compType = compType.Elem()
		}

		// Components can be structs or primitives (int, string, etc.)
		// But not pointers, maps, channels, or functions (those aren't value types)
		if compType.Kind() == reflect.Ptr || compType.Kind() == reflect.Map ||
			compType.Kind() == reflect.Chan || compType.Kind() == reflect.Func {
			panic("components cannot be pointers, maps, channels, or functions")
		}

		types = append(types, compType)
	}
	return types
}

type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns the entity's T component, or nil if it has none.
func ReadComponent[T any](reader ComponentReader, entityId EntityId) *T {
	comp, _ := reader.GetComponent(entityId, reflect.TypeFor[T]()).(*T)
	return comp
}

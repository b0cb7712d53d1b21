package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

var entityIdType = reflect.TypeFor[EntityId]()

// Query iterates entities holding a combination of components.
// The type T must be a struct whose fields are pointers to component types; the
// pointers are filled in for each matching entity. Named pointer fields can be
// marked `ecs:"optional"` and are nil when the entity lacks that component.
// A field of type EntityId (embedded or named) receives the entity's id.
//
// Results are cached and rebuilt only when the storage has changed structurally,
// so iterating a Query every frame over a stable world does no allocation.
type Query[T any] struct {
	storage     *Storage
	types       []reflect.Type
	optional    []bool
	fieldOffset []uintptr
	idOffset    uintptr
	hasIdField  bool

	cachedVersion    uint64
	cachedEntities   []EntityId
	cachedComponents []T
	cacheValid       bool
}

// NewQuery creates a Query bound to storage.
func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init initializes or re-initializes the Query with a storage.
// Called by the Scheduler during system registration.
func (q *Query[T]) Init(storage *Storage) {
	structType := reflect.TypeFor[T]()
	if structType.Kind() != reflect.Struct {
		panic("Query type parameter must be a struct")
	}

	q.storage = storage
	q.types = q.types[:0]
	q.optional = q.optional[:0]
	q.fieldOffset = q.fieldOffset[:0]
	q.hasIdField = false
	q.cacheValid = false

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)

		if field.Type == entityIdType {
			q.idOffset = field.Offset
			q.hasIdField = true
			continue
		}

		if field.Type.Kind() != reflect.Ptr {
			panic("Query struct fields must be pointer types or EntityId")
		}

		// Embedded fields are always required
		isOptional := false
		if !field.Anonymous {
			if tag := field.Tag.Get("ecs"); tag != "" {
				if tag != "optional" {
					panic("invalid ecs tag value: \"" + tag + "\" (only \"optional\" is supported)")
				}
				isOptional = true
			}
		}

		q.types = append(q.types, field.Type.Elem())
		q.optional = append(q.optional, isOptional)
		q.fieldOffset = append(q.fieldOffset, field.Offset)
	}
}

// Execute rebuilds the entity and component caches if the storage changed since
// the last call. Called automatically by the Scheduler before each system runs.
func (q *Query[T]) Execute() {
	if q.cacheValid && q.cachedVersion == q.storage.version {
		return
	}

	q.cachedEntities = q.cachedEntities[:0]
	q.cachedComponents = q.cachedComponents[:0]

	driver := q.driverStore()
	if driver != nil {
		var result T
		for id := range driver.ids() {
			if q.fill(id, &result) {
				q.cachedEntities = append(q.cachedEntities, id)
				q.cachedComponents = append(q.cachedComponents, result)
			}
		}
	}

	q.cachedVersion = q.storage.version
	q.cacheValid = true
}

// driverStore picks the smallest required store to drive iteration.
// Returns nil when a required component has never been stored.
func (q *Query[T]) driverStore() iComponentStorage {
	var driver iComponentStorage
	for i, t := range q.types {
		if q.optional[i] {
			continue
		}
		store, ok := q.storage.components[t]
		if !ok {
			return nil
		}
		if driver == nil || store.len() < driver.len() {
			driver = store
		}
	}
	return driver
}

// fill populates ptr for the entity. Returns false if a required component is missing.
func (q *Query[T]) fill(id EntityId, ptr *T) bool {
	structPtr := unsafe.Pointer(ptr)

	for i, t := range q.types {
		fieldPtr := unsafe.Add(structPtr, q.fieldOffset[i])

		var componentPtr unsafe.Pointer
		if store, ok := q.storage.components[t]; ok {
			componentPtr = store.pointer(id)
		}
		if componentPtr == nil && !q.optional[i] {
			return false
		}
		*(*unsafe.Pointer)(fieldPtr) = componentPtr
	}

	if q.hasIdField {
		*(*EntityId)(unsafe.Add(structPtr, q.idOffset)) = id
	}
	return true
}

// Get returns a populated struct for a single entity, or nil if it does not match.
func (q *Query[T]) Get(id EntityId) *T {
	if !q.storage.Alive(id) {
		return nil
	}
	var result T
	if !q.fill(id, &result) {
		return nil
	}
	return &result
}

// Len returns the number of cached matches. Panics if Execute() has not been called.
func (q *Query[T]) Len() int {
	if !q.cacheValid {
		panic("Query.Len() called before Query.Execute()")
	}
	return len(q.cachedEntities)
}

// Iter returns an iterator over entity IDs and component data.
// Panics if Execute() has not been called this frame.
func (q *Query[T]) Iter() iter.Seq2[EntityId, T] {
	if !q.cacheValid {
		panic("Query.Iter() called before Query.Execute()")
	}

	return func(yield func(EntityId, T) bool) {
		for i := range q.cachedEntities {
			if !yield(q.cachedEntities[i], q.cachedComponents[i]) {
				return
			}
		}
	}
}

// Values returns an iterator over component data only.
// Panics if Execute() has not been called this frame.
func (q *Query[T]) Values() iter.Seq[T] {
	if !q.cacheValid {
		panic("Query.Values() called before Query.Execute()")
	}

	return func(yield func(T) bool) {
		for i := range q.cachedComponents {
			if !yield(q.cachedComponents[i]) {
				return
			}
		}
	}
}

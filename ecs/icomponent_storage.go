package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

// iComponentStorage is the type-erased view of a ComponentStore used by Storage,
// Commands and Query, which only know component types at runtime.
type iComponentStorage interface {
	insertAny(id EntityId, item any) bool
	remove(id EntityId) bool
	getAny(id EntityId) any
	pointer(id EntityId) unsafe.Pointer
	has(id EntityId) bool
	len() int
	ids() iter.Seq[EntityId]
	componentType() reflect.Type
}

package ecs

import (
	"reflect"
	"unsafe"
)

// iComponentStorage is the type-erased view of a ComponentStorage the Scene
// uses when it only knows a ComponentId.
type iComponentStorage interface {
	Contains(id EntityId) bool
	Destroy(id EntityId)
	Clear()
	GetAny(id EntityId) any
	Len() int
	PageCount() int
	Entities() []EntityId
	ComponentType() reflect.Type
	pointer(id EntityId) unsafe.Pointer
}

var _ iComponentStorage = (*ComponentStorage[int])(nil)

package ecs

import (
	"math"
	"reflect"
	"unsafe"
)

const (
	// sparsePageSize is the number of sparse entries per lazily allocated page.
	sparsePageSize = 1024
	invalidSlot    = math.MaxUint32
)

type sparsePage [sparsePageSize]uint32

// Disposable components are notified right before their storage slot is
// released, by Remove, Destroy or Scene.Close.
type Disposable interface {
	Dispose()
}

// ComponentStorage maps sparse entity ids to slots of a densely packed slice
// of T. Lookups go through a page table of slot indices; removal moves the
// last dense element into the freed slot so the dense slice has no gaps.
//
// Pointers returned by Construct and Get stay valid only until the next
// Construct or Destroy on the same storage.
type ComponentStorage[T any] struct {
	pages      []*sparsePage
	dense      []T
	denseToId  []EntityId
	typ        reflect.Type
	disposable bool
}

// NewComponentStorage creates an empty storage for T.
func NewComponentStorage[T any]() *ComponentStorage[T] {
	_, disposable := any((*T)(nil)).(Disposable)
	return &ComponentStorage[T]{
		typ:        reflect.TypeFor[T](),
		disposable: disposable,
	}
}

func pageOf(id EntityId) (int, int) {
	return int(id / sparsePageSize), int(id % sparsePageSize)
}

func (cs *ComponentStorage[T]) slot(id EntityId) (uint32, bool) {
	p, o := pageOf(id)
	if p >= len(cs.pages) || cs.pages[p] == nil {
		return invalidSlot, false
	}
	s := cs.pages[p][o]
	return s, s != invalidSlot
}

func (cs *ComponentStorage[T]) ensurePage(p int) *sparsePage {
	if p >= len(cs.pages) {
		newLen := max(p+1, 2*len(cs.pages))
		cs.pages = append(cs.pages, make([]*sparsePage, newLen-len(cs.pages))...)
	}
	if cs.pages[p] == nil {
		page := new(sparsePage)
		for i := range page {
			page[i] = invalidSlot
		}
		cs.pages[p] = page
	}
	return cs.pages[p]
}

func (cs *ComponentStorage[T]) setSlot(id EntityId, slot uint32) {
	p, o := pageOf(id)
	cs.pages[p][o] = slot
}

// Construct stores value for id and returns a pointer to the stored copy.
// It panics if id already has a value in this storage.
func (cs *ComponentStorage[T]) Construct(id EntityId, value T) *T {
	if id == NullEntity {
		panic(violation(ErrInvalidEntity, "construct %s on null entity", cs.typ))
	}
	if cs.Contains(id) {
		panic(violation(ErrDuplicateComponent, "entity %d already has %s", id, cs.typ))
	}

	p, o := pageOf(id)
	page := cs.ensurePage(p)

	slot := len(cs.dense)
	cs.dense = append(cs.dense, value)
	cs.denseToId = append(cs.denseToId, id)
	page[o] = uint32(slot)
	return &cs.dense[slot]
}

// Destroy releases the value stored for id. The last dense element is moved
// into the freed slot, changing its slot index but not its mapping.
// It panics if id has no value in this storage.
func (cs *ComponentStorage[T]) Destroy(id EntityId) {
	slot, ok := cs.slot(id)
	if !ok {
		panic(violation(ErrMissingComponent, "entity %d has no %s", id, cs.typ))
	}

	if cs.disposable {
		any(&cs.dense[slot]).(Disposable).Dispose()
	}

	last := len(cs.dense) - 1
	if int(slot) != last {
		moved := cs.denseToId[last]
		cs.dense[slot] = cs.dense[last]
		cs.denseToId[slot] = moved
		cs.setSlot(moved, slot)
	}

	var zero T
	cs.dense[last] = zero
	cs.dense = cs.dense[:last]
	cs.denseToId = cs.denseToId[:last]
	cs.setSlot(id, invalidSlot)
}

// Clear destroys every stored value, last slot first, and drops the sparse
// pages.
func (cs *ComponentStorage[T]) Clear() {
	if cs.disposable {
		for i := len(cs.dense) - 1; i >= 0; i-- {
			any(&cs.dense[i]).(Disposable).Dispose()
		}
	}
	clear(cs.dense)
	cs.dense = cs.dense[:0]
	cs.denseToId = cs.denseToId[:0]
	cs.pages = nil
}

// Get returns a pointer to the value stored for id. It panics if there is none.
func (cs *ComponentStorage[T]) Get(id EntityId) *T {
	slot, ok := cs.slot(id)
	if !ok {
		panic(violation(ErrMissingComponent, "entity %d has no %s", id, cs.typ))
	}
	return &cs.dense[slot]
}

// Contains reports whether id has a value in this storage.
func (cs *ComponentStorage[T]) Contains(id EntityId) bool {
	_, ok := cs.slot(id)
	return ok
}

// Len returns the number of stored values.
func (cs *ComponentStorage[T]) Len() int {
	return len(cs.dense)
}

// PageCount returns the number of allocated sparse pages.
func (cs *ComponentStorage[T]) PageCount() int {
	n := 0
	for _, p := range cs.pages {
		if p != nil {
			n++
		}
	}
	return n
}

// Values returns the dense value slice. Slot i belongs to Entities()[i].
// The slice must not be appended to or resliced by callers.
func (cs *ComponentStorage[T]) Values() []T {
	return cs.dense
}

// Entities returns the dense slot to entity map.
func (cs *ComponentStorage[T]) Entities() []EntityId {
	return cs.denseToId
}

// ComponentType returns the reflected type of T.
func (cs *ComponentStorage[T]) ComponentType() reflect.Type {
	return cs.typ
}

// GetAny returns the *T stored for id boxed in an interface.
func (cs *ComponentStorage[T]) GetAny(id EntityId) any {
	return cs.Get(id)
}

func (cs *ComponentStorage[T]) pointer(id EntityId) unsafe.Pointer {
	return unsafe.Pointer(cs.Get(id))
}

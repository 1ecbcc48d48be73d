package ecs

//go:generate go run ../cmd/ecsgen -out each_generated.go -arity 4

import (
	"reflect"

	"go.uber.org/zap"
)

// storageFor returns the storage for T, creating it on first use.
func storageFor[T any](s *Scene, cid ComponentId) *ComponentStorage[T] {
	for int(cid) >= len(s.storages) {
		s.storages = append(s.storages, nil)
	}
	if s.storages[cid] == nil {
		st := NewComponentStorage[T]()
		s.storages[cid] = st
		s.log.Debug("created component storage", zap.Stringer("type", st.ComponentType()), zap.Uint8("id", uint8(cid)))
		return st
	}
	return s.storages[cid].(*ComponentStorage[T])
}

// typedStorage returns the storage for T if it exists, or nil.
func typedStorage[T any](s *Scene, cid ComponentId) *ComponentStorage[T] {
	st, _ := s.storage(cid).(*ComponentStorage[T])
	return st
}

// Construct attaches value to the entity and returns a pointer to the stored
// copy. The entity must be alive and must not already have a T.
func Construct[T any](s *Scene, id EntityId, value T) *T {
	s.checkMutable("Construct")
	rec := s.mustRecord(id)
	cid := ComponentIdFor[T](s)
	if rec.mask.Test(cid) {
		s.fail(violation(ErrDuplicateComponent, "entity %s already has %s", id, s.registry.TypeOf(cid)))
	}
	st := storageFor[T](s, cid)
	rec.mask.Set(cid)
	s.version++
	return st.Construct(id, value)
}

// Get returns a pointer to the entity's T. The entity must be alive and
// must have a T; Get never attaches one.
func Get[T any](s *Scene, id EntityId) *T {
	ptr, ok := TryGet[T](s, id)
	if !ok {
		s.fail(violation(ErrMissingComponent, "entity %s has no %s", id, typeName[T]()))
	}
	return ptr
}

// TryGet is Get without the attachment precondition. The entity must still
// be alive.
func TryGet[T any](s *Scene, id EntityId) (*T, bool) {
	rec := s.mustRecord(id)
	cid, ok := LookupComponentId[T](s)
	if !ok || !rec.mask.Test(cid) {
		return nil, false
	}
	return typedStorage[T](s, cid).Get(id), true
}

// GetOrConstruct returns the entity's T, attaching init first if it has none.
func GetOrConstruct[T any](s *Scene, id EntityId, init T) *T {
	if ptr, ok := TryGet[T](s, id); ok {
		return ptr
	}
	return Construct(s, id, init)
}

// Remove detaches the entity's T. The entity must have one.
func Remove[T any](s *Scene, id EntityId) {
	s.checkMutable("Remove")
	rec := s.mustRecord(id)
	cid, ok := LookupComponentId[T](s)
	if !ok || !rec.mask.Test(cid) {
		s.fail(violation(ErrMissingComponent, "entity %s has no %s", id, typeName[T]()))
	}
	st := typedStorage[T](s, cid)
	s.releasing(func() { st.Destroy(id) })
	rec.mask.Unset(cid)
	s.version++
}

// GetComponent returns a pointer to the entity's component with id cid,
// boxed in an interface, or nil if the entity does not carry it.
func (s *Scene) GetComponent(id EntityId, cid ComponentId) any {
	rec := s.mustRecord(id)
	if int(cid) >= MaxComponentTypes || !rec.mask.Test(cid) {
		return nil
	}
	return s.storages[cid].GetAny(id)
}

// Dense returns the packed entity ids and values of every T in the scene.
// Slot i of values belongs to ids[i]. Both slices are views into the
// storage and are invalidated by the next structural change.
func Dense[T any](s *Scene) (ids []EntityId, values []T) {
	s.checkOpen()
	cid, ok := LookupComponentId[T](s)
	if !ok {
		return nil, nil
	}
	st := typedStorage[T](s, cid)
	if st == nil {
		return nil, nil
	}
	return st.Entities(), st.Values()
}

// Count returns the number of entities carrying a T.
func Count[T any](s *Scene) int {
	ids, _ := Dense[T](s)
	return len(ids)
}

func typeName[T any]() string {
	return reflect.TypeFor[T]().String()
}

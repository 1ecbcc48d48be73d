package ecs

import (
	"reflect"

	"github.com/kamstrup/intmap"
	"go.uber.org/zap"
)

// ComponentId is the small dense integer a Scene assigns to each distinct
// component type, in first-use order starting at 0.
type ComponentId uint8

// ComponentRegistry assigns component ids for a single Scene. Ids are never
// shared between scenes, so two scenes may number the same type differently.
type ComponentRegistry struct {
	ids   *intmap.Map[uint64, ComponentId]
	types []reflect.Type
	log   *zap.Logger
}

func newComponentRegistry(log *zap.Logger) *ComponentRegistry {
	return &ComponentRegistry{
		ids:   intmap.New[uint64, ComponentId](MaxComponentTypes),
		types: make([]reflect.Type, 0, 16),
		log:   log,
	}
}

// idFor returns the id of t, assigning the next free one on first use.
func (r *ComponentRegistry) idFor(t reflect.Type) ComponentId {
	key := typeKey(t)
	if id, ok := r.ids.Get(key); ok {
		return id
	}

	// Components are plain values; a pointer, map, channel or function
	// would alias state outside the dense array.
	switch t.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface:
		panic(violation(ErrInvalidComponentType, "%s: components cannot be pointers, maps, channels, functions or interfaces", t))
	}

	if len(r.types) >= MaxComponentTypes {
		panic(violation(ErrTooManyComponentTypes, "cannot register %s: limit is %d", t, MaxComponentTypes))
	}

	id := ComponentId(len(r.types))
	r.ids.Put(key, id)
	r.types = append(r.types, t)
	r.log.Debug("registered component type", zap.Stringer("type", t), zap.Uint8("id", uint8(id)))
	return id
}

func (r *ComponentRegistry) lookup(t reflect.Type) (ComponentId, bool) {
	return r.ids.Get(typeKey(t))
}

// Len returns the number of registered component types.
func (r *ComponentRegistry) Len() int {
	return len(r.types)
}

// TypeOf returns the type registered under id, or nil.
func (r *ComponentRegistry) TypeOf(id ComponentId) reflect.Type {
	if int(id) >= len(r.types) {
		return nil
	}
	return r.types[id]
}

// Types returns the registered types ordered by id.
func (r *ComponentRegistry) Types() []reflect.Type {
	out := make([]reflect.Type, len(r.types))
	copy(out, r.types)
	return out
}

// ComponentIdFor returns the id of T in the scene, registering T on first use.
func ComponentIdFor[T any](s *Scene) ComponentId {
	return s.registry.idFor(reflect.TypeFor[T]())
}

// RegisterComponent eagerly registers T. It is equivalent to ComponentIdFor
// and exists so setup code can fix the id order up front.
func RegisterComponent[T any](s *Scene) ComponentId {
	return ComponentIdFor[T](s)
}

// LookupComponentId returns the id of T without registering it.
func LookupComponentId[T any](s *Scene) (ComponentId, bool) {
	return s.registry.lookup(reflect.TypeFor[T]())
}

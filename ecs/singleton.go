package ecs

import (
	"reflect"
	"unsafe"
)

// singletonEntry holds one scene-level resource. The value lives behind a
// pointer that stays stable when the resource is replaced.
type singletonEntry struct {
	value   reflect.Value
	dataPtr unsafe.Pointer
}

// AddSingleton stores value as the scene's resource of its type, replacing
// any previous value in place. Pointers are dereferenced first.
func (s *Scene) AddSingleton(value any) {
	s.checkOpen()
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	t := rv.Type()

	if entry, ok := s.singletons[t]; ok {
		entry.value.Elem().Set(rv)
		return
	}

	ptr := reflect.New(t)
	ptr.Elem().Set(rv)
	s.singletons[t] = &singletonEntry{
		value:   ptr,
		dataPtr: ptr.UnsafePointer(),
	}
}

func (s *Scene) getSingletonEntry(t reflect.Type) *singletonEntry {
	if s.closed {
		return nil
	}
	return s.singletons[t]
}

// Singleton provides efficient access to a single component instance
// that is not associated with any entity. Use this for global game state,
// configuration, or other singleton data.
type Singleton[T any] struct {
	scene         *Scene
	componentPtr  unsafe.Pointer
	componentType reflect.Type
}

// NewSingleton creates a new Singleton accessor for the given scene.
// If initializer is provided and the singleton doesn't exist in the scene,
// it will be created with the initializer value. Otherwise, a zero value is used.
// This guarantees the singleton exists in the scene after the call.
func NewSingleton[T any](scene *Scene, initializer ...T) *Singleton[T] {
	componentType := reflect.TypeFor[T]()

	entry := scene.getSingletonEntry(componentType)
	if entry == nil {
		var value T
		if len(initializer) > 0 {
			value = initializer[0]
		}
		scene.AddSingleton(value)
		entry = scene.getSingletonEntry(componentType)
	}

	return &Singleton[T]{
		scene:         scene,
		componentPtr:  entry.dataPtr,
		componentType: componentType,
	}
}

// Init initializes the Singleton with a scene reference.
// This is called automatically by the Scheduler during system registration.
func (s *Singleton[T]) Init(scene *Scene) {
	s.scene = scene
	s.componentType = reflect.TypeFor[T]()
	s.updateCache()
}

// Get returns a pointer to the singleton component.
// Returns nil if the singleton has not been added to the scene.
func (s *Singleton[T]) Get() *T {
	if s.componentPtr == nil {
		s.updateCache()
	}
	if s.componentPtr == nil {
		return nil
	}
	return (*T)(s.componentPtr)
}

// updateCache refreshes the cached pointer from the scene
func (s *Singleton[T]) updateCache() {
	if s.scene == nil {
		return
	}
	entry := s.scene.getSingletonEntry(s.componentType)
	if entry != nil {
		s.componentPtr = entry.dataPtr
	} else {
		s.componentPtr = nil
	}
}

// Exists returns true if the singleton component has been added to the scene
func (s *Singleton[T]) Exists() bool {
	if s.componentPtr == nil {
		s.updateCache()
	}
	return s.componentPtr != nil
}

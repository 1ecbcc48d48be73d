package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

// View represents a query for entities with a specific combination of components
// The type T should be a struct with embedded pointer fields for each component type
// Named fields can be marked as optional using the `ecs:"optional"` struct tag
type View[T any] struct {
	scene       *Scene
	ids         []ComponentId
	optional    []bool
	fieldOffset []uintptr
	required    ComponentMask
}

// NewView creates a new view for the given struct type
// The struct T should have embedded or named fields that are pointers to component types
// Embedded fields are always required
// Named fields can be marked as optional using the `ecs:"optional"` struct tag
// Every referenced component type is registered with the scene.
func NewView[T any](scene *Scene) *View[T] {
	structType := reflect.TypeFor[T]()

	if structType.Kind() != reflect.Struct {
		panic("View type parameter must be a struct")
	}

	v := &View[T]{
		scene:       scene,
		ids:         make([]ComponentId, 0, structType.NumField()),
		optional:    make([]bool, 0, structType.NumField()),
		fieldOffset: make([]uintptr, 0, structType.NumField()),
	}

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		fieldType := field.Type

		if fieldType.Kind() != reflect.Ptr {
			panic("View struct fields must be pointer types")
		}

		id := scene.registry.idFor(fieldType.Elem())
		v.ids = append(v.ids, id)
		v.fieldOffset = append(v.fieldOffset, field.Offset)

		// Embedded fields (field.Anonymous) are always required
		isOptional := false
		if !field.Anonymous {
			tag := field.Tag.Get("ecs")
			if tag != "" {
				if tag == "optional" {
					isOptional = true
				} else {
					panic("invalid ecs tag value: \"" + tag + "\" (only \"optional\" is supported)")
				}
			}
		}
		v.optional = append(v.optional, isOptional)
		if !isOptional {
			v.required.Set(id)
		}
	}

	return v
}

// Mask returns the mask of required component types.
func (v *View[T]) Mask() ComponentMask {
	return v.required
}

// populate writes the component pointers of rec into the struct at resultPtr.
// The caller has already checked rec against the required mask.
func (v *View[T]) populate(resultPtr unsafe.Pointer, rec *entityRecord) {
	for i, id := range v.ids {
		fieldPtr := unsafe.Add(resultPtr, v.fieldOffset[i])
		if !rec.mask.Test(id) {
			*(*unsafe.Pointer)(fieldPtr) = nil
			continue
		}
		*(*unsafe.Pointer)(fieldPtr) = v.scene.storages[id].pointer(rec.id)
	}
}

// Fill populates the provided struct pointer with component data for the given entity
// Returns false if the entity is not alive or is missing any required components
// Optional components are set to nil if not present
func (v *View[T]) Fill(id EntityId, ptr *T) bool {
	if !v.scene.Valid(id) {
		return false
	}
	rec := &v.scene.records[id]
	if !rec.mask.TestAll(v.required) {
		return false
	}
	v.populate(unsafe.Pointer(ptr), rec)
	return true
}

// Get returns a populated view struct for the given entity, or nil if the entity
// doesn't have all the required components
func (v *View[T]) Get(id EntityId) *T {
	var result T
	if !v.Fill(id, &result) {
		return nil
	}
	return &result
}

// Iter returns an iterator over all entities that have all the required components for this view
// The iterator yields (EntityId, T) pairs in entity slot order; breaking out of the loop stops the scan
// Structural changes to the scene inside the loop body panic
func (v *View[T]) Iter() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		s := v.scene
		s.checkOpen()
		s.beginIteration()
		defer s.endIteration()

		var result T
		resultPtr := unsafe.Pointer(&result)

		for i := range s.records {
			rec := &s.records[i]
			if !rec.valid || !rec.mask.TestAll(v.required) {
				continue
			}
			v.populate(resultPtr, rec)
			if !yield(rec.id, result) {
				return
			}
		}
	}
}

// Values returns an iterator over just the view structs (without entity IDs)
// This is useful when you only care about the component data, not which entity it belongs to
func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range v.Iter() {
			if !yield(value) {
				return
			}
		}
	}
}

package ecs

import "iter"

// Query wraps a View with a per-frame snapshot of its matches.
// Execute scans the scene once and records every matching entity together
// with its populated view struct; Iter and Values then replay that snapshot
// without touching the scene, so the scan is done once per frame no matter
// how often the results are read.
//
// Component pointers in the snapshot are invalidated by structural changes
// to the storages they point into, so systems should queue such changes on
// the frame's Commands.
type Query[T any] struct {
	view  *View[T]
	scene *Scene

	cachedEntities   []EntityId
	cachedComponents []T
	cacheValid       bool
}

// NewQuery creates a new Query over the given scene.
func NewQuery[T any](scene *Scene) *Query[T] {
	q := &Query[T]{}
	q.Init(scene)
	return q
}

// Init initializes or re-initializes the Query with a scene.
// Called by the Scheduler during system registration.
func (q *Query[T]) Init(scene *Scene) {
	q.view = NewView[T](scene)
	q.scene = scene
	q.cacheValid = false
}

// Execute builds the entity and component caches for this frame.
// Called automatically by the Scheduler before systems run.
func (q *Query[T]) Execute() {
	q.cachedEntities = q.cachedEntities[:0]
	clear(q.cachedComponents)
	q.cachedComponents = q.cachedComponents[:0]

	for id, item := range q.view.Iter() {
		q.cachedEntities = append(q.cachedEntities, id)
		q.cachedComponents = append(q.cachedComponents, item)
	}

	q.cacheValid = true
}

// Invalidate drops the snapshot; Iter panics until the next Execute.
func (q *Query[T]) Invalidate() {
	q.cacheValid = false
}

// Len returns the number of entities in the current snapshot.
func (q *Query[T]) Len() int {
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

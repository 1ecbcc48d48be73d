// Package ecs is a sparse-set entity/component database. A Scene hands out
// entity ids from a bounded pool, keeps one densely packed storage per
// component type and answers "which entities carry all of these components"
// by testing per-entity component masks.
//
// A Scene is not safe for concurrent use. Precondition violations panic with
// an error wrapping one of the Err* sentinels.
package ecs

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"
)

// Scene owns entity lifecycles and component storages.
type Scene struct {
	registry    *ComponentRegistry
	storages    []iComponentStorage
	records     []entityRecord
	freeIds     []EntityId
	maxEntities int
	live        int
	iterating   int
	version     uint64
	closed      bool
	singletons  map[reflect.Type]*singletonEntry
	log         *zap.Logger
}

// SceneOption configures a Scene at construction.
type SceneOption func(*Scene)

// WithLogger routes the scene's diagnostics to log.
func WithLogger(log *zap.Logger) SceneOption {
	return func(s *Scene) {
		if log != nil {
			s.log = log
		}
	}
}

// NewScene creates a scene able to hold up to maxEntities live entities.
// Ids are issued in ascending order until the first one is recycled; after
// that the most recently destroyed id is reused first.
func NewScene(maxEntities int, opts ...SceneOption) *Scene {
	if maxEntities <= 0 || uint64(maxEntities) >= uint64(NullEntity) {
		panic(fmt.Sprintf("ecs: maxEntities must be in (0, %d), got %d", uint64(NullEntity), maxEntities))
	}

	s := &Scene{
		freeIds:     make([]EntityId, maxEntities),
		records:     make([]entityRecord, 0, min(maxEntities, 1024)),
		storages:    make([]iComponentStorage, 0, 16),
		maxEntities: maxEntities,
		singletons:  make(map[reflect.Type]*singletonEntry),
		log:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registry = newComponentRegistry(s.log)

	for i := range s.freeIds {
		s.freeIds[i] = EntityId(maxEntities - 1 - i)
	}
	return s
}

// fail logs and raises a precondition violation.
func (s *Scene) fail(err error) {
	s.log.Error("ecs precondition failed", zap.Error(err))
	panic(err)
}

func (s *Scene) checkOpen() {
	if s.closed {
		s.fail(violation(ErrSceneClosed, "scene used after Close"))
	}
}

// checkMutable rejects structural changes while an iteration is running.
func (s *Scene) checkMutable(op string) {
	s.checkOpen()
	if s.iterating > 0 {
		s.fail(violation(ErrMutationDuringIteration, "%s called inside an iteration callback; use Commands", op))
	}
}

func (s *Scene) beginIteration() { s.iterating++ }
func (s *Scene) endIteration()   { s.iterating-- }

// releasing runs fn, which may call Dispose hooks, with structural changes
// locked out the same way an iteration does.
func (s *Scene) releasing(fn func()) {
	s.beginIteration()
	defer s.endIteration()
	fn()
}

func (s *Scene) mustRecord(id EntityId) *entityRecord {
	s.checkOpen()
	if int(id) >= len(s.records) || !s.records[id].valid {
		s.fail(violation(ErrInvalidEntity, "entity %s is not alive", id))
	}
	return &s.records[id]
}

// Create allocates a new entity with no components.
// It panics with ErrEntityPoolExhausted when every id is in use.
func (s *Scene) Create() EntityId {
	s.checkMutable("Create")
	if len(s.freeIds) == 0 {
		s.fail(violation(ErrEntityPoolExhausted, "all %d entity ids are in use", s.maxEntities))
	}

	last := len(s.freeIds) - 1
	id := s.freeIds[last]
	s.freeIds = s.freeIds[:last]

	for int(id) >= len(s.records) {
		s.records = append(s.records, entityRecord{id: EntityId(len(s.records))})
	}
	rec := &s.records[id]
	rec.mask = 0
	rec.valid = true
	s.live++
	s.version++
	return id
}

// Destroy removes every component of id and returns the id to the pool.
func (s *Scene) Destroy(id EntityId) {
	s.checkMutable("Destroy")
	rec := s.mustRecord(id)
	s.releasing(func() {
		rec.mask.Each(func(cid ComponentId) {
			s.storages[cid].Destroy(id)
			rec.mask.Unset(cid)
		})
	})
	rec.mask = 0
	rec.valid = false
	s.freeIds = append(s.freeIds, id)
	s.live--
	s.version++
}

// Valid reports whether id denotes a live entity. Unlike the other
// operations it accepts any id.
func (s *Scene) Valid(id EntityId) bool {
	return !s.closed && int(id) < len(s.records) && s.records[id].valid
}

// Mask returns the component mask of a live entity.
func (s *Scene) Mask(id EntityId) ComponentMask {
	return s.mustRecord(id).mask
}

// HasAll reports whether the entity carries every component in required.
func (s *Scene) HasAll(id EntityId, required ComponentMask) bool {
	return s.mustRecord(id).mask.TestAll(required)
}

// Each calls fn for every live entity in slot order.
func (s *Scene) Each(fn func(EntityId)) {
	s.checkOpen()
	s.beginIteration()
	defer s.endIteration()
	for i := range s.records {
		if s.records[i].valid {
			fn(s.records[i].id)
		}
	}
}

// Version returns a counter that advances on every Create, Destroy,
// Construct and Remove.
func (s *Scene) Version() uint64 {
	return s.version
}

// Len returns the number of live entities.
func (s *Scene) Len() int {
	return s.live
}

// Capacity returns the maximum number of simultaneously live entities.
func (s *Scene) Capacity() int {
	return s.maxEntities
}

// Registry returns the scene's component registry.
func (s *Scene) Registry() *ComponentRegistry {
	return s.registry
}

// Logger returns the logger the scene reports to.
func (s *Scene) Logger() *zap.Logger {
	return s.log
}

// Closed reports whether Close has been called.
func (s *Scene) Closed() bool {
	return s.closed
}

// Close destroys the components of every live entity, storage by storage in
// component id order, then releases all backing memory. Any later use of the
// scene panics with ErrSceneClosed. Closing twice is a no-op.
func (s *Scene) Close() {
	if s.closed {
		return
	}
	s.checkMutable("Close")

	s.releasing(func() {
		for _, st := range s.storages {
			if st != nil {
				st.Clear()
			}
		}
	})
	s.log.Debug("scene closed", zap.Int("entities", s.live), zap.Int("component_types", s.registry.Len()))

	s.storages = nil
	s.records = nil
	s.freeIds = nil
	s.singletons = nil
	s.live = 0
	s.closed = true
}

// storage returns the type-erased storage for cid, or nil if none exists yet.
func (s *Scene) storage(cid ComponentId) iComponentStorage {
	if int(cid) >= len(s.storages) {
		return nil
	}
	return s.storages[cid]
}

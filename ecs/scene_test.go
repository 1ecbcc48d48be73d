package ecs_test

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/plus3/sparsecs/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateIssuesAscendingIds(t *testing.T) {
	scene := ecs.NewScene(8)
	for i := 0; i < 8; i++ {
		assert.Equal(t, ecs.EntityId(i), scene.Create())
	}
	assert.Equal(t, 8, scene.Len())
	assert.Equal(t, 8, scene.Capacity())
}

func TestCreateStartsWithEmptyMask(t *testing.T) {
	scene := newTestScene()
	ecs.RegisterComponent[Position](scene)
	ecs.RegisterComponent[Velocity](scene)

	id := scene.Create()
	assert.True(t, scene.Mask(id).IsZero())
	for i := 0; i < ecs.MaxComponentTypes; i++ {
		assert.False(t, scene.Mask(id).Test(ecs.ComponentId(i)))
	}
	assert.False(t, ecs.Has[Position](scene, id))
	assert.True(t, scene.HasAll(id, 0))
}

func TestDestroyRecyclesLIFO(t *testing.T) {
	scene := ecs.NewScene(16)
	ids := make([]ecs.EntityId, 5)
	for i := range ids {
		ids[i] = scene.Create()
	}

	scene.Destroy(ids[1])
	scene.Destroy(ids[3])

	assert.Equal(t, ids[3], scene.Create())
	assert.Equal(t, ids[1], scene.Create())
	assert.Equal(t, ecs.EntityId(5), scene.Create())
}

func TestLiveIdsAreUnique(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	scene := ecs.NewScene(64)
	live := map[ecs.EntityId]bool{}

	for step := 0; step < 5000; step++ {
		if len(live) < 64 && (len(live) == 0 || rng.Intn(2) == 0) {
			id := scene.Create()
			require.False(t, live[id], "id %d issued while still alive", id)
			live[id] = true
			continue
		}
		for id := range live {
			scene.Destroy(id)
			delete(live, id)
			break
		}
	}
	assert.Equal(t, len(live), scene.Len())
}

func TestConstructGet(t *testing.T) {
	scene := newTestScene()
	id := scene.Create()

	pos := ecs.Construct(scene, id, Position{X: 1, Y: 2})
	assert.Equal(t, Position{X: 1, Y: 2}, *pos)
	assert.True(t, ecs.Has[Position](scene, id))
	assert.Equal(t, Position{X: 1, Y: 2}, *ecs.Get[Position](scene, id))

	pos.X = 10
	assert.Equal(t, float32(10), ecs.Get[Position](scene, id).X)
}

func TestPrimitiveComponents(t *testing.T) {
	scene := newTestScene()
	id := scene.Create()

	ecs.Construct(scene, id, Score(42))
	ecs.Construct(scene, id, Tag("hero"))
	ecs.Construct(scene, id, 7)

	assert.Equal(t, Score(42), *ecs.Get[Score](scene, id))
	assert.Equal(t, Tag("hero"), *ecs.Get[Tag](scene, id))
	assert.Equal(t, 7, *ecs.Get[int](scene, id))
	assert.True(t, ecs.Has3[Score, Tag, int](scene, id))
	assert.False(t, ecs.Has2[Score, int32](scene, id))
}

func TestRemoveThenReconstruct(t *testing.T) {
	scene := newTestScene()
	id := scene.Create()

	ecs.Construct(scene, id, Health{Current: 5, Max: 10})
	ecs.Remove[Health](scene, id)
	assert.False(t, ecs.Has[Health](scene, id))

	ecs.Construct(scene, id, Health{Current: 9, Max: 10})
	assert.Equal(t, 9, ecs.Get[Health](scene, id).Current)
}

func TestGetDoesNotAttach(t *testing.T) {
	scene := newTestScene()
	id := scene.Create()

	requireViolation(t, ecs.ErrMissingComponent, func() { ecs.Get[Velocity](scene, id) })
	_, registered := ecs.LookupComponentId[Velocity](scene)
	assert.False(t, registered)

	ptr, ok := ecs.TryGet[Velocity](scene, id)
	assert.Nil(t, ptr)
	assert.False(t, ok)
}

func TestGetOrConstruct(t *testing.T) {
	scene := newTestScene()
	id := scene.Create()

	v := ecs.GetOrConstruct(scene, id, Velocity{DX: 1})
	v.DY = 2
	again := ecs.GetOrConstruct(scene, id, Velocity{DX: 99})
	assert.Equal(t, Velocity{DX: 1, DY: 2}, *again)
	assert.Equal(t, 1, ecs.Count[Velocity](scene))
}

func TestSwapRemoveKeepsOtherEntities(t *testing.T) {
	scene := newTestScene()
	ids := make([]ecs.EntityId, 10)
	for i := range ids {
		ids[i] = scene.Create()
		ecs.Construct(scene, ids[i], Health{Current: i, Max: 100})
	}

	scene.Destroy(ids[2])
	scene.Destroy(ids[0])

	assert.Equal(t, 8, ecs.Count[Health](scene))
	for i, id := range ids {
		if i == 0 || i == 2 {
			continue
		}
		assert.Equal(t, i, ecs.Get[Health](scene, id).Current)
	}
}

// Scenario A: six entities holding their index, two destroyed.
func TestEachSkipsDestroyedEntities(t *testing.T) {
	scene := newTestScene()
	for i := 0; i < 6; i++ {
		id := scene.Create()
		require.Equal(t, ecs.EntityId(i), id)
		ecs.Construct(scene, id, i)
	}

	scene.Destroy(2)
	scene.Destroy(3)

	got := map[ecs.EntityId]int{}
	ecs.Each1(scene, func(id ecs.EntityId, v *int) {
		_, dup := got[id]
		require.False(t, dup, "entity %d visited twice", id)
		got[id] = *v
	})
	assert.Equal(t, map[ecs.EntityId]int{0: 0, 1: 1, 4: 4, 5: 5}, got)
}

// Scenario B: constructing the same component twice is rejected.
func TestDoubleConstructRejected(t *testing.T) {
	scene := newTestScene()
	id := scene.Create()
	ecs.Construct(scene, id, Position{X: 1})

	requireViolation(t, ecs.ErrDuplicateComponent, func() {
		ecs.Construct(scene, id, Position{X: 2})
	})
	assert.Equal(t, float32(1), ecs.Get[Position](scene, id).X)
}

// Scenario C: the pool rejects the (N+1)th live entity.
func TestPoolExhaustion(t *testing.T) {
	const n = 5
	scene := ecs.NewScene(n)
	for i := 0; i < n; i++ {
		scene.Create()
	}
	requireViolation(t, ecs.ErrEntityPoolExhausted, func() { scene.Create() })

	scene.Destroy(3)
	assert.Equal(t, ecs.EntityId(3), scene.Create())
}

func TestRecreatedEntityStartsEmpty(t *testing.T) {
	scene := newTestScene()
	id := scene.Create()
	ecs.Construct(scene, id, Position{})
	ecs.Construct(scene, id, Velocity{})
	scene.Destroy(id)

	again := scene.Create()
	require.Equal(t, id, again)
	assert.True(t, scene.Mask(again).IsZero())
	assert.False(t, ecs.Has[Position](scene, again))
	assert.False(t, ecs.Has[Velocity](scene, again))
	assert.Equal(t, 0, ecs.Count[Position](scene))
}

func TestInvalidEntityPreconditions(t *testing.T) {
	scene := newTestScene()
	id := scene.Create()
	scene.Destroy(id)

	requireViolation(t, ecs.ErrInvalidEntity, func() { scene.Destroy(id) })
	requireViolation(t, ecs.ErrInvalidEntity, func() { ecs.Construct(scene, id, 1) })
	requireViolation(t, ecs.ErrInvalidEntity, func() { ecs.Get[int](scene, id) })
	requireViolation(t, ecs.ErrInvalidEntity, func() { ecs.Has[int](scene, id) })
	requireViolation(t, ecs.ErrInvalidEntity, func() { scene.Mask(999) })
	assert.False(t, scene.Valid(id))
	assert.False(t, scene.Valid(ecs.NullEntity))

	// the destroyed id is reissued by the next Create
	again := scene.Create()
	require.Equal(t, id, again)
	assert.True(t, scene.Valid(id))
	requireViolation(t, ecs.ErrMissingComponent, func() { ecs.Remove[int](scene, again) })
}

func TestEachVisitsExactMatches(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	scene := ecs.NewScene(256)
	want := map[ecs.EntityId]bool{}

	for i := 0; i < 200; i++ {
		id := scene.Create()
		hasPos, hasVel := rng.Intn(2) == 0, rng.Intn(2) == 0
		if hasPos {
			ecs.Construct(scene, id, Position{X: float32(id)})
		}
		if hasVel {
			ecs.Construct(scene, id, Velocity{DX: float32(id)})
		}
		want[id] = hasPos && hasVel
	}
	for i := 0; i < 50; i++ {
		id := ecs.EntityId(rng.Intn(200))
		if scene.Valid(id) {
			scene.Destroy(id)
			want[id] = false
		}
	}

	var visited []ecs.EntityId
	ecs.Each2(scene, func(id ecs.EntityId, p *Position, v *Velocity) {
		assert.Equal(t, float32(id), p.X)
		assert.Equal(t, float32(id), v.DX)
		visited = append(visited, id)
	})

	var expected []ecs.EntityId
	for id, ok := range want {
		if ok {
			expected = append(expected, id)
		}
	}
	sort.Slice(expected, func(i, j int) bool { return expected[i] < expected[j] })
	assert.Equal(t, expected, visited, "Each2 must visit matches once each in slot order")
}

func TestEachAllEntities(t *testing.T) {
	scene := newTestScene()
	for i := 0; i < 4; i++ {
		scene.Create()
	}
	scene.Destroy(1)

	var ids []ecs.EntityId
	scene.Each(func(id ecs.EntityId) { ids = append(ids, id) })
	assert.Equal(t, []ecs.EntityId{0, 2, 3}, ids)
}

func TestEachWithUnknownTypeVisitsNothing(t *testing.T) {
	scene := newTestScene()
	scene.Create()
	calls := 0
	ecs.Each3(scene, func(ecs.EntityId, *Position, *Velocity, *Health) { calls++ })
	ecs.Each4(scene, func(ecs.EntityId, *Position, *Velocity, *Health, *Name) { calls++ })
	assert.Zero(t, calls)
}

func TestEachMutatesInPlace(t *testing.T) {
	scene := newTestScene()
	for i := 0; i < 3; i++ {
		id := scene.Create()
		ecs.Construct(scene, id, Position{X: float32(i)})
		ecs.Construct(scene, id, Velocity{DX: 1})
	}

	ecs.Each2(scene, func(_ ecs.EntityId, p *Position, v *Velocity) {
		p.X += v.DX
	})

	_, values := ecs.Dense[Position](scene)
	assert.Equal(t, []Position{{X: 1}, {X: 2}, {X: 3}}, values)
}

func TestStructuralChangeDuringIterationPanics(t *testing.T) {
	scene := newTestScene()
	id := scene.Create()
	ecs.Construct(scene, id, Position{})

	requireViolation(t, ecs.ErrMutationDuringIteration, func() {
		scene.Each(func(ecs.EntityId) { scene.Create() })
	})
	requireViolation(t, ecs.ErrMutationDuringIteration, func() {
		ecs.Each1(scene, func(e ecs.EntityId, _ *Position) { scene.Destroy(e) })
	})
	requireViolation(t, ecs.ErrMutationDuringIteration, func() {
		ecs.Each1(scene, func(e ecs.EntityId, _ *Position) { ecs.Construct(scene, e, Velocity{}) })
	})
	requireViolation(t, ecs.ErrMutationDuringIteration, func() {
		ecs.Each1(scene, func(e ecs.EntityId, _ *Position) { ecs.Remove[Position](scene, e) })
	})

	// The guard is released once the iteration unwinds.
	other := scene.Create()
	assert.True(t, scene.Valid(other))
	assert.True(t, ecs.Has[Position](scene, id))
}

func TestComponentIdsArePerScene(t *testing.T) {
	a := newTestScene()
	b := newTestScene()

	assert.Equal(t, ecs.ComponentId(0), ecs.ComponentIdFor[Position](a))
	assert.Equal(t, ecs.ComponentId(1), ecs.ComponentIdFor[Velocity](a))
	assert.Equal(t, ecs.ComponentId(0), ecs.ComponentIdFor[Velocity](b))
	assert.Equal(t, ecs.ComponentId(0), ecs.ComponentIdFor[Position](a), "ids are stable")
	assert.Equal(t, 2, a.Registry().Len())
	assert.Equal(t, "ecs_test.Velocity", a.Registry().TypeOf(1).String())
	assert.Nil(t, a.Registry().TypeOf(5))
	assert.Len(t, a.Registry().Types(), 2)
}

func registerEight[T any](scene *ecs.Scene) {
	ecs.RegisterComponent[[1]T](scene)
	ecs.RegisterComponent[[2]T](scene)
	ecs.RegisterComponent[[3]T](scene)
	ecs.RegisterComponent[[4]T](scene)
	ecs.RegisterComponent[[5]T](scene)
	ecs.RegisterComponent[[6]T](scene)
	ecs.RegisterComponent[[7]T](scene)
	ecs.RegisterComponent[[8]T](scene)
}

func TestTooManyComponentTypes(t *testing.T) {
	scene := newTestScene()
	registerEight[int8](scene)
	registerEight[int16](scene)
	registerEight[int32](scene)
	registerEight[int64](scene)
	registerEight[uint8](scene)
	registerEight[uint16](scene)
	registerEight[uint32](scene)
	registerEight[uint64](scene)
	require.Equal(t, ecs.MaxComponentTypes, scene.Registry().Len())

	// Re-registering a known type is still fine.
	assert.Equal(t, ecs.ComponentId(0), ecs.RegisterComponent[[1]int8](scene))
	requireViolation(t, ecs.ErrTooManyComponentTypes, func() {
		ecs.RegisterComponent[Position](scene)
	})
}

func TestRejectsReferenceKinds(t *testing.T) {
	scene := newTestScene()
	requireViolation(t, ecs.ErrInvalidComponentType, func() { ecs.RegisterComponent[*Position](scene) })
	requireViolation(t, ecs.ErrInvalidComponentType, func() { ecs.RegisterComponent[map[string]int](scene) })
	requireViolation(t, ecs.ErrInvalidComponentType, func() { ecs.RegisterComponent[func()](scene) })
	requireViolation(t, ecs.ErrInvalidComponentType, func() { ecs.NewView[struct{ Callback *func() }](scene) })
	assert.Equal(t, 0, scene.Registry().Len())

	ecs.RegisterComponent[Inventory](scene)
	assert.Equal(t, 1, scene.Registry().Len())
}

func TestDisposeOnRemoveDestroyAndClose(t *testing.T) {
	var released []int
	scene := newTestScene()

	a := scene.Create()
	b := scene.Create()
	c := scene.Create()
	ecs.Construct(scene, a, Resource{Handle: 1, released: &released})
	ecs.Construct(scene, b, Resource{Handle: 2, released: &released})
	ecs.Construct(scene, c, Resource{Handle: 3, released: &released})

	ecs.Remove[Resource](scene, a)
	scene.Destroy(b)
	assert.Equal(t, []int{1, 2}, released)

	scene.Close()
	assert.Equal(t, []int{1, 2, 3}, released)
}

func TestDisposeCannotChangeStructure(t *testing.T) {
	scene := newTestScene()
	armed := true
	id := scene.Create()
	ecs.Construct(scene, id, Position{X: 1})
	ecs.Construct(scene, id, Spawner{scene: scene, owner: id, armed: &armed})

	requireViolation(t, ecs.ErrMutationDuringIteration, func() { scene.Destroy(id) })
	requireViolation(t, ecs.ErrMutationDuringIteration, func() { ecs.Remove[Spawner](scene, id) })

	// the failed release left the entity and its Spawner consistent
	require.True(t, scene.Valid(id))
	assert.True(t, ecs.Has[Spawner](scene, id))
	assert.False(t, ecs.Has[Velocity](scene, id))
	assert.Equal(t, 0, ecs.Count[Velocity](scene))
	assert.Equal(t, 1, ecs.Count[Spawner](scene))

	armed = false
	scene.Destroy(id)
	assert.Equal(t, 0, ecs.Count[Position](scene))
	assert.Equal(t, 0, ecs.Count[Spawner](scene))

	again := scene.Create()
	require.Equal(t, id, again)
	assert.True(t, scene.Mask(again).IsZero())
	ecs.Construct(scene, again, Spawner{scene: scene, owner: again, armed: &armed})
	ecs.Construct(scene, again, Velocity{})
	assert.True(t, ecs.Has2[Spawner, Velocity](scene, again))
}

func TestVersionAdvancesOnStructuralChange(t *testing.T) {
	scene := newTestScene()
	v := scene.Version()

	id := scene.Create()
	assert.Greater(t, scene.Version(), v)
	v = scene.Version()

	ecs.Construct(scene, id, Position{})
	assert.Greater(t, scene.Version(), v)
	v = scene.Version()

	ecs.Get[Position](scene, id).X = 3
	assert.Equal(t, v, scene.Version())

	ecs.Remove[Position](scene, id)
	assert.Greater(t, scene.Version(), v)
	v = scene.Version()

	scene.Destroy(id)
	assert.Greater(t, scene.Version(), v)
}

func TestCloseReleasesScene(t *testing.T) {
	scene := newTestScene()
	id := scene.Create()
	ecs.Construct(scene, id, Position{})

	scene.Close()
	scene.Close()
	assert.True(t, scene.Closed())
	assert.False(t, scene.Valid(id))
	requireViolation(t, ecs.ErrSceneClosed, func() { scene.Create() })
	requireViolation(t, ecs.ErrSceneClosed, func() { ecs.Get[Position](scene, id) })
}

func TestNewSceneRejectsBadCapacity(t *testing.T) {
	assert.Panics(t, func() { ecs.NewScene(0) })
	assert.Panics(t, func() { ecs.NewScene(-1) })
}

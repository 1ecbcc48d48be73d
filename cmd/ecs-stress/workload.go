package main

import (
	"math/rand"

	"github.com/plus3/sparsecs/ecs"
)

type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

type Health struct {
	Current, Max int32
}

// Lifetime counts down frames; the entity is replaced when it reaches zero.
type Lifetime struct {
	Frames int32
}

type Sprite struct {
	Atlas string
	Frame uint16
}

// Churn tracks the replacement work done by the workload.
type Churn struct {
	Created   int64
	Destroyed int64
}

type MovementSystem struct {
	Entities ecs.Query[struct {
		*Position
		*Velocity
	}]
}

func (s *MovementSystem) Execute(frame *ecs.UpdateFrame) {
	dt := float32(frame.DeltaTime)
	for item := range s.Entities.Values() {
		item.Position.X += item.Velocity.DX * dt
		item.Position.Y += item.Velocity.DY * dt
	}
}

type RegenSystem struct {
	Entities ecs.Query[struct {
		*Health
		Sprite *Sprite `ecs:"optional"`
	}]
}

func (s *RegenSystem) Execute(frame *ecs.UpdateFrame) {
	for item := range s.Entities.Values() {
		item.Health.Current = min(item.Health.Current+1, item.Health.Max)
		if item.Sprite != nil {
			item.Sprite.Frame++
		}
	}
}

// LifetimeSystem replaces expired entities and, on top of that, a fixed
// number of random live ones each frame.
type LifetimeSystem struct {
	Entities ecs.Query[struct{ *Lifetime }]
	Churn    ecs.Singleton[Churn]

	rng           *rand.Rand
	churnPerFrame int
}

func (s *LifetimeSystem) Execute(frame *ecs.UpdateFrame) {
	churn := s.Churn.Get()
	for id, item := range s.Entities.Iter() {
		item.Lifetime.Frames--
		if item.Lifetime.Frames <= 0 {
			frame.Commands.Destroy(id)
		}
	}

	ids, _ := ecs.Dense[Lifetime](frame.Scene)
	for range min(s.churnPerFrame, len(ids)) {
		frame.Commands.Destroy(ids[s.rng.Intn(len(ids))])
	}

	// Duplicate destroys collapse in Flush, so replacements are counted
	// after the fact.
	before := frame.Scene.Len()
	frame.Commands.Defer(func() {
		gone := before - frame.Scene.Len()
		churn.Destroyed += int64(gone)
		for range gone {
			SpawnRandomEntity(frame.Scene, s.rng)
			churn.Created++
		}
	})
}

// SpawnRandomEntity creates an entity with a lifetime and a random subset
// of the other workload components.
func SpawnRandomEntity(scene *ecs.Scene, rng *rand.Rand) ecs.EntityId {
	id := scene.Create()
	ecs.Construct(scene, id, Lifetime{Frames: int32(30 + rng.Intn(600))})
	if rng.Intn(4) != 0 {
		ecs.Construct(scene, id, Position{X: rng.Float32() * 1000, Y: rng.Float32() * 1000})
		ecs.Construct(scene, id, Velocity{DX: rng.Float32() - 0.5, DY: rng.Float32() - 0.5})
	}
	if rng.Intn(2) == 0 {
		ecs.Construct(scene, id, Health{Current: int32(rng.Intn(100)), Max: 100})
	}
	if rng.Intn(3) == 0 {
		ecs.Construct(scene, id, Sprite{Atlas: "units", Frame: uint16(rng.Intn(64))})
	}
	return id
}

// NewWorkload populates scene with n entities and returns a scheduler
// running the workload systems.
func NewWorkload(scene *ecs.Scene, n, churnPerFrame int, seed int64) *ecs.Scheduler {
	rng := rand.New(rand.NewSource(seed))
	ecs.NewSingleton(scene, Churn{})

	for range n {
		SpawnRandomEntity(scene, rng)
	}

	scheduler := ecs.NewScheduler(scene)
	scheduler.Register(&LifetimeSystem{rng: rng, churnPerFrame: churnPerFrame})
	scheduler.Register(&MovementSystem{})
	scheduler.Register(&RegenSystem{})
	return scheduler
}

package ecs_test

import (
	"errors"
	"testing"

	"github.com/plus3/sparsecs/ecs"
	"github.com/stretchr/testify/require"
)

// Common test component types
type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

type Name struct {
	Value string
}

type Health struct {
	Current int
	Max     int
}

type PlayerController struct{}

// Custom primitive types for testing non-struct components
type Score int32
type Tag string
type Temperature float64

type Inventory struct {
	Items []string
}

// Resource counts how many times Dispose ran across all instances.
type Resource struct {
	Handle   int
	released *[]int
}

func (r *Resource) Dispose() {
	*r.released = append(*r.released, r.Handle)
}

// Spawner tries to attach a Velocity to its owner when disposed while armed.
type Spawner struct {
	scene *ecs.Scene
	owner ecs.EntityId
	armed *bool
}

func (s *Spawner) Dispose() {
	if *s.armed {
		ecs.Construct(s.scene, s.owner, Velocity{DX: 1})
	}
}

func newTestScene() *ecs.Scene {
	return ecs.NewScene(1024)
}

// requireViolation asserts that fn panics with an error wrapping sentinel.
func requireViolation(t *testing.T, sentinel error, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected panic wrapping %v", sentinel)
		err := ecs.AsViolation(r)
		require.Error(t, err, "panic value %v is not a precondition violation", r)
		require.True(t, errors.Is(err, sentinel), "got %v, want %v", err, sentinel)
	}()
	fn()
}

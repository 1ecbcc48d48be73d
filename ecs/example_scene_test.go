package ecs_test

import (
	"errors"
	"fmt"

	"github.com/plus3/sparsecs/ecs"
)

// ExampleScene walks one entity through its lifecycle.
func ExampleScene() {
	scene := ecs.NewScene(8)
	defer scene.Close()

	player := scene.Create()
	ecs.Construct(scene, player, Position{X: 1, Y: 2})
	ecs.Construct(scene, player, Velocity{DX: 3})

	pos := ecs.Get[Position](scene, player)
	pos.X += ecs.Get[Velocity](scene, player).DX

	fmt.Println("entity:", player, "mask:", scene.Mask(player))
	fmt.Println("position:", *ecs.Get[Position](scene, player))

	ecs.Remove[Velocity](scene, player)
	fmt.Println("has velocity:", ecs.Has[Velocity](scene, player))

	scene.Destroy(player)
	fmt.Println("valid:", scene.Valid(player))

	// Output:
	// entity: 0 mask: {0,1}
	// position: {4 2}
	// has velocity: false
	// valid: false
}

// ExampleEach2 iterates over every entity carrying two component types.
func ExampleEach2() {
	scene := ecs.NewScene(8)
	for i := 0; i < 4; i++ {
		id := scene.Create()
		ecs.Construct(scene, id, Position{X: float32(i)})
		if i%2 == 1 {
			ecs.Construct(scene, id, Velocity{DX: 10})
		}
	}

	ecs.Each2(scene, func(id ecs.EntityId, p *Position, v *Velocity) {
		p.X += v.DX
		fmt.Printf("entity %s moved to %.0f\n", id, p.X)
	})

	// Output:
	// entity 1 moved to 11
	// entity 3 moved to 13
}

// ExampleAsViolation shows how a caller can turn a precondition failure
// back into an error.
func ExampleAsViolation() {
	scene := ecs.NewScene(1)
	scene.Create()

	err := func() (err error) {
		defer func() { err = ecs.AsViolation(recover()) }()
		scene.Create()
		return nil
	}()

	fmt.Println(errors.Is(err, ecs.ErrEntityPoolExhausted))

	// Output:
	// true
}

// ExampleCommands defers structural changes made while iterating.
func ExampleCommands() {
	scene := ecs.NewScene(8)
	for i := 0; i < 3; i++ {
		id := scene.Create()
		ecs.Construct(scene, id, Health{Current: i, Max: 2})
	}

	cmds := ecs.NewCommands()
	ecs.Each1(scene, func(id ecs.EntityId, h *Health) {
		if h.Current == 0 {
			cmds.Destroy(id)
		} else {
			ecs.ConstructCmd(cmds, id, Name{Value: fmt.Sprintf("unit-%d", h.Current)})
		}
	})
	cmds.Flush(scene)

	ecs.Each1(scene, func(id ecs.EntityId, n *Name) {
		fmt.Println(id, n.Value)
	})

	// Output:
	// 1 unit-1
	// 2 unit-2
}

// ExampleNewView selects entities with a struct of component pointers.
func ExampleNewView() {
	scene := ecs.NewScene(8)
	a := scene.Create()
	ecs.Construct(scene, a, Position{X: 1})
	ecs.Construct(scene, a, Name{Value: "alpha"})
	b := scene.Create()
	ecs.Construct(scene, b, Position{X: 2})

	view := ecs.NewView[struct {
		*Position
		Name *Name `ecs:"optional"`
	}](scene)

	for id, item := range view.Iter() {
		label := "(unnamed)"
		if item.Name != nil {
			label = item.Name.Value
		}
		fmt.Println(id, item.Position.X, label)
	}

	// Output:
	// 0 1 alpha
	// 1 2 (unnamed)
}

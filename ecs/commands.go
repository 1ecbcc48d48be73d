package ecs

import "github.com/kamstrup/intmap"

// Commands provides a buffer for deferred ECS operations that are executed at the end of a frame.
// This prevents structural changes to the scene while systems iterate over it.
type Commands struct {
	creates    []createCommand
	destroys   []EntityId
	constructs []entityCommand
	removes    []entityCommand
	defers     []deferCommand
}

// NewCommands returns an empty command buffer.
func NewCommands() *Commands {
	return &Commands{}
}

type deferCommand struct {
	fn func()
}

type createCommand struct {
	init func(*Scene, EntityId)
}

type entityCommand struct {
	entity EntityId
	apply  func(*Scene, EntityId)
}

// Defer queues a function execution operation.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, deferCommand{fn: fn})
}

// Create queues an entity creation. init, if not nil, runs right after the
// entity is created and may attach components to it.
func (c *Commands) Create(init func(*Scene, EntityId)) {
	c.creates = append(c.creates, createCommand{init: init})
}

// Destroy queues an entity destruction.
func (c *Commands) Destroy(entity EntityId) {
	c.destroys = append(c.destroys, entity)
}

// ConstructCmd queues attaching value to entity.
func ConstructCmd[T any](c *Commands, entity EntityId, value T) {
	c.constructs = append(c.constructs, entityCommand{
		entity: entity,
		apply: func(s *Scene, id EntityId) {
			Construct(s, id, value)
		},
	})
}

// RemoveCmd queues detaching the entity's T.
func RemoveCmd[T any](c *Commands, entity EntityId) {
	c.removes = append(c.removes, entityCommand{
		entity: entity,
		apply: func(s *Scene, id EntityId) {
			Remove[T](s, id)
		},
	})
}

// Len returns the number of queued operations.
func (c *Commands) Len() int {
	return len(c.creates) + len(c.destroys) + len(c.constructs) + len(c.removes) + len(c.defers)
}

// Flush applies all commands to the scene, resetting the buffer state.
// Destroys run first, then removes, constructs, creates and deferred
// functions. Removes and constructs aimed at an entity destroyed in the same
// flush are dropped, and an entity queued for destruction twice is destroyed once.
func (c *Commands) Flush(scene *Scene) {
	destroyed := intmap.New[EntityId, struct{}](max(len(c.destroys), 8))

	for _, id := range c.destroys {
		if _, ok := destroyed.Get(id); ok {
			continue
		}
		scene.Destroy(id)
		destroyed.Put(id, struct{}{})
	}

	for _, cmd := range c.removes {
		if _, ok := destroyed.Get(cmd.entity); !ok {
			cmd.apply(scene, cmd.entity)
		}
	}

	for _, cmd := range c.constructs {
		if _, ok := destroyed.Get(cmd.entity); !ok {
			cmd.apply(scene, cmd.entity)
		}
	}

	for _, cmd := range c.creates {
		id := scene.Create()
		if cmd.init != nil {
			cmd.init(scene, id)
		}
	}

	for _, df := range c.defers {
		df.fn()
	}

	clear(c.creates)
	clear(c.constructs)
	clear(c.removes)
	clear(c.defers)
	c.creates = c.creates[:0]
	c.destroys = c.destroys[:0]
	c.constructs = c.constructs[:0]
	c.removes = c.removes[:0]
	c.defers = c.defers[:0]
}

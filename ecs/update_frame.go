package ecs

type UpdateFrame struct {
	DeltaTime float64
	Commands  *Commands
	Scene     *Scene
}

func newUpdateFrame(dt float64, scene *Scene) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Commands:  NewCommands(),
		Scene:     scene,
	}
}

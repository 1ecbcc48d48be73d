package debugui

import "github.com/plus3/sparsecs/ecs"

// SpawnDebugUI creates an entity carrying every inspector panel and an
// ImguiItem that draws them. Register ImguiSystem to render it.
func SpawnDebugUI(scene *ecs.Scene) ecs.EntityId {
	RegisterDebugUIComponents(scene)

	id := scene.Create()
	ecs.Construct(scene, id, NewEntityBrowserComponent(100))
	ecs.Construct(scene, id, NewComponentInspectorComponent())
	ecs.Construct(scene, id, NewStorageViewerComponent())
	ecs.Construct(scene, id, NewPerformanceStatsComponent(120))
	ecs.Construct(scene, id, NewMaskFilterComponent())

	timer := ecs.NewSingleton(scene, NewFrameTimer())
	ecs.Construct(scene, id, ImguiItem{Render: func() { renderPanels(scene, id, timer) }})
	return id
}

func renderPanels(scene *ecs.Scene, id ecs.EntityId, timer *ecs.Singleton[FrameTimer]) {
	if !scene.Valid(id) {
		return
	}
	browser := ecs.Get[EntityBrowserComponent](scene, id)

	if mask, changed := ecs.Get[MaskFilterComponent](scene, id).Render(scene); changed {
		browser.SetMaskFilter(mask)
	}
	if clicked := ecs.Get[StorageViewerComponent](scene, id).Render(scene); clicked != nil {
		browser.SetMaskFilter(ecs.MaskOf(*clicked))
	}
	browser.Render(scene)
	ecs.Get[ComponentInspectorComponent](scene, id).Render(scene, browser.GetSelectedEntity())

	var dt float32
	if ft := timer.Get(); ft != nil {
		dt = ft.GetDeltaTime()
	}
	ecs.Get[PerformanceStatsComponent](scene, id).Render(scene, dt)
}

// RegisterDebugUIComponents registers the panel types up front so they get
// stable component ids ahead of game components.
func RegisterDebugUIComponents(scene *ecs.Scene) {
	ecs.RegisterComponent[ImguiItem](scene)
	ecs.RegisterComponent[EntityBrowserComponent](scene)
	ecs.RegisterComponent[ComponentInspectorComponent](scene)
	ecs.RegisterComponent[StorageViewerComponent](scene)
	ecs.RegisterComponent[PerformanceStatsComponent](scene)
	ecs.RegisterComponent[MaskFilterComponent](scene)
}

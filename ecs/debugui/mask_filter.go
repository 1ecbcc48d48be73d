package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/sparsecs/ecs"
)

func NewMaskFilterComponent() MaskFilterComponent {
	return MaskFilterComponent{}
}

// CountMatching returns how many live entities carry every component in mask.
func CountMatching(scene *ecs.Scene, mask ecs.ComponentMask) int {
	n := 0
	scene.Each(func(id ecs.EntityId) {
		if scene.HasAll(id, mask) {
			n++
		}
	})
	return n
}

// Render draws a checkbox per registered component type and reports whether
// the selection changed this frame.
func (mf *MaskFilterComponent) Render(scene *ecs.Scene) (ecs.ComponentMask, bool) {
	if !imgui.BeginV("Mask Filter", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return mf.selected, false
	}

	changed := false
	if imgui.Button("Clear All") {
		mf.selected = 0
		changed = true
	}
	imgui.Separator()

	for i, t := range scene.Registry().Types() {
		id := ecs.ComponentId(i)
		checked := mf.selected.Test(id)
		if imgui.Checkbox(t.String(), &checked) {
			mf.selected.Toggle(id)
			changed = true
		}
	}

	imgui.Separator()
	if mf.selected.IsZero() {
		imgui.Text("No component types selected")
	} else {
		imgui.Text(fmt.Sprintf("Mask: %s", mf.selected))
		imgui.Text(fmt.Sprintf("Matching Entities: %d", CountMatching(scene, mf.selected)))
	}

	imgui.End()
	return mf.selected, changed
}

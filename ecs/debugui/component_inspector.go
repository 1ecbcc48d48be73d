package debugui

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/sparsecs/ecs"
)

func NewComponentInspectorComponent() ComponentInspectorComponent {
	return ComponentInspectorComponent{selectedEntityId: ecs.NullEntity}
}

func (ci *ComponentInspectorComponent) Render(scene *ecs.Scene, selectedEntityId ecs.EntityId) {
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	ci.selectedEntityId = selectedEntityId

	if ci.selectedEntityId.IsNull() {
		imgui.Text("No entity selected")
		imgui.End()
		return
	}
	if !scene.Valid(ci.selectedEntityId) {
		imgui.Text(fmt.Sprintf("Entity %s is not alive", ci.selectedEntityId))
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Entity ID: %s", ci.selectedEntityId))
	imgui.Text(fmt.Sprintf("Mask: %s", scene.Mask(ci.selectedEntityId)))
	imgui.Separator()

	for _, component := range InspectEntity(scene, ci.selectedEntityId) {
		if imgui.TreeNodeStr(component.Type.String()) {
			ci.renderValue(component.Type.String(), component.Value)
			imgui.TreePop()
		}
	}

	imgui.End()
}

// renderValue draws v; structs expand into their exported fields.
func (ci *ComponentInspectorComponent) renderValue(name string, v reflect.Value) {
	if v.Kind() != reflect.Struct {
		ci.renderField(name, v)
		return
	}
	for _, field := range fieldCache.Fields(v.Type()) {
		fv := v.Field(field.Index)
		if field.IsPointer {
			if fv.IsNil() {
				imgui.Text(fmt.Sprintf("%s: nil", field.Name))
				continue
			}
			fv = fv.Elem()
		}
		ci.renderField(field.Name, fv)
	}
}

func (ci *ComponentInspectorComponent) renderField(name string, val reflect.Value) {
	if !val.IsValid() {
		imgui.Text(fmt.Sprintf("%s: <invalid>", name))
		return
	}

	id := fmt.Sprintf("##%s", name)
	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		ci.label(name)
		if imgui.InputInt(id, &v) {
			SetField(val, strconv.FormatInt(int64(v), 10))
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := int32(val.Uint())
		ci.label(name)
		if imgui.InputInt(id, &v) && v >= 0 {
			SetField(val, strconv.FormatInt(int64(v), 10))
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		ci.label(name)
		if imgui.InputFloat(id, &v) {
			SetField(val, strconv.FormatFloat(float64(v), 'g', -1, 32))
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name, &v) {
			SetField(val, strconv.FormatBool(v))
		}

	case reflect.String:
		v := val.String()
		ci.label(name)
		if imgui.InputTextWithHint(id, "", &v, imgui.InputTextFlagsNone, nil) {
			SetField(val, v)
		}

	case reflect.Struct:
		if imgui.TreeNodeStr(name) {
			ci.renderValue(name, val)
			imgui.TreePop()
		}

	case reflect.Slice:
		imgui.Text(fmt.Sprintf("%s: [%d items]", name, val.Len()))

	case reflect.Map:
		imgui.Text(fmt.Sprintf("%s: map[%d items]", name, val.Len()))

	default:
		imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
	}
}

func (ci *ComponentInspectorComponent) label(name string) {
	imgui.Text(fmt.Sprintf("%s:", name))
	imgui.SameLine()
	imgui.SetNextItemWidth(150)
}

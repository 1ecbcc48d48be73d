package debugui

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/plus3/sparsecs/ecs"
)

// EntityInfo is one row of the entity browser.
type EntityInfo struct {
	ID             ecs.EntityId
	Mask           ecs.ComponentMask
	ComponentTypes []string
}

// ComponentCount returns the number of components the entity carries.
func (e EntityInfo) ComponentCount() int {
	return e.Mask.Count()
}

// Matches reports whether the row passes a lower-case text filter and a
// required mask. Text matches the id or any component type name.
func (e EntityInfo) Matches(filter string, required ecs.ComponentMask) bool {
	if !e.Mask.TestAll(required) {
		return false
	}
	if filter == "" {
		return true
	}
	if strings.Contains(e.ID.String(), filter) {
		return true
	}
	for _, name := range e.ComponentTypes {
		if strings.Contains(strings.ToLower(name), filter) {
			return true
		}
	}
	return false
}

// CollectEntities lists every live entity in slot order.
func CollectEntities(scene *ecs.Scene) []EntityInfo {
	registry := scene.Registry()
	names := make([]string, registry.Len())
	for i, t := range registry.Types() {
		names[i] = t.String()
	}

	entities := make([]EntityInfo, 0, scene.Len())
	scene.Each(func(id ecs.EntityId) {
		mask := scene.Mask(id)
		info := EntityInfo{ID: id, Mask: mask, ComponentTypes: make([]string, 0, mask.Count())}
		mask.Each(func(cid ecs.ComponentId) {
			info.ComponentTypes = append(info.ComponentTypes, names[cid])
		})
		entities = append(entities, info)
	})
	return entities
}

// ComponentValue is an addressable component of one entity.
type ComponentValue struct {
	Id    ecs.ComponentId
	Type  reflect.Type
	Value reflect.Value
}

// InspectEntity returns the components of a live entity in component id
// order. Values alias the scene's storage until its next structural change.
func InspectEntity(scene *ecs.Scene, id ecs.EntityId) []ComponentValue {
	if !scene.Valid(id) {
		return nil
	}
	var out []ComponentValue
	scene.Mask(id).Each(func(cid ecs.ComponentId) {
		ptr := scene.GetComponent(id, cid)
		if ptr == nil {
			return
		}
		out = append(out, ComponentValue{
			Id:    cid,
			Type:  scene.Registry().TypeOf(cid),
			Value: reflect.ValueOf(ptr).Elem(),
		})
	})
	return out
}

// SetField parses text into the settable field value. Ints, uints, floats,
// bools and strings are supported; false is returned for anything else or
// for text that does not parse.
func SetField(field reflect.Value, text string) bool {
	if !field.CanSet() {
		return false
	}
	switch field.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v, err := strconv.ParseInt(text, 10, field.Type().Bits())
		if err != nil {
			return false
		}
		field.SetInt(v)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v, err := strconv.ParseUint(text, 10, field.Type().Bits())
		if err != nil {
			return false
		}
		field.SetUint(v)
	case reflect.Float32, reflect.Float64:
		v, err := strconv.ParseFloat(text, field.Type().Bits())
		if err != nil {
			return false
		}
		field.SetFloat(v)
	case reflect.Bool:
		v, err := strconv.ParseBool(text)
		if err != nil {
			return false
		}
		field.SetBool(v)
	case reflect.String:
		field.SetString(text)
	default:
		return false
	}
	return true
}

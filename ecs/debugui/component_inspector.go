package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/match3/ecs"
)

// ComponentInspector is the "Component Inspector" window. It shows every
// component of the selected entity and edits numeric, bool and string fields
// in place.
type ComponentInspector struct {
	selected ecs.EntityId
}

func (ci *ComponentInspector) Render(storage *ecs.Storage, selected ecs.EntityId) {
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	ci.selected = selected

	if ci.selected == 0 {
		imgui.Text("No entity selected")
		imgui.End()
		return
	}
	if !storage.Alive(ci.selected) {
		imgui.Text(fmt.Sprintf("Entity %d no longer exists", ci.selected))
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Entity: %d:%d", ci.selected.Generation(), ci.selected.Index()))
	imgui.Separator()

	for _, compType := range storage.EntityComponents(ci.selected) {
		component := storage.GetComponent(ci.selected, compType)
		if component == nil {
			continue
		}

		if imgui.TreeNodeStr(compType.String()) {
			renderValue(compType.Name(), reflect.ValueOf(component).Elem())
			imgui.TreePop()
		}
	}

	imgui.End()
}

// renderValue draws val, which must be addressable so edits land in the store.
func renderValue(name string, val reflect.Value) {
	if val.Kind() == reflect.Struct {
		for _, field := range globalReflectionCache.GetFields(val.Type()) {
			fieldVal := val.Field(field.Index)
			if field.IsPointer {
				if fieldVal.IsNil() {
					imgui.Text(fmt.Sprintf("%s: nil", field.Name))
					continue
				}
				fieldVal = fieldVal.Elem()
			}
			if field.IsStruct {
				if imgui.TreeNodeStr(field.Name) {
					renderValue(field.Name, fieldVal)
					imgui.TreePop()
				}
				continue
			}
			renderScalar(field.Name, fieldVal)
		}
		return
	}
	renderScalar(name, val)
}

func renderScalar(name string, val reflect.Value) {
	id := fmt.Sprintf("##%s", name)

	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		labelled(name, 150)
		if imgui.InputInt(id, &v) {
			setValue(val, v)
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := int32(val.Uint())
		labelled(name, 150)
		if imgui.InputInt(id, &v) && v >= 0 {
			setValue(val, v)
		}
		if s, ok := val.Interface().(fmt.Stringer); ok {
			imgui.SameLine()
			imgui.Text(s.String())
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		labelled(name, 150)
		if imgui.InputFloat(id, &v) {
			setValue(val, v)
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name, &v) {
			setValue(val, v)
		}

	case reflect.String:
		v := val.String()
		labelled(name, 200)
		if imgui.InputTextWithHint(id, "", &v, imgui.InputTextFlagsNone, nil) {
			setValue(val, v)
		}

	case reflect.Slice:
		imgui.Text(fmt.Sprintf("%s: [%d items]", name, val.Len()))

	case reflect.Map:
		imgui.Text(fmt.Sprintf("%s: map[%d items]", name, val.Len()))

	default:
		if val.CanInterface() {
			imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
		} else {
			imgui.Text(fmt.Sprintf("%s: <%s>", name, val.Type()))
		}
	}
}

func labelled(name string, width float32) {
	imgui.Text(fmt.Sprintf("%s:", name))
	imgui.SameLine()
	imgui.SetNextItemWidth(width)
}

// setValue stores an edited widget value into val, converting to val's kind.
// Values that are not settable are left alone.
func setValue(val reflect.Value, v any) {
	if !val.CanSet() {
		return
	}
	switch x := v.(type) {
	case int32:
		switch val.Kind() {
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			if !val.OverflowUint(uint64(x)) {
				val.SetUint(uint64(x))
			}
		default:
			if !val.OverflowInt(int64(x)) {
				val.SetInt(int64(x))
			}
		}
	case float32:
		val.SetFloat(float64(x))
	case bool:
		val.SetBool(x)
	case string:
		val.SetString(x)
	}
}

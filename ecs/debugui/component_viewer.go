package debugui

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/match3/ecs"
)

type ComponentInfo struct {
	Type        reflect.Type
	Name        string
	EntityCount int
}

// ComponentViewer is the "Components" window: entity counts per component
// type, and a query tester that counts entities holding every ticked type.
type ComponentViewer struct {
	components []ComponentInfo
	selected   map[string]bool
}

func NewComponentViewer() *ComponentViewer {
	return &ComponentViewer{selected: make(map[string]bool)}
}

func (cv *ComponentViewer) Render(storage *ecs.Storage) {
	if !imgui.BeginV("Components", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	cv.Refresh(storage)

	maxEntityCount := 0
	for _, info := range cv.components {
		maxEntityCount = max(maxEntityCount, info.EntityCount)
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("ComponentTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Query")
		imgui.TableSetupColumn("Component")
		imgui.TableSetupColumn("Entities")
		imgui.TableHeadersRow()

		for _, info := range cv.components {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			ticked := cv.selected[info.Name]
			if imgui.Checkbox("##"+info.Name, &ticked) {
				cv.Select(info.Name, ticked)
			}

			imgui.TableNextColumn()
			imgui.Text(info.Name)

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", info.EntityCount))

			if maxEntityCount > 0 {
				barWidth := float32(info.EntityCount) / float32(maxEntityCount) * 80.0
				imgui.SameLine()
				drawList := imgui.WindowDrawList()
				pos := imgui.CursorScreenPos()
				color := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
				drawList.AddRectFilled(pos, imgui.NewVec2(pos.X+barWidth, pos.Y+10), color)
			}
		}
		imgui.EndTable()
	}

	imgui.Separator()
	if len(cv.selected) == 0 {
		imgui.Text("Tick component types to count matching entities")
	} else {
		imgui.Text(fmt.Sprintf("Matching Entities: %d", cv.MatchCount(storage)))
		imgui.SameLine()
		if imgui.Button("Clear") {
			clear(cv.selected)
		}
	}

	imgui.End()
}

// Refresh recounts entities per component type.
func (cv *ComponentViewer) Refresh(storage *ecs.Storage) {
	cv.components = cv.components[:0]
	for _, t := range storage.ComponentTypes() {
		count := 0
		for range storage.Entities(t) {
			count++
		}
		cv.components = append(cv.components, ComponentInfo{Type: t, Name: t.String(), EntityCount: count})
	}
	sort.SliceStable(cv.components, func(i, j int) bool {
		return cv.components[i].EntityCount > cv.components[j].EntityCount
	})
}

// Select ticks or unticks a component type by name.
func (cv *ComponentViewer) Select(name string, on bool) {
	if on {
		cv.selected[name] = true
	} else {
		delete(cv.selected, name)
	}
}

// MatchCount counts live entities holding every ticked component type. The
// smallest ticked store drives the scan.
func (cv *ComponentViewer) MatchCount(storage *ecs.Storage) int {
	if len(cv.selected) == 0 {
		return 0
	}
	var required []ComponentInfo
	for _, info := range cv.components {
		if cv.selected[info.Name] {
			required = append(required, info)
		}
	}
	if len(required) < len(cv.selected) {
		// a ticked type has no entities left
		return 0
	}

	sort.Slice(required, func(i, j int) bool { return required[i].EntityCount < required[j].EntityCount })
	count := 0
	for id := range storage.Entities(required[0].Type) {
		matches := true
		for _, info := range required[1:] {
			if !storage.HasComponent(id, info.Type) {
				matches = false
				break
			}
		}
		if matches {
			count++
		}
	}
	return count
}

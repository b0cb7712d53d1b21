package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/match3/ecs"
)

type EntityInfo struct {
	ID             ecs.EntityId
	ComponentTypes []string
}

// EntityBrowser is the "Entity Browser" window: a sortable, filterable and
// paged table of live entities. The row clicked last is the selection.
type EntityBrowser struct {
	entities      []EntityInfo
	entityCount   int
	sortColumn    int
	sortAscending bool

	selected    ecs.EntityId
	filterText  string
	perPage     int
	currentPage int
}

func NewEntityBrowser(perPage int) *EntityBrowser {
	return &EntityBrowser{
		sortAscending: true,
		perPage:       max(1, perPage),
		entityCount:   -1,
	}
}

// Selected returns the selected entity, or zero.
func (eb *EntityBrowser) Selected() ecs.EntityId {
	return eb.selected
}

func (eb *EntityBrowser) Render(storage *ecs.Storage) {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	eb.Refresh(storage)

	imgui.InputTextWithHint("##search", "Search...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.filterText = ""
	}

	filtered := eb.Filtered()

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Entity")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Count")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			eb.SortBy(int(spec.ColumnIndex()), spec.SortDirection() == imgui.SortDirectionAscending)
			sortSpecs.SetSpecsDirty(false)
			filtered = eb.Filtered()
		}

		start := min(eb.currentPage*eb.perPage, len(filtered))
		end := min(start+eb.perPage, len(filtered))
		for _, entity := range filtered[start:end] {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			label := fmt.Sprintf("%d:%d", entity.ID.Generation(), entity.ID.Index())
			if imgui.SelectableBoolV(label, eb.selected == entity.ID, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.selected = entity.ID
			}

			imgui.TableNextColumn()
			imgui.Text(strings.Join(entity.ComponentTypes, ", "))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", len(entity.ComponentTypes)))
		}

		imgui.EndTable()
	}

	if len(filtered) > eb.perPage {
		totalPages := (len(filtered) + eb.perPage - 1) / eb.perPage
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.currentPage+1, totalPages, len(filtered)))
		imgui.SameLine()
		if imgui.Button("Prev") && eb.currentPage > 0 {
			eb.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.currentPage < totalPages-1 {
			eb.currentPage++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d entities", len(filtered)))
	}

	imgui.End()
}

// Refresh rebuilds the entity list when the number of live entities changed.
// Cells of a board are recycled rather than respawned, so a stable count
// means a stable table. A deleted selection is cleared.
func (eb *EntityBrowser) Refresh(storage *ecs.Storage) {
	if eb.selected != 0 && !storage.Alive(eb.selected) {
		eb.selected = 0
	}
	if count := storage.EntityCount(); count != eb.entityCount {
		eb.rebuild(storage)
		eb.entityCount = count
	}
}

func (eb *EntityBrowser) rebuild(storage *ecs.Storage) {
	rows := make(map[ecs.EntityId]int)
	eb.entities = eb.entities[:0]

	for _, t := range storage.ComponentTypes() {
		name := t.String()
		for id := range storage.Entities(t) {
			row, ok := rows[id]
			if !ok {
				row = len(eb.entities)
				rows[id] = row
				eb.entities = append(eb.entities, EntityInfo{ID: id})
			}
			eb.entities[row].ComponentTypes = append(eb.entities[row].ComponentTypes, name)
		}
	}

	eb.sortEntities()
}

// SortBy orders the table by column: 0 entity id, 1 component names, 2 component count.
func (eb *EntityBrowser) SortBy(column int, ascending bool) {
	eb.sortColumn = column
	eb.sortAscending = ascending
	eb.sortEntities()
}

func (eb *EntityBrowser) sortEntities() {
	sort.SliceStable(eb.entities, func(i, j int) bool {
		a, b := eb.entities[i], eb.entities[j]
		var less bool

		switch eb.sortColumn {
		case 1:
			less = strings.Join(a.ComponentTypes, ",") < strings.Join(b.ComponentTypes, ",")
		case 2:
			less = len(a.ComponentTypes) < len(b.ComponentTypes)
		default:
			less = a.ID < b.ID
		}

		if !eb.sortAscending {
			return !less
		}
		return less
	})
}

// Filtered returns the entities whose id or component names contain the filter text.
func (eb *EntityBrowser) Filtered() []EntityInfo {
	if eb.filterText == "" {
		return eb.entities
	}

	filtered := make([]EntityInfo, 0, len(eb.entities))
	filterLower := strings.ToLower(eb.filterText)

	for _, entity := range eb.entities {
		idStr := fmt.Sprintf("%d:%d", entity.ID.Generation(), entity.ID.Index())
		componentsStr := strings.ToLower(strings.Join(entity.ComponentTypes, " "))

		if strings.Contains(idStr, filterLower) || strings.Contains(componentsStr, filterLower) {
			filtered = append(filtered, entity)
		}
	}

	return filtered
}

// SetFilter replaces the search text.
func (eb *EntityBrowser) SetFilter(text string) {
	eb.filterText = text
	eb.currentPage = 0
}

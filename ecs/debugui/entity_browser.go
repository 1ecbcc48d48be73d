package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/sparsecs/ecs"
)

type EntityBrowserCache struct {
	entities      []EntityInfo
	version       uint64
	fresh         bool
	sortColumn    int
	sortAscending bool
}

func NewEntityBrowserComponent(maxEntitiesPerPage int) EntityBrowserComponent {
	return EntityBrowserComponent{
		cache: &EntityBrowserCache{
			sortColumn:    0,
			sortAscending: true,
		},
		selectedEntityId:   ecs.NullEntity,
		maxEntitiesPerPage: maxEntitiesPerPage,
	}
}

func (eb *EntityBrowserComponent) Render(scene *ecs.Scene) {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	eb.refresh(scene)

	imgui.InputTextWithHint("##search", "Search...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.filterText = ""
		eb.filterMask = 0
	}
	if !eb.filterMask.IsZero() {
		imgui.Text(fmt.Sprintf("Mask filter: %s", eb.filterMask))
	}

	filteredEntities := eb.filtered()

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Entity ID")
		imgui.TableSetupColumn("Mask")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Count")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			eb.cache.sortColumn = int(spec.ColumnIndex())
			eb.cache.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			eb.sortEntities()
			filteredEntities = eb.filtered()
			sortSpecs.SetSpecsDirty(false)
		}

		startIdx := min(eb.currentPage*eb.maxEntitiesPerPage, len(filteredEntities))
		endIdx := min(startIdx+eb.maxEntitiesPerPage, len(filteredEntities))

		for _, entity := range filteredEntities[startIdx:endIdx] {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := eb.selectedEntityId == entity.ID
			if imgui.SelectableBoolV(entity.ID.String(), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.selectedEntityId = entity.ID
			}

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("0x%016X", uint64(entity.Mask)))

			imgui.TableNextColumn()
			imgui.Text(strings.Join(entity.ComponentTypes, ", "))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", entity.ComponentCount()))
		}

		imgui.EndTable()
	}

	if len(filteredEntities) > eb.maxEntitiesPerPage {
		totalPages := (len(filteredEntities) + eb.maxEntitiesPerPage - 1) / eb.maxEntitiesPerPage
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.currentPage+1, totalPages, len(filteredEntities)))
		imgui.SameLine()
		if imgui.Button("Prev") && eb.currentPage > 0 {
			eb.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.currentPage < totalPages-1 {
			eb.currentPage++
		}
	} else {
		eb.currentPage = 0
		imgui.Text(fmt.Sprintf("Total: %d entities", len(filteredEntities)))
	}

	imgui.End()
}

// refresh rebuilds the row cache after any structural change to the scene.
// Edits to component values keep the cache.
func (eb *EntityBrowserComponent) refresh(scene *ecs.Scene) {
	if eb.cache.fresh && eb.cache.version == scene.Version() {
		return
	}
	eb.cache.version = scene.Version()
	eb.cache.fresh = true
	eb.cache.entities = CollectEntities(scene)
	eb.sortEntities()

	if eb.selectedEntityId != ecs.NullEntity && !scene.Valid(eb.selectedEntityId) {
		eb.selectedEntityId = ecs.NullEntity
	}
}

func (eb *EntityBrowserComponent) sortEntities() {
	sortEntityRows(eb.cache.entities, eb.cache.sortColumn, eb.cache.sortAscending)
}

func sortEntityRows(rows []EntityInfo, column int, ascending bool) {
	less := func(a, b EntityInfo) bool {
		switch column {
		case 1:
			return a.Mask < b.Mask
		case 2:
			return strings.Join(a.ComponentTypes, ",") < strings.Join(b.ComponentTypes, ",")
		case 3:
			return a.ComponentCount() < b.ComponentCount()
		default:
			return a.ID < b.ID
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if ascending {
			return less(rows[i], rows[j])
		}
		return less(rows[j], rows[i])
	})
}

func (eb *EntityBrowserComponent) filtered() []EntityInfo {
	if eb.filterText == "" && eb.filterMask.IsZero() {
		return eb.cache.entities
	}

	filter := strings.ToLower(eb.filterText)
	out := make([]EntityInfo, 0, len(eb.cache.entities))
	for _, entity := range eb.cache.entities {
		if entity.Matches(filter, eb.filterMask) {
			out = append(out, entity)
		}
	}
	return out
}

// SetMaskFilter restricts the browser to entities carrying every
// component in mask.
func (eb *EntityBrowserComponent) SetMaskFilter(mask ecs.ComponentMask) {
	eb.filterMask = mask
	eb.currentPage = 0
}

// GetSelectedEntity returns the selected entity, or NullEntity.
func (eb *EntityBrowserComponent) GetSelectedEntity() ecs.EntityId {
	return eb.selectedEntityId
}

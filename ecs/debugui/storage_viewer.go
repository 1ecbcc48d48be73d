package debugui

import (
	"fmt"
	"sort"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/sparsecs/ecs"
)

func NewStorageViewerComponent() StorageViewerComponent {
	return StorageViewerComponent{
		sortColumn:    2,
		sortAscending: false,
	}
}

// Render draws one row per component storage and returns the id of a row
// clicked this frame, or nil.
func (sv *StorageViewerComponent) Render(scene *ecs.Scene) *ecs.ComponentId {
	if !imgui.BeginV("Storage Viewer", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return nil
	}

	sv.rows = scene.CollectStats().StorageBreakdown
	sv.sortRows()

	maxLen := 0
	for _, row := range sv.rows {
		maxLen = max(maxLen, row.Len)
	}

	var clicked *ecs.ComponentId

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("StorageTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Id")
		imgui.TableSetupColumn("Type")
		imgui.TableSetupColumn("Values")
		imgui.TableSetupColumn("Pages")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			sv.sortColumn = int(spec.ColumnIndex())
			sv.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			sv.sortRows()
			sortSpecs.SetSpecsDirty(false)
		}

		for _, row := range sv.rows {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := sv.selectedId != nil && *sv.selectedId == row.Id
			if imgui.SelectableBoolV(fmt.Sprintf("%d", row.Id), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				id := row.Id
				clicked = &id
				sv.selectedId = &id
			}

			imgui.TableNextColumn()
			imgui.Text(row.Type)

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", row.Len))
			if maxLen > 0 {
				barWidth := float32(row.Len) / float32(maxLen) * 80.0
				imgui.SameLine()
				drawList := imgui.WindowDrawList()
				pos := imgui.CursorScreenPos()
				color := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
				drawList.AddRectFilled(pos, imgui.NewVec2(pos.X+barWidth, pos.Y+10), color)
			}

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", row.Pages))
		}

		imgui.EndTable()
	}

	imgui.End()
	return clicked
}

func (sv *StorageViewerComponent) sortRows() {
	sortStorageRows(sv.rows, sv.sortColumn, sv.sortAscending)
}

func sortStorageRows(rows []ecs.StorageStats, column int, ascending bool) {
	less := func(a, b ecs.StorageStats) bool {
		switch column {
		case 0:
			return a.Id < b.Id
		case 1:
			return a.Type < b.Type
		case 3:
			return a.Pages < b.Pages
		default:
			return a.Len < b.Len
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if ascending {
			return less(rows[i], rows[j])
		}
		return less(rows[j], rows[i])
	})
}

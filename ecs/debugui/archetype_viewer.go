package debugui

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/ecs"
)

// ArchetypeRow is one line of the archetype table.
type ArchetypeRow struct {
	ID          string
	Components  string
	EntityCount int
	// Fill is EntityCount relative to the largest archetype, in [0, 1].
	Fill float32
}

// ArchetypeRows orders archetypes by entity count, largest first, with ties
// broken by component list.
func ArchetypeRows(stats ecs.StorageStats) []ArchetypeRow {
	largest := 0
	for _, arch := range stats.ArchetypeBreakdown {
		largest = max(largest, arch.EntityCount)
	}

	rows := make([]ArchetypeRow, 0, len(stats.ArchetypeBreakdown))
	for _, arch := range stats.ArchetypeBreakdown {
		row := ArchetypeRow{
			ID:          fmt.Sprintf("0x%X", arch.ID),
			Components:  strings.Join(arch.ComponentTypes, ", "),
			EntityCount: arch.EntityCount,
		}
		if largest > 0 {
			row.Fill = float32(arch.EntityCount) / float32(largest)
		}
		rows = append(rows, row)
	}

	slices.SortFunc(rows, func(a, b ArchetypeRow) int {
		if c := cmp.Compare(b.EntityCount, a.EntityCount); c != 0 {
			return c
		}
		return strings.Compare(a.Components, b.Components)
	})
	return rows
}

func renderArchetypeTable(stats ecs.StorageStats) {
	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if !imgui.BeginTableV("archetypes", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		return
	}
	imgui.TableSetupColumn("ID")
	imgui.TableSetupColumn("Components")
	imgui.TableSetupColumn("Entities")
	imgui.TableHeadersRow()

	bar := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
	for _, row := range ArchetypeRows(stats) {
		imgui.TableNextRow()
		imgui.TableNextColumn()
		imgui.Text(row.ID)
		imgui.TableNextColumn()
		imgui.Text(row.Components)
		imgui.TableNextColumn()
		imgui.Text(fmt.Sprintf("%d", row.EntityCount))

		imgui.SameLine()
		pos := imgui.CursorScreenPos()
		imgui.WindowDrawList().AddRectFilled(pos, imgui.NewVec2(pos.X+row.Fill*80, pos.Y+10), bar)
	}
	imgui.EndTable()
}

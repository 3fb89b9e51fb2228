package game

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/ecs/debugui"
	"github.com/plus3/blockfall/internal/scene"
)

// BoardWindow shows the grid layout and what startup spawned.
type BoardWindow struct {
	world *World
}

func NewBoardWindow(world *World) *BoardWindow {
	return &BoardWindow{world: world}
}

func (w *BoardWindow) Item() debugui.ImguiItem {
	return debugui.ImguiItem{Render: w.Render}
}

// Lines returns the window body, one entry per text line.
func (w *BoardWindow) Lines() []string {
	grid := w.world.Grid()
	summary := scene.Census(w.world.Storage)
	spawn := grid.SpawnPoint()
	return []string{
		fmt.Sprintf("Board: %d x %d, spacing %.0f", grid.Rows(), grid.Cols(), grid.Spacing()),
		fmt.Sprintf("Cell: %.0f px, step %.0f px", grid.CellSize(), grid.Step()),
		fmt.Sprintf("Grid: %.0f x %.0f px", grid.Width(), grid.Height()),
		fmt.Sprintf("Spawn: (%.0f, %.0f)", spawn.X, spawn.Y),
		fmt.Sprintf("Tiles: %d", summary.Tiles),
		fmt.Sprintf("Pieces: %d (%d cells)", summary.Pieces, summary.PieceCells),
	}
}

func (w *BoardWindow) Render() {
	imgui.SetNextWindowPosV(imgui.NewVec2(410, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	if !imgui.BeginV("Board", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	for i, line := range w.Lines() {
		if i == 4 {
			imgui.Separator()
		}
		imgui.Text(line)
	}
	imgui.End()
}

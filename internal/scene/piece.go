package scene

import (
	"image/color"

	"github.com/plus3/blockfall/internal/layout"
)

// squareShape is the 2x2 "O" piece in cell units, y-up, anchored at its
// top-left cell.
var squareShape = [4][2]int{{0, 0}, {1, 0}, {0, -1}, {1, -1}}

// NewSquarePiece builds the 2x2 piece for grid. Offsets are multiples of
// the grid step, so the pattern is the same for every window size.
func NewSquarePiece(grid layout.Grid, c color.RGBA) Piece {
	step := grid.Step()
	size := grid.CellSize()

	var p Piece
	for i, unit := range squareShape {
		p.Cells[i] = Cell{
			Offset: layout.Vec2{X: float32(unit[0]), Y: float32(unit[1])}.Scale(step),
			Sprite: Sprite{Color: c, Size: layout.Vec2{X: size, Y: size}},
		}
	}
	return p
}

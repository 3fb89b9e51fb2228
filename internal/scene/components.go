// Package scene populates the world at startup: the camera, the grid
// layout, the background tiles and the single falling piece.
package scene

import (
	"image/color"

	"github.com/plus3/blockfall/ecs"
	"github.com/plus3/blockfall/internal/layout"
)

// Window is the primary window singleton. Its absence at startup is fatal.
type Window struct {
	Title     string
	Width     float32
	Height    float32
	Resizable bool
}

// Camera is a singleton; Center is the world point shown at the middle of
// the window.
type Camera struct {
	Center layout.Vec2
}

// Transform places an entity in world space.
type Transform struct {
	Translation layout.Vec2
	Z           float32
}

// Sprite is a solid rectangle centred on the entity's Transform.
type Sprite struct {
	Color color.RGBA
	Size  layout.Vec2
}

// Tile marks a background cell of the board.
type Tile struct {
	Row, Col int
}

// Tetrimino marks the falling piece. It carries no state yet.
type Tetrimino struct{}

// Cell is one block of a piece, placed relative to the piece's Transform.
type Cell struct {
	Offset layout.Vec2
	Sprite Sprite
}

// Piece owns its four cells; they are removed together with the piece.
type Piece struct {
	Cells [4]Cell
}

// WorldCells returns the world position of each cell for a piece at t.
func (p Piece) WorldCells(t Transform) [4]layout.Vec2 {
	var out [4]layout.Vec2
	for i, c := range p.Cells {
		out[i] = t.Translation.Add(c.Offset)
	}
	return out
}

// Register adds every scene component and singleton type to registry.
func Register(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Transform](registry)
	ecs.RegisterComponent[Sprite](registry)
	ecs.RegisterComponent[Tile](registry)
	ecs.RegisterComponent[Tetrimino](registry)
	ecs.RegisterComponent[Piece](registry)
}

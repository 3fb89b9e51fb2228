// Package layout derives the playfield geometry from the window height.
//
// World coordinates are y-up: row 0 is the topmost row and sits at the top
// edge of the window, column 0 is at the left edge. Every cell is a square
// of CellSize pixels with Spacing pixels between neighbours.
package layout

import (
	"errors"
	"fmt"
	"math"
)

// Default board dimensions.
const (
	Rows    = 20
	Cols    = 10
	Spacing = 2.0
)

// ErrInvalidDimensions is wrapped by every error returned from New.
var ErrInvalidDimensions = errors.New("invalid grid dimensions")

// Dimensions is the fixed shape of the board.
type Dimensions struct {
	Rows    int
	Cols    int
	Spacing float32
}

// DefaultDimensions returns the 20x10 board with 2px spacing.
func DefaultDimensions() Dimensions {
	return Dimensions{Rows: Rows, Cols: Cols, Spacing: Spacing}
}

// Vec2 is a point or offset in world space.
type Vec2 struct {
	X, Y float32
}

// Add returns v+o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v-o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v*s.
func (v Vec2) Scale(s float32) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Grid is the computed layout. It has no setters; a Grid is only produced
// by New and is safe to copy and share.
type Grid struct {
	dims     Dimensions
	width    float32
	height   float32
	cellSize float32
}

// New computes the layout for a window of the given height:
//
//	cellSize = height/rows - spacing
//	width    = cellSize*cols + cols*spacing
func New(windowHeight float32, dims Dimensions) (Grid, error) {
	switch {
	case windowHeight <= 0:
		return Grid{}, fmt.Errorf("%w: window height %v", ErrInvalidDimensions, windowHeight)
	case dims.Rows <= 0 || dims.Cols <= 0:
		return Grid{}, fmt.Errorf("%w: %dx%d board", ErrInvalidDimensions, dims.Rows, dims.Cols)
	case dims.Spacing < 0:
		return Grid{}, fmt.Errorf("%w: spacing %v", ErrInvalidDimensions, dims.Spacing)
	}

	cellSize := windowHeight/float32(dims.Rows) - dims.Spacing
	if cellSize <= 0 {
		return Grid{}, fmt.Errorf("%w: cell size %v for height %v", ErrInvalidDimensions, cellSize, windowHeight)
	}

	cols := float32(dims.Cols)
	return Grid{
		dims:     dims,
		width:    cellSize*cols + cols*dims.Spacing,
		height:   windowHeight,
		cellSize: cellSize,
	}, nil
}

// CellSize is the side length of one cell.
func (g Grid) CellSize() float32 { return g.cellSize }

// HalfCell is CellSize/2, the offset from a cell edge to its centre.
func (g Grid) HalfCell() float32 { return g.cellSize / 2 }

// Width is the pixel width of all columns plus their spacing.
func (g Grid) Width() float32 { return g.width }

// Height is the window height the grid was computed for.
func (g Grid) Height() float32 { return g.height }

// Step is the distance between the centres of neighbouring cells.
func (g Grid) Step() float32 { return g.cellSize + g.dims.Spacing }

func (g Grid) Rows() int                  { return g.dims.Rows }
func (g Grid) Cols() int                  { return g.dims.Cols }
func (g Grid) Spacing() float32           { return g.dims.Spacing }
func (g Grid) Dimensions() Dimensions     { return g.dims }
func (g Grid) IsZero() bool               { return g.cellSize == 0 }
func (g Grid) CellCount() int             { return g.dims.Rows * g.dims.Cols }
func (g Grid) InBounds(row, col int) bool { return row >= 0 && row < g.dims.Rows && col >= 0 && col < g.dims.Cols }

// TileCenter returns the world position of the centre of cell (row, col).
func (g Grid) TileCenter(row, col int) Vec2 {
	half := g.HalfCell()
	step := g.Step()
	return Vec2{
		X: half + float32(col)*step,
		Y: g.height - half - float32(row)*step,
	}
}

// SpawnPoint is where a new piece appears: the centre of the top-left cell.
func (g Grid) SpawnPoint() Vec2 {
	return g.TileCenter(0, 0)
}

// CellAt maps a world position back to the nearest cell. ok is false when
// that cell lies outside the board.
func (g Grid) CellAt(p Vec2) (row, col int, ok bool) {
	step := g.Step()
	half := g.HalfCell()
	col = int(math.Round(float64((p.X - half) / step)))
	row = int(math.Round(float64((g.height - half - p.Y) / step)))
	return row, col, g.InBounds(row, col)
}

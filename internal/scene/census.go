package scene

import "github.com/plus3/blockfall/ecs"

// Summary counts what startup put into the world.
type Summary struct {
	Tiles      int
	Pieces     int
	PieceCells int
}

// Census counts tiles, pieces and piece cells in storage.
func Census(storage *ecs.Storage) Summary {
	var s Summary

	tiles := ecs.NewView[struct {
		*Tile
		*Transform
		*Sprite
	}](storage)
	s.Tiles = tiles.Count()

	pieces := ecs.NewView[struct {
		*Tetrimino
		*Piece
	}](storage)
	for item := range pieces.Values() {
		s.Pieces++
		s.PieceCells += len(item.Piece.Cells)
	}
	return s
}

// Package termview previews the scene in a terminal. Each board cell is
// two terminal columns wide so cells look roughly square.
package termview

import (
	"context"
	"fmt"
	"image/color"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/blockfall/ecs"
	"github.com/plus3/blockfall/internal/layout"
	"github.com/plus3/blockfall/internal/scene"
)

const (
	tileRune  = '░'
	pieceRune = '█'
)

// CellOrigin returns the terminal coordinate of the left half of a board cell.
func CellOrigin(row, col int) (x, y int) {
	return col * 2, row
}

func style(c color.RGBA) tcell.Style {
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
}

func put(screen tcell.Screen, row, col int, r rune, st tcell.Style) {
	x, y := CellOrigin(row, col)
	screen.SetContent(x, y, r, nil, st)
	screen.SetContent(x+1, y, r, nil, st)
}

// Draw renders the tiles, the piece and a status line into screen. It does
// not call Show.
func Draw(screen tcell.Screen, storage *ecs.Storage) error {
	var grid *layout.Grid
	if !storage.ReadSingleton(&grid) {
		return scene.ErrGridNotReady
	}

	screen.Clear()

	tiles := ecs.NewView[struct {
		*scene.Tile
		*scene.Sprite
	}](storage)
	for tile := range tiles.Values() {
		put(screen, tile.Row, tile.Col, tileRune, style(tile.Sprite.Color))
	}

	pieces := ecs.NewView[struct {
		*scene.Transform
		*scene.Piece
	}](storage)
	for piece := range pieces.Values() {
		for i, p := range piece.Piece.WorldCells(*piece.Transform) {
			row, col, ok := grid.CellAt(p)
			if !ok {
				continue
			}
			put(screen, row, col, pieceRune, style(piece.Piece.Cells[i].Sprite.Color))
		}
	}

	status := fmt.Sprintf("%dx%d cell %.0fpx  q: quit", grid.Rows(), grid.Cols(), grid.CellSize())
	for i, r := range status {
		screen.SetContent(i, grid.Rows()+1, r, nil, tcell.StyleDefault)
	}
	return nil
}

// Run draws the scene and blocks until the user presses Esc, q or Ctrl-C,
// or ctx is done. The caller owns screen's Init and Fini.
func Run(ctx context.Context, screen tcell.Screen, storage *ecs.Storage) error {
	if err := Draw(screen, storage); err != nil {
		return err
	}
	screen.Show()

	events := make(chan tcell.Event, 8)
	quit := make(chan struct{})
	defer close(quit)
	go screen.ChannelEvents(events, quit)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
					return nil
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		}
	}
}

package scene

import (
	"context"
	"errors"
	"image/color"

	"github.com/plus3/blockfall/ecs"
	"github.com/plus3/blockfall/internal/ctxlog"
	"github.com/plus3/blockfall/internal/layout"
)

var (
	// ErrNoPrimaryWindow means startup ran without a Window singleton.
	ErrNoPrimaryWindow = errors.New("no primary window")
	// ErrGridInitialized means the grid layout was computed twice.
	ErrGridInitialized = errors.New("grid already initialized")
	// ErrGridNotReady means a populator ran before GridSetup.
	ErrGridNotReady = errors.New("grid not initialized")
	// ErrCameraExists means a camera was already set up.
	ErrCameraExists = errors.New("camera already exists")
)

// CameraSetup centres the camera on the primary window.
type CameraSetup struct {
	Window ecs.Singleton[Window]
}

func (s *CameraSetup) Setup(ctx context.Context, frame *ecs.UpdateFrame) error {
	win := s.Window.Get()
	if win == nil {
		return ErrNoPrimaryWindow
	}

	cam := Camera{Center: layout.Vec2{X: win.Width / 2, Y: win.Height / 2}}
	if !frame.Storage.AddSingleton(cam) {
		return ErrCameraExists
	}
	ctxlog.FromContext(ctx).Debug("camera ready", "x", cam.Center.X, "y", cam.Center.Y)
	return nil
}

// GridSetup computes the grid layout from the primary window height and
// stores it as the layout.Grid singleton. It is the only writer of that
// singleton.
type GridSetup struct {
	Window     ecs.Singleton[Window]
	Dimensions layout.Dimensions
}

func (s *GridSetup) Setup(ctx context.Context, frame *ecs.UpdateFrame) error {
	win := s.Window.Get()
	if win == nil {
		return ErrNoPrimaryWindow
	}

	grid, err := layout.New(win.Height, s.Dimensions)
	if err != nil {
		return err
	}
	if !frame.Storage.AddSingleton(grid) {
		return ErrGridInitialized
	}

	ctxlog.FromContext(ctx).Info("grid initialized",
		"rows", grid.Rows(),
		"cols", grid.Cols(),
		"cell_size", grid.CellSize(),
		"width", grid.Width(),
		"height", grid.Height(),
	)
	return nil
}

// TileSpawner emits one background tile per board cell. Running it twice
// doubles the tiles.
type TileSpawner struct {
	Grid  ecs.Singleton[layout.Grid]
	Color color.RGBA
}

func (s *TileSpawner) Setup(ctx context.Context, frame *ecs.UpdateFrame) error {
	grid := s.Grid.Get()
	if grid == nil {
		return ErrGridNotReady
	}

	size := layout.Vec2{X: grid.CellSize(), Y: grid.CellSize()}
	for row := range grid.Rows() {
		for col := range grid.Cols() {
			frame.Commands.Spawn(
				Transform{Translation: grid.TileCenter(row, col)},
				Sprite{Color: s.Color, Size: size},
				Tile{Row: row, Col: col},
			)
		}
	}

	ctxlog.FromContext(ctx).Debug("tiles queued", "count", grid.CellCount())
	return nil
}

// PieceSpawner spawns the single 2x2 piece at the grid's spawn point.
type PieceSpawner struct {
	Grid  ecs.Singleton[layout.Grid]
	Color color.RGBA
}

func (s *PieceSpawner) Setup(ctx context.Context, frame *ecs.UpdateFrame) error {
	grid := s.Grid.Get()
	if grid == nil {
		return ErrGridNotReady
	}

	spawn := grid.SpawnPoint()
	frame.Commands.Spawn(
		Tetrimino{},
		Transform{Translation: spawn},
		NewSquarePiece(*grid, s.Color),
	)

	ctxlog.FromContext(ctx).Debug("piece queued", "x", spawn.X, "y", spawn.Y)
	return nil
}

// Colors selects the tile and piece colours used by Install.
type Colors struct {
	Tile  color.RGBA
	Piece color.RGBA
}

// Install registers the startup sequence on scheduler:
// camera, grid layout, background tiles, piece.
func Install(scheduler *ecs.Scheduler, dims layout.Dimensions, colors Colors) {
	scheduler.RegisterStartup(&CameraSetup{})
	scheduler.RegisterStartup(&GridSetup{Dimensions: dims})
	scheduler.RegisterStartup(&TileSpawner{Color: colors.Tile})
	scheduler.RegisterStartup(&PieceSpawner{Color: colors.Piece})
}

// Package game wires configuration, the ECS world, the renderer and the
// optional debug overlay into an ebiten.Game.
package game

import (
	"context"
	"fmt"

	"github.com/plus3/blockfall/ecs"
	"github.com/plus3/blockfall/ecs/debugui"
	"github.com/plus3/blockfall/internal/config"
	"github.com/plus3/blockfall/internal/ctxlog"
	"github.com/plus3/blockfall/internal/layout"
	"github.com/plus3/blockfall/internal/render"
	"github.com/plus3/blockfall/internal/scene"
)

// World is a populated ECS world plus the schedulers that drive it.
type World struct {
	Config  config.Config
	Storage *ecs.Storage

	// Scheduler runs the startup sequence and the per-frame update systems.
	Scheduler *ecs.Scheduler
	// Draw runs the render pass; it is separate so Draw can run without
	// advancing the simulation.
	Draw     *ecs.Scheduler
	Renderer *render.RenderSystem
}

// NewRegistry returns a registry with every component type the game spawns.
func NewRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	scene.Register(registry)
	debugui.Register(registry)
	return registry
}

// WindowFromConfig converts the window settings into the Window singleton.
func WindowFromConfig(cfg config.Window) scene.Window {
	return scene.Window{
		Title:     cfg.Title,
		Width:     float32(cfg.Width),
		Height:    float32(cfg.Height),
		Resizable: cfg.Resizable,
	}
}

// DimensionsFromConfig converts the board settings into grid dimensions.
func DimensionsFromConfig(cfg config.Board) layout.Dimensions {
	return layout.Dimensions{
		Rows:    cfg.Rows,
		Cols:    cfg.Cols,
		Spacing: float32(cfg.Spacing),
	}
}

// Build validates cfg, stores the primary window and runs the startup
// sequence. Any error leaves no usable world and should end the program.
func Build(ctx context.Context, cfg config.Config) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	colors, err := cfg.Palette.Resolve()
	if err != nil {
		return nil, err
	}

	storage := ecs.NewStorage(NewRegistry())
	storage.AddSingleton(WindowFromConfig(cfg.Window))

	scheduler := ecs.NewScheduler(storage)
	scene.Install(scheduler, DimensionsFromConfig(cfg.Board), scene.Colors{
		Tile:  colors.Tile,
		Piece: colors.Piece,
	})
	if err := scheduler.Startup(ctx); err != nil {
		return nil, fmt.Errorf("build world: %w", err)
	}

	renderer := &render.RenderSystem{Background: colors.Background}
	draw := ecs.NewScheduler(storage)
	draw.Register(renderer)

	summary := scene.Census(storage)
	ctxlog.FromContext(ctx).Info("world ready",
		"tiles", summary.Tiles,
		"pieces", summary.Pieces,
		"piece_cells", summary.PieceCells,
	)

	return &World{
		Config:    cfg,
		Storage:   storage,
		Scheduler: scheduler,
		Draw:      draw,
		Renderer:  renderer,
	}, nil
}

// Grid returns the computed grid layout.
func (w *World) Grid() layout.Grid {
	var grid *layout.Grid
	if !w.Storage.ReadSingleton(&grid) {
		return layout.Grid{}
	}
	return *grid
}

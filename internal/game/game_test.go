package game

import (
	"bytes"
	"context"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/blockfall/internal/config"
	"github.com/plus3/blockfall/internal/ctxlog"
	"github.com/plus3/blockfall/internal/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDefault(t *testing.T) {
	var logs bytes.Buffer
	ctx := ctxlog.WithLogger(context.Background(), ctxlog.New(&logs, "info"))

	world, err := Build(ctx, config.Default())
	require.NoError(t, err)

	assert.Equal(t, scene.Summary{Tiles: 200, Pieces: 1, PieceCells: 4}, scene.Census(world.Storage))

	var win *scene.Window
	require.True(t, world.Storage.ReadSingleton(&win))
	assert.Equal(t, scene.Window{Title: "Tetris", Width: 600, Height: 800}, *win)

	grid := world.Grid()
	assert.Equal(t, float32(38), grid.CellSize())
	assert.Equal(t, float32(400), grid.Width())

	assert.Equal(t, color.RGBA{A: 0xff}, world.Renderer.Background)
	assert.Contains(t, logs.String(), "grid initialized")
	assert.Contains(t, logs.String(), "tiles=200")
}

func TestBuildCustomBoard(t *testing.T) {
	cfg := config.Default()
	cfg.Board = config.Board{Rows: 10, Cols: 5, Spacing: 0}

	world, err := Build(context.Background(), cfg)
	require.NoError(t, err)

	grid := world.Grid()
	assert.Equal(t, float32(80), grid.CellSize())
	assert.Equal(t, 50, scene.Census(world.Storage).Tiles)
}

func TestBuildRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Window.Height = 0

	world, err := Build(context.Background(), cfg)
	assert.ErrorIs(t, err, config.ErrInvalid)
	assert.Nil(t, world)
}

func TestBuildCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Build(ctx, config.Default())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLayoutKeepsWindowSize(t *testing.T) {
	world, err := Build(context.Background(), config.Default())
	require.NoError(t, err)

	w, h := New(world).Layout(1920, 1080)
	assert.Equal(t, 600, w)
	assert.Equal(t, 800, h)
}

func TestWantsQuit(t *testing.T) {
	assert.True(t, WantsQuit(func(k ebiten.Key) bool { return k == ebiten.KeyEscape }))
	assert.False(t, WantsQuit(func(k ebiten.Key) bool { return k == ebiten.KeySpace }))
}

func TestBoardWindowLines(t *testing.T) {
	world, err := Build(context.Background(), config.Default())
	require.NoError(t, err)

	want := []string{
		"Board: 20 x 10, spacing 2",
		"Cell: 38 px, step 40 px",
		"Grid: 400 x 800 px",
		"Spawn: (19, 781)",
		"Tiles: 200",
		"Pieces: 1 (4 cells)",
	}
	if diff := cmp.Diff(want, NewBoardWindow(world).Lines()); diff != "" {
		t.Errorf("board window (-want +got):\n%s", diff)
	}
}

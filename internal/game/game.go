package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/blockfall/ecs"
	"github.com/plus3/blockfall/ecs/debugui"
	debugui_ebiten "github.com/plus3/blockfall/ecs/debugui/ebiten"
)

const frameTime = 1.0 / 60.0

// Game runs a World inside Ebitengine.
type Game struct {
	world   *World
	backend *ecs.Singleton[debugui_ebiten.ImguiBackend]
}

// New returns a game drawing world. The overlay is off until EnableOverlay.
func New(world *World) *Game {
	return &Game{world: world}
}

// EnableOverlay stores backend as a singleton, registers the ImGui system and
// spawns the debug windows.
func (g *Game) EnableOverlay(backend debugui_ebiten.ImguiBackend) {
	storage := g.world.Storage
	g.backend = ecs.NewSingleton(storage, backend)
	g.world.Scheduler.Register(&debugui.ImguiSystem{})

	storage.Spawn(NewBoardWindow(g.world).Item())
	storage.Spawn(debugui.NewStatsWindow(storage, g.world.Draw).Item())
}

// WantsQuit reports whether the player asked to close the game.
func WantsQuit(pressed func(ebiten.Key) bool) bool {
	return pressed(ebiten.KeyEscape)
}

func (g *Game) Update() error {
	if WantsQuit(ebiten.IsKeyPressed) {
		return ebiten.Termination
	}

	if g.backend != nil {
		g.backend.Get().Frame(func() {
			g.world.Scheduler.Once(frameTime)
		})
		return nil
	}
	g.world.Scheduler.Once(frameTime)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.world.Renderer.SetTarget(screen)
	g.world.Draw.Once(0)
	g.world.Renderer.SetTarget(nil)

	if g.backend != nil {
		g.backend.Get().Overlay(screen)
	}
}

// Layout keeps the logical screen at the configured window size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.backend != nil {
		g.backend.Get().Layout(outsideWidth, outsideHeight)
	}
	win := g.world.Config.Window
	return win.Width, win.Height
}

// Open prepares the window and returns the game to run in it. With the
// overlay on, the ImGui backend creates the window.
func Open(world *World, overlay bool) *Game {
	win := world.Config.Window
	g := New(world)
	if overlay {
		g.EnableOverlay(debugui_ebiten.New(win.Title, win.Width, win.Height))
	} else {
		ebiten.SetWindowSize(win.Width, win.Height)
		ebiten.SetWindowTitle(win.Title)
	}

	mode := ebiten.WindowResizingModeDisabled
	if win.Resizable {
		mode = ebiten.WindowResizingModeEnabled
	}
	ebiten.SetWindowResizingMode(mode)
	return g
}

// Run opens the window and blocks until it closes.
func Run(world *World, overlay bool) error {
	return ebiten.RunGame(Open(world, overlay))
}

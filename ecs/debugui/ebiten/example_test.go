package ebiten_test

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/blockfall/ecs"
	"github.com/plus3/blockfall/ecs/debugui"
	debugui_ebiten "github.com/plus3/blockfall/ecs/debugui/ebiten"
)

type overlayGame struct {
	scheduler *ecs.Scheduler
	backend   *ecs.Singleton[debugui_ebiten.ImguiBackend]
}

func (g *overlayGame) Update() error {
	g.backend.Get().Frame(func() {
		g.scheduler.Once(1.0 / 60.0)
	})
	return nil
}

func (g *overlayGame) Draw(screen *ebiten.Image) {
	g.backend.Get().Overlay(screen)
}

func (g *overlayGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.backend.Get().Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// Example opens a window with one ImGui panel fed from an ECS entity.
func Example() {
	registry := ecs.NewComponentRegistry()
	debugui.Register(registry)
	storage := ecs.NewStorage(registry)

	backend := ecs.NewSingleton(storage, debugui_ebiten.New("overlay", 640, 480))

	storage.Spawn(debugui.ImguiItem{
		Render: func() {
			imgui.Begin("Debug")
			imgui.Text("hello")
			imgui.End()
		},
	})

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&debugui.ImguiSystem{})

	if err := ebiten.RunGame(&overlayGame{scheduler: scheduler, backend: backend}); err != nil {
		panic(err)
	}
}

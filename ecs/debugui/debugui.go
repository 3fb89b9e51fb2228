// Package debugui draws Dear ImGui windows from ECS entities. Each entity
// carrying an ImguiItem contributes one render callback per frame.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/ecs"
)

// ImguiItem holds a render callback that issues ImGui calls.
type ImguiItem struct {
	Render func()
}

// ImguiInputState mirrors whether ImGui wants mouse or keyboard input this
// frame. Game input handling should skip events ImGui is capturing.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// Register adds the debugui component types to registry.
func Register(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
}

// ImguiSystem refreshes ImguiInputState and defers every ImguiItem callback
// to the end of the frame. It must run between the backend's BeginFrame and
// EndFrame.
type ImguiSystem struct {
	Items      ecs.Query[struct{ *ImguiItem }]
	InputState ecs.Singleton[ImguiInputState]
}

func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	if !i.InputState.Exists() {
		frame.Storage.AddSingleton(ImguiInputState{})
	}
	io := imgui.CurrentIO()
	state := i.InputState.Get()
	state.WantCaptureMouse = io.WantCaptureMouse()
	state.WantCaptureKeyboard = io.WantCaptureKeyboard()

	for item := range i.Items.Values() {
		if item.Render != nil {
			frame.Commands.Defer(item.Render)
		}
	}
}

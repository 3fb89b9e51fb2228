package render

import (
	"testing"

	"github.com/plus3/blockfall/internal/layout"
	"github.com/plus3/blockfall/internal/scene"
	"github.com/stretchr/testify/assert"
)

var (
	win = scene.Window{Width: 600, Height: 800}
	cam = scene.Camera{Center: layout.Vec2{X: 300, Y: 400}}
)

func TestProject(t *testing.T) {
	tests := []struct {
		world  layout.Vec2
		sx, sy float32
	}{
		{layout.Vec2{X: 300, Y: 400}, 300, 400},
		{layout.Vec2{X: 0, Y: 0}, 0, 800},
		{layout.Vec2{X: 0, Y: 800}, 0, 0},
		{layout.Vec2{X: 19, Y: 781}, 19, 19},
		{layout.Vec2{X: 379, Y: 21}, 379, 779},
	}
	for _, tt := range tests {
		sx, sy := Project(cam, win, tt.world)
		assert.Equal(t, tt.sx, sx, "x of %v", tt.world)
		assert.Equal(t, tt.sy, sy, "y of %v", tt.world)
	}
}

func TestProjectFollowsCamera(t *testing.T) {
	moved := scene.Camera{Center: layout.Vec2{X: 350, Y: 350}}
	sx, sy := Project(moved, win, layout.Vec2{X: 350, Y: 350})
	assert.Equal(t, float32(300), sx)
	assert.Equal(t, float32(400), sy)
}

func TestSpriteRect(t *testing.T) {
	size := layout.Vec2{X: 38, Y: 38}

	// the top-left tile touches the top-left corner of the window
	assert.Equal(t, Rect{X: 0, Y: 0, W: 38, H: 38}, SpriteRect(cam, win, layout.Vec2{X: 19, Y: 781}, size))

	// the bottom-right tile ends at the grid width and the bottom edge, minus spacing
	r := SpriteRect(cam, win, layout.Vec2{X: 379, Y: 21}, size)
	assert.Equal(t, Rect{X: 360, Y: 760, W: 38, H: 38}, r)
	assert.Equal(t, float32(398), r.X+r.W)
	assert.Equal(t, float32(798), r.Y+r.H)
}

func TestExecuteWithoutTargetIsNoop(t *testing.T) {
	s := &RenderSystem{}
	assert.NotPanics(t, func() { s.Execute(nil) })
}

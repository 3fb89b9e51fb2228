// Package render draws the scene with Ebitengine.
package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/blockfall/ecs"
	"github.com/plus3/blockfall/internal/layout"
	"github.com/plus3/blockfall/internal/scene"
)

// Rect is a screen-space rectangle, y-down, origin at the top-left.
type Rect struct {
	X, Y, W, H float32
}

// Project maps a world point (y-up) to screen pixels (y-down). The camera
// centre lands on the middle of the window.
func Project(cam scene.Camera, win scene.Window, p layout.Vec2) (float32, float32) {
	return p.X - cam.Center.X + win.Width/2, win.Height/2 - (p.Y - cam.Center.Y)
}

// SpriteRect returns the screen rectangle of a sprite centred on p.
func SpriteRect(cam scene.Camera, win scene.Window, p layout.Vec2, size layout.Vec2) Rect {
	x, y := Project(cam, win, p)
	return Rect{X: x - size.X/2, Y: y - size.Y/2, W: size.X, H: size.Y}
}

// RenderSystem draws tiles first and pieces on top of them. Set the target
// image with SetTarget before each Execute; with no target it does nothing.
type RenderSystem struct {
	Window ecs.Singleton[scene.Window]
	Camera ecs.Singleton[scene.Camera]
	Tiles  ecs.Query[struct {
		*scene.Transform
		*scene.Sprite
	}]
	Pieces ecs.Query[struct {
		*scene.Transform
		*scene.Piece
	}]

	Background color.RGBA

	target *ebiten.Image
}

// SetTarget selects the image the next Execute draws into.
func (s *RenderSystem) SetTarget(img *ebiten.Image) {
	s.target = img
}

func (s *RenderSystem) Execute(frame *ecs.UpdateFrame) {
	if s.target == nil {
		return
	}
	win := s.Window.Get()
	cam := s.Camera.Get()
	if win == nil || cam == nil {
		return
	}

	s.target.Fill(s.Background)

	for tile := range s.Tiles.Values() {
		s.fill(SpriteRect(*cam, *win, tile.Transform.Translation, tile.Sprite.Size), tile.Sprite.Color)
	}

	for piece := range s.Pieces.Values() {
		for i, p := range piece.Piece.WorldCells(*piece.Transform) {
			sprite := piece.Piece.Cells[i].Sprite
			s.fill(SpriteRect(*cam, *win, p, sprite.Size), sprite.Color)
		}
	}
}

func (s *RenderSystem) fill(r Rect, c color.RGBA) {
	vector.DrawFilledRect(s.target, r.X, r.Y, r.W, r.H, c, false)
}

// Package config holds the startup settings of the game: the primary window,
// the board dimensions and the palette. Defaults reproduce the classic
// 600x800 "Tetris" window with a 20x10 board.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/hashicorp/hcl/v2/hclsimple"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is the complete startup configuration.
type Config struct {
	Window  Window
	Board   Board
	Palette Palette
}

// Window describes the primary window.
type Window struct {
	Title     string `hcl:"title,optional"`
	Width     int    `hcl:"width,optional"`
	Height    int    `hcl:"height,optional"`
	Resizable bool   `hcl:"resizable,optional"`
}

// Board describes the playfield grid.
type Board struct {
	Rows    int     `hcl:"rows,optional"`
	Cols    int     `hcl:"cols,optional"`
	Spacing float64 `hcl:"spacing,optional"`
}

// Palette holds "#rrggbb" colours.
type Palette struct {
	Background string `hcl:"background,optional"`
	Tile       string `hcl:"tile,optional"`
	Piece      string `hcl:"piece,optional"`
}

// Colors is a Palette parsed into RGBA values.
type Colors struct {
	Background color.RGBA
	Tile       color.RGBA
	Piece      color.RGBA
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Window: Window{
			Title:     "Tetris",
			Width:     600,
			Height:    800,
			Resizable: false,
		},
		Board: Board{
			Rows:    20,
			Cols:    10,
			Spacing: 2.0,
		},
		Palette: Palette{
			Background: "#000000",
			Tile:       "#ffffff",
			Piece:      "#ff0000",
		},
	}
}

// Load returns the defaults overridden by the HCL file at path. An empty
// path returns the defaults. The result is validated.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := decode(path, src, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// decode overlays the blocks found in src onto cfg. Absent blocks and
// attributes keep their current values.
func decode(filename string, src []byte, cfg *Config) error {
	file := struct {
		Window  *Window  `hcl:"window,block"`
		Board   *Board   `hcl:"board,block"`
		Palette *Palette `hcl:"palette,block"`
	}{
		Window:  &cfg.Window,
		Board:   &cfg.Board,
		Palette: &cfg.Palette,
	}
	return hclsimple.Decode(filename, src, nil, &file)
}

// Validate checks that the window can hold the board.
func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d must be positive", ErrInvalid, c.Window.Width, c.Window.Height)
	case c.Board.Rows <= 0 || c.Board.Cols <= 0:
		return fmt.Errorf("%w: board %dx%d must have rows and cols", ErrInvalid, c.Board.Rows, c.Board.Cols)
	case c.Board.Spacing < 0:
		return fmt.Errorf("%w: spacing %v is negative", ErrInvalid, c.Board.Spacing)
	case float64(c.Window.Height)/float64(c.Board.Rows) <= c.Board.Spacing:
		return fmt.Errorf("%w: %d rows with spacing %v leave no room in a %dpx window",
			ErrInvalid, c.Board.Rows, c.Board.Spacing, c.Window.Height)
	}
	if _, err := c.Palette.Resolve(); err != nil {
		return err
	}
	return nil
}

// Resolve parses every palette entry.
func (p Palette) Resolve() (Colors, error) {
	var (
		out Colors
		err error
	)
	if out.Background, err = ParseColor(p.Background); err != nil {
		return Colors{}, fmt.Errorf("%w: background: %w", ErrInvalid, err)
	}
	if out.Tile, err = ParseColor(p.Tile); err != nil {
		return Colors{}, fmt.Errorf("%w: tile: %w", ErrInvalid, err)
	}
	if out.Piece, err = ParseColor(p.Piece); err != nil {
		return Colors{}, fmt.Errorf("%w: piece: %w", ErrInvalid, err)
	}
	return out, nil
}

// ParseColor parses "#rrggbb" (the leading '#' is optional) into an opaque colour.
func ParseColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("colour %q is not #rrggbb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("colour %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

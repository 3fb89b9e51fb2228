package main

import (
	"fmt"
	"io"

	"github.com/plus3/blockfall/internal/game"
	"github.com/plus3/blockfall/internal/scene"
	"github.com/spf13/cobra"
)

func newLayoutCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "layout",
		Short: "Print the computed grid layout and what startup spawned",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, world, err := opts.build(cmd)
			if err != nil {
				return err
			}
			return printLayout(cmd.OutOrStdout(), world)
		},
	}
}

func printLayout(w io.Writer, world *game.World) error {
	win := world.Config.Window
	grid := world.Grid()
	spawn := grid.SpawnPoint()
	summary := scene.Census(world.Storage)

	_, err := fmt.Fprintf(w,
		"window  %q %dx%d resizable=%t\n"+
			"board   %d rows x %d cols, spacing %g\n"+
			"cell    %g px (step %g)\n"+
			"grid    %g x %g px\n"+
			"spawn   (%g, %g)\n"+
			"tiles   %d\n"+
			"pieces  %d (%d cells)\n",
		win.Title, win.Width, win.Height, win.Resizable,
		grid.Rows(), grid.Cols(), grid.Spacing(),
		grid.CellSize(), grid.Step(),
		grid.Width(), grid.Height(),
		spawn.X, spawn.Y,
		summary.Tiles,
		summary.Pieces, summary.PieceCells,
	)
	return err
}

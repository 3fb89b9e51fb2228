// Command blockfall opens the falling-block board in a window, prints its
// layout, or previews it in the terminal.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/plus3/blockfall/internal/config"
	"github.com/plus3/blockfall/internal/ctxlog"
	"github.com/plus3/blockfall/internal/game"
	"github.com/spf13/cobra"
)

type options struct {
	configPath string
	logLevel   string
	debug      bool
}

// build loads the configuration and populates a world, logging to the
// command's stderr.
func (o *options) build(cmd *cobra.Command) (context.Context, *game.World, error) {
	logger := ctxlog.New(cmd.ErrOrStderr(), o.logLevel)
	ctx := ctxlog.WithLogger(cmd.Context(), logger)

	cfg, err := config.Load(o.configPath)
	if err != nil {
		return ctx, nil, err
	}
	world, err := game.Build(ctx, cfg)
	if err != nil {
		return ctx, nil, err
	}
	return ctx, world, nil
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "blockfall",
		Short:         "Falling-block puzzle board",
		Long:          "Opens a fixed 600x800 window titled \"Tetris\" showing the empty board and one 2x2 piece.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, world, err := opts.build(cmd)
			if err != nil {
				return err
			}
			ctxlog.FromContext(ctx).Info("opening window",
				"title", world.Config.Window.Title,
				"width", world.Config.Window.Width,
				"height", world.Config.Window.Height,
				"debug", opts.debug,
			)
			return game.Run(world, opts.debug)
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "HCL file overriding the window, board and palette")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	root.Flags().BoolVar(&opts.debug, "debug", false, "show the ImGui debug overlay")

	root.AddCommand(newLayoutCmd(opts), newPreviewCmd(opts))
	return root
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "blockfall:", err)
		os.Exit(1)
	}
}

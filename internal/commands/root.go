// Package commands implements the ticklist command line.
package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/five82/ticklist/internal/logging"
)

// NewRoot builds the ticklist command tree.
func NewRoot(version string) *cli.Command {
	var logCloser func()
	flags := &Flags{}

	root := &cli.Command{
		Name:      "ticklist",
		Usage:     "A small to-do list for the terminal",
		UsageText: "ticklist [global options] [command [command options]]",
		Description: `ticklist keeps a to-do list in an interactive terminal view.

Without api_url (or with --local) items live in memory for the session.
With a gateway configured every change goes through its /todo endpoint.

Run 'ticklist' with no arguments to open the list.
Run 'ticklist serve' to start a /todo backend for testing.`,
		Version: version,
		Flags:   flags.GlobalFlags(),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			cfg, err := flags.Resolve(c)
			if err != nil {
				return ctx, err
			}
			flags.Config = cfg

			logger, closer, err := logging.New(cfg.LogLevel, cfg.LogFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			flags.Logger = logger
			logCloser = closer
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	tuiCmd := NewTuiCmd(flags)

	root = tuiCmd.Register(root)
	root = NewLsCmd(flags).Register(root)
	root = NewAddCmd(flags).Register(root)
	root = NewDoneCmd(flags).Register(root)
	root = NewEditCmd(flags).Register(root)
	root = NewRmCmd(flags).Register(root)
	root = NewServeCmd(flags).Register(root)
	root = NewLogsCmd(flags).Register(root)

	root.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'ticklist --help' for usage", c.Args().First())
		}
		return tuiCmd.run(ctx, c)
	}

	return root
}

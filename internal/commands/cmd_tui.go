package commands

import (
	"context"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/five82/ticklist/internal/app"
)

type TuiCmd struct {
	flags *Flags

	// flags
	prefsPath  string
	retryEvery time.Duration
}

// NewTuiCmd creates the interactive list command.
func NewTuiCmd(flags *Flags) *TuiCmd {
	return &TuiCmd{flags: flags}
}

// Register adds the tui command to the application.
func (cmd *TuiCmd) Register(root *cli.Command) *cli.Command {
	root.Commands = append(root.Commands, &cli.Command{
		Name:  "tui",
		Usage: "Open the interactive list (default)",
		Description: `Opens the to-do list view. With a gateway configured the list is loaded
from GET /todo in the background; the header shows the connection state.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "prefs",
				Usage:       "path to prefs file (defaults to ~/.config/ticklist/prefs.toml)",
				Sources:     cli.EnvVars("TICKLIST_PREFS"),
				Destination: &cmd.prefsPath,
			},
			&cli.DurationFlag{
				Name:        "retry",
				Usage:       "base interval between attempts of the initial load",
				Value:       2 * time.Second,
				Destination: &cmd.retryEvery,
			},
		},
		Action: cmd.run,
	})
	return root
}

func (cmd *TuiCmd) run(ctx context.Context, c *cli.Command) error {
	return app.Run(ctx, app.Options{
		Config:     cmd.flags.Config,
		PrefsPath:  cmd.prefsPath,
		RetryEvery: cmd.retryEvery,
		Logger:     cmd.flags.Logger,
	})
}

package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/five82/ticklist/internal/logtail"
)

type LogsCmd struct {
	flags *Flags

	// flags
	lines   int
	noColor bool
}

// NewLogsCmd creates the logs command.
func NewLogsCmd(flags *Flags) *LogsCmd {
	return &LogsCmd{flags: flags}
}

// Register adds the logs command to the application.
func (cmd *LogsCmd) Register(root *cli.Command) *cli.Command {
	root.Commands = append(root.Commands, &cli.Command{
		Name:      "logs",
		Usage:     "Print the end of the log file",
		UsageText: "ticklist logs [-n LINES]",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:        "lines",
				Aliases:     []string{"n"},
				Usage:       "number of lines to print (0 prints all)",
				Value:       50,
				Destination: &cmd.lines,
			},
			&cli.BoolFlag{
				Name:        "no-color",
				Usage:       "disable colors",
				Destination: &cmd.noColor,
			},
		},
		Action: cmd.run,
	})
	return root
}

func (cmd *LogsCmd) run(ctx context.Context, c *cli.Command) error {
	path := cmd.flags.Config.LogFile
	lines, err := logtail.Read(path, cmd.lines)
	if err != nil {
		return fmt.Errorf("read log: %w", err)
	}

	out := writer(c.Root().Writer)
	if len(lines) == 0 {
		_, _ = fmt.Fprintf(out, "No log entries in %s\n", path)
		return nil
	}
	return logtail.Print(out, lines, !cmd.noColor && isTerminal(out))
}

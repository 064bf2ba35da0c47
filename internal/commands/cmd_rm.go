package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"
)

type RmCmd struct {
	flags *Flags

	// flags
	yes bool
}

// NewRmCmd creates the rm command.
func NewRmCmd(flags *Flags) *RmCmd {
	return &RmCmd{flags: flags}
}

// Register adds the rm command to the application.
func (cmd *RmCmd) Register(root *cli.Command) *cli.Command {
	root.Commands = append(root.Commands, &cli.Command{
		Name:      "rm",
		Usage:     "Delete an item",
		UsageText: "ticklist rm ID [--yes]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "yes",
				Aliases:     []string{"y"},
				Usage:       "delete without asking",
				Destination: &cmd.yes,
			},
		},
		Action: cmd.run,
	})
	return root
}

func (cmd *RmCmd) run(ctx context.Context, c *cli.Command) error {
	id, err := parseID(c.Args().First())
	if err != nil {
		return err
	}
	gw, err := cmd.flags.Gateway()
	if err != nil {
		return err
	}

	it, err := findItem(ctx, gw, id)
	if err != nil {
		return err
	}

	out := writer(c.Root().Writer)
	if !cmd.yes {
		if !isTerminal(reader(c.Root().Reader)) {
			return fmt.Errorf("refusing to delete item %s without confirmation; pass --yes", id)
		}
		var confirmed bool
		err := huh.NewConfirm().
			Title("Delete item " + id.String() + "?").
			Description(it.Text).
			Value(&confirmed).
			Run()
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}
		if !confirmed {
			_, _ = fmt.Fprintln(out, "Kept", id)
			return nil
		}
	}

	if err := gw.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	_, _ = fmt.Fprintf(out, "Deleted %s: %s\n", id, it.Text)
	return nil
}

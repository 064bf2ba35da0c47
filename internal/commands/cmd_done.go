package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/five82/ticklist/internal/todo"
)

type DoneCmd struct {
	flags *Flags
}

// NewDoneCmd creates the done and undo commands.
func NewDoneCmd(flags *Flags) *DoneCmd {
	return &DoneCmd{flags: flags}
}

// Register adds the done and undo commands to the application.
func (cmd *DoneCmd) Register(root *cli.Command) *cli.Command {
	root.Commands = append(root.Commands,
		&cli.Command{
			Name:      "done",
			Usage:     "Mark an item completed",
			UsageText: "ticklist done ID",
			Action: func(ctx context.Context, c *cli.Command) error {
				return cmd.setCompleted(ctx, c, true)
			},
		},
		&cli.Command{
			Name:      "undo",
			Usage:     "Mark an item not completed",
			UsageText: "ticklist undo ID",
			Action: func(ctx context.Context, c *cli.Command) error {
				return cmd.setCompleted(ctx, c, false)
			},
		},
	)
	return root
}

func (cmd *DoneCmd) setCompleted(ctx context.Context, c *cli.Command, completed bool) error {
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
	if it.Completed == completed {
		_, _ = fmt.Fprintf(out, "Item %s is already %s\n", id, doneLabel(completed))
		return nil
	}

	updated, err := gw.Update(ctx, id, todo.Fields{Text: it.Text, Completed: completed})
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	_, _ = fmt.Fprintf(out, "Marked %s %s: %s\n", updated.ID, doneLabel(updated.Completed), updated.Text)
	return nil
}

func doneLabel(completed bool) string {
	if completed {
		return "done"
	}
	return "open"
}

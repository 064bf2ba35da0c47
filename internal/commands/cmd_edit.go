package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/five82/ticklist/internal/todo"
)

type EditCmd struct {
	flags *Flags
}

// NewEditCmd creates the edit command.
func NewEditCmd(flags *Flags) *EditCmd {
	return &EditCmd{flags: flags}
}

// Register adds the edit command to the application.
func (cmd *EditCmd) Register(root *cli.Command) *cli.Command {
	root.Commands = append(root.Commands, &cli.Command{
		Name:      "edit",
		Usage:     "Replace the text of an item",
		UsageText: "ticklist edit ID TEXT...",
		Action:    cmd.run,
	})
	return root
}

func (cmd *EditCmd) run(ctx context.Context, c *cli.Command) error {
	id, err := parseID(c.Args().First())
	if err != nil {
		return err
	}
	text := strings.Join(c.Args().Tail(), " ")
	if err := validateText(text); err != nil {
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
	updated, err := gw.Update(ctx, id, todo.Fields{Text: text, Completed: it.Completed})
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	_, _ = fmt.Fprintf(writer(c.Root().Writer), "Updated %s: %s\n", updated.ID, updated.Text)
	return nil
}

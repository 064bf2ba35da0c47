package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/five82/ticklist/internal/todo"
)

type AddCmd struct {
	flags *Flags
}

// NewAddCmd creates the add command.
func NewAddCmd(flags *Flags) *AddCmd {
	return &AddCmd{flags: flags}
}

// Register adds the add command to the application.
func (cmd *AddCmd) Register(root *cli.Command) *cli.Command {
	root.Commands = append(root.Commands, &cli.Command{
		Name:      "add",
		Usage:     "Create an item",
		UsageText: "ticklist add [TEXT...]",
		Description: `Creates an item with the given text.

Without arguments each non-blank line read from stdin becomes an item.
When stdin is a terminal an interactive prompt asks for the text.`,
		Action: cmd.run,
	})
	return root
}

func (cmd *AddCmd) run(ctx context.Context, c *cli.Command) error {
	texts, err := cmd.texts(c)
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		return err
	}
	if len(texts) == 0 {
		return validateText("")
	}

	gw, err := cmd.flags.Gateway()
	if err != nil {
		return err
	}

	out := writer(c.Root().Writer)
	for _, text := range texts {
		it, err := gw.Create(ctx, todo.Fields{Text: text})
		if err != nil {
			return fmt.Errorf("create item: %w", err)
		}
		_, _ = fmt.Fprintf(out, "Added %s: %s\n", it.ID, it.Text)
	}
	return nil
}

// texts returns the item texts from the arguments, piped stdin or a prompt.
func (cmd *AddCmd) texts(c *cli.Command) ([]string, error) {
	if c.Args().Len() > 0 {
		text := strings.Join(c.Args().Slice(), " ")
		if err := validateText(text); err != nil {
			return nil, err
		}
		return []string{text}, nil
	}

	in := reader(c.Root().Reader)
	if isTerminal(in) {
		var text string
		err := huh.NewInput().
			Title("New item").
			Validate(validateText).
			Value(&text).
			Run()
		if err != nil {
			return nil, err
		}
		return []string{text}, nil
	}

	var texts []string
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if line := scanner.Text(); !todo.Blank(line) {
			texts = append(texts, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return texts, nil
}

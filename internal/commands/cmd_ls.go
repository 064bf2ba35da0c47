package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/five82/ticklist/internal/todo"
)

type LsCmd struct {
	flags *Flags

	// flags
	output   string
	onlyDone bool
	onlyOpen bool
}

// NewLsCmd creates the ls command.
func NewLsCmd(flags *Flags) *LsCmd {
	return &LsCmd{flags: flags}
}

// Register adds the ls command to the application.
func (cmd *LsCmd) Register(root *cli.Command) *cli.Command {
	root.Commands = append(root.Commands, &cli.Command{
		Name:      "ls",
		Usage:     "List items from the gateway",
		UsageText: "ticklist ls [--output text|json|yaml] [--done|--open]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "output format: text, json or yaml",
				Value:       "text",
				Destination: &cmd.output,
			},
			&cli.BoolFlag{
				Name:        "done",
				Usage:       "only completed items",
				Destination: &cmd.onlyDone,
			},
			&cli.BoolFlag{
				Name:        "open",
				Usage:       "only items still to do",
				Destination: &cmd.onlyOpen,
			},
		},
		Action: cmd.run,
	})
	return root
}

// itemOutput is the YAML shape of an item.
type itemOutput struct {
	ID        string `yaml:"id"`
	Text      string `yaml:"text"`
	Completed bool   `yaml:"completed"`
}

func (cmd *LsCmd) validate() error {
	var errs criterio.FieldErrorsBuilder
	switch cmd.output {
	case "text", "json", "yaml":
	default:
		errs = errs.Append("output", fmt.Errorf("unknown format %q", cmd.output))
	}
	if cmd.onlyDone && cmd.onlyOpen {
		errs = errs.Append("done", fmt.Errorf("cannot be combined with --open"))
	}
	return errs.ToError()
}

func (cmd *LsCmd) run(ctx context.Context, c *cli.Command) error {
	if err := cmd.validate(); err != nil {
		return err
	}

	gw, err := cmd.flags.Gateway()
	if err != nil {
		return err
	}
	items, err := gw.List(ctx)
	if err != nil {
		return fmt.Errorf("list items: %w", err)
	}
	items = cmd.filter(items)

	out := writer(c.Root().Writer)
	switch cmd.output {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if items == nil {
			items = []todo.Item{}
		}
		if err := enc.Encode(items); err != nil {
			return fmt.Errorf("encode items: %w", err)
		}
		return nil

	case "yaml":
		rows := make([]itemOutput, 0, len(items))
		for _, it := range items {
			rows = append(rows, itemOutput{ID: it.ID.String(), Text: it.Text, Completed: it.Completed})
		}
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(rows); err != nil {
			return fmt.Errorf("encode items: %w", err)
		}
		return enc.Close()
	}

	if len(items) == 0 {
		_, _ = fmt.Fprintln(out, "Nothing to do")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tDONE\tTEXT")
	for _, it := range items {
		done := " "
		if it.Completed {
			done = "x"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", it.ID, done, it.Text)
	}
	return w.Flush()
}

func (cmd *LsCmd) filter(items []todo.Item) []todo.Item {
	if !cmd.onlyDone && !cmd.onlyOpen {
		return items
	}
	var out []todo.Item
	for _, it := range items {
		if it.Completed == cmd.onlyDone {
			out = append(out, it)
		}
	}
	return out
}

package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/five82/ticklist/internal/server"
)

// DefaultServeAddr is where serve listens unless --addr is given.
const DefaultServeAddr = "127.0.0.1:8484"

type ServeCmd struct {
	flags *Flags

	// flags
	addr string
	db   string
}

// NewServeCmd creates the serve command.
func NewServeCmd(flags *Flags) *ServeCmd {
	return &ServeCmd{flags: flags}
}

// Register adds the serve command to the application.
func (cmd *ServeCmd) Register(root *cli.Command) *cli.Command {
	root.Commands = append(root.Commands, &cli.Command{
		Name:      "serve",
		Usage:     "Run a /todo backend",
		UsageText: "ticklist serve [--addr HOST:PORT] [--db PATH]",
		Description: `Serves GET/POST /todo and GET/PUT/DELETE /todo/{id} backed by SQLite.

Items are kept in memory unless --db names a database file.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "addr",
				Usage:       "listen address",
				Sources:     cli.EnvVars("TICKLIST_SERVE_ADDR"),
				Value:       DefaultServeAddr,
				Destination: &cmd.addr,
			},
			&cli.StringFlag{
				Name:        "db",
				Usage:       "SQLite database file (in memory when empty)",
				Sources:     cli.EnvVars("TICKLIST_SERVE_DB"),
				Destination: &cmd.db,
			},
		},
		Action: cmd.run,
	})
	return root
}

func (cmd *ServeCmd) run(ctx context.Context, c *cli.Command) error {
	dsn := cmd.db
	if dsn == "" {
		dsn = server.MemoryDSN
	}

	store, err := server.OpenStore(ctx, dsn)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() { _ = store.Close() }()

	log := cmd.flags.Logger.With().Str("component", "server").Logger()
	srv := server.New(store, log)

	_, _ = fmt.Fprintf(writer(c.Root().Writer), "Serving /todo on http://%s\n", cmd.addr)
	return srv.ListenAndServe(ctx, cmd.addr)
}

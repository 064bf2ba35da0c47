package commands

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"

	"github.com/five82/ticklist/internal/app"
	"github.com/five82/ticklist/internal/config"
	"github.com/five82/ticklist/internal/gateway"
)

// Flags holds the global flag values shared by every command.
type Flags struct {
	ConfigPath string
	APIURL     string
	Local      bool
	LogLevel   string
	LogFile    string
	Timeout    time.Duration

	// Config and Logger are resolved in the Before hook
	Config config.Config
	Logger zerolog.Logger
}

// GlobalFlags returns the root command flags bound to f.
func (f *Flags) GlobalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "path to config file",
			Sources:     cli.EnvVars("TICKLIST_CONFIG"),
			Value:       config.DefaultPath(),
			Destination: &f.ConfigPath,
		},
		&cli.StringFlag{
			Name:        "api",
			Usage:       "base URL of the /todo gateway (overrides api_url)",
			Sources:     cli.EnvVars("TICKLIST_API"),
			Destination: &f.APIURL,
		},
		&cli.BoolFlag{
			Name:        "local",
			Usage:       "keep items in memory and ignore api_url",
			Sources:     cli.EnvVars("TICKLIST_LOCAL"),
			Destination: &f.Local,
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Sources:     cli.EnvVars("TICKLIST_LOG_LEVEL"),
			Destination: &f.LogLevel,
		},
		&cli.StringFlag{
			Name:        "log-file",
			Usage:       "path to log file (defaults to ~/.local/state/ticklist/ticklist.log)",
			Sources:     cli.EnvVars("TICKLIST_LOG_FILE"),
			Destination: &f.LogFile,
		},
		&cli.DurationFlag{
			Name:        "timeout",
			Usage:       "per-request timeout for gateway calls",
			Sources:     cli.EnvVars("TICKLIST_TIMEOUT"),
			Destination: &f.Timeout,
		},
	}
}

// Resolve loads the config file and applies the flags that were set on c.
func (f *Flags) Resolve(c *cli.Command) (config.Config, error) {
	cfg, err := config.Load(f.ConfigPath)
	if err != nil {
		return cfg, err
	}

	if c.IsSet("api") {
		cfg.APIURL = f.APIURL
	}
	if f.Local {
		cfg.APIURL = ""
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = f.LogLevel
	}
	if c.IsSet("log-file") {
		path, err := config.ExpandPath(f.LogFile)
		if err != nil {
			return cfg, fmt.Errorf("log file: %w", err)
		}
		cfg.LogFile = path
	}
	if c.IsSet("timeout") {
		cfg.RequestTimeout = f.Timeout
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Gateway returns a client for the configured gateway. It fails in local
// mode since headless commands have nothing to talk to.
func (f *Flags) Gateway() (*gateway.Client, error) {
	if f.Config.Local() {
		return nil, fmt.Errorf("no gateway configured; set --api, TICKLIST_API or api_url in %s", f.ConfigPath)
	}
	return app.NewGateway(f.Config, f.Logger, nil)
}

package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/five82/ticklist/internal/config"
	"github.com/five82/ticklist/internal/gateway"
	"github.com/five82/ticklist/internal/prefs"
	"github.com/five82/ticklist/internal/state"
	"github.com/five82/ticklist/internal/ui"
)

// Options configure the ticklist TUI.
type Options struct {
	Config     config.Config
	PrefsPath  string        // empty uses default ~/.config/ticklist/prefs.toml
	RetryEvery time.Duration // base interval of the initial load backoff; zero uses default
	Logger     zerolog.Logger
}

// Run boots the TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg := opts.Config
	log := opts.Logger

	userPrefs := prefs.Load(opts.PrefsPath)
	themeName := userPrefs.Theme
	if cfg.Theme != "" {
		themeName = cfg.Theme
	}

	uiOpts := ui.Options{
		Context:       ctx,
		ThemeName:     themeName,
		HideCompleted: userPrefs.HideCompleted,
		PrefsPath:     opts.PrefsPath,
		Logger:        log,
	}

	if cfg.Local() {
		log.Info().Msg("starting in local mode")
		return ui.Run(uiOpts)
	}

	store := &state.Store{}
	client, err := NewGateway(cfg, log, store)
	if err != nil {
		return err
	}
	log.Info().Str("api", client.BaseURL()).Msg("starting with gateway")

	loadCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	StartLoader(loadCtx, store, client, opts.RetryEvery, log)

	uiOpts.Gateway = client
	uiOpts.Store = store
	uiOpts.Endpoint = client.BaseURL()
	return ui.Run(uiOpts)
}

// NewGateway builds the gateway client described by cfg. A nil observer is
// allowed.
func NewGateway(cfg config.Config, log zerolog.Logger, observer gateway.Observer) (*gateway.Client, error) {
	opts := []gateway.Option{
		gateway.WithTimeout(cfg.RequestTimeout),
		gateway.WithLogger(log.With().Str("component", "gateway").Logger()),
	}
	if observer != nil {
		opts = append(opts, gateway.WithObserver(observer))
	}
	client, err := gateway.NewClient(cfg.APIURL, opts...)
	if err != nil {
		return nil, fmt.Errorf("init gateway client: %w", err)
	}
	return client, nil
}

// Package app wires configuration, the gateway client, shared state and the
// UI together.
//
// # Startup
//
//  1. Load preferences; a theme in config.toml wins over the saved one
//  2. Without an api_url, start the UI in local mode and stop here
//  3. Create a state.Store and a gateway client that reports into it
//  4. Start the loader, which fetches GET /todo in the background
//  5. Start the TUI and block until the user exits or the context ends
//
// # Initial Load
//
// The loader retries a failed GET /todo with exponential backoff: the base
// interval (default 2 seconds) doubles after each failure and is capped at
// 30 seconds. It stops after the first success, storing the items in the
// store where the UI picks them up on its next tick. Later reloads are
// requested from the UI.
//
//	ctx, cancel := context.WithCancel(context.Background())
//	defer cancel()
//
//	if err := app.Run(ctx, app.Options{Config: cfg, Logger: log}); err != nil {
//		return err
//	}
package app

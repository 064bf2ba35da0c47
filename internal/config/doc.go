// Package config loads ticklist's configuration file.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/ticklist/config.toml (default)
//  3. If the config file doesn't exist, fall back to defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// Command-line flags and TICKLIST_* environment variables are applied on
// top of the loaded values by the CLI, then Validate is called.
//
// # TOML Format
//
//	api_url = "http://127.0.0.1:8484"   # empty runs in local mode
//	request_timeout = "10s"
//	log_level = "info"
//	log_file = "~/.local/state/ticklist/ticklist.log"
//	theme = "Kanagawa"
//
// All fields are optional. Tilde expansion is performed on log_file.
//
// # Validation
//
// Validate returns criterio.FieldErrors listing every invalid field, so a
// bad config is reported in one pass:
//
//	var fieldErrs criterio.FieldErrors
//	if errors.As(cfg.Validate(), &fieldErrs) {
//		for _, fe := range fieldErrs {
//			fmt.Println(fe.Field, fe.Err)
//		}
//	}
package config

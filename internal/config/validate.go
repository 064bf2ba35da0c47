package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/hay-kot/criterio"
	"github.com/rs/zerolog"
)

// Validate checks the configuration and returns criterio.FieldErrors
// describing every invalid field.
func (c Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("api_url", c.APIURL, validAPIURL),
		c.validateTimeout(),
		criterio.Run("log_level", c.LogLevel, validLogLevel),
		criterio.Run("log_file", c.LogFile, notBlank),
	)
}

func (c Config) validateTimeout() error {
	var errs criterio.FieldErrorsBuilder
	if c.RequestTimeout <= 0 {
		errs = errs.Append("request_timeout", fmt.Errorf("must be greater than zero, got %s", c.RequestTimeout))
	}
	return errs.ToError()
}

func validAPIURL(raw string) error {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host")
	}
	return nil
}

func validLogLevel(level string) error {
	if _, err := zerolog.ParseLevel(level); err != nil {
		return fmt.Errorf("unknown level %q", level)
	}
	return nil
}

func notBlank(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("must not be empty")
	}
	return nil
}

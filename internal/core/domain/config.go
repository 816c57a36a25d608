package domain

import (
	"slices"

	"go.trai.ch/zerr"
)

const (
	// DefaultConfigFile is the configuration file looked up in the working directory.
	DefaultConfigFile = "storefront.yaml"
	// DefaultPageSize is the number of cards on one menu page.
	DefaultPageSize = 6
	// DefaultCurrency is appended to every price.
	DefaultCurrency = "Руб"
	// ConfigVersion is the configuration schema version this build understands.
	ConfigVersion = "1"
)

// OutputModes lists the accepted values of Config.Output.
var OutputModes = []string{"auto", "tui", "linear", "ci"}

// Config holds the storefront settings.
type Config struct {
	Version  string
	Catalog  string
	PageSize int
	Currency string
	Output   string
	// LogJSON switches the logger to JSON records.
	LogJSON bool
	// LogVerbose enables debug records, including every state change.
	LogVerbose bool
}

// DefaultConfig returns the settings used when no configuration file exists.
func DefaultConfig() Config {
	return Config{
		Version:  ConfigVersion,
		PageSize: DefaultPageSize,
		Currency: DefaultCurrency,
		Output:   "auto",
	}
}

// Validate checks the settings.
func (c *Config) Validate() error {
	if c.Version != "" && c.Version != ConfigVersion {
		return zerr.With(zerr.Wrap(ErrInvalidConfig, "unsupported version"), "version", c.Version)
	}
	if c.PageSize <= 0 {
		return zerr.With(zerr.Wrap(ErrInvalidConfig, "pageSize must be positive"), "page_size", c.PageSize)
	}
	if c.Output != "" && !slices.Contains(OutputModes, c.Output) {
		return zerr.With(zerr.Wrap(ErrInvalidConfig, "unknown output mode"), "output", c.Output)
	}
	return nil
}

// Package config provides the configuration loader for the storefront.
package config

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"

	"github.com/Viskhan-95/golden-chicken/internal/core/domain"
	"github.com/Viskhan-95/golden-chicken/internal/core/ports"
)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	logger ports.Logger
}

// NewLoader creates a new configuration loader.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load reads the configuration file at path. An empty path looks for
// storefront.yaml in the working directory. A missing file yields the defaults.
func (l *Loader) Load(path string) (domain.Config, error) {
	explicit := path != ""
	if !explicit {
		path = domain.DefaultConfigFile
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return domain.DefaultConfig(), nil
		}
		return domain.Config{}, zerr.With(zerr.Wrap(err, "failed to read config file"), "path", path)
	}

	cfg, err := Parse(data)
	if err != nil {
		return domain.Config{}, zerr.With(err, "path", path)
	}

	if cfg.Version == "" && l.logger != nil {
		l.logger.Warn("config has no version, assuming " + domain.ConfigVersion)
		cfg.Version = domain.ConfigVersion
	}

	// A relative catalog path is relative to the configuration file.
	if cfg.Catalog != "" && !filepath.IsAbs(cfg.Catalog) {
		cfg.Catalog = filepath.Join(filepath.Dir(path), cfg.Catalog)
	}

	return cfg, nil
}

// Parse decodes a configuration document over the defaults and validates it.
// Unknown keys are rejected.
func Parse(data []byte) (domain.Config, error) {
	var file Storefile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return domain.Config{}, zerr.Wrap(err, "failed to parse config file")
	}

	cfg := domain.DefaultConfig()
	cfg.Version = file.Version
	cfg.Catalog = file.Catalog
	if file.PageSize != nil {
		cfg.PageSize = *file.PageSize
	}
	if file.Currency != nil {
		cfg.Currency = *file.Currency
	}
	if file.Output != "" {
		cfg.Output = file.Output
	}
	cfg.LogJSON = file.Log.JSON
	cfg.LogVerbose = file.Log.Verbose

	if err := cfg.Validate(); err != nil {
		return domain.Config{}, err
	}
	return cfg, nil
}

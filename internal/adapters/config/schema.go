package config

// Storefile represents the structure of the storefront.yaml configuration file.
type Storefile struct {
	Version  string  `yaml:"version"`
	Catalog  string  `yaml:"catalog"`
	PageSize *int    `yaml:"pageSize"`
	Currency *string `yaml:"currency"`
	Output   string  `yaml:"output"`
	Log      LogDTO  `yaml:"log"`
}

// LogDTO represents the logging section of the configuration.
type LogDTO struct {
	JSON    bool `yaml:"json"`
	Verbose bool `yaml:"verbose"`
}

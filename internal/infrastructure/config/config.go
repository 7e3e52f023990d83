package config

import (
	"github.com/caarlos0/env/v10"
)

// Config holds all application configuration.
type Config struct {
	// Reports
	OutputDir string `env:"TXPROC_OUTPUT_DIR" envDefault:"output"`

	// Ingestion
	DelimiterSampleSize int `env:"TXPROC_DELIMITER_SAMPLE" envDefault:"1024"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	err := env.Parse(cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

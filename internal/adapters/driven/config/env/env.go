// Package env loads environment-sourced configuration.
//
// Credentials live here and only here: API tokens are read from the
// process environment (optionally seeded from a .env file) and are never
// written to the settings file.
package env

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds environment-sourced configuration.
type Config struct {
	// HFToken is the Hugging Face router token, used for cloud
	// embeddings, answers, and image captioning.
	HFToken string `env:"HF_TOKEN"`

	// APIKey overrides HFToken when targeting a non-HF endpoint.
	APIKey string `env:"ANSA_API_KEY"`

	// ConfigDir overrides the default ~/.ansa configuration directory.
	ConfigDir string `env:"ANSA_CONFIG_DIR"`

	// LogLevel sets the logging verbosity (debug, info, warn, error).
	LogLevel string `env:"ANSA_LOG_LEVEL" envDefault:"info"`

	// LogFormat selects console or json log output.
	LogFormat string `env:"ANSA_LOG_FORMAT" envDefault:"console"`
}

// Load reads configuration from the environment, seeding it from a .env
// file in the working directory when one exists. A missing .env file is
// not an error; variables are usually set externally.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	return cfg, nil
}

// Token returns the credential to use for cloud AI calls: the explicit
// override when present, otherwise the Hugging Face token.
func (c *Config) Token() string {
	if c.APIKey != "" {
		return c.APIKey
	}
	return c.HFToken
}

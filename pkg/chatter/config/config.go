// Package config loads server settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds the server settings.
type Config struct {
	Port string `env:"PORT" envDefault:"8080" validate:"required,numeric"`

	DBDriver string `env:"CHATTER_DB_DRIVER" envDefault:"sqlite" validate:"oneof=sqlite postgres"`
	DBDSN    string `env:"CHATTER_DB_DSN" envDefault:"chatter.db" validate:"required"`

	LogLevel  string `env:"CHATTER_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"CHATTER_LOG_FORMAT" envDefault:"json" validate:"oneof=json console"`

	MessagePageSize  int  `env:"CHATTER_MESSAGE_PAGE_SIZE" envDefault:"50" validate:"min=1"`
	SanitizeMessages bool `env:"CHATTER_SANITIZE_MESSAGES" envDefault:"false"`
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

// Load reads the given .env files, if they exist, then parses and validates the environment.
// Variables already set in the environment take precedence over .env values.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

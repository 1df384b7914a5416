// Package config loads server settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/benbeisheim/roulette-backend/internal/model"
	"github.com/caarlos0/env/v11"
	"github.com/gofiber/fiber/v2/log"
	"github.com/joho/godotenv"
)

type Config struct {
	Port         int           `env:"ROULETTE_PORT" envDefault:"3000"`
	AllowOrigins string        `env:"ROULETTE_ALLOW_ORIGINS" envDefault:"http://localhost:5173"`
	Rules        model.Rules   `env:"ROULETTE_RULES" envDefault:"shrinking"`
	RevealDelay  time.Duration `env:"ROULETTE_REVEAL_DELAY" envDefault:"1s"`
	LogLevel     string        `env:"ROULETTE_LOG_LEVEL" envDefault:"info"`
}

// Load reads an optional .env file from the working directory, then parses
// the environment.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}
	return Parse()
}

// Parse loads configuration from environment variables only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.RevealDelay < 0 {
		return Config{}, fmt.Errorf("parse env: negative reveal delay %s", cfg.RevealDelay)
	}
	return cfg, nil
}

func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Level maps LogLevel onto fiber's logger, defaulting to info.
func (c Config) Level() log.Level {
	switch strings.ToLower(c.LogLevel) {
	case "trace":
		return log.LevelTrace
	case "debug":
		return log.LevelDebug
	case "warn":
		return log.LevelWarn
	case "error":
		return log.LevelError
	default:
		return log.LevelInfo
	}
}

// Package config loads the game settings from the environment.
package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"

	"github.com/luca-patrignani/klondike/domain/deck"
	"github.com/luca-patrignani/klondike/domain/klondike"
)

// Config holds every setting of a game session.
type Config struct {
	DrawCount         int    `env:"KLONDIKE_DRAW_COUNT"          envDefault:"1"    validate:"oneof=1 3"`
	PassLimit         int    `env:"KLONDIKE_PASS_LIMIT"          envDefault:"0"    validate:"gte=0"`
	Seed              string `env:"KLONDIKE_SEED"`
	Timed             bool   `env:"KLONDIKE_TIMED"`
	AutoplayMaxPasses int    `env:"KLONDIKE_AUTOPLAY_MAX_PASSES" envDefault:"25"   validate:"gt=0"`
	LogLevel          string `env:"KLONDIKE_LOG_LEVEL"           envDefault:"info" validate:"oneof=debug info warn error"`
}

var validate = validator.New()

// Load reads the configuration from the process environment.
func Load() (Config, error) {
	return parse(env.Options{})
}

// LoadFrom reads the configuration from the given variables only.
func LoadFrom(environment map[string]string) (Config, error) {
	return parse(env.Options{Environment: environment})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Level converts LogLevel for slog.
func (c Config) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return l
}

// Source returns the shuffling source: seeded when Seed is set, backed by
// the system randomness otherwise.
func (c Config) Source() deck.Source {
	if c.Seed == "" {
		return deck.NewRandomSource()
	}
	return deck.NewSeededSource([]byte(c.Seed))
}

// GameOptions returns the klondike options matching the configuration.
func (c Config) GameOptions() []klondike.Option {
	return []klondike.Option{
		klondike.WithDrawCount(c.DrawCount),
		klondike.WithPassLimit(c.PassLimit),
	}
}

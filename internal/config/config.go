// Package config loads server configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Addr string `env:"ADDR" envDefault:":8080"`
	// AllowedOrigins are websocket origin patterns; empty means
	// same-origin only.
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`
	// CoinFlipRevealDelay paces the coin-flip notification after the
	// teams update so clients can animate the flip. Zero disables it.
	CoinFlipRevealDelay time.Duration `env:"COIN_FLIP_REVEAL_DELAY" envDefault:"2s"`
	Debug               bool          `env:"DEBUG" envDefault:"false"`
}

func Load() (Config, error) {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

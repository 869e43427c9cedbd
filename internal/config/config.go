package config

import (
	"errors"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config carries the process-wide settings consumed at startup. Nothing here
// is mutated after Load; everything downstream receives values explicitly.
type Config struct {
	Addr        string        `env:"AGUAVIVA_ADDR" envDefault:":8080"`
	DatabaseDSN string        `env:"AGUAVIVA_PG_DSN"`
	TokenSecret string        `env:"AGUAVIVA_TOKEN_SECRET"`
	TokenTTL    time.Duration `env:"AGUAVIVA_TOKEN_TTL" envDefault:"24h"`
	RateBurst   int           `env:"AGUAVIVA_RATE_BURST" envDefault:"20"`
	RatePerSec  int           `env:"AGUAVIVA_RATE_PER_SEC" envDefault:"10"`
}

// Load reads configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.TokenSecret == "" {
		return Config{}, errors.New("AGUAVIVA_TOKEN_SECRET is required")
	}
	return cfg, nil
}

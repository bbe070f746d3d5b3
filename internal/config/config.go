package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds runtime configuration sourced from env vars.
type Config struct {
	Env   string `env:"APP_ENV" envDefault:"development"`
	Debug bool   `env:"DEBUG" envDefault:"false"`

	Server struct {
		Port    int      `env:"PORT" envDefault:"5000"`
		Origins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	}

	Database struct {
		URL string `env:"DATABASE_URL,required"`
	}

	Auth struct {
		JWTSecret     string `env:"JWT_SECRET,required"`
		SessionSecret string `env:"SESSION_SECRET,required"`
		Issuer        string `env:"JWT_ISSUER" envDefault:"oak-backend"`
		TokenTTLMin   int    `env:"JWT_TTL_MINUTES" envDefault:"60"`
	}
}

// Load reads configuration from the environment, pulling in a local .env
// file first when one exists.
func Load() (*Config, error) {
	// Missing .env is fine; production sets variables directly.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if cfg.Auth.TokenTTLMin <= 0 {
		cfg.Auth.TokenTTLMin = 60
	}
	return cfg, nil
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c *Config) HTTPAddress() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// IsProduction reports whether the app runs with production hardening
// (Secure cookies) enabled.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// TokenTTL returns the session token lifetime.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.Auth.TokenTTLMin) * time.Minute
}

// Package config holds the HTTP service settings read from the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
)

// ErrMissingSecret is returned when JWT_SECRET is not configured.
var ErrMissingSecret = errors.New("JWT_SECRET environment variable is not set")

type Config struct {
	Host string `env:"HOST" envDefault:"0.0.0.0"`
	Port string `env:"PORT" envDefault:"5000"`

	JWTSecret string `env:"JWT_SECRET"`
	// ResetLinkBase is the frontend route a reset token is appended to.
	ResetLinkBase string `env:"RESET_LINK_BASE" envDefault:"http://localhost:5173/reset-password/"`

	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`

	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"5s"`

	RateLimit RateLimitConfig `envPrefix:"RATE_LIMIT_"`
}

// RateLimitConfig configures the auth endpoint limiter. An empty RedisAddr disables it.
type RateLimitConfig struct {
	RedisAddr     string        `env:"REDIS_ADDR"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	Prefix        string        `env:"PREFIX" envDefault:"artzy:ratelimit"`
	Limit         int           `env:"LIMIT" envDefault:"20"`
	Window        time.Duration `env:"WINDOW" envDefault:"1m"`
	// TrustedProxies are CIDRs or IPs allowed to set X-Forwarded-For; empty trusts none.
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`
}

// FromEnv parses the service config. A missing JWT secret is an error so the
// process never starts issuing tokens it cannot verify.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg.JWTSecret = strings.TrimSpace(cfg.JWTSecret)
	if cfg.JWTSecret == "" {
		return Config{}, ErrMissingSecret
	}
	return cfg, nil
}

// Addr returns the listen address.
func (c Config) Addr() string {
	return c.Host + ":" + c.Port
}

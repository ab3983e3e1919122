// Package config loads process-wide configuration from the environment.
package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// DefaultJWTSecret is the development fallback signing secret. Production
// startup refuses to run with it; see Load.
const DefaultJWTSecret = "school-api-dev-secret"

type Config struct {
	Env           string `env:"APP_ENV" env-default:"development"`
	HTTPAddr      string `env:"HTTP_ADDR" env-default:":8080"`
	DatabaseURL   string `env:"DATABASE_URL" env-required:"true"`
	RedisAddr     string `env:"REDIS_ADDR" env-required:"true"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" env-default:"0"`
	JWTSecret     string `env:"JWT_SECRET" env-default:"school-api-dev-secret"`
	WorkerCount   int    `env:"WORKER_COUNT" env-default:"1"`
}

// Load reads the environment and validates hard requirements. The signing
// secret may fall back to the development default everywhere except
// production, where an explicit JWT_SECRET is mandatory.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}
	if cfg.WorkerCount < 1 {
		return nil, fmt.Errorf("WORKER_COUNT must be at least 1")
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = DefaultJWTSecret
	}
	if cfg.Env == "production" && cfg.JWTSecret == DefaultJWTSecret {
		return nil, fmt.Errorf("JWT_SECRET must be set in production")
	}
	return &cfg, nil
}

// Package config loads server configuration from environment variables.
package config

import (
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/epicquest/rpg-engine/internal/errors"
)

// Config holds everything the server needs to start. Values come from the
// environment; every field has a default that works for local development.
type Config struct {
	HTTPAddr        string        `env:"RPG_ENGINE_HTTP_ADDR"         envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"RPG_ENGINE_SHUTDOWN_TIMEOUT"  envDefault:"10s"`

	RedisAddr         string        `env:"RPG_ENGINE_REDIS_ADDR"           envDefault:"localhost:6379"`
	RedisPoolSize     int           `env:"RPG_ENGINE_REDIS_POOL_SIZE"      envDefault:"10"`
	RedisMinIdleConns int           `env:"RPG_ENGINE_REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	RedisMaxIdleTime  time.Duration `env:"RPG_ENGINE_REDIS_MAX_IDLE_TIME"  envDefault:"5m"`

	// MaxUpdateAttempts bounds the optimistic-write retry loop per command.
	MaxUpdateAttempts int `env:"RPG_ENGINE_MAX_UPDATE_ATTEMPTS" envDefault:"3"`

	// ContentSeed feeds the rng source the item catalog rolls stats from.
	// The same seed always produces the same catalog.
	ContentSeed int64 `env:"RPG_ENGINE_CONTENT_SEED" envDefault:"1"`

	AdventureCooldown time.Duration `env:"RPG_ENGINE_ADVENTURE_COOLDOWN" envDefault:"30m"`
	WorkCooldown      time.Duration `env:"RPG_ENGINE_WORK_COOLDOWN"      envDefault:"1h"`
	DailyCooldown     time.Duration `env:"RPG_ENGINE_DAILY_COOLDOWN"     envDefault:"24h"`
	BattleCooldown    time.Duration `env:"RPG_ENGINE_BATTLE_COOLDOWN"    envDefault:"5m"`
}

// Load parses configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to parse environment")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the loaded values for sanity.
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.HTTPAddr == "" {
		vb.RequiredField("http_addr")
	}
	if c.RedisAddr == "" {
		vb.RequiredField("redis_addr")
	}
	if c.MaxUpdateAttempts < 1 {
		vb.Field("max_update_attempts", "must be at least 1")
	}
	if c.AdventureCooldown <= 0 {
		vb.Field("adventure_cooldown", "must be positive")
	}
	if c.WorkCooldown <= 0 {
		vb.Field("work_cooldown", "must be positive")
	}
	if c.DailyCooldown <= 0 {
		vb.Field("daily_cooldown", "must be positive")
	}
	if c.BattleCooldown <= 0 {
		vb.Field("battle_cooldown", "must be positive")
	}
	return vb.Build()
}

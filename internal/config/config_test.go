package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epicquest/rpg-engine/internal/config"
	"github.com/epicquest/rpg-engine/internal/errors"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 3, cfg.MaxUpdateAttempts)
	assert.Equal(t, 30*time.Minute, cfg.AdventureCooldown)
	assert.Equal(t, 24*time.Hour, cfg.DailyCooldown)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("RPG_ENGINE_HTTP_ADDR", ":9090")
	t.Setenv("RPG_ENGINE_ADVENTURE_COOLDOWN", "15m")
	t.Setenv("RPG_ENGINE_MAX_UPDATE_ATTEMPTS", "5")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, 15*time.Minute, cfg.AdventureCooldown)
	assert.Equal(t, 5, cfg.MaxUpdateAttempts)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"empty http addr", func(c *config.Config) { c.HTTPAddr = "" }},
		{"empty redis addr", func(c *config.Config) { c.RedisAddr = "" }},
		{"zero update attempts", func(c *config.Config) { c.MaxUpdateAttempts = 0 }},
		{"negative cooldown", func(c *config.Config) { c.AdventureCooldown = -time.Minute }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := config.Load()
			require.NoError(t, err)
			tt.mutate(cfg)
			err = cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.IsInvalidArgument(err))
		})
	}
}

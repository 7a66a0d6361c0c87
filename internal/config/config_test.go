package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"SERVER_PORT", "REDIS_DB", "RESET_DB",
		"SEED_ADMIN_USERNAME", "SEED_ADMIN_PASSWORD",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.False(t, cfg.ResetDB)
	assert.Equal(t, "admin", cfg.SeedAdminUsername)
	assert.Equal(t, "admin123", cfg.SeedAdminPassword)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("RESET_DB", "true")
	t.Setenv("SEED_ADMIN_USERNAME", "ops")
	t.Setenv("SEED_ADMIN_PASSWORD", "s3cret")

	cfg := Load()

	assert.Equal(t, "9000", cfg.ServerPort)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.True(t, cfg.ResetDB)
	assert.Equal(t, "ops", cfg.SeedAdminUsername)
	assert.Equal(t, "s3cret", cfg.SeedAdminPassword)
}

func TestLoad_ResetDBRequiresExactTrue(t *testing.T) {
	t.Setenv("RESET_DB", "1")

	assert.False(t, Load().ResetDB)
}

func TestLoad_BadRedisDBFallsBack(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")

	assert.Equal(t, 0, Load().RedisDB)
}

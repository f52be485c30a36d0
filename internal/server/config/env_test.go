package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv(t *testing.T) {
	t.Setenv("GOPHACCOUNTS_ADDRESS", ":7000")
	t.Setenv("GOPHACCOUNTS_DATABASE_DRIVER", "memory")
	t.Setenv("GOPHACCOUNTS_DATABASE_DSN", "ignored")
	t.Setenv("GOPHACCOUNTS_SECRET_KEY", "env-secret")
	t.Setenv("GOPHACCOUNTS_ACCESS_TOKEN_TTL", "90m")
	t.Setenv("GOPHACCOUNTS_PASSWORD_HASH_COST", "5")
	t.Setenv("GOPHACCOUNTS_ADMIN_USERNAME", "root")
	t.Setenv("GOPHACCOUNTS_ADMIN_PASSWORD", "toor")
	t.Setenv("GOPHACCOUNTS_LOG_LEVEL", "error")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, ":7000", cfg.EndpointAddrHTTP)
	assert.Equal(t, "memory", cfg.DatabaseDriver)
	assert.Equal(t, "ignored", cfg.DatabaseDSN)
	assert.Equal(t, "env-secret", cfg.SecretKey)
	assert.Equal(t, 90*time.Minute, cfg.AccessTokenValidityDuration)
	assert.Equal(t, 5, cfg.PasswordHashCost)
	assert.Equal(t, "root", cfg.AdminUserName)
	assert.Equal(t, "toor", cfg.AdminPassword)
	assert.Equal(t, "error", cfg.LogLevel)
}

func TestParseEnv_Unset(t *testing.T) {
	cfg := &Config{SecretKey: "keep", PasswordHashCost: 9}
	parseEnv(cfg)

	assert.Equal(t, "keep", cfg.SecretKey)
	assert.Equal(t, 9, cfg.PasswordHashCost)
}

func TestParseEnv_Malformed(t *testing.T) {
	t.Run("ttl", func(t *testing.T) {
		t.Setenv("GOPHACCOUNTS_ACCESS_TOKEN_TTL", "forever")
		require.Panics(t, func() { parseEnv(&Config{}) })
	})
	t.Run("cost", func(t *testing.T) {
		t.Setenv("GOPHACCOUNTS_PASSWORD_HASH_COST", "ten")
		require.Panics(t, func() { parseEnv(&Config{}) })
	})
}

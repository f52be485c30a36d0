// Package config handles configuration for the server component,
// including defaults, JSON overlay, command-line flags and environment
// variables.
package config

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophaccounts/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// Config holds runtime settings for the account server.
//
// Fields:
//   - EndpointAddrHTTP: bind address of the HTTP API.
//   - DatabaseDriver: "sqlite", "postgres" or "memory".
//   - DatabaseDSN: driver-specific DSN (file path for sqlite, URL for postgres).
//   - SecretKey: HMAC secret for signing tokens (HS256). Required; there is no default.
//   - AccessTokenValidityDuration: lifetime of issued tokens.
//   - PasswordHashCost: bcrypt work factor.
//   - AdminUserName / AdminPassword: optional account created at startup.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	EndpointAddrHTTP            string
	DatabaseDriver              string
	DatabaseDSN                 string
	SecretKey                   string
	AccessTokenValidityDuration time.Duration
	PasswordHashCost            int
	AdminUserName               string
	AdminPassword               string
	LogLevel                    string
}

// LoadDefaults populates Config with development defaults. The secret has
// no default.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8000"
	c.DatabaseDriver = "sqlite"
	c.DatabaseDSN = "accounts.db"
	c.SecretKey = ""
	c.AccessTokenValidityDuration = 24 * time.Hour
	c.PasswordHashCost = bcrypt.DefaultCost
	c.AdminUserName = ""
	c.AdminPassword = ""
	c.LogLevel = "info"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, command-line flags and finally environment
// variables.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	parseEnv(cfg)
	return cfg
}

// Validate reports settings the server cannot run with.
func (c *Config) Validate() error {
	if c.SecretKey == "" {
		return fmt.Errorf("%w: secret key is not set", common.ErrorConfig)
	}
	if c.AccessTokenValidityDuration <= 0 {
		return fmt.Errorf("%w: access token validity must be positive", common.ErrorConfig)
	}
	if c.EndpointAddrHTTP == "" {
		return fmt.Errorf("%w: listen address is not set", common.ErrorConfig)
	}
	return nil
}

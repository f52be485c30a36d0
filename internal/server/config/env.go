package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const envPrefix = "GOPHACCOUNTS_"

// parseEnv overlays GOPHACCOUNTS_* environment variables onto config. It
// runs last.
//
//	GOPHACCOUNTS_ADDRESS            HTTP bind address
//	GOPHACCOUNTS_DATABASE_DRIVER    sqlite, postgres or memory
//	GOPHACCOUNTS_DATABASE_DSN       database DSN
//	GOPHACCOUNTS_SECRET_KEY         token HMAC secret
//	GOPHACCOUNTS_ACCESS_TOKEN_TTL   Go duration, e.g. "24h"
//	GOPHACCOUNTS_PASSWORD_HASH_COST bcrypt cost
//	GOPHACCOUNTS_ADMIN_USERNAME     admin user created at startup
//	GOPHACCOUNTS_ADMIN_PASSWORD     admin password
//	GOPHACCOUNTS_LOG_LEVEL          log level
//
// Malformed numeric or duration values panic, like malformed flags.
func parseEnv(config *Config) {
	lookupString("ADDRESS", &config.EndpointAddrHTTP)
	lookupString("DATABASE_DRIVER", &config.DatabaseDriver)
	lookupString("DATABASE_DSN", &config.DatabaseDSN)
	lookupString("SECRET_KEY", &config.SecretKey)
	lookupString("ADMIN_USERNAME", &config.AdminUserName)
	lookupString("ADMIN_PASSWORD", &config.AdminPassword)
	lookupString("LOG_LEVEL", &config.LogLevel)

	if v, ok := os.LookupEnv(envPrefix + "ACCESS_TOKEN_TTL"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(fmt.Errorf("%sACCESS_TOKEN_TTL: %w", envPrefix, err))
		}
		config.AccessTokenValidityDuration = d
	}

	if v, ok := os.LookupEnv(envPrefix + "PASSWORD_HASH_COST"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			panic(fmt.Errorf("%sPASSWORD_HASH_COST: %w", envPrefix, err))
		}
		config.PasswordHashCost = n
	}
}

func lookupString(name string, dst *string) {
	if v, ok := os.LookupEnv(envPrefix + name); ok {
		*dst = v
	}
}

package config

import (
	"os"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophaccounts/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":8000", c.EndpointAddrHTTP)
	assert.Equal(t, "sqlite", c.DatabaseDriver)
	assert.Equal(t, "accounts.db", c.DatabaseDSN)
	assert.Empty(t, c.SecretKey)
	assert.Equal(t, 24*time.Hour, c.AccessTokenValidityDuration)
	assert.Equal(t, bcrypt.DefaultCost, c.PasswordHashCost)
	assert.Empty(t, c.AdminUserName)
	assert.Empty(t, c.AdminPassword)
	assert.Equal(t, "info", c.LogLevel)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	c := LoadConfig()

	require.NotNil(t, c, "LoadConfig must not return nil")
	assert.Equal(t, ":8000", c.EndpointAddrHTTP)
	assert.Equal(t, 24*time.Hour, c.AccessTokenValidityDuration)
}

func TestLoadConfig_EnvWinsOverFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin", "-s", "from-flag", "-a", ":9000"}
	t.Setenv("GOPHACCOUNTS_SECRET_KEY", "from-env")

	c := LoadConfig()

	assert.Equal(t, "from-env", c.SecretKey)
	assert.Equal(t, ":9000", c.EndpointAddrHTTP)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		c := &Config{}
		c.LoadDefaults()
		c.SecretKey = "k"
		return c
	}

	require.NoError(t, valid().Validate())

	noSecret := valid()
	noSecret.SecretKey = ""
	require.ErrorIs(t, noSecret.Validate(), common.ErrorConfig)

	noTTL := valid()
	noTTL.AccessTokenValidityDuration = 0
	require.ErrorIs(t, noTTL.Validate(), common.ErrorConfig)

	noAddr := valid()
	noAddr.EndpointAddrHTTP = ""
	require.ErrorIs(t, noAddr.Validate(), common.ErrorConfig)
}

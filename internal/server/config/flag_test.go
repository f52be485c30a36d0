package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "all flags", args: []string{"cmd",
			"-a", "127.0.0.1:9090", "-t", "postgres", "-d", "db", "-s", "secret",
			"-e", "60", "-k", "12", "-u", "admin", "-p", "password", "-l", "debug",
		}, expectPanic: false,
			expected: &Config{
				EndpointAddrHTTP:            "127.0.0.1:9090",
				DatabaseDriver:              "postgres",
				DatabaseDSN:                 "db",
				SecretKey:                   "secret",
				AccessTokenValidityDuration: time.Hour,
				PasswordHashCost:            12,
				AdminUserName:               "admin",
				AdminPassword:               "password",
				LogLevel:                    "debug",
			}},
		{name: "bad ttl", args: []string{"cmd", "-e", "soon"}, expectPanic: true},
		{name: "bad cost", args: []string{"cmd", "-k", "high"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := &Config{}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(config, tt.expected))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}

func TestParseFlags_KeepsValuesWhenAbsent(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"cmd", "-unrelated", "x"}

	config := &Config{}
	config.LoadDefaults()
	want := *config

	parseFlags(config)
	assert.Empty(t, cmp.Diff(&want, config))
}

func TestParseFlags_SubMinuteTTLSurvivesWithoutFlag(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"cmd", "-s", "x"}

	config := &Config{AccessTokenValidityDuration: 90 * time.Second}
	parseFlags(config)

	assert.Equal(t, 90*time.Second, config.AccessTokenValidityDuration)
}

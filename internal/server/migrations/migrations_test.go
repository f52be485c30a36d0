package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrations(t *testing.T) {
	for name, fsys := range map[string]fs.FS{"postgres": Postgres, "sqlite": SQLite} {
		t.Run(name, func(t *testing.T) {
			files, err := fs.Glob(fsys, "*.sql")
			require.NoError(t, err)
			require.NotEmpty(t, files)

			b, err := fs.ReadFile(fsys, files[0])
			require.NoError(t, err)
			require.True(t, strings.Contains(string(b), "-- +goose Up"))
			require.True(t, strings.Contains(string(b), "username"))
		})
	}
}

package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gophaccounts/internal/common"
	"github.com/dmitrijs2005/gophaccounts/internal/server/models"
	"github.com/dmitrijs2005/gophaccounts/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func stubGoose(t *testing.T, fn func(ctx context.Context, dialect goose.Dialect, db *sql.DB, fsys fs.FS) error) {
	t.Helper()
	orig := gooseUpContext
	gooseUpContext = fn
	t.Cleanup(func() { gooseUpContext = orig })
}

func TestFactories_ReturnConcreteRepos(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	_, ok := NewPostgresRepositoryManager().Users(db).(*users.PostgresRepository)
	assert.True(t, ok)

	_, ok = NewSQLiteRepositoryManager().Users(db).(*users.SQLiteRepository)
	assert.True(t, ok)

	m := NewMemoryRepositoryManager()
	_, ok = m.Users(nil).(*users.MemoryRepository)
	assert.True(t, ok)
	assert.Same(t, m.Users(nil), m.Users(db), "memory manager must share one repository")
}

func TestPostgresRunMigrations_UsesPostgresDialect(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	var got goose.Dialect
	stubGoose(t, func(ctx context.Context, dialect goose.Dialect, db *sql.DB, fsys fs.FS) error {
		got = dialect
		if fsys == nil {
			return errors.New("no migrations")
		}
		return nil
	})

	require.NoError(t, NewPostgresRepositoryManager().RunMigrations(context.Background(), db))
	assert.Equal(t, goose.DialectPostgres, got)
}

func TestPostgresRunMigrations_Error(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	stubGoose(t, func(context.Context, goose.Dialect, *sql.DB, fs.FS) error {
		return errors.New("boom")
	})

	err := NewPostgresRepositoryManager().RunMigrations(context.Background(), db)
	require.EqualError(t, err, "boom")
}

func TestMemoryRunMigrations_NoOp(t *testing.T) {
	require.NoError(t, NewMemoryRepositoryManager().RunMigrations(context.Background(), nil))
}

func TestOpen_Memory(t *testing.T) {
	db, m, err := Open(context.Background(), DriverMemory, "")
	require.NoError(t, err)
	assert.Nil(t, db)
	assert.IsType(t, &MemoryRepositoryManager{}, m)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, _, err := Open(context.Background(), "oracle", "dsn")
	require.ErrorIs(t, err, common.ErrorConfig)
}

func TestOpen_SQLiteInMemory(t *testing.T) {
	ctx := context.Background()

	db, m, err := Open(ctx, DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := m.Users(db)
	_, err = repo.Create(ctx, &models.User{UserName: "alice", HashedPassword: "h"})
	require.NoError(t, err)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestOpen_MigrationFailureClosesDB(t *testing.T) {
	stubGoose(t, func(context.Context, goose.Dialect, *sql.DB, fs.FS) error {
		return errors.New("boom")
	})

	_, _, err := Open(context.Background(), DriverSQLite, ":memory:")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migration error")
}

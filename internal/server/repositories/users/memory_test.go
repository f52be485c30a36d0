package users

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/gophaccounts/internal/common"
	"github.com/dmitrijs2005/gophaccounts/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_CreateGetList(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	_, err := repo.GetUserByLogin(ctx, "bob")
	require.ErrorIs(t, err, common.ErrorNotFound)

	for _, name := range []string{"bob", "alice"} {
		u, err := repo.Create(ctx, &models.User{UserName: name, HashedPassword: "h-" + name})
		require.NoError(t, err)
		assert.NotEmpty(t, u.ID)
	}

	_, err = repo.Create(ctx, &models.User{UserName: "bob", HashedPassword: "other"})
	require.ErrorIs(t, err, common.ErrorConflict)

	got, err := repo.GetUserByLogin(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, "h-bob", got.HashedPassword)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "alice", list[0].UserName)
	assert.Equal(t, "bob", list[1].UserName)
}

func TestMemory_ReturnsCopies(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	_, err := repo.Create(ctx, &models.User{UserName: "alice", HashedPassword: "h"})
	require.NoError(t, err)

	got, err := repo.GetUserByLogin(ctx, "alice")
	require.NoError(t, err)
	got.HashedPassword = "tampered"

	again, err := repo.GetUserByLogin(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "h", again.HashedPassword)
}

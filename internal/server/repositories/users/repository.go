// Package users implements the user directory: the store of username and
// password-hash records the account service depends on.
package users

import (
	"context"

	"github.com/dmitrijs2005/gophaccounts/internal/server/models"
)

// Repository is the directory contract.
//
// Create reports common.ErrorConflict when the username is already taken;
// the check is enforced by the storage itself, so concurrent creates for
// the same name cannot both succeed. GetUserByLogin reports
// common.ErrorNotFound when no record exists. List returns all records
// ordered by username.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
}

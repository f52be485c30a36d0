package client

import (
	"context"

	"github.com/dmitrijs2005/gophaccounts/internal/client/models"
)

type Client interface {
	Close() error
	Register(ctx context.Context, username, password string) error
	Login(ctx context.Context, username, password string) (string, error)
	Me(ctx context.Context, token string) (string, error)
	ListUsers(ctx context.Context, token string) ([]*models.User, error)
	Ping(ctx context.Context) error
}

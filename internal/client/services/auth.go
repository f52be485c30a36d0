// Package services contains application services for the account CLI.
// This file defines the authentication service: register, login, identity
// and directory queries, liveness probe, and the locally cached session.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophaccounts/internal/client/client"
	"github.com/dmitrijs2005/gophaccounts/internal/client/models"
	"github.com/dmitrijs2005/gophaccounts/internal/client/repositories/session"
	"github.com/dmitrijs2005/gophaccounts/internal/dbx"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Register: create a new user on the server.
//   - Login: obtain a token from the server and cache the session locally.
//   - Session: report the username of the cached session, "" if none.
//   - Me / ListUsers: authenticated queries using the cached token.
//   - Ping: check server liveness.
//   - Logout: wipe the cached session.
//   - Close: release underlying client resources.
type AuthService interface {
	Register(ctx context.Context, username string, password []byte) error
	Login(ctx context.Context, username string, password []byte) error
	Session(ctx context.Context) (string, error)
	Me(ctx context.Context) (string, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	Ping(ctx context.Context) error
	Logout(ctx context.Context) error
	Close(ctx context.Context) error
}

// authService is the concrete AuthService backed by a remote Client and a
// local SQL database holding the session.
type authService struct {
	client client.Client
	db     *sql.DB
}

// NewAuthService constructs an AuthService bound to the given API client and DB.
func NewAuthService(client client.Client, db *sql.DB) AuthService {
	return &authService{client: client, db: db}
}

func (a *authService) getSessionRepo(db dbx.DBTX) session.Repository {
	return session.NewSQLiteRepository(db)
}

// Register creates a new account on the server.
func (a *authService) Register(ctx context.Context, username string, password []byte) error {
	return a.client.Register(ctx, username, string(password))
}

// Login authenticates against the server and saves username and token in a
// single transaction.
func (a *authService) Login(ctx context.Context, username string, password []byte) error {
	token, err := a.client.Login(ctx, username, string(password))
	if err != nil {
		return fmt.Errorf("login error: %w", err)
	}

	if err := a.saveSession(ctx, username, token); err != nil {
		return fmt.Errorf("session saving error: %w", err)
	}
	return nil
}

func (a *authService) saveSession(ctx context.Context, username, token string) error {
	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := a.getSessionRepo(tx)
		if err := repo.Set(ctx, session.KeyUserName, username); err != nil {
			return err
		}
		return repo.Set(ctx, session.KeyAccessToken, token)
	})
}

func (a *authService) Session(ctx context.Context) (string, error) {
	return a.getSessionRepo(a.db).Get(ctx, session.KeyUserName)
}

func (a *authService) token(ctx context.Context) (string, error) {
	token, err := a.getSessionRepo(a.db).Get(ctx, session.KeyAccessToken)
	if err != nil {
		return "", err
	}
	if token == "" {
		return "", client.ErrLocalDataNotAvailable
	}
	return token, nil
}

// Me asks the server whom the cached token belongs to. A rejected token
// clears the session.
func (a *authService) Me(ctx context.Context) (string, error) {
	token, err := a.token(ctx)
	if err != nil {
		return "", err
	}

	name, err := a.client.Me(ctx, token)
	if err != nil {
		return "", a.dropSessionOnUnauthorized(ctx, err)
	}
	return name, nil
}

// ListUsers fetches the user directory with the cached token. A rejected
// token clears the session.
func (a *authService) ListUsers(ctx context.Context) ([]*models.User, error) {
	token, err := a.token(ctx)
	if err != nil {
		return nil, err
	}

	users, err := a.client.ListUsers(ctx, token)
	if err != nil {
		return nil, a.dropSessionOnUnauthorized(ctx, err)
	}
	return users, nil
}

func (a *authService) dropSessionOnUnauthorized(ctx context.Context, err error) error {
	if errors.Is(err, client.ErrUnauthorized) {
		if clearErr := a.Logout(ctx); clearErr != nil {
			return errors.Join(err, clearErr)
		}
	}
	return err
}

// Ping proxies a liveness check to the underlying client.
func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

// Logout wipes the locally cached session.
func (a *authService) Logout(ctx context.Context) error {
	return a.getSessionRepo(a.db).Clear(ctx)
}

// Close releases resources held by the underlying client.
func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}

// Package services contains server-side business logic. This file implements
// UserService, which registers accounts, checks credentials and issues and
// validates bearer tokens.
package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/dmitrijs2005/gophaccounts/internal/common"
	"github.com/dmitrijs2005/gophaccounts/internal/dbx"
	"github.com/dmitrijs2005/gophaccounts/internal/logging"
	"github.com/dmitrijs2005/gophaccounts/internal/server/auth"
	"github.com/dmitrijs2005/gophaccounts/internal/server/metrics"
	"github.com/dmitrijs2005/gophaccounts/internal/server/models"
	"github.com/dmitrijs2005/gophaccounts/internal/server/repositories/repomanager"
)

// UserService provides the account operations:
// - Register: create users with a hashed password
// - Login: verify credentials and mint an access token
// - Identify: resolve an access token to its username
// - ListUsers: return the directory to an authenticated caller
type UserService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	hasher                      *auth.Hasher
	issuer                      *auth.Issuer
	validator                   *auth.Validator
	accessTokenValidityDuration time.Duration
	logger                      logging.Logger
	metrics                     *metrics.Metrics
}

// NewUserService wires the service. db may be nil when the repository
// manager does not need one (the in-memory driver); m may be nil to skip
// metrics.
func NewUserService(
	db *sql.DB,
	rm repomanager.RepositoryManager,
	hasher *auth.Hasher,
	issuer *auth.Issuer,
	validator *auth.Validator,
	ttl time.Duration,
	logger logging.Logger,
	m *metrics.Metrics,
) *UserService {
	if logger == nil {
		logger = logging.Nop{}
	}
	return &UserService{
		db:                          db,
		repomanager:                 rm,
		hasher:                      hasher,
		issuer:                      issuer,
		validator:                   validator,
		accessTokenValidityDuration: ttl,
		logger:                      logger,
		metrics:                     m,
	}
}

// Register creates a user with the given username and a bcrypt hash of
// password. An existing username yields common.ErrorAlreadyExists, including
// when a concurrent registration wins the race inside the store.
//
// Hashing runs before the transaction; the transaction covers only the
// lookup and the insert.
func (s *UserService) Register(ctx context.Context, username, password string) (*models.User, error) {
	var created *models.User

	hashed, err := s.hash(password)
	if err == nil {
		err = s.withTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
			var err error
			created, err = s.createUser(ctx, tx, username, hashed)
			return err
		})
	}

	switch {
	case err == nil:
		s.metrics.ObserveAuth(metrics.OpRegister, metrics.OutcomeSuccess)
		s.logger.Info(ctx, "user registered", "username", username)
		return created, nil
	case errors.Is(err, common.ErrorAlreadyExists):
		s.metrics.ObserveAuth(metrics.OpRegister, metrics.OutcomeAlreadyExists)
		s.logger.Info(ctx, "username already taken", "username", username)
		return nil, common.ErrorAlreadyExists
	default:
		s.metrics.ObserveAuth(metrics.OpRegister, metrics.OutcomeError)
		s.logger.Error(ctx, "error creating user", "username", username, "error", err)
		return nil, common.ErrorInternal
	}
}

// Login verifies the credentials and returns a signed access token whose
// subject is the username. Unknown users and wrong passwords are
// indistinguishable: both yield common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, username, password string) (string, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetUserByLogin(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.metrics.ObserveAuth(metrics.OpLogin, metrics.OutcomeUnauthorized)
			s.logger.Info(ctx, "login failed", "username", username)
			return "", common.ErrorUnauthorized
		}
		s.metrics.ObserveAuth(metrics.OpLogin, metrics.OutcomeError)
		s.logger.Error(ctx, "error searching user", "username", username, "error", err)
		return "", common.ErrorInternal
	}

	if !s.verify(password, user.HashedPassword) {
		s.metrics.ObserveAuth(metrics.OpLogin, metrics.OutcomeUnauthorized)
		s.logger.Info(ctx, "login failed", "username", username)
		return "", common.ErrorUnauthorized
	}

	token, err := s.issuer.Issue(map[string]any{auth.ClaimSubject: user.UserName}, s.accessTokenValidityDuration)
	if err != nil {
		s.metrics.ObserveAuth(metrics.OpLogin, metrics.OutcomeError)
		s.logger.Error(ctx, "error issuing token", "error", err)
		if errors.Is(err, common.ErrorConfig) {
			return "", common.ErrorConfig
		}
		return "", common.ErrorInternal
	}

	s.metrics.ObserveAuth(metrics.OpLogin, metrics.OutcomeSuccess)
	s.logger.Info(ctx, "user logged in", "username", username)
	return token, nil
}

// Identify returns the username carried by a valid access token. The user
// record is not consulted: a token stays valid until it expires.
func (s *UserService) Identify(ctx context.Context, token string) (string, error) {
	claims, err := s.validator.Verify(token)
	if err != nil {
		s.metrics.ObserveAuth(metrics.OpIdentify, metrics.OutcomeUnauthorized)
		s.logger.Debug(ctx, "token rejected", "error", err)
		return "", common.ErrorUnauthorized
	}

	username, ok := auth.SubjectFromClaims(claims)
	if !ok {
		s.metrics.ObserveAuth(metrics.OpIdentify, metrics.OutcomeUnauthorized)
		s.logger.Debug(ctx, "token has no subject")
		return "", common.ErrorUnauthorized
	}

	s.metrics.ObserveAuth(metrics.OpIdentify, metrics.OutcomeSuccess)
	return username, nil
}

// ListUsers returns every user record, hashes included, to any holder of
// a valid token.
func (s *UserService) ListUsers(ctx context.Context, token string) ([]*models.User, error) {
	caller, err := s.Identify(ctx, token)
	if err != nil {
		s.metrics.ObserveAuth(metrics.OpListUsers, metrics.OutcomeUnauthorized)
		return nil, err
	}

	list, err := s.repomanager.Users(s.db).List(ctx)
	if err != nil {
		s.metrics.ObserveAuth(metrics.OpListUsers, metrics.OutcomeError)
		s.logger.Error(ctx, "error listing users", "error", err)
		return nil, common.ErrorInternal
	}

	s.metrics.ObserveAuth(metrics.OpListUsers, metrics.OutcomeSuccess)
	s.logger.Debug(ctx, "users listed", "caller", caller, "count", len(list))
	return list, nil
}

// EnsureUser registers username unless it already exists. An empty
// username is a no-op.
func (s *UserService) EnsureUser(ctx context.Context, username, password string) error {
	if username == "" {
		return nil
	}
	_, err := s.Register(ctx, username, password)
	if err != nil && !errors.Is(err, common.ErrorAlreadyExists) {
		return err
	}
	return nil
}

// --- helpers below ---

// withTx runs fn in a transaction, or directly against the repository
// manager when there is no database.
func (s *UserService) withTx(ctx context.Context, fn func(ctx context.Context, tx dbx.DBTX) error) error {
	if s.db == nil {
		return fn(ctx, nil)
	}
	return dbx.WithTx(ctx, s.db, nil, fn)
}

func (s *UserService) createUser(ctx context.Context, tx dbx.DBTX, username, hashed string) (*models.User, error) {
	repo := s.repomanager.Users(tx)

	_, err := repo.GetUserByLogin(ctx, username)
	if err == nil {
		return nil, common.ErrorAlreadyExists
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, err
	}

	created, err := repo.Create(ctx, &models.User{UserName: username, HashedPassword: hashed})
	if errors.Is(err, common.ErrorConflict) {
		return nil, common.ErrorAlreadyExists
	}
	return created, err
}

func (s *UserService) hash(password string) (string, error) {
	start := time.Now()
	defer func() { s.metrics.ObserveHash(time.Since(start)) }()
	return s.hasher.Hash(password)
}

func (s *UserService) verify(password, hashed string) bool {
	start := time.Now()
	defer func() { s.metrics.ObserveHash(time.Since(start)) }()
	return s.hasher.Verify(password, hashed)
}

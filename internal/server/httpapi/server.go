// Package httpapi exposes the account service over HTTP with fiber.
package httpapi

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gophaccounts/internal/logging"
	"github.com/dmitrijs2005/gophaccounts/internal/server/metrics"
	"github.com/dmitrijs2005/gophaccounts/internal/server/models"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
)

const shutdownTimeout = 5 * time.Second

// AccountService is the business API the handlers call.
type AccountService interface {
	Register(ctx context.Context, username, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (string, error)
	Identify(ctx context.Context, token string) (string, error)
	ListUsers(ctx context.Context, token string) ([]*models.User, error)
}

type HTTPServer struct {
	address string
	users   AccountService
	logger  logging.Logger
	metrics *metrics.Metrics
	app     *fiber.App
}

func NewHTTPServer(a string, l logging.Logger, us AccountService, m *metrics.Metrics) *HTTPServer {
	s := &HTTPServer{
		address: a,
		logger:  l.With("module", "http_server"),
		users:   us,
		metrics: m,
	}

	s.app = fiber.New(fiber.Config{
		AppName:               "gophaccounts",
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})

	s.routes()

	return s
}

// App returns the underlying fiber application.
func (s *HTTPServer) App() *fiber.App {
	return s.app
}

func (s *HTTPServer) routes() {
	s.app.Use(requestID, s.accessLog)

	s.app.Post("/register", s.register)
	s.app.Post("/token", s.token)
	s.app.Get("/me", requireBearer, s.me)
	s.app.Get("/users/", requireBearer, s.listUsers)
	s.app.Get("/items/:item_id", s.readItem)
	s.app.Get("/ping", s.ping)

	if s.metrics != nil {
		s.app.Get("/metrics", adaptor.HTTPHandler(s.metrics.Handler()))
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info(ctx, "Starting HTTP server", "address", s.address)
		errCh <- s.app.Listen(s.address)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return s.app.ShutdownWithContext(shutdownCtx)
}

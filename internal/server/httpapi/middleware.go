package httpapi

import (
	"strings"
	"time"

	"github.com/dmitrijs2005/gophaccounts/internal/common"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type localsKey string

const (
	requestIDKey   localsKey = "requestID"
	accessTokenKey localsKey = "accessToken"
)

// requestID propagates the caller's X-Request-ID or assigns a new one.
func requestID(c *fiber.Ctx) error {
	id := c.Get(common.RequestIDHeaderName)
	if id == "" {
		id = uuid.NewString()
	}
	c.Locals(requestIDKey, id)
	c.Set(common.RequestIDHeaderName, id)
	return c.Next()
}

// accessLog renders handler errors itself so the logged and counted status
// is the one the client receives.
func (s *HTTPServer) accessLog(c *fiber.Ctx) error {
	start := time.Now()

	if err := c.Next(); err != nil {
		if herr := c.App().ErrorHandler(c, err); herr != nil {
			_ = c.SendStatus(fiber.StatusInternalServerError)
		}
	}

	status := c.Response().StatusCode()
	route := c.Route().Path

	s.metrics.ObserveHTTP(c.Method(), route, status)
	s.logger.Info(c.UserContext(), "request",
		"request_id", c.Locals(requestIDKey),
		"method", c.Method(),
		"path", c.Path(),
		"route", route,
		"status", status,
		"duration", time.Since(start),
	)

	return nil
}

// requireBearer rejects requests without a bearer token and stores the
// token for the handler.
func requireBearer(c *fiber.Ctx) error {
	token, ok := bearerToken(c.Get(common.AuthorizationHeaderName))
	if !ok {
		return unauthorized(c, detailNotAuthenticated)
	}
	c.Locals(accessTokenKey, token)
	return c.Next()
}

// bearerToken extracts the credentials of an "Authorization: Bearer <token>"
// header value. The scheme is case-insensitive.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, common.BearerScheme) {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	return token, true
}

func accessToken(c *fiber.Ctx) string {
	token, _ := c.Locals(accessTokenKey).(string)
	return token
}

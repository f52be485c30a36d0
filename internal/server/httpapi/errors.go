package httpapi

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

const (
	detailUserCreated        = "User created successfully"
	detailUsernameTaken      = "Username already taken"
	detailInvalidCredentials = "Invalid credentials"
	detailInvalidToken       = "Invalid token"
	detailNotAuthenticated   = "Not authenticated"
	detailInternal           = "internal error"
)

type detailResponse struct {
	Detail any `json:"detail"`
}

// errorHandler turns errors escaping the handlers into {"detail": ...}.
// Anything that is not a *fiber.Error is reported as a bare 500.
func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(detailResponse{Detail: utils.StatusMessage(fe.Code)})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(detailResponse{Detail: detailInternal})
}

func unauthorized(c *fiber.Ctx, detail string) error {
	c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
	return c.Status(fiber.StatusUnauthorized).JSON(detailResponse{Detail: detail})
}

func unprocessable(c *fiber.Ctx, detail any) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(detailResponse{Detail: detail})
}

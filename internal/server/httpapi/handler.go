package httpapi

import (
	"errors"

	"github.com/dmitrijs2005/gophaccounts/internal/common"
	"github.com/dmitrijs2005/gophaccounts/internal/server/models"
	"github.com/gofiber/fiber/v2"
)

type messageResponse struct {
	Msg string `json:"msg"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type meResponse struct {
	UserName string `json:"username"`
}

type itemResponse struct {
	ItemID int     `json:"item_id"`
	Q      *string `json:"q"`
}

type statusResponse struct {
	Status string `json:"status"`
}

func credentials(c *fiber.Ctx) credentialsPayload {
	// FormValue looks at the query string first, then the body.
	return credentialsPayload{
		UserName: c.FormValue("username"),
		Password: c.FormValue("password"),
	}
}

func (s *HTTPServer) register(c *fiber.Ctx) error {
	payload := credentials(c)
	if err := payload.Validate(); err != nil {
		return unprocessable(c, err)
	}

	_, err := s.users.Register(c.UserContext(), payload.UserName, payload.Password)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return c.Status(fiber.StatusBadRequest).JSON(detailResponse{Detail: detailUsernameTaken})
		}
		return err
	}

	return c.JSON(messageResponse{Msg: detailUserCreated})
}

func (s *HTTPServer) token(c *fiber.Ctx) error {
	payload := credentials(c)
	if err := payload.ValidateLogin(); err != nil {
		return unprocessable(c, err)
	}

	token, err := s.users.Login(c.UserContext(), payload.UserName, payload.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			return unauthorized(c, detailInvalidCredentials)
		}
		return err
	}

	return c.JSON(tokenResponse{AccessToken: token, TokenType: common.BearerScheme})
}

func (s *HTTPServer) me(c *fiber.Ctx) error {
	username, err := s.users.Identify(c.UserContext(), accessToken(c))
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			return unauthorized(c, detailInvalidToken)
		}
		return err
	}

	return c.JSON(meResponse{UserName: username})
}

func (s *HTTPServer) listUsers(c *fiber.Ctx) error {
	users, err := s.users.ListUsers(c.UserContext(), accessToken(c))
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			return unauthorized(c, detailInvalidToken)
		}
		return err
	}
	if users == nil {
		users = []*models.User{}
	}

	return c.JSON(users)
}

func (s *HTTPServer) readItem(c *fiber.Ctx) error {
	id, err := c.ParamsInt("item_id")
	if err != nil {
		return unprocessable(c, map[string]string{"item_id": "must be an integer"})
	}

	resp := itemResponse{ItemID: id}
	if c.Request().URI().QueryArgs().Has("q") {
		q := c.Query("q")
		resp.Q = &q
	}

	return c.JSON(resp)
}

func (s *HTTPServer) ping(c *fiber.Ctx) error {
	return c.JSON(statusResponse{Status: "OK"})
}

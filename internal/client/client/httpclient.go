package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophaccounts/internal/client/models"
	"github.com/dmitrijs2005/gophaccounts/internal/common"
)

const defaultTimeout = 10 * time.Second

type HTTPClient struct {
	endpointURL string
	httpClient  *http.Client
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient returns a client for the server at endpointURL, for example
// "http://127.0.0.1:8000".
func NewHTTPClient(endpointURL string) (*HTTPClient, error) {
	u, err := url.Parse(endpointURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server address: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid server address %q: scheme must be http or https", endpointURL)
	}

	return &HTTPClient{
		endpointURL: strings.TrimRight(endpointURL, "/"),
		httpClient:  &http.Client{Timeout: defaultTimeout},
	}, nil
}

func (c *HTTPClient) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type meResponse struct {
	UserName string `json:"username"`
}

type errorResponse struct {
	Detail any `json:"detail"`
}

func (c *HTTPClient) Register(ctx context.Context, username, password string) error {
	form := url.Values{"username": {username}, "password": {password}}
	return c.do(ctx, http.MethodPost, "/register", form, "", nil)
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) (string, error) {
	form := url.Values{"username": {username}, "password": {password}}

	var resp tokenResponse
	if err := c.do(ctx, http.MethodPost, "/token", form, "", &resp); err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

func (c *HTTPClient) Me(ctx context.Context, token string) (string, error) {
	var resp meResponse
	if err := c.do(ctx, http.MethodGet, "/me", nil, token, &resp); err != nil {
		return "", err
	}
	return resp.UserName, nil
}

func (c *HTTPClient) ListUsers(ctx context.Context, token string) ([]*models.User, error) {
	var users []*models.User
	if err := c.do(ctx, http.MethodGet, "/users/", nil, token, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/ping", nil, "", nil)
}

// do sends a request and decodes a 200 response into out. form, when
// non-nil, is sent url-encoded in the body.
func (c *HTTPClient) do(ctx context.Context, method, path string, form url.Values, token string, out any) error {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpointURL+path, body)
	if err != nil {
		return err
	}
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+token)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		if out == nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, detail(resp.Body))
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrAlreadyExists, detail(resp.Body))
	case http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", ErrInvalidInput, detail(resp.Body))
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	default:
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, detail(resp.Body))
	}
}

// detail renders the server's {"detail": ...} payload for error messages.
func detail(r io.Reader) string {
	var e errorResponse
	if err := json.NewDecoder(r).Decode(&e); err != nil || e.Detail == nil {
		return "no detail"
	}
	if s, ok := e.Detail.(string); ok {
		return s
	}
	b, err := json.Marshal(e.Detail)
	if err != nil {
		return "no detail"
	}
	return string(b)
}

// Package common defines shared constants and sentinel errors used across
// client and server layers of the account service. Callers should use
// errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")
	ErrorConflict = errors.New("conflict")

	// Service-level errors. Every failure that reaches the transport layer
	// is one of these.
	ErrorInternal      = errors.New("internal error")
	ErrorUnauthorized  = errors.New("unauthorized")
	ErrorAlreadyExists = errors.New("already exists")
	ErrorConfig        = errors.New("configuration error")

	// Token errors. Malformed, forged and expired tokens all map to
	// ErrInvalidToken.
	ErrInvalidToken = errors.New("invalid token")
)

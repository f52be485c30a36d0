// Package client contains client-side building blocks for the account CLI.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) to talk
//     to the account server: Register, Login, Me, ListUsers and Ping.
//  2. A concrete HTTP implementation (see HTTPClient) that speaks the
//     server's form/JSON protocol and maps status codes to sentinel errors.
//  3. Local persistence bootstrap utilities (InitDatabase, RunMigrations) for
//     the CLI session store, wiring an SQLite database and applying embedded
//     goose migrations.
//
// # Error Handling
//
// Common conditions are exposed as sentinel errors that callers can match with
// errors.Is: ErrUnavailable, ErrUnauthorized, ErrAlreadyExists,
// ErrInvalidInput, ErrLocalDataNotAvailable.
//
// All operations accept context.Context and honor cancellation/timeouts.
package client

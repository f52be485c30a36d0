package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/dmitrijs2005/gophaccounts/internal/client/client"
	"github.com/dmitrijs2005/gophaccounts/internal/common"
)

// Interactive input, swapped in tests.
var (
	promptLine        = PromptLine
	promptPassword    = PromptPassword
	promptNewPassword = PromptNewPassword
)

var errNotLoggedIn = errors.New("not logged in, use 'login' first")

func (a *App) writer() io.Writer {
	if a.out == nil {
		return os.Stdout
	}
	return a.out
}

// Register prompts for a username and a confirmed password and creates the
// account on the server. The password is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	userName, err := promptLine(a.reader, a.writer(), "Username")
	if err != nil {
		return err
	}

	password, err := promptNewPassword(a.writer())
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Register(ctx, userName, password); err != nil {
		if errors.Is(err, client.ErrAlreadyExists) {
			return fmt.Errorf("username %q is already taken", userName)
		}
		return err
	}

	fmt.Fprintln(a.writer(), "User created successfully")
	return nil
}

// Login prompts for credentials, obtains a token and caches the session.
func (a *App) Login(ctx context.Context) error {
	userName, err := promptLine(a.reader, a.writer(), "Username")
	if err != nil {
		return err
	}

	password, err := promptPassword(a.writer(), "Password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Login(ctx, userName, password); err != nil {
		if errors.Is(err, client.ErrUnavailable) {
			a.setMode(ModeOffline)
		}
		if errors.Is(err, client.ErrUnauthorized) {
			return errors.New("invalid credentials")
		}
		return err
	}

	a.userName = userName
	a.setMode(ModeOnline)
	fmt.Fprintln(a.writer(), "Login successful")
	return nil
}

// Me prints the username the server associates with the cached token.
func (a *App) Me(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}

	name, err := a.authService.Me(ctx)
	if err != nil {
		return a.handleAuthError(err)
	}

	fmt.Fprintf(a.writer(), "Logged in as %s\n", name)
	return nil
}

// Users prints the server's user directory.
func (a *App) Users(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}

	users, err := a.authService.ListUsers(ctx)
	if err != nil {
		return a.handleAuthError(err)
	}

	tw := tabwriter.NewWriter(a.writer(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tUSERNAME")
	for _, u := range users {
		fmt.Fprintf(tw, "%s\t%s\n", u.ID, u.UserName)
	}
	return tw.Flush()
}

// Logout removes the cached session.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	a.userName = ""
	fmt.Fprintln(a.writer(), "Logged out")
	return nil
}

// handleAuthError forgets the local login when the server rejected the
// token; the service has already cleared the cached session.
func (a *App) handleAuthError(err error) error {
	switch {
	case errors.Is(err, client.ErrUnauthorized):
		a.userName = ""
		return errors.New("session expired, please log in again")
	case errors.Is(err, client.ErrUnavailable):
		a.setMode(ModeOffline)
	}
	return err
}

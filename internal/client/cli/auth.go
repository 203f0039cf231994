package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/userdesk/internal/client/client"
	"github.com/dmitrijs2005/userdesk/internal/client/directory"
	"github.com/dmitrijs2005/userdesk/internal/client/session"
	"github.com/dmitrijs2005/userdesk/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

// Login prompts for credentials and authenticates. The session changes only
// on success; the password is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := validate.Struct(loginForm{Email: email, Password: password}); err != nil {
		return a.fail(ctx, "Login failed", formError(err))
	}

	if err := a.auth.Login(ctx, email, password); err != nil {
		if errors.Is(err, client.ErrAuthFailed) {
			return a.fail(ctx, "Login failed", err)
		}
		return a.fail(ctx, "Login failed, service unreachable", err)
	}

	a.email = email
	a.view = directory.NewListView(a.users)
	if err := a.auth.StorageError(); err != nil {
		a.logger.Warn(ctx, "token not persisted", "error", err)
	}
	a.logger.Info(ctx, "logged in", "email", email)
	a.success("Welcome back! Logged in as %s", email)
	return nil
}

// Logout forgets the token and drops the cached list.
func (a *App) Logout(ctx context.Context) error {
	a.auth.Logout(ctx)
	a.email = ""
	a.view = directory.NewListView(a.users)
	a.logger.Info(ctx, "logged out")
	a.success("Logged out")
	return nil
}

// Status prints session, storage and view state.
func (a *App) Status(ctx context.Context) error {
	if a.isLoggedIn() {
		a.println("Session:  authenticated")
	} else {
		a.println("Session:  anonymous")
	}

	storage := a.config.StorageKind
	switch s := a.storage.(type) {
	case *session.SQLiteStorage:
		storage += " (" + a.config.TokenDBPath() + ")"
		if at, ok := s.SavedAt(ctx); ok && a.isLoggedIn() {
			storage += ", token saved " + at.Local().Format("2006-01-02 15:04:05")
		}
	case *session.FileStorage:
		storage += " (" + s.Path() + ")"
	}
	a.println("Storage: ", storage)
	if err := a.auth.StorageError(); err != nil {
		a.println("          last error:", err)
	}

	page, data := a.view.Page()
	q := a.view.Query()
	a.printf("View:     %s, page %d of %d, sort %s", a.view.State(), page, data.TotalPages, q.Sort)
	if q.Search != "" {
		a.printf(", search %q", q.Search)
	}
	a.println()
	a.println(fmt.Sprintf("Selected: %d", len(a.view.Selected())))
	return nil
}

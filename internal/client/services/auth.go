// Package services contains application services for the userdesk console.
// This file defines the authentication service: login, logout and the
// session gate the console consults before protected commands.
package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/userdesk/internal/client/client"
	"github.com/dmitrijs2005/userdesk/internal/client/session"
	"github.com/dmitrijs2005/userdesk/internal/common"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: exchange credentials for a token; the session changes only on success.
//   - Logout: forget the token locally.
//   - IsAuthenticated: the session gate, true whenever a token is present.
//   - StorageError: last token persistence error, informational only.
type AuthService interface {
	Login(ctx context.Context, email string, password []byte) error
	Logout(ctx context.Context)
	IsAuthenticated() bool
	StorageError() error
}

type authService struct {
	client  client.Client
	session *session.Session
}

// NewAuthService binds the service to the API client and the session the
// client's pipeline writes to.
func NewAuthService(c client.Client, s *session.Session) AuthService {
	return &authService{client: c, session: s}
}

// Login wipes password once the request has been sent.
func (a *authService) Login(ctx context.Context, email string, password []byte) error {
	defer common.WipeByteArray(password)
	if _, err := a.client.Login(ctx, email, string(password)); err != nil {
		return fmt.Errorf("login error: %w", err)
	}
	return nil
}

func (a *authService) Logout(ctx context.Context) {
	a.client.Logout(ctx)
}

func (a *authService) IsAuthenticated() bool {
	return a.session.IsAuthenticated()
}

func (a *authService) StorageError() error {
	return a.session.LastStorageError()
}

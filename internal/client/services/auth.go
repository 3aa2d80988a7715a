// Package services contains application services for the machine client.
// This file defines the authentication service: register, login, session
// resume, liveness probe, and logout housekeeping.
package services

import (
	"context"
	"errors"
	"log"

	"github.com/dmitrijs2005/accmachine/internal/client/client"
	"github.com/dmitrijs2005/accmachine/internal/client/session"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Register: create a new user on the server.
//   - Login: authenticate against the server and persist the session.
//   - Resume: restore a previously saved session from disk.
//   - Logout: revoke server-side refresh tokens and drop the local session.
//   - Ping: check server liveness.
//
// All methods must honor context cancellation/timeouts.
type AuthService interface {
	Register(ctx context.Context, email string, password []byte) error
	Login(ctx context.Context, email string, password []byte) error
	Resume(ctx context.Context) (string, error)
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error
}

// authService is the concrete AuthService backed by a remote Client and a
// session Store for persistence between runs.
type authService struct {
	client client.Client
	store  *session.Store
	email  string
}

// NewAuthService constructs an AuthService bound to the given API client and
// session store. It hooks the client's token refresh notification so every
// rotated pair lands on disk immediately.
func NewAuthService(client client.Client, store *session.Store) AuthService {
	a := &authService{client: client, store: store}
	client.SetOnTokenRefresh(a.saveSession)
	return a
}

func (a *authService) saveSession(accessToken string, refreshToken string) {
	err := a.store.Save(session.Data{
		Email:        a.email,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
	if err != nil {
		log.Printf("error saving session: %v", err)
	}
}

// Register creates a new account on the server. The CLI signs in separately;
// registration alone does not start a session.
func (a *authService) Register(ctx context.Context, email string, password []byte) error {
	return a.client.Register(ctx, email, password)
}

// Login authenticates against the server. The token pair is persisted via
// the refresh hook, so the email must be in place before the call.
func (a *authService) Login(ctx context.Context, email string, password []byte) error {
	a.email = email
	if err := a.client.Login(ctx, email, password); err != nil {
		a.email = ""
		return err
	}
	return nil
}

// Resume loads the saved session and seeds the client with its token pair.
// Returns the signed-in email. The tokens are not validated here; an expired
// pair surfaces on the first authenticated call and refreshes as usual.
func (a *authService) Resume(ctx context.Context) (string, error) {
	data, err := a.store.Load()
	if err != nil {
		return "", err
	}

	a.email = data.Email
	a.client.SetTokens(data.AccessToken, data.RefreshToken)
	return data.Email, nil
}

// Logout revokes the server-side refresh tokens and removes the local
// session file. A dead session on the server still clears local state.
func (a *authService) Logout(ctx context.Context) error {
	if err := a.client.Logout(ctx); err != nil && !errors.Is(err, client.ErrUnauthorized) {
		return err
	}
	a.email = ""
	return a.store.Clear()
}

// Ping proxies a liveness check to the underlying client.
func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

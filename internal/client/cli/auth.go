package cli

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/dmitrijs2005/accmachine/internal/client/session"
	"github.com/dmitrijs2005/accmachine/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts the user for an email and password and attempts to create
// a new account via the AuthService.
//
// On success it prints "Success!" and returns nil. The password byte slice
// is securely wiped before returning.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Register(ctx, email, password); err != nil {
		log.Printf("Registration unsuccessfull: %s", err.Error())
		return err
	}

	printlnFn("Success!")
	return nil
}

// Login prompts the user for credentials and tries to authenticate. On
// success the session lands on disk and a.userName reflects the signed-in
// user. The password is securely wiped before returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Login(ctx, email, password); err != nil {
		log.Printf("Login unsuccessfull: %s", err.Error())
		return err
	}

	log.Printf("Login successfull")
	a.userName = email
	return nil
}

// Resume silently restores a previously saved session. A missing session
// file is not worth reporting; anything else is.
func (a *App) Resume(ctx context.Context) error {
	email, err := a.authService.Resume(ctx)
	if err != nil {
		if !errors.Is(err, session.ErrNoSession) {
			log.Printf("error restoring session: %s", err.Error())
		}
		return err
	}

	log.Printf("Resumed session for %s", email)
	a.userName = email
	return nil
}

// Logout revokes the session on the server, drops it locally, and clears the
// in-memory user name.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		log.Printf("Logout unsuccessfull: %s", err.Error())
		return err
	}
	a.userName = ""
	return nil
}

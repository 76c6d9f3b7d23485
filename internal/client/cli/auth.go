package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/triptracker/internal/client/models"
	"github.com/dmitrijs2005/triptracker/internal/client/session"
)

// getSimpleText, getPassword and getLines are indirections used to facilitate
// testing. They point to interactive input helpers and can be swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getLines      = GetLines
)

// Register prompts for the account fields and creates the account. It does
// not log in.
func (a *App) Register(ctx context.Context, _ []string) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer clear(password)

	fields := models.Object{
		"email":    email,
		"username": username,
		"password": string(password),
	}
	if err := a.promptOptional(fields, "first_name", "Enter first name (optional)"); err != nil {
		return err
	}
	if err := a.promptOptional(fields, "last_name", "Enter last name (optional)"); err != nil {
		return err
	}

	if _, err := a.authService.Register(ctx, fields); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Success! You can now log in.")
	return nil
}

// Login prompts for credentials and stores the new session.
func (a *App) Login(ctx context.Context, _ []string) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer clear(password)

	u, err := a.authService.Login(ctx, email, string(password))
	if err != nil {
		a.log.Info(ctx, "login unsuccessful", "email", email)
		return err
	}

	a.log.Info(ctx, "login successful", "user_id", u.ID)
	fmt.Fprintf(a.out, "Logged in as %s\n", u.Email)
	return nil
}

// Logout ends the session on the server and drops it locally.
func (a *App) Logout(ctx context.Context, _ []string) error {
	a.activeTrip = ""
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// WhoAmI prints the cached user and what the stored token says about itself.
func (a *App) WhoAmI(ctx context.Context, _ []string) error {
	u, ok, err := a.authService.CurrentUser(ctx)
	if err != nil {
		return err
	}
	if ok {
		fmt.Fprintf(a.out, "User: %s (id %s)\n", u.Email, u.ID)
	} else {
		fmt.Fprintln(a.out, "User: unknown (run 'profile' to refresh)")
	}

	token, err := a.tokens.GetToken(ctx)
	if err != nil {
		return err
	}
	claims, err := session.PeekClaims(token)
	if err != nil {
		// opaque tokens are valid too
		a.log.Debug(ctx, "token is not a readable JWT", "error", err)
		return nil
	}
	if claims.Subject != "" {
		fmt.Fprintf(a.out, "Token subject: %s\n", claims.Subject)
	}
	if claims.ExpiresAt != nil {
		exp := claims.ExpiresAt.Time.UTC()
		state := "valid until"
		if now().After(exp) {
			state = "expired at"
		}
		fmt.Fprintf(a.out, "Token %s %s\n", state, exp.Format(time.RFC3339))
	}
	return nil
}

// promptOptional asks for a value and stores it under key when non-empty.
func (a *App) promptOptional(fields models.Object, key, prompt string) error {
	v, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return err
	}
	if v != "" {
		fields[key] = v
	}
	return nil
}

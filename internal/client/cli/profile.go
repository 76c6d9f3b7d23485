package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/triptracker/internal/client/models"
)

var errNothingToUpdate = errors.New("nothing to update")

// Profile fetches the profile from the server and prints it.
func (a *App) Profile(ctx context.Context, _ []string) error {
	u, err := a.authService.Profile(ctx)
	if err != nil {
		return err
	}
	return printJSON(a.out, u)
}

// ProfileUpdate prompts for profile fields; empty answers leave a field as is.
func (a *App) ProfileUpdate(ctx context.Context, _ []string) error {
	fields := models.Object{}
	for _, f := range []struct{ key, prompt string }{
		{"username", "New username (empty to keep)"},
		{"first_name", "New first name (empty to keep)"},
		{"last_name", "New last name (empty to keep)"},
	} {
		if err := a.promptOptional(fields, f.key, f.prompt); err != nil {
			return err
		}
	}
	if len(fields) == 0 {
		return errNothingToUpdate
	}

	u, err := a.authService.UpdateProfile(ctx, fields)
	if err != nil {
		return err
	}
	return printJSON(a.out, u)
}

// Package services contains application services for the trip tracker client.
// This file defines the authentication service: login, register, logout and
// the cached profile kept alongside the session token.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/triptracker/internal/client/api"
	"github.com/dmitrijs2005/triptracker/internal/client/client"
	"github.com/dmitrijs2005/triptracker/internal/client/models"
	"github.com/dmitrijs2005/triptracker/internal/client/session"
)

// ErrNoAccessToken is returned when a login response carries no token.
var ErrNoAccessToken = errors.New("login response carries no access token")

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: authenticate and persist token and user as one session.
//   - Register: create an account; does not log in.
//   - Logout: notify the server, then always drop the local session.
//   - CurrentUser: the cached user, without a network call.
//   - RequireAuth: redirect to login when no token is stored.
//   - Profile / UpdateProfile: fetch or change the profile and refresh the cache.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*models.User, error)
	Register(ctx context.Context, fields models.Object) (models.Object, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*models.User, bool, error)
	RequireAuth(ctx context.Context) (bool, error)
	Profile(ctx context.Context) (*models.User, error)
	UpdateProfile(ctx context.Context, fields models.Object) (*models.User, error)
}

type authService struct {
	api   *api.API
	store *session.Store
}

// NewAuthService constructs an AuthService over the endpoint catalog and the
// session store.
func NewAuthService(a *api.API, store *session.Store) AuthService {
	return &authService{api: a, store: store}
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.User, error) {
	resp, err := s.api.Auth.Login(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}

	token := resp.BearerToken()
	if token == "" {
		return nil, ErrNoAccessToken
	}

	if err := s.store.SaveSession(ctx, token, resp.User); err != nil {
		return nil, fmt.Errorf("session saving error: %w", err)
	}
	return &resp.User, nil
}

func (s *authService) Register(ctx context.Context, fields models.Object) (models.Object, error) {
	return s.api.Auth.Register(ctx, fields)
}

// Logout evicts the local session even when the server call fails; both
// failures are reported. A server that rejects the session with 401 has
// already ended it, so that case counts as a successful logout.
func (s *authService) Logout(ctx context.Context) error {
	var errs []error
	if err := s.api.Auth.Logout(ctx); err != nil && !errors.Is(err, client.ErrUnauthorized) {
		errs = append(errs, fmt.Errorf("logout error: %w", err))
	}
	if err := s.store.RemoveToken(ctx); err != nil {
		errs = append(errs, fmt.Errorf("session clearing error: %w", err))
	}
	return errors.Join(errs...)
}

func (s *authService) CurrentUser(ctx context.Context) (*models.User, bool, error) {
	var u models.User
	ok, err := s.store.GetUser(ctx, &u)
	if err != nil || !ok {
		return nil, ok, err
	}
	return &u, true, nil
}

func (s *authService) RequireAuth(ctx context.Context) (bool, error) {
	return s.store.RequireAuth(ctx)
}

func (s *authService) Profile(ctx context.Context) (*models.User, error) {
	u, err := s.api.Users.GetProfile(ctx)
	if err != nil {
		return nil, err
	}
	return u, s.cache(ctx, u)
}

func (s *authService) UpdateProfile(ctx context.Context, fields models.Object) (*models.User, error) {
	u, err := s.api.Users.UpdateProfile(ctx, fields)
	if err != nil {
		return nil, err
	}
	return u, s.cache(ctx, u)
}

func (s *authService) cache(ctx context.Context, u *models.User) error {
	if err := s.store.SetUser(ctx, u); err != nil {
		return fmt.Errorf("user caching error: %w", err)
	}
	return nil
}

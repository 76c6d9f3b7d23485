package api

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/triptracker/internal/client/models"
)

type AuthAPI struct {
	r Requester
}

// Register creates an account from arbitrary registration fields.
func (a *AuthAPI) Register(ctx context.Context, fields models.Object) (models.Object, error) {
	var out models.Object
	if err := a.r.Do(ctx, http.MethodPost, "/api/auth/register", object(fields), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *AuthAPI) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	var out models.LoginResponse
	body := models.Credentials{Email: email, Password: password}
	if err := a.r.Do(ctx, http.MethodPost, "/api/auth/login", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *AuthAPI) Logout(ctx context.Context) error {
	return a.r.Do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
}

type UsersAPI struct {
	r Requester
}

func (u *UsersAPI) GetProfile(ctx context.Context) (*models.User, error) {
	var out models.User
	if err := u.r.Do(ctx, http.MethodGet, "/api/users/profile", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (u *UsersAPI) UpdateProfile(ctx context.Context, fields models.Object) (*models.User, error) {
	var out models.User
	if err := u.r.Do(ctx, http.MethodPut, "/api/users/profile", object(fields), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

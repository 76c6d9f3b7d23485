// Package session owns the signed-in state of the client: the bearer token
// issued by the API and the cached profile of the signed-in user. Both live in
// the local SQLite database so a session survives restarts.
//
// The token is never inspected for validity here; the server is the only
// authority and reports expiry with a 401, which the request gateway turns
// into a call to RemoveToken.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/triptracker/internal/client/navigation"
	"github.com/dmitrijs2005/triptracker/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/triptracker/internal/dbx"
)

// Storage keys.
const (
	TokenKey = "jwt_token"
	UserKey  = "user"
)

// Store is the session store. It is safe for concurrent use; every call is a
// short synchronous read or write against the local database.
type Store struct {
	db  *sql.DB
	nav navigation.Navigator
}

// NewStore creates a store over a migrated local database. nav receives the
// login redirect issued by RequireAuth; nil means no navigation.
func NewStore(db *sql.DB, nav navigation.Navigator) *Store {
	if nav == nil {
		nav = navigation.Nop
	}
	return &Store{db: db, nav: nav}
}

func (s *Store) repo() metadata.Repository {
	return metadata.NewSQLiteRepository(s.db)
}

// GetToken returns the stored token, or "" when there is none.
func (s *Store) GetToken(ctx context.Context) (string, error) {
	token, _, err := s.repo().Get(ctx, TokenKey)
	return token, err
}

// SetToken overwrites the stored token.
func (s *Store) SetToken(ctx context.Context, token string) error {
	return s.repo().Set(ctx, TokenKey, token)
}

// RemoveToken signs the user out locally: token and cached user are deleted
// together.
func (s *Store) RemoveToken(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Delete(ctx, TokenKey); err != nil {
			return err
		}
		return repo.Delete(ctx, UserKey)
	})
}

// GetUser decodes the cached user into dst. It reports false when no user is
// cached. A corrupted value yields the JSON decoding error as is.
func (s *Store) GetUser(ctx context.Context, dst any) (bool, error) {
	raw, _, err := s.repo().Get(ctx, UserKey)
	if err != nil {
		return false, err
	}
	if raw == "" {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return false, err
	}
	return true, nil
}

// SetUser serializes user and overwrites the cached copy.
func (s *Store) SetUser(ctx context.Context, user any) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	return s.repo().Set(ctx, UserKey, string(data))
}

// SaveSession stores a freshly issued token together with its user.
func (s *Store) SaveSession(ctx context.Context, token string, user any) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	return dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, TokenKey, token); err != nil {
			return err
		}
		return repo.Set(ctx, UserKey, string(data))
	})
}

// IsAuthenticated reports whether a token is stored. It does not ask the
// server whether the token is still accepted.
func (s *Store) IsAuthenticated(ctx context.Context) (bool, error) {
	token, err := s.GetToken(ctx)
	if err != nil {
		return false, err
	}
	return token != "", nil
}

// RequireAuth guards protected views: without a token it navigates to the
// login view and returns false.
func (s *Store) RequireAuth(ctx context.Context) (bool, error) {
	ok, err := s.IsAuthenticated(ctx)
	if err != nil {
		return false, err
	}
	if !ok {
		s.nav.Navigate(ctx, navigation.LoginRoute)
		return false, nil
	}
	return true, nil
}

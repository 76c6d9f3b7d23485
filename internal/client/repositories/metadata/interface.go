// Package metadata persists the client's small key/value state (session token,
// cached profile) in the local_storage table.
package metadata

import (
	"context"
)

// Repository is a string key/value store with localStorage semantics:
// reading a missing key is not an error.
type Repository interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string]string, error)
	Clear(ctx context.Context) error
}

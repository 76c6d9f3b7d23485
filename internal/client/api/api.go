// Package api is the catalog of trip-tracking API operations. Each method is
// a single call through the request gateway with a fixed verb, path and body
// shape; the package holds no other logic.
package api

import (
	"context"
	"net/url"

	"github.com/dmitrijs2005/triptracker/internal/client/models"
)

// Requester sends one JSON request. *client.Gateway implements it.
type Requester interface {
	Do(ctx context.Context, method, endpoint string, payload, out any) error
}

// API groups the operations by resource.
type API struct {
	Auth  *AuthAPI
	Users *UsersAPI
	Trips *TripsAPI
	Paths *PathsAPI
}

// New builds the catalog on top of r.
func New(r Requester) *API {
	return &API{
		Auth:  &AuthAPI{r: r},
		Users: &UsersAPI{r: r},
		Trips: &TripsAPI{r: r},
		Paths: &PathsAPI{r: r},
	}
}

// object sends a nil field set as an empty JSON object rather than null.
func object(fields models.Object) models.Object {
	if fields == nil {
		return models.Object{}
	}
	return fields
}

// resource joins a collection path and an escaped id.
func resource(collection, id string, suffix ...string) string {
	p := collection + "/" + url.PathEscape(id)
	for _, s := range suffix {
		p += "/" + s
	}
	return p
}

// Package navigation declares the "go to another view" effect that the
// session layer triggers when the user must sign in again. The front-end
// (the CLI here) decides what navigating means.
package navigation

import (
	"context"
	"sync"
)

// LoginRoute is the view users are sent to when a session is missing or
// has been rejected by the server.
const LoginRoute = "/login"

// Navigator switches the front-end to route.
type Navigator interface {
	Navigate(ctx context.Context, route string)
}

// NavigatorFunc adapts a plain function to Navigator.
type NavigatorFunc func(ctx context.Context, route string)

func (f NavigatorFunc) Navigate(ctx context.Context, route string) { f(ctx, route) }

// Nop ignores every navigation request.
var Nop Navigator = NavigatorFunc(func(context.Context, string) {})

// Recorder remembers the routes it was asked to visit. Tests use it in place
// of a real front-end.
type Recorder struct {
	mu     sync.Mutex
	routes []string
}

func (r *Recorder) Navigate(_ context.Context, route string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes = append(r.routes, route)
}

// Routes returns a copy of the visited routes in call order.
func (r *Recorder) Routes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.routes...)
}

// Package client is the request gateway of the trip-tracking client: every
// call to the REST API goes through Gateway.Request.
//
// # Overview
//
// The gateway
//  1. resolves the target URL against the configured base URL,
//  2. attaches the bearer token read from the session store at dispatch time,
//  3. performs exactly one HTTP round trip, and
//  4. normalizes the outcome: a decoded JSON body on 2xx, ErrUnauthorized on
//     401 (after evicting the session and navigating to the login view), or an
//     *APIError carrying a single human-readable message otherwise.
//
// # Error Handling
//
// Callers match outcomes with errors.Is(err, ErrUnauthorized) and
// errors.As(err, &apiErr). Transport failures and malformed success bodies are
// returned untouched. Every failure is logged before it is returned; nothing is
// retried and nothing is swallowed.
//
// # Concurrency
//
// A Gateway is safe for concurrent use. Requests are independent: a 401 on one
// does not cancel the others, and a token stored mid-flight only affects
// requests dispatched afterwards.
package client

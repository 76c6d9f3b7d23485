package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/triptracker/internal/client/navigation"
	"github.com/dmitrijs2005/triptracker/internal/logging"
)

// Header names set by the gateway.
const (
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
	HeaderRequestID     = "X-Request-ID"
)

// maxErrorBody caps how much of a failed response is read for its message.
const maxErrorBody = 1 << 20

// TokenStore is the part of the session store the gateway needs.
type TokenStore interface {
	GetToken(ctx context.Context) (string, error)
	RemoveToken(ctx context.Context) error
}

// RequestOptions describes one call. The zero value is a GET without body.
type RequestOptions struct {
	// Method defaults to GET.
	Method string
	// Headers are merged over the default Content-Type. Authorization is
	// always computed from the session store and cannot be supplied here.
	Headers map[string]string
	// Body is the already-serialized JSON payload.
	Body []byte
}

// Gateway sends API requests on behalf of the signed-in user.
type Gateway struct {
	baseURL    string
	httpClient *http.Client
	store      TokenStore
	nav        navigation.Navigator
	log        logging.Logger
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithHTTPClient replaces the transport client. The default has no timeout.
func WithHTTPClient(c *http.Client) Option {
	return func(g *Gateway) { g.httpClient = c }
}

// WithNavigator sets where the 401 login redirect is sent.
func WithNavigator(nav navigation.Navigator) Option {
	return func(g *Gateway) { g.nav = nav }
}

// WithLogger sets the logger that receives a record for every failed request.
func WithLogger(l logging.Logger) Option {
	return func(g *Gateway) { g.log = l }
}

// NewGateway creates a gateway for the API rooted at baseURL.
func NewGateway(baseURL string, store TokenStore, opts ...Option) *Gateway {
	g := &Gateway{
		baseURL:    baseURL,
		httpClient: &http.Client{},
		store:      store,
		nav:        navigation.Nop,
		log:        logging.Discard(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// BaseURL returns the API root the gateway was built with.
func (g *Gateway) BaseURL() string { return g.baseURL }

// Request performs one call to endpoint (a path relative to the base URL) and
// decodes a successful JSON response into out. When out is nil the body is
// still parsed and then discarded.
//
// Outcomes:
//   - 2xx: nil, or the JSON decoding error as is.
//   - 401: the session is removed, the navigator is sent to the login view and
//     ErrUnauthorized is returned whatever the body says.
//   - any other status: an *APIError.
//   - transport failure: the error from the HTTP client.
func (g *Gateway) Request(ctx context.Context, endpoint string, opts *RequestOptions, out any) (err error) {
	if opts == nil {
		opts = &RequestOptions{}
	}
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}
	requestID := uuid.NewString()

	defer func() {
		if err != nil {
			g.log.Error(ctx, "API request failed",
				"method", method, "endpoint", endpoint, "request_id", requestID, "error", err)
		}
	}()

	var body io.Reader
	if opts.Body != nil {
		body = bytes.NewReader(opts.Body)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+endpoint, body)
	if err != nil {
		return err
	}

	req.Header.Set(HeaderContentType, "application/json")
	req.Header.Set(HeaderRequestID, requestID)
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}

	token, err := g.store.GetToken(ctx)
	if err != nil {
		return fmt.Errorf("read session token: %w", err)
	}
	if token != "" {
		req.Header.Set(HeaderAuthorization, "Bearer "+token)
	} else {
		req.Header.Del(HeaderAuthorization)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		g.evict(ctx)
		return ErrUnauthorized
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return newAPIError(resp.StatusCode, data)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if out == nil {
		out = new(json.RawMessage)
	}
	return json.Unmarshal(data, out)
}

// Do marshals payload (nil means no body) and sends it with method.
func (g *Gateway) Do(ctx context.Context, method, endpoint string, payload, out any) error {
	opts := &RequestOptions{Method: method}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			g.log.Error(ctx, "API request failed", "method", method, "endpoint", endpoint, "error", err)
			return fmt.Errorf("encode request body: %w", err)
		}
		opts.Body = data
	}
	return g.Request(ctx, endpoint, opts, out)
}

// evict drops the rejected session and sends the user to sign in again.
func (g *Gateway) evict(ctx context.Context) {
	if err := g.store.RemoveToken(ctx); err != nil {
		g.log.Warn(ctx, "failed to remove rejected session", "error", err)
	}
	g.nav.Navigate(ctx, navigation.LoginRoute)
}

// Package httpauth provides authentication strategies for the HTTP module loader.
package httpauth

import (
	"context"
	"net/http"
)

// Authenticator applies credentials to an outgoing HTTP request.
type Authenticator interface {
	// Authenticate modifies the request in place.
	Authenticate(req *http.Request) error

	// AuthenticateWithContext is Authenticate with cancellation.
	AuthenticateWithContext(ctx context.Context, req *http.Request) error

	// Name returns a descriptive name of the authentication method.
	Name() string
}

// applyAuthWithContext returns ctx.Err() if ctx is already done, otherwise runs authFn.
// Authenticators only touch req.Header, which the context-carrying copy shares
// with req.
func applyAuthWithContext(
	ctx context.Context,
	req *http.Request,
	authFn func(*http.Request) error,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return authFn(req.WithContext(ctx))
}

package httpauth

import (
	"context"
	"net/http"
)

// NoAuth leaves requests untouched.
type NoAuth struct{}

// NewNoAuth creates a new NoAuth authenticator instance.
func NewNoAuth() *NoAuth {
	return &NoAuth{}
}

func (n *NoAuth) Authenticate(req *http.Request) error {
	return nil
}

func (n *NoAuth) AuthenticateWithContext(ctx context.Context, req *http.Request) error {
	return applyAuthWithContext(ctx, req, n.Authenticate)
}

func (n *NoAuth) Name() string {
	return "None"
}

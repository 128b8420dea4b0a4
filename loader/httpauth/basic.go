package httpauth

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// BasicAuth sends RFC 7617 Basic credentials. An empty Username sends nothing.
type BasicAuth struct {
	Username string
	Password string
}

func NewBasicAuth(username, password string) *BasicAuth {
	return &BasicAuth{Username: username, Password: password}
}

// Authenticate sets the Authorization header. A username containing a colon
// cannot be encoded and is rejected with ErrInvalidCredentials.
func (b *BasicAuth) Authenticate(req *http.Request) error {
	if b.Username == "" {
		return nil
	}
	if strings.Contains(b.Username, ":") {
		return fmt.Errorf("%w: basic auth username contains ':'", ErrInvalidCredentials)
	}
	req.SetBasicAuth(b.Username, b.Password)
	return nil
}

func (b *BasicAuth) AuthenticateWithContext(ctx context.Context, req *http.Request) error {
	return applyAuthWithContext(ctx, req, b.Authenticate)
}

func (b *BasicAuth) Name() string {
	return "Basic"
}

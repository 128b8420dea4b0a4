package httpauth

import (
	"context"
	"fmt"
	"maps"
	"net/http"
	"strings"
)

// HeaderAuth sends fixed request headers, for bearer tokens and API keys.
type HeaderAuth struct {
	Headers map[string]string
}

// NewHeaderAuth copies headers, so later changes to the map are not seen.
func NewHeaderAuth(headers map[string]string) *HeaderAuth {
	return &HeaderAuth{Headers: maps.Clone(headers)}
}

// NewBearerAuth sends "Authorization: Bearer <token>". An empty token sends nothing.
func NewBearerAuth(token string) *HeaderAuth {
	if token == "" {
		return &HeaderAuth{Headers: map[string]string{}}
	}
	return &HeaderAuth{Headers: map[string]string{"Authorization": "Bearer " + token}}
}

// Authenticate sets every header, or none if any name or value contains a line
// break.
func (h *HeaderAuth) Authenticate(req *http.Request) error {
	for key, value := range h.Headers {
		if key == "" || strings.ContainsAny(key, "\r\n: ") || strings.ContainsAny(value, "\r\n") {
			return fmt.Errorf("%w: malformed header %q", ErrInvalidCredentials, key)
		}
	}
	for key, value := range h.Headers {
		req.Header.Set(key, value)
	}
	return nil
}

func (h *HeaderAuth) AuthenticateWithContext(ctx context.Context, req *http.Request) error {
	return applyAuthWithContext(ctx, req, h.Authenticate)
}

func (h *HeaderAuth) Name() string {
	return "Header"
}

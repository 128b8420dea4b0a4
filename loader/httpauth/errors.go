package httpauth

import "errors"

// ErrInvalidCredentials is returned when credentials cannot be encoded into a request.
var ErrInvalidCredentials = errors.New("invalid credentials")

package service

import "errors"

// Error taxonomy shared by all services. Handlers map these to HTTP
// statuses with errors.Is; detail is added via fmt.Errorf wrapping.
var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrNotFound       = errors.New("not found")
	ErrInvalidRequest = errors.New("invalid request")
)

package repositories

import "errors"

// Sentinel errors shared by the repositories. Handlers map these to
// client-visible status codes.
var (
	ErrContentNotFound    = errors.New("content not found")
	ErrUnknownContentType = errors.New("unknown content type")
	ErrUserNotFound       = errors.New("user not found")
)

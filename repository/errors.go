package repository

import "errors"

// Sentinel errors for domain-level failures. Handlers match these with
// errors.Is and translate them into error envelopes.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrSpotNotFound    = errors.New("parking spot not found")
	ErrSpotUnavailable = errors.New("spot not available")
	ErrDuplicateUser   = errors.New("username already exists")
)

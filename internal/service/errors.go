package service

import "errors"

var (
	// ErrNotFound is returned when a link does not exist or is not owned by the caller
	ErrNotFound = errors.New("link not found")
	// ErrRateLimited is returned when the owner's redirect budget for a link is exhausted
	ErrRateLimited = errors.New("rate limit exceeded")
	// ErrShortCodeExhausted is returned when short code generation keeps colliding
	ErrShortCodeExhausted = errors.New("failed to generate a unique short code")
	// ErrEmailTaken is returned on registration with an already registered email
	ErrEmailTaken = errors.New("user with this email already exists")
	// ErrInvalidCredentials is returned on login with a bad email or password
	ErrInvalidCredentials = errors.New("invalid email or password")
)

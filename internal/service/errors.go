package service

import "errors"

// Recoverable auth failures. The HTTP boundary maps each to a status code;
// anything outside this set is a server fault.
var (
	ErrEmailTaken      = errors.New("email in use")
	ErrUserNotFound    = errors.New("user not found")
	ErrBadCredentials  = errors.New("email or password is wrong")
	ErrEmailUnverified = errors.New("email is not verified")
	ErrTokenNotFound   = errors.New("verification token invalid or already used")
	ErrUnauthorized    = errors.New("not authorized")
)

package jwtmw

import "errors"

// Token verification failure kinds. The HTTP layer maps both token errors to
// 401 regardless, but they stay distinguishable for logging and tests.
var (
	// ErrTokenInvalid is returned when a token is malformed, unsigned, or its
	// signature does not verify.
	ErrTokenInvalid = errors.New("invalid token")

	// ErrTokenExpired is returned when a structurally valid token is past its
	// expiry. Re-authentication via /login is the only recovery.
	ErrTokenExpired = errors.New("token expired")

	// ErrUnknownSubject is returned when a verified token names a user that no
	// longer exists.
	ErrUnknownSubject = errors.New("unknown token subject")
)

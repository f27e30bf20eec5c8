package middleware

import "errors"

var (
	// ErrMissingToken is returned when the Authorization header is absent
	// or not a bearer token.
	ErrMissingToken = errors.New("middleware: missing bearer token")

	// ErrInvalidToken is returned when the bearer token fails signature or
	// temporal validation.
	ErrInvalidToken = errors.New("middleware: invalid token")

	// ErrInvalidClaims is returned when the token's tenant or principal
	// claims are missing or fail identifier validation.
	ErrInvalidClaims = errors.New("middleware: invalid claims")

	// ErrNoIdentity is returned by Require when no identity is present in
	// the request context.
	ErrNoIdentity = errors.New("middleware: no identity in context")

	// ErrForbidden is passed to the error handler when the engine denies
	// the required permission.
	ErrForbidden = errors.New("middleware: permission denied")
)

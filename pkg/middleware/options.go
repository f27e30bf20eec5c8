package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/mztlive/gotenant"
)

// ErrorHandler renders middleware and engine errors to the client.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// config holds shared middleware configuration.
type config struct {
	errorHandler ErrorHandler
	logger       *slog.Logger
	skipPaths    []string
}

// Option configures the middleware.
type Option func(*config)

// WithErrorHandler sets a custom error handler.
func WithErrorHandler(handler ErrorHandler) Option {
	return func(c *config) {
		c.errorHandler = handler
	}
}

// WithLogger sets a logger for engine failures. Authentication failures are
// not logged; they are ordinary client errors.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithSkipPaths sets path prefixes that bypass authentication.
func WithSkipPaths(paths []string) Option {
	return func(c *config) {
		c.skipPaths = paths
	}
}

func newConfig(opts ...Option) *config {
	cfg := &config{
		errorHandler: defaultErrorHandler,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// defaultErrorHandler maps middleware errors to HTTP statuses: missing or
// invalid credentials are 401, a denied permission is 403, and anything else
// (store failures, role cycles) is 500 so a broken backend never silently
// masquerades as a deny.
func defaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrMissingToken),
		errors.Is(err, ErrInvalidToken),
		errors.Is(err, ErrInvalidClaims),
		errors.Is(err, gotenant.ErrInvalidID),
		errors.Is(err, ErrNoIdentity):
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	default:
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

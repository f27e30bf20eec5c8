package middleware

import (
	"net/http"

	"github.com/mztlive/gotenant"
)

// Require creates middleware that enforces a permission for the identity in
// the request context. A missing identity is 401, a Deny is 403, and an
// engine error is 500: the caller can always tell "denied" from "could not
// determine".
func Require(engine *gotenant.Engine, permission gotenant.Permission, opts ...Option) func(http.Handler) http.Handler {
	c := newConfig(opts...)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := gotenant.IdentityFromContext(r.Context())
			if !ok {
				c.errorHandler(w, r, ErrNoIdentity)
				return
			}

			decision, err := engine.Authorize(r.Context(), identity.Tenant, identity.Principal, permission)
			if err != nil {
				if c.logger != nil {
					c.logger.ErrorContext(r.Context(), "authorization failed",
						"tenant", identity.Tenant,
						"principal", identity.Principal,
						"permission", permission,
						"error", err)
				}
				c.errorHandler(w, r, err)
				return
			}
			if !decision.Allowed() {
				c.errorHandler(w, r, ErrForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireResource creates middleware that requires a non-empty resource
// scope for the identity in the request context.
func RequireResource(engine *gotenant.Engine, resource gotenant.ResourceName, opts ...Option) func(http.Handler) http.Handler {
	c := newConfig(opts...)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := gotenant.IdentityFromContext(r.Context())
			if !ok {
				c.errorHandler(w, r, ErrNoIdentity)
				return
			}

			scope, err := engine.ResourceScope(r.Context(), identity.Tenant, identity.Principal, resource)
			if err != nil {
				if c.logger != nil {
					c.logger.ErrorContext(r.Context(), "scope resolution failed",
						"tenant", identity.Tenant,
						"principal", identity.Principal,
						"resource", resource,
						"error", err)
				}
				c.errorHandler(w, r, err)
				return
			}
			if scope.Kind == gotenant.ScopeNone {
				c.errorHandler(w, r, ErrForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

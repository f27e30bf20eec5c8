package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mztlive/gotenant"
)

// Default claim names carrying the identity in issued tokens.
const (
	DefaultTenantClaim    = "tenant_id"
	DefaultPrincipalClaim = "principal_id"
)

// AuthConfig configures bearer-token authentication.
type AuthConfig struct {
	// SigningKey is the HMAC key used when Keyfunc is nil.
	SigningKey []byte

	// Keyfunc overrides key resolution for non-HMAC setups.
	Keyfunc jwt.Keyfunc

	// TenantClaim is the claim holding the tenant identifier.
	// Defaults to "tenant_id".
	TenantClaim string

	// PrincipalClaim is the claim holding the principal identifier.
	// Defaults to "principal_id".
	PrincipalClaim string
}

// Authenticate creates middleware that extracts a bearer token from the
// Authorization header, validates it, and places the resulting
// gotenant.Identity in the request context for Require and downstream
// handlers. The tenant and principal claims are validated with the gotenant
// identifier constructors, so malformed claims never reach the engine.
func Authenticate(cfg AuthConfig, opts ...Option) func(http.Handler) http.Handler {
	c := newConfig(opts...)

	keyfunc := cfg.Keyfunc
	if keyfunc == nil {
		keyfunc = func(*jwt.Token) (any, error) { return cfg.SigningKey, nil }
	}
	tenantClaim := cfg.TenantClaim
	if tenantClaim == "" {
		tenantClaim = DefaultTenantClaim
	}
	principalClaim := cfg.PrincipalClaim
	if principalClaim == "" {
		principalClaim = DefaultPrincipalClaim
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, skip := range c.skipPaths {
				if strings.HasPrefix(r.URL.Path, skip) {
					next.ServeHTTP(w, r)
					return
				}
			}

			raw, err := bearerToken(r)
			if err != nil {
				c.errorHandler(w, r, err)
				return
			}

			token, err := jwt.Parse(raw, keyfunc, jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}))
			if err != nil || !token.Valid {
				c.errorHandler(w, r, errors.Join(ErrInvalidToken, err))
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				c.errorHandler(w, r, ErrInvalidClaims)
				return
			}

			identity, err := identityFromClaims(claims, tenantClaim, principalClaim)
			if err != nil {
				c.errorHandler(w, r, err)
				return
			}

			ctx := gotenant.WithIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func identityFromClaims(claims jwt.MapClaims, tenantClaim, principalClaim string) (gotenant.Identity, error) {
	tenantRaw, ok := claims[tenantClaim].(string)
	if !ok {
		return gotenant.Identity{}, errors.Join(ErrInvalidClaims, errors.New("missing tenant claim"))
	}
	principalRaw, ok := claims[principalClaim].(string)
	if !ok {
		return gotenant.Identity{}, errors.Join(ErrInvalidClaims, errors.New("missing principal claim"))
	}

	tenant, err := gotenant.NewTenantID(tenantRaw)
	if err != nil {
		return gotenant.Identity{}, errors.Join(ErrInvalidClaims, err)
	}
	principal, err := gotenant.NewPrincipalID(principalRaw)
	if err != nil {
		return gotenant.Identity{}, errors.Join(ErrInvalidClaims, err)
	}

	return gotenant.Identity{Tenant: tenant, Principal: principal}, nil
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header per RFC 6750.
func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", ErrMissingToken
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", ErrMissingToken
	}
	return parts[1], nil
}

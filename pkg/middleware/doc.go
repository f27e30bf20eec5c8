// Package middleware provides net/http middleware that connects the
// gotenant engine to request handling: bearer-token authentication that
// places an identity in the request context, and permission enforcement
// backed by Engine.Authorize.
//
// The middleware is router-agnostic (plain func(http.Handler) http.Handler)
// and composes with chi, the standard mux, or any compatible router.
//
// # Usage
//
//	engine, _ := gotenant.NewBuilder(store).Build()
//
//	r := chi.NewRouter()
//	r.Use(middleware.Authenticate(middleware.AuthConfig{
//		SigningKey: signingKey,
//	}))
//	r.With(middleware.Require(engine, "invoice:read")).
//		Get("/invoices", listInvoices)
//
// Tokens carry the identity in the "tenant_id" and "principal_id" claims
// (names configurable via AuthConfig). Claim values are validated with the
// gotenant identifier constructors before the engine ever sees them.
//
// # Status mapping
//
// Missing or invalid credentials map to 401, a denied permission to 403,
// and engine errors (backend failures, role cycles) to 500. The 500 case is
// deliberate: an error is "could not determine", never a silent deny.
package middleware

// Package gotenant is a multi-tenant role-based access-control decision
// engine. Given a tenant, a principal, and a requested permission or
// resource, it yields a deny-by-default authorization decision or a binary
// resource scope. It is consumed as a library by request-handling code and
// owns no network transport or persistent storage of its own.
//
// # Architecture
//
// The engine orchestrates three collaborators:
//
//   - Store: a pluggable read-only backend answering activation checks and
//     role lookups. In-process fixtures use MemoryStore; production backends
//     live under pkg/pgstore, pkg/mongostore, and pkg/yamlstore.
//   - Cache: a memoization layer for effective-permission sets keyed by
//     (tenant, principal). MemoryCache is the sharded TTL/LRU in-process
//     implementation; pkg/rediscache adapts a shared Redis. The default is a
//     no-op cache.
//   - Matcher: pure functions over "resource:action" permission strings with
//     configurable wildcard and normalization behavior.
//
// Permissions split at the last colon, so the resource portion may itself
// contain colons: "invoice:sub:read" grants action "read" on resource
// "invoice:sub". The wildcard segment "*" may stand in for the action or any
// resource sub-segment, but wildcard grants are inert until wildcard
// matching is explicitly enabled on the engine.
//
// # Usage
//
//	store := gotenant.NewMemoryStore()
//	store.SetTenantActive("tenant_1", true)
//	store.SetPrincipalActive("tenant_1", "user_1", true)
//	store.AddPrincipalRole("tenant_1", "user_1", "editor")
//	store.AddRolePermission("tenant_1", "editor", "invoice:write")
//
//	engine, err := gotenant.NewBuilder(store).
//		EnableRoleHierarchy(true).
//		WithCache(gotenant.NewMemoryCache(1024)).
//		Build()
//	if err != nil {
//		// handle error
//	}
//
//	decision, err := engine.Authorize(ctx, "tenant_1", "user_1", "invoice:write")
//	if err != nil {
//		// store failure, role cycle, or depth exceeded: the decision could
//		// not be determined. This is distinct from Deny.
//	}
//	if decision.Allowed() {
//		// proceed
//	}
//
// # Cache sharing
//
// Each engine derives a signature from its configuration tuple at build
// time and tags every cache entry it writes with it. On read, an entry with
// a foreign signature is treated as a miss. Multiple engines with different
// configurations can therefore share one cache instance with no external
// coordination.
//
// # Concurrency
//
// The engine is immutable after Build and safe for concurrent use. It never
// spawns goroutines; store and cache calls happen sequentially within one
// resolution and receive the caller's context. MemoryCache shard locks are
// held only for synchronous map and queue manipulation, never across a
// store call.
//
// # Error Handling
//
// Inactive tenants or principals and unmatched permissions are not errors;
// they produce the fail-closed Deny and ScopeNone outcomes. True errors —
// backend failures (ErrStore), inheritance cycles (ErrRoleCycle), and depth
// limits (ErrInheritDepthExceeded) — abort the call so callers can
// distinguish "denied" from "could not determine". All are matchable with
// errors.Is.
package gotenant

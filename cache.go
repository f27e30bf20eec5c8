package gotenant

import "context"

// Entry is the cached effective-permission set for a (tenant, principal)
// pair, tagged with the signature of the engine configuration that produced
// it. A differently-configured engine reading the entry treats a signature
// mismatch as a miss, so multiple engines can share one cache backend.
type Entry struct {
	Signature   string
	Permissions []Permission
}

// clone returns a copy whose permission slice is independent of the receiver.
func (e Entry) clone() Entry {
	perms := make([]Permission, len(e.Permissions))
	copy(perms, e.Permissions)
	return Entry{Signature: e.Signature, Permissions: perms}
}

// Cache memoizes effective-permission sets. Implementations must be safe for
// concurrent use. The interface is non-fallible: a backend that cannot serve
// a request reports a miss and the engine recomputes from the store.
type Cache interface {
	// GetPermissions returns the cached entry for a (tenant, principal) pair.
	GetPermissions(ctx context.Context, tenant TenantID, principal PrincipalID) (Entry, bool)

	// SetPermissions stores the entry for a (tenant, principal) pair.
	SetPermissions(ctx context.Context, tenant TenantID, principal PrincipalID, entry Entry)

	// InvalidatePrincipal removes the entry for a single principal.
	InvalidatePrincipal(ctx context.Context, tenant TenantID, principal PrincipalID)

	// InvalidateRole removes entries affected by a role change. Implementations
	// hold no role-to-principal reverse index, so this conservatively purges
	// the whole tenant.
	InvalidateRole(ctx context.Context, tenant TenantID, role RoleID)

	// InvalidateTenant removes all entries for a tenant.
	InvalidateTenant(ctx context.Context, tenant TenantID)
}

// NopCache is a Cache that caches nothing. It is the engine default, so an
// engine built without WithCache always resolves from the store.
type NopCache struct{}

func (NopCache) GetPermissions(ctx context.Context, tenant TenantID, principal PrincipalID) (Entry, bool) {
	return Entry{}, false
}

func (NopCache) SetPermissions(ctx context.Context, tenant TenantID, principal PrincipalID, entry Entry) {
}

func (NopCache) InvalidatePrincipal(ctx context.Context, tenant TenantID, principal PrincipalID) {}

func (NopCache) InvalidateRole(ctx context.Context, tenant TenantID, role RoleID) {}

func (NopCache) InvalidateTenant(ctx context.Context, tenant TenantID) {}

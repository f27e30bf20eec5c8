package gotenant

import "context"

// TenantStore answers tenant and principal activation checks.
type TenantStore interface {
	// TenantActive reports whether a tenant is active.
	TenantActive(ctx context.Context, tenant TenantID) (bool, error)

	// PrincipalActive reports whether a principal is active within a tenant.
	PrincipalActive(ctx context.Context, tenant TenantID, principal PrincipalID) (bool, error)
}

// RoleStore provides tenant-scoped role data.
type RoleStore interface {
	// PrincipalRoles returns roles directly assigned to a principal within a tenant.
	PrincipalRoles(ctx context.Context, tenant TenantID, principal PrincipalID) ([]RoleID, error)

	// RolePermissions returns permissions bound to a role within a tenant.
	RolePermissions(ctx context.Context, tenant TenantID, role RoleID) ([]Permission, error)

	// RoleInherits returns the direct parent roles used for inheritance traversal.
	RoleInherits(ctx context.Context, tenant TenantID, role RoleID) ([]RoleID, error)
}

// GlobalRoleStore provides cross-tenant role data.
type GlobalRoleStore interface {
	// GlobalRoles returns global roles assigned to a principal.
	GlobalRoles(ctx context.Context, principal PrincipalID) ([]GlobalRoleID, error)

	// GlobalRolePermissions returns permissions bound to a global role.
	GlobalRolePermissions(ctx context.Context, role GlobalRoleID) ([]Permission, error)
}

// Store is the read-only backend the engine consumes. Implementations live
// outside the core (pkg/pgstore, pkg/mongostore, pkg/yamlstore) or in-process
// (MemoryStore); all methods may suspend on I/O and may fail with a backend
// error, which the engine wraps with ErrStore.
type Store interface {
	TenantStore
	RoleStore
	GlobalRoleStore
}

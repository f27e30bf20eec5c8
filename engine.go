package gotenant

import (
	"context"
	"fmt"
	"slices"
)

// Decision is the binary authorization outcome. The zero value is Deny, so
// an uninitialized decision always fails closed.
type Decision uint8

const (
	// Deny means the permission is not granted.
	Deny Decision = iota
	// Allow means the permission is granted.
	Allow
)

// Allowed reports whether the decision grants access.
func (d Decision) Allowed() bool { return d == Allow }

func (d Decision) String() string {
	if d == Allow {
		return "allow"
	}
	return "deny"
}

// ScopeKind discriminates Scope values. The zero value is ScopeNone.
type ScopeKind uint8

const (
	// ScopeNone means no access to the resource.
	ScopeNone ScopeKind = iota
	// ScopeTenantOnly means access limited to one tenant.
	ScopeTenantOnly
)

// Scope is the resource-visibility outcome: either no access or tenant-wide
// access. Tenant is set only for ScopeTenantOnly.
type Scope struct {
	Kind   ScopeKind
	Tenant TenantID
}

// TenantScope returns a tenant-wide scope.
func TenantScope(tenant TenantID) Scope {
	return Scope{Kind: ScopeTenantOnly, Tenant: tenant}
}

func (s Scope) String() string {
	if s.Kind == ScopeTenantOnly {
		return fmt.Sprintf("tenant-only(%s)", s.Tenant)
	}
	return "none"
}

// Engine is the RBAC decision engine. It is immutable after Build, never
// spawns goroutines, performs its store and cache sub-calls sequentially
// within one resolution, and is safe for concurrent use. Multiple engines
// with different configurations may share one Cache instance; isolation is
// enforced by the per-entry configuration signature.
type Engine struct {
	store     Store
	cache     Cache
	validator PermissionValidator

	signature       string
	roleHierarchy   bool
	wildcard        bool
	maxInheritDepth int
	normalize       bool
}

// Authorize decides whether a principal holds a permission within a tenant.
// An inactive tenant or principal yields Deny without resolving permissions.
// Store, cycle, and depth errors abort the call; no partial Allow is ever
// produced, and a Deny is never synthesized from an error.
func (e *Engine) Authorize(ctx context.Context, tenant TenantID, principal PrincipalID, permission Permission) (Decision, error) {
	active, err := e.store.TenantActive(ctx, tenant)
	if err != nil {
		return Deny, storeError(err)
	}
	if !active {
		return Deny, nil
	}

	active, err = e.store.PrincipalActive(ctx, tenant, principal)
	if err != nil {
		return Deny, storeError(err)
	}
	if !active {
		return Deny, nil
	}

	permissions, err := e.effectivePermissions(ctx, tenant, principal)
	if err != nil {
		return Deny, err
	}
	for _, granted := range permissions {
		if Matches(granted, permission, e.wildcard, e.normalize) {
			return Allow, nil
		}
	}
	return Deny, nil
}

// ResourceScope computes the visibility of a resource for a principal within
// a tenant, with the same activation gating and failure semantics as
// Authorize. The result is tenant-wide access or nothing; no finer
// granularity exists.
func (e *Engine) ResourceScope(ctx context.Context, tenant TenantID, principal PrincipalID, resource ResourceName) (Scope, error) {
	active, err := e.store.TenantActive(ctx, tenant)
	if err != nil {
		return Scope{}, storeError(err)
	}
	if !active {
		return Scope{}, nil
	}

	active, err = e.store.PrincipalActive(ctx, tenant, principal)
	if err != nil {
		return Scope{}, storeError(err)
	}
	if !active {
		return Scope{}, nil
	}

	permissions, err := e.effectivePermissions(ctx, tenant, principal)
	if err != nil {
		return Scope{}, err
	}
	for _, granted := range permissions {
		if MatchesResource(granted, resource, e.wildcard, e.normalize) {
			return TenantScope(tenant), nil
		}
	}
	return Scope{}, nil
}

// ParsePermission constructs a permission using the engine's configured
// validator and normalization setting.
func (e *Engine) ParsePermission(value string) (Permission, error) {
	return NewPermissionWith(value, e.validator, e.normalize)
}

// Signature returns the engine's configuration signature, the value stored
// alongside cache entries to guard against cross-configuration reuse.
func (e *Engine) Signature() string { return e.signature }

// effectivePermissions resolves the deduplicated, sorted union of the
// principal's permissions: direct roles (expanded through the inheritance
// graph when role hierarchy is enabled) plus global roles. A cached entry is
// used only when its signature matches this engine's configuration;
// otherwise the set is recomputed and written back under our signature.
func (e *Engine) effectivePermissions(ctx context.Context, tenant TenantID, principal PrincipalID) ([]Permission, error) {
	if entry, ok := e.cache.GetPermissions(ctx, tenant, principal); ok && entry.Signature == e.signature {
		return entry.Permissions, nil
	}

	direct, err := e.store.PrincipalRoles(ctx, tenant, principal)
	if err != nil {
		return nil, storeError(err)
	}

	roles := direct
	if e.roleHierarchy {
		roles, err = e.expandRoles(ctx, tenant, direct)
		if err != nil {
			return nil, err
		}
	}

	set := make(map[Permission]struct{})
	for _, role := range roles {
		permissions, err := e.store.RolePermissions(ctx, tenant, role)
		if err != nil {
			return nil, storeError(err)
		}
		for _, p := range permissions {
			set[p] = struct{}{}
		}
	}

	globalRoles, err := e.store.GlobalRoles(ctx, principal)
	if err != nil {
		return nil, storeError(err)
	}
	for _, role := range globalRoles {
		permissions, err := e.store.GlobalRolePermissions(ctx, role)
		if err != nil {
			return nil, storeError(err)
		}
		for _, p := range permissions {
			set[p] = struct{}{}
		}
	}

	result := make([]Permission, 0, len(set))
	for p := range set {
		result = append(result, p)
	}
	slices.Sort(result)

	e.cache.SetPermissions(ctx, tenant, principal, Entry{Signature: e.signature, Permissions: result})
	return result, nil
}

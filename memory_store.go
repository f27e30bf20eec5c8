package gotenant

import (
	"context"
	"sync"
)

type tenantPrincipal struct {
	tenant    TenantID
	principal PrincipalID
}

type tenantRole struct {
	tenant TenantID
	role   RoleID
}

// MemoryStore is an in-memory Store implementation for tests, demos, and
// small fixed policy sets. Unknown tenants and principals read as inactive
// and unknown roles read as empty. It is safe for concurrent use; readers
// receive defensive copies.
type MemoryStore struct {
	mu                    sync.RWMutex
	tenants               map[TenantID]bool
	principals            map[tenantPrincipal]bool
	principalRoles        map[tenantPrincipal][]RoleID
	rolePermissions       map[tenantRole][]Permission
	roleInherits          map[tenantRole][]RoleID
	globalRoles           map[PrincipalID][]GlobalRoleID
	globalRolePermissions map[GlobalRoleID][]Permission
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tenants:               make(map[TenantID]bool),
		principals:            make(map[tenantPrincipal]bool),
		principalRoles:        make(map[tenantPrincipal][]RoleID),
		rolePermissions:       make(map[tenantRole][]Permission),
		roleInherits:          make(map[tenantRole][]RoleID),
		globalRoles:           make(map[PrincipalID][]GlobalRoleID),
		globalRolePermissions: make(map[GlobalRoleID][]Permission),
	}
}

// SetTenantActive sets a tenant's active status.
func (s *MemoryStore) SetTenantActive(tenant TenantID, active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tenants[tenant] = active
}

// SetPrincipalActive sets a principal's active status within a tenant.
func (s *MemoryStore) SetPrincipalActive(tenant TenantID, principal PrincipalID, active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.principals[tenantPrincipal{tenant, principal}] = active
}

// AddPrincipalRole assigns a role to a principal within a tenant.
func (s *MemoryStore) AddPrincipalRole(tenant TenantID, principal PrincipalID, role RoleID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := tenantPrincipal{tenant, principal}
	s.principalRoles[key] = appendUnique(s.principalRoles[key], role)
}

// AddRolePermission binds a permission to a role within a tenant.
func (s *MemoryStore) AddRolePermission(tenant TenantID, role RoleID, permission Permission) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := tenantRole{tenant, role}
	s.rolePermissions[key] = appendUnique(s.rolePermissions[key], permission)
}

// AddRoleInherit adds a direct inheritance edge from role to parent.
func (s *MemoryStore) AddRoleInherit(tenant TenantID, role, parent RoleID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := tenantRole{tenant, role}
	s.roleInherits[key] = appendUnique(s.roleInherits[key], parent)
}

// AddGlobalRole assigns a global role to a principal.
func (s *MemoryStore) AddGlobalRole(principal PrincipalID, role GlobalRoleID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.globalRoles[principal] = appendUnique(s.globalRoles[principal], role)
}

// AddGlobalRolePermission binds a permission to a global role.
func (s *MemoryStore) AddGlobalRolePermission(role GlobalRoleID, permission Permission) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.globalRolePermissions[role] = appendUnique(s.globalRolePermissions[role], permission)
}

// TenantActive implements TenantStore.
func (s *MemoryStore) TenantActive(ctx context.Context, tenant TenantID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tenants[tenant], nil
}

// PrincipalActive implements TenantStore.
func (s *MemoryStore) PrincipalActive(ctx context.Context, tenant TenantID, principal PrincipalID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.principals[tenantPrincipal{tenant, principal}], nil
}

// PrincipalRoles implements RoleStore.
func (s *MemoryStore) PrincipalRoles(ctx context.Context, tenant TenantID, principal PrincipalID) ([]RoleID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySlice(s.principalRoles[tenantPrincipal{tenant, principal}]), nil
}

// RolePermissions implements RoleStore.
func (s *MemoryStore) RolePermissions(ctx context.Context, tenant TenantID, role RoleID) ([]Permission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySlice(s.rolePermissions[tenantRole{tenant, role}]), nil
}

// RoleInherits implements RoleStore.
func (s *MemoryStore) RoleInherits(ctx context.Context, tenant TenantID, role RoleID) ([]RoleID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySlice(s.roleInherits[tenantRole{tenant, role}]), nil
}

// GlobalRoles implements GlobalRoleStore.
func (s *MemoryStore) GlobalRoles(ctx context.Context, principal PrincipalID) ([]GlobalRoleID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySlice(s.globalRoles[principal]), nil
}

// GlobalRolePermissions implements GlobalRoleStore.
func (s *MemoryStore) GlobalRolePermissions(ctx context.Context, role GlobalRoleID) ([]Permission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySlice(s.globalRolePermissions[role]), nil
}

func appendUnique[T comparable](items []T, item T) []T {
	for _, existing := range items {
		if existing == item {
			return items
		}
	}
	return append(items, item)
}

func copySlice[T any](items []T) []T {
	if len(items) == 0 {
		return nil
	}
	out := make([]T, len(items))
	copy(out, items)
	return out
}

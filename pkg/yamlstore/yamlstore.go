package yamlstore

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mztlive/gotenant"
)

// document is the YAML file shape.
type document struct {
	Tenants     map[string]tenantDoc     `yaml:"tenants"`
	GlobalRoles map[string]globalRoleDoc `yaml:"global_roles"`
}

type tenantDoc struct {
	Active     bool                    `yaml:"active"`
	Principals map[string]principalDoc `yaml:"principals"`
	Roles      map[string]roleDoc      `yaml:"roles"`
}

type principalDoc struct {
	Active bool     `yaml:"active"`
	Roles  []string `yaml:"roles"`
}

type roleDoc struct {
	Permissions []string `yaml:"permissions"`
	Inherits    []string `yaml:"inherits"`
}

type globalRoleDoc struct {
	Permissions []string `yaml:"permissions"`
	Principals  []string `yaml:"principals"`
}

type tenantPrincipal struct {
	tenant    gotenant.TenantID
	principal gotenant.PrincipalID
}

type tenantRole struct {
	tenant gotenant.TenantID
	role   gotenant.RoleID
}

// Store is a gotenant.Store loaded from a YAML document. The loaded data is
// immutable, so every method is safe for concurrent use; reads hand out
// copies so callers cannot mutate the store through returned slices.
type Store struct {
	tenantActive    map[gotenant.TenantID]bool
	principalActive map[tenantPrincipal]bool
	principalRoles  map[tenantPrincipal][]gotenant.RoleID
	rolePerms       map[tenantRole][]gotenant.Permission
	roleInherits    map[tenantRole][]gotenant.RoleID
	globalRoles     map[gotenant.PrincipalID][]gotenant.GlobalRoleID
	globalRolePerms map[gotenant.GlobalRoleID][]gotenant.Permission
}

// Load reads and parses a YAML store file.
func Load(path string) (*Store, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrReadFile, err)
	}
	return Parse(raw)
}

// Parse builds a store from YAML bytes. Every identifier and permission in
// the document is validated; the first invalid value fails the whole parse.
func Parse(raw []byte) (*Store, error) {
	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Join(ErrInvalidDocument, err)
	}

	s := &Store{
		tenantActive:    make(map[gotenant.TenantID]bool),
		principalActive: make(map[tenantPrincipal]bool),
		principalRoles:  make(map[tenantPrincipal][]gotenant.RoleID),
		rolePerms:       make(map[tenantRole][]gotenant.Permission),
		roleInherits:    make(map[tenantRole][]gotenant.RoleID),
		globalRoles:     make(map[gotenant.PrincipalID][]gotenant.GlobalRoleID),
		globalRolePerms: make(map[gotenant.GlobalRoleID][]gotenant.Permission),
	}

	for rawTenant, tenantEntry := range doc.Tenants {
		tenant, err := gotenant.NewTenantID(rawTenant)
		if err != nil {
			return nil, invalid("tenant", rawTenant, err)
		}
		s.tenantActive[tenant] = tenantEntry.Active

		for rawPrincipal, principalEntry := range tenantEntry.Principals {
			principal, err := gotenant.NewPrincipalID(rawPrincipal)
			if err != nil {
				return nil, invalid("principal", rawPrincipal, err)
			}
			key := tenantPrincipal{tenant: tenant, principal: principal}
			s.principalActive[key] = principalEntry.Active

			for _, rawRole := range principalEntry.Roles {
				role, err := gotenant.NewRoleID(rawRole)
				if err != nil {
					return nil, invalid("role", rawRole, err)
				}
				s.principalRoles[key] = append(s.principalRoles[key], role)
			}
		}

		for rawRole, roleEntry := range tenantEntry.Roles {
			role, err := gotenant.NewRoleID(rawRole)
			if err != nil {
				return nil, invalid("role", rawRole, err)
			}
			key := tenantRole{tenant: tenant, role: role}

			for _, rawPerm := range roleEntry.Permissions {
				perm, err := gotenant.NewPermission(rawPerm)
				if err != nil {
					return nil, invalid("permission", rawPerm, err)
				}
				s.rolePerms[key] = append(s.rolePerms[key], perm)
			}
			for _, rawParent := range roleEntry.Inherits {
				parent, err := gotenant.NewRoleID(rawParent)
				if err != nil {
					return nil, invalid("role", rawParent, err)
				}
				s.roleInherits[key] = append(s.roleInherits[key], parent)
			}
		}
	}

	for rawRole, roleEntry := range doc.GlobalRoles {
		role, err := gotenant.NewGlobalRoleID(rawRole)
		if err != nil {
			return nil, invalid("global role", rawRole, err)
		}
		for _, rawPerm := range roleEntry.Permissions {
			perm, err := gotenant.NewPermission(rawPerm)
			if err != nil {
				return nil, invalid("permission", rawPerm, err)
			}
			s.globalRolePerms[role] = append(s.globalRolePerms[role], perm)
		}
		for _, rawPrincipal := range roleEntry.Principals {
			principal, err := gotenant.NewPrincipalID(rawPrincipal)
			if err != nil {
				return nil, invalid("principal", rawPrincipal, err)
			}
			s.globalRoles[principal] = append(s.globalRoles[principal], role)
		}
	}

	return s, nil
}

func invalid(kind, value string, err error) error {
	return errors.Join(ErrInvalidDocument, fmt.Errorf("%s %q", kind, value), err)
}

// TenantActive reports whether a tenant is active. Unknown tenants are
// inactive.
func (s *Store) TenantActive(ctx context.Context, tenant gotenant.TenantID) (bool, error) {
	return s.tenantActive[tenant], nil
}

// PrincipalActive reports whether a principal is active within a tenant.
func (s *Store) PrincipalActive(ctx context.Context, tenant gotenant.TenantID, principal gotenant.PrincipalID) (bool, error) {
	return s.principalActive[tenantPrincipal{tenant: tenant, principal: principal}], nil
}

// PrincipalRoles returns roles directly assigned to a principal within a
// tenant.
func (s *Store) PrincipalRoles(ctx context.Context, tenant gotenant.TenantID, principal gotenant.PrincipalID) ([]gotenant.RoleID, error) {
	return copySlice(s.principalRoles[tenantPrincipal{tenant: tenant, principal: principal}]), nil
}

// RolePermissions returns permissions bound to a role within a tenant.
func (s *Store) RolePermissions(ctx context.Context, tenant gotenant.TenantID, role gotenant.RoleID) ([]gotenant.Permission, error) {
	return copySlice(s.rolePerms[tenantRole{tenant: tenant, role: role}]), nil
}

// RoleInherits returns the direct parent roles of a role within a tenant.
func (s *Store) RoleInherits(ctx context.Context, tenant gotenant.TenantID, role gotenant.RoleID) ([]gotenant.RoleID, error) {
	return copySlice(s.roleInherits[tenantRole{tenant: tenant, role: role}]), nil
}

// GlobalRoles returns global roles assigned to a principal.
func (s *Store) GlobalRoles(ctx context.Context, principal gotenant.PrincipalID) ([]gotenant.GlobalRoleID, error) {
	return copySlice(s.globalRoles[principal]), nil
}

// GlobalRolePermissions returns permissions bound to a global role.
func (s *Store) GlobalRolePermissions(ctx context.Context, role gotenant.GlobalRoleID) ([]gotenant.Permission, error) {
	return copySlice(s.globalRolePerms[role]), nil
}

func copySlice[T any](src []T) []T {
	if len(src) == 0 {
		return nil
	}
	out := make([]T, len(src))
	copy(out, src)
	return out
}

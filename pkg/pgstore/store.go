package pgstore

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mztlive/gotenant"
)

const (
	tenantActiveQuery = `SELECT active FROM tenants WHERE tenant_id = $1`

	principalActiveQuery = `SELECT active FROM tenant_principals
		WHERE tenant_id = $1 AND principal_id = $2`

	principalRolesQuery = `SELECT role_id FROM principal_roles
		WHERE tenant_id = $1 AND principal_id = $2
		ORDER BY role_id`

	rolePermissionsQuery = `SELECT permission FROM role_permissions
		WHERE tenant_id = $1 AND role_id = $2
		ORDER BY permission`

	roleInheritsQuery = `SELECT parent_id FROM role_inherits
		WHERE tenant_id = $1 AND role_id = $2
		ORDER BY parent_id`

	globalRolesQuery = `SELECT global_role_id FROM global_roles
		WHERE principal_id = $1
		ORDER BY global_role_id`

	globalRolePermissionsQuery = `SELECT permission FROM global_role_permissions
		WHERE global_role_id = $1
		ORDER BY permission`
)

// Store is a gotenant.Store backed by PostgreSQL. Unknown tenants and
// principals read as inactive; unknown roles read as empty sets, matching
// the deny-by-default posture of the engine.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a store on an existing connection pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// NewFromConfig connects per cfg, applies the embedded migrations, and
// returns a ready store.
func NewFromConfig(ctx context.Context, cfg Config) (*Store, error) {
	pool, err := Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := Migrate(ctx, pool, cfg); err != nil {
		pool.Close()
		return nil, err
	}
	return New(pool), nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() {
	s.pool.Close()
}

// TenantActive reports whether a tenant is active. Unknown tenants are
// inactive.
func (s *Store) TenantActive(ctx context.Context, tenant gotenant.TenantID) (bool, error) {
	var active bool
	err := s.pool.QueryRow(ctx, tenantActiveQuery, tenant.String()).Scan(&active)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return active, nil
}

// PrincipalActive reports whether a principal is active within a tenant.
// Unknown principals are inactive.
func (s *Store) PrincipalActive(ctx context.Context, tenant gotenant.TenantID, principal gotenant.PrincipalID) (bool, error) {
	var active bool
	err := s.pool.QueryRow(ctx, principalActiveQuery, tenant.String(), principal.String()).Scan(&active)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return active, nil
}

// PrincipalRoles returns roles directly assigned to a principal within a
// tenant.
func (s *Store) PrincipalRoles(ctx context.Context, tenant gotenant.TenantID, principal gotenant.PrincipalID) ([]gotenant.RoleID, error) {
	return queryStrings[gotenant.RoleID](ctx, s.pool, principalRolesQuery, tenant.String(), principal.String())
}

// RolePermissions returns permissions bound to a role within a tenant.
func (s *Store) RolePermissions(ctx context.Context, tenant gotenant.TenantID, role gotenant.RoleID) ([]gotenant.Permission, error) {
	return queryStrings[gotenant.Permission](ctx, s.pool, rolePermissionsQuery, tenant.String(), role.String())
}

// RoleInherits returns the direct parent roles of a role within a tenant.
func (s *Store) RoleInherits(ctx context.Context, tenant gotenant.TenantID, role gotenant.RoleID) ([]gotenant.RoleID, error) {
	return queryStrings[gotenant.RoleID](ctx, s.pool, roleInheritsQuery, tenant.String(), role.String())
}

// GlobalRoles returns global roles assigned to a principal.
func (s *Store) GlobalRoles(ctx context.Context, principal gotenant.PrincipalID) ([]gotenant.GlobalRoleID, error) {
	return queryStrings[gotenant.GlobalRoleID](ctx, s.pool, globalRolesQuery, principal.String())
}

// GlobalRolePermissions returns permissions bound to a global role.
func (s *Store) GlobalRolePermissions(ctx context.Context, role gotenant.GlobalRoleID) ([]gotenant.Permission, error) {
	return queryStrings[gotenant.Permission](ctx, s.pool, globalRolePermissionsQuery, role.String())
}

// queryStrings runs a single-column text query and converts the rows to the
// requested string-typed identifier.
func queryStrings[T ~string](ctx context.Context, pool *pgxpool.Pool, query string, args ...any) ([]T, error) {
	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, err
		}
		out = append(out, T(value))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

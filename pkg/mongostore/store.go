package mongostore

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/mztlive/gotenant"
)

// Collection names. Each collection holds one document per edge, mirroring
// the relational layout so the two store backends stay interchangeable.
const (
	tenantsCollection               = "tenants"
	tenantPrincipalsCollection      = "tenant_principals"
	principalRolesCollection        = "principal_roles"
	rolePermissionsCollection       = "role_permissions"
	roleInheritsCollection          = "role_inherits"
	globalRolesCollection           = "global_roles"
	globalRolePermissionsCollection = "global_role_permissions"
)

// Store is a gotenant.Store backed by MongoDB. Unknown tenants and
// principals read as inactive and unknown roles as empty sets.
type Store struct {
	db *mongo.Database
}

// New creates a store on an existing database handle.
func New(db *mongo.Database) *Store {
	return &Store{db: db}
}

// NewFromConfig connects per cfg and returns a store on the configured
// database.
func NewFromConfig(ctx context.Context, cfg Config) (*Store, error) {
	client, err := Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return New(client.Database(cfg.Database)), nil
}

// Close disconnects the underlying client.
func (s *Store) Close(ctx context.Context) error {
	return s.db.Client().Disconnect(ctx)
}

type activeDoc struct {
	Active bool `bson:"active"`
}

// TenantActive reports whether a tenant is active. Unknown tenants are
// inactive.
func (s *Store) TenantActive(ctx context.Context, tenant gotenant.TenantID) (bool, error) {
	var doc activeDoc
	err := s.db.Collection(tenantsCollection).
		FindOne(ctx, bson.M{"tenant_id": tenant.String()}).
		Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return doc.Active, nil
}

// PrincipalActive reports whether a principal is active within a tenant.
// Unknown principals are inactive.
func (s *Store) PrincipalActive(ctx context.Context, tenant gotenant.TenantID, principal gotenant.PrincipalID) (bool, error) {
	var doc activeDoc
	err := s.db.Collection(tenantPrincipalsCollection).
		FindOne(ctx, bson.M{"tenant_id": tenant.String(), "principal_id": principal.String()}).
		Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return doc.Active, nil
}

// PrincipalRoles returns roles directly assigned to a principal within a
// tenant.
func (s *Store) PrincipalRoles(ctx context.Context, tenant gotenant.TenantID, principal gotenant.PrincipalID) ([]gotenant.RoleID, error) {
	return findStrings[gotenant.RoleID](ctx, s.db.Collection(principalRolesCollection),
		bson.M{"tenant_id": tenant.String(), "principal_id": principal.String()}, "role_id")
}

// RolePermissions returns permissions bound to a role within a tenant.
func (s *Store) RolePermissions(ctx context.Context, tenant gotenant.TenantID, role gotenant.RoleID) ([]gotenant.Permission, error) {
	return findStrings[gotenant.Permission](ctx, s.db.Collection(rolePermissionsCollection),
		bson.M{"tenant_id": tenant.String(), "role_id": role.String()}, "permission")
}

// RoleInherits returns the direct parent roles of a role within a tenant.
func (s *Store) RoleInherits(ctx context.Context, tenant gotenant.TenantID, role gotenant.RoleID) ([]gotenant.RoleID, error) {
	return findStrings[gotenant.RoleID](ctx, s.db.Collection(roleInheritsCollection),
		bson.M{"tenant_id": tenant.String(), "role_id": role.String()}, "parent_id")
}

// GlobalRoles returns global roles assigned to a principal.
func (s *Store) GlobalRoles(ctx context.Context, principal gotenant.PrincipalID) ([]gotenant.GlobalRoleID, error) {
	return findStrings[gotenant.GlobalRoleID](ctx, s.db.Collection(globalRolesCollection),
		bson.M{"principal_id": principal.String()}, "global_role_id")
}

// GlobalRolePermissions returns permissions bound to a global role.
func (s *Store) GlobalRolePermissions(ctx context.Context, role gotenant.GlobalRoleID) ([]gotenant.Permission, error) {
	return findStrings[gotenant.Permission](ctx, s.db.Collection(globalRolePermissionsCollection),
		bson.M{"global_role_id": role.String()}, "permission")
}

// findStrings collects one string field from every document matching the
// filter and converts the values to the requested identifier type.
func findStrings[T ~string](ctx context.Context, coll *mongo.Collection, filter bson.M, field string) ([]T, error) {
	cursor, err := coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer func() { _ = cursor.Close(ctx) }()

	var out []T
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		if value, ok := doc[field].(string); ok {
			out = append(out, T(value))
		}
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

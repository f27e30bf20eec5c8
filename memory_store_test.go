package gotenant_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mztlive/gotenant"
)

func TestMemoryStore_UnknownKeysReadAsInactiveOrEmpty(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := gotenant.NewMemoryStore()

	active, err := store.TenantActive(ctx, "tenant_1")
	require.NoError(t, err)
	assert.False(t, active)

	active, err = store.PrincipalActive(ctx, "tenant_1", "user_1")
	require.NoError(t, err)
	assert.False(t, active)

	roles, err := store.PrincipalRoles(ctx, "tenant_1", "user_1")
	require.NoError(t, err)
	assert.Empty(t, roles)

	perms, err := store.RolePermissions(ctx, "tenant_1", "editor")
	require.NoError(t, err)
	assert.Empty(t, perms)

	parents, err := store.RoleInherits(ctx, "tenant_1", "editor")
	require.NoError(t, err)
	assert.Empty(t, parents)

	globals, err := store.GlobalRoles(ctx, "user_1")
	require.NoError(t, err)
	assert.Empty(t, globals)
}

func TestMemoryStore_BasicFlow(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := gotenant.NewMemoryStore()

	store.SetTenantActive("tenant_1", true)
	store.SetPrincipalActive("tenant_1", "user_1", true)
	store.AddPrincipalRole("tenant_1", "user_1", "editor")
	store.AddRolePermission("tenant_1", "editor", "invoice:read")
	store.AddRoleInherit("tenant_1", "editor", "viewer")
	store.AddGlobalRole("user_1", "support")
	store.AddGlobalRolePermission("support", "ticket:read")

	active, err := store.TenantActive(ctx, "tenant_1")
	require.NoError(t, err)
	assert.True(t, active)

	roles, err := store.PrincipalRoles(ctx, "tenant_1", "user_1")
	require.NoError(t, err)
	assert.Equal(t, []gotenant.RoleID{"editor"}, roles)

	perms, err := store.RolePermissions(ctx, "tenant_1", "editor")
	require.NoError(t, err)
	assert.Equal(t, []gotenant.Permission{"invoice:read"}, perms)

	parents, err := store.RoleInherits(ctx, "tenant_1", "editor")
	require.NoError(t, err)
	assert.Equal(t, []gotenant.RoleID{"viewer"}, parents)

	globals, err := store.GlobalRoles(ctx, "user_1")
	require.NoError(t, err)
	assert.Equal(t, []gotenant.GlobalRoleID{"support"}, globals)

	globalPerms, err := store.GlobalRolePermissions(ctx, "support")
	require.NoError(t, err)
	assert.Equal(t, []gotenant.Permission{"ticket:read"}, globalPerms)
}

func TestMemoryStore_DuplicateWritesAreIdempotent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := gotenant.NewMemoryStore()

	store.AddPrincipalRole("tenant_1", "user_1", "editor")
	store.AddPrincipalRole("tenant_1", "user_1", "editor")

	roles, err := store.PrincipalRoles(ctx, "tenant_1", "user_1")
	require.NoError(t, err)
	assert.Len(t, roles, 1)
}

func TestMemoryStore_ReturnsDefensiveCopies(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := gotenant.NewMemoryStore()

	store.AddRolePermission("tenant_1", "editor", "invoice:read")

	perms, err := store.RolePermissions(ctx, "tenant_1", "editor")
	require.NoError(t, err)
	perms[0] = "mutated:value"

	again, err := store.RolePermissions(ctx, "tenant_1", "editor")
	require.NoError(t, err)
	assert.Equal(t, []gotenant.Permission{"invoice:read"}, again)
}

package gotenant_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mztlive/gotenant"
)

func TestBuilder_Build(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		engine, err := gotenant.NewBuilder(gotenant.NewMemoryStore()).Build()
		require.NoError(t, err)
		assert.NotEmpty(t, engine.Signature())
	})

	t.Run("nil store", func(t *testing.T) {
		t.Parallel()
		_, err := gotenant.NewBuilder(nil).Build()
		assert.ErrorIs(t, err, gotenant.ErrNilStore)
	})

	t.Run("non-positive depth", func(t *testing.T) {
		t.Parallel()
		_, err := gotenant.NewBuilder(gotenant.NewMemoryStore()).MaxInheritDepth(0).Build()
		assert.ErrorIs(t, err, gotenant.ErrInvalidDepth)

		_, err = gotenant.NewBuilder(gotenant.NewMemoryStore()).MaxInheritDepth(-1).Build()
		assert.ErrorIs(t, err, gotenant.ErrInvalidDepth)
	})

	t.Run("double build", func(t *testing.T) {
		t.Parallel()
		builder := gotenant.NewBuilder(gotenant.NewMemoryStore())
		_, err := builder.Build()
		require.NoError(t, err)

		_, err = builder.Build()
		assert.ErrorIs(t, err, gotenant.ErrBuilderUsed)
	})

	t.Run("nil cache falls back to nop", func(t *testing.T) {
		t.Parallel()
		engine, err := gotenant.NewBuilder(gotenant.NewMemoryStore()).WithCache(nil).Build()
		require.NoError(t, err)

		// No cache means a decision still works, it just recomputes.
		decision, err := engine.Authorize(context.Background(), "tenant_1", "user_1", "invoice:read")
		require.NoError(t, err)
		assert.Equal(t, gotenant.Deny, decision)
	})
}

func TestBuilder_Signature(t *testing.T) {
	t.Parallel()

	build := func(t *testing.T, configure func(*gotenant.Builder) *gotenant.Builder) *gotenant.Engine {
		t.Helper()
		engine, err := configure(gotenant.NewBuilder(gotenant.NewMemoryStore())).Build()
		require.NoError(t, err)
		return engine
	}

	base := build(t, func(b *gotenant.Builder) *gotenant.Builder { return b })

	t.Run("deterministic for equal configuration", func(t *testing.T) {
		t.Parallel()
		same := build(t, func(b *gotenant.Builder) *gotenant.Builder { return b })
		assert.Equal(t, base.Signature(), same.Signature())
	})

	t.Run("differs per configuration field", func(t *testing.T) {
		t.Parallel()
		variants := map[string]*gotenant.Engine{
			"role hierarchy": build(t, func(b *gotenant.Builder) *gotenant.Builder { return b.EnableRoleHierarchy(true) }),
			"wildcard":       build(t, func(b *gotenant.Builder) *gotenant.Builder { return b.EnableWildcard(true) }),
			"depth":          build(t, func(b *gotenant.Builder) *gotenant.Builder { return b.MaxInheritDepth(8) }),
			"normalize":      build(t, func(b *gotenant.Builder) *gotenant.Builder { return b.NormalizePermissions(false) }),
		}
		seen := map[string]string{base.Signature(): "base"}
		for name, engine := range variants {
			prev, dup := seen[engine.Signature()]
			assert.False(t, dup, "%s collides with %s", name, prev)
			seen[engine.Signature()] = name
		}
	})
}

func TestBuilder_FromConfig(t *testing.T) {
	t.Parallel()

	cfg := gotenant.Config{
		RoleHierarchy:       true,
		Wildcard:            true,
		MaxInheritDepth:     4,
		PermissionNormalize: true,
	}

	store := gotenant.NewMemoryStore()
	store.SetTenantActive("tenant_1", true)
	store.SetPrincipalActive("tenant_1", "user_1", true)
	store.AddPrincipalRole("tenant_1", "user_1", "editor")
	store.AddRoleInherit("tenant_1", "editor", "viewer")
	store.AddRolePermission("tenant_1", "viewer", "invoice:*")

	engine, err := gotenant.NewBuilder(store).FromConfig(cfg).Build()
	require.NoError(t, err)

	// Both hierarchy and wildcard must be in effect for this to allow.
	decision, err := engine.Authorize(context.Background(), "tenant_1", "user_1", "invoice:read")
	require.NoError(t, err)
	assert.Equal(t, gotenant.Allow, decision)
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("GOTENANT_ROLE_HIERARCHY", "true")
	t.Setenv("GOTENANT_WILDCARD", "true")
	t.Setenv("GOTENANT_MAX_INHERIT_DEPTH", "8")
	t.Setenv("GOTENANT_PERMISSION_NORMALIZE", "false")
	t.Setenv("GOTENANT_CACHE_CAPACITY", "512")
	t.Setenv("GOTENANT_CACHE_TTL", "30s")
	t.Setenv("GOTENANT_CACHE_SHARDS", "4")

	cfg, err := gotenant.LoadConfig()
	require.NoError(t, err)

	assert.True(t, cfg.RoleHierarchy)
	assert.True(t, cfg.Wildcard)
	assert.Equal(t, 8, cfg.MaxInheritDepth)
	assert.False(t, cfg.PermissionNormalize)
	assert.Equal(t, 512, cfg.CacheCapacity)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Equal(t, 4, cfg.CacheShards)
}

func TestNewMemoryCacheFromConfig(t *testing.T) {
	t.Parallel()

	cache := gotenant.NewMemoryCacheFromConfig(gotenant.Config{
		CacheCapacity: 512,
		CacheTTL:      time.Minute,
		CacheShards:   4,
	})
	assert.Equal(t, 4, cache.ShardCount())

	disabled := gotenant.NewMemoryCacheFromConfig(gotenant.Config{})
	_, ok := disabled.GetPermissions(context.Background(), "tenant_1", "user_1")
	assert.False(t, ok)
}

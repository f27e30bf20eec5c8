package gotenant_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/mztlive/gotenant"
)

func benchStore(roles, permsPerRole int) *gotenant.MemoryStore {
	store := gotenant.NewMemoryStore()
	store.SetTenantActive("tenant_1", true)
	store.SetPrincipalActive("tenant_1", "user_1", true)
	for r := 0; r < roles; r++ {
		role := gotenant.RoleID(fmt.Sprintf("role_%d", r))
		store.AddPrincipalRole("tenant_1", "user_1", role)
		for p := 0; p < permsPerRole; p++ {
			store.AddRolePermission("tenant_1", role, gotenant.Permission(fmt.Sprintf("resource_%d_%d:read", r, p)))
		}
	}
	return store
}

func BenchmarkAuthorize_FlatNoCache(b *testing.B) {
	ctx := context.Background()
	engine, err := gotenant.NewBuilder(benchStore(4, 8)).Build()
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := engine.Authorize(ctx, "tenant_1", "user_1", "resource_0_0:read"); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkAuthorize_HotCache(b *testing.B) {
	ctx := context.Background()
	engine, err := gotenant.NewBuilder(benchStore(4, 8)).
		WithCache(gotenant.NewMemoryCache(1024)).
		Build()
	if err != nil {
		b.Fatal(err)
	}
	// Warm the cache.
	if _, err := engine.Authorize(ctx, "tenant_1", "user_1", "resource_0_0:read"); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := engine.Authorize(ctx, "tenant_1", "user_1", "resource_0_0:read"); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkAuthorize_HierarchyDepth8(b *testing.B) {
	ctx := context.Background()
	store := gotenant.NewMemoryStore()
	store.SetTenantActive("tenant_1", true)
	store.SetPrincipalActive("tenant_1", "user_1", true)
	store.AddPrincipalRole("tenant_1", "user_1", "role_1")
	for i := 1; i < 9; i++ {
		store.AddRoleInherit("tenant_1",
			gotenant.RoleID(fmt.Sprintf("role_%d", i)),
			gotenant.RoleID(fmt.Sprintf("role_%d", i+1)))
	}
	store.AddRolePermission("tenant_1", "role_9", "invoice:read")

	engine, err := gotenant.NewBuilder(store).EnableRoleHierarchy(true).Build()
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := engine.Authorize(ctx, "tenant_1", "user_1", "invoice:read"); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkAuthorize_RoleFanOut(b *testing.B) {
	ctx := context.Background()
	engine, err := gotenant.NewBuilder(benchStore(32, 8)).Build()
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		// Worst case: the required permission is bound to the last role.
		if _, err := engine.Authorize(ctx, "tenant_1", "user_1", "resource_31_7:read"); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkAuthorize_ParallelHotCache(b *testing.B) {
	for _, shards := range []int{1, 8} {
		b.Run(fmt.Sprintf("shards_%d", shards), func(b *testing.B) {
			ctx := context.Background()
			engine, err := gotenant.NewBuilder(benchStore(4, 8)).
				WithCache(gotenant.NewMemoryCache(1024, gotenant.WithShards(shards))).
				Build()
			if err != nil {
				b.Fatal(err)
			}
			if _, err := engine.Authorize(ctx, "tenant_1", "user_1", "resource_0_0:read"); err != nil {
				b.Fatal(err)
			}

			b.ResetTimer()
			b.RunParallel(func(pb *testing.PB) {
				for pb.Next() {
					if _, err := engine.Authorize(ctx, "tenant_1", "user_1", "resource_0_0:read"); err != nil {
						b.Fatal(err)
					}
				}
			})
		})
	}
}

func BenchmarkMatches(b *testing.B) {
	b.Run("exact", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			gotenant.Matches("invoice:read", "invoice:read", false, true)
		}
	})
	b.Run("wildcard", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			gotenant.Matches("invoice:*", "invoice:read", true, true)
		}
	})
}

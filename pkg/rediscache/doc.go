// Package rediscache provides a Redis-backed gotenant.Cache for sharing
// resolved permission sets across processes.
//
// Entries are stored as JSON under "<prefix><tenant>|<principal>" keys with a
// per-entry TTL enforced by Redis. Tenant-wide invalidation (including role
// invalidation, which purges the tenant) walks the tenant's key range with
// SCAN so it stays incremental on large keyspaces.
//
// The cache never surfaces backend errors: a failed read is a miss and a
// failed write is dropped, so a Redis outage degrades the engine to
// store-backed resolution instead of breaking authorization.
//
// # Usage
//
//	cfg, err := rediscache.LoadConfig()
//	if err != nil {
//		return err
//	}
//	cache, err := rediscache.NewFromConfig(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	engine, err := gotenant.NewBuilder(store).WithCache(cache).Build()
package rediscache

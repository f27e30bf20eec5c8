// Package pgstore provides a PostgreSQL-backed gotenant.Store on pgx.
//
// The schema is row-per-edge: activation flags live on tenants and
// tenant_principals, while role assignments, role permissions, inheritance
// edges, and global role grants are each a plain link table. Migrations are
// embedded in the binary and applied with goose.
//
// Unknown tenants and principals read as inactive and unknown roles as empty
// sets, so a store with no data denies everything rather than erroring.
//
// # Usage
//
//	cfg, err := pgstore.LoadConfig()
//	if err != nil {
//		return err
//	}
//	store, err := pgstore.NewFromConfig(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer store.Close()
//
//	engine, err := gotenant.NewBuilder(store).Build()
package pgstore

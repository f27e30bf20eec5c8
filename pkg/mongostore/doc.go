// Package mongostore provides a MongoDB-backed gotenant.Store.
//
// The document layout is one document per edge, mirroring the relational
// schema of pkg/pgstore: activation flags live in the tenants and
// tenant_principals collections, and role assignments, role permissions,
// inheritance edges, and global role grants are each their own collection.
// Keeping the backends shape-compatible makes switching between them a
// configuration change rather than a data-model migration.
//
// Unknown tenants and principals read as inactive and unknown roles as empty
// sets, so an empty database denies everything rather than erroring.
//
// # Usage
//
//	cfg, err := mongostore.LoadConfig()
//	if err != nil {
//		return err
//	}
//	store, err := mongostore.NewFromConfig(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer store.Close(ctx)
//
//	engine, err := gotenant.NewBuilder(store).Build()
package mongostore

package rediscache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mztlive/gotenant"
)

// keySeparator joins tenant and principal inside a cache key. It is not in
// the identifier charset, so keys parse unambiguously and per-tenant SCAN
// patterns cannot match across tenants.
const keySeparator = "|"

// DefaultKeyPrefix namespaces cache keys when no prefix option is given.
const DefaultKeyPrefix = "gotenant:"

// Cache is a gotenant.Cache backed by Redis, for sharing resolved permission
// sets across processes. Expiry is delegated to Redis TTLs, and tenant-wide
// invalidation walks the tenant's keys with SCAN.
//
// The gotenant.Cache interface is non-fallible; any Redis error is reported
// as a miss (or ignored on writes) and the engine falls back to the store.
type Cache struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// Option configures the cache.
type Option func(*Cache)

// WithKeyPrefix overrides the key namespace. Defaults to "gotenant:".
func WithKeyPrefix(prefix string) Option {
	return func(c *Cache) {
		c.prefix = prefix
	}
}

// WithTTL sets the expiry applied to stored entries. Zero means no expiry.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		c.ttl = ttl
	}
}

// New creates a Redis-backed cache on an existing client.
func New(client redis.UniversalClient, opts ...Option) *Cache {
	c := &Cache{
		client: client,
		prefix: DefaultKeyPrefix,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewFromConfig connects to Redis per cfg and returns a cache using the
// configured prefix and TTL.
func NewFromConfig(ctx context.Context, cfg Config) (*Cache, error) {
	client, err := Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return New(client, WithKeyPrefix(cfg.KeyPrefix), WithTTL(cfg.TTL)), nil
}

// payload is the stored JSON shape.
type payload struct {
	Signature   string   `json:"sig"`
	Permissions []string `json:"perms"`
}

func (c *Cache) key(tenant gotenant.TenantID, principal gotenant.PrincipalID) string {
	return c.prefix + tenant.String() + keySeparator + principal.String()
}

func (c *Cache) tenantPattern(tenant gotenant.TenantID) string {
	return c.prefix + tenant.String() + keySeparator + "*"
}

// GetPermissions returns the cached entry for a (tenant, principal) pair.
// Backend or decode failures are reported as a miss.
func (c *Cache) GetPermissions(ctx context.Context, tenant gotenant.TenantID, principal gotenant.PrincipalID) (gotenant.Entry, bool) {
	raw, err := c.client.Get(ctx, c.key(tenant, principal)).Bytes()
	if err != nil {
		return gotenant.Entry{}, false
	}

	var p payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return gotenant.Entry{}, false
	}

	perms := make([]gotenant.Permission, len(p.Permissions))
	for i, s := range p.Permissions {
		perms[i] = gotenant.Permission(s)
	}
	return gotenant.Entry{Signature: p.Signature, Permissions: perms}, true
}

// SetPermissions stores the entry for a (tenant, principal) pair with the
// configured TTL. Write failures are ignored.
func (c *Cache) SetPermissions(ctx context.Context, tenant gotenant.TenantID, principal gotenant.PrincipalID, entry gotenant.Entry) {
	perms := make([]string, len(entry.Permissions))
	for i, p := range entry.Permissions {
		perms[i] = p.String()
	}

	raw, err := json.Marshal(payload{Signature: entry.Signature, Permissions: perms})
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, c.key(tenant, principal), raw, c.ttl).Err()
}

// InvalidatePrincipal removes the entry for a single principal.
func (c *Cache) InvalidatePrincipal(ctx context.Context, tenant gotenant.TenantID, principal gotenant.PrincipalID) {
	_ = c.client.Del(ctx, c.key(tenant, principal)).Err()
}

// InvalidateRole removes entries affected by a role change. No reverse index
// maps roles to principals, so the whole tenant is purged.
func (c *Cache) InvalidateRole(ctx context.Context, tenant gotenant.TenantID, role gotenant.RoleID) {
	c.InvalidateTenant(ctx, tenant)
}

// InvalidateTenant removes all entries for a tenant by scanning the tenant's
// key range in batches.
func (c *Cache) InvalidateTenant(ctx context.Context, tenant gotenant.TenantID) {
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, c.tenantPattern(tenant), 100).Result()
		if err != nil {
			return
		}
		if len(keys) > 0 {
			_ = c.client.Del(ctx, keys...).Err()
		}
		if next == 0 {
			return
		}
		cursor = next
	}
}

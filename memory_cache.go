package gotenant

import (
	"container/list"
	"context"
	"hash/fnv"
	"runtime"
	"sync"
	"time"
)

const (
	// smallCacheShardThreshold is the capacity below which the cache keeps a
	// single shard to preserve strict global LRU ordering.
	smallCacheShardThreshold = 128

	// maxDefaultShards caps the auto-derived shard count.
	maxDefaultShards = 16
)

// MemoryCache is a sharded, TTL-aware LRU cache of effective-permission
// sets. The keyspace is partitioned into independently locked shards so
// concurrent engines contend only on the shard owning a given key. Shard
// locks guard only synchronous map and queue work and are released via
// defer, so a panicking caller can never leave a shard permanently locked.
//
// A capacity of zero disables caching entirely: every get misses and every
// set is a no-op.
type MemoryCache struct {
	shards   []*cacheShard
	capacity int
	ttl      time.Duration
}

// MemoryCacheOption configures a MemoryCache.
type MemoryCacheOption func(*memoryCacheConfig)

type memoryCacheConfig struct {
	shards int
	ttl    time.Duration
}

// WithShards overrides the shard count. The value is normalized the same way
// as the auto-derived default: at least one shard, at most one per capacity
// unit. Small caches should keep one shard so LRU ordering stays global.
func WithShards(n int) MemoryCacheOption {
	return func(c *memoryCacheConfig) {
		c.shards = n
	}
}

// WithTTL configures a time-to-live for cache entries. Entries older than
// the TTL are evicted on read and pruned on write.
func WithTTL(ttl time.Duration) MemoryCacheOption {
	return func(c *memoryCacheConfig) {
		c.ttl = ttl
	}
}

type cacheKey struct {
	tenant    TenantID
	principal PrincipalID
}

type cacheItem struct {
	key       cacheKey
	entry     Entry
	updatedAt time.Time
}

type cacheShard struct {
	mu       sync.Mutex
	capacity int
	items    map[cacheKey]*list.Element
	eviction *list.List // front is most recently used
}

// NewMemoryCache creates a cache with the given total capacity. The shard
// count defaults to one for small capacities and otherwise to the available
// parallelism, capped at maxDefaultShards.
func NewMemoryCache(capacity int, opts ...MemoryCacheOption) *MemoryCache {
	if capacity < 0 {
		capacity = 0
	}

	cfg := memoryCacheConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	shardCount := defaultShardCount(capacity)
	if cfg.shards > 0 {
		shardCount = normalizeShardCount(capacity, cfg.shards)
	}

	capacities := distributeCapacity(capacity, shardCount)
	shards := make([]*cacheShard, shardCount)
	for i := range shards {
		shards[i] = &cacheShard{
			capacity: capacities[i],
			items:    make(map[cacheKey]*list.Element),
			eviction: list.New(),
		}
	}

	return &MemoryCache{
		shards:   shards,
		capacity: capacity,
		ttl:      cfg.ttl,
	}
}

// GetPermissions implements Cache. A TTL-expired entry is evicted and
// reported as a miss; a hit is marked most recently used and returned as a
// defensive copy.
func (c *MemoryCache) GetPermissions(ctx context.Context, tenant TenantID, principal PrincipalID) (Entry, bool) {
	if c.capacity == 0 {
		return Entry{}, false
	}

	key := cacheKey{tenant: tenant, principal: principal}
	shard := c.shards[c.shardIndex(key)]
	shard.mu.Lock()
	defer shard.mu.Unlock()

	elem, ok := shard.items[key]
	if !ok {
		return Entry{}, false
	}
	item := elem.Value.(*cacheItem)
	if c.ttl > 0 && time.Since(item.updatedAt) > c.ttl {
		shard.remove(elem)
		return Entry{}, false
	}
	shard.eviction.MoveToFront(elem)
	return item.entry.clone(), true
}

// SetPermissions implements Cache. With a TTL configured it first prunes
// expired entries in the target shard, then inserts or refreshes the entry
// and evicts least recently used entries until the shard is within capacity.
func (c *MemoryCache) SetPermissions(ctx context.Context, tenant TenantID, principal PrincipalID, entry Entry) {
	if c.capacity == 0 {
		return
	}

	key := cacheKey{tenant: tenant, principal: principal}
	shard := c.shards[c.shardIndex(key)]
	shard.mu.Lock()
	defer shard.mu.Unlock()

	if c.ttl > 0 {
		shard.pruneExpired(c.ttl)
	}

	stored := entry.clone()
	if elem, ok := shard.items[key]; ok {
		item := elem.Value.(*cacheItem)
		item.entry = stored
		item.updatedAt = time.Now()
		shard.eviction.MoveToFront(elem)
	} else {
		item := &cacheItem{key: key, entry: stored, updatedAt: time.Now()}
		shard.items[key] = shard.eviction.PushFront(item)
	}
	shard.evictOverCapacity()
}

// InvalidatePrincipal implements Cache.
func (c *MemoryCache) InvalidatePrincipal(ctx context.Context, tenant TenantID, principal PrincipalID) {
	if c.capacity == 0 {
		return
	}

	key := cacheKey{tenant: tenant, principal: principal}
	shard := c.shards[c.shardIndex(key)]
	shard.mu.Lock()
	defer shard.mu.Unlock()

	if elem, ok := shard.items[key]; ok {
		shard.remove(elem)
	}
}

// InvalidateRole implements Cache. The cache keeps no role-to-principal
// reverse index, so a role change conservatively purges the whole tenant.
func (c *MemoryCache) InvalidateRole(ctx context.Context, tenant TenantID, role RoleID) {
	c.InvalidateTenant(ctx, tenant)
}

// InvalidateTenant implements Cache.
func (c *MemoryCache) InvalidateTenant(ctx context.Context, tenant TenantID) {
	if c.capacity == 0 {
		return
	}
	for _, shard := range c.shards {
		shard.invalidateTenant(tenant)
	}
}

// ShardCount returns the number of shards the keyspace is partitioned into.
func (c *MemoryCache) ShardCount() int {
	return len(c.shards)
}

// Len returns the total number of live entries across all shards.
func (c *MemoryCache) Len() int {
	total := 0
	for _, shard := range c.shards {
		shard.mu.Lock()
		total += len(shard.items)
		shard.mu.Unlock()
	}
	return total
}

// shardIndex maps a key to its shard via a stable FNV-1a hash of
// (tenant, 0x00, principal). The mapping is a pure function of the key, so
// concurrent operations on the same key always contend on the same shard.
func (c *MemoryCache) shardIndex(key cacheKey) int {
	h := fnv.New64a()
	h.Write([]byte(key.tenant))
	h.Write([]byte{0})
	h.Write([]byte(key.principal))
	return int(h.Sum64() % uint64(len(c.shards)))
}

func defaultShardCount(capacity int) int {
	if capacity < smallCacheShardThreshold {
		return 1
	}
	cpuShards := runtime.GOMAXPROCS(0)
	if cpuShards > maxDefaultShards {
		cpuShards = maxDefaultShards
	}
	return normalizeShardCount(capacity, cpuShards)
}

func normalizeShardCount(capacity, requested int) int {
	if capacity == 0 {
		return 1
	}
	if requested < 1 {
		requested = 1
	}
	if requested > capacity {
		requested = capacity
	}
	return requested
}

// distributeCapacity splits the total capacity across shards as evenly as
// possible, assigning the remainder to the earliest shards.
func distributeCapacity(capacity, shardCount int) []int {
	base := capacity / shardCount
	remainder := capacity % shardCount
	capacities := make([]int, shardCount)
	for i := range capacities {
		capacities[i] = base
		if i < remainder {
			capacities[i]++
		}
	}
	return capacities
}

// remove must be called with the shard lock held.
func (s *cacheShard) remove(elem *list.Element) {
	item := elem.Value.(*cacheItem)
	s.eviction.Remove(elem)
	delete(s.items, item.key)
}

// pruneExpired must be called with the shard lock held.
func (s *cacheShard) pruneExpired(ttl time.Duration) {
	now := time.Now()
	for elem := s.eviction.Front(); elem != nil; {
		next := elem.Next()
		item := elem.Value.(*cacheItem)
		if now.Sub(item.updatedAt) > ttl {
			s.remove(elem)
		}
		elem = next
	}
}

// evictOverCapacity must be called with the shard lock held. A shard with
// zero allotted capacity holds nothing.
func (s *cacheShard) evictOverCapacity() {
	if s.capacity == 0 {
		s.items = make(map[cacheKey]*list.Element)
		s.eviction.Init()
		return
	}
	for len(s.items) > s.capacity {
		elem := s.eviction.Back()
		if elem == nil {
			return
		}
		s.remove(elem)
	}
}

func (s *cacheShard) invalidateTenant(tenant TenantID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for elem := s.eviction.Front(); elem != nil; {
		next := elem.Next()
		if elem.Value.(*cacheItem).key.tenant == tenant {
			s.remove(elem)
		}
		elem = next
	}
}

package service

import (
	"container/list"
	"hash/fnv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hyperkh65/loadsim/internal/domain/model"
	"github.com/hyperkh65/loadsim/internal/metrics"
	"github.com/hyperkh65/loadsim/internal/service/cache"
)

// ShardedCache spreads simulations across several LRU shards selected by an
// FNV hash of the fingerprint, so concurrent requests rarely share a lock.
type ShardedCache struct {
	shards    []*ttlCache
	shardMask uint32
}

// NewShardedCache creates a sharded cache with the given total capacity and
// TTL. numShards is rounded up to a power of two; non-positive means 16.
func NewShardedCache(capacity int, ttl time.Duration, numShards int) *ShardedCache {
	if numShards <= 0 {
		numShards = 16
	}
	n := 1
	for n < numShards {
		n <<= 1
	}
	perShard := max(capacity/n, 1)

	shards := make([]*ttlCache, n)
	for i := range shards {
		shards[i] = newTTLCache(perShard, ttl)
	}
	return &ShardedCache{shards: shards, shardMask: uint32(n - 1)}
}

func (sc *ShardedCache) shard(key string) *ttlCache {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return sc.shards[h.Sum32()&sc.shardMask]
}

// Get retrieves a simulation from the owning shard.
func (sc *ShardedCache) Get(key string) (model.Simulation, bool) {
	return sc.shard(key).Get(key)
}

// Set stores a simulation in the owning shard.
func (sc *ShardedCache) Set(key string, value model.Simulation) {
	sc.shard(key).Set(key, value)
}

// Invalidate removes a key from the owning shard.
func (sc *ShardedCache) Invalidate(key string) {
	sc.shard(key).Invalidate(key)
}

// Clear removes all entries from all shards.
func (sc *ShardedCache) Clear() {
	for _, s := range sc.shards {
		s.Clear()
	}
}

// Stop shuts down the cleanup goroutine of every shard.
func (sc *ShardedCache) Stop() {
	for _, s := range sc.shards {
		s.Stop()
	}
}

// Metrics returns the sum of all shard metrics.
func (sc *ShardedCache) Metrics() cache.Metrics {
	var total cache.Metrics
	for _, s := range sc.shards {
		m := s.Metrics()
		total.Hits += m.Hits
		total.Misses += m.Misses
		total.Evictions += m.Evictions
		total.Size += m.Size
		total.Capacity += m.Capacity
	}
	return total
}

// ttlCache is an LRU cache whose entries also expire after a TTL. The list
// front is the most recently used entry.
type ttlCache struct {
	capacity int
	ttl      time.Duration

	mu    sync.Mutex
	order *list.List
	items map[string]*list.Element

	stopCh   chan struct{}
	stopOnce sync.Once

	hits, misses, evictions atomic.Int64
}

type cacheEntry struct {
	key       string
	sim       model.Simulation
	expiresAt time.Time
}

// newTTLCache starts a goroutine that sweeps expired entries until Stop.
func newTTLCache(capacity int, ttl time.Duration) *ttlCache {
	capacity = max(capacity, 1)
	c := &ttlCache{
		capacity: capacity,
		ttl:      ttl,
		order:    list.New(),
		items:    make(map[string]*list.Element, capacity),
		stopCh:   make(chan struct{}),
	}
	go c.sweepLoop(cleanupInterval(ttl))
	return c
}

func cleanupInterval(ttl time.Duration) time.Duration {
	if ttl <= 0 || ttl > time.Minute {
		return time.Minute
	}
	return ttl
}

// Stop is safe to call more than once.
func (c *ttlCache) Stop() {
	c.stopOnce.Do(func() { close(c.stopCh) })
}

func (c *ttlCache) Metrics() cache.Metrics {
	c.mu.Lock()
	size := c.order.Len()
	c.mu.Unlock()

	return cache.Metrics{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
		Size:      size,
		Capacity:  c.capacity,
	}
}

func (c *ttlCache) Get(key string) (model.Simulation, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		c.misses.Add(1)
		metrics.RecordCacheOperation("get", "miss")
		return model.Simulation{}, false
	}
	entry := el.Value.(*cacheEntry)
	if time.Now().After(entry.expiresAt) {
		c.remove(el)
		c.misses.Add(1)
		metrics.RecordCacheOperation("get", "expired")
		return model.Simulation{}, false
	}

	c.order.MoveToFront(el)
	c.hits.Add(1)
	metrics.RecordCacheOperation("get", "hit")
	return entry.sim, true
}

// Set stores or refreshes key. A full cache evicts its least recently used
// entry.
func (c *ttlCache) Set(key string, sim model.Simulation) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := time.Now().Add(c.ttl)
	if el, ok := c.items[key]; ok {
		entry := el.Value.(*cacheEntry)
		entry.sim = sim
		entry.expiresAt = expiresAt
		c.order.MoveToFront(el)
		return
	}

	c.items[key] = c.order.PushFront(&cacheEntry{key: key, sim: sim, expiresAt: expiresAt})
	if c.order.Len() > c.capacity {
		c.remove(c.order.Back())
		c.evictions.Add(1)
		metrics.RecordCacheOperation("evict", "capacity")
	}
	metrics.RecordCacheOperation("set", "success")
}

func (c *ttlCache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		c.remove(el)
		metrics.RecordCacheOperation("invalidate", "success")
	}
}

// Clear drops every entry and resets the counters.
func (c *ttlCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.order.Init()
	clear(c.items)
	c.hits.Store(0)
	c.misses.Store(0)
	c.evictions.Store(0)
	metrics.RecordCacheOperation("clear", "success")
}

func (c *ttlCache) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanup()
		case <-c.stopCh:
			return
		}
	}
}

// cleanup removes every expired entry.
func (c *ttlCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for el := c.order.Back(); el != nil; {
		prev := el.Prev()
		if now.After(el.Value.(*cacheEntry).expiresAt) {
			c.remove(el)
		}
		el = prev
	}
}

// remove must be called with mu held.
func (c *ttlCache) remove(el *list.Element) {
	if el == nil {
		return
	}
	delete(c.items, el.Value.(*cacheEntry).key)
	c.order.Remove(el)
}

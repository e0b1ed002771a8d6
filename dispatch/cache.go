package dispatch

import (
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
)

const numCacheShards = 8

// resolveCache memoizes resolution outcomes per concrete key type. It is
// sharded by a hash of the type name so init-phase writers contend less, and
// every shard is published copy-on-write so readers never lock.
//
// The cache records the ancestry table version it was built against; a stale
// version empties it lazily on the next read. A separate generation counter
// is bumped on every invalidation so that a put computed before an
// invalidation cannot land after it.
type resolveCache struct {
	version atomic.Uint64
	gen     atomic.Uint64
	shards  [numCacheShards]cacheShard
}

type cacheShard struct {
	mu      sync.Mutex
	entries atomic.Pointer[map[reflect.Type]Callable]
}

func newResolveCache() *resolveCache {
	c := &resolveCache{}
	c.version.Store(hierarchy.version.Load())
	for i := range c.shards {
		empty := make(map[reflect.Type]Callable)
		c.shards[i].entries.Store(&empty)
	}
	return c
}

func shardIndexOf(t reflect.Type) int {
	return int(xxhash.Sum64String(t.String()) % numCacheShards)
}

func (c *resolveCache) get(t reflect.Type) (Callable, bool) {
	if c.version.Load() != hierarchy.version.Load() {
		c.invalidate()
		return nil, false
	}
	impl, ok := (*c.shards[shardIndexOf(t)].entries.Load())[t]
	return impl, ok
}

// generation returns the current invalidation generation. Callers snapshot it
// before resolving and hand it back to put.
func (c *resolveCache) generation() uint64 {
	return c.gen.Load()
}

// put stores a resolution outcome computed at generation gen. If the cache
// has been invalidated since, the entry is stale and is dropped.
func (c *resolveCache) put(t reflect.Type, impl Callable, gen uint64) {
	shard := &c.shards[shardIndexOf(t)]
	shard.mu.Lock()
	defer shard.mu.Unlock()
	if c.gen.Load() != gen {
		return
	}
	cur := *shard.entries.Load()
	next := make(map[reflect.Type]Callable, len(cur)+1)
	for k, v := range cur {
		next[k] = v
	}
	next[t] = impl
	shard.entries.Store(&next)
}

func (c *resolveCache) invalidate() {
	c.gen.Add(1)
	for i := range c.shards {
		shard := &c.shards[i]
		shard.mu.Lock()
		empty := make(map[reflect.Type]Callable)
		shard.entries.Store(&empty)
		shard.mu.Unlock()
	}
	c.version.Store(hierarchy.version.Load())
}

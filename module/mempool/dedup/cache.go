package dedup

import (
	"sync"

	"github.com/google/btree"

	"github.com/ledgerd/recordcache/model/ledger"
	"github.com/ledgerd/recordcache/module"
	"github.com/ledgerd/recordcache/module/mempool"
	"github.com/ledgerd/recordcache/module/updatable_configs"
)

const degree = 32

// Cache implements mempool.DeduplicationCache on a B-tree ordered by transaction id.
// Because ids sort by valid start first, expired entries always form a prefix of the
// tree and pruning stops at the first entry still inside the window.
type Cache struct {
	mu      sync.Mutex
	tree    *btree.BTreeG[ledger.TransactionID]
	clock   module.ConsensusClock
	configs *updatable_configs.CacheConfigs
	metrics module.DeduplicationMetrics
}

var _ mempool.DeduplicationCache = (*Cache)(nil)

// NewCache returns an empty cache whose window is derived from the clock and configs
// on every call.
func NewCache(clock module.ConsensusClock, configs *updatable_configs.CacheConfigs, metrics module.DeduplicationMetrics) *Cache {
	return &Cache{
		tree:    btree.NewG(degree, ledger.TransactionID.Less),
		clock:   clock,
		configs: configs,
		metrics: metrics,
	}
}

// Add prunes expired entries and inserts id if it is inside the window.
func (c *Cache) Add(id ledger.TransactionID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	earliest := c.prune()
	if id.ValidStart.Seconds >= earliest {
		c.tree.ReplaceOrInsert(id)
	}
	c.metrics.DeduplicationCacheSize(c.tree.Len())
}

// Contains prunes expired entries and tests membership of the exact id.
func (c *Cache) Contains(id ledger.TransactionID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.prune()
	return c.tree.Has(id)
}

// Clear removes all entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.tree.Clear(false)
	c.metrics.DeduplicationCacheSize(0)
}

// Size returns the number of entries currently held.
func (c *Cache) Size() uint {
	c.mu.Lock()
	defer c.mu.Unlock()

	return uint(c.tree.Len())
}

// prune removes the expired prefix of the tree and returns the earliest valid-start
// second still inside the window. Caller must hold the lock.
func (c *Cache) prune() int64 {
	earliest := c.configs.EarliestValidStart(c.clock.CurrentConsensusTime())

	pruned := 0
	for {
		oldest, ok := c.tree.Min()
		if !ok || oldest.ValidStart.Seconds >= earliest {
			break
		}
		c.tree.DeleteMin()
		pruned++
	}
	if pruned > 0 {
		c.metrics.DeduplicationEntriesPruned(pruned)
		c.metrics.DeduplicationCacheSize(c.tree.Len())
	}
	return earliest
}

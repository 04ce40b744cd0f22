// Package cache declares the simulation result cache contract.
package cache

import "github.com/hyperkh65/loadsim/internal/domain/model"

// Cache stores simulations by input fingerprint.
type Cache interface {
	Get(key string) (model.Simulation, bool)
	Set(key string, value model.Simulation)
	Invalidate(key string)
	Clear()
	Stop()
}

// Metrics provides cache performance metrics.
type Metrics struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int
	Capacity  int
}

// CacheWithMetrics extends Cache with metrics reporting.
type CacheWithMetrics interface {
	Cache
	Metrics() Metrics
}

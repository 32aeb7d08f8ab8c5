// Package cache holds the day-scoped result cache. The external search API
// allows only a few hundred calls per day, so each (day, option) pair is
// resolved at most once per calendar day.
package cache

import (
	"sync"
	"time"

	"github.com/hindsight-hq/past-news/internal/domain"
)

// Daily is an in-memory cache keyed by (calendar day, option). All resident
// entries belong to a single day: the first write observed for a new day
// wipes everything from the previous one, so the cache never holds mixed
// days. Safe for concurrent use.
type Daily struct {
	mu      sync.Mutex
	day     time.Time
	entries map[domain.Option]domain.Result
}

// NewDaily returns an empty cache.
func NewDaily() *Daily {
	return &Daily{entries: make(map[domain.Option]domain.Result)}
}

// Get returns the entry stored for (day, opt), if any. A day other than the
// resident one is always a miss.
func (c *Daily) Get(day time.Time, opt domain.Option) (domain.Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.day.Equal(day) {
		return domain.Result{}, false
	}
	res, ok := c.entries[opt]
	return res, ok
}

// Put stores the entry for (day, opt). When day differs from the resident
// day the whole cache is cleared first and day becomes the new resident day.
// The check-clear-write sequence runs under one lock. Random results are
// silently discarded; they must never be served from cache.
func (c *Daily) Put(day time.Time, opt domain.Option, res domain.Result) {
	if !opt.Cacheable() {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.day.Equal(day) {
		clear(c.entries)
		c.day = day
	}
	c.entries[opt] = res
}

// Len reports how many entries are resident.
func (c *Daily) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Homepage API - Dashboard Backend for Weather, Transit and Traffic
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/homepage-api

package cache

import (
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/homepage-api/internal/clock"
	"github.com/tomtom215/homepage-api/internal/metrics"
)

// entry is a cached value with its creation instant and lifetime.
type entry[T any] struct {
	value     T
	createdAt time.Time
	ttl       time.Duration
}

func (e entry[T]) fresh(now time.Time) bool {
	return now.Before(e.createdAt.Add(e.ttl))
}

// Stats tracks cache performance counters.
type Stats struct {
	Hits     int64
	Misses   int64
	Rebuilds int64
	Failures int64
	Entries  int
}

// HitRate returns hits as a percentage of all lookups.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100
}

// Expiring is a thread-safe cache holding at most one entry per key.
type Expiring[T any] struct {
	name  string
	clock clock.Clock

	mu      sync.RWMutex
	entries map[string]entry[T]

	group singleflight.Group

	hits     atomic.Int64
	misses   atomic.Int64
	rebuilds atomic.Int64
	failures atomic.Int64
}

// NewExpiring creates an empty cache. name labels the cache in metrics and
// logs; clk supplies the current time for freshness checks.
func NewExpiring[T any](name string, clk clock.Clock) *Expiring[T] {
	if clk == nil {
		clk = clock.System{}
	}
	return &Expiring[T]{
		name:    name,
		clock:   clk,
		entries: make(map[string]entry[T]),
	}
}

// Get returns the value stored under key while it is fresh. Otherwise it calls
// factory, stores the result with the current time and returns it.
//
// When factory fails the error is returned as is and the cache is not touched.
func (c *Expiring[T]) Get(key string, ttl time.Duration, factory func() (T, error)) (T, error) {
	if v, ok := c.lookup(key); ok {
		c.hits.Add(1)
		metrics.RecordCacheHit(c.name)
		return v, nil
	}

	c.misses.Add(1)
	metrics.RecordCacheMiss(c.name)

	result, err, _ := c.group.Do(key, func() (interface{}, error) {
		// A flight that finished just before this one may already have stored it.
		if v, ok := c.lookup(key); ok {
			return v, nil
		}

		value, err := factory()
		if err != nil {
			c.failures.Add(1)
			metrics.RecordCacheFailure(c.name)
			return nil, err
		}

		c.store(key, entry[T]{value: value, createdAt: c.clock.Now(), ttl: ttl})
		c.rebuilds.Add(1)
		return value, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}

	value, _ := result.(T)
	return value, nil
}

func (c *Expiring[T]) lookup(key string) (T, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || !e.fresh(c.clock.Now()) {
		var zero T
		return zero, false
	}
	return e.value, true
}

func (c *Expiring[T]) store(key string, e entry[T]) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.entries[key]; ok && existing.createdAt.After(e.createdAt) {
		return
	}
	c.entries[key] = e
	metrics.CacheEntries.WithLabelValues(c.name).Set(float64(len(c.entries)))
}

// Peek returns the stored value and its creation time without checking
// freshness or calling a factory.
func (c *Expiring[T]) Peek(key string) (T, time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	return e.value, e.createdAt, ok
}

// Clear removes all entries.
func (c *Expiring[T]) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]entry[T])
	c.mu.Unlock()

	metrics.CacheEntries.WithLabelValues(c.name).Set(0)
}

// Name returns the metrics label of the cache.
func (c *Expiring[T]) Name() string {
	return c.name
}

// Stats returns a snapshot of the cache counters.
func (c *Expiring[T]) Stats() Stats {
	c.mu.RLock()
	n := len(c.entries)
	c.mu.RUnlock()

	return Stats{
		Hits:     c.hits.Load(),
		Misses:   c.misses.Load(),
		Rebuilds: c.rebuilds.Load(),
		Failures: c.failures.Load(),
		Entries:  n,
	}
}

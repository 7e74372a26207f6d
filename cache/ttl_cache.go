// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package cache

import (
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type ttlEntry[V any] struct {
	value   V
	fetched time.Time
}

// TTLCache memoizes fetched values for a fixed time. Concurrent misses on
// the same key share a single fetch.
type TTLCache[K comparable, V any] struct {
	ttl time.Duration
	now func() time.Time

	lock    sync.RWMutex
	data    map[K]ttlEntry[V]
	sfGroup singleflight.Group
}

func NewTTLCache[K comparable, V any](ttl time.Duration) *TTLCache[K, V] {
	return &TTLCache[K, V]{
		ttl:  ttl,
		now:  time.Now,
		data: make(map[K]ttlEntry[V]),
	}
}

// Get returns the value cached for key while it is younger than the TTL, and
// otherwise fetches it. Failed fetches are not cached. If [invalidate] is true
// the entry is dropped first so no caller can observe the stale value.
func (c *TTLCache[K, V]) Get(key K, fetchFunc func(K) (V, error), invalidate bool) (V, error) {
	if invalidate {
		c.Invalidate(key)
	} else if value, ok := c.lookup(key); ok {
		return value, nil
	}

	v, err, _ := c.sfGroup.Do(keyToString(key), func() (interface{}, error) {
		value, err := fetchFunc(key)
		if err != nil {
			return nil, err
		}
		c.lock.Lock()
		c.data[key] = ttlEntry[V]{value: value, fetched: c.now()}
		c.lock.Unlock()
		return value, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return v.(V), nil
}

func (c *TTLCache[K, V]) lookup(key K) (V, bool) {
	c.lock.RLock()
	defer c.lock.RUnlock()

	entry, ok := c.data[key]
	if !ok || c.now().Sub(entry.fetched) >= c.ttl {
		var zero V
		return zero, false
	}
	return entry.value, true
}

// Invalidate drops the entry for key.
func (c *TTLCache[K, V]) Invalidate(key K) {
	c.lock.Lock()
	delete(c.data, key)
	c.lock.Unlock()
}

// Prune drops every expired entry and returns how many were removed.
func (c *TTLCache[K, V]) Prune() int {
	c.lock.Lock()
	defer c.lock.Unlock()

	now := c.now()
	removed := 0
	for key, entry := range c.data {
		if now.Sub(entry.fetched) >= c.ttl {
			delete(c.data, key)
			removed++
		}
	}
	return removed
}

// keyToString accepts both fmt.Stringer keys and primitive ones.
func keyToString[K comparable](key K) string {
	if s, ok := any(key).(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%v", key)
}

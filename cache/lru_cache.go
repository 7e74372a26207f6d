// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// LRUCache is a bounded cache for values that never go stale, such as
// "this message was already executed".
type LRUCache[K comparable, V any] struct {
	cache *lru.Cache[K, V]
}

func NewLRUCache[K comparable, V any](size int) (*LRUCache[K, V], error) {
	c, err := lru.New[K, V](size)
	if err != nil {
		return nil, err
	}
	return &LRUCache[K, V]{cache: c}, nil
}

// ContainsOrAdd adds key if absent and reports whether it was already there.
// The check and insert are atomic.
func (c *LRUCache[K, V]) ContainsOrAdd(key K, value V) bool {
	found, _ := c.cache.ContainsOrAdd(key, value)
	return found
}

// Len returns how many keys are cached.
func (c *LRUCache[K, V]) Len() int {
	return c.cache.Len()
}

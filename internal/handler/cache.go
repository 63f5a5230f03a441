package handler

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// DefaultCacheSize bounds the reply cache when no size is configured.
const DefaultCacheSize = 1000

// replyCache remembers replies per query for ttl, evicting the least
// recently used entry once size is reached. A non-positive ttl disables it.
type replyCache struct {
	lru *expirable.LRU[string, string]
}

func newReplyCache(ttl time.Duration, size int) *replyCache {
	if ttl <= 0 {
		return &replyCache{}
	}
	if size <= 0 {
		size = DefaultCacheSize
	}
	return &replyCache{lru: expirable.NewLRU[string, string](size, nil, ttl)}
}

func (c *replyCache) Get(key string) (string, bool) {
	if c.lru == nil {
		return "", false
	}
	return c.lru.Get(key)
}

func (c *replyCache) Set(key, value string) {
	if c.lru == nil {
		return
	}
	c.lru.Add(key, value)
}

func (c *replyCache) Len() int {
	if c.lru == nil {
		return 0
	}
	return c.lru.Len()
}

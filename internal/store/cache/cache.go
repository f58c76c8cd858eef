// Package cache is a small read-through cache for the public list
// endpoints, backed by Redis. Every admin write bumps a version counter,
// which implicitly abandons all previously cached payloads.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const versionKey = "dir:ver"

type Cache struct {
	rdb  *redis.Client
	ttl  time.Duration
	opTO time.Duration
}

// New wraps rdb; a nil client yields a disabled cache where Get always
// misses and Set/Bump are no-ops.
func New(rdb *redis.Client) *Cache {
	return &Cache{
		rdb:  rdb,
		ttl:  5 * time.Minute,
		opTO: 150 * time.Millisecond,
	}
}

func (c *Cache) enabled() bool { return c != nil && c.rdb != nil }

func (c *Cache) key(ctx context.Context, block string) (string, error) {
	ver, err := c.rdb.Get(ctx, versionKey).Int64()
	if err != nil && err != redis.Nil {
		return "", err
	}
	return fmt.Sprintf("dir:v%d:%s", ver, block), nil
}

// Get returns the cached payload for block, or ok=false on miss or any
// Redis error. Callers always fall back to the store.
func (c *Cache) Get(ctx context.Context, block string) ([]byte, bool) {
	if !c.enabled() {
		return nil, false
	}
	ctx, cancel := context.WithTimeout(ctx, c.opTO)
	defer cancel()

	key, err := c.key(ctx, block)
	if err != nil {
		return nil, false
	}
	buf, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return buf, true
}

func (c *Cache) Set(ctx context.Context, block string, buf []byte) {
	if !c.enabled() {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, c.opTO)
	defer cancel()

	key, err := c.key(ctx, block)
	if err != nil {
		return
	}
	_ = c.rdb.Set(ctx, key, buf, c.ttl).Err()
}

// Bump invalidates every cached block by advancing the version counter.
func (c *Cache) Bump(ctx context.Context) {
	if !c.enabled() {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, c.opTO)
	defer cancel()
	_ = c.rdb.Incr(ctx, versionKey).Err()
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// CacheStore is the byte-level storage behind Cache. A missing key is
// reported as redis.Nil.
type CacheStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	Keys(ctx context.Context, pattern string) ([]string, error)
}

type redisStore struct {
	client *redis.Client
}

// NewRedisStore adapts client to CacheStore.
func NewRedisStore(client *redis.Client) CacheStore {
	return &redisStore{client: client}
}

func (r *redisStore) Get(ctx context.Context, key string) ([]byte, error) {
	return r.client.Get(ctx, key).Bytes()
}

func (r *redisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *redisStore) Del(ctx context.Context, keys ...string) error {
	return r.client.Del(ctx, keys...).Err()
}

// Keys walks the keyspace with SCAN so large databases are not blocked.
func (r *redisStore) Keys(ctx context.Context, pattern string) ([]string, error) {
	iter := r.client.Scan(ctx, 0, pattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	return keys, iter.Err()
}

// Cache is a read-through JSON cache. Every failure is logged and
// reported as a miss, so the database stays authoritative. A nil or
// disabled Cache does nothing.
type Cache struct {
	store   CacheStore
	ttl     time.Duration
	enabled bool
	logger  *zerolog.Logger
}

const cacheKeyPrefix = "carcatalog:"

func NewCache(store CacheStore, ttl time.Duration, enabled bool, logger *zerolog.Logger) *Cache {
	return &Cache{
		store:   store,
		ttl:     ttl,
		enabled: enabled && store != nil,
		logger:  logger,
	}
}

func (c *Cache) active() bool {
	return c != nil && c.enabled
}

// log prefers the request logger carried by ctx so warnings keep the
// request id.
func (c *Cache) log(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return c.logger
}

// Get decodes the cached value of key into dest and reports a hit.
func (c *Cache) Get(ctx context.Context, key string, dest any) bool {
	if !c.active() {
		return false
	}

	raw, err := c.store.Get(ctx, cacheKeyPrefix+key)
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log(ctx).Warn().Err(err).Str("key", key).Msg("cache get failed")
		}
		return false
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		c.log(ctx).Warn().Err(err).Str("key", key).Msg("cache entry undecodable")
		return false
	}
	return true
}

func (c *Cache) Set(ctx context.Context, key string, value any) {
	if !c.active() {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		c.log(ctx).Warn().Err(err).Str("key", key).Msg("cache encode failed")
		return
	}

	if err := c.store.Set(ctx, cacheKeyPrefix+key, raw, c.ttl); err != nil {
		c.log(ctx).Warn().Err(err).Str("key", key).Msg("cache set failed")
	}
}

func (c *Cache) Delete(ctx context.Context, keys ...string) {
	if !c.active() || len(keys) == 0 {
		return
	}

	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = cacheKeyPrefix + k
	}

	if err := c.store.Del(ctx, full...); err != nil {
		c.log(ctx).Warn().Err(err).Strs("keys", keys).Msg("cache delete failed")
	}
}

// DeletePrefix removes every key starting with prefix.
func (c *Cache) DeletePrefix(ctx context.Context, prefix string) {
	if !c.active() {
		return
	}

	keys, err := c.store.Keys(ctx, cacheKeyPrefix+prefix+"*")
	if err != nil {
		c.log(ctx).Warn().Err(err).Str("prefix", prefix).Msg("cache scan failed")
		return
	}
	if len(keys) == 0 {
		return
	}

	if err := c.store.Del(ctx, keys...); err != nil {
		c.log(ctx).Warn().Err(err).Str("prefix", prefix).Msg("cache delete failed")
	}
}

package llm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/redis/go-redis/v9"
)

// Cache keeps translations keyed by language and source text. Lookups never fail,
// any backend error is a miss.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string)
}

// CacheKey builds the cache key of a text in the given language
func CacheKey(language, text string) string {
	return language + ":" + text
}

// MemoryCache is a bounded in-process cache, it drops everything once full
type MemoryCache struct {
	mu      sync.RWMutex
	data    map[string]string
	maxSize int
}

// NewMemoryCache makes an in-memory cache holding up to maxSize entries
func NewMemoryCache(maxSize int) *MemoryCache {
	if maxSize <= 0 {
		maxSize = 10000
	}
	return &MemoryCache{data: make(map[string]string), maxSize: maxSize}
}

// Get returns cached value
func (m *MemoryCache) Get(_ context.Context, key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok
}

// Set stores value
func (m *MemoryCache) Set(_ context.Context, key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.data) >= m.maxSize {
		m.data = make(map[string]string)
	}
	m.data[key] = value
}

// RedisCache stores translations in redis with expiration
type RedisCache struct {
	client redis.UniversalClient
	ttl    time.Duration
	prefix string
}

// NewRedisCache makes a cache on top of redis client
func NewRedisCache(client redis.UniversalClient, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl, prefix: "reviewscope:translation:"}
}

// Get returns cached value, redis errors are logged and reported as a miss
func (r *RedisCache) Get(ctx context.Context, key string) (string, bool) {
	v, err := r.client.Get(ctx, r.key(key)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			lgr.Printf("[WARN] translation cache get failed: %v", err)
		}
		return "", false
	}
	return v, true
}

// Set stores value, failures are logged only
func (r *RedisCache) Set(ctx context.Context, key, value string) {
	if err := r.client.Set(ctx, r.key(key), value, r.ttl).Err(); err != nil {
		lgr.Printf("[WARN] translation cache set failed: %v", err)
	}
}

// key hashes the source text, review texts are too long for readable keys
func (r *RedisCache) key(k string) string {
	sum := sha256.Sum256([]byte(k))
	return r.prefix + hex.EncodeToString(sum[:])
}

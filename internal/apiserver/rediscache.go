// rediscache adapts redis/go-redis/v9 to pkg/cache's WordStore and
// ViabilityStore interfaces, letting several worker processes share
// word/viability cache entries per dictionary instead of each paying
// for cold patterns on its own.
package apiserver

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// entryTTL bounds how long a cached pattern survives in redis. Caches
// are unbounded for the lifetime of one in-process Fill call per the
// spec, but a shared store outlives any single call, so entries expire
// instead of accumulating forever across unrelated jobs.
const entryTTL = 10 * time.Minute

// RedisWordStore backs cache.WordCache with one redis string per
// pattern, JSON-encoding the candidate word list.
type RedisWordStore struct {
	client *redis.Client
	prefix string
}

// NewRedisWordStore builds a RedisWordStore over client, namespacing
// keys under prefix so multiple dictionaries can share one redis
// instance without colliding.
func NewRedisWordStore(client *redis.Client, prefix string) *RedisWordStore {
	return &RedisWordStore{client: client, prefix: prefix}
}

func (s *RedisWordStore) key(pattern string) string {
	return fmt.Sprintf("%s:words:%s", s.prefix, pattern)
}

// GetWords implements cache.WordStore.
func (s *RedisWordStore) GetWords(key string) ([]string, bool) {
	data, err := s.client.Get(context.Background(), s.key(key)).Bytes()
	if err != nil {
		return nil, false
	}
	var words []string
	if err := json.Unmarshal(data, &words); err != nil {
		return nil, false
	}
	return words, true
}

// PutWords implements cache.WordStore.
func (s *RedisWordStore) PutWords(key string, words []string) {
	data, err := json.Marshal(words)
	if err != nil {
		return
	}
	s.client.Set(context.Background(), s.key(key), data, entryTTL)
}

// RedisViabilityStore backs cache.ViabilityCache with a redis string
// keyed by pattern, storing "1"/"0".
type RedisViabilityStore struct {
	client *redis.Client
	prefix string
}

// NewRedisViabilityStore builds a RedisViabilityStore over client.
func NewRedisViabilityStore(client *redis.Client, prefix string) *RedisViabilityStore {
	return &RedisViabilityStore{client: client, prefix: prefix}
}

func (s *RedisViabilityStore) key(pattern string) string {
	return fmt.Sprintf("%s:viable:%s", s.prefix, pattern)
}

// GetViable implements cache.ViabilityStore.
func (s *RedisViabilityStore) GetViable(key string) (bool, bool) {
	val, err := s.client.Get(context.Background(), s.key(key)).Result()
	if err != nil {
		return false, false
	}
	return val == "1", true
}

// PutViable implements cache.ViabilityStore.
func (s *RedisViabilityStore) PutViable(key string, viable bool) {
	val := "0"
	if viable {
		val = "1"
	}
	s.client.Set(context.Background(), s.key(key), val, entryTTL)
}

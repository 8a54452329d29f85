// Package cache implements the two memoisation tables the Filler
// leans on: a word cache (slot-view pattern -> candidate words) and a
// viability cache (slot-view pattern -> bool). Both are keyed by a
// slot view's Pattern(), which is a value (character content only), so
// a single map per cache is sufficient - there is no invalidation,
// since a given pattern has a fixed answer for the lifetime of one
// dictionary.
//
// WordStore and ViabilityStore are the pluggable backing interfaces;
// WordCache and ViabilityCache default to an in-process map
// (MapWordStore, MapViabilityStore) when none is given, growing
// unbounded for the lifetime of one fill call. A server that wants to
// share cache entries across concurrent workers can supply alternate
// stores (see internal/apiserver's redis-backed implementation).
package cache

// WordStore is the backing store for WordCache.
type WordStore interface {
	GetWords(key string) ([]string, bool)
	PutWords(key string, words []string)
}

// ViabilityStore is the backing store for ViabilityCache.
type ViabilityStore interface {
	GetViable(key string) (bool, bool)
	PutViable(key string, viable bool)
}

// MapWordStore is the default in-process WordStore.
type MapWordStore struct {
	data map[string][]string
}

// NewMapWordStore returns an empty in-process word store.
func NewMapWordStore() *MapWordStore {
	return &MapWordStore{data: make(map[string][]string)}
}

// GetWords implements WordStore.
func (s *MapWordStore) GetWords(key string) ([]string, bool) {
	words, ok := s.data[key]
	return words, ok
}

// PutWords implements WordStore.
func (s *MapWordStore) PutWords(key string, words []string) {
	s.data[key] = words
}

// MapViabilityStore is the default in-process ViabilityStore.
type MapViabilityStore struct {
	data map[string]bool
}

// NewMapViabilityStore returns an empty in-process viability store.
func NewMapViabilityStore() *MapViabilityStore {
	return &MapViabilityStore{data: make(map[string]bool)}
}

// GetViable implements ViabilityStore.
func (s *MapViabilityStore) GetViable(key string) (bool, bool) {
	v, ok := s.data[key]
	return v, ok
}

// PutViable implements ViabilityStore.
func (s *MapViabilityStore) PutViable(key string, viable bool) {
	s.data[key] = viable
}

// Dictionary is the subset of *dictionary.Dictionary the caches need,
// kept narrow so the caches don't import the dictionary package's
// build/persist machinery.
type Dictionary interface {
	Matches(pattern string) []string
	IsViable(pattern string) bool
}

// WordCache memoises Dictionary.Matches by pattern.
type WordCache struct {
	store WordStore
}

// NewWordCache builds a word cache over the in-process map store.
func NewWordCache() *WordCache {
	return &WordCache{store: NewMapWordStore()}
}

// NewWordCacheWithStore builds a word cache over a caller-supplied store.
func NewWordCacheWithStore(store WordStore) *WordCache {
	return &WordCache{store: store}
}

// Matches returns dict.Matches(pattern), memoised by pattern.
func (c *WordCache) Matches(dict Dictionary, pattern string) []string {
	if words, ok := c.store.GetWords(pattern); ok {
		return words
	}
	words := dict.Matches(pattern)
	c.store.PutWords(pattern, words)
	return words
}

// ViabilityCache memoises Dictionary.IsViable by pattern.
type ViabilityCache struct {
	store ViabilityStore
}

// NewViabilityCache builds a viability cache over the in-process map store.
func NewViabilityCache() *ViabilityCache {
	return &ViabilityCache{store: NewMapViabilityStore()}
}

// NewViabilityCacheWithStore builds a viability cache over a
// caller-supplied store.
func NewViabilityCacheWithStore(store ViabilityStore) *ViabilityCache {
	return &ViabilityCache{store: store}
}

// IsViable returns dict.IsViable(pattern), memoised by pattern.
func (c *ViabilityCache) IsViable(dict Dictionary, pattern string) bool {
	if v, ok := c.store.GetViable(pattern); ok {
		return v
	}
	v := dict.IsViable(pattern)
	c.store.PutViable(pattern, v)
	return v
}

package rag

import (
	"container/list"
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

const (
	// embedCacheCapacity bounds the number of cached query embeddings.
	embedCacheCapacity = 200
	// embedCacheTTL is how long a cached embedding stays fresh.
	embedCacheTTL = 5 * time.Minute
)

// Embedder turns texts into embedding vectors.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_embedder.go -package=mocks supaagent/internal/rag Embedder

type cacheEntry struct {
	key      string
	vec      []float32
	storedAt time.Time
}

// EmbeddingCache memoizes query embeddings with an LRU bound and a TTL.
// Keys are query strings after whitespace trimming; entries are shared
// across chatbots because the embedding depends only on the text.
type EmbeddingCache struct {
	embedder Embedder
	capacity int
	ttl      time.Duration
	now      func() time.Time

	mu      sync.Mutex
	entries map[string]*list.Element
	// order holds *cacheEntry values, most recently used at the front.
	order *list.List
}

// NewEmbeddingCache creates an embedding cache in front of the given embedder.
func NewEmbeddingCache(embedder Embedder) *EmbeddingCache {
	return &EmbeddingCache{
		embedder: embedder,
		capacity: embedCacheCapacity,
		ttl:      embedCacheTTL,
		now:      time.Now,
		entries:  make(map[string]*list.Element),
		order:    list.New(),
	}
}

// GetOrCompute returns the embedding for query, computing and caching it on a
// miss or an expired entry. Concurrent misses for the same key may each call
// the embedder; the last write wins.
func (c *EmbeddingCache) GetOrCompute(ctx context.Context, query string) ([]float32, error) {
	key := strings.TrimSpace(query)

	c.mu.Lock()
	if el, ok := c.entries[key]; ok {
		entry := el.Value.(*cacheEntry)
		// An entry aged exactly the TTL is still fresh.
		if c.now().Sub(entry.storedAt) <= c.ttl {
			c.order.MoveToFront(el)
			vec := entry.vec
			c.mu.Unlock()
			return vec, nil
		}
		c.order.Remove(el)
		delete(c.entries, key)
	}
	c.mu.Unlock()

	vecs, err := c.embedder.EmbedTexts(ctx, []string{key})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(vecs) == 0 {
		return nil, fmt.Errorf("embedder returned no vector for query")
	}
	vec := vecs[0]

	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.entries[key]; ok {
		entry := el.Value.(*cacheEntry)
		entry.vec = vec
		entry.storedAt = c.now()
		c.order.MoveToFront(el)
		return vec, nil
	}
	el := c.order.PushFront(&cacheEntry{key: key, vec: vec, storedAt: c.now()})
	c.entries[key] = el
	if c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry).key)
	}
	return vec, nil
}

// Len reports the number of cached entries, including expired ones not yet
// evicted.
func (c *EmbeddingCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

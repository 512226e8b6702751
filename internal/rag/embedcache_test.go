package rag

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

// countingEmbedder records how often each text was embedded.
type countingEmbedder struct {
	calls map[string]int
	err   error
}

func newCountingEmbedder() *countingEmbedder {
	return &countingEmbedder{calls: map[string]int{}}
}

func (e *countingEmbedder) EmbedTexts(_ context.Context, texts []string) ([][]float32, error) {
	if e.err != nil {
		return nil, e.err
	}
	out := make([][]float32, 0, len(texts))
	for _, text := range texts {
		e.calls[text]++
		out = append(out, []float32{float32(len(text))})
	}
	return out, nil
}

func TestEmbeddingCacheHit(t *testing.T) {
	embedder := newCountingEmbedder()
	cache := NewEmbeddingCache(embedder)

	first, err := cache.GetOrCompute(context.Background(), "what is the refund policy")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := cache.GetOrCompute(context.Background(), "what is the refund policy")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if embedder.calls["what is the refund policy"] != 1 {
		t.Fatalf("expected a single upstream call, got %d", embedder.calls["what is the refund policy"])
	}
	if first[0] != second[0] {
		t.Fatalf("expected cached vector to be returned")
	}
}

func TestEmbeddingCacheTrimsKey(t *testing.T) {
	embedder := newCountingEmbedder()
	cache := NewEmbeddingCache(embedder)

	if _, err := cache.GetOrCompute(context.Background(), "  hello  "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := cache.GetOrCompute(context.Background(), "hello"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if embedder.calls["hello"] != 1 {
		t.Fatalf("expected trimmed queries to share one entry, got %d calls", embedder.calls["hello"])
	}
}

func TestEmbeddingCacheExpiry(t *testing.T) {
	embedder := newCountingEmbedder()
	cache := NewEmbeddingCache(embedder)

	now := time.Now()
	cache.now = func() time.Time { return now }

	if _, err := cache.GetOrCompute(context.Background(), "hello"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Aged exactly the TTL: still a hit.
	now = now.Add(embedCacheTTL)
	if _, err := cache.GetOrCompute(context.Background(), "hello"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if embedder.calls["hello"] != 1 {
		t.Fatalf("expected hit at TTL boundary, got %d calls", embedder.calls["hello"])
	}

	// Past the TTL: recomputed.
	now = now.Add(time.Nanosecond)
	if _, err := cache.GetOrCompute(context.Background(), "hello"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if embedder.calls["hello"] != 2 {
		t.Fatalf("expected recompute after TTL, got %d calls", embedder.calls["hello"])
	}
}

func TestEmbeddingCacheEvictsLeastRecentlyUsed(t *testing.T) {
	embedder := newCountingEmbedder()
	cache := NewEmbeddingCache(embedder)

	for i := 0; i < embedCacheCapacity; i++ {
		if _, err := cache.GetOrCompute(context.Background(), fmt.Sprintf("query %d", i)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	// Touch the oldest entry so "query 1" becomes the eviction candidate.
	if _, err := cache.GetOrCompute(context.Background(), "query 0"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// One more insert pushes the cache over capacity.
	if _, err := cache.GetOrCompute(context.Background(), "one more"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cache.Len() != embedCacheCapacity {
		t.Fatalf("expected size to stay at %d, got %d", embedCacheCapacity, cache.Len())
	}

	// "query 0" survived its touch; "query 1" was evicted.
	if _, err := cache.GetOrCompute(context.Background(), "query 0"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if embedder.calls["query 0"] != 1 {
		t.Fatalf("expected recently used entry to survive, got %d calls", embedder.calls["query 0"])
	}
	if _, err := cache.GetOrCompute(context.Background(), "query 1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if embedder.calls["query 1"] != 2 {
		t.Fatalf("expected least recently used entry to be evicted, got %d calls", embedder.calls["query 1"])
	}
}

func TestEmbeddingCachePropagatesEmbedderError(t *testing.T) {
	embedder := newCountingEmbedder()
	embedder.err = errors.New("upstream down")
	cache := NewEmbeddingCache(embedder)

	if _, err := cache.GetOrCompute(context.Background(), "hello"); err == nil {
		t.Fatal("expected error from embedder to propagate")
	}
	if cache.Len() != 0 {
		t.Fatalf("expected nothing cached after failure, got %d entries", cache.Len())
	}
}

package embed

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/RodrigoAlexander7/law-copilot/internal/domain"
)

// CachedEncoder memoizes single-text encodings in an LRU cache. Queries
// repeat often (and cascade variants are re-embedded per request), so the
// serving path wraps the remote encoder with this decorator. Multi-text
// calls bypass the cache: those are index-build batches, seen once.
type CachedEncoder struct {
	inner domain.VectorEncoder
	cache *lru.Cache[string, []float32]
}

// NewCachedEncoder wraps inner with a cache of the given size.
func NewCachedEncoder(inner domain.VectorEncoder, size int) (*CachedEncoder, error) {
	cache, err := lru.New[string, []float32](size)
	if err != nil {
		return nil, err
	}
	return &CachedEncoder{inner: inner, cache: cache}, nil
}

// Encode returns cached vectors for single-text requests, delegating to the
// inner encoder on miss.
func (c *CachedEncoder) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) != 1 {
		return c.inner.Encode(ctx, texts)
	}
	if v, ok := c.cache.Get(texts[0]); ok {
		return [][]float32{v}, nil
	}
	vectors, err := c.inner.Encode(ctx, texts)
	if err != nil {
		return nil, err
	}
	if len(vectors) == 1 {
		c.cache.Add(texts[0], vectors[0])
	}
	return vectors, nil
}

// Version reports the inner encoder's identifier.
func (c *CachedEncoder) Version() string {
	return c.inner.Version()
}

var _ domain.VectorEncoder = (*CachedEncoder)(nil)

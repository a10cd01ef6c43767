// Package index implements an exact inner-product vector index over
// unit-normalized embeddings, with file persistence for the vector blob,
// the parallel article records and a manifest sidecar.
package index

import (
	"fmt"
	"sort"

	"github.com/RodrigoAlexander7/law-copilot/internal/domain"
)

// Flat is a brute-force inner-product index. Vectors and records are
// positionally aligned: vector i belongs to record i, always. The index is
// immutable once built and safe for concurrent searches.
type Flat struct {
	dim     int
	vectors [][]float32
	records []domain.Article
}

// Build creates a Flat index from aligned vectors and records.
func Build(vectors [][]float32, records []domain.Article) (*Flat, error) {
	if len(vectors) != len(records) {
		return nil, fmt.Errorf("%w: %d vectors vs %d records", domain.ErrCorruptIndex, len(vectors), len(records))
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("cannot build an empty index")
	}
	dim := len(vectors[0])
	for i, v := range vectors {
		if len(v) != dim {
			return nil, fmt.Errorf("vector %d has dimension %d, want %d", i, len(v), dim)
		}
	}
	return &Flat{dim: dim, vectors: vectors, records: records}, nil
}

// Len returns the number of indexed records.
func (f *Flat) Len() int { return len(f.records) }

// Dimension returns the vector dimensionality.
func (f *Flat) Dimension() int { return f.dim }

// Records returns the parallel metadata sequence in insertion order.
func (f *Flat) Records() []domain.Article { return f.records }

// Search returns the k most similar records by inner product, descending.
// Candidates below scoreThreshold are excluded entirely. If k exceeds the
// corpus size all surviving candidates are returned; ties keep insertion
// order.
func (f *Flat) Search(query []float32, k int, scoreThreshold float32) []domain.SearchResult {
	if k <= 0 {
		return nil
	}

	type scored struct {
		idx   int
		score float32
	}
	candidates := make([]scored, 0, len(f.vectors))
	for i, v := range f.vectors {
		s := dot(v, query)
		if s < scoreThreshold {
			continue
		}
		candidates = append(candidates, scored{idx: i, score: s})
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		return candidates[a].score > candidates[b].score
	})
	if k > len(candidates) {
		k = len(candidates)
	}

	results := make([]domain.SearchResult, 0, k)
	for _, c := range candidates[:k] {
		results = append(results, domain.SearchResult{Article: f.records[c.idx], Score: c.score})
	}
	return results
}

func dot(a, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float32
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}

var _ domain.Searcher = (*Flat)(nil)

package domain

import "context"

// VectorEncoder defines the interface for generating embeddings.
// Implementations must return unit-normalized vectors (inner product
// equals cosine similarity) aligned 1:1 with the input order.
type VectorEncoder interface {
	Encode(ctx context.Context, texts []string) ([][]float32, error)
	Version() string
}

// Searcher is the read side of the vector index: exact k-nearest-neighbor
// search by inner product over normalized vectors. Implementations are
// immutable after load and safe for concurrent use.
type Searcher interface {
	Search(query []float32, k int, scoreThreshold float32) []SearchResult
	Len() int
}

package vectorindex

import (
	"fmt"
	"math"
	"sort"
)

// Result is one nearest-neighbor hit: the row of the stored vector and its
// inner-product similarity to the query.
type Result struct {
	Row   int
	Score float64
}

// FlatIndex is an append-only flat index over unit vectors, searched by brute
// force inner product. Rows are never mutated or removed; row i is expected to
// stay aligned with chunk i of the owning store.
type FlatIndex struct {
	dim     int
	vectors [][]float32
}

// NewFlatIndex creates an empty index for vectors of the given dimension.
func NewFlatIndex(dim int) *FlatIndex {
	return &FlatIndex{dim: dim}
}

// Add appends vectors to the index. All vectors must match the index
// dimension; on mismatch nothing is appended.
func (ix *FlatIndex) Add(vectors [][]float32) error {
	for _, v := range vectors {
		if len(v) != ix.dim {
			return fmt.Errorf("vector dimension mismatch: expected %d, got %d", ix.dim, len(v))
		}
	}
	ix.vectors = append(ix.vectors, vectors...)
	return nil
}

// Search returns the k rows most similar to the query by inner product,
// descending. k larger than the row count is clamped; an empty index returns
// no results rather than an error.
func (ix *FlatIndex) Search(query []float32, k int) ([]Result, error) {
	if len(query) != ix.dim {
		return nil, fmt.Errorf("query dimension mismatch: expected %d, got %d", ix.dim, len(query))
	}
	if len(ix.vectors) == 0 || k <= 0 {
		return nil, nil
	}

	results := make([]Result, len(ix.vectors))
	for i, v := range ix.vectors {
		results[i] = Result{Row: i, Score: innerProduct(query, v)}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Row < results[j].Row
	})

	if k > len(results) {
		k = len(results)
	}
	return results[:k], nil
}

// Len returns the number of stored rows.
func (ix *FlatIndex) Len() int {
	return len(ix.vectors)
}

// Dimension returns the vector dimension fixed at construction.
func (ix *FlatIndex) Dimension() int {
	return ix.dim
}

// Reset drops all rows. The caller must reset the aligned chunk store in the
// same step.
func (ix *FlatIndex) Reset() {
	ix.vectors = nil
}

func innerProduct(a, b []float32) float64 {
	var dot float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
	}
	return dot
}

// NormalizeL2 normalizes the vector in place to unit Euclidean length, making
// inner product equivalent to cosine similarity. A zero vector is unchanged.
func NormalizeL2(v []float32) {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return
	}
	norm := float32(1.0 / math.Sqrt(sum))
	for i := range v {
		v[i] *= norm
	}
}

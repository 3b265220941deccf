package cache

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"docqa/internal/port"
)

var bucketEmbeddings = []byte("embeddings")

// EmbeddingCache persists embeddings in BoltDB keyed by model and text, so
// re-ingesting the same document does not re-run the model. Only model output
// is cached; the vector index itself is rebuilt per run.
type EmbeddingCache struct {
	db *bbolt.DB
}

// NewEmbeddingCache opens (or creates) the cache bucket in db.
func NewEmbeddingCache(db *bbolt.DB) (*EmbeddingCache, error) {
	err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketEmbeddings)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create embeddings bucket: %w", err)
	}
	return &EmbeddingCache{db: db}, nil
}

func cacheKey(model, text string) []byte {
	h := sha256.Sum256([]byte(model + "\x00" + text))
	return h[:]
}

// Get returns the cached vector for (model, text), or ok=false.
func (c *EmbeddingCache) Get(model, text string) ([]float32, bool) {
	var vector []float32
	found := false
	_ = c.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketEmbeddings)
		if b == nil {
			return nil
		}
		data := b.Get(cacheKey(model, text))
		if data == nil {
			return nil
		}
		if err := json.Unmarshal(data, &vector); err != nil {
			return nil // skip corrupted entries
		}
		found = true
		return nil
	})
	return vector, found
}

// Put stores vectors for the given texts in one transaction.
func (c *EmbeddingCache) Put(model string, texts []string, vectors [][]float32) error {
	if len(texts) != len(vectors) {
		return fmt.Errorf("texts/vectors length mismatch: %d vs %d", len(texts), len(vectors))
	}
	return c.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketEmbeddings)
		if b == nil {
			return fmt.Errorf("embeddings bucket not found")
		}
		for i, text := range texts {
			data, err := json.Marshal(vectors[i])
			if err != nil {
				return err
			}
			if err := b.Put(cacheKey(model, text), data); err != nil {
				return err
			}
		}
		return nil
	})
}

// CachedEmbedder wraps an Embedder with the persistent cache. Misses are
// embedded in a single batch and written back.
type CachedEmbedder struct {
	inner port.Embedder
	cache *EmbeddingCache
}

func NewCachedEmbedder(inner port.Embedder, cache *EmbeddingCache) *CachedEmbedder {
	return &CachedEmbedder{inner: inner, cache: cache}
}

func (e *CachedEmbedder) Embed(texts []string) ([][]float32, error) {
	model := e.inner.ModelName()
	results := make([][]float32, len(texts))

	var missTexts []string
	var missIdx []int
	for i, text := range texts {
		if v, ok := e.cache.Get(model, text); ok {
			results[i] = v
			continue
		}
		missTexts = append(missTexts, text)
		missIdx = append(missIdx, i)
	}

	if len(missTexts) == 0 {
		return results, nil
	}

	embedded, err := e.inner.Embed(missTexts)
	if err != nil {
		return nil, err
	}
	if len(embedded) != len(missTexts) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d texts", len(embedded), len(missTexts))
	}
	for i, v := range embedded {
		results[missIdx[i]] = v
	}

	if err := e.cache.Put(model, missTexts, embedded); err != nil {
		return nil, fmt.Errorf("write embedding cache: %w", err)
	}
	return results, nil
}

func (e *CachedEmbedder) Dimension() int {
	return e.inner.Dimension()
}

func (e *CachedEmbedder) ModelName() string {
	return e.inner.ModelName()
}

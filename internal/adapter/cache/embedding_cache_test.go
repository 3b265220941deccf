package cache

import (
	"path/filepath"
	"reflect"
	"testing"

	"go.etcd.io/bbolt"

	"docqa/internal/adapter/embedding"
)

func openTestCache(t *testing.T) *EmbeddingCache {
	t.Helper()
	db, err := bbolt.Open(filepath.Join(t.TempDir(), "cache.db"), 0600, nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })

	c, err := NewEmbeddingCache(db)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestEmbeddingCacheRoundTrip(t *testing.T) {
	c := openTestCache(t)

	texts := []string{"alpha", "beta"}
	vectors := [][]float32{{1, 2, 3}, {4, 5, 6}}
	if err := c.Put("model-a", texts, vectors); err != nil {
		t.Fatal(err)
	}

	got, ok := c.Get("model-a", "beta")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if !reflect.DeepEqual(got, []float32{4, 5, 6}) {
		t.Errorf("unexpected vector: %v", got)
	}

	if _, ok := c.Get("model-b", "beta"); ok {
		t.Error("entries must be keyed by model")
	}
	if _, ok := c.Get("model-a", "gamma"); ok {
		t.Error("expected miss for unknown text")
	}
}

// countingEmbedder records how many texts reached the inner embedder.
type countingEmbedder struct {
	inner *embedding.MockEmbedder
	seen  int
}

func (e *countingEmbedder) Embed(texts []string) ([][]float32, error) {
	e.seen += len(texts)
	return e.inner.Embed(texts)
}

func (e *countingEmbedder) Dimension() int    { return e.inner.Dimension() }
func (e *countingEmbedder) ModelName() string { return e.inner.ModelName() }

func TestCachedEmbedderSkipsKnownTexts(t *testing.T) {
	c := openTestCache(t)
	counting := &countingEmbedder{inner: embedding.NewMockEmbedder(4)}
	cached := NewCachedEmbedder(counting, c)

	first, err := cached.Embed([]string{"one", "two"})
	if err != nil {
		t.Fatal(err)
	}
	if counting.seen != 2 {
		t.Errorf("expected 2 texts embedded, got %d", counting.seen)
	}

	second, err := cached.Embed([]string{"one", "two", "three"})
	if err != nil {
		t.Fatal(err)
	}
	if counting.seen != 3 {
		t.Errorf("expected only the miss embedded, got %d total", counting.seen)
	}
	if !reflect.DeepEqual(first[0], second[0]) || !reflect.DeepEqual(first[1], second[1]) {
		t.Error("cached vectors differ from original embeddings")
	}
}

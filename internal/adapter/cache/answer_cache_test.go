package cache

import (
	"fmt"
	"testing"
	"time"

	"docqa/internal/domain"
)

func TestAnswerCachePutGet(t *testing.T) {
	c := NewAnswerCache(10, time.Minute)

	results := []domain.QueryResult{{Answer: "8.75", Context: domain.ContextDirect}}
	c.Put("what is the cgpa", 5, results)

	got, ok := c.Get("what is the cgpa", 5)
	if !ok {
		t.Fatal("expected cache hit")
	}
	if got[0].Answer != "8.75" {
		t.Errorf("unexpected cached answer: %q", got[0].Answer)
	}

	if _, ok := c.Get("what is the cgpa", 3); ok {
		t.Error("different k must be a different cache key")
	}
}

func TestAnswerCacheInvalidate(t *testing.T) {
	c := NewAnswerCache(10, time.Minute)
	c.Put("q", 5, []domain.QueryResult{{Answer: "a"}})

	c.Invalidate()

	if _, ok := c.Get("q", 5); ok {
		t.Error("expected miss after invalidation")
	}
	if c.Size() != 0 {
		t.Errorf("expected empty cache, got %d entries", c.Size())
	}
}

func TestAnswerCacheEviction(t *testing.T) {
	c := NewAnswerCache(3, time.Minute)

	for i := 0; i < 4; i++ {
		c.Put(fmt.Sprintf("q%d", i), 5, []domain.QueryResult{{Answer: "a"}})
	}

	if c.Size() != 3 {
		t.Errorf("expected size capped at 3, got %d", c.Size())
	}
	if _, ok := c.Get("q0", 5); ok {
		t.Error("expected oldest entry evicted")
	}
	if _, ok := c.Get("q3", 5); !ok {
		t.Error("expected newest entry present")
	}
}

func TestAnswerCacheTTL(t *testing.T) {
	c := NewAnswerCache(10, time.Millisecond)
	c.Put("q", 5, []domain.QueryResult{{Answer: "a"}})

	time.Sleep(5 * time.Millisecond)

	if _, ok := c.Get("q", 5); ok {
		t.Error("expected expired entry to miss")
	}
}

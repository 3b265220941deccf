package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"docqa/internal/domain"
)

// AnswerCache is an in-memory LRU for query results. Entries carry the store
// generation they were computed against; ingesting more content bumps the
// generation and stale entries are dropped on read.
type AnswerCache struct {
	mu      sync.RWMutex
	entries map[string]*answerEntry
	order   []string
	maxSize int
	ttl     time.Duration
	gen     uint64
}

type answerEntry struct {
	results   []domain.QueryResult
	timestamp time.Time
	gen       uint64
}

func NewAnswerCache(maxSize int, ttl time.Duration) *AnswerCache {
	if maxSize <= 0 {
		maxSize = 100
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &AnswerCache{
		entries: make(map[string]*answerEntry),
		order:   make([]string, 0, maxSize),
		maxSize: maxSize,
		ttl:     ttl,
	}
}

func answerKey(question string, k int) string {
	data := []byte(question)
	data = append(data, byte(k>>8), byte(k))
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:16])
}

// Get returns the cached results for (question, k) when still fresh and
// computed against the current generation.
func (c *AnswerCache) Get(question string, k int) ([]domain.QueryResult, bool) {
	key := answerKey(question, k)

	c.mu.RLock()
	entry, exists := c.entries[key]
	gen := c.gen
	c.mu.RUnlock()

	if !exists {
		return nil, false
	}
	if time.Since(entry.timestamp) > c.ttl || entry.gen != gen {
		c.mu.Lock()
		delete(c.entries, key)
		c.removeFromOrder(key)
		c.mu.Unlock()
		return nil, false
	}

	c.mu.Lock()
	c.moveToEnd(key)
	c.mu.Unlock()
	return entry.results, true
}

// Put stores results for (question, k), evicting the oldest entry at capacity.
func (c *AnswerCache) Put(question string, k int, results []domain.QueryResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := answerKey(question, k)
	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxSize {
		c.evictOldest()
	}
	c.entries[key] = &answerEntry{
		results:   results,
		timestamp: time.Now(),
		gen:       c.gen,
	}
	c.moveToEnd(key)
}

// Invalidate clears the cache and advances the generation so in-flight reads
// of old entries also miss.
func (c *AnswerCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*answerEntry)
	c.order = c.order[:0]
	c.gen++
}

func (c *AnswerCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *AnswerCache) evictOldest() {
	if len(c.order) == 0 {
		return
	}
	oldest := c.order[0]
	c.order = c.order[1:]
	delete(c.entries, oldest)
}

func (c *AnswerCache) moveToEnd(key string) {
	c.removeFromOrder(key)
	c.order = append(c.order, key)
}

func (c *AnswerCache) removeFromOrder(key string) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}

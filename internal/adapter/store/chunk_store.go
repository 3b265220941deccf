package store

import (
	"strings"

	"docqa/internal/domain"
)

// ChunkStore is an ordered, append-only collection of chunks. Chunk IDs are
// positions: chunks[i].ID == i always holds, which keeps the store aligned
// one-to-one with the rows of the vector index built from it.
//
// The store does no locking; the owning session serializes access, and callers
// needing isolation between documents own an independent store/index pair.
type ChunkStore struct {
	chunks []domain.Chunk
}

// NewChunkStore creates an empty store.
func NewChunkStore() *ChunkStore {
	return &ChunkStore{}
}

// Append adds one chunk per text, assigning sequential IDs, and returns the
// created chunks.
func (s *ChunkStore) Append(texts []string) []domain.Chunk {
	created := make([]domain.Chunk, 0, len(texts))
	for _, text := range texts {
		chunk := domain.Chunk{ID: len(s.chunks), Text: text}
		s.chunks = append(s.chunks, chunk)
		created = append(created, chunk)
	}
	return created
}

// Get returns the chunk at position i, or ok=false when i is out of bounds.
// Search hits referencing rows beyond the store are discarded through this
// check rather than faulting.
func (s *ChunkStore) Get(i int) (domain.Chunk, bool) {
	if i < 0 || i >= len(s.chunks) {
		return domain.Chunk{}, false
	}
	return s.chunks[i], true
}

// Len returns the number of stored chunks.
func (s *ChunkStore) Len() int {
	return len(s.chunks)
}

// ConcatText joins all chunk texts in store order with single spaces.
func (s *ChunkStore) ConcatText() string {
	parts := make([]string, len(s.chunks))
	for i, c := range s.chunks {
		parts[i] = c.Text
	}
	return strings.Join(parts, " ")
}

// Reset drops all chunks. The caller must reset the aligned vector index in
// the same step.
func (s *ChunkStore) Reset() {
	s.chunks = nil
}

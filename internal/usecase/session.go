package usecase

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"docqa/internal/adapter/cache"
	"docqa/internal/adapter/chunker"
	"docqa/internal/adapter/extractor"
	"docqa/internal/adapter/store"
	"docqa/internal/adapter/vectorindex"
	"docqa/internal/domain"
	"docqa/internal/port"
)

const (
	// DefaultTopK is the number of semantic hits returned when the caller
	// does not ask for a specific k.
	DefaultTopK = 5

	// DefaultSummaryWords bounds the summary emitted after ingestion.
	DefaultSummaryWords = 120

	answerRunes  = 200
	contextRunes = 500
)

// Session owns one chunk store and its vector index as a single unit. All
// appends go through Ingest under one lock, so row i of the index always holds
// the embedding of chunk i; every query depends on that invariant. Callers
// wanting isolation between document sets construct independent sessions.
type Session struct {
	mu            sync.Mutex
	chunker       *chunker.PageChunker
	embedder      port.Embedder
	index         *vectorindex.FlatIndex
	store         *store.ChunkStore
	answers       *cache.AnswerCache
	logger        *zap.Logger
	resetOnIngest bool
	docs          []domain.Document
}

// NewSession creates a session around the injected embedder. resetOnIngest
// selects whether a new document replaces or accumulates onto prior content.
func NewSession(ch *chunker.PageChunker, embedder port.Embedder, answers *cache.AnswerCache, logger *zap.Logger, resetOnIngest bool) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	if answers == nil {
		answers = cache.NewAnswerCache(0, 0)
	}
	return &Session{
		chunker:       ch,
		embedder:      embedder,
		index:         vectorindex.NewFlatIndex(embedder.Dimension()),
		store:         store.NewChunkStore(),
		answers:       answers,
		logger:        logger,
		resetOnIngest: resetOnIngest,
	}
}

// IngestResult reports what one ingestion added.
type IngestResult struct {
	Doc     domain.Document
	Summary string
}

// Ingest chunks the pages, embeds the chunks and appends them to the index and
// the store in one serialized step. Pages with no extractable text contribute
// nothing; a document that yields no chunks is recorded but changes neither
// store.
func (s *Session) Ingest(name string, pages []string) (*IngestResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.resetOnIngest {
		s.store.Reset()
		s.index.Reset()
		s.docs = nil
	}

	chunks := s.chunker.ChunkPages(pages)

	doc := domain.Document{
		ID:      uuid.New().String(),
		Name:    name,
		Pages:   len(pages),
		Chunks:  len(chunks),
		AddedAt: time.Now(),
	}

	if len(chunks) > 0 {
		vectors, err := s.embedder.Embed(chunks)
		if err != nil {
			return nil, fmt.Errorf("embed chunks: %w", err)
		}
		if len(vectors) != len(chunks) {
			return nil, fmt.Errorf("embedder returned %d vectors for %d chunks", len(vectors), len(chunks))
		}
		for _, v := range vectors {
			vectorindex.NormalizeL2(v)
		}

		// Add to the index first: a dimension error here leaves both
		// stores untouched instead of desynchronized.
		if err := s.index.Add(vectors); err != nil {
			return nil, fmt.Errorf("index chunks: %w", err)
		}
		s.store.Append(chunks)
	}

	s.docs = append(s.docs, doc)
	s.answers.Invalidate()

	s.logger.Info("document ingested",
		zap.String("doc", name),
		zap.Int("pages", len(pages)),
		zap.Int("chunks", len(chunks)),
		zap.Int("total_chunks", s.store.Len()),
	)

	return &IngestResult{
		Doc:     doc,
		Summary: s.summarizeLocked(DefaultSummaryWords),
	}, nil
}

// Answer resolves a question against the ingested corpus: direct field
// extraction over the whole corpus first, semantic top-k search as fallback.
// Failures degrade to an empty result set; nothing here is user-fatal.
func (s *Session) Answer(question string, k int) []domain.QueryResult {
	if k <= 0 {
		k = DefaultTopK
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store.Len() == 0 {
		return nil
	}

	if cached, ok := s.answers.Get(question, k); ok {
		return cached
	}

	// A direct hit on the concatenated corpus short-circuits semantic
	// search entirely and is the only result returned.
	if direct, ok := extractor.Extract(question, s.store.ConcatText()); ok {
		results := []domain.QueryResult{{
			Answer:  direct,
			Context: domain.ContextDirect,
		}}
		s.answers.Put(question, k, results)
		return results
	}

	vectors, err := s.embedder.Embed([]string{question})
	if err != nil || len(vectors) == 0 {
		s.logger.Warn("question embedding failed", zap.Error(err))
		return nil
	}
	query := vectors[0]
	vectorindex.NormalizeL2(query)

	hits, err := s.index.Search(query, k)
	if err != nil {
		s.logger.Warn("vector search failed", zap.Error(err))
		return nil
	}

	results := make([]domain.QueryResult, 0, len(hits))
	for _, hit := range hits {
		chunk, ok := s.store.Get(hit.Row)
		if !ok {
			// A row beyond the store means the pair diverged; drop the
			// hit rather than fault.
			s.logger.Warn("search hit beyond store bounds",
				zap.Int("row", hit.Row),
				zap.Int("store_len", s.store.Len()),
			)
			continue
		}

		answer, ok := extractor.Extract(question, chunk.Text)
		if !ok {
			answer = prefix(chunk.Text, answerRunes)
		}
		score := hit.Score
		results = append(results, domain.QueryResult{
			Answer:  answer,
			Context: prefix(chunk.Text, contextRunes),
			Score:   &score,
		})
	}

	s.answers.Put(question, k, results)
	return results
}

// Summarize returns the first wordCount words of the corpus, prefixed with the
// CGPA line when a grade-point value appears anywhere in the text.
func (s *Session) Summarize(wordCount int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summarizeLocked(wordCount)
}

func (s *Session) summarizeLocked(wordCount int) string {
	if wordCount <= 0 {
		wordCount = DefaultSummaryWords
	}

	combined := s.store.ConcatText()
	words := strings.Fields(combined)
	if len(words) == 0 {
		return ""
	}

	var prefixLine string
	if grade, ok := extractor.GradePoint(combined); ok {
		prefixLine = "CGPA: " + grade + "\n"
	}

	text := strings.Join(words, " ")
	if len(words) > wordCount {
		text = strings.Join(words[:wordCount], " ") + " ..."
	}
	return prefixLine + text
}

// Documents lists what has been ingested, in order.
func (s *Session) Documents() []domain.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Document, len(s.docs))
	copy(out, s.docs)
	return out
}

// Len returns the number of indexed chunks.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Len()
}

// Reset clears the store and the index together.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.Reset()
	s.index.Reset()
	s.docs = nil
	s.answers.Invalidate()
}

// prefix returns the first n runes of s.
func prefix(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

package domain

import "time"

// Chunk is the unit of retrieval: a bounded window of document text whose ID is
// its position in the chunk store. Row i of the vector index holds the embedding
// of chunk i; the two sequences grow in lockstep and are never mutated after
// append.
type Chunk struct {
	ID   int
	Text string
}

// Document records one ingested source.
type Document struct {
	ID      string
	Name    string
	Pages   int
	Chunks  int
	AddedAt time.Time
}

// QueryResult is one answer candidate. Score is nil for direct extractions and
// holds the raw inner-product similarity for semantic hits.
type QueryResult struct {
	Answer  string   `json:"answer"`
	Context string   `json:"context"`
	Score   *float64 `json:"score,omitempty"`
}

// ContextDirect marks a result that was extracted from the full corpus without
// touching the vector index.
const ContextDirect = "Extracted directly"

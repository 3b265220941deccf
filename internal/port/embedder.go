package port

// Embedder generates vector embeddings for text.
//
// Vectors are not assumed to be unit-normalized; callers must normalize both
// corpus and query vectors before insertion or search.
type Embedder interface {
	// Embed generates embeddings for the given texts.
	// Returns a slice of vectors, one per input text.
	Embed(texts []string) ([][]float32, error)

	// Dimension returns the embedding vector dimension.
	Dimension() int

	// ModelName returns the name of the embedding model.
	ModelName() string
}

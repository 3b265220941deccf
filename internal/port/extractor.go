package port

// PageExtractor turns a raw document into per-page text. Implementations exist
// per file format; pages that yield no text come back as empty strings and are
// skipped downstream by the chunker.
type PageExtractor interface {
	// Pages extracts the text of each page, in page order.
	Pages(content []byte) ([]string, error)
}

package chunker

import (
	"strings"
	"unicode"
)

// boundarySlack is how far past the nominal window end the chunker may scan for
// whitespace before giving up and cutting mid-word.
const boundarySlack = 50

// PageChunker splits page text into overlapping fixed-size rune windows.
// Window ends are snapped forward to the next whitespace so chunks do not split
// mid-word.
type PageChunker struct {
	chunkSize int
	overlap   int
	maxChunks int
}

// NewPageChunker creates a chunker with the given window size, overlap and
// document-wide chunk cap (all in runes / chunks). overlap must be smaller than
// chunkSize or windows would not advance.
func NewPageChunker(chunkSize, overlap, maxChunks int) *PageChunker {
	return &PageChunker{
		chunkSize: chunkSize,
		overlap:   overlap,
		maxChunks: maxChunks,
	}
}

// ChunkPage splits a single page into windows. Whitespace-only input produces
// no chunks. Windows are trimmed; a window that trims to empty is still
// emitted, so callers that index chunks keep stable positions.
func (c *PageChunker) ChunkPage(text string) []string {
	r := []rune(strings.TrimSpace(text))
	if len(r) == 0 {
		return nil
	}

	var chunks []string
	start := 0
	for start < len(r) {
		end := start + c.chunkSize

		// Snap the boundary forward to the first whitespace, but only when
		// the raw end falls strictly inside the text.
		if end < len(r) {
			limit := end + boundarySlack
			if limit > len(r) {
				limit = len(r)
			}
			for end < limit && !unicode.IsSpace(r[end]) {
				end++
			}
		}

		sliceEnd := end
		if sliceEnd > len(r) {
			sliceEnd = len(r)
		}
		chunks = append(chunks, strings.TrimSpace(string(r[start:sliceEnd])))

		// The unclamped end keeps the stride identical on the final window.
		start = end - c.overlap
	}

	return chunks
}

// ChunkPages splits a sequence of pages, skipping pages with no extractable
// text. The chunk cap is enforced after each page, never mid-page, so a single
// long page may overshoot the cap by its own chunk count.
func (c *PageChunker) ChunkPages(pages []string) []string {
	var all []string
	for _, page := range pages {
		chunks := c.ChunkPage(page)
		if len(chunks) == 0 {
			continue
		}
		all = append(all, chunks...)

		if c.maxChunks > 0 && len(all) > c.maxChunks {
			break
		}
	}
	return all
}

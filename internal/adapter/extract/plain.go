package extract

import "strings"

// PlainExtractor treats content as UTF-8 text. Form feeds are honored as page
// breaks; without them the whole file is a single page.
type PlainExtractor struct{}

func NewPlainExtractor() *PlainExtractor {
	return &PlainExtractor{}
}

func (e *PlainExtractor) Pages(content []byte) ([]string, error) {
	return strings.Split(string(content), "\f"), nil
}

// Package extract turns raw document bytes into per-page text.
package extract

import (
	"fmt"
	"path/filepath"
	"strings"

	"docqa/internal/port"
)

// ForFile returns the page extractor for the file's extension.
func ForFile(name string) (port.PageExtractor, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return NewPDFExtractor(), nil
	case ".txt", ".md", "":
		return NewPlainExtractor(), nil
	default:
		return nil, fmt.Errorf("unsupported document type: %s", filepath.Ext(name))
	}
}

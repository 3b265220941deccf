package usecase

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"docqa/internal/adapter/extract"
	"docqa/internal/port"
)

// Ingestor feeds documents from the filesystem into a session.
type Ingestor struct {
	session *Session
	walker  port.FileWalker
	logger  *zap.Logger
}

func NewIngestor(session *Session, walker port.FileWalker, logger *zap.Logger) *Ingestor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ingestor{
		session: session,
		walker:  walker,
		logger:  logger,
	}
}

// IngestFile extracts a single document and ingests it.
func (i *Ingestor) IngestFile(path string) (*IngestResult, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return i.IngestBytes(filepath.Base(path), content)
}

// IngestBytes extracts in-memory document content and ingests it. Extraction
// failure on the collaborator's side surfaces as zero pages, which is handled
// like an empty corpus.
func (i *Ingestor) IngestBytes(name string, content []byte) (*IngestResult, error) {
	ext, err := extract.ForFile(name)
	if err != nil {
		return nil, err
	}
	pages, err := ext.Pages(content)
	if err != nil {
		i.logger.Warn("page extraction failed, treating as empty document",
			zap.String("doc", name),
			zap.Error(err),
		)
		pages = nil
	}
	return i.session.Ingest(name, pages)
}

// IngestDir walks root with the configured globs and ingests every match.
// progress, when non-nil, is called after each file.
func (i *Ingestor) IngestDir(root string, progress func(path string)) ([]*IngestResult, error) {
	files, err := i.walker.Walk(root)
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	results := make([]*IngestResult, 0, len(files))
	for _, f := range files {
		res, err := i.IngestFile(f.Path)
		if err != nil {
			i.logger.Warn("skipping document", zap.String("path", f.Path), zap.Error(err))
			continue
		}
		results = append(results, res)
		if progress != nil {
			progress(f.Path)
		}
	}
	return results, nil
}

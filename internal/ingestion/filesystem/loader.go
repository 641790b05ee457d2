// Package filesystem loads corpus documents from a local directory tree.
package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/meridian-labs/leadscope/internal/core/domain"
	"github.com/meridian-labs/leadscope/internal/core/ports/driven"
	"github.com/meridian-labs/leadscope/internal/logger"
)

// Ensure Loader implements the interface.
var _ driven.DocumentLoader = (*Loader)(nil)

// SourceName identifies documents loaded by this adapter.
const SourceName = "filesystem"

// contentTypes maps supported file extensions to media types.
// Anything else is skipped, not failed: corpora directories routinely
// hold READMEs, spreadsheets and other files that are not corpus text.
var contentTypes = map[string]string{
	".txt": "text/plain",
	".md":  "text/markdown",
}

// Loader reads documents from a directory tree.
type Loader struct{}

// NewLoader creates a filesystem document loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load walks dir recursively and returns a document per supported file,
// ordered by path so repeated ingestions see the corpus identically.
func (l *Loader) Load(ctx context.Context, dir string) ([]domain.Document, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: corpus directory %s: %v", domain.ErrInvalidInput, dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", domain.ErrInvalidInput, dir)
	}

	var paths []string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// Skip hidden directories like .git wholesale.
			if strings.HasPrefix(d.Name(), ".") && path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		if _, ok := contentTypes[strings.ToLower(filepath.Ext(path))]; ok {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", dir, err)
	}
	sort.Strings(paths)

	docs := make([]domain.Document, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		doc, err := l.loadFile(path)
		if err != nil {
			return nil, err
		}
		if doc == nil {
			continue
		}
		docs = append(docs, *doc)
	}

	logger.Debug("Loaded %d documents from %s (%d files scanned)", len(docs), dir, len(paths))
	return docs, nil
}

// loadFile reads one file into a validated document. Empty files are
// skipped with a warning; they would otherwise fail validation and
// abort the whole ingest.
func (l *Loader) loadFile(path string) (*domain.Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if len(strings.TrimSpace(string(content))) == 0 {
		logger.Warn("Skipping empty file %s", path)
		return nil, nil
	}

	doc := domain.Document{
		ID:      uuid.NewString(),
		URI:     "file://" + path,
		Title:   titleFromPath(path),
		Content: string(content),
		Metadata: domain.SourceMetadata{
			Source:      SourceName,
			ContentType: contentTypes[strings.ToLower(filepath.Ext(path))],
			SizeBytes:   info.Size(),
			ModifiedAt:  info.ModTime().UTC(),
		},
		IngestedAt: time.Now().UTC(),
	}

	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("document %s: %w", path, err)
	}
	return &doc, nil
}

// titleFromPath derives a title from the file name, without extension.
func titleFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

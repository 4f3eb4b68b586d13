package extractors

import (
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/sercha-tagger/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-tagger/internal/extractors/epub"
	"github.com/custodia-labs/sercha-tagger/internal/extractors/pdf"
)

// Verify interface compliance
var _ driven.ExtractorRegistry = (*Registry)(nil)

// Registry implements ExtractorRegistry keyed by lowercase extension.
type Registry struct {
	mu         sync.RWMutex
	extractors map[string]driven.TextExtractor
}

// NewRegistry creates an empty extractor registry.
func NewRegistry() *Registry {
	return &Registry{
		extractors: make(map[string]driven.TextExtractor),
	}
}

// Register adds an extractor for each extension it reports.
func (r *Registry) Register(extractor driven.TextExtractor) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ext := range extractor.Extensions() {
		r.extractors[normaliseExtension(ext)] = extractor
	}
}

// Lookup returns the extractor for filename's extension.
// Matching ignores case, so "Book.PDF" resolves like "book.pdf".
func (r *Registry) Lookup(filename string) (driven.TextExtractor, bool) {
	ext := normaliseExtension(filepath.Ext(filename))
	if ext == "" {
		return nil, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	extractor, ok := r.extractors[ext]
	return extractor, ok
}

// Extensions returns all registered extensions, sorted.
func (r *Registry) Extensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	exts := make([]string, 0, len(r.extractors))
	for ext := range r.extractors {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// normaliseExtension lowercases ext and ensures a leading dot.
func normaliseExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" || ext == "." {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// DefaultRegistry creates a registry with the PDF and EPUB extractors.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(pdf.New())
	r.Register(epub.New())
	return r
}

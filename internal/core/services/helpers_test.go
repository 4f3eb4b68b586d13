package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-tagger/internal/core/domain"
	"github.com/custodia-labs/sercha-tagger/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-tagger/internal/extractors"
	"github.com/custodia-labs/sercha-tagger/internal/postprocessors"
	"github.com/custodia-labs/sercha-tagger/internal/postprocessors/normalise"
	"github.com/custodia-labs/sercha-tagger/internal/ranking/tfidf"
)

// textExtractor treats .txt files as already-extracted text.
// Content starting with CORRUPT fails; content starting with PANIC panics.
type textExtractor struct{}

func (textExtractor) Format() string       { return "TXT" }
func (textExtractor) Extensions() []string { return []string{".txt"} }

func (textExtractor) Extract(_ context.Context, _ string, content []byte) (string, error) {
	s := string(content)
	switch {
	case strings.HasPrefix(s, "PANIC"):
		panic("extractor exploded")
	case strings.HasPrefix(s, "CORRUPT"):
		return "", errors.New("bad bytes")
	}
	return s, nil
}

func testRegistry() *extractors.Registry {
	r := extractors.DefaultRegistry()
	r.Register(textExtractor{})
	return r
}

func testTagger(filter driven.TextFilter) *Tagger {
	return NewTagger(filter, tfidf.New(), postprocessors.NewPipeline(normalise.New()), domain.DefaultTopK)
}

func testWalker(opts ...WalkerOption) *Walker {
	return NewWalker(testRegistry(), testTagger(nil), NewIDGenerator(), opts...)
}

func writeFile(t *testing.T, path string, content []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, content, 0o600))
}

func filenames(docs domain.ResultSet) []string {
	names := make([]string, 0, len(docs))
	for _, doc := range docs {
		names = append(names, doc.Filename)
	}
	return names
}

func keywordsByFilename(docs domain.ResultSet) map[string][]string {
	out := make(map[string][]string, len(docs))
	for _, doc := range docs {
		out[doc.Filename] = doc.Keywords
	}
	return out
}

// recordingPatcher records patched paths and fails for names in failFor.
type recordingPatcher struct {
	mu      sync.Mutex
	failFor map[string]bool
	patched map[string][]string
}

func (p *recordingPatcher) Patch(_ context.Context, path string, keywords []string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failFor[filepath.Base(path)] {
		return errors.New("read-only metadata")
	}
	if p.patched == nil {
		p.patched = make(map[string][]string)
	}
	p.patched[filepath.Base(path)] = keywords
	return nil
}

// recordingSink stores the runs it receives.
type recordingSink struct {
	name string
	err  error
	runs []*domain.RunResult
}

func (s *recordingSink) Name() string { return s.name }

func (s *recordingSink) Write(_ context.Context, run *domain.RunResult) error {
	s.runs = append(s.runs, run)
	return s.err
}

// stubExclusions returns a fixed filter or error.
type stubExclusions struct {
	filter driven.TextFilter
	err    error
	calls  int
}

func (s *stubExclusions) Filter(_ context.Context) (driven.TextFilter, error) {
	s.calls++
	return s.filter, s.err
}

// stubFilter removes a single word.
type stubFilter struct {
	word string
	err  error
}

func (f stubFilter) Apply(text string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return strings.ReplaceAll(strings.ToLower(text), f.word, ""), nil
}

package extractors

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-tagger/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-tagger/internal/extractors/epub"
	"github.com/custodia-labs/sercha-tagger/internal/extractors/pdf"
)

// stubExtractor is a TextExtractor returning fixed text.
type stubExtractor struct {
	format string
	exts   []string
}

func (s *stubExtractor) Format() string       { return s.format }
func (s *stubExtractor) Extensions() []string { return s.exts }
func (s *stubExtractor) Extract(_ context.Context, _ string, content []byte) (string, error) {
	return string(content), nil
}

func TestInterfaceCompliance(t *testing.T) {
	var _ driven.ExtractorRegistry = (*Registry)(nil)
}

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	require.NotNil(t, r)
	assert.Empty(t, r.Extensions())
}

func TestRegistry_Lookup(t *testing.T) {
	r := NewRegistry()
	txt := &stubExtractor{format: "TXT", exts: []string{".txt", "text"}}
	r.Register(txt)

	tests := []struct {
		name     string
		filename string
		found    bool
	}{
		{"exact extension", "notes.txt", true},
		{"upper case extension", "NOTES.TXT", true},
		{"extension without dot registered", "readme.text", true},
		{"nested path", "/a/b/c/notes.txt", true},
		{"unknown extension", "image.png", false},
		{"no extension", "Makefile", false},
		{"trailing dot", "weird.", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := r.Lookup(tc.filename)
			assert.Equal(t, tc.found, ok)
			if tc.found {
				assert.Same(t, txt, got)
			} else {
				assert.Nil(t, got)
			}
		})
	}
}

func TestRegistry_LaterRegistrationWins(t *testing.T) {
	r := NewRegistry()
	first := &stubExtractor{format: "A", exts: []string{".doc"}}
	second := &stubExtractor{format: "B", exts: []string{".doc"}}

	r.Register(first)
	r.Register(second)

	got, ok := r.Lookup("file.doc")
	require.True(t, ok)
	assert.Equal(t, "B", got.Format())
	assert.Equal(t, []string{".doc"}, r.Extensions())
}

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()

	assert.Equal(t, []string{".epub", ".pdf"}, r.Extensions())

	got, ok := r.Lookup("paper.pdf")
	require.True(t, ok)
	assert.IsType(t, &pdf.Extractor{}, got)

	got, ok = r.Lookup("novel.epub")
	require.True(t, ok)
	assert.IsType(t, &epub.Extractor{}, got)
}

// Package epub extracts plain text from EPUB archives.
//
// Every resource in the archive is tried. Resources that are valid UTF-8 have
// their markup removed and are concatenated in archive order; anything else
// (images, fonts) is skipped without error.
package epub

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/sercha-tagger/internal/core/domain"
	"github.com/custodia-labs/sercha-tagger/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.TextExtractor = (*Extractor)(nil)

// containerPath is the entry every EPUB must carry.
const containerPath = "META-INF/container.xml"

// maxResourceSize bounds how much of a single resource is read.
const maxResourceSize = 64 << 20

var (
	errEmpty            = errors.New("empty file")
	errMissingContainer = errors.New("missing " + containerPath)
)

// tagPattern matches anything between '<' and '>'.
var tagPattern = regexp.MustCompile(`<[^>]+>`)

// Extractor handles EPUB documents.
type Extractor struct{}

// New creates a new EPUB extractor.
func New() *Extractor {
	return &Extractor{}
}

// Format returns the format name used in error messages.
func (e *Extractor) Format() string {
	return "EPUB"
}

// Extensions returns the extensions this extractor handles.
func (e *Extractor) Extensions() []string {
	return []string{".epub"}
}

// Extract opens the archive and returns the text of all textual resources.
func (e *Extractor) Extract(_ context.Context, filename string, content []byte) (string, error) {
	if len(content) == 0 {
		return "", e.fail(filename, errEmpty)
	}

	reader, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", e.fail(filename, err)
	}

	if !hasEntry(reader, containerPath) {
		return "", e.fail(filename, errMissingContainer)
	}

	var result strings.Builder
	for _, file := range reader.File {
		if file.FileInfo().IsDir() {
			continue
		}

		text, ok := readText(file)
		if !ok {
			continue
		}

		if result.Len() > 0 {
			result.WriteString("\n")
		}
		result.WriteString(StripTags(text))
	}

	return result.String(), nil
}

// StripTags removes everything between '<' and '>' inclusive.
func StripTags(input string) string {
	return tagPattern.ReplaceAllString(input, "")
}

// readText returns the entry's content when it decodes as UTF-8 text.
func readText(file *zip.File) (string, bool) {
	rc, err := file.Open()
	if err != nil {
		return "", false
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, maxResourceSize))
	if err != nil {
		return "", false
	}
	if !utf8.Valid(data) {
		return "", false
	}
	return string(data), true
}

func hasEntry(reader *zip.Reader, name string) bool {
	for _, file := range reader.File {
		if file.Name == name {
			return true
		}
	}
	return false
}

func (e *Extractor) fail(filename string, err error) error {
	return &domain.ExtractionError{Filename: filename, Format: e.Format(), Err: err}
}

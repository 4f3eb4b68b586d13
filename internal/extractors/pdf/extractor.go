// Package pdf extracts plain text from PDF documents.
package pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"

	"github.com/custodia-labs/sercha-tagger/internal/core/domain"
	"github.com/custodia-labs/sercha-tagger/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.TextExtractor = (*Extractor)(nil)

// errEmpty is returned for zero-length input.
var errEmpty = errors.New("empty file")

// Extractor handles PDF documents.
type Extractor struct{}

// New creates a new PDF extractor.
func New() *Extractor {
	return &Extractor{}
}

// Format returns the format name used in error messages.
func (e *Extractor) Format() string {
	return "PDF"
}

// Extensions returns the extensions this extractor handles.
func (e *Extractor) Extensions() []string {
	return []string{".pdf"}
}

// Extract decodes the PDF and returns its plain text.
// The parser panics on some malformed inputs; those panics are returned
// as extraction errors so one bad file cannot take down the batch.
func (e *Extractor) Extract(_ context.Context, filename string, content []byte) (text string, err error) {
	if len(content) == 0 {
		return "", e.fail(filename, errEmpty)
	}

	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = e.fail(filename, fmt.Errorf("malformed document: %v", r))
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", e.fail(filename, err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", e.fail(filename, err)
	}

	data, err := io.ReadAll(plain)
	if err != nil {
		return "", e.fail(filename, err)
	}

	return string(data), nil
}

func (e *Extractor) fail(filename string, err error) error {
	return &domain.ExtractionError{Filename: filename, Format: e.Format(), Err: err}
}

// Package jsonfile writes result sets as a single JSON document.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/sercha-tagger/internal/core/domain"
	"github.com/custodia-labs/sercha-tagger/internal/core/ports/driven"
)

// Ensure Sink implements the interface.
var _ driven.ResultSink = (*Sink)(nil)

// Sink writes {"<id>": {"filename": ..., "keywords": [...]}} to a file.
// The file is replaced atomically so readers never see a partial write.
type Sink struct {
	path string
}

// NewSink creates a sink writing to path.
func NewSink(path string) *Sink {
	return &Sink{path: path}
}

// Name identifies the sink in error messages.
func (s *Sink) Name() string {
	return "json"
}

// Path returns the output location.
func (s *Sink) Path() string {
	return s.path
}

// Write serialises the run's documents.
func (s *Sink) Write(_ context.Context, run *domain.RunResult) error {
	if run == nil {
		return fmt.Errorf("%w: run is nil", domain.ErrInvalidInput)
	}

	docs := run.Documents
	if docs == nil {
		docs = domain.ResultSet{}
	}

	data, err := json.MarshalIndent(docs, "", "    ")
	if err != nil {
		return fmt.Errorf("marshalling documents: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // already renamed on success

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing documents: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replacing %s: %w", s.path, err)
	}
	return nil
}

// Read loads a result set previously written by Write.
func Read(path string) (domain.ResultSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading documents: %w", err)
	}
	var docs domain.ResultSet
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("parsing documents: %w", err)
	}
	return docs, nil
}

package exclusions

import (
	"context"

	"github.com/custodia-labs/sercha-tagger/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.ExclusionSource = (*Source)(nil)

// Source builds filters from a CSV exclusion list on disk.
// The file is read again on every call so a long-running process
// picks up edits between runs.
type Source struct {
	path string
}

// NewSource creates a source for the CSV file at path.
// An empty path means no exclusions.
func NewSource(path string) *Source {
	return &Source{path: path}
}

// Path returns the CSV location.
func (s *Source) Path() string {
	return s.path
}

// Filter loads the list and compiles it.
func (s *Source) Filter(_ context.Context) (driven.TextFilter, error) {
	f, err := NewFilter(Load(s.path))
	if err != nil {
		return nil, err
	}
	return f, nil
}

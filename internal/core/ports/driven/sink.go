package driven

import (
	"context"

	"github.com/custodia-labs/sercha-tagger/internal/core/domain"
)

// ResultSink receives a finished run.
type ResultSink interface {
	// Name identifies the sink in error messages.
	Name() string

	// Write persists the run.
	Write(ctx context.Context, run *domain.RunResult) error
}

// MetadataPatcher updates a metadata file that sits next to a processed document.
type MetadataPatcher interface {
	// Patch writes keywords into the metadata file belonging to documentPath.
	// A missing metadata file is not an error.
	Patch(ctx context.Context, documentPath string, keywords []string) error
}

// RunArchive keeps finished runs and reads them back.
type RunArchive interface {
	ResultSink

	// ListRuns returns the most recent runs first. A non-positive limit returns all.
	ListRuns(ctx context.Context, limit int) ([]domain.RunSummary, error)

	// GetRun loads a run with its documents and errors.
	// Returns domain.ErrNotFound if no run has the id.
	GetRun(ctx context.Context, id string) (*domain.RunResult, error)

	// FindByKeyword returns the documents of run tagged with keyword,
	// compared case-insensitively.
	FindByKeyword(ctx context.Context, runID, keyword string) (domain.ResultSet, error)

	// Close releases the underlying resources.
	Close() error
}

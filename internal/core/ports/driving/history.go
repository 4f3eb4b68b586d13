package driving

import (
	"context"

	"github.com/custodia-labs/sercha-tagger/internal/core/domain"
)

// HistoryService reads archived runs.
type HistoryService interface {
	// ListRuns returns the most recent runs first. A non-positive limit returns all.
	ListRuns(ctx context.Context, limit int) ([]domain.RunSummary, error)

	// GetRun loads a run by ID. An empty ID selects the latest run.
	// Returns domain.ErrNotFound when there is no such run.
	GetRun(ctx context.Context, id string) (*domain.RunResult, error)

	// FindByKeyword returns documents of a run tagged with keyword.
	// An empty run ID selects the latest run.
	FindByKeyword(ctx context.Context, runID, keyword string) (domain.ResultSet, error)
}

package services

import (
	"context"

	"github.com/custodia-labs/sercha-tagger/internal/core/domain"
	"github.com/custodia-labs/sercha-tagger/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-tagger/internal/core/ports/driving"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// HistoryService answers questions about archived runs.
type HistoryService struct {
	archive driven.RunArchive
}

// NewHistoryService creates a history service backed by archive.
func NewHistoryService(archive driven.RunArchive) *HistoryService {
	return &HistoryService{archive: archive}
}

// ListRuns returns archived runs, newest first.
func (s *HistoryService) ListRuns(ctx context.Context, limit int) ([]domain.RunSummary, error) {
	return s.archive.ListRuns(ctx, limit)
}

// GetRun loads a run; an empty id means the latest.
func (s *HistoryService) GetRun(ctx context.Context, id string) (*domain.RunResult, error) {
	id, err := s.resolve(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.archive.GetRun(ctx, id)
}

// FindByKeyword searches a run; an empty runID means the latest.
func (s *HistoryService) FindByKeyword(ctx context.Context, runID, keyword string) (domain.ResultSet, error) {
	runID, err := s.resolve(ctx, runID)
	if err != nil {
		return nil, err
	}
	return s.archive.FindByKeyword(ctx, runID, keyword)
}

func (s *HistoryService) resolve(ctx context.Context, id string) (string, error) {
	if id != "" {
		return id, nil
	}
	runs, err := s.archive.ListRuns(ctx, 1)
	if err != nil {
		return "", err
	}
	if len(runs) == 0 {
		return "", domain.ErrNotFound
	}
	return runs[0].ID, nil
}

package mcp

import (
	"context"

	"github.com/custodia-labs/sercha-tagger/internal/core/domain"
)

// mockTaggingService is a mock implementation of driving.TaggingService.
type mockTaggingService struct {
	run      *domain.RunResult
	keywords []string
	err      error

	gotRoot      string
	gotRecursive bool
	gotTopK      int
}

func (m *mockTaggingService) Run(_ context.Context, root string, recursive bool) (*domain.RunResult, error) {
	m.gotRoot = root
	m.gotRecursive = recursive
	return m.run, m.err
}

func (m *mockTaggingService) RankText(_ context.Context, _ string, topK int) ([]string, error) {
	m.gotTopK = topK
	return m.keywords, m.err
}

// mockHistoryService is a mock implementation of driving.HistoryService.
type mockHistoryService struct {
	runs []domain.RunSummary
	run  *domain.RunResult
	docs domain.ResultSet
	err  error

	gotLimit int
	gotRunID string
}

func (m *mockHistoryService) ListRuns(_ context.Context, limit int) ([]domain.RunSummary, error) {
	m.gotLimit = limit
	return m.runs, m.err
}

func (m *mockHistoryService) GetRun(_ context.Context, id string) (*domain.RunResult, error) {
	m.gotRunID = id
	return m.run, m.err
}

func (m *mockHistoryService) FindByKeyword(_ context.Context, runID, _ string) (domain.ResultSet, error) {
	m.gotRunID = runID
	return m.docs, m.err
}

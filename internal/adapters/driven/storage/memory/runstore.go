package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/sercha-tagger/internal/core/domain"
	"github.com/custodia-labs/sercha-tagger/internal/core/ports/driven"
)

// Ensure RunStore implements the interface.
var _ driven.RunArchive = (*RunStore)(nil)

// RunStore is an in-memory implementation of driven.RunArchive.
// It keeps every run for the lifetime of the process.
type RunStore struct {
	mu   sync.RWMutex
	runs map[string]*domain.RunResult
}

// NewRunStore creates an empty run store.
func NewRunStore() *RunStore {
	return &RunStore{
		runs: make(map[string]*domain.RunResult),
	}
}

// Name identifies the store in error messages.
func (s *RunStore) Name() string {
	return "memory"
}

// Write stores a copy of run, assigning an ID when it has none.
func (s *RunStore) Write(_ context.Context, run *domain.RunResult) error {
	if run == nil {
		return fmt.Errorf("%w: run is nil", domain.ErrInvalidInput)
	}
	if run.ID == "" {
		run.ID = uuid.NewString()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.runs[run.ID]; exists {
		return fmt.Errorf("%w: run %s already stored", domain.ErrInvalidInput, run.ID)
	}
	s.runs[run.ID] = copyRun(run)
	return nil
}

// ListRuns returns stored runs, newest first.
func (s *RunStore) ListRuns(_ context.Context, limit int) ([]domain.RunSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]domain.RunSummary, 0, len(s.runs))
	for _, run := range s.runs {
		summaries = append(summaries, run.Summary())
	}
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].StartedAt.Equal(summaries[j].StartedAt) {
			return summaries[i].ID < summaries[j].ID
		}
		return summaries[i].StartedAt.After(summaries[j].StartedAt)
	})

	if limit > 0 && len(summaries) > limit {
		summaries = summaries[:limit]
	}
	return summaries, nil
}

// GetRun returns a copy of the run with id.
func (s *RunStore) GetRun(_ context.Context, id string) (*domain.RunResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, ok := s.runs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return copyRun(run), nil
}

// FindByKeyword returns the documents of runID tagged with keyword.
func (s *RunStore) FindByKeyword(_ context.Context, runID, keyword string) (domain.ResultSet, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, fmt.Errorf("%w: keyword is required", domain.ErrInvalidInput)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make(domain.ResultSet)
	run, ok := s.runs[runID]
	if !ok {
		return docs, nil
	}
	for id, doc := range run.Documents {
		for _, kw := range doc.Keywords {
			if strings.EqualFold(kw, keyword) {
				docs[id] = copyDocument(doc)
				break
			}
		}
	}
	return docs, nil
}

// Close is a no-op.
func (s *RunStore) Close() error {
	return nil
}

func copyRun(run *domain.RunResult) *domain.RunResult {
	c := *run
	c.Documents = make(domain.ResultSet, len(run.Documents))
	for id, doc := range run.Documents {
		c.Documents[id] = copyDocument(doc)
	}
	c.Errors = append(domain.ErrorLog(nil), run.Errors...)
	return &c
}

func copyDocument(doc domain.Document) domain.Document {
	doc.Keywords = append([]string{}, doc.Keywords...)
	return doc
}

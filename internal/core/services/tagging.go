package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/custodia-labs/sercha-tagger/internal/core/domain"
	"github.com/custodia-labs/sercha-tagger/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-tagger/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-tagger/internal/logger"
)

// Ensure TaggingService implements the interface.
var _ driving.TaggingService = (*TaggingService)(nil)

// TaggingService runs complete batches: setup, walk, then hand-off to sinks.
type TaggingService struct {
	settings   domain.Settings
	registry   driven.ExtractorRegistry
	exclusions driven.ExclusionSource
	ranker     driven.KeywordRanker
	pipeline   driven.KeywordPipeline
	ids        driven.IDGenerator
	patcher    driven.MetadataPatcher
	sinks      []driven.ResultSink
}

// NewTaggingService creates a new tagging service.
// The patcher is used only when settings.PatchMetadata is set and may be nil.
// Sinks receive every finished run in the order given.
func NewTaggingService(
	settings domain.Settings,
	registry driven.ExtractorRegistry,
	exclusions driven.ExclusionSource,
	ranker driven.KeywordRanker,
	pipeline driven.KeywordPipeline,
	ids driven.IDGenerator,
	patcher driven.MetadataPatcher,
	sinks ...driven.ResultSink,
) *TaggingService {
	return &TaggingService{
		settings:   settings,
		registry:   registry,
		exclusions: exclusions,
		ranker:     ranker,
		pipeline:   pipeline,
		ids:        ids,
		patcher:    patcher,
		sinks:      sinks,
	}
}

// Settings returns the settings the service was built with.
func (s *TaggingService) Settings() domain.Settings {
	return s.settings
}

// Run processes root. An empty root uses the configured one.
//
// The exclusion list is loaded and compiled once, before any file is read.
// An invalid exclusion pattern or an unusable root aborts the run. After the
// walk every sink is written even if an earlier one fails; sink failures are
// returned joined together alongside the result.
func (s *TaggingService) Run(ctx context.Context, root string, recursive bool) (*domain.RunResult, error) {
	if root == "" {
		root = s.settings.Root
	}
	if err := checkRoot(root); err != nil {
		return nil, err
	}

	tagger, err := s.newTagger(ctx)
	if err != nil {
		return nil, err
	}

	var opts []WalkerOption
	opts = append(opts, WithWorkers(s.settings.Workers), WithRateLimit(s.settings.FilesPerSecond))
	if s.settings.PatchMetadata && s.patcher != nil {
		opts = append(opts, WithMetadataPatcher(s.patcher))
	}
	walker := NewWalker(s.registry, tagger, s.ids, opts...)

	logger.Section("Tagging " + root)
	logger.Debug("Extensions: %v, recursive: %t, workers: %d", s.registry.Extensions(), recursive, s.settings.Workers)

	started := time.Now()
	walked := walker.Walk(ctx, root, recursive)

	run := &domain.RunResult{
		Root:       root,
		StartedAt:  started,
		FinishedAt: time.Now(),
		Documents:  walked.Documents,
		Errors:     walked.Errors,
		Partial:    walked.Partial,
	}

	// A cancelled walk still produces output for what was gathered.
	sinkCtx := context.WithoutCancel(ctx)

	var errs []error
	for _, sink := range s.sinks {
		if err := sink.Write(sinkCtx, run); err != nil {
			logger.Error("Error writing %s: %v", sink.Name(), err)
			errs = append(errs, fmt.Errorf("write %s: %w", sink.Name(), err))
		}
	}

	return run, errors.Join(errs...)
}

// RankText returns the keywords for text as if it were a document.
// A non-positive topK uses the configured one.
func (s *TaggingService) RankText(ctx context.Context, text string, topK int) ([]string, error) {
	if topK <= 0 {
		topK = s.settings.TopK
	}
	tagger, err := s.newTagger(ctx)
	if err != nil {
		return nil, err
	}
	return tagger.keywords(ctx, text, topK)
}

func (s *TaggingService) newTagger(ctx context.Context) (*Tagger, error) {
	var filter driven.TextFilter
	if s.exclusions != nil {
		var err error
		filter, err = s.exclusions.Filter(ctx)
		if err != nil {
			return nil, fmt.Errorf("build exclusion filter: %w", err)
		}
	}
	return NewTagger(filter, s.ranker, s.pipeline, s.settings.TopK), nil
}

func checkRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("%w: root %s: %w", domain.ErrInvalidInput, root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: root %s is not a directory", domain.ErrInvalidInput, root)
	}
	return nil
}

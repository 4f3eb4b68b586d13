package cli

import (
	"fmt"

	"github.com/custodia-labs/sercha-tagger/internal/adapters/driven/metadata"
	"github.com/custodia-labs/sercha-tagger/internal/adapters/driven/storage/jsonfile"
	"github.com/custodia-labs/sercha-tagger/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/sercha-tagger/internal/core/domain"
	"github.com/custodia-labs/sercha-tagger/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-tagger/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-tagger/internal/core/services"
	"github.com/custodia-labs/sercha-tagger/internal/exclusions"
	"github.com/custodia-labs/sercha-tagger/internal/extractors"
	"github.com/custodia-labs/sercha-tagger/internal/postprocessors"
	"github.com/custodia-labs/sercha-tagger/internal/postprocessors/normalise"
	"github.com/custodia-labs/sercha-tagger/internal/ranking/tfidf"
)

// Services is the set of driving ports the commands use.
type Services struct {
	Tagging driving.TaggingService
	// History is nil when no archive is configured.
	History driving.HistoryService
	// Close releases adapter resources. It may be nil.
	Close func() error
}

// wireServices connects the production adapters to the core services.
func wireServices(s domain.Settings) (*Services, error) {
	registry := postprocessors.NewRegistry()
	postprocessors.RegisterDefaults(registry)

	pipeline, err := registry.BuildPipeline(postprocessors.DefaultChain, map[string]map[string]any{
		normalise.Name: {
			"min_graphemes": s.MinGraphemes,
			"year_length":   s.YearLength,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("build keyword pipeline: %w", err)
	}

	sinks := []driven.ResultSink{jsonfile.NewSink(s.OutputPath)}

	wired := &Services{}
	if s.SQLitePath != "" {
		store, err := sqlite.NewStore(s.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open run archive: %w", err)
		}
		sinks = append(sinks, store)
		wired.History = services.NewHistoryService(store)
		wired.Close = store.Close
	}

	wired.Tagging = services.NewTaggingService(
		s,
		extractors.DefaultRegistry(),
		exclusions.NewSource(s.ExclusionsPath),
		tfidf.New(),
		pipeline,
		services.NewIDGenerator(),
		metadata.NewPatcher(),
		sinks...,
	)
	return wired, nil
}

package driven

import (
	"context"

	"github.com/custodia-labs/sercha-tagger/internal/core/domain"
)

// TextFilter removes excluded terms from document text before ranking.
// The returned text is lowercased.
type TextFilter interface {
	Apply(text string) (string, error)
}

// KeywordRanker scores terms within a single document.
type KeywordRanker interface {
	// Rank returns at most topK terms, highest score first.
	// Equal scores keep the order in which terms first occur.
	// Empty or whitespace-only text yields an empty result.
	Rank(text string, topK int) []domain.RankedTerm
}

// KeywordProcessor transforms an ordered list of candidate keywords.
// Processors are chained in a pipeline (e.g., normalisation, filtering).
type KeywordProcessor interface {
	// Name returns the processor name for logging and configuration.
	Name() string

	// Process returns the transformed keywords.
	Process(ctx context.Context, terms []string) ([]string, error)
}

// KeywordPipeline chains multiple KeywordProcessors.
type KeywordPipeline interface {
	// Process runs the terms through all processors in order.
	Process(ctx context.Context, terms []string) ([]string, error)
}

// IDGenerator produces document identifiers.
type IDGenerator interface {
	// Generate returns a new identifier. It never blocks.
	Generate() domain.DocumentID
}

// ExclusionSource supplies the filter built from the operator's exclusion list.
type ExclusionSource interface {
	// Filter loads the excluded terms and compiles them. A list that cannot
	// be loaded yields a filter that excludes nothing. A list that compiles
	// to an invalid pattern returns *domain.FilterConfigError.
	Filter(ctx context.Context) (TextFilter, error)
}

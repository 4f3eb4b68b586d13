package driving

import (
	"context"

	"github.com/custodia-labs/sercha-tagger/internal/core/domain"
)

// TaggingService runs the keyword tagging pipeline.
type TaggingService interface {
	// Run processes every eligible file under root and hands the result to
	// the configured sinks. Per-file failures are returned inside the result;
	// only setup failures are returned as an error.
	Run(ctx context.Context, root string, recursive bool) (*domain.RunResult, error)

	// RankText runs the filter, ranking and normalisation stages on text.
	RankText(ctx context.Context, text string, topK int) ([]string, error)
}

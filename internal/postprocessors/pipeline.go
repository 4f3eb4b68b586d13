// Package postprocessors provides keyword post-processing implementations.
package postprocessors

import (
	"context"
	"fmt"

	"github.com/custodia-labs/sercha-tagger/internal/core/ports/driven"
)

// Ensure Pipeline implements the interface.
var _ driven.KeywordPipeline = (*Pipeline)(nil)

// Pipeline chains multiple KeywordProcessors and runs them in order.
// It implements the KeywordPipeline interface.
type Pipeline struct {
	processors []driven.KeywordProcessor
}

// NewPipeline creates a new processing pipeline with the given processors.
// Processors are executed in the order provided.
func NewPipeline(processors ...driven.KeywordProcessor) *Pipeline {
	return &Pipeline{
		processors: processors,
	}
}

// Process runs the terms through all processors in order.
// Each processor receives the output of the previous one.
func (p *Pipeline) Process(ctx context.Context, terms []string) ([]string, error) {
	out := terms
	for _, processor := range p.processors {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var err error
		out, err = processor.Process(ctx, out)
		if err != nil {
			return nil, fmt.Errorf("processor %s: %w", processor.Name(), err)
		}
	}

	if out == nil {
		out = []string{}
	}
	return out, nil
}

// Add appends a processor to the pipeline.
func (p *Pipeline) Add(processor driven.KeywordProcessor) {
	p.processors = append(p.processors, processor)
}

// Len returns the number of processors in the pipeline.
func (p *Pipeline) Len() int {
	return len(p.processors)
}

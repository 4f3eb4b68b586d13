package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/sercha-tagger/internal/core/domain"
	"github.com/custodia-labs/sercha-tagger/internal/core/ports/driven"
)

// Tagger runs the per-document chain: filter, rank, post-process.
// It is safe for concurrent use when its collaborators are.
type Tagger struct {
	filter   driven.TextFilter
	ranker   driven.KeywordRanker
	pipeline driven.KeywordPipeline
	topK     int
}

// NewTagger creates a tagger. A nil filter only lowercases the text and a
// nil pipeline passes ranked terms through unchanged. A non-positive topK
// uses domain.DefaultTopK.
func NewTagger(
	filter driven.TextFilter,
	ranker driven.KeywordRanker,
	pipeline driven.KeywordPipeline,
	topK int,
) *Tagger {
	if topK <= 0 {
		topK = domain.DefaultTopK
	}
	return &Tagger{
		filter:   filter,
		ranker:   ranker,
		pipeline: pipeline,
		topK:     topK,
	}
}

// Tag builds the document for filename from its extracted text.
func (t *Tagger) Tag(ctx context.Context, filename, text string) (domain.Document, error) {
	name := filepath.Base(filename)
	if filename == "" || name == "." || name == string(filepath.Separator) {
		return domain.Document{}, fmt.Errorf("%w: empty filename", domain.ErrInvalidInput)
	}

	keywords, err := t.Keywords(ctx, text)
	if err != nil {
		return domain.Document{}, err
	}

	return domain.Document{Filename: name, Keywords: keywords}, nil
}

// Keywords returns the final keyword list for text.
func (t *Tagger) Keywords(ctx context.Context, text string) ([]string, error) {
	return t.keywords(ctx, text, t.topK)
}

func (t *Tagger) keywords(ctx context.Context, text string, topK int) ([]string, error) {
	if topK <= 0 {
		topK = t.topK
	}

	filtered := strings.ToLower(text)
	if t.filter != nil {
		var err error
		filtered, err = t.filter.Apply(text)
		if err != nil {
			return nil, fmt.Errorf("filter exclusions: %w", err)
		}
	}

	ranked := t.ranker.Rank(filtered, topK)
	terms := make([]string, 0, len(ranked))
	for _, r := range ranked {
		terms = append(terms, r.Term)
	}

	if t.pipeline == nil {
		return terms, nil
	}

	keywords, err := t.pipeline.Process(ctx, terms)
	if err != nil {
		return nil, fmt.Errorf("post-process keywords: %w", err)
	}
	if len(keywords) > topK {
		keywords = keywords[:topK]
	}
	return keywords, nil
}

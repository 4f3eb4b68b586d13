package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-tagger/internal/core/domain"
	"github.com/custodia-labs/sercha-tagger/internal/ranking/tfidf"
)

func TestTagger_Tag(t *testing.T) {
	tagger := testTagger(nil)

	doc, err := tagger.Tag(context.Background(), "/library/books/ocean.pdf",
		"Ocean waves and the ocean tide in 1999 or 42 AD")

	require.NoError(t, err)
	assert.Equal(t, "ocean.pdf", doc.Filename)
	assert.Equal(t, []string{"Ocean", "Waves", "Tide", "1999"}, doc.Keywords)
}

func TestTagger_Tag_AppliesFilter(t *testing.T) {
	tagger := testTagger(stubFilter{word: "ocean"})

	doc, err := tagger.Tag(context.Background(), "ocean.pdf", "Ocean waves ocean tide")

	require.NoError(t, err)
	assert.Equal(t, []string{"Waves", "Tide"}, doc.Keywords)
}

func TestTagger_Tag_EmptyFilename(t *testing.T) {
	_, err := testTagger(nil).Tag(context.Background(), "", "text")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTagger_Tag_FilterError(t *testing.T) {
	filterErr := errors.New("match timeout")
	tagger := testTagger(stubFilter{err: filterErr})

	_, err := tagger.Tag(context.Background(), "a.pdf", "text")

	assert.ErrorIs(t, err, filterErr)
}

func TestTagger_Tag_EmptyText(t *testing.T) {
	doc, err := testTagger(nil).Tag(context.Background(), "blank.pdf", "   ")

	require.NoError(t, err)
	assert.Equal(t, "blank.pdf", doc.Filename)
	assert.Empty(t, doc.Keywords)
}

func TestTagger_Keywords_CappedAtTopK(t *testing.T) {
	var words []string
	for i := 0; i < 200; i++ {
		words = append(words, fmt.Sprintf("term%03d", i))
	}
	text := strings.Join(words, " ")

	keywords, err := testTagger(nil).Keywords(context.Background(), text)
	require.NoError(t, err)
	assert.Len(t, keywords, domain.DefaultTopK)

	small := NewTagger(nil, tfidf.New(), nil, 3)
	keywords, err = small.Keywords(context.Background(), text)
	require.NoError(t, err)
	assert.Equal(t, []string{"term000", "term001", "term002"}, keywords)
}

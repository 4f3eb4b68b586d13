// Package tfidf ranks the terms of a document by tf-idf.
//
// Each document is ranked on its own: the corpus used for inverse document
// frequency is the document itself, so idf is the same constant for every
// term and the order is decided by term frequency. Keyword lists therefore
// do not depend on which other files were processed in the same run.
package tfidf

import (
	"math"
	"sort"
	"strings"

	"github.com/custodia-labs/sercha-tagger/internal/core/domain"
	"github.com/custodia-labs/sercha-tagger/internal/core/ports/driven"
)

// Ensure Ranker implements the interface.
var _ driven.KeywordRanker = (*Ranker)(nil)

// DefaultTopK is the number of terms returned when none is requested.
const DefaultTopK = domain.DefaultTopK

// Option configures a Ranker.
type Option func(*Ranker)

// WithStopWords replaces the stop word list.
func WithStopWords(words []string) Option {
	return func(r *Ranker) {
		r.stopWords = make(map[string]struct{}, len(words))
		for _, w := range words {
			r.stopWords[strings.ToLower(w)] = struct{}{}
		}
	}
}

// WithPunctuation replaces the punctuation set.
func WithPunctuation(marks []string) Option {
	return func(r *Ranker) {
		r.punctuation = newPunctuationReplacer(marks)
	}
}

// Ranker scores terms with single-document tf-idf.
// A Ranker is immutable after construction and safe for concurrent use.
type Ranker struct {
	stopWords   map[string]struct{}
	punctuation *strings.Replacer
}

// New creates a ranker using the English stop words and default punctuation
// unless overridden by opts.
func New(opts ...Option) *Ranker {
	r := &Ranker{}
	WithStopWords(EnglishStopWords())(r)
	WithPunctuation(DefaultPunctuation)(r)
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Rank returns at most topK terms of text, highest score first.
// Ties keep first-occurrence order. A non-positive topK uses DefaultTopK.
func (r *Ranker) Rank(text string, topK int) []domain.RankedTerm {
	if topK <= 0 {
		topK = DefaultTopK
	}

	tokens := r.Tokenize(text)
	if len(tokens) == 0 {
		return []domain.RankedTerm{}
	}

	corpus := [][]string{tokens}
	ranked := Score(tokens, corpus)

	if len(ranked) > topK {
		ranked = ranked[:topK]
	}
	return ranked
}

// Tokenize lowercases text, turns punctuation into separators and drops
// stop words.
func (r *Ranker) Tokenize(text string) []string {
	text = r.punctuation.Replace(strings.ToLower(text))

	fields := strings.Fields(text)
	tokens := fields[:0]
	for _, f := range fields {
		if _, stop := r.stopWords[f]; stop {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// Score computes tf-idf for every distinct term of doc against corpus and
// returns the terms sorted by descending score. Equal scores keep the order
// in which the terms first appear in doc.
//
// tf is the term count divided by the document length. idf is the smoothed
// ln((1+N)/(1+df)) + 1, which is exactly 1 when the corpus is doc alone.
func Score(doc []string, corpus [][]string) []domain.RankedTerm {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, term := range doc {
		if counts[term] == 0 {
			order = append(order, term)
		}
		counts[term]++
	}

	df := documentFrequency(corpus)
	n := float64(len(corpus))
	total := float64(len(doc))

	ranked := make([]domain.RankedTerm, len(order))
	for i, term := range order {
		tf := float64(counts[term]) / total
		idf := math.Log((1+n)/(1+float64(df[term]))) + 1
		ranked[i] = domain.RankedTerm{Term: term, Score: tf * idf}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// documentFrequency counts, for each term, how many documents contain it.
func documentFrequency(corpus [][]string) map[string]int {
	df := make(map[string]int)
	for _, doc := range corpus {
		seen := make(map[string]struct{}, len(doc))
		for _, term := range doc {
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			df[term]++
		}
	}
	return df
}

func newPunctuationReplacer(marks []string) *strings.Replacer {
	pairs := make([]string, 0, 2*len(marks))
	for _, m := range marks {
		if m == "" {
			continue
		}
		pairs = append(pairs, m, " ")
	}
	return strings.NewReplacer(pairs...)
}

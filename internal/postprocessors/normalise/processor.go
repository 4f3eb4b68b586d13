// Package normalise cleans ranked keywords for presentation.
//
// Numeric terms survive only when they look like a year. Other terms must be
// at least a few user-perceived characters long and are returned with their
// first character uppercased. Order is preserved and duplicates are kept.
package normalise

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/rivo/uniseg"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/custodia-labs/sercha-tagger/internal/core/domain"
)

// Name is the registry name of this processor.
const Name = "normalise"

// Processor applies the keyword normalisation rules.
// It implements the KeywordProcessor interface.
type Processor struct {
	minGraphemes int
	yearLength   int
}

// Option configures the processor.
type Option func(*Processor)

// WithMinGraphemes sets the shortest non-numeric keyword that is kept.
func WithMinGraphemes(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.minGraphemes = n
		}
	}
}

// WithYearLength sets the length a numeric keyword must have to be kept.
func WithYearLength(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.yearLength = n
		}
	}
}

// New creates a new normalise processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{
		minGraphemes: domain.DefaultMinGraphemes,
		yearLength:   domain.DefaultYearLength,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return Name
}

// Process returns the kept terms in their original order.
func (p *Processor) Process(_ context.Context, terms []string) ([]string, error) {
	out := make([]string, 0, len(terms))
	for _, term := range terms {
		if kw, ok := p.Normalise(term); ok {
			out = append(out, kw)
		}
	}
	return out, nil
}

// Normalise applies the rules to a single term and reports whether it is kept.
func (p *Processor) Normalise(term string) (string, bool) {
	term = strings.TrimSpace(term)
	if term == "" {
		return "", false
	}

	if isNumeric(term) {
		return term, len(term) == p.yearLength
	}

	if uniseg.GraphemeClusterCount(term) < p.minGraphemes {
		return "", false
	}

	first, rest, _, _ := uniseg.FirstGraphemeClusterInString(term, -1)
	// cases.Caser is stateful; a fresh copy per call keeps Process reentrant.
	upper := cases.Upper(language.Und)
	return upper.String(first) + rest, true
}

// isNumeric reports whether term is a decimal floating-point literal.
// Values too large for float64 still count. Digit separators and hex
// literals, which strconv also accepts, are treated as words.
func isNumeric(term string) bool {
	if strings.ContainsRune(term, '_') {
		return false
	}
	unsigned := strings.TrimPrefix(strings.TrimPrefix(term, "+"), "-")
	if len(unsigned) > 1 && unsigned[0] == '0' && (unsigned[1] == 'x' || unsigned[1] == 'X') {
		return false
	}
	_, err := strconv.ParseFloat(term, 64)
	return err == nil || errors.Is(err, strconv.ErrRange)
}

package exclusions

import (
	"strings"
	"time"

	"github.com/dlclark/regexp2"

	"github.com/custodia-labs/sercha-tagger/internal/core/domain"
	"github.com/custodia-labs/sercha-tagger/internal/core/ports/driven"
)

// DefaultMatchTimeout bounds a single Apply call. Terms are pattern
// fragments, so an operator term can backtrack catastrophically.
const DefaultMatchTimeout = 5 * time.Second

// FilterOption configures a Filter.
type FilterOption func(*filterConfig)

type filterConfig struct {
	timeout time.Duration
}

// WithMatchTimeout overrides DefaultMatchTimeout. Non-positive values are ignored.
func WithMatchTimeout(d time.Duration) FilterOption {
	return func(c *filterConfig) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// Ensure Filter implements the interface.
var _ driven.TextFilter = (*Filter)(nil)

// Filter deletes excluded terms and their naive plurals from text.
// A Filter is safe for concurrent use.
type Filter struct {
	re      *regexp2.Regexp
	pattern string
}

// NewFilter compiles terms into a single whole-word pattern.
// Terms are used as pattern fragments, not literals, so a malformed term
// makes the pattern invalid and yields a *domain.FilterConfigError.
// An empty list produces a filter that only lowercases.
func NewFilter(terms []string, opts ...FilterOption) (*Filter, error) {
	cfg := filterConfig{timeout: DefaultMatchTimeout}
	for _, opt := range opts {
		opt(&cfg)
	}

	alternatives := make([]string, 0, 2*len(terms))
	for _, term := range terms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			continue
		}
		alternatives = append(alternatives, term, term+"s")
	}

	if len(alternatives) == 0 {
		return &Filter{}, nil
	}

	pattern := `\b(?:` + strings.Join(alternatives, "|") + `)\b`
	re, err := regexp2.Compile(pattern, regexp2.IgnoreCase)
	if err != nil {
		return nil, &domain.FilterConfigError{Pattern: pattern, Err: err}
	}
	re.MatchTimeout = cfg.timeout

	return &Filter{re: re, pattern: pattern}, nil
}

// Pattern returns the compiled pattern, or "" for an empty filter.
func (f *Filter) Pattern() string {
	return f.pattern
}

// Apply lowercases text and removes every match.
// A match that runs past the timeout returns an error.
// Callers must not rely on the original casing surviving.
func (f *Filter) Apply(text string) (string, error) {
	lower := strings.ToLower(text)
	if f.re == nil {
		return lower, nil
	}
	return f.re.Replace(lower, "", -1, -1)
}

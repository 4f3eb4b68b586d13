package driven

import "context"

// TextExtractor converts a raw document of one format into plain text.
// Extraction is best-effort: failures are returned as *domain.ExtractionError
// carrying the filename and the underlying cause.
type TextExtractor interface {
	// Format returns a short human-readable format name (e.g. "PDF").
	Format() string

	// Extensions returns the lowercase filename extensions handled,
	// including the leading dot (e.g. ".pdf").
	Extensions() []string

	// Extract decodes content read from filename.
	Extract(ctx context.Context, filename string, content []byte) (string, error)
}

// ExtractorRegistry maps filename extensions to extractors.
type ExtractorRegistry interface {
	// Register adds an extractor for every extension it reports.
	// A later registration for the same extension replaces the earlier one.
	Register(extractor TextExtractor)

	// Lookup returns the extractor for filename, matched on its extension.
	Lookup(filename string) (TextExtractor, bool)

	// Extensions returns every registered extension, sorted.
	Extensions() []string
}

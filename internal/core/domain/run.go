package domain

import "time"

// RunResult is the outcome of one complete batch.
type RunResult struct {
	// ID identifies the run in the archive. Empty when no archive is configured.
	ID string

	// Root is the directory that was processed.
	Root string

	// StartedAt and FinishedAt bound the run.
	StartedAt  time.Time
	FinishedAt time.Time

	// Documents and Errors are the accumulated traversal results.
	Documents ResultSet
	Errors    ErrorLog

	// Partial is true when some subtree was not fully traversed.
	Partial bool
}

// Duration returns how long the run took.
func (r *RunResult) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// Summary returns the archive listing entry for the run.
func (r *RunResult) Summary() RunSummary {
	return RunSummary{
		ID:            r.ID,
		Root:          r.Root,
		StartedAt:     r.StartedAt,
		FinishedAt:    r.FinishedAt,
		DocumentCount: len(r.Documents),
		ErrorCount:    len(r.Errors),
		Partial:       r.Partial,
	}
}

// RunSummary describes an archived run without its documents.
type RunSummary struct {
	ID            string
	Root          string
	StartedAt     time.Time
	FinishedAt    time.Time
	DocumentCount int
	ErrorCount    int
	Partial       bool
}

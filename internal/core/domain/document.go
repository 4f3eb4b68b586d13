package domain

import (
	"sort"
	"sync"
)

// DocumentID is the key a Document is stored under.
// It is unique within one run and never parsed back.
type DocumentID string

// Document is the result of processing one file.
// Keywords are in ranking order (most important first).
type Document struct {
	// Filename is the base name of the processed file. Never empty.
	Filename string `json:"filename"`

	// Keywords are the normalised ranked terms.
	Keywords []string `json:"keywords"`
}

// RankedTerm is a candidate keyword with its importance score.
type RankedTerm struct {
	Term  string
	Score float64
}

// ResultSet maps document identifiers to documents.
type ResultSet map[DocumentID]Document

// ErrorLog is an ordered list of per-item failures.
type ErrorLog []error

// Messages returns the human-readable form of every entry.
func (l ErrorLog) Messages() []string {
	msgs := make([]string, len(l))
	for i, err := range l {
		msgs[i] = err.Error()
	}
	return msgs
}

// WalkResult is the outcome of traversing one directory tree.
type WalkResult struct {
	// Documents holds every successfully processed file.
	Documents ResultSet

	// Errors holds every failure, in the order it was recorded.
	// Order may vary between runs when files are processed in parallel.
	Errors ErrorLog

	// Partial is true when a fault or cancellation stopped traversal
	// of at least one subtree. Documents gathered before that point are kept.
	Partial bool
}

// Accumulator collects documents and errors from concurrent writers.
// Failures are additive: recording an error never removes a document.
type Accumulator struct {
	mu      sync.Mutex
	docs    ResultSet
	errs    ErrorLog
	partial bool
}

// NewAccumulator creates an empty accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{docs: make(ResultSet)}
}

// Add stores a document under id.
func (a *Accumulator) Add(id DocumentID, doc Document) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.docs[id] = doc
}

// Fail appends a failure.
func (a *Accumulator) Fail(err error) {
	if err == nil {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.errs = append(a.errs, err)
}

// MarkPartial records that some subtree was not fully traversed.
func (a *Accumulator) MarkPartial() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.partial = true
}

// Len returns the number of documents collected so far.
func (a *Accumulator) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.docs)
}

// ErrorCount returns the number of failures collected so far.
func (a *Accumulator) ErrorCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.errs)
}

// Result returns a snapshot of everything collected.
func (a *Accumulator) Result() *WalkResult {
	a.mu.Lock()
	defer a.mu.Unlock()

	docs := make(ResultSet, len(a.docs))
	for id, doc := range a.docs {
		docs[id] = doc
	}
	errs := make(ErrorLog, len(a.errs))
	copy(errs, a.errs)

	return &WalkResult{
		Documents: docs,
		Errors:    errs,
		Partial:   a.partial,
	}
}

// SortedIDs returns the document identifiers in lexical order.
// Identifiers start with a timestamp, so this is roughly insertion order.
func (r ResultSet) SortedIDs() []DocumentID {
	ids := make([]DocumentID, 0, len(r))
	for id := range r {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

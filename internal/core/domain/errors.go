package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Pipeline Errors.

	// ErrExtraction indicates a document could not be converted to text.
	ErrExtraction = errors.New("extraction failed")

	// ErrFilterConfig indicates the exclusion list produced an unusable pattern.
	// It is fatal to the whole run because the pattern is shared by every document.
	ErrFilterConfig = errors.New("invalid exclusion pattern")

	// ErrDirectoryRead indicates a directory or directory entry could not be read.
	ErrDirectoryRead = errors.New("directory read failed")

	// ErrCatastrophicFault indicates traversal itself faulted.
	// Results for the affected subtree are best-effort.
	ErrCatastrophicFault = errors.New("traversal fault")

	// ErrTagging indicates the filter, rank or post-process chain failed for one document.
	ErrTagging = errors.New("tagging failed")

	// ErrMetadataPatch indicates a sibling metadata file could not be updated.
	ErrMetadataPatch = errors.New("metadata patch failed")
)

// ExtractionError records a format-specific decode failure for one file.
type ExtractionError struct {
	Filename string
	Format   string
	Err      error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("Error extracting text from %s %s: %v", e.Format, e.Filename, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// Is reports whether target is ErrExtraction.
func (e *ExtractionError) Is(target error) bool { return target == ErrExtraction }

// FilterConfigError records an exclusion pattern that failed to compile.
type FilterConfigError struct {
	Pattern string
	Err     error
}

func (e *FilterConfigError) Error() string {
	return fmt.Sprintf("invalid exclusion pattern %q: %v", e.Pattern, e.Err)
}

func (e *FilterConfigError) Unwrap() error { return e.Err }

// Is reports whether target is ErrFilterConfig.
func (e *FilterConfigError) Is(target error) bool { return target == ErrFilterConfig }

// DirectoryReadError records a filesystem access failure.
type DirectoryReadError struct {
	Path string
	Err  error
}

func (e *DirectoryReadError) Error() string {
	return fmt.Sprintf("Error reading directory entry %s: %v", e.Path, e.Err)
}

func (e *DirectoryReadError) Unwrap() error { return e.Err }

// Is reports whether target is ErrDirectoryRead.
func (e *DirectoryReadError) Is(target error) bool { return target == ErrDirectoryRead }

// FaultError records an unexpected fault while traversing Path.
// Value is whatever the fault carried (a recovered panic value or an error).
type FaultError struct {
	Path  string
	Value any
}

func (e *FaultError) Error() string {
	return fmt.Sprintf("Fault while processing %s: %v", e.Path, e.Value)
}

// Unwrap returns the fault value when it is an error.
func (e *FaultError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// Is reports whether target is ErrCatastrophicFault.
func (e *FaultError) Is(target error) bool { return target == ErrCatastrophicFault }

// MetadataError records a failed update of a sibling metadata file.
type MetadataError struct {
	Path string
	Err  error
}

func (e *MetadataError) Error() string {
	return fmt.Sprintf("Error updating metadata %s: %v", e.Path, e.Err)
}

func (e *MetadataError) Unwrap() error { return e.Err }

// Is reports whether target is ErrMetadataPatch.
func (e *MetadataError) Is(target error) bool { return target == ErrMetadataPatch }

// TaggingError records a failure in the keyword chain for one file.
type TaggingError struct {
	Path string
	Err  error
}

func (e *TaggingError) Error() string {
	return fmt.Sprintf("Error tagging %s: %v", e.Path, e.Err)
}

func (e *TaggingError) Unwrap() error { return e.Err }

// Is reports whether target is ErrTagging.
func (e *TaggingError) Is(target error) bool { return target == ErrTagging }

// Package metadata updates the sidecar metadata files that sit next to documents.
//
// For a document dir/name.ext the sidecar is dir/name.metadata.json. Only its
// "tags" field is replaced; every other field keeps its original JSON value.
// Keys are written back in sorted order.
package metadata

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/sercha-tagger/internal/core/domain"
	"github.com/custodia-labs/sercha-tagger/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-tagger/internal/logger"
)

// Suffix is appended to the document name, without its extension, to find the sidecar.
const Suffix = ".metadata.json"

// Ensure Patcher implements the interface.
var _ driven.MetadataPatcher = (*Patcher)(nil)

// Patcher rewrites the "tags" field of sidecar metadata files.
type Patcher struct{}

// NewPatcher creates a patcher.
func NewPatcher() *Patcher {
	return &Patcher{}
}

// SidecarPath returns the metadata path for documentPath.
func SidecarPath(documentPath string) string {
	ext := filepath.Ext(documentPath)
	return strings.TrimSuffix(documentPath, ext) + Suffix
}

// Patch sets the sidecar's tags to keywords. A missing sidecar is skipped.
// Failures are returned as *domain.MetadataError.
func (p *Patcher) Patch(_ context.Context, documentPath string, keywords []string) error {
	path := SidecarPath(documentPath)

	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return &domain.MetadataError{Path: path, Err: err}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return &domain.MetadataError{Path: path, Err: err}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return &domain.MetadataError{Path: path, Err: fmt.Errorf("parsing metadata: %w", err)}
	}
	if fields == nil {
		fields = make(map[string]json.RawMessage)
	}

	if keywords == nil {
		keywords = []string{}
	}
	tags, err := json.Marshal(keywords)
	if err != nil {
		return &domain.MetadataError{Path: path, Err: err}
	}
	fields["tags"] = tags

	out, err := marshalIndent(fields)
	if err != nil {
		return &domain.MetadataError{Path: path, Err: err}
	}

	if err := os.WriteFile(path, out, info.Mode().Perm()); err != nil {
		return &domain.MetadataError{Path: path, Err: err}
	}

	logger.Debug("Updated tags in %s", path)
	return nil
}

// marshalIndent re-indents raw field values along with the object itself.
func marshalIndent(fields map[string]json.RawMessage) ([]byte, error) {
	compact, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", "  "); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Package mcp provides an MCP (Model Context Protocol) server adapter for the tagger.
// It lets AI assistants tag directories, rank ad-hoc text and browse archived runs.
package mcp

import "errors"

// ErrMissingTaggingService is returned when the tagging service is not provided.
var ErrMissingTaggingService = errors.New("mcp: tagging service is required")

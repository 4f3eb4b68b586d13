package mcp

import (
	"github.com/custodia-labs/sercha-tagger/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Tagging runs the keyword pipeline.
	Tagging driving.TaggingService

	// History reads archived runs. Optional: nil when no archive is configured.
	History driving.HistoryService

	// Settings is the effective configuration, served read-only. Optional.
	Settings map[string]any
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Tagging == nil {
		return ErrMissingTaggingService
	}
	return nil
}

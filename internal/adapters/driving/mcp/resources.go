package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/sercha-tagger/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for tagger resources.
	uriScheme = "tagger://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "runs",
		Name:        "runs",
		Description: "Archived tagging runs, most recent first",
		MIMEType:    "application/json",
	}, s.handleRunsResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "settings",
		Name:        "settings",
		Description: "Effective tagger configuration",
		MIMEType:    "application/json",
	}, s.handleSettingsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "runs/{runId}",
		Name:        "run-documents",
		Description: "Documents and errors recorded by one run (use \"latest\" for the newest)",
		MIMEType:    "application/json",
	}, s.handleRunResource)
}

// handleRunsResource returns every archived run summary.
func (s *Server) handleRunsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.History == nil {
		return jsonResource(req.Params.URI, []RunOutput{})
	}

	runs, err := s.ports.History.ListRuns(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}

	return jsonResource(req.Params.URI, runOutputs(runs))
}

// handleRunResource returns the documents of one archived run.
func (s *Server) handleRunResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.History == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	runID, ok := extractRunID(req.Params.URI)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if runID == "latest" {
		runID = ""
	}

	run, err := s.ports.History.GetRun(ctx, runID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("loading run: %w", err)
	}

	type runDetail struct {
		RunOutput
		Documents []DocumentOutput `json:"documents"`
		Errors    []string         `json:"errors"`
	}

	return jsonResource(req.Params.URI, runDetail{
		RunOutput: runOutputs([]domain.RunSummary{run.Summary()})[0],
		Documents: documentOutputs(run.Documents),
		Errors:    run.Errors.Messages(),
	})
}

// handleSettingsResource returns the settings the server runs with.
func (s *Server) handleSettingsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Settings == nil {
		return jsonResource(req.Params.URI, map[string]any{})
	}
	return jsonResource(req.Params.URI, s.ports.Settings)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractRunID extracts the run ID from a URI like tagger://runs/{runId}.
func extractRunID(uri string) (string, bool) {
	const prefix = uriScheme + "runs/"

	if !strings.HasPrefix(uri, prefix) {
		return "", false
	}

	id := strings.TrimPrefix(uri, prefix)
	if id == "" || strings.Contains(id, "/") {
		return "", false
	}
	return id, true
}

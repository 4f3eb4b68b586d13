package mcp

import (
	"context"
	"errors"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/sercha-tagger/internal/core/domain"
)

// errNoArchive is returned by history tools when no run archive is configured.
var errNoArchive = errors.New("run history is not enabled; configure an sqlite archive")

// TagDirectoryInput is the input schema for the tag_directory tool.
type TagDirectoryInput struct {
	Root      string `json:"root,omitempty" jsonschema:"directory to process (defaults to the configured root)"`
	Recursive *bool  `json:"recursive,omitempty" jsonschema:"descend into subdirectories (default true)"`
}

// TagDirectoryOutput is the output schema for the tag_directory tool.
type TagDirectoryOutput struct {
	RunID     string           `json:"run_id,omitempty"`
	Documents []DocumentOutput `json:"documents"`
	Errors    []string         `json:"errors"`
	Partial   bool             `json:"partial"`
	Duration  string           `json:"duration"`
}

// DocumentOutput is a single tagged document.
type DocumentOutput struct {
	ID       string   `json:"id"`
	Filename string   `json:"filename"`
	Keywords []string `json:"keywords"`
}

// RankTextInput is the input schema for the rank_text tool.
type RankTextInput struct {
	Text string `json:"text" jsonschema:"the text to extract keywords from"`
	TopK int    `json:"top_k,omitempty" jsonschema:"maximum number of keywords (defaults to the configured top_k)"`
}

// RankTextOutput is the output schema for the rank_text tool.
type RankTextOutput struct {
	Keywords []string `json:"keywords"`
}

// ListRunsInput is the input schema for the list_runs tool.
type ListRunsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of runs to return (default 10)"`
}

// ListRunsOutput is the output schema for the list_runs tool.
type ListRunsOutput struct {
	Runs  []RunOutput `json:"runs"`
	Count int         `json:"count"`
}

// RunOutput summarises one archived run.
type RunOutput struct {
	ID            string    `json:"id"`
	Root          string    `json:"root"`
	StartedAt     time.Time `json:"started_at"`
	FinishedAt    time.Time `json:"finished_at"`
	DocumentCount int       `json:"document_count"`
	ErrorCount    int       `json:"error_count"`
	Partial       bool      `json:"partial"`
}

// FindKeywordInput is the input schema for the find_keyword tool.
type FindKeywordInput struct {
	Keyword string `json:"keyword" jsonschema:"keyword to look up (case-insensitive)"`
	RunID   string `json:"run_id,omitempty" jsonschema:"run to search (defaults to the latest run)"`
}

// FindKeywordOutput is the output schema for the find_keyword tool.
type FindKeywordOutput struct {
	Documents []DocumentOutput `json:"documents"`
	Count     int              `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "tag_directory",
		Description: "Extract ranked keywords from every PDF and EPUB under a directory",
	}, s.handleTagDirectory)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "rank_text",
		Description: "Extract ranked keywords from a piece of text",
	}, s.handleRankText)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_runs",
		Description: "List archived tagging runs, most recent first",
	}, s.handleListRuns)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "find_keyword",
		Description: "Find documents of an archived run tagged with a keyword",
	}, s.handleFindKeyword)
}

func (s *Server) handleTagDirectory(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input TagDirectoryInput,
) (*mcp.CallToolResult, TagDirectoryOutput, error) {
	recursive := true
	if input.Recursive != nil {
		recursive = *input.Recursive
	}

	run, err := s.ports.Tagging.Run(ctx, input.Root, recursive)
	if err != nil {
		return nil, TagDirectoryOutput{}, err
	}

	return nil, TagDirectoryOutput{
		RunID:     run.ID,
		Documents: documentOutputs(run.Documents),
		Errors:    run.Errors.Messages(),
		Partial:   run.Partial,
		Duration:  run.Duration().Round(time.Millisecond).String(),
	}, nil
}

func (s *Server) handleRankText(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RankTextInput,
) (*mcp.CallToolResult, RankTextOutput, error) {
	keywords, err := s.ports.Tagging.RankText(ctx, input.Text, input.TopK)
	if err != nil {
		return nil, RankTextOutput{}, err
	}
	return nil, RankTextOutput{Keywords: keywords}, nil
}

func (s *Server) handleListRuns(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListRunsInput,
) (*mcp.CallToolResult, ListRunsOutput, error) {
	if s.ports.History == nil {
		return nil, ListRunsOutput{}, errNoArchive
	}

	limit := input.Limit
	if limit <= 0 {
		limit = 10
	}

	runs, err := s.ports.History.ListRuns(ctx, limit)
	if err != nil {
		return nil, ListRunsOutput{}, err
	}

	return nil, ListRunsOutput{Runs: runOutputs(runs), Count: len(runs)}, nil
}

func (s *Server) handleFindKeyword(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FindKeywordInput,
) (*mcp.CallToolResult, FindKeywordOutput, error) {
	if s.ports.History == nil {
		return nil, FindKeywordOutput{}, errNoArchive
	}

	docs, err := s.ports.History.FindByKeyword(ctx, input.RunID, input.Keyword)
	if err != nil {
		return nil, FindKeywordOutput{}, err
	}

	out := documentOutputs(docs)
	return nil, FindKeywordOutput{Documents: out, Count: len(out)}, nil
}

// documentOutputs flattens a result set in identifier order.
func documentOutputs(docs domain.ResultSet) []DocumentOutput {
	out := make([]DocumentOutput, 0, len(docs))
	for _, id := range docs.SortedIDs() {
		doc := docs[id]
		out = append(out, DocumentOutput{
			ID:       string(id),
			Filename: doc.Filename,
			Keywords: doc.Keywords,
		})
	}
	return out
}

func runOutputs(runs []domain.RunSummary) []RunOutput {
	out := make([]RunOutput, len(runs))
	for i, r := range runs {
		out[i] = RunOutput{
			ID:            r.ID,
			Root:          r.Root,
			StartedAt:     r.StartedAt,
			FinishedAt:    r.FinishedAt,
			DocumentCount: r.DocumentCount,
			ErrorCount:    r.ErrorCount,
			Partial:       r.Partial,
		}
	}
	return out
}

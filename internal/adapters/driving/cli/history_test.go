package cli

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-tagger/internal/core/domain"
)

func TestHistoryCmd_WithoutArchive(t *testing.T) {
	setupCLITest(t, &mockTaggingService{}, nil)

	_, _, err := execute(t, "history", "list")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "run history is not enabled")
}

func TestHistoryCmd_List(t *testing.T) {
	history := &mockHistoryService{
		runs: []domain.RunSummary{
			{ID: "run-2", Root: "/docs", StartedAt: time.Now(), DocumentCount: 3, ErrorCount: 1, Partial: true},
			{ID: "run-1", Root: "/docs", StartedAt: time.Now(), DocumentCount: 2},
		},
	}
	setupCLITest(t, &mockTaggingService{}, history)

	out, _, err := execute(t, "history", "list", "--limit", "5")

	require.NoError(t, err)
	assert.Equal(t, 5, history.gotLimit)
	assert.Contains(t, out, "run-2")
	assert.Contains(t, out, "3 documents, 1 errors partial")
	assert.Contains(t, out, "run-1")
}

func TestHistoryCmd_ListEmpty(t *testing.T) {
	setupCLITest(t, &mockTaggingService{}, &mockHistoryService{})

	out, _, err := execute(t, "history")

	require.NoError(t, err)
	assert.Contains(t, out, "No runs archived.")
}

func TestHistoryCmd_ShowLatest(t *testing.T) {
	history := &mockHistoryService{run: sampleRun()}
	setupCLITest(t, &mockTaggingService{}, history)

	out, _, err := execute(t, "history", "show")

	require.NoError(t, err)
	assert.Equal(t, "", history.gotRunID)
	assert.Contains(t, out, "Run run-1 (/docs)")
	assert.Contains(t, out, "a.pdf  Ocean, Whale")
	assert.Contains(t, out, "b.epub  Forest")
}

func TestHistoryCmd_ShowMissingRun(t *testing.T) {
	setupCLITest(t, &mockTaggingService{}, &mockHistoryService{err: domain.ErrNotFound})

	_, _, err := execute(t, "history", "show", "nope")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestHistoryCmd_FindJSON(t *testing.T) {
	history := &mockHistoryService{
		docs: domain.ResultSet{"1_1": {Filename: "a.pdf", Keywords: []string{"Ocean"}}},
	}
	setupCLITest(t, &mockTaggingService{}, history)

	out, _, err := execute(t, "history", "find", "ocean", "run-1", "--json")

	require.NoError(t, err)
	assert.Equal(t, "ocean", history.gotKeyword)
	assert.Equal(t, "run-1", history.gotRunID)

	var docs domain.ResultSet
	require.NoError(t, json.Unmarshal([]byte(out), &docs))
	assert.Equal(t, "a.pdf", docs["1_1"].Filename)
}

func TestHistoryCmd_FindNoMatches(t *testing.T) {
	setupCLITest(t, &mockTaggingService{}, &mockHistoryService{docs: domain.ResultSet{}})

	out, _, err := execute(t, "history", "find", "ocean")

	require.NoError(t, err)
	assert.Contains(t, out, `No documents tagged "ocean".`)
}

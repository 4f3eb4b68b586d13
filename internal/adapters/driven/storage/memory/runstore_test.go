package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-tagger/internal/core/domain"
)

func testRun(started time.Time) *domain.RunResult {
	return &domain.RunResult{
		Root:       "/library",
		StartedAt:  started,
		FinishedAt: started.Add(time.Second),
		Documents: domain.ResultSet{
			"1_1": {Filename: "ocean.pdf", Keywords: []string{"Ocean", "Tide"}},
			"1_2": {Filename: "desert.epub", Keywords: []string{"Dune"}},
		},
		Errors: domain.ErrorLog{errors.New("Error extracting text from PDF bad.pdf: boom")},
	}
}

func TestRunStore_WriteAndGet(t *testing.T) {
	store := NewRunStore()
	ctx := context.Background()
	run := testRun(time.Now())

	require.NoError(t, store.Write(ctx, run))
	require.NotEmpty(t, run.ID)

	got, err := store.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.Documents, got.Documents)
	assert.Equal(t, run.Errors.Messages(), got.Errors.Messages())

	// Stored runs are copies.
	run.Documents["1_1"].Keywords[0] = "Changed"
	again, err := store.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ocean", again.Documents["1_1"].Keywords[0])
}

func TestRunStore_WriteErrors(t *testing.T) {
	store := NewRunStore()
	ctx := context.Background()

	assert.ErrorIs(t, store.Write(ctx, nil), domain.ErrInvalidInput)

	run := testRun(time.Now())
	run.ID = "dup"
	require.NoError(t, store.Write(ctx, run))
	assert.ErrorIs(t, store.Write(ctx, run), domain.ErrInvalidInput)
}

func TestRunStore_GetRun_NotFound(t *testing.T) {
	_, err := NewRunStore().GetRun(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRunStore_ListRuns(t *testing.T) {
	store := NewRunStore()
	ctx := context.Background()
	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	var ids []string
	for i := 0; i < 3; i++ {
		run := testRun(base.Add(time.Duration(i) * time.Minute))
		require.NoError(t, store.Write(ctx, run))
		ids = append(ids, run.ID)
	}

	runs, err := store.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, ids[2], runs[0].ID)
	assert.Equal(t, ids[0], runs[2].ID)
	assert.Equal(t, 2, runs[0].DocumentCount)
	assert.Equal(t, 1, runs[0].ErrorCount)

	limited, err := store.ListRuns(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestRunStore_FindByKeyword(t *testing.T) {
	store := NewRunStore()
	ctx := context.Background()
	run := testRun(time.Now())
	require.NoError(t, store.Write(ctx, run))

	docs, err := store.FindByKeyword(ctx, run.ID, "TIDE")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "ocean.pdf", docs["1_1"].Filename)

	docs, err = store.FindByKeyword(ctx, "other-run", "tide")
	require.NoError(t, err)
	assert.Empty(t, docs)

	_, err = store.FindByKeyword(ctx, run.ID, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRunStore_NameAndClose(t *testing.T) {
	store := NewRunStore()
	assert.Equal(t, "memory", store.Name())
	assert.NoError(t, store.Close())
}

package metadata

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-tagger/internal/core/domain"
)

func TestSidecarPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "/docs/book.pdf", want: "/docs/book.metadata.json"},
		{in: "/docs/novel.v2.epub", want: "/docs/novel.v2.metadata.json"},
		{in: "noext", want: "noext.metadata.json"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SidecarPath(tt.in))
		})
	}
}

func TestPatch_ReplacesTagsKeepsOtherFields(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "book.pdf")
	sidecar := filepath.Join(dir, "book.metadata.json")
	require.NoError(t, os.WriteFile(sidecar,
		[]byte(`{"title": "Sea", "year": 1999, "tags": ["old"], "extra": {"n": 1.50}}`), 0o640))

	require.NoError(t, NewPatcher().Patch(context.Background(), doc, []string{"Ocean", "Tide"}))

	data, err := os.ReadFile(sidecar)
	require.NoError(t, err)
	assert.JSONEq(t, `{"title": "Sea", "year": 1999, "tags": ["Ocean", "Tide"], "extra": {"n": 1.50}}`, string(data))
	assert.Contains(t, string(data), "\n  \"tags\"")

	info, err := os.Stat(sidecar)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o640), info.Mode().Perm())
}

func TestPatch_AddsTagsWhenAbsent(t *testing.T) {
	dir := t.TempDir()
	sidecar := filepath.Join(dir, "book.metadata.json")
	require.NoError(t, os.WriteFile(sidecar, []byte(`{"title": "Sea"}`), 0o600))

	require.NoError(t, NewPatcher().Patch(context.Background(), filepath.Join(dir, "book.epub"), nil))

	data, err := os.ReadFile(sidecar)
	require.NoError(t, err)
	assert.JSONEq(t, `{"title": "Sea", "tags": []}`, string(data))
}

func TestPatch_MissingSidecarIsSkipped(t *testing.T) {
	dir := t.TempDir()

	err := NewPatcher().Patch(context.Background(), filepath.Join(dir, "book.pdf"), []string{"Ocean"})

	require.NoError(t, err)
	_, statErr := os.Stat(filepath.Join(dir, "book.metadata.json"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestPatch_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	sidecar := filepath.Join(dir, "book.metadata.json")
	require.NoError(t, os.WriteFile(sidecar, []byte(`["not", "an", "object"]`), 0o600))

	err := NewPatcher().Patch(context.Background(), filepath.Join(dir, "book.pdf"), []string{"Ocean"})

	var metaErr *domain.MetadataError
	require.ErrorAs(t, err, &metaErr)
	assert.Equal(t, sidecar, metaErr.Path)
	assert.ErrorIs(t, err, domain.ErrMetadataPatch)

	data, readErr := os.ReadFile(sidecar)
	require.NoError(t, readErr)
	assert.Equal(t, `["not", "an", "object"]`, string(data))
}

func TestPatch_SidecarIsDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "book.metadata.json"), 0o755))

	err := NewPatcher().Patch(context.Background(), filepath.Join(dir, "book.pdf"), []string{"Ocean"})

	assert.ErrorIs(t, err, domain.ErrMetadataPatch)
}

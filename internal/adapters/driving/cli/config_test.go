package cli

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-tagger/internal/adapters/driven/config/file"
	"github.com/custodia-labs/sercha-tagger/internal/core/services"
)

func TestConfigCmd_ShowEffectiveSettings(t *testing.T) {
	setupCLITest(t, &mockTaggingService{}, nil)

	out, _, err := execute(t, "--top-k", "9", "config", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "Effective Settings")
	assert.Regexp(t, `top_k\s+9`, out)
	assert.Regexp(t, `keywords\.year_length\s+4`, out)
}

func TestConfigCmd_InitWritesDefaults(t *testing.T) {
	setupCLITest(t, &mockTaggingService{}, nil)

	out, _, err := execute(t, "config", "init")

	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+file.DefaultFileName)

	store, err := file.NewConfigStore(file.DefaultFileName)
	require.NoError(t, err)
	assert.Equal(t, 50, store.GetInt(services.KeyTopK))
	assert.Equal(t, 3, store.GetInt(services.KeyMinGraphemes))
	assert.True(t, store.GetBool(services.KeyRecursive))
}

func TestConfigCmd_InitRefusesToOverwrite(t *testing.T) {
	setupCLITest(t, &mockTaggingService{}, nil)
	require.NoError(t, os.WriteFile(file.DefaultFileName, []byte("top_k = 5\n"), 0o600))

	_, _, err := execute(t, "config", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, _, err = execute(t, "config", "init", "--force")
	require.NoError(t, err)

	store, err := file.NewConfigStore(file.DefaultFileName)
	require.NoError(t, err)
	assert.Equal(t, 50, store.GetInt(services.KeyTopK))
}

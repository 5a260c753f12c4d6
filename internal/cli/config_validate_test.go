package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/emimeter/internal/config"
)

func TestConfigValidate_NoFile(t *testing.T) {
	setupCLITest(t)

	_, _, err := runRootCmd(t, "config", "validate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config init")
}

func TestConfigValidate_Valid(t *testing.T) {
	setupCLITest(t)

	_, _, err := runRootCmd(t, "config", "init")
	require.NoError(t, err)

	out, _, err := runRootCmd(t, "config", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "✅ Configuration is valid")
}

func TestConfigValidate_Verbose(t *testing.T) {
	setupCLITest(t)

	_, _, err := runRootCmd(t, "config", "init")
	require.NoError(t, err)

	out, _, err := runRootCmd(t, "config", "validate", "--verbose")
	require.NoError(t, err)

	assert.Contains(t, out, "Configuration details:")
	assert.Contains(t, out, "Output format: table")
	assert.Contains(t, out, "Server address: :8080")
	assert.Contains(t, out, "Session TTL: 60 minutes")
	assert.Contains(t, out, "Factor overrides: none")
}

func TestConfigValidate_InvalidFormat(t *testing.T) {
	home := setupCLITest(t)

	doc := `version: "1.0"
output:
  default_format: xml
  precision: 2
`
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte(doc), 0o644))

	_, _, err := runRootCmd(t, "config", "validate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration validation failed")
}

// TestConfigValidate_ConfigFlag validates an explicit file passed with
// the root --config flag rather than the default location.
func TestConfigValidate_ConfigFlag(t *testing.T) {
	setupCLITest(t)

	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, config.DefaultConfig().Save(path))

	out, _, err := runRootCmd(t, "config", "validate", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "✅ Configuration is valid")
}

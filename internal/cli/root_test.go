package cli_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/emimeter/internal/cli"
	"github.com/rshade/emimeter/internal/config"
)

// setupCLITest isolates a test from the real home directory and quiets
// command-start logging. It returns the temp config home.
func setupCLITest(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("EMIMETER_HOME", home)
	t.Setenv("EMIMETER_LOG_LEVEL", "error")
	t.Cleanup(config.ResetGlobalConfigForTest)
	return home
}

// runRootCmd executes the root command with the given args and returns
// stdout, stderr, and the execution error.
func runRootCmd(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd := cli.NewRootCmd("test")
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRootCmd_Version(t *testing.T) {
	setupCLITest(t)

	out, _, err := runRootCmd(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "test")
}

func TestRootCmd_Help(t *testing.T) {
	setupCLITest(t)

	out, _, err := runRootCmd(t, "--help")
	require.NoError(t, err)

	for _, sub := range []string{"calc", "dashboard", "serve", "factors", "config"} {
		assert.Contains(t, out, sub, "help should list the %s command", sub)
	}
}

func TestRootCmd_UnknownCommand(t *testing.T) {
	setupCLITest(t)

	_, _, err := runRootCmd(t, "bogus")
	require.Error(t, err)
}

func TestRootCmd_ConfigFlagRejectsMissingFile(t *testing.T) {
	setupCLITest(t)

	_, _, err := runRootCmd(t, "calc", "--sample", "--config", "/nonexistent/config.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading config")
}

package cmd

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigCmd_List(t *testing.T) {
	cfgPath := testEnv(t)
	writeSettings(t, cfgPath)

	stdout, _, err := runCLI(t, "config", "--color", "never")
	require.NoError(t, err)
	assert.Contains(t, stdout, "  truncation_line_length = 30\n")
	assert.Contains(t, stdout, "  truncation_preview_length = 15\n")
	assert.Contains(t, stdout, "  focus.command = (not set)\n")
	assert.Contains(t, stdout, "Config file: "+cfgPath)
	assert.NotContains(t, stdout, "defaulted")
}

func TestConfigCmd_ListDefaulted(t *testing.T) {
	testEnv(t)

	stdout, _, err := runCLI(t, "config", "--color", "never")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Truncation settings are defaulted.")
}

func TestConfigCmd_Get(t *testing.T) {
	writeSettings(t, testEnv(t))

	stdout, _, err := runCLI(t, "config", "--color", "never", "panel.alt_screen")
	require.NoError(t, err)
	assert.Equal(t, "true\n", stdout)

	_, _, err = runCLI(t, "config", "nope.key")
	assert.Error(t, err)
}

func TestConfigCmd_Set(t *testing.T) {
	cfgPath := testEnv(t)
	writeSettings(t, cfgPath)

	stdout, _, err := runCLI(t, "config", "--color", "never", "truncation_line_length", "44")
	require.NoError(t, err)
	assert.Contains(t, stdout, "truncation_line_length = 44")

	data, err := os.ReadFile(cfgPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "truncation_line_length: 44")
	assert.Contains(t, string(data), "truncation_preview_length: 15")

	stdout, _, err = runCLI(t, "config", "truncation_line_length")
	require.NoError(t, err)
	assert.Equal(t, "44", strings.TrimSpace(stdout))
}

func TestConfigCmd_SetInvalid(t *testing.T) {
	cfgPath := testEnv(t)
	writeSettings(t, cfgPath)

	_, _, err := runCLI(t, "config", "truncation_preview_length", "0")
	require.Error(t, err)

	data, err := os.ReadFile(cfgPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "truncation_preview_length: 15", "file untouched")
}

func TestVersionCmd(t *testing.T) {
	testEnv(t)

	stdout, _, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "opentabs "+Version+"\n"))
	assert.Contains(t, stdout, "commit: "+GitCommit)
}

package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/librarian-cli/internal/core/domain"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		flagRoot = ""
		libraryRoot = ""
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestRootCmd_HasExpectedSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"init", "book", "video", "catalog", "index", "config", "watch", "version"} {
		assert.True(t, names[want], want)
	}
}

func TestCommandsWithoutLibraryRoot(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	_, err := execute(t, "catalog", "stats")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no library root configured")
}

func TestInitAndStatsEndToEnd(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	root := filepath.Join(t.TempDir(), "archive")

	out, err := execute(t, "init", root)
	require.NoError(t, err)
	assert.Contains(t, out, "Initialised library")

	out, err = execute(t, "--root", root, "catalog", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Books:      0")
}

func TestConfigSetGetUnset(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	_, err := execute(t, "config", "set", "prefer_format", "epub")
	require.NoError(t, err)

	out, err := execute(t, "config", "get", "prefer_format")
	require.NoError(t, err)
	assert.Contains(t, out, "epub")

	_, err = execute(t, "config", "unset", "prefer_format")
	require.NoError(t, err)

	_, err = execute(t, "config", "get", "prefer_format")
	assert.Error(t, err)
}

func TestPreferredFormat_FlagBeatsConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	_, err := execute(t, "config", "set", "prefer_format", "pdf")
	require.NoError(t, err)

	assert.Equal(t, domain.FormatEPUB, preferredFormat("epub"))
	assert.Equal(t, domain.FormatPDF, preferredFormat(""))
}

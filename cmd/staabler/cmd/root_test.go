package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCommand executes rootCmd with args against a fresh output buffer and
// returns stdout.
func runCommand(t *testing.T, args ...string) string {
	t.Helper()
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	require.NoError(t, err)
	return buf.String()
}

func TestPutThenCatRoundTrips(t *testing.T) {
	dataDir := t.TempDir()

	runCommand(t, "--data-dir", dataDir, "put", "alpha", "one")
	runCommand(t, "--data-dir", dataDir, "put", "beta", "two")

	out := runCommand(t, "--data-dir", dataDir, "cat")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)

	var first map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	entry, ok := first["entry"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "alpha", entry["key"])
}

func TestCatFromOffsetSkipsEarlierEntries(t *testing.T) {
	dataDir := t.TempDir()

	runCommand(t, "--data-dir", dataDir, "put", "alpha", "one")
	outFirst := runCommand(t, "--data-dir", dataDir, "cat")
	var firstItem map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(outFirst)), &firstItem))
	resumeOffset := int64(firstItem["end"].(float64))

	runCommand(t, "--data-dir", dataDir, "put", "beta", "two")

	out := runCommand(t, "--data-dir", dataDir, "cat", "--from", strconv.FormatInt(resumeOffset, 10))
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	value, ok := entry["entry"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "beta", value["key"])
}

func TestStatsReportsRecoveryAfterRestart(t *testing.T) {
	dataDir := t.TempDir()
	runCommand(t, "--data-dir", dataDir, "put", "alpha", "one")

	out := runCommand(t, "--data-dir", dataDir, "stats")
	assert.Contains(t, out, "frames_validated:")
	assert.Contains(t, out, "size_bytes:")
}

func TestInitBootstrapsConfigAndDataDir(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "staabler.yaml")
	dataDir := filepath.Join(tmpDir, "data")

	out := runCommand(t, "init", "--config", configPath, "--data-dir", dataDir)
	assert.Contains(t, out, configPath)
	_, err := os.Stat(configPath)
	require.NoError(t, err)
	_, err = os.Stat(dataDir)
	require.NoError(t, err)
}

package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogOperationStart(t *testing.T) {
	var buf bytes.Buffer
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	done := LogOperationStart(logger, "provisioning")
	done()

	output := buf.String()
	assert.Contains(t, output, "Operation started")
	assert.Contains(t, output, "Operation completed")
	assert.Equal(t, 2, strings.Count(output, "provisioning"))
}

func TestNewRunLog_WritesJSONLines(t *testing.T) {
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	dir := t.TempDir()

	runLog, err := NewRunLog(dir, "20240115_093000", "run-1")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "organizacion_20240115_093000.log"), runLog.Path)

	runLog.Logger.Info().Str("file", "report.pdf").Msg("file moved")
	require.NoError(t, runLog.Close())

	data, err := os.ReadFile(runLog.Path)
	require.NoError(t, err)

	var event map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &event))
	assert.Equal(t, "file moved", event["message"])
	assert.Equal(t, "report.pdf", event["file"])
	assert.Equal(t, "run-1", event["run_id"])
}

func TestNewRunLog_UnwritableDirDegrades(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	runLog, err := NewRunLog(blocker, "20240115_093000", "run-1")
	assert.Error(t, err)
	require.NotNil(t, runLog)

	// A disabled run log is still safe to use and close
	runLog.Logger.Info().Msg("dropped")
	assert.NoError(t, runLog.Close())
}

package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlerLevel(t *testing.T) {
	var buf bytes.Buffer

	logger := slog.New(NewHandler(&buf, slog.LevelWarn))
	logger.Info("hidden")
	logger.Warn("restored a stale session", slog.String("session_id", "abc"))

	var line map[string]any

	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "restored a stale session", line["msg"])
	assert.Equal(t, "abc", line["session_id"])
}

func TestSetupWritesFile(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() {
		slog.SetDefault(prev)
	})

	logPath := filepath.Join(t.TempDir(), "log", "tally.log")

	closer, err := Setup(logPath, slog.LevelInfo)
	require.NoError(t, err)

	slog.Info("session started")
	require.NoError(t, closer.Close())

	b, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(b), "session started")
}

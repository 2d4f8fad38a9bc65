package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewConsoleJSON(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Options{Level: "info", Format: "json", Console: &buf})
	require.NoError(t, err)

	l.Debug("hidden")
	l.Info("submit accepted", zap.String("attempt", "a1"))
	require.NoError(t, l.Sync())

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"message":"submit accepted"`)
	assert.Contains(t, out, `"attempt":"a1"`)
	assert.Contains(t, out, `"level":"INFO"`)
}

func TestNewWritesFile(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "intakeflow.log")
	l, err := New(Options{Level: "debug", Console: &buf, File: path})
	require.NoError(t, err)

	l.Debug("session created", zap.String("session", "s1"))
	require.NoError(t, l.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"session":"s1"`)
	assert.Contains(t, buf.String(), "session created")
}

func TestNewRejectsBadLevel(t *testing.T) {
	_, err := New(Options{Level: "loud"})
	require.Error(t, err)
}

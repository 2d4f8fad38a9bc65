package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tbxark/intakeflow/submission"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 600*time.Millisecond, cfg.Submission.AckDelay)
	assert.Equal(t, submission.PolicyReject, cfg.Policy())
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
	assert.Equal(t, 5*time.Minute, cfg.Session.CleanupInterval)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Empty(t, cfg.Catalog.Path)
	assert.False(t, cfg.LLM.Enabled())
}

func TestLoadFile(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	path := filepath.Join(t.TempDir(), "intakeflow.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
submission:
  ack_delay: 1s
  reentry_policy: restart
catalog:
  path: ./catalog.yaml
log:
  format: json
llm:
  api_key: sk-test
  model: gpt-4o
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, time.Second, cfg.Submission.AckDelay)
	assert.Equal(t, submission.PolicyRestart, cfg.Policy())
	assert.Equal(t, "./catalog.yaml", cfg.Catalog.Path)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.True(t, cfg.LLM.Enabled())
	assert.Equal(t, "gpt-4o", cfg.LLM.Model)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("INTAKEFLOW_SUBMISSION_ACK_DELAY", "250ms")
	t.Setenv("INTAKEFLOW_LOG_LEVEL", "debug")
	t.Setenv("OPENAI_API_KEY", "sk-env")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, cfg.Submission.AckDelay)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "sk-env", cfg.LLM.APIKey)
}

func TestLoadRejectsInvalid(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("INTAKEFLOW_SUBMISSION_REENTRY_POLICY", "queue")
	_, err := Load("")
	require.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

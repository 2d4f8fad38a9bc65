package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogIsValid(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	assert.Len(t, c.Symptoms, 6)
	assert.Len(t, c.FAQ, 9)

	opt, ok := c.Lookup("Maintenance")
	require.True(t, ok)
	assert.Equal(t, "Routine maintenance", opt.Label)

	_, ok = c.Lookup("Noisy")
	assert.False(t, ok)
}

func TestParseRejectsDuplicateKeys(t *testing.T) {
	_, err := Parse([]byte(`
symptoms:
  - key: No cooling
    label: A
  - key: No cooling
    label: B
`))
	require.ErrorIs(t, err, ErrDuplicateKey)
}

func TestParseRejectsEmptyKey(t *testing.T) {
	_, err := Parse([]byte(`
symptoms:
  - key: ""
    label: Nothing
`))
	require.ErrorIs(t, err, ErrEmptyKey)
}

func TestLoadFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
symptoms:
  - key: Noisy
    label: Making noise
  - key: Duct cleaning maintenance
    label: Duct cleaning
`), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Noisy", "Duct cleaning maintenance"}, c.Keys())
	assert.Len(t, c.FAQ, len(Default().FAQ))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestMarkdown(t *testing.T) {
	c := Default()
	assert.Contains(t, c.SymptomsMarkdown(), "Leaking water")
	assert.Contains(t, c.FAQMarkdown(), "What are your hours?")
}

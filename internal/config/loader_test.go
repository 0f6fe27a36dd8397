package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 1500, cfg.Chunking.Size)
	assert.Equal(t, 200, cfg.Chunking.Overlap)
	assert.Equal(t, ProviderOpenAI, cfg.Extraction.Provider)
	assert.Equal(t, 30, cfg.Extraction.TimeoutSeconds)
	assert.False(t, cfg.Refine.Disabled)
	assert.False(t, cfg.Diagrams.Disabled)
	assert.Equal(t, "./output", cfg.Output.Dir)
	assert.ElementsMatch(t, []string{"markdown", "html", "json"}, cfg.Output.Formats)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pressroom.yaml")
	content := []byte(`
chunking:
  size: 800
  overlap: 60
extraction:
  provider: anthropic
  model: claude-3-5-haiku-20241022
  timeout_seconds: 45
output:
  dir: /tmp/newsletters
  formats: [markdown]
logging:
  level: debug
  format: console
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 800, cfg.Chunking.Size)
	assert.Equal(t, 60, cfg.Chunking.Overlap)
	assert.Equal(t, ProviderAnthropic, cfg.Extraction.Provider)
	assert.Equal(t, "claude-3-5-haiku-20241022", cfg.Extraction.Model)
	assert.Equal(t, 45, cfg.Extraction.TimeoutSeconds)
	assert.Equal(t, "/tmp/newsletters", cfg.Output.Dir)
	assert.Equal(t, []string{"markdown"}, cfg.Output.Formats)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pressroom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("chunking:\n  size: 800\n"), 0o600))

	t.Setenv("PRESSROOM_CHUNKING_SIZE", "1200")
	t.Setenv("PRESSROOM_EXTRACTION_API_KEY", "sk-test-env")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 1200, cfg.Chunking.Size)
	assert.Equal(t, "sk-test-env", cfg.Extraction.APIKey)
}

func TestLoadExplicitZeroOverlap(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pressroom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("chunking:\n  size: 1000\n  overlap: 0\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	// A configured zero must survive defaulting; only an absent key
	// gets the 200-character default.
	assert.Equal(t, 1000, cfg.Chunking.Size)
	assert.Equal(t, 0, cfg.Chunking.Overlap)
}

func TestLoadExplicitZeroOverlapFromEnv(t *testing.T) {
	t.Setenv("PRESSROOM_CHUNKING_OVERLAP", "0")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Chunking.Overlap)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 1500, cfg.Chunking.Size)
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("chunking: [not: a map"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg, err := Load("")
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "zero chunk size", mutate: func(c *Config) { c.Chunking.Size = 0 }},
		{name: "negative overlap", mutate: func(c *Config) { c.Chunking.Overlap = -1 }},
		{name: "unknown provider", mutate: func(c *Config) { c.Extraction.Provider = "mystery" }},
		{name: "zero timeout", mutate: func(c *Config) { c.Extraction.TimeoutSeconds = 0 }},
		{name: "unknown format", mutate: func(c *Config) { c.Output.Formats = []string{"pdf"} }},
		{name: "bad log level", mutate: func(c *Config) { c.Logging.Level = "shouty" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestAPIKeyFallsBackToProviderEnv(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-from-env")
	t.Setenv("PRESSROOM_EXTRACTION_API_KEY", "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "sk-from-env", cfg.Extraction.APIKey)
}

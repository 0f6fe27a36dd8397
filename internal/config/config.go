// Package config provides configuration loading for pressroom.
package config

import (
	"fmt"

	"github.com/pressroom-labs/pressroom/internal/logging"
)

// Supported extraction providers.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderDisabled  = "disabled"
)

// Config is the root configuration for a pressroom run.
type Config struct {
	Chunking   ChunkingConfig   `koanf:"chunking"`
	Extraction ExtractionConfig `koanf:"extraction"`
	Refine     RefineConfig     `koanf:"refine"`
	Diagrams   DiagramsConfig   `koanf:"diagrams"`
	Output     OutputConfig     `koanf:"output"`
	Logging    logging.Config   `koanf:"logging"`
}

// ChunkingConfig tunes document segmentation.
type ChunkingConfig struct {
	Size    int `koanf:"size"`
	Overlap int `koanf:"overlap"`
}

// ExtractionConfig selects and configures the completion provider.
// An empty APIKey is not an error: the pipeline then runs in degraded
// mode and every extraction category yields its empty default.
type ExtractionConfig struct {
	Provider       string `koanf:"provider"`
	Model          string `koanf:"model"`
	APIKey         string `koanf:"api_key"`
	BaseURL        string `koanf:"base_url"`
	TimeoutSeconds int    `koanf:"timeout_seconds"`
}

// RefineConfig toggles the tone/accuracy post-processing stage.
// Disabled rather than Enabled so the zero value keeps the stage on.
type RefineConfig struct {
	Disabled bool `koanf:"disabled"`
}

// DiagramsConfig toggles diagram code generation. Same zero-value
// convention as RefineConfig.
type DiagramsConfig struct {
	Disabled bool `koanf:"disabled"`
}

// OutputConfig controls rendered newsletter output.
type OutputConfig struct {
	Dir     string   `koanf:"dir"`
	Formats []string `koanf:"formats"`
}

// Validate checks the configuration for fatal problems. Chunking limits
// are programming-error territory (the chunker refuses them too), so they
// fail here rather than deep inside a run.
func (c *Config) Validate() error {
	if c.Chunking.Size <= 0 {
		return fmt.Errorf("chunking.size must be positive, got %d", c.Chunking.Size)
	}
	if c.Chunking.Overlap < 0 {
		return fmt.Errorf("chunking.overlap must not be negative, got %d", c.Chunking.Overlap)
	}

	switch c.Extraction.Provider {
	case ProviderOpenAI, ProviderAnthropic, ProviderDisabled:
	default:
		return fmt.Errorf("unknown extraction provider %q", c.Extraction.Provider)
	}
	if c.Extraction.TimeoutSeconds <= 0 {
		return fmt.Errorf("extraction.timeout_seconds must be positive, got %d", c.Extraction.TimeoutSeconds)
	}

	for _, f := range c.Output.Formats {
		switch f {
		case "markdown", "html", "json":
		default:
			return fmt.Errorf("unknown output format %q", f)
		}
	}

	return c.Logging.Validate()
}

package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/pressroom-labs/pressroom/internal/logging"
)

const (
	// envPrefix namespaces pressroom environment overrides.
	envPrefix = "PRESSROOM_"

	maxConfigFileSize = 1024 * 1024 // 1MB
)

// Load builds configuration with the usual precedence (highest first):
//
//  1. PRESSROOM_* environment variables (PRESSROOM_CHUNKING_SIZE -> chunking.size)
//  2. YAML config file, when configPath names one that exists
//  3. Defaults
//
// Provider API keys additionally fall back to the conventional
// OPENAI_API_KEY / ANTHROPIC_API_KEY variables so a bare environment
// works without any pressroom-specific setup.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			content, err := readConfigFile(configPath)
			if err != nil {
				return nil, err
			}
			if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
			}
		}
	}

	// Environment override. The transformer splits on the first
	// underscore after the prefix: PRESSROOM_CHUNKING_SIZE ->
	// chunking.size, PRESSROOM_EXTRACTION_API_KEY -> extraction.api_key.
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		lower := strings.ToLower(strings.TrimPrefix(s, envPrefix))
		parts := strings.SplitN(lower, "_", 2)
		if len(parts) == 1 {
			return lower
		}
		return parts[0] + "." + parts[1]
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg, k)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// readConfigFile reads the file through a single descriptor so the size
// check and the read see the same file.
func readConfigFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.Size() > maxConfigFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxConfigFileSize)
	}

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return content, nil
}

// applyDefaults fills unset fields. Zero is a valid overlap, so that
// default applies only when no source set the key at all.
func applyDefaults(cfg *Config, k *koanf.Koanf) {
	if cfg.Chunking.Size == 0 {
		cfg.Chunking.Size = 1500
	}
	if cfg.Chunking.Overlap == 0 && !k.Exists("chunking.overlap") {
		cfg.Chunking.Overlap = 200
	}

	if cfg.Extraction.Provider == "" {
		cfg.Extraction.Provider = ProviderOpenAI
	}
	if cfg.Extraction.TimeoutSeconds == 0 {
		cfg.Extraction.TimeoutSeconds = 30
	}
	if cfg.Extraction.APIKey == "" {
		switch cfg.Extraction.Provider {
		case ProviderOpenAI:
			cfg.Extraction.APIKey = os.Getenv("OPENAI_API_KEY")
		case ProviderAnthropic:
			cfg.Extraction.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		}
	}

	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "./output"
	}
	if len(cfg.Output.Formats) == 0 {
		cfg.Output.Formats = []string{"markdown", "html", "json"}
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = logging.NewDefaultConfig().Level
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = logging.NewDefaultConfig().Format
	}
}

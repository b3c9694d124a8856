// Package config handles server configuration.
//
// Configuration is resolved once at startup from an optional YAML file
// plus environment overrides, and passed to the components as an
// immutable value; there is no ambient global state.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config is the resolved server configuration.
type Config struct {
	// APIKey is the Semantic Scholar API key. Empty means anonymous
	// mode against the shared public rate limit.
	APIKey string `yaml:"api_key" env:"SEMANTIC_SCHOLAR_API_KEY"`

	// BaseURL overrides the upstream API base URL (for testing).
	BaseURL string `yaml:"base_url" env:"SCHOLAR_MCP_BASE_URL"`

	// DownloadDir is where PDFs are saved. Defaults to a
	// semantic-scholar subfolder of the user's download directory.
	DownloadDir string `yaml:"download_dir" env:"SCHOLAR_MCP_DOWNLOAD_DIR"`

	// EmbedPDFMetadata selects the metadata annotator variant. When
	// false, downloaded PDFs are kept byte-for-byte as fetched.
	EmbedPDFMetadata *bool `yaml:"embed_pdf_metadata" env:"SCHOLAR_MCP_EMBED_PDF_METADATA"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" env:"SCHOLAR_MCP_LOG_LEVEL"`
}

const (
	// configDir is the directory name under XDG_CONFIG_HOME.
	configDir = "scholar-mcp"
	// configFile is the config file name.
	configFile = "config.yml"
)

// Path returns the path to the config file. Respects XDG_CONFIG_HOME,
// defaults to ~/.config/scholar-mcp/config.yml.
func Path() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, configDir, configFile)
}

// Load resolves configuration from the given file (missing file is not
// an error) and then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config: %w", err)
			}
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.DownloadDir == "" {
		c.DownloadDir = defaultDownloadDir()
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// EmbedMetadata reports the effective annotator selection; embedding
// defaults to on.
func (c *Config) EmbedMetadata() bool {
	return c.EmbedPDFMetadata == nil || *c.EmbedPDFMetadata
}

// defaultDownloadDir is a fixed subfolder of the user's download
// directory, falling back to the working directory when the home
// directory cannot be determined.
func defaultDownloadDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "semantic-scholar"
	}
	return filepath.Join(home, "Downloads", "semantic-scholar")
}

// Package config loads the site configuration from site.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the site.yaml configuration
type Config struct {
	// Site metadata
	Title       string `yaml:"title"`
	Description string `yaml:"description"`

	// ContentDir is the markdown source directory
	ContentDir string `yaml:"contentDir"`

	// OutputDir receives the generated site
	OutputDir string `yaml:"outputDir"`

	// CacheDir holds the incremental render cache
	CacheDir string `yaml:"cacheDir"`

	// HighlightStyle is the chroma style for code blocks
	HighlightStyle string `yaml:"highlightStyle"`

	// Dev holds development server settings
	Dev DevConfig `yaml:"dev"`
}

// DevConfig contains development server configuration
type DevConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DefaultConfig returns the configuration used when site.yaml is absent
func DefaultConfig() *Config {
	return &Config{
		Title:          "devdocs",
		ContentDir:     "content",
		OutputDir:      "dist",
		CacheDir:       ".devdocs-cache",
		HighlightStyle: "github",
		Dev: DevConfig{
			Host: "localhost",
			Port: 5173,
		},
	}
}

// Load reads site.yaml from projectPath, falling back to defaults when the
// file does not exist. A present but malformed file is an error.
func Load(projectPath string) (*Config, error) {
	configPath := filepath.Join(projectPath, "site.yaml")

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading site.yaml: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing site.yaml: %w", err)
	}

	if cfg.Dev.Port <= 0 || cfg.Dev.Port > 65535 {
		return nil, fmt.Errorf("invalid dev port %d", cfg.Dev.Port)
	}

	return cfg, nil
}

// Save writes the configuration back to site.yaml
func (c *Config) Save(projectPath string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(filepath.Join(projectPath, "site.yaml"), data, 0o644)
}

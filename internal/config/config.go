// Package config holds defaults and run configuration for describedir.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Content reading limits.
const (
	// MaxFileSizeBytes is the largest file read in full.
	MaxFileSizeBytes = 100_000
	// TruncatedReadBytes is the prefix length read from oversized files.
	TruncatedReadBytes = 8_000
	// BinarySampleBytes is the leading sample inspected for null bytes.
	BinarySampleBytes = 8192
)

// Model call parameters.
const (
	DefaultModel       = "openai/gpt-oss-20b"
	DefaultBaseURL     = "https://api.groq.com/openai/v1"
	DefaultTemperature = 0.2
	DefaultTimeout     = 2 * time.Minute

	// MaxChildrenPerBatch bounds how many files share one prompt.
	MaxChildrenPerBatch = 30
	// MaxRetries bounds attempts per model call.
	MaxRetries = 3
)

// Description word budgets. Directory summaries get a slightly larger budget
// since they synthesize all child descriptions.
const (
	DefaultFileMaxWords = 30
	DirExtraWords       = 10
)

// OutputFilename is the default document name, written under the scan root.
const OutputFilename = ".describedir.json"

// ConfigFilename is the optional per-root config file.
const ConfigFilename = ".describedir.yml"

// DefaultIgnorePatterns are glob patterns matched against entry base names.
var DefaultIgnorePatterns = []string{
	".git",
	".hg",
	".svn",
	"node_modules",
	"__pycache__",
	".venv",
	"venv",
	"env",
	".mypy_cache",
	".pytest_cache",
	".tox",
	".nox",
	".DS_Store",
	"Thumbs.db",
	".env",
	"*.pyc",
	"*.pyo",
	"*.egg-info",
	OutputFilename,
}

// Config is the merged run configuration. Zero values mean "use default";
// Resolve fills them in.
type Config struct {
	Provider        string   `yaml:"provider"`
	Model           string   `yaml:"model"`
	BaseURL         string   `yaml:"base_url"`
	MaxFileSize     int      `yaml:"max_file_size"`
	MaxWords        int      `yaml:"max_words"`
	BatchSize       int      `yaml:"batch_size"`
	Output          string   `yaml:"output"`
	Ignore          []string `yaml:"ignore"`
	NoDefaultIgnore bool     `yaml:"no_default_ignore"`
	Verbose         bool     `yaml:"verbose"`
}

// Load reads the optional .describedir.yml beneath root. A missing file
// yields a zero Config without error.
func Load(root string) (Config, error) {
	var cfg Config
	path := filepath.Join(root, ConfigFilename)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Resolve fills unset fields with defaults.
func (c *Config) Resolve() {
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.MaxFileSize <= 0 {
		c.MaxFileSize = MaxFileSizeBytes
	}
	if c.MaxWords <= 0 {
		c.MaxWords = DefaultFileMaxWords
	}
	if c.BatchSize <= 0 {
		c.BatchSize = MaxChildrenPerBatch
	}
}

// IgnorePatterns returns the effective ignore list: the defaults (unless
// disabled) plus any user additions.
func (c *Config) IgnorePatterns() []string {
	var patterns []string
	if !c.NoDefaultIgnore {
		patterns = append(patterns, DefaultIgnorePatterns...)
	}
	patterns = append(patterns, c.Ignore...)
	return patterns
}

// Package config handles loading and managing degreecalc configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration for the degreecalc CLI.
type Config struct {
	Classification ClassificationConfig `yaml:"classification"`
	Output         OutputConfig         `yaml:"output"`
	Archive        ArchiveConfig        `yaml:"archive"`
}

// ClassificationConfig controls engine behavior. Rules, weights and the
// GPA zone table are fixed by regulation and are not configurable.
type ClassificationConfig struct {
	Strict bool `yaml:"strict"` // reject marks outside 0-100
}

// OutputConfig controls rendering.
type OutputConfig struct {
	Format string `yaml:"format"` // text, json or markdown
}

// ArchiveConfig selects where cohort reports are saved.
type ArchiveConfig struct {
	Backend string    `yaml:"backend"` // local, s3 or gcs
	Dir     string    `yaml:"dir"`     // local backend root
	S3      S3Config  `yaml:"s3"`
	GCS     GCSConfig `yaml:"gcs"`
}

// S3Config holds settings for the S3 archive backend.
type S3Config struct {
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"` // for S3-compatible stores like MinIO
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
}

// GCSConfig holds settings for the GCS archive backend.
type GCSConfig struct {
	Bucket string `yaml:"bucket"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Format: "text",
		},
		Archive: ArchiveConfig{
			Backend: "local",
			Dir:     ReportDir(),
		},
	}
}

// Load reads a config file from the given path.
// If the file does not exist, it returns the default config.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects unknown output formats and incomplete archive settings.
func (c *Config) Validate() error {
	switch c.Output.Format {
	case "text", "json", "markdown":
	default:
		return fmt.Errorf("invalid output.format %q (want text, json or markdown)", c.Output.Format)
	}

	switch c.Archive.Backend {
	case "local":
		if c.Archive.Dir == "" {
			return fmt.Errorf("archive.dir is required for the local backend")
		}
	case "s3":
		if c.Archive.S3.Bucket == "" {
			return fmt.Errorf("archive.s3.bucket is required for the s3 backend")
		}
	case "gcs":
		if c.Archive.GCS.Bucket == "" {
			return fmt.Errorf("archive.gcs.bucket is required for the gcs backend")
		}
	default:
		return fmt.Errorf("invalid archive.backend %q (want local, s3 or gcs)", c.Archive.Backend)
	}

	return nil
}

// FindConfigFile looks for .degreecalc/config.yaml in the given directory
// and its parents, returning the path if found, or "" if not.
func FindConfigFile(dir string) string {
	for {
		candidate := filepath.Join(dir, ".degreecalc", "config.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// CacheDir returns the per-user cache directory, ~/.cache/degreecalc.
func CacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to temp dir if HOME isn't available
		home = os.TempDir()
	}
	return filepath.Join(home, ".cache", "degreecalc")
}

// ReportDir returns the default local archive directory for cohort reports.
func ReportDir() string {
	return filepath.Join(CacheDir(), "reports")
}

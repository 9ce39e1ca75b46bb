package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Phases         Phases         `yaml:"phases"`
	Duplicates     Duplicates     `yaml:"duplicates"`
	AgeThresholds  AgeThresholds  `yaml:"age_thresholds"`
	SizeThresholds SizeThresholds `yaml:"size_thresholds"`
	Limits         Limits         `yaml:"limits"`
	Trash          Trash          `yaml:"trash"`
	CacheTTL       CacheTTL       `yaml:"cache_ttl"`
	LogLevel       string         `yaml:"log_level"`
	Verbose        bool           `yaml:"verbose"`
}

// Phases defines which scan phases are enabled
type Phases struct {
	Caches     bool `yaml:"caches"`
	Packages   bool `yaml:"packages"`
	Logs       bool `yaml:"logs"`
	LargeFiles bool `yaml:"large_files"`
}

// Duplicates holds duplicate-detection thresholds. The numbers are policy
// defaults, not correctness invariants.
type Duplicates struct {
	MinFileSize  int64 `yaml:"min_file_size"`  // bytes, files at or below are skipped
	ChunkSizeKB  int   `yaml:"chunk_size_kb"`  // fingerprint sample window
	MaxScanFiles int   `yaml:"max_scan_files"` // walk cap for pass 1
}

// AgeThresholds defines age cutoffs in days for the age-based scans
type AgeThresholds struct {
	TempFiles    int `yaml:"temp_files"`
	OldDownloads int `yaml:"old_downloads"`
	Logs         int `yaml:"logs"`
}

// SizeThresholds holds the size floors, in bytes, for the size-driven
// scans. Like the age thresholds these are policy defaults, not
// correctness invariants.
type SizeThresholds struct {
	LargeFile    int64 `yaml:"large_file"`
	HugeFile     int64 `yaml:"huge_file"`
	LogFile      int64 `yaml:"log_file"`
	BrowserCache int64 `yaml:"browser_cache"`
}

// Limits bounds a scan run
type Limits struct {
	MaxFiles       int `yaml:"max_files"`
	MaxDepth       int `yaml:"max_depth"`
	MaxMemoryMB    int `yaml:"max_memory_mb"`
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// Trash holds trash subsystem settings
type Trash struct {
	RetentionDays int `yaml:"retention_days"`
}

// CacheTTL configures memoization windows. Directory sizes are cheap to
// recompute relative to full scans, so they get the shorter window.
type CacheTTL struct {
	DirSizeSeconds    int `yaml:"dir_size_seconds"`
	ScanResultSeconds int `yaml:"scan_result_seconds"`
}

// DirSizeTTL returns the directory-size cache TTL as a duration.
func (c *Config) DirSizeTTL() time.Duration {
	return time.Duration(c.CacheTTL.DirSizeSeconds) * time.Second
}

// ScanResultTTL returns the scan-result cache TTL as a duration.
func (c *Config) ScanResultTTL() time.Duration {
	return time.Duration(c.CacheTTL.ScanResultSeconds) * time.Second
}

// ScanTimeout returns the hard wall-clock limit for one scan run.
func (c *Config) ScanTimeout() time.Duration {
	return time.Duration(c.Limits.TimeoutSeconds) * time.Second
}

// Load loads configuration from a file, falling back to defaults when the
// file does not exist.
func Load(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return GetDefault(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Save saves configuration to a file
func Save(config *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Duplicates.MinFileSize < 0 {
		return fmt.Errorf("duplicate min file size must be >= 0")
	}
	if c.Duplicates.ChunkSizeKB <= 0 {
		return fmt.Errorf("duplicate chunk size must be > 0")
	}
	if c.AgeThresholds.TempFiles < 0 || c.AgeThresholds.OldDownloads < 0 || c.AgeThresholds.Logs < 0 {
		return fmt.Errorf("age thresholds must be >= 0")
	}
	if c.SizeThresholds.LargeFile <= 0 || c.SizeThresholds.HugeFile <= 0 ||
		c.SizeThresholds.LogFile <= 0 || c.SizeThresholds.BrowserCache <= 0 {
		return fmt.Errorf("size thresholds must be > 0")
	}
	if c.Limits.MaxFiles < 0 {
		return fmt.Errorf("max files must be >= 0")
	}
	if c.Limits.MaxDepth < 0 {
		return fmt.Errorf("max depth must be >= 0")
	}
	if c.Limits.MaxMemoryMB < 0 {
		return fmt.Errorf("max memory must be >= 0")
	}
	if c.Trash.RetentionDays <= 0 {
		return fmt.Errorf("trash retention must be > 0 days")
	}
	return nil
}

// GetConfigPath returns the default config path
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "reclaim", "config.yaml"), nil
}

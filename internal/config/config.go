package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/kelsos/threadcopy/internal/copier"
	"github.com/kelsos/threadcopy/internal/filelist"
)

// Config holds all application configuration
type Config struct {
	// Copy settings
	BufferSize int    `yaml:"buffer_size" env:"THREADCOPY_BUFFER_SIZE"`
	MaxWorkers int    `yaml:"max_workers" env:"THREADCOPY_MAX_WORKERS"`
	Delimiter  string `yaml:"delimiter" env:"THREADCOPY_DELIMITER"`
	Verify     bool   `yaml:"verify" env:"THREADCOPY_VERIFY"`

	// Output settings
	Quiet      bool   `yaml:"quiet" env:"THREADCOPY_QUIET"`
	Debug      bool   `yaml:"debug" env:"THREADCOPY_DEBUG"`
	ReportPath string `yaml:"report_path" env:"THREADCOPY_REPORT"`
	LogDir     string `yaml:"log_dir" env:"THREADCOPY_LOG_DIR"`
}

// NewConfig creates a new configuration with default values
func NewConfig() *Config {
	return &Config{
		BufferSize: copier.DefaultBufferSize,
		Delimiter:  filelist.DefaultDelimiter,
		LogDir:     "logs",
	}
}

// LoadFromEnvironment overrides values with THREADCOPY_* environment variables
func (c *Config) LoadFromEnvironment() error {
	if err := cleanenv.ReadEnv(c); err != nil {
		return fmt.Errorf("failed to read environment: %w", err)
	}
	return nil
}

// LoadFile reads a YAML config file; environment variables still win
func (c *Config) LoadFile(path string) error {
	if err := cleanenv.ReadConfig(path, c); err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.BufferSize <= 0 {
		return fmt.Errorf("buffer size must be positive, got: %d", c.BufferSize)
	}

	if c.MaxWorkers < 0 {
		return fmt.Errorf("max workers must be non-negative, got: %d", c.MaxWorkers)
	}

	if c.Delimiter == "" {
		return fmt.Errorf("delimiter cannot be empty")
	}

	return nil
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// FilePermissions is the default permission mode for regular files (read/write for owner, read for others)
	FilePermissions = 0644
	// DirPermissions is the default permission mode for directories (rwxr-xr-x)
	DirPermissions = 0755

	// DefaultTickInterval is the render tick period
	DefaultTickInterval = 250 * time.Millisecond
	// DefaultTimeout bounds a single request round trip
	DefaultTimeout = 30 * time.Second
	// MinTickInterval is the shortest accepted tick period
	MinTickInterval = 10 * time.Millisecond
)

var (
	// ConfigDir is the global configuration directory (~/.reqform)
	ConfigDir string

	// ConfigFile is the YAML configuration file
	ConfigFile string

	// KeybindsFile holds keybinding overrides
	KeybindsFile string

	// LogFile receives diagnostics while the TUI owns the terminal
	LogFile string
)

// Config holds the tunable settings
type Config struct {
	TickInterval time.Duration `yaml:"tick_interval"`
	Timeout      time.Duration `yaml:"timeout"`
	Keybinds     string        `yaml:"keybinds"`
	LogFile      string        `yaml:"log_file"`
	Theme        string        `yaml:"theme"`
}

// Initialize sets up the configuration directory and global paths.
// It creates ~/.reqform/ if it doesn't exist
func Initialize() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	return InitializeAt(filepath.Join(homeDir, ".reqform"))
}

// InitializeAt sets the global paths below dir and creates it
func InitializeAt(dir string) error {
	ConfigDir = dir
	ConfigFile = filepath.Join(ConfigDir, "config.yaml")
	KeybindsFile = filepath.Join(ConfigDir, "keybinds.jsonc")
	LogFile = filepath.Join(ConfigDir, "reqform.log")

	if err := os.MkdirAll(ConfigDir, DirPermissions); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", ConfigDir, err)
	}

	return nil
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		TickInterval: DefaultTickInterval,
		Timeout:      DefaultTimeout,
		Keybinds:     KeybindsFile,
		LogFile:      LogFile,
		Theme:        "monokai",
	}
}

// Load reads the YAML file at path over the defaults. A missing file
// yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}

	cfg.applyDefaults()
	return cfg, cfg.Validate()
}

func (c *Config) applyDefaults() {
	def := Default()
	if c.TickInterval <= 0 {
		c.TickInterval = def.TickInterval
	}
	if c.Timeout <= 0 {
		c.Timeout = def.Timeout
	}
	if c.Keybinds == "" {
		c.Keybinds = def.Keybinds
	}
	if c.LogFile == "" {
		c.LogFile = def.LogFile
	}
	if c.Theme == "" {
		c.Theme = def.Theme
	}
}

// Validate rejects settings the form cannot run with
func (c Config) Validate() error {
	if c.TickInterval < MinTickInterval {
		return fmt.Errorf("tick_interval %s is below the minimum of %s", c.TickInterval, MinTickInterval)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	return nil
}

// Save writes cfg as YAML to path
func Save(cfg Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, FilePermissions); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

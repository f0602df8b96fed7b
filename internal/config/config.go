package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// AppName names the XDG subdirectories.
const AppName = "aligned"

// Config represents the configuration from config.toml
type Config struct {
	UI      UIConfig      `toml:"ui"`
	Content ContentConfig `toml:"content"`
	Log     LogConfig     `toml:"log"`
}

// UIConfig controls the terminal presentation.
type UIConfig struct {
	Theme       string  `toml:"theme"`
	Reveal      bool    `toml:"reveal"`        // false shows every section immediately
	Threshold   float64 `toml:"threshold"`     // visible fraction that reveals a section
	StaggerMS   int     `toml:"stagger_ms"`    // delay step between sibling sections
	HeroDelayMS int     `toml:"hero_delay_ms"` // load-in delay for hero sections
}

// ContentConfig selects the catalog source.
type ContentConfig struct {
	CatalogPath string `toml:"catalog_path"`
	DBPath      string `toml:"db_path"`
	RemoteURL   string `toml:"remote_url"`
	RemoteKey   string `toml:"remote_key"`
}

// LogConfig controls the log file.
type LogConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		UI: UIConfig{
			Theme:       "aligned",
			Reveal:      true,
			Threshold:   0.1,
			StaggerMS:   150,
			HeroDelayMS: 50,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Dir returns the XDG config directory for the app.
func Dir() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, AppName), nil
}

// StateDir returns the XDG state directory for the app, used for logs.
func StateDir() (string, error) {
	stateDir := os.Getenv("XDG_STATE_HOME")
	if stateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		stateDir = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateDir, AppName), nil
}

// LoadConfig loads configuration from the standard XDG config path with sensible defaults
func LoadConfig() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	return load(filepath.Join(dir, "config.toml"), false)
}

// LoadFrom loads configuration from an explicit path. Unlike LoadConfig a
// missing file is an error.
func LoadFrom(path string) (*Config, error) {
	return load(path, true)
}

func load(configPath string, required bool) (*Config, error) {
	config := Default()

	if _, err := os.Stat(configPath); err != nil {
		if required || !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to stat config file: %w", err)
		}
		return config, nil
	}

	configData, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse TOML config, merging with defaults
	if err := toml.Unmarshal(configData, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", configPath, err)
	}
	return config, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.UI.Threshold < 0 || c.UI.Threshold > 1 {
		return fmt.Errorf("ui.threshold must be within [0, 1], got %v", c.UI.Threshold)
	}
	if c.UI.StaggerMS < 0 {
		return fmt.Errorf("ui.stagger_ms must not be negative, got %d", c.UI.StaggerMS)
	}
	if c.UI.HeroDelayMS < 0 {
		return fmt.Errorf("ui.hero_delay_ms must not be negative, got %d", c.UI.HeroDelayMS)
	}
	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level)
	}
	return nil
}

// StaggerStep returns the reveal delay step.
func (c *Config) StaggerStep() time.Duration {
	return time.Duration(c.UI.StaggerMS) * time.Millisecond
}

// HeroDelay returns the hero load-in delay.
func (c *Config) HeroDelay() time.Duration {
	return time.Duration(c.UI.HeroDelayMS) * time.Millisecond
}

// HasRemote reports whether a remote catalog host is configured.
func (c *Config) HasRemote() bool {
	return c.Content.RemoteURL != ""
}

// LogFile returns the configured log path, defaulting to the state dir.
func (c *Config) LogFile() (string, error) {
	if c.Log.File != "" {
		return c.Log.File, nil
	}
	dir, err := StateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppName+".log"), nil
}

package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"

	"flaunch/internal/errors"
)

// Config represents the application configuration
type Config struct {
	// QuickExec runs executable files without asking first.
	QuickExec bool `toml:"quick_exec"`
	// Terminal is the emulator command line used for terminal launches;
	// empty falls back to autodetection.
	Terminal string `toml:"terminal"`
	// MaxResolveDepth bounds shortcut/mount re-resolution rounds.
	MaxResolveDepth int `toml:"max_resolve_depth"`
	// DebugLogging enables debug-level log output.
	DebugLogging bool `toml:"debug_logging"`
	// Associations maps a MIME type to a desktop-file ID, consulted before
	// the system mimeapps lists.
	Associations map[string]string `toml:"associations"`
}

// Manager provides configuration management functionality
type Manager struct {
	configPath string
}

// NewManager creates a new configuration manager
func NewManager() *Manager {
	return &Manager{
		configPath: getConfigPath(),
	}
}

// NewManagerAt creates a manager bound to an explicit config file location
func NewManagerAt(path string) *Manager {
	return &Manager{
		configPath: path,
	}
}

// Path returns the config file location this manager reads and writes
func (m *Manager) Path() string {
	return m.configPath
}

// Load loads configuration from file and merges with defaults
func (m *Manager) Load() (*Config, error) {
	// Start with default configuration
	config := getDefaultConfig()

	data, err := os.ReadFile(m.configPath)
	if err != nil {
		log.Debug().Str("path", m.configPath).Err(err).Msg("config: file not found, using defaults")
		return config, nil
	}

	// Parse config file into a temporary config
	var fileConfig Config
	if err := toml.Unmarshal(data, &fileConfig); err != nil {
		return nil, errors.NewConfigError("load", "error parsing config file", err)
	}

	// Merge file config with defaults
	mergeConfigs(config, &fileConfig)
	return config, nil
}

// Save saves configuration to file
func (m *Manager) Save(config *Config) error {
	// Create the config directory if it doesn't exist
	configDir := filepath.Dir(m.configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return errors.NewConfigError("save", "error creating config directory", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return errors.NewConfigError("save", "error marshaling config", err)
	}

	if err := os.WriteFile(m.configPath, data, 0644); err != nil {
		return errors.NewConfigError("save", "error writing config file", err)
	}

	return nil
}

// getDefaultConfig returns the default configuration
func getDefaultConfig() *Config {
	return &Config{
		QuickExec:       false,
		Terminal:        "",
		MaxResolveDepth: 8,
		DebugLogging:    false,
		Associations:    make(map[string]string),
	}
}

// getConfigPath returns the path to the configuration file following OS conventions
func getConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "flaunch", "config.toml")
}

// mergeConfigs merges file config values into default config
func mergeConfigs(defaultConfig *Config, fileConfig *Config) {
	// Note: for bool values, we can't distinguish between false and unset,
	// so we always use file value
	defaultConfig.QuickExec = fileConfig.QuickExec
	defaultConfig.DebugLogging = fileConfig.DebugLogging

	if fileConfig.Terminal != "" {
		defaultConfig.Terminal = fileConfig.Terminal
	}
	if fileConfig.MaxResolveDepth != 0 {
		defaultConfig.MaxResolveDepth = fileConfig.MaxResolveDepth
	}
	if fileConfig.Associations != nil {
		defaultConfig.Associations = fileConfig.Associations
	}
}

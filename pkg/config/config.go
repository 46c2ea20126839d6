/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is staabler's on-disk configuration: where the append log and
// its supporting files live, and the knobs that shape the shared-memory
// transports and file-handle pool built on top of it.
type Config struct {
	DataDir string  `yaml:"data_dir"`
	Port    int     `yaml:"port"`
	Bind    string  `yaml:"bind"`
	Ring    Ring    `yaml:"ring"`
	Stream  Stream  `yaml:"stream"`
	Logging Logging `yaml:"logging"`
}

// Ring configures the byte ring buffer backing the packet transport.
type Ring struct {
	// CapacityBytes is the declared capacity (N+1 in spec terms) of the
	// shared-memory region handed to ring.NewStream.
	CapacityBytes int `yaml:"capacity_bytes"`
}

// Stream configures the append-only record log.
type Stream struct {
	// BlockCacheBytes sizes the read cache in front of the log's native
	// handle; spec's default is 256 KiB.
	BlockCacheBytes int `yaml:"block_cache_bytes"`
	// FileHandleCap bounds the LRU file-descriptor pool; spec's default
	// is max(1, 1024/CPU_COUNT).
	FileHandleCap int `yaml:"file_handle_cap"`
	// FsyncEveryWrite requests an fsync after every WritevSync, trading
	// throughput for the best-effort durability spec.md §1 allows
	// ("best-effort fsync policy", not full crash-consistent durability).
	FsyncEveryWrite bool `yaml:"fsync_every_write"`
}

// Logging contains logging configuration.
type Logging struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns a default configuration.
func DefaultConfig() *Config {
	return &Config{
		DataDir: "./data",
		Port:    8080,
		Bind:    "127.0.0.1",
		Ring: Ring{
			CapacityBytes: 1 << 20, // 1 MiB
		},
		Stream: Stream{
			BlockCacheBytes: 256 * 1024,
			FileHandleCap:   256,
			FsyncEveryWrite: false,
		},
		Logging: Logging{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from the specified path.
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	// Validate path to prevent directory traversal
	if !filepath.IsAbs(configPath) {
		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		configPath = absPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves the configuration to the specified path with secure
// permissions.
func SaveConfig(config *Config, configPath string) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// BootstrapConfig creates a new configuration rooted at dataDir if one
// doesn't already exist at configPath.
func BootstrapConfig(configPath string, dataDir string) (*Config, error) {
	config := DefaultConfig()
	if dataDir != "" {
		config.DataDir = dataDir
	}

	if err := SaveConfig(config, configPath); err != nil {
		return nil, fmt.Errorf("failed to save bootstrap config: %w", err)
	}

	return config, nil
}

// GetDefaultConfigPath returns the default configuration path for the
// current platform.
func GetDefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./staabler.yaml"
	}
	configDir := filepath.Join(homeDir, ".config", "staabler")
	return filepath.Join(configDir, "config.yaml")
}

// ConfigExists checks if a configuration file exists.
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return !os.IsNotExist(err)
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, "./data", config.DataDir)
	assert.Equal(t, 8080, config.Port)
	assert.Equal(t, "127.0.0.1", config.Bind)
	assert.Equal(t, 1<<20, config.Ring.CapacityBytes)
	assert.Equal(t, 256*1024, config.Stream.BlockCacheBytes)
	assert.Equal(t, 256, config.Stream.FileHandleCap)
	assert.False(t, config.Stream.FsyncEveryWrite)
	assert.Equal(t, "info", config.Logging.Level)
}

func TestLoadConfig(t *testing.T) {
	t.Run("load existing config", func(t *testing.T) {
		tmpDir, err := os.MkdirTemp("", "staabler_config_test")
		require.NoError(t, err)
		defer os.RemoveAll(tmpDir)

		configPath := filepath.Join(tmpDir, "config.yaml")
		expectedConfig := &Config{
			DataDir: "/custom/data",
			Port:    9000,
			Bind:    "0.0.0.0",
			Ring:    Ring{CapacityBytes: 2 << 20},
			Stream: Stream{
				BlockCacheBytes: 512 * 1024,
				FileHandleCap:   128,
				FsyncEveryWrite: true,
			},
			Logging: Logging{
				Level: "debug",
			},
		}

		err = SaveConfig(expectedConfig, configPath)
		require.NoError(t, err)

		loadedConfig, err := LoadConfig(configPath)
		require.NoError(t, err)
		assert.Equal(t, expectedConfig, loadedConfig)
	})

	t.Run("load non-existent config", func(t *testing.T) {
		_, err := LoadConfig("/non/existent/config.yaml")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "config file does not exist")
	})

	t.Run("load invalid yaml", func(t *testing.T) {
		tmpDir, err := os.MkdirTemp("", "staabler_config_test")
		require.NoError(t, err)
		defer os.RemoveAll(tmpDir)

		configPath := filepath.Join(tmpDir, "invalid.yaml")
		err = os.WriteFile(configPath, []byte("invalid: yaml: content: ["), 0644)
		require.NoError(t, err)

		_, err = LoadConfig(configPath)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse config file")
	})
}

func TestSaveConfig(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "staabler_config_test")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	configPath := filepath.Join(tmpDir, "config.yaml")
	config := DefaultConfig()

	err = SaveConfig(config, configPath)
	require.NoError(t, err)

	info, err := os.Stat(configPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loadedConfig, err := LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, config, loadedConfig)
}

func TestBootstrapConfig(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "staabler_config_test")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	configPath := filepath.Join(tmpDir, "config.yaml")
	dataDir := "/custom/data/dir"

	config, err := BootstrapConfig(configPath, dataDir)
	require.NoError(t, err)

	assert.Equal(t, dataDir, config.DataDir)
	assert.Equal(t, 8080, config.Port)
	assert.Equal(t, "127.0.0.1", config.Bind)
	assert.Equal(t, "info", config.Logging.Level)

	assert.True(t, ConfigExists(configPath))

	loadedConfig, err := LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, config, loadedConfig)
}

func TestGetDefaultConfigPath(t *testing.T) {
	path := GetDefaultConfigPath()
	assert.NotEmpty(t, path)
	assert.Contains(t, path, "staabler")
	assert.Contains(t, path, "config.yaml")
}

func TestConfigExists(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "staabler_config_test")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	existingPath := filepath.Join(tmpDir, "exists.yaml")
	nonExistentPath := filepath.Join(tmpDir, "does-not-exist.yaml")

	err = os.WriteFile(existingPath, []byte("test"), 0644)
	require.NoError(t, err)

	assert.True(t, ConfigExists(existingPath))
	assert.False(t, ConfigExists(nonExistentPath))
}

func TestConfigYAMLMarshalling(t *testing.T) {
	config := &Config{
		DataDir: "/test/data",
		Port:    9999,
		Bind:    "localhost",
		Ring:    Ring{CapacityBytes: 4096},
		Stream: Stream{
			BlockCacheBytes: 1024,
			FileHandleCap:   8,
			FsyncEveryWrite: true,
		},
		Logging: Logging{
			Level: "warn",
		},
	}

	data, err := yaml.Marshal(config)
	require.NoError(t, err)

	var unmarshalled Config
	err = yaml.Unmarshal(data, &unmarshalled)
	require.NoError(t, err)

	assert.Equal(t, config, &unmarshalled)
}

func TestSaveConfigErrorHandling(t *testing.T) {
	config := DefaultConfig()

	// A regular file as a path component makes the directory impossible
	// to create, whatever the caller's privileges.
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))
	invalidPath := filepath.Join(blocker, "sub", "config.yaml")

	err := SaveConfig(config, invalidPath)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create config directory")
}

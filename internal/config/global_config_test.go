package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultGlobalConfig(t *testing.T) {
	cfg := NewDefaultGlobalConfig()

	require.NotNil(t, cfg)
	assert.Equal(t, DefaultDiffInsertClass, cfg.DiffConfig.InsertClass)
	assert.Equal(t, DefaultDiffDeleteClass, cfg.DiffConfig.DeleteClass)
	assert.Equal(t, DefaultComparatorMaxInputBytes, cfg.ComparatorConfig.MaxInputBytes)
	assert.Equal(t, DefaultStorageSQLiteDBPath, cfg.StorageConfig.SQLiteDBPath)
	assert.Equal(t, DefaultServerListenAddr, cfg.ServerConfig.ListenAddr)
	assert.Equal(t, DefaultLogLevel, cfg.LogConfig.LogLevel)
	assert.NoError(t, ValidateConfig(cfg))
}

func TestLoadGlobalConfig_NonExistentFile(t *testing.T) {
	cfg, err := LoadGlobalConfig("/nonexistent/config.json", zerolog.Nop())

	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config file does not exist")
}

func TestLoadGlobalConfig_JSONFile(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.json")
	configData := `{
		"log_config": {
			"log_level": "debug"
		},
		"diff_config": {
			"insert_class": "added",
			"include_patch": true
		}
	}`
	require.NoError(t, os.WriteFile(configFile, []byte(configData), 0644))

	cfg, err := LoadGlobalConfig(configFile, zerolog.Nop())

	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogConfig.LogLevel)
	assert.Equal(t, "added", cfg.DiffConfig.InsertClass)
	assert.True(t, cfg.DiffConfig.IncludePatch)
	// untouched sections keep their defaults
	assert.Equal(t, DefaultDiffDeleteClass, cfg.DiffConfig.DeleteClass)
	assert.Equal(t, DefaultServerListenAddr, cfg.ServerConfig.ListenAddr)
}

func TestLoadGlobalConfig_YAMLFile(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.yaml")
	configData := `
storage_config:
  sqlite_db_path: /tmp/ledger.db
  compression_codec: snappy
server_config:
  listen_addr: "0.0.0.0:9000"
  api_key: secret
comparator_config:
  max_input_bytes: 1024
`
	require.NoError(t, os.WriteFile(configFile, []byte(configData), 0644))

	cfg, err := LoadGlobalConfig(configFile, zerolog.Nop())

	require.NoError(t, err)
	assert.Equal(t, "/tmp/ledger.db", cfg.StorageConfig.SQLiteDBPath)
	assert.Equal(t, "snappy", cfg.StorageConfig.CompressionCodec)
	assert.Equal(t, "0.0.0.0:9000", cfg.ServerConfig.ListenAddr)
	assert.Equal(t, "secret", cfg.ServerConfig.APIKey)
	assert.Equal(t, 1024, cfg.ComparatorConfig.MaxInputBytes)
	assert.Equal(t, int64(DefaultComparatorMaxTableCells), cfg.ComparatorConfig.MaxTableCells)
}

func TestLoadGlobalConfig_InvalidYAML(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(configFile, []byte("log_config: [unclosed"), 0644))

	cfg, err := LoadGlobalConfig(configFile, zerolog.Nop())

	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to unmarshal YAML")
}

func TestGetConfigPath_EnvironmentVariable(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "env.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("{}"), 0644))
	t.Setenv(ConfigPathEnvVar, configFile)

	assert.Equal(t, configFile, GetConfigPath(""))
}

func TestSaveGlobalConfig_RoundTrip(t *testing.T) {
	for _, name := range []string{"saved.yaml", "saved.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)
			cfg := NewDefaultGlobalConfig()
			cfg.ReporterConfig.ReportTitle = "Round Trip"

			require.NoError(t, SaveGlobalConfig(cfg, path, zerolog.Nop()))

			loaded, err := LoadGlobalConfig(path, zerolog.Nop())
			require.NoError(t, err)
			assert.Equal(t, cfg, loaded)
		})
	}
}

func TestSaveGlobalConfig_NilConfig(t *testing.T) {
	err := SaveGlobalConfig(nil, filepath.Join(t.TempDir(), "x.yaml"), zerolog.Nop())
	assert.Error(t, err)
}

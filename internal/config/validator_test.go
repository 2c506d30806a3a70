package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(cfg *GlobalConfig)
		wantErr     bool
		errContains string
	}{
		{
			name:   "defaults are valid",
			mutate: func(cfg *GlobalConfig) {},
		},
		{
			name:        "unknown log level",
			mutate:      func(cfg *GlobalConfig) { cfg.LogConfig.LogLevel = "verbose" },
			wantErr:     true,
			errContains: "LogConfig.LogLevel",
		},
		{
			name:        "unknown log format",
			mutate:      func(cfg *GlobalConfig) { cfg.LogConfig.LogFormat = "xml" },
			wantErr:     true,
			errContains: "logformat",
		},
		{
			name:        "class with quote is rejected",
			mutate:      func(cfg *GlobalConfig) { cfg.DiffConfig.InsertClass = `ins" onclick="x` },
			wantErr:     true,
			errContains: "DiffConfig.InsertClass",
		},
		{
			name:        "empty delete class",
			mutate:      func(cfg *GlobalConfig) { cfg.DiffConfig.DeleteClass = "" },
			wantErr:     true,
			errContains: "required",
		},
		{
			name:        "unsupported codec",
			mutate:      func(cfg *GlobalConfig) { cfg.StorageConfig.CompressionCodec = "lz4" },
			wantErr:     true,
			errContains: "codec",
		},
		{
			name:        "memory fraction above one",
			mutate:      func(cfg *GlobalConfig) { cfg.ComparatorConfig.MaxMemoryFraction = 1.5 },
			wantErr:     true,
			errContains: "MaxMemoryFraction",
		},
		{
			name:        "bad listen address",
			mutate:      func(cfg *GlobalConfig) { cfg.ServerConfig.ListenAddr = "localhost" },
			wantErr:     true,
			errContains: "hostname_port",
		},
		{
			name:        "unknown report format",
			mutate:      func(cfg *GlobalConfig) { cfg.ReporterConfig.DefaultFormat = "pdf" },
			wantErr:     true,
			errContains: "reportformat",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultGlobalConfig()
			tt.mutate(cfg)

			err := ValidateConfig(cfg)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateConfig_Nil(t *testing.T) {
	assert.Error(t, ValidateConfig(nil))
}

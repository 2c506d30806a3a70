package logger

import (
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// LogFormat names a console encoding; files are always written as JSON.
type LogFormat string

const (
	FormatJSON    LogFormat = "json"
	FormatConsole LogFormat = "console"
	FormatText    LogFormat = "text"
)

// LoggerConfig is the resolved form of config.LogConfig.
type LoggerConfig struct {
	Level         zerolog.Level
	Format        LogFormat
	EnableConsole bool
	EnableFile    bool
	FilePath      string
	MaxSizeMB     int
	MaxBackups    int
	// Console overrides stderr as the console destination
	Console io.Writer
}

// DefaultLoggerConfig logs info and up to a colored stderr console
func DefaultLoggerConfig() LoggerConfig {
	return LoggerConfig{
		Level:         zerolog.InfoLevel,
		Format:        FormatConsole,
		EnableConsole: true,
		MaxSizeMB:     100,
		MaxBackups:    3,
	}
}

// ParseFormat maps a configured format name, unknown names meaning console.
func ParseFormat(name string) LogFormat {
	switch f := LogFormat(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatJSON, FormatText:
		return f
	default:
		return FormatConsole
	}
}

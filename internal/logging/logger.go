// Package logging configures the structured logger used across Swarm.
// Console output goes to stderr, optionally mirrored to a rotating log file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/swarmforge/swarm/internal/config"
)

// logFileWriter holds the rotating file writer for cleanup during shutdown.
var logFileWriter io.WriteCloser

// Init creates and configures a zerolog.Logger from the log configuration.
//
// The level is taken from cfg.Level (debug, info, warn, error); unknown values
// fall back to info. Output format is determined by the terminal: a TTY without
// NO_COLOR gets the console writer, everything else gets JSON on stderr.
//
// When cfg.File is set, log entries are mirrored to that file with rotation.
// If the file cannot be opened the logger continues with console-only output.
func Init(cfg config.LogConfig) zerolog.Logger {
	writer := selectOutput()

	if cfg.File != "" {
		fileWriter, err := createLogFileWriter(cfg)
		if err == nil {
			logFileWriter = fileWriter
			writer = zerolog.MultiLevelWriter(writer, fileWriter)
		}
	}

	logger := zerolog.New(writer).Level(parseLevel(cfg.Level)).With().Timestamp().Logger()
	log.Logger = logger
	return logger
}

// InitWithWriter creates a logger with a custom writer, primarily for testing.
func InitWithWriter(level string, w io.Writer) zerolog.Logger {
	logger := zerolog.New(w).Level(parseLevel(level)).With().Timestamp().Logger()
	log.Logger = logger
	return logger
}

// Close closes the rotating log file if one was opened.
func Close() {
	if logFileWriter != nil {
		_ = logFileWriter.Close()
		logFileWriter = nil
	}
}

// parseLevel maps a level name to a zerolog level, defaulting to info.
func parseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// selectOutput determines the appropriate output writer based on
// terminal capabilities and environment settings.
func selectOutput() io.Writer {
	if isatty.IsTerminal(os.Stderr.Fd()) && os.Getenv("NO_COLOR") == "" {
		return zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.Kitchen,
		}
	}

	return os.Stderr
}

// createLogFileWriter creates a rotating file writer for the log file.
func createLogFileWriter(cfg config.LogConfig) (io.WriteCloser, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o750); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}

	return &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
	}, nil
}

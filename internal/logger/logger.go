// Package logger provides structured logging using zerolog.
package logger

import (
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

// Config represents logger configuration.
type Config struct {
	Output string // "stdout", "stderr", "file" or "discard"
	Level  string // "debug", "info", "warn", "error"
	File   string // log file path (used when Output is "file")
}

// Init initializes the global zerolog logger with the given configuration.
//
// The logger is also installed as zerolog.DefaultContextLogger so that
// zerolog.Ctx returns it for contexts that carry no logger of their own.
func Init(cfg Config) (zerolog.Logger, error) {
	level := parseLevel(cfg.Level)

	var writer io.Writer
	console := true
	switch strings.ToLower(cfg.Output) {
	case "stderr", "":
		writer = os.Stderr
	case "stdout":
		writer = os.Stdout
	case "discard":
		writer = io.Discard
	default:
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return zerolog.Nop(), errors.Wrapf(err, "opening log file %q", cfg.File)
		}
		writer = f
		console = false
	}

	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		parts := strings.Split(file, string(filepath.Separator))
		if len(parts) > 1 {
			return filepath.Join(parts[len(parts)-2:]...) + ":" + strconv.Itoa(line)
		}
		return filepath.Base(file) + ":" + strconv.Itoa(line)
	}

	var logger zerolog.Logger
	if console {
		cw := zerolog.ConsoleWriter{Out: writer, TimeFormat: time.TimeOnly}
		logger = zerolog.New(cw).With().Timestamp().Logger()
	} else {
		logger = zerolog.New(writer).With().Timestamp().Logger()
	}
	// Add Caller only for DEBUG level
	if level == zerolog.DebugLevel {
		logger = logger.With().Caller().Logger()
	}

	zerolog.DefaultContextLogger = &logger
	zlog.Logger = logger

	return logger, nil
}

// parseLevel parses the log level string.
func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "info", "":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Package logging builds the app logger: slog text output into a rotating
// file, mirrored to stderr at debug level when verbose.
package logging

import (
	"io"
	"log/slog"
	"os"

	"github.com/natefinch/lumberjack"
)

// Options controls the logger destination and level.
type Options struct {
	// File is the rotating log path. Empty disables file logging.
	File string

	// Verbose mirrors to stderr and lowers the level to debug.
	Verbose bool
}

// New builds the logger. With no file and no verbose flag it discards.
func New(opts Options) *slog.Logger {
	var writers []io.Writer
	if opts.File != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    10, // megabytes
			MaxBackups: 7,
			MaxAge:     7, // days
			Compress:   true,
		})
	}
	if opts.Verbose {
		writers = append(writers, os.Stderr)
	}
	if len(writers) == 0 {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(io.MultiWriter(writers...), &slog.HandlerOptions{
		Level: level,
	}))
}

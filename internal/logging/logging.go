// Package logging configures the process-wide logger for the reolink CLI.
package logging

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls logger setup. Verbose lowers the level to debug; FilePath,
// when set, mirrors log output to a rotated file.
type Options struct {
	Verbose  bool
	FilePath string
}

// Setup installs the global slog logger. Console output goes to stderr so it
// never mixes with command output on stdout. The returned closer releases the
// log file, if any, and is safe to call when no file is configured.
func Setup(opts Options) (*slog.Logger, func() error) {
	level := slog.LevelWarn
	if opts.Verbose {
		level = slog.LevelDebug
	}

	writer := io.Writer(os.Stderr)
	closer := func() error { return nil }

	if opts.FilePath != "" {
		file := &lumberjack.Logger{
			Filename:   opts.FilePath,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
		}
		writer = io.MultiWriter(os.Stderr, file)
		closer = file.Close
	}

	logger := slog.New(slog.NewTextHandler(writer, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger, closer
}

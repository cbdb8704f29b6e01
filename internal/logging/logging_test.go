package logging

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetupDefaultLevel(t *testing.T) {
	logger, closeLog := Setup(Options{})
	defer closeLog()

	if logger.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatalf("debug must be disabled by default")
	}
	if !logger.Enabled(context.Background(), slog.LevelWarn) {
		t.Fatalf("warn must be enabled by default")
	}
}

func TestSetupVerbose(t *testing.T) {
	logger, closeLog := Setup(Options{Verbose: true})
	defer closeLog()

	if !logger.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatalf("verbose must enable debug")
	}
}

func TestSetupLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reolink.log")
	logger, closeLog := Setup(Options{FilePath: path})

	logger.Warn("camera unreachable", "host", "10.0.0.1")
	if err := closeLog(); err != nil {
		t.Fatalf("close log: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "camera unreachable") {
		t.Fatalf("log file missing entry: %s", data)
	}
}

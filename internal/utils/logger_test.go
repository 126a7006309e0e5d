package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/dyike/indexstats/config"
)

func TestNewLoggerLevels(t *testing.T) {
	cfg := config.DefaultConfigWithRoot(t.TempDir())

	logger, closeLog, err := NewLogger(cfg)
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	defer closeLog()
	if logger.GetLevel() != logrus.InfoLevel {
		t.Fatalf("level = %s, want info", logger.GetLevel())
	}

	cfg.Debug = true
	logger, closeDebug, err := NewLogger(cfg)
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	defer closeDebug()
	if logger.GetLevel() != logrus.DebugLevel {
		t.Fatalf("level = %s, want debug", logger.GetLevel())
	}
}

func TestNewLoggerWritesFile(t *testing.T) {
	cfg := config.DefaultConfigWithRoot(t.TempDir())
	cfg.LogFile = filepath.Join(t.TempDir(), "logs", "indexstats.log")

	logger, closeLog, err := NewLogger(cfg)
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	logger.WithField("component", "fetcher").Error("Failed to load data")
	if err := closeLog(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(cfg.LogFile)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "level=error") || !strings.Contains(out, "component=fetcher") {
		t.Fatalf("unexpected log output: %s", out)
	}
}

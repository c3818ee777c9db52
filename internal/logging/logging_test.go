package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	log := New(Options{File: path})
	log.Info("started", "dataDir", "/tmp/x")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "msg=started") {
		t.Fatalf("log file missing entry, got %q", data)
	}
}

func TestNew_DebugSuppressedByDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	log := New(Options{File: path})
	log.Debug("noisy detail")
	log.Info("kept")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if strings.Contains(string(data), "noisy detail") {
		t.Fatalf("debug entry should be suppressed at info level, got %q", data)
	}
}

func TestNew_DiscardsWithoutDestinations(t *testing.T) {
	log := New(Options{})
	log.Info("goes nowhere")
}

package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestConsoleLevels(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, false, "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.Debug("hidden")
	log.Warn("failed to delete staging folder", zap.String("path", "/tmp/x"))
	_ = log.Sync()

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line written without verbose: %q", out)
	}
	if !strings.Contains(out, "failed to delete staging folder") || !strings.Contains(out, "/tmp/x") {
		t.Errorf("warning missing from output: %q", out)
	}
}

func TestVerboseAndFile(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "vc.log")
	log, err := New(&buf, true, path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.Debug("running tool", zap.String("tool", "studiomdl.exe"))
	_ = log.Sync()

	if !strings.Contains(buf.String(), "running tool") {
		t.Errorf("verbose console missing debug line: %q", buf.String())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), `"tool":"studiomdl.exe"`) {
		t.Errorf("log file = %q, want JSON field", data)
	}
}

package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/diogo/geminichat/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"ERROR", zapcore.ErrorLevel},
		{" error ", zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
		{"chatty", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewWithWriter_JSONEncoding(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(zapcore.AddSync(&buf), zapcore.InfoLevel)

	logger.Debug("hidden")
	logger.Info("prompt submitted", zap.Int("chars", 5))
	_ = logger.Sync()

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	if len(lines) != 1 {
		t.Fatalf("expected 1 log line, got %d: %s", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal(lines[0], &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["msg"] != "prompt submitted" {
		t.Errorf("msg = %v", entry["msg"])
	}
	if _, ok := entry["timestamp"]; !ok {
		t.Error("expected a timestamp key")
	}
	if entry["chars"] != float64(5) {
		t.Errorf("chars = %v", entry["chars"])
	}
}

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "app.log")
	cfg := config.DefaultLogConfig()
	cfg.File = path

	logger, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	logger.Info("hello")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !bytes.Contains(data, []byte(`"msg":"hello"`)) {
		t.Errorf("unexpected log content: %s", data)
	}
}

func TestLogDuration(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := zap.New(core)

	done := LogDuration(logger, "generate", zap.String("model", "m"))
	done()

	entries := logs.FilterMessage("function timed").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 timing entry, got %d", len(entries))
	}
	ctx := entries[0].ContextMap()
	if ctx["func"] != "generate" || ctx["model"] != "m" {
		t.Errorf("unexpected fields %v", ctx)
	}
	if _, ok := ctx["duration_ms"]; !ok {
		t.Error("expected duration_ms field")
	}
}

package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/dbsmedya/gotestor/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected string // String representation of zapcore.Level
	}{
		{"debug", "debug"},
		{"info", "info"},
		{"", "info"}, // empty defaults to info
		{"warn", "warn"},
		{"error", "error"},
		{"unknown", "info"}, // unknown defaults to info
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level := parseLevel(tt.input)
			if level.String() != tt.expected {
				t.Errorf("parseLevel(%q) = %v, expected %v", tt.input, level.String(), tt.expected)
			}
		})
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		cfg  *config.LoggingConfig
	}{
		{
			name: "json format info level",
			cfg:  &config.LoggingConfig{Level: "info", Format: "json", Output: "stderr"},
		},
		{
			name: "text format debug level",
			cfg:  &config.LoggingConfig{Level: "debug", Format: "text", Output: "stdout"},
		},
		{
			name: "file output",
			cfg:  &config.LoggingConfig{Level: "warn", Format: "json", Output: filepath.Join(t.TempDir(), "test-log.json")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.cfg)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if logger == nil {
				t.Fatal("New() returned nil logger without error")
			}
			_ = logger.Sync()
		})
	}
}

func TestNewDefault(t *testing.T) {
	logger := NewDefault()
	if logger == nil {
		t.Fatal("NewDefault() returned nil")
	}

	// Should be able to log without panic
	logger.Info("test message")
	_ = logger.Sync()
}

func TestNewNop(t *testing.T) {
	logger := NewNop()
	logger.WithMatrix("a").Info("discarded")
	if err := logger.Sync(); err != nil {
		t.Errorf("Sync() on nop logger failed: %v", err)
	}
}

func TestContextFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := NewWithCore(core)

	logger.WithMatrix("basic-a").
		WithAlgorithm("yyc").
		WithRowOrder("ones-ascending").
		Debugw("row processed", "row", 3)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	fields := entries[0].ContextMap()
	expected := map[string]interface{}{
		"matrix":    "basic-a",
		"algorithm": "yyc",
		"row_order": "ones-ascending",
		"row":       int64(3),
	}
	for k, v := range expected {
		if fields[k] != v {
			t.Errorf("field %q = %v, expected %v", k, fields[k], v)
		}
	}
}

func TestWithMatrixReturnsNewLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := NewWithCore(core)

	matrixLogger := logger.WithMatrix("b")
	if matrixLogger == logger {
		t.Error("WithMatrix() should return a new logger instance")
	}

	logger.Info("plain")
	if logs.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", logs.Len())
	}
	if len(logs.All()[0].Context) != 0 {
		t.Error("parent logger should not carry matrix context")
	}
}

func TestBuildEncoder(t *testing.T) {
	for _, format := range []string{"json", "text", "unknown"} {
		if buildEncoder(format) == nil {
			t.Errorf("buildEncoder(%q) returned nil", format)
		}
	}
}

func TestBuildWriters(t *testing.T) {
	for _, output := range []string{"stdout", "stderr", ""} {
		if buildWriters(output) == nil {
			t.Errorf("buildWriters(%q) returned nil", output)
		}
	}

	tmpFile := filepath.Join(t.TempDir(), "test-logger-output.log")
	if buildWriters(tmpFile) == nil {
		t.Error("buildWriters(file) returned nil")
	}
}

func TestLoggingOutput(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logger-test.json")

	cfg := &config.LoggingConfig{
		Level:  "info",
		Format: "json",
		Output: logPath,
	}

	logger, err := New(cfg)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	logger.Info("test info message")
	logger.Debug("filtered debug message")
	logger.WithMatrix("basic-a").Info("message with matrix context")

	_ = logger.Sync()

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}

	contentStr := string(content)
	if !strings.Contains(contentStr, "test info message") {
		t.Error("Log file should contain 'test info message'")
	}
	if strings.Contains(contentStr, "filtered debug message") {
		t.Error("Debug entries should be filtered at info level")
	}
	if !strings.Contains(contentStr, `"matrix":"basic-a"`) {
		t.Error("Log file should contain matrix context 'basic-a'")
	}
}

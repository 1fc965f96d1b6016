package logging

import (
	"os"
	"strings"
	"testing"
)

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger("test-component")
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}
	defer logger.Close()

	if logger.SessionID() == "" {
		t.Error("Expected non-empty session ID")
	}
	if logger.LogPath() == "" {
		t.Error("Expected non-empty log path")
	}
}

func TestLoggerSharedSession(t *testing.T) {
	a, err := NewLogger("component-a")
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}
	defer a.Close()

	b, err := NewLogger("component-b")
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}
	defer b.Close()

	if a.SessionID() != b.SessionID() {
		t.Errorf("Expected shared session ID, got %s and %s", a.SessionID(), b.SessionID())
	}
	if a.LogPath() != b.LogPath() {
		t.Errorf("Expected shared log file, got %s and %s", a.LogPath(), b.LogPath())
	}
}

func TestLoggerWritesLevels(t *testing.T) {
	logger, err := NewLogger("levels")
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}
	defer logger.Close()

	logger.Debugf("debug %d", 1)
	logger.Infof("info %s", "x")
	logger.Warnf("warn")
	logger.Errorf("error")

	b, err := os.ReadFile(logger.LogPath())
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	content := string(b)

	for _, want := range []string{"[DEBUG] debug 1", "[INFO] info x", "[WARN] warn", "[ERROR] error", "[levels]"} {
		if !strings.Contains(content, want) {
			t.Errorf("Expected log to contain %q, got:\n%s", want, content)
		}
	}
}

func TestLoggerCloseIdempotent(t *testing.T) {
	logger, err := NewLogger("close")
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}

	if err := logger.Close(); err != nil {
		t.Errorf("First close failed: %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Errorf("Second close failed: %v", err)
	}
}

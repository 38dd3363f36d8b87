package logger

import (
	"log/slog"
	"testing"
)

func TestInitLoggerValidLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		if err := InitLogger(level); err != nil {
			t.Fatalf("unexpected error for level %q: %v", level, err)
		}
		if GetLogger() == nil {
			t.Fatalf("GetLogger() returned nil for level %q", level)
		}
	}
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	if err := InitLogger("verbose"); err == nil {
		t.Fatalf("expected error for invalid log level")
	}
}

func TestGetLoggerBeforeInit(t *testing.T) {
	globalLogger = nil

	if GetLogger() != slog.Default() {
		t.Fatalf("GetLogger() should fall back to slog.Default() before initialization")
	}
}

func TestGetLoggerAfterInit(t *testing.T) {
	if err := InitLogger("info"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if GetLogger() != globalLogger {
		t.Fatalf("GetLogger() should return the initialized logger")
	}
}

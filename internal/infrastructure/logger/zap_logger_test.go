package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	log, err := NewLogger("debug")
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	if !log.Core().Enabled(zapcore.DebugLevel) {
		t.Fatal("debug level not enabled")
	}

	log, err = NewLogger("warn")
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	if log.Core().Enabled(zapcore.InfoLevel) {
		t.Fatal("info should be suppressed at warn level")
	}
}

func TestNewLoggerBadLevelFallsBack(t *testing.T) {
	log, err := NewLogger("shouting")
	if err != nil {
		t.Fatalf("NewLogger must not fail on a bad level: %v", err)
	}
	if !log.Core().Enabled(zapcore.InfoLevel) {
		t.Fatal("fallback level must be info")
	}
	if log.Core().Enabled(zapcore.DebugLevel) {
		t.Fatal("fallback level must not be debug")
	}
}

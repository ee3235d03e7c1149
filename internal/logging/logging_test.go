package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew_Modes(t *testing.T) {
	dev, err := New("", "")
	if err != nil {
		t.Fatalf("dev logger: %v", err)
	}
	if !dev.Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("development logger should enable debug")
	}

	prod, err := New("production", "warn")
	if err != nil {
		t.Fatalf("prod logger: %v", err)
	}
	if prod.Core().Enabled(zapcore.InfoLevel) {
		t.Fatalf("warn level logger should not enable info")
	}

	if _, err := New("prod", "loud"); err == nil {
		t.Fatalf("expected invalid level to fail")
	}
	if Must("prod", "loud") == nil {
		t.Fatalf("Must should never return nil")
	}
}

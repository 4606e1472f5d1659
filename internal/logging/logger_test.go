// ABOUTME: Tests for logger construction from level and format settings.
package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		level   string
		json    bool
		enabled zapcore.Level
		quiet   zapcore.Level
	}{
		{"", false, zapcore.WarnLevel, zapcore.InfoLevel},
		{"debug", false, zapcore.DebugLevel, zapcore.DebugLevel - 1},
		{"info", true, zapcore.InfoLevel, zapcore.DebugLevel},
		{"ERROR", true, zapcore.ErrorLevel, zapcore.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger, err := New(tt.level, tt.json)
			if err != nil {
				t.Fatalf("New(%q) error: %v", tt.level, err)
			}
			if !logger.Core().Enabled(tt.enabled) {
				t.Errorf("expected %v enabled", tt.enabled)
			}
			if logger.Core().Enabled(tt.quiet) {
				t.Errorf("expected %v disabled", tt.quiet)
			}
		})
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New("loud", false); err == nil {
		t.Error("expected error for unknown level")
	}
}

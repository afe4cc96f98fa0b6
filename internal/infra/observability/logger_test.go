package observability

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewLoggerLevel(t *testing.T) {
	if !NewLogger("debug").Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug logger should enable debug level")
	}
	if NewLogger("info").Core().Enabled(zapcore.DebugLevel) {
		t.Error("info logger should not enable debug level")
	}
	if !NewLogger("warn").Core().Enabled(zapcore.WarnLevel) {
		t.Error("warn logger should enable warn level")
	}
	if NewLogger("bogus").Core().Enabled(zapcore.DebugLevel) {
		t.Error("unknown level should fall back to info")
	}
}

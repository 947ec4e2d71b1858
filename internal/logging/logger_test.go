package logging

import (
	"bytes"
	"regexp"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewWithWriterLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, zapcore.WarnLevel)

	logger.Info("hidden")
	logger.Warn("shown", zap.String("column", "AGE"))
	_ = logger.Sync()

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("Expected info to be filtered, got %q", out)
	}
	if !strings.Contains(out, "WARN") || !strings.Contains(out, "shown") || !strings.Contains(out, `"column": "AGE"`) {
		t.Errorf("Unexpected output %q", out)
	}

	stamp := regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\.\d{3}\t`)
	if !stamp.MatchString(out) {
		t.Errorf("Expected line to start with a timestamp, got %q", out)
	}
}

func TestInstall(t *testing.T) {
	var buf bytes.Buffer
	restore := Install(NewWithWriter(&buf, zapcore.DebugLevel))

	zap.L().Debug("through the global")
	restore()

	if !strings.Contains(buf.String(), "through the global") {
		t.Errorf("Expected global logger to write, got %q", buf.String())
	}
	zap.L().Debug("after restore")
	if strings.Contains(buf.String(), "after restore") {
		t.Error("Expected previous global logger to be restored")
	}
}

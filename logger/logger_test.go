package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestLoggerWritesJSONToOutput(t *testing.T) {
	var buf bytes.Buffer
	output = &buf
	Init("info")

	Debugf("hidden %d", 1)
	Infof("answered %s", "notes")
	With("session", "abc-123").Warnw("model switch failed", "model", "qwen")
	Sync()

	got := buf.String()
	if strings.Contains(got, "hidden 1") {
		t.Errorf("Expected debug entries to be dropped at info level, got %q", got)
	}
	if !strings.Contains(got, `"msg":"answered notes"`) {
		t.Errorf("Expected formatted info entry, got %q", got)
	}
	if !strings.Contains(got, `"session":"abc-123"`) || !strings.Contains(got, `"model":"qwen"`) {
		t.Errorf("Expected session and model fields, got %q", got)
	}
}
